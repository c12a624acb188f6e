package resampler

import (
	"math"
	"testing"
)

func TestSrgbToLinearEndpoints(t *testing.T) {
	if got := srgbToLinear(0); got != 0 {
		t.Errorf("srgbToLinear(0) = %v, want 0", got)
	}
	if math.Abs(srgbToLinear(1)-1) > 1e-9 {
		t.Errorf("srgbToLinear(1) = %v, want 1", srgbToLinear(1))
	}
}

func TestLinearToSRGBIsInverseOfSrgbToLinear(t *testing.T) {
	for _, c := range []float64{0, 0.01, 0.2, 0.5, 0.9, 1} {
		linear := srgbToLinear(c)
		back := linearToSRGB(linear)
		if math.Abs(back-c) > 1e-6 {
			t.Errorf("round trip of %v => linear %v => srgb %v, want %v", c, linear, back, c)
		}
	}
}

func TestSrgbToLinearLUTMatchesExactFunction(t *testing.T) {
	for i := 0; i < 256; i++ {
		want := float32(srgbToLinear(float64(i) / 255))
		if srgbToLinearLUT[i] != want {
			t.Errorf("srgbToLinearLUT[%d] = %v, want %v", i, srgbToLinearLUT[i], want)
		}
	}
}

func TestUnpackRowNonLinearScalesToUnitRange(t *testing.T) {
	src := []byte{0, 128, 255}
	dst := make([]float32, 3)
	unpackRow(src, dst, 1, false)
	if dst[0] != 0 || dst[2] != 1 {
		t.Errorf("unpackRow endpoints = %v, %v, want 0, 1", dst[0], dst[2])
	}
}

func TestUnpackRowLinearAlphaPassesThroughUnconverted(t *testing.T) {
	src := []byte{255, 0, 0, 128}
	dst := make([]float32, 4)
	unpackRow(src, dst, 4, true)
	if dst[3] != float32(128)/255 {
		t.Errorf("alpha channel = %v, want %v (no sRGB conversion)", dst[3], float32(128)/255)
	}
}

// Round-tripping a row through unpackRow/packRow must stay within a small
// mean error bound (spec §8, round-trip mean-error bound), both in plain
// and linear-light modes.
func TestPackUnpackRoundTripMeanErrorBound(t *testing.T) {
	for _, linear := range []bool{false, true} {
		src := make([]byte, 256*4)
		for i := range src {
			src[i] = byte(i % 256)
		}
		floatRow := make([]float32, len(src))
		unpackRow(src, floatRow, 4, linear)
		packed := make([]byte, len(src))
		packRow(packed, floatRow, 4, linear)

		var totalErr float64
		for i := range src {
			diff := int(src[i]) - int(packed[i])
			if diff < 0 {
				diff = -diff
			}
			totalErr += float64(diff)
		}
		mean := totalErr / float64(len(src))
		if mean > 2.0 {
			t.Errorf("linear=%v: mean round-trip error = %v, want <= 2.0", linear, mean)
		}
	}
}

func TestPackRowClampsOutOfRangeFloats(t *testing.T) {
	dst := make([]byte, 2)
	packRow(dst, []float32{-1, 2}, 1, false)
	if dst[0] != 0 || dst[1] != 255 {
		t.Errorf("packRow clamping = %v, %v, want 0, 255", dst[0], dst[1])
	}
}
