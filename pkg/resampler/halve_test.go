package resampler

import "testing"

func TestHalveDivisorBelowTwoIsNoOp(t *testing.T) {
	if d := HalveDivisor(100, 100, 60, 60, false); d != 1 {
		t.Errorf("HalveDivisor(100,100,60,60) = %d, want 1 (ratio < 2)", d)
	}
}

func TestHalveDivisorPicksSmallerAxis(t *testing.T) {
	if d := HalveDivisor(800, 400, 100, 100, false); d != 4 {
		t.Errorf("HalveDivisor(800,400,100,100) = %d, want 4 (min(8,4))", d)
	}
}

func TestHalveDivisorRequiresCommonFactorWhenRequested(t *testing.T) {
	// 100x101 -> 20x20 gives d=5; 100 divides by 5 but 101 does not, so with
	// the common-factor requirement no halving is done.
	d := HalveDivisor(100, 101, 20, 20, true)
	if d != 1 {
		t.Errorf("HalveDivisor with haveOnlyWhenCommonFactor and uneven dims = %d, want 1", d)
	}
}

func TestHalveDivisorAllowsNonCommonFactorWhenNotRequested(t *testing.T) {
	d := HalveDivisor(100, 101, 20, 20, false)
	if d < 2 {
		t.Errorf("HalveDivisor without the common-factor restriction = %d, want >= 2", d)
	}
}

// Divisor 2 on a uniform-value source must reduce to exactly the average of
// each 2x2 block (spec §8, exact halving-divisor-2 averaging).
func TestHalveDivisorTwoExactAverage(t *testing.T) {
	src, err := NewBitmap8(4, 4, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	vals := [4]byte{10, 20, 30, 255}
	for y := 0; y < 4; y++ {
		row := src.Row(y)
		for x := 0; x < 4; x++ {
			copy(row[x*4:x*4+4], vals[:])
		}
	}
	dst, err := Halve(src, 2)
	if err != nil {
		t.Fatal(err)
	}
	if dst.Width != 2 || dst.Height != 2 {
		t.Fatalf("dst = %dx%d, want 2x2", dst.Width, dst.Height)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			for c := 0; c < 4; c++ {
				if got := dst.At(x, y, c); got != vals[c] {
					t.Errorf("(%d,%d,%d) = %d, want %d", x, y, c, got, vals[c])
				}
			}
		}
	}
}

func TestHalveDivisorTwoAveragesDistinctValues(t *testing.T) {
	src, err := NewBitmap8(2, 2, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	// A 2x2 block of (0, 0, 0, 255), (100, 0, 0, 255), (0, 0, 0, 255), (100,0,0,255)
	// averages to 50 in channel 0.
	src.Set(0, 0, 0, 0)
	src.Set(1, 0, 0, 100)
	src.Set(0, 1, 0, 0)
	src.Set(1, 1, 0, 100)
	for _, p := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		src.Set(p[0], p[1], 3, 255)
	}
	dst, err := Halve(src, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := dst.At(0, 0, 0); got != 50 {
		t.Errorf("averaged channel 0 = %d, want 50", got)
	}
}

func TestHalveRejectsDivisorBelowTwo(t *testing.T) {
	src, _ := NewBitmap8(4, 4, 4, true)
	if _, err := Halve(src, 1); err == nil {
		t.Fatal("want error for divisor < 2")
	}
}

func TestHalveRejectsOversizedDivisor(t *testing.T) {
	src, _ := NewBitmap8(2, 2, 4, true)
	if _, err := Halve(src, 4); err == nil {
		t.Fatal("want error when divisor exceeds source dimensions")
	}
}

func TestHalveInPlaceMatchesHalve(t *testing.T) {
	src, err := NewBitmap8(8, 8, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	for i := range src.Pixels {
		src.Pixels[i] = byte(i % 256)
	}
	want, err := Halve(src, 2)
	if err != nil {
		t.Fatal(err)
	}

	inPlaceSrc, err := NewBitmap8(8, 8, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	copy(inPlaceSrc.Pixels, src.Pixels)
	if err := HalveInPlace(inPlaceSrc, 2); err != nil {
		t.Fatal(err)
	}

	if inPlaceSrc.Width != want.Width || inPlaceSrc.Height != want.Height {
		t.Fatalf("HalveInPlace geometry = %dx%d, want %dx%d", inPlaceSrc.Width, inPlaceSrc.Height, want.Width, want.Height)
	}
	for i := range want.Pixels {
		if inPlaceSrc.Pixels[i] != want.Pixels[i] {
			t.Fatalf("HalveInPlace diverged from Halve at byte %d: got %d want %d", i, inPlaceSrc.Pixels[i], want.Pixels[i])
		}
	}
}

func TestHalveNonPowerOfTwoDivisor(t *testing.T) {
	src, err := NewBitmap8(6, 6, 3, false)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 6; y++ {
		row := src.Row(y)
		for x := 0; x < 6; x++ {
			row[x*3] = 90
			row[x*3+1] = 90
			row[x*3+2] = 90
		}
	}
	dst, err := Halve(src, 3)
	if err != nil {
		t.Fatal(err)
	}
	if dst.Width != 2 || dst.Height != 2 {
		t.Fatalf("dst = %dx%d, want 2x2", dst.Width, dst.Height)
	}
	if got := dst.At(0, 0, 0); got != 90 {
		t.Errorf("uniform source halved by non-power-of-two divisor = %d, want 90", got)
	}
}
