package resampler

import "math"

// srgbToLinearLUT is precomputed once as process-wide immutable state: a
// 256-entry table keyed by the 8-bit input. The inverse direction has no
// table; it is computed exactly at pack time.
var srgbToLinearLUT [256]float32

func init() {
	for i := 0; i < 256; i++ {
		c := float64(i) / 255
		srgbToLinearLUT[i] = float32(srgbToLinear(c))
	}
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func linearToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

// unpackRow converts one row of 8-bit channel data to float in [0,1].
// When linear is true, the B/G/R channels pass through the sRGB LUT; the
// alpha channel (if present) is always treated as already-linear opacity.
func unpackRow(src []byte, dst []float32, channels int, linear bool) {
	if !linear {
		for i, v := range src {
			dst[i] = float32(v) / 255
		}
		return
	}
	for x := 0; x < len(src); x += channels {
		for c := 0; c < channels; c++ {
			if c == 3 {
				dst[x+c] = float32(src[x+c]) / 255
				continue
			}
			dst[x+c] = srgbToLinearLUT[src[x+c]]
		}
	}
}

// packRow converts one row of float data back to clamped 8-bit channels,
// applying the inverse sRGB transfer on B/G/R when linear is true.
func packRow(dst []byte, src []float32, channels int, linear bool) {
	if !linear {
		for i, v := range src {
			dst[i] = clampToByte(v * 255)
		}
		return
	}
	for x := 0; x < len(src); x += channels {
		for c := 0; c < channels; c++ {
			if c == 3 {
				dst[x+c] = clampToByte(src[x+c] * 255)
				continue
			}
			v := clampFloat(src[x+c], 0, 1)
			dst[x+c] = clampToByte(float32(linearToSRGB(float64(v))) * 255)
		}
	}
}
