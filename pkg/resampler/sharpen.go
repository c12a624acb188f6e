package resampler

import "math"

// unsharpRow applies the three-tap unsharp mask in place to one row of
// count pixels (channels interleaved). pct is clamped to (0, 0.5]; pct<=0
// is a no-op, matching the "sharpen pct=0 is identity" invariant.
func unsharpRow(row []float32, count, ch int, pct float64) {
	if pct <= 0 || count < 3 {
		return
	}
	if pct > 0.5 {
		pct = 0.5
	}
	n := -pct / (pct - 1)
	cOuter := float32(n / -2)
	cInner := float32(n + 1)

	for c := 0; c < ch; c++ {
		left := row[c]
		for x := 1; x < count-1; x++ {
			idx := x*ch + c
			cur := row[idx]
			right := row[idx+ch]
			row[idx] = cOuter*left + cInner*cur + cOuter*right
			left = cur
		}
	}
}

// generalizedSharpenKernel builds an odd-length symmetric unsharp kernel
// of radius r from a discretized Gaussian, per G(x,sigma) =
// exp(-x^2/(2*sigma^2))/(sigma*sqrt(2*pi)): the normalized Gaussian is
// subtracted from a center-weighted identity, giving negative side lobes.
func generalizedSharpenKernel(radius int, sigma float64) []float64 {
	n := 2*radius + 1
	gauss := make([]float64, n)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		g := math.Exp(-float64(i*i)/(2*sigma*sigma)) / (sigma * math.Sqrt(2*math.Pi))
		gauss[i+radius] = g
		sum += g
	}
	for i := range gauss {
		gauss[i] /= sum
	}
	kernel := make([]float64, n)
	for i := range kernel {
		if i == radius {
			kernel[i] = 2 - gauss[i]
		} else {
			kernel[i] = -gauss[i]
		}
	}
	return kernel
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// ApplyGeneralizedSharpen runs the separable odd-radius sharpening kernel
// over bmp in place, in RGB or an approximate LUV space per
// details.UseLUV, gating each pixel update by details.KernelThreshold.
func ApplyGeneralizedSharpen(bmp *BitmapFloat, details *InterpolationDetails) {
	r := details.KernelRadius
	if r <= 0 {
		return
	}
	kernel := generalizedSharpenKernel(r, details.UnsharpSigma)
	threshold := float32(details.KernelThreshold)
	ch := bmp.Channels

	if details.UseLUV {
		toApproxLUV(bmp)
		defer fromApproxLUV(bmp)
	}

	convolveSeparable(bmp, kernel, r, ch, threshold, true)
	convolveSeparable(bmp, kernel, r, ch, threshold, false)
}

// convolveSeparable applies kernel along one axis (horizontal when
// horiz, else vertical) to every channel except alpha.
func convolveSeparable(bmp *BitmapFloat, kernel []float64, r, ch int, threshold float32, horiz bool) {
	src := make([]float32, len(bmp.Pixels))
	copy(src, bmp.Pixels)

	clampIdx := func(v, max int) int {
		if v < 0 {
			return 0
		}
		if v > max {
			return max
		}
		return v
	}

	colorChannels := ch
	if ch == 4 {
		colorChannels = 3
	}

	if horiz {
		for y := 0; y < bmp.Height; y++ {
			rowBase := y * bmp.FloatStride
			for x := 0; x < bmp.Width; x++ {
				for c := 0; c < colorChannels; c++ {
					var acc float64
					for k := -r; k <= r; k++ {
						sx := clampIdx(x+k, bmp.Width-1)
						acc += kernel[k+r] * float64(src[rowBase+sx*ch+c])
					}
					applyThresholded(bmp.Pixels, rowBase+x*ch+c, src[rowBase+x*ch+c], float32(acc), threshold)
				}
			}
		}
		return
	}

	for x := 0; x < bmp.Width; x++ {
		for y := 0; y < bmp.Height; y++ {
			for c := 0; c < colorChannels; c++ {
				var acc float64
				for k := -r; k <= r; k++ {
					sy := clampIdx(y+k, bmp.Height-1)
					acc += kernel[k+r] * float64(src[sy*bmp.FloatStride+x*ch+c])
				}
				idx := y*bmp.FloatStride + x*ch + c
				applyThresholded(bmp.Pixels, idx, src[idx], float32(acc), threshold)
			}
		}
	}
}

func applyThresholded(pixels []float32, idx int, old, newVal, threshold float32) {
	if threshold > 0 && absf32(newVal-old) < threshold {
		pixels[idx] = old
		return
	}
	pixels[idx] = newVal
}

// toApproxLUV converts the B/G/R channels of bmp in place to an
// approximate luma/chroma space (L = luma, U/V = scaled chroma
// differences), cheap enough to avoid a real CIELUV round trip while
// still separating luminance from color for sharpening.
func toApproxLUV(bmp *BitmapFloat) {
	if bmp.Channels < 3 {
		return
	}
	for i := 0; i < len(bmp.Pixels); i += bmp.Channels {
		b, g, red := bmp.Pixels[i], bmp.Pixels[i+1], bmp.Pixels[i+2]
		l := 0.299*red + 0.587*g + 0.114*b
		u := b - l
		v := red - l
		bmp.Pixels[i] = l
		bmp.Pixels[i+1] = u
		bmp.Pixels[i+2] = v
	}
}

// fromApproxLUV inverts toApproxLUV.
func fromApproxLUV(bmp *BitmapFloat) {
	if bmp.Channels < 3 {
		return
	}
	for i := 0; i < len(bmp.Pixels); i += bmp.Channels {
		l, u, v := bmp.Pixels[i], bmp.Pixels[i+1], bmp.Pixels[i+2]
		red := v + l
		b := u + l
		g := (l - 0.299*red - 0.114*b) / 0.587
		bmp.Pixels[i] = b
		bmp.Pixels[i+1] = g
		bmp.Pixels[i+2] = red
	}
}
