package resampler

// HalveDivisor picks the integer pre-scaling divisor for a resize from
// (srcW, srcH) to (dstW, dstH): the largest d with d = min(srcW/dstW,
// srcH/dstH) when that ratio is >= 2. If haveOnlyWhenCommonFactor is set,
// the divisor is only used when it evenly divides both source dimensions;
// otherwise HalveDivisor returns 1 (no halving).
func HalveDivisor(srcW, srcH, dstW, dstH int, haveOnlyWhenCommonFactor bool) int {
	if dstW <= 0 || dstH <= 0 {
		return 1
	}
	d := srcW / dstW
	if hd := srcH / dstH; hd < d {
		d = hd
	}
	if d < 2 {
		return 1
	}
	if haveOnlyWhenCommonFactor && (srcW%d != 0 || srcH%d != 0) {
		return 1
	}
	return d
}

// Halve returns a new Bitmap8 holding the integer box-average downscale of
// src by divisor. Each destination pixel is the arithmetic mean of a
// divisor x divisor block of source pixels.
func Halve(src *Bitmap8, divisor int) (*Bitmap8, error) {
	if divisor < 2 {
		return nil, newError(StatusInvalidOption, "halve divisor must be >= 2, got %d", divisor)
	}
	dstW := src.Width / divisor
	dstH := src.Height / divisor
	if dstW <= 0 || dstH <= 0 {
		return nil, newError(StatusGeometryUnsupported, "halve divisor %d too large for %dx%d source", divisor, src.Width, src.Height)
	}
	dst, err := NewBitmap8(dstW, dstH, src.Channels, src.AlphaMeaningful)
	if err != nil {
		return nil, err
	}
	halveRows(src, dst.Pixels, dst.Stride, dstW, dstH, divisor)
	return dst, nil
}

// HalveInPlace overwrites the leading region of b's own buffer with the
// box-average halved image, then shrinks b's geometry to match. This is
// safe because every destination row is fully consumed from source rows
// that have not yet been overwritten: row y of the output is written
// after rows [0, y*divisor) of the input have already been read and rows
// [y*divisor, (y+1)*divisor) are consumed exactly once, in place, just
// before the write.
func HalveInPlace(b *Bitmap8, divisor int) error {
	if divisor < 2 {
		return newError(StatusInvalidOption, "halve divisor must be >= 2, got %d", divisor)
	}
	dstW := b.Width / divisor
	dstH := b.Height / divisor
	if dstW <= 0 || dstH <= 0 {
		return newError(StatusGeometryUnsupported, "halve divisor %d too large for %dx%d source", divisor, b.Width, b.Height)
	}
	dstStride := dstW * b.Channels

	halveRows(b, b.Pixels, dstStride, dstW, dstH, divisor)

	b.Width = dstW
	b.Height = dstH
	b.Stride = dstStride
	b.Pixels = b.Pixels[:dstStride*dstH]
	return nil
}

// halveRows is the shared box-halving loop. src describes the (still
// full-sized) source geometry; dstPixels/dstStride describe where rows
// are written, which may alias src.Pixels for the in-place caller.
func halveRows(src *Bitmap8, dstPixels []byte, dstStride, dstW, dstH, divisor int) {
	ch := src.Channels
	divisorSq := divisor * divisor
	shift := -1
	if isPowerOfTwo(divisorSq) {
		shift = log2Int(divisorSq)
	}

	acc := make([]uint32, dstW*ch)

	for y := 0; y < dstH; y++ {
		for i := range acc {
			acc[i] = 0
		}
		for dy := 0; dy < divisor; dy++ {
			srcRow := src.Row(y*divisor + dy)
			for x := 0; x < dstW; x++ {
				srcBase := x * divisor * ch
				accBase := x * ch
				for c := 0; c < ch; c++ {
					var sum uint32
					for dx := 0; dx < divisor; dx++ {
						sum += uint32(srcRow[srcBase+dx*ch+c])
					}
					acc[accBase+c] += sum
				}
			}
		}

		dstRow := dstPixels[y*dstStride : y*dstStride+dstW*ch]
		if shift >= 0 {
			for i, v := range acc {
				dstRow[i] = byte(v >> uint(shift))
			}
		} else {
			for i, v := range acc {
				dstRow[i] = byte(int(v) / divisorSq)
			}
		}
	}
}
