package resampler

// ColorMatrix is the 4x5 affine transform applied to each BGRA pixel:
// out[row] = sum_k M[row][k] * in[k], where in = [B, G, R, A, 1]. The
// implicit fifth output row (identity on the constant 1) is not needed
// because in[4] is always 1.
type ColorMatrix [4][5]float64

// IdentityColorMatrix returns the no-op matrix: out == in.
func IdentityColorMatrix() ColorMatrix {
	return ColorMatrix{
		{1, 0, 0, 0, 0},
		{0, 1, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 1, 0},
	}
}

// ApplyColorMatrix transforms every pixel of b in place. b may be 3 or
// 4 channel; a missing alpha input is treated as fully opaque (255) and a
// computed alpha output is discarded when b has no alpha channel.
func ApplyColorMatrix(b *Bitmap8, m *ColorMatrix) error {
	if b.Channels != 3 && b.Channels != 4 {
		return newError(StatusBadPixelFormat, "color matrix requires 3 or 4 channels, got %d", b.Channels)
	}

	for y := 0; y < b.Height; y++ {
		row := b.Row(y)
		for x := 0; x < b.Width; x++ {
			base := x * b.Channels
			in := [5]float64{
				float64(row[base+0]),
				float64(row[base+1]),
				float64(row[base+2]),
				255,
				1,
			}
			if b.Channels == 4 {
				in[3] = float64(row[base+3])
			}

			var out [4]float64
			for r := 0; r < 4; r++ {
				for k := 0; k < 5; k++ {
					out[r] += m[r][k] * in[k]
				}
			}

			row[base+0] = clampToByte(float32(out[0]))
			row[base+1] = clampToByte(float32(out[1]))
			row[base+2] = clampToByte(float32(out[2]))
			if b.Channels == 4 {
				row[base+3] = clampToByte(float32(out[3]))
			}
		}
	}
	return nil
}
