package image

import (
	stdimage "image"

	"gitlab.com/tinyland/lab/fastscale/pkg/resampler"
)

// bitmap8FromImage copies img into a tightly-packed, 4-channel BGRA
// Bitmap8, the format resampler.PerformRender requires of its source and
// destination. This always copies; there is no aliasing with img's own
// backing array, since Go's image.Image is channel-order RGBA while
// Bitmap8 is BGRA.
func bitmap8FromImage(img stdimage.Image) (*resampler.Bitmap8, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	b, err := resampler.NewBitmap8(w, h, 4, true)
	if err != nil {
		return nil, err
	}
	nrgba := ImageToNRGBA(img)
	for y := 0; y < h; y++ {
		row := b.Row(y)
		srcOff := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		srcRow := nrgba.Pix[srcOff : srcOff+w*4]
		for x := 0; x < w; x++ {
			r, g, bl, a := srcRow[x*4], srcRow[x*4+1], srcRow[x*4+2], srcRow[x*4+3]
			row[x*4+0] = bl
			row[x*4+1] = g
			row[x*4+2] = r
			row[x*4+3] = a
		}
	}
	return b, nil
}

// imageFromBitmap8 converts a BGRA Bitmap8 back into a standard
// *image.NRGBA.
func imageFromBitmap8(b *resampler.Bitmap8) *stdimage.NRGBA {
	dst := stdimage.NewNRGBA(stdimage.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		row := b.Row(y)
		dstOff := dst.PixOffset(0, y)
		dstRow := dst.Pix[dstOff : dstOff+b.Width*4]
		for x := 0; x < b.Width; x++ {
			bl, g, r, a := row[x*4+0], row[x*4+1], row[x*4+2], row[x*4+3]
			dstRow[x*4+0] = r
			dstRow[x*4+1] = g
			dstRow[x*4+2] = bl
			dstRow[x*4+3] = a
		}
	}
	return dst
}
