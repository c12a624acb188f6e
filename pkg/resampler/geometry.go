package resampler

// Rect is an axis-aligned pixel rectangle. Non-axis-aligned target areas
// are not representable by this type: callers that need to reject a
// skewed quadrilateral should do so before calling into this package and
// treat the rejection as StatusGeometryUnsupported (see DESIGN.md, Open
// Question: non-axis-aligned target handling).
type Rect struct {
	X, Y, W, H int
}

func (r Rect) fitsWithin(width, height int) bool {
	return r.X >= 0 && r.Y >= 0 && r.W > 0 && r.H > 0 &&
		r.X+r.W <= width && r.Y+r.H <= height
}

// flipX mirrors b's columns in place.
func flipX(b *Bitmap8) {
	ch := b.Channels
	for y := 0; y < b.Height; y++ {
		row := b.Row(y)
		for l, r := 0, b.Width-1; l < r; l, r = l+1, r-1 {
			lb, rb := l*ch, r*ch
			for c := 0; c < ch; c++ {
				row[lb+c], row[rb+c] = row[rb+c], row[lb+c]
			}
		}
	}
}

// flipY mirrors b's rows in place.
func flipY(b *Bitmap8) {
	for y, y2 := 0, b.Height-1; y < y2; y, y2 = y+1, y2-1 {
		ra := b.Row(y)
		rb := b.Row(y2)
		tmp := make([]byte, len(ra))
		copy(tmp, ra)
		copy(ra, rb)
		copy(rb, tmp)
	}
}

// transpose returns a new Bitmap8 with b's rows and columns swapped.
func transpose(b *Bitmap8) (*Bitmap8, error) {
	dst, err := NewBitmap8(b.Height, b.Width, b.Channels, b.AlphaMeaningful)
	if err != nil {
		return nil, err
	}
	ch := b.Channels
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			srcOff := b.Offset(x, y)
			dstOff := dst.Offset(y, x)
			copy(dst.Pixels[dstOff:dstOff+ch], b.Pixels[srcOff:srcOff+ch])
		}
	}
	return dst, nil
}

// copyCrop copies rect out of src into a new, tightly-packed Bitmap8 that
// the pipeline owns and may mutate (e.g. in-place halving) without
// touching the caller's buffer.
func copyCrop(src *Bitmap8, rect Rect) (*Bitmap8, error) {
	if !rect.fitsWithin(src.Width, src.Height) {
		return nil, newError(StatusGeometryUnsupported, "source crop %+v out of bounds for %dx%d source", rect, src.Width, src.Height)
	}
	working, err := NewBitmap8(rect.W, rect.H, src.Channels, src.AlphaMeaningful)
	if err != nil {
		return nil, err
	}
	ch := src.Channels
	for y := 0; y < rect.H; y++ {
		srcOff := src.Offset(rect.X, rect.Y+y)
		copy(working.Row(y), src.Pixels[srcOff:srcOff+rect.W*ch])
	}
	return working, nil
}

// blitInto copies src into dst at the given rect, leaving the rest of dst
// untouched. Used as the final, all-or-nothing write to the caller's
// destination bitmap.
func blitInto(dst *Bitmap8, rect Rect, src *Bitmap8) error {
	if !rect.fitsWithin(dst.Width, dst.Height) {
		return newError(StatusGeometryUnsupported, "target rect %+v out of bounds for %dx%d destination", rect, dst.Width, dst.Height)
	}
	if rect.W != src.Width || rect.H != src.Height {
		return newError(StatusInternalInvariant, "target rect %+v does not match rendered size %dx%d", rect, src.Width, src.Height)
	}
	ch := dst.Channels
	for y := 0; y < rect.H; y++ {
		dstOff := dst.Offset(rect.X, rect.Y+y)
		copy(dst.Pixels[dstOff:dstOff+rect.W*ch], src.Row(y))
	}
	return nil
}
