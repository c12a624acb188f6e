package resampler

// Bitmap8 is an 8-bit BGRA or BGR raster surface. Pixel (x, y, c) lives at
// byte offset y*Stride + x*Channels + c; Stride may exceed Width*Channels
// to account for row padding.
type Bitmap8 struct {
	Width, Height   int
	Stride          int
	Channels        int
	AlphaMeaningful bool
	Pixels          []byte
}

// NewBitmap8 allocates a zeroed, tightly-packed Bitmap8 (Stride ==
// Width*Channels).
func NewBitmap8(width, height, channels int, alphaMeaningful bool) (*Bitmap8, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(StatusGeometryUnsupported, "bitmap dimensions must be positive, got %dx%d", width, height)
	}
	if channels != 3 && channels != 4 {
		return nil, newError(StatusBadPixelFormat, "channels must be 3 or 4, got %d", channels)
	}
	stride := width * channels
	return &Bitmap8{
		Width:           width,
		Height:          height,
		Stride:          stride,
		Channels:        channels,
		AlphaMeaningful: alphaMeaningful,
		Pixels:          make([]byte, stride*height),
	}, nil
}

// WrapBitmap8 builds a Bitmap8 over caller-owned storage without copying.
// pixels must be at least Stride*height bytes.
func WrapBitmap8(pixels []byte, width, height, stride, channels int, alphaMeaningful bool) (*Bitmap8, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(StatusGeometryUnsupported, "bitmap dimensions must be positive, got %dx%d", width, height)
	}
	if channels != 3 && channels != 4 {
		return nil, newError(StatusBadPixelFormat, "channels must be 3 or 4, got %d", channels)
	}
	if stride < width*channels {
		return nil, newError(StatusBadPixelFormat, "stride %d shorter than width*channels %d", stride, width*channels)
	}
	if len(pixels) < stride*height {
		return nil, newError(StatusOutOfMemory, "pixel buffer too small: have %d bytes, need %d", len(pixels), stride*height)
	}
	return &Bitmap8{
		Width:           width,
		Height:          height,
		Stride:          stride,
		Channels:        channels,
		AlphaMeaningful: alphaMeaningful,
		Pixels:          pixels,
	}, nil
}

// Offset returns the byte offset of pixel (x, y)'s first channel.
func (b *Bitmap8) Offset(x, y int) int { return y*b.Stride + x*b.Channels }

// At returns channel c of pixel (x, y).
func (b *Bitmap8) At(x, y, c int) byte { return b.Pixels[b.Offset(x, y)+c] }

// Set writes channel c of pixel (x, y).
func (b *Bitmap8) Set(x, y, c int, v byte) { b.Pixels[b.Offset(x, y)+c] = v }

// Row returns the live (width*channels)-byte slice for row y, excluding
// any stride padding.
func (b *Bitmap8) Row(y int) []byte {
	start := y * b.Stride
	return b.Pixels[start : start+b.Width*b.Channels]
}

// BitmapFloat is a floating-point bitmap. The pipeline uses it for the
// generalized sharpen stage (ApplyGeneralizedSharpen); Scale works on
// float rows of its own.
type BitmapFloat struct {
	Width, Height int
	Channels      int
	FloatStride   int
	IsLinear      bool
	Pixels        []float32
}

// NewBitmapFloat allocates a zeroed, tightly-packed BitmapFloat
// (FloatStride == Width*Channels).
func NewBitmapFloat(width, height, channels int, isLinear bool) *BitmapFloat {
	stride := width * channels
	return &BitmapFloat{
		Width:       width,
		Height:      height,
		Channels:    channels,
		FloatStride: stride,
		IsLinear:    isLinear,
		Pixels:      make([]float32, stride*height),
	}
}

// Row returns the live (width*channels)-float slice for row y.
func (b *BitmapFloat) Row(y int) []float32 {
	start := y * b.FloatStride
	return b.Pixels[start : start+b.Width*b.Channels]
}
