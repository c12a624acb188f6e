package resampler

// ResizeOptions collects every tunable exposed across the filter,
// sharpening, halving and post-processing stages. Zero values mean "stage
// disabled" except where noted.
type ResizeOptions struct {
	Filter         FilterKind
	CubicB, CubicC float64 // consulted only when Filter == FilterCubicGeneral
	Blur           float64
	WindowOverride float64

	SharpenPercentGoal       float64
	PostResizeSharpenPercent float64 // percent, 0..100
	IntegratedSharpenPercent float64 // percent, 0..100
	UnsharpRadius            int
	UnsharpSigma             float64
	KernelThreshold          float64
	UseLUV                   bool
	LinearSharpen            bool
	NegativeMultiplier       float64

	UseHalving           bool
	HalveOnlyWhenPerfect bool

	PostFlipX, PostFlipY, PostTranspose bool

	ColorMatrix *ColorMatrix

	// ConvolutionA and ConvolutionB, when non-empty, must have odd length
	// and are applied separably (A horizontal, B vertical) as a standalone
	// post-process after resizing, sharpening and the color matrix.
	ConvolutionA, ConvolutionB []float64

	Workers int
}

// buildInterpolation turns Options into the InterpolationDetails consumed
// by ContributionsCalc and the sharpening stages.
func (o ResizeOptions) buildInterpolation() (*InterpolationDetails, error) {
	var d *InterpolationDetails
	var err error
	if o.Filter == FilterCubicGeneral {
		d, err = NewGeneralCubicInterpolation(o.CubicB, o.CubicC, o.Blur, o.WindowOverride)
	} else {
		d, err = NewInterpolationDetails(o.Filter, o.Blur, o.WindowOverride)
	}
	if err != nil {
		return nil, err
	}

	d.SharpenPercentGoal = o.SharpenPercentGoal
	d.PostResizeSharpenPercent = o.PostResizeSharpenPercent
	d.IntegratedSharpenPercent = o.IntegratedSharpenPercent
	d.KernelRadius = o.UnsharpRadius
	d.UnsharpSigma = o.UnsharpSigma
	d.KernelThreshold = o.KernelThreshold
	d.UseLUV = o.UseLUV
	d.LinearSharpen = o.LinearSharpen
	d.UseHalving = o.UseHalving
	if o.NegativeMultiplier != 0 {
		d.NegativeMultiplier = o.NegativeMultiplier
	}
	return d, nil
}

// RenderDetails bundles a render request: source/destination bitmaps, the
// crop and target rectangles, and the options that drive the pipeline.
// A RenderDetails is consumed synchronously by PerformRender and retains
// no state afterward; there is nothing for a caller to release, since
// every intermediate PerformRender allocates is ordinary Go heap memory
// collected once it falls out of scope (see DESIGN.md, Open Question:
// manual intermediate release).
type RenderDetails struct {
	Source     *Bitmap8
	SourceCrop Rect

	Destination *Bitmap8
	TargetRect  Rect

	Options  ResizeOptions
	Profiler Profiler
}

// PerformRender runs the full resize pipeline described by d: an optional
// integer halving pre-pass, a two-pass separable scale through a
// transposed intermediate, optional inline and post-resize sharpening, the
// post-flip/transpose orientation fixups, an optional 5x5 color matrix, and
// an optional standalone separable convolution. The destination bitmap is
// only touched once the full result is ready, so a failure at any stage
// leaves d.Destination exactly as the caller left it.
func PerformRender(d *RenderDetails) error {
	if d.Source.Channels != 3 && d.Source.Channels != 4 {
		return newError(StatusBadPixelFormat, "source must be BGR or BGRA, got %d channels", d.Source.Channels)
	}
	if d.Destination.Channels != 4 {
		return newError(StatusBadPixelFormat, "destination must be BGRA, got %d channels", d.Destination.Channels)
	}
	if !d.TargetRect.fitsWithin(d.Destination.Width, d.Destination.Height) {
		return newError(StatusGeometryUnsupported, "target rect %+v out of bounds for %dx%d destination", d.TargetRect, d.Destination.Width, d.Destination.Height)
	}

	interp, err := d.Options.buildInterpolation()
	if err != nil {
		return err
	}

	prof := d.Profiler
	workers := d.Options.Workers

	// With PostTranspose the scaled image is transposed afterwards, so it is
	// scaled to the target rect's dimensions swapped.
	outW, outH := d.TargetRect.W, d.TargetRect.H
	if d.Options.PostTranspose {
		outW, outH = outH, outW
	}

	profStart(prof, "crop")
	working, err := copyCrop(d.Source, d.SourceCrop)
	profStop(prof, "crop")
	if err != nil {
		return err
	}

	if d.Source.Channels != d.Destination.Channels {
		widened, err := widenChannels(working, d.Destination.Channels)
		if err != nil {
			return err
		}
		working = widened
	}

	if d.Options.UseHalving {
		profStart(prof, "halve")
		divisor := HalveDivisor(working.Width, working.Height, outW, outH, d.Options.HalveOnlyWhenPerfect)
		if divisor >= 2 {
			if err := HalveInPlace(working, divisor); err != nil {
				profStop(prof, "halve")
				return err
			}
		}
		profStop(prof, "halve")
	}

	widthContrib, err := ContributionsCalc(working.Width, outW, interp)
	if err != nil {
		return err
	}

	intermediate, err := NewBitmap8(working.Height, outW, working.Channels, working.AlphaMeaningful)
	if err != nil {
		return err
	}
	if err := Scale(working, intermediate, widthContrib, d.Options.LinearSharpen, interp, prof, workers); err != nil {
		return err
	}

	heightContrib, err := ContributionsCalc(working.Height, outH, interp)
	if err != nil {
		return err
	}

	rendered, err := NewBitmap8(intermediate.Height, outH, working.Channels, working.AlphaMeaningful)
	if err != nil {
		return err
	}
	if err := Scale(intermediate, rendered, heightContrib, d.Options.LinearSharpen, interp, prof, workers); err != nil {
		return err
	}

	if d.Options.PostResizeSharpenPercent > 0 {
		profStart(prof, "post-sharpen")
		applyPostResizeSharpen(rendered, d.Options.PostResizeSharpenPercent/100, d.Options.LinearSharpen)
		profStop(prof, "post-sharpen")
	}

	if d.Options.UnsharpRadius > 0 {
		profStart(prof, "generalized-sharpen")
		floatView := NewBitmapFloat(rendered.Width, rendered.Height, rendered.Channels, false)
		for y := 0; y < rendered.Height; y++ {
			unpackRow(rendered.Row(y), floatView.Row(y), rendered.Channels, false)
		}
		ApplyGeneralizedSharpen(floatView, interp)
		for y := 0; y < rendered.Height; y++ {
			packRow(rendered.Row(y), floatView.Row(y), rendered.Channels, false)
		}
		profStop(prof, "generalized-sharpen")
	}

	if d.Options.PostFlipX {
		flipX(rendered)
	}
	if d.Options.PostFlipY {
		flipY(rendered)
	}
	if d.Options.PostTranspose {
		transposed, err := transpose(rendered)
		if err != nil {
			return err
		}
		rendered = transposed
	}

	if rendered.Width != d.TargetRect.W || rendered.Height != d.TargetRect.H {
		return newError(StatusGeometryUnsupported, "post-transpose result %dx%d no longer matches target rect %+v", rendered.Width, rendered.Height, d.TargetRect)
	}

	if d.Options.ColorMatrix != nil {
		profStart(prof, "color-matrix")
		if err := ApplyColorMatrix(rendered, d.Options.ColorMatrix); err != nil {
			profStop(prof, "color-matrix")
			return err
		}
		profStop(prof, "color-matrix")
	}

	if len(d.Options.ConvolutionA) > 0 || len(d.Options.ConvolutionB) > 0 {
		profStart(prof, "convolution")
		if err := applyConvolution(rendered, d.Options.ConvolutionA, d.Options.ConvolutionB); err != nil {
			profStop(prof, "convolution")
			return err
		}
		profStop(prof, "convolution")
	}

	if rendered.Channels != d.Destination.Channels {
		widened, err := widenChannels(rendered, d.Destination.Channels)
		if err != nil {
			return err
		}
		rendered = widened
	}

	return blitInto(d.Destination, d.TargetRect, rendered)
}

// widenChannels returns a copy of b converted to the target channel count.
// The only supported conversion is BGR -> BGRA, filling alpha opaque; a
// request to drop channels is rejected since PerformRender never needs it.
func widenChannels(b *Bitmap8, channels int) (*Bitmap8, error) {
	if b.Channels == channels {
		return b, nil
	}
	if !(b.Channels == 3 && channels == 4) {
		return nil, newError(StatusBadPixelFormat, "cannot convert %d channels to %d", b.Channels, channels)
	}
	out, err := NewBitmap8(b.Width, b.Height, 4, true)
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Height; y++ {
		src := b.Row(y)
		dst := out.Row(y)
		for x := 0; x < b.Width; x++ {
			copy(dst[x*4:x*4+3], src[x*3:x*3+3])
			dst[x*4+3] = 255
		}
	}
	return out, nil
}

// applyPostResizeSharpen runs the three-tap unsharp mask once over every
// row of b, the standalone pass applied after both Scale calls complete
// (as distinct from the inline per-pass sharpen Scale performs itself).
func applyPostResizeSharpen(b *Bitmap8, pct float64, linear bool) {
	ch := b.Channels
	row := make([]float32, b.Width*ch)
	for y := 0; y < b.Height; y++ {
		unpackRow(b.Row(y), row, ch, linear)
		unsharpRow(row, b.Width, ch, pct)
		packRow(b.Row(y), row, ch, linear)
	}
}

// applyConvolution runs kernelA horizontally and kernelB vertically over
// b's color channels (alpha, if present, passes through unchanged). Either
// kernel may be nil or empty to skip that axis; a non-empty kernel must
// have odd length.
func applyConvolution(b *Bitmap8, kernelA, kernelB []float64) error {
	if len(kernelA) > 0 {
		if len(kernelA)%2 == 0 {
			return newError(StatusInvalidOption, "convolution kernel A must have odd length, got %d", len(kernelA))
		}
		convolve1D(b, kernelA, true)
	}
	if len(kernelB) > 0 {
		if len(kernelB)%2 == 0 {
			return newError(StatusInvalidOption, "convolution kernel B must have odd length, got %d", len(kernelB))
		}
		convolve1D(b, kernelB, false)
	}
	return nil
}

// convolve1D applies kernel along one axis of b, in 8-bit space, clamping
// out-of-range taps to the nearest edge pixel.
func convolve1D(b *Bitmap8, kernel []float64, horiz bool) {
	r := len(kernel) / 2
	ch := b.Channels
	colorChannels := ch
	if ch == 4 {
		colorChannels = 3
	}
	src := make([]byte, len(b.Pixels))
	copy(src, b.Pixels)

	clampIdx := func(v, max int) int {
		if v < 0 {
			return 0
		}
		if v > max {
			return max
		}
		return v
	}

	if horiz {
		for y := 0; y < b.Height; y++ {
			rowBase := y * b.Stride
			for x := 0; x < b.Width; x++ {
				for c := 0; c < colorChannels; c++ {
					var acc float64
					for k := -r; k <= r; k++ {
						sx := clampIdx(x+k, b.Width-1)
						acc += kernel[k+r] * float64(src[rowBase+sx*ch+c])
					}
					b.Pixels[rowBase+x*ch+c] = clampToByte(float32(acc))
				}
			}
		}
		return
	}

	for x := 0; x < b.Width; x++ {
		for y := 0; y < b.Height; y++ {
			for c := 0; c < colorChannels; c++ {
				var acc float64
				for k := -r; k <= r; k++ {
					sy := clampIdx(y+k, b.Height-1)
					acc += kernel[k+r] * float64(src[sy*b.Stride+x*ch+c])
				}
				b.Pixels[y*b.Stride+x*ch+c] = clampToByte(float32(acc))
			}
		}
	}
}
