package image

import (
	"image"
	"image/draw"
	"math"

	"gitlab.com/tinyland/lab/fastscale/pkg/resampler"
)

// ResizeToFit scales an image to fit within the given cell dimensions while
// maintaining aspect ratio, using the resampler package's CPU resize
// pipeline (Lanczos3 with a modest integrated sharpen to restore edge
// detail lost during downscale).
//
// Parameters:
//   - img: source image
//   - maxWidthCells: maximum width in terminal character cells
//   - maxHeightCells: maximum height in terminal character cells (each cell
//     displays 2 vertical pixels with halfblocks)
//   - cellW: pixel width of a single terminal cell (0 = use default 8)
//   - cellH: pixel height of a single terminal cell (0 = use default 16)
//
// Behavior:
//   - If the image already fits within the target, it is returned unmodified
//     (no upscaling).
//   - Zero or negative cell/dimension values are clamped to safe defaults.
//   - A nil image returns nil.
func ResizeToFit(img image.Image, maxWidthCells, maxHeightCells, cellW, cellH int) image.Image {
	if img == nil {
		return nil
	}

	// Clamp cell dimensions to safe defaults.
	if cellW <= 0 {
		cellW = 8
	}
	if cellH <= 0 {
		cellH = 16
	}
	if maxWidthCells <= 0 {
		maxWidthCells = 1
	}
	if maxHeightCells <= 0 {
		maxHeightCells = 1
	}

	// Compute pixel budget.
	maxW := maxWidthCells * cellW
	maxH := maxHeightCells * cellH

	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	if srcW <= 0 || srcH <= 0 {
		return img
	}

	// If the image already fits, return it unmodified (no upscaling).
	if srcW <= maxW && srcH <= maxH {
		return img
	}

	// Calculate scale factor preserving aspect ratio.
	scaleX := float64(maxW) / float64(srcW)
	scaleY := float64(maxH) / float64(srcH)
	scale := math.Min(scaleX, scaleY)

	dstW := int(math.Round(float64(srcW) * scale))
	dstH := int(math.Round(float64(srcH) * scale))

	// Safety: ensure at least 1x1.
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	resized, err := resampleTo(img, dstW, dstH, terminalPreviewOptions())
	if err != nil {
		// The resampler only fails on malformed inputs we've already
		// guarded against above; fall back to returning the source
		// unresized rather than dropping the image entirely.
		return img
	}

	return resized
}

// terminalPreviewOptions is the resize recipe used for terminal preview
// downscaling. Lanczos3 gives sharper downscales than Catmull-Rom at a
// modest cost increase; the integrated sharpen restores edge contrast lost
// during the scale, standing in for the old amount=0.3 unsharp pass.
func terminalPreviewOptions() resampler.ResizeOptions {
	return resampler.ResizeOptions{
		Filter:                   resampler.FilterLanczos3,
		IntegratedSharpenPercent: 30,
	}
}

// resampleTo runs img through resampler.PerformRender at the given pixel
// dimensions and returns the result as a standard *image.NRGBA.
func resampleTo(img image.Image, width, height int, opts resampler.ResizeOptions) (*image.NRGBA, error) {
	src, err := bitmap8FromImage(img)
	if err != nil {
		return nil, err
	}

	dst, err := resampler.NewBitmap8(width, height, 4, true)
	if err != nil {
		return nil, err
	}

	details := &resampler.RenderDetails{
		Source:      src,
		SourceCrop:  resampler.Rect{W: src.Width, H: src.Height},
		Destination: dst,
		TargetRect:  resampler.Rect{W: width, H: height},
		Options:     opts,
	}
	if err := resampler.PerformRender(details); err != nil {
		return nil, err
	}

	return imageFromBitmap8(dst), nil
}

// ImageToNRGBA converts any image.Image to *image.NRGBA for efficient pixel access.
func ImageToNRGBA(src image.Image) *image.NRGBA {
	if nrgba, ok := src.(*image.NRGBA); ok {
		return nrgba
	}
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
