package image

import (
	"image"
	"image/color"

	"gitlab.com/tinyland/lab/fastscale/pkg/resampler"
)

// imgSharpenDefault is the unsharp mask amount for standard protocols.
const imgSharpenDefault = 0.3

// imgSharpenHalfblock is the unsharp mask amount for halfblock protocol,
// which needs more sharpening to compensate for the lower effective
// resolution.
const imgSharpenHalfblock = 0.5

// imgSharpenFilter applies an unsharp mask to an image tuned for terminal
// display, via the resampler package's post-resize sharpen stage run at
// 1:1 scale. The amount parameter controls sharpening intensity:
//   - 0.0 returns the image unchanged
//   - 0.3 is recommended for Kitty/iTerm2/Sixel
//   - 0.5 is recommended for halfblock protocol
func imgSharpenFilter(img image.Image, amount float64) image.Image {
	if img == nil {
		return nil
	}
	if amount <= 0 {
		return ImageToNRGBA(img)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return ImageToNRGBA(img)
	}

	sharpened, err := resampleTo(img, w, h, resampler.ResizeOptions{
		Filter:                   resampler.FilterTriangle,
		PostResizeSharpenPercent: amount * 100,
	})
	if err != nil {
		return ImageToNRGBA(img)
	}
	return sharpened
}

// imgLanczosResize resizes an image to the given width and height using
// the resampler package's Lanczos3 filter. Lanczos3 provides better
// quality than Catmull-Rom for downscaling, at the cost of slightly more
// computation.
//
// If width or height is <= 0, the image is returned unchanged.
func imgLanczosResize(img image.Image, width, height int) image.Image {
	if img == nil {
		return nil
	}
	if width <= 0 || height <= 0 {
		return img
	}

	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img
	}

	resized, err := resampleTo(img, width, height, resampler.ResizeOptions{
		Filter: resampler.FilterLanczos3,
	})
	if err != nil {
		return img
	}
	return resized
}

// imgTerminalPipeline applies the full image processing pipeline for
// terminal display:
//  1. Resize to pixel-perfect dimensions (targetCols * cellW, targetRows * cellH)
//  2. Sharpen to restore edge detail
//  3. Return the processed image
//
// The sharpen amount is always imgSharpenDefault, whatever the protocol;
// imgSharpenHalfblock is not used here.
//
// This function uses Lanczos3 resize for maximum quality, with the sharpen
// pass folded into the same resampler.PerformRender call as an integrated
// sharpen rather than a separate full pass over the image.
func imgTerminalPipeline(img image.Image, targetCols, targetRows, cellW, cellH int) image.Image {
	if img == nil {
		return nil
	}
	if cellW <= 0 {
		cellW = imgDefaultCellW
	}
	if cellH <= 0 {
		cellH = imgDefaultCellH
	}
	if targetCols <= 0 {
		targetCols = 1
	}
	if targetRows <= 0 {
		targetRows = 1
	}

	pixelW := targetCols * cellW
	pixelH := targetRows * cellH

	resized, err := resampleTo(img, pixelW, pixelH, resampler.ResizeOptions{
		Filter:                   resampler.FilterLanczos3,
		IntegratedSharpenPercent: imgSharpenDefault * 100,
	})
	if err != nil {
		return img
	}
	return resized
}

// imgClampColor clamps a float64 color value to [0, 255].
func imgClampColor(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Keeps the image/color import in use.
var _ = color.NRGBA{}
