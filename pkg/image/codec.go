package image

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/fastscale/pkg/config"
	"gitlab.com/tinyland/lab/fastscale/pkg/resampler"
	"gitlab.com/tinyland/lab/fastscale/pkg/terminal"
)

// DecodeBitmap sniffs and decodes a PNG/JPEG/GIF image, auto-orienting it
// per its EXIF tag where present (disintegration/imaging), and converts
// the result into a tightly packed BGRA Bitmap8. The returned format name
// ("png", "jpeg", "gif", ...) mirrors image.Decode's second return value
// and is a convenient default for a later EncodeBitmap call.
func DecodeBitmap(r io.Reader) (*resampler.Bitmap8, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	b, err := bitmap8FromImage(img)
	if err != nil {
		return nil, "", err
	}
	return b, format, nil
}

// EncodeBitmap converts b back to an image.Image and encodes it as PNG or
// JPEG. format is case-insensitive; an unrecognized format defaults to PNG.
func EncodeBitmap(w io.Writer, b *resampler.Bitmap8, format string) error {
	img := imageFromBitmap8(b)
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(92))
	default:
		return imaging.Encode(w, img, imaging.PNG)
	}
}

// RenderTerminalPreview renders b to out using the best graphics protocol
// the caller's terminal supports: go-termimg for Kitty/iTerm2/Sixel, or a
// halfblock fallback otherwise. muesli/termenv's color profile detection
// downgrades the halfblock fallback from 24-bit true color to whatever out
// actually supports, since caps.TrueColor reflects the terminal's
// self-reported capability, not what the output stream can render (e.g.
// redirected to a file or a dumber pty than the one detected at startup).
func RenderTerminalPreview(b *resampler.Bitmap8, caps terminal.Capabilities, out io.Writer) error {
	img := imageFromBitmap8(b)

	if termenv.NewOutput(out).ColorProfile() < termenv.TrueColor {
		caps.TrueColor = false
	}

	cellW, cellH := caps.Size.CellW, caps.Size.CellH
	if cellW <= 0 {
		cellW = 8
	}
	if cellH <= 0 {
		cellH = 16
	}

	r := NewRenderer(caps, imageConfigForPreview())
	rendered, err := r.Render(img, b.Width/cellW, b.Height/cellH)
	if err != nil {
		return fmt.Errorf("render terminal preview: %w", err)
	}
	_, err = io.WriteString(out, rendered)
	return err
}

// imageConfigForPreview builds the minimal config.ImageConfig RenderTerminalPreview
// needs: protocol auto-detection from caps, default renderer cache size.
func imageConfigForPreview() config.ImageConfig {
	return config.ImageConfig{
		Protocol:       "auto",
		MaxCacheSizeMB: 32,
	}
}
