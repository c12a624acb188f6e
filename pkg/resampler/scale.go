package resampler

import "sync"

// ScaleBandDepth is the number of source rows unpacked together before
// their contributions are applied. Banding keeps the float unpack/apply
// working set cache-resident; it has no effect on the result.
const ScaleBandDepth = 4

// rowBand is a contiguous, disjoint run of source rows. Two bands never
// write overlapping destination columns, which is what makes them safe to
// process on separate goroutines (see Scale's workers parameter).
type rowBand struct {
	start, n int
}

func bandRanges(rows, depth int) []rowBand {
	if depth <= 0 {
		depth = 1
	}
	bands := make([]rowBand, 0, (rows+depth-1)/depth)
	for start := 0; start < rows; start += depth {
		n := depth
		if start+n > rows {
			n = rows - start
		}
		bands = append(bands, rowBand{start: start, n: n})
	}
	return bands
}

// Scale applies contributions along src's width axis, writing the scaled
// result transposed into dst: dst.Width must equal src.Height and
// dst.Height must equal contributions.LineLength. Calling Scale twice
// (src -> tmp along src's original width, tmp -> dst along src's original
// height) performs a full 2-D resize.
//
// workers bounds how many row bands run concurrently; workers <= 1 runs
// serially. Contributions are read-only during the pass, and each band
// writes a disjoint destination column range, so this is the only
// parallelism this package performs internally; every other stage runs
// serially on the calling goroutine.
func Scale(src, dst *Bitmap8, contributions *LineContributions, linear bool, sharpen *InterpolationDetails, prof Profiler, workers int) error {
	if src.Channels != dst.Channels {
		return newError(StatusBadPixelFormat, "channel mismatch: src=%d dst=%d", src.Channels, dst.Channels)
	}
	if dst.Width != src.Height {
		return newError(StatusGeometryUnsupported, "transposed destination width %d must equal source height %d", dst.Width, src.Height)
	}
	if dst.Height != contributions.LineLength {
		return newError(StatusGeometryUnsupported, "destination height %d must equal contribution line length %d", dst.Height, contributions.LineLength)
	}

	profStart(prof, "scale")
	defer profStop(prof, "scale")

	ch := src.Channels
	bands := bandRanges(src.Height, ScaleBandDepth)

	work := func(band rowBand) {
		scaleBand(src, dst, contributions, linear, sharpen, ch, band)
	}

	if workers <= 1 || len(bands) <= 1 {
		for _, band := range bands {
			work(band)
		}
		return nil
	}
	runBandsParallel(bands, workers, work)
	return nil
}

// scaleBand unpacks each source row in band to float, applies
// contributions along the width axis, optionally sharpens the resulting
// row, and writes it transposed into dst.
// sharpen, when non-nil and sharpen.IntegratedSharpenPercent > 0, applies
// the three-tap unsharp mask to each output row as it is produced (the
// "optional sharpen" step between and after the two Scale passes).
func scaleBand(src, dst *Bitmap8, contributions *LineContributions, linear bool, sharpen *InterpolationDetails, ch int, band rowBand) {
	srcRow := make([]float32, src.Width*ch)
	outRow := make([]float32, dst.Height*ch)

	for k := 0; k < band.n; k++ {
		y := band.start + k
		unpackRow(src.Row(y), srcRow, ch, linear)
		applyContributionsRow(srcRow, outRow, contributions, ch)
		if sharpen != nil && sharpen.IntegratedSharpenPercent > 0 {
			unsharpRow(outRow, dst.Height, ch, sharpen.IntegratedSharpenPercent/100)
		}
		packColumn(dst, y, outRow, ch, linear)
	}
}

// applyContributionsRow produces one scaled row: for each output pixel u,
// the weighted sum of srcRow[left[u]..right[u]].
func applyContributionsRow(srcRow, outRow []float32, contributions *LineContributions, ch int) {
	for u := 0; u < contributions.LineLength; u++ {
		left := contributions.Left[u]
		weights := contributions.Weights[u]
		outBase := u * ch
		for c := 0; c < ch; c++ {
			outRow[outBase+c] = 0
		}
		for i, w := range weights {
			srcBase := (left + i) * ch
			fw := float32(w)
			for c := 0; c < ch; c++ {
				outRow[outBase+c] += srcRow[srcBase+c] * fw
			}
		}
	}
}

// packColumn writes floatRow (logical width dst.Height, channel-interleaved)
// into dst's column x: the transpose step that makes a second Scale call
// behave like a vertical pass.
func packColumn(dst *Bitmap8, x int, floatRow []float32, ch int, linear bool) {
	packed := make([]byte, len(floatRow))
	packRow(packed, floatRow, ch, linear)
	for u := 0; u < dst.Height; u++ {
		off := dst.Offset(x, u)
		copy(dst.Pixels[off:off+ch], packed[u*ch:u*ch+ch])
	}
}

// runBandsParallel runs work over bands using up to workers goroutines and
// returns once every band is done. work has no error return, and a panic
// inside work is not recovered.
func runBandsParallel(bands []rowBand, workers int, work func(rowBand)) {
	if workers > len(bands) {
		workers = len(bands)
	}
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for _, band := range bands {
		wg.Add(1)
		sem <- struct{}{}
		go func(b rowBand) {
			defer wg.Done()
			defer func() { <-sem }()
			work(b)
		}(band)
	}
	wg.Wait()
}
