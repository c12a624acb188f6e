package resampler

import "math"

// contribEpsilon is the numerical slack used throughout contribution
// building (edge rounding, zero-weight detection).
const contribEpsilon = 1e-5

// LineContributions is the per-axis table of source-pixel weights that
// produce each destination pixel. It is built once per axis per resize
// call by ContributionsCalc and consumed read-only by Scale.
type LineContributions struct {
	LineLength      int
	WindowSize      int
	Left            []int
	Right           []int
	Weights         [][]float64
	PercentNegative float64
}

// ContributionsCalc builds the LineContributions for resampling srcSize
// source pixels into dstSize destination pixels under details.
func ContributionsCalc(srcSize, dstSize int, details *InterpolationDetails) (*LineContributions, error) {
	if srcSize <= 0 || dstSize <= 0 {
		return nil, newError(StatusGeometryUnsupported, "src/dst size must be positive, got src=%d dst=%d", srcSize, dstSize)
	}

	scale := float64(dstSize) / float64(srcSize)
	downscale := math.Min(1, scale)
	halfSourceWindow := details.Window * 0.5 / downscale

	windowSize := int(math.Ceil(2*(halfSourceWindow-contribEpsilon))) + 1
	if windowSize <= 0 || windowSize > srcSize+2 {
		return nil, newError(StatusInvalidFilterSupport, "window size %d invalid for source size %d", windowSize, srcSize)
	}

	extraNegative := 0.0
	if details.SharpenPercentGoal > 0 {
		ratio := sharpenRatio(details)
		if ratio > 0 {
			extraNegative = (details.SharpenPercentGoal + ratio) / ratio
		}
	}

	lc := &LineContributions{
		LineLength: dstSize,
		WindowSize: windowSize,
		Left:       make([]int, dstSize),
		Right:      make([]int, dstSize),
		Weights:    make([][]float64, dstSize),
	}

	var totalNeg, totalPos float64

	for u := 0; u < dstSize; u++ {
		center := (float64(u)+0.5)/scale - 0.5

		leftEdge := int(math.Ceil(center - halfSourceWindow - 0.5 + contribEpsilon))
		rightEdge := int(math.Floor(center + halfSourceWindow + 0.5 - contribEpsilon))

		if leftEdge < 0 {
			leftEdge = 0
		}
		if rightEdge > srcSize-1 {
			rightEdge = srcSize - 1
		}
		if rightEdge < leftEdge {
			rightEdge = leftEdge
		}

		n := rightEdge - leftEdge + 1
		weights := make([]float64, n)
		total := 0.0

		for i := 0; i < n; i++ {
			ix := leftEdge + i
			sample := Filter(details, downscale*(float64(ix)-center))
			if sample < 0 && extraNegative != 0 {
				sample *= extraNegative
			}
			weights[i] = sample
			total += sample
		}

		if math.Abs(total) <= contribEpsilon {
			return nil, newError(StatusInvalidFilterSupport, "zero total contribution weight at output index %d", u)
		}

		inv := 1 / total
		for i := range weights {
			weights[i] *= inv
			if weights[i] < 0 {
				totalNeg += -weights[i]
			} else {
				totalPos += weights[i]
			}
		}

		lc.Left[u] = leftEdge
		lc.Right[u] = rightEdge
		lc.Weights[u] = weights
	}

	if totalPos > 0 {
		lc.PercentNegative = totalNeg / totalPos
	}

	return lc, nil
}

// sharpenRatio trapezoidally integrates the filter over [-window, window]
// at 50 samples and returns the ratio used to derive extraNegative.
func sharpenRatio(details *InterpolationDetails) float64 {
	const samples = 50
	w := details.Window
	step := (2 * w) / samples

	integral := 0.0
	prev := Filter(details, -w)
	for i := 1; i <= samples; i++ {
		x := -w + float64(i)*step
		cur := Filter(details, x)
		integral += (prev + cur) / 2 * step
		prev = cur
	}
	return integral
}
