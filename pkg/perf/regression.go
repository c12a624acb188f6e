package perf

import "testing"

// Threshold defines a performance budget for a named operation. Benchmarks
// that exceed these thresholds indicate a performance regression that should
// be investigated before merging.
type Threshold struct {
	// Name identifies the operation (must match a benchmark suffix).
	Name string

	// MaxNs is the maximum allowed nanoseconds per operation.
	MaxNs int64

	// MaxAlloc is the maximum allowed bytes allocated per operation.
	MaxAlloc int64
}

// Violation records a threshold breach for a specific benchmark.
type Violation struct {
	// Threshold is the budget that was exceeded.
	Threshold Threshold

	// Actual is the measured value that exceeded the threshold.
	Actual int64

	// Field indicates which metric was violated: "ns" for time or "alloc"
	// for memory allocation.
	Field string
}

// DefaultThresholds returns the performance budgets for PerformRender's
// critical paths. These values represent the maximum acceptable performance
// for each operation on a typical development machine, scaled by source
// megapixel count and by which pipeline stages are active.
//
// Budget rationale:
//   - resize_1mp_triangle < 15ms: 1 source megapixel, cheapest filter, no
//     extras — the floor every render should clear
//   - resize_1mp_lanczos3 < 40ms: same size, windowed-sinc filter has a wider
//     contribution window per destination pixel
//   - resize_8mp_lanczos3 < 300ms: a typical photo downscale
//   - resize_halve_prepass < 20ms: Lanczos3 render with the integer
//     box-halving pre-pass, 8mp source to 800x600
//   - resize_sharpen_pass < 50ms: triangle render plus post-resize unsharp
//     mask, 1600x1200 (2mp) destination
//   - resize_color_matrix < 30ms: triangle render plus 5x5 matrix, 1600x1200
//     (2mp) destination
func DefaultThresholds() []Threshold {
	return []Threshold{
		{Name: "resize_1mp_triangle", MaxNs: 15_000_000, MaxAlloc: 4_194_304},
		{Name: "resize_1mp_lanczos3", MaxNs: 40_000_000, MaxAlloc: 4_194_304},
		{Name: "resize_8mp_lanczos3", MaxNs: 300_000_000, MaxAlloc: 33_554_432},
		{Name: "resize_halve_prepass", MaxNs: 20_000_000, MaxAlloc: 8_388_608},
		{Name: "resize_sharpen_pass", MaxNs: 50_000_000, MaxAlloc: 8_388_608},
		{Name: "resize_color_matrix", MaxNs: 30_000_000, MaxAlloc: 4_194_304},
	}
}

// CheckRegression compares benchmark results against thresholds and returns
// all violations found. A violation occurs when either the nanoseconds per
// operation exceed MaxNs or the bytes allocated per operation exceed MaxAlloc.
//
// Results are matched to thresholds by position: results[i] is checked
// against thresholds[i], up to the shorter of the two slices. Entries beyond
// that length in either slice are ignored.
func CheckRegression(results []testing.BenchmarkResult, thresholds []Threshold) []Violation {
	if len(results) == 0 || len(thresholds) == 0 {
		return nil
	}

	// Build a lookup map from threshold names.
	threshMap := make(map[string]Threshold, len(thresholds))
	for _, t := range thresholds {
		threshMap[t.Name] = t
	}

	// We match results by index to their corresponding threshold name.
	// Since testing.BenchmarkResult does not carry a name field, callers
	// must pass results in the same order as thresholds when names should
	// match. Alternatively, callers can use the index-based matching below.
	//
	// For simplicity, we iterate both slices in parallel up to the shorter
	// length, matching by position.
	var violations []Violation

	limit := len(results)
	if limit > len(thresholds) {
		limit = len(thresholds)
	}

	for i := 0; i < limit; i++ {
		r := results[i]
		t := thresholds[i]

		nsPerOp := pfNsPerOp(r)
		if t.MaxNs > 0 && nsPerOp > t.MaxNs {
			violations = append(violations, Violation{
				Threshold: t,
				Actual:    nsPerOp,
				Field:     "ns",
			})
		}

		allocPerOp := pfAllocPerOp(r)
		if t.MaxAlloc > 0 && allocPerOp > t.MaxAlloc {
			violations = append(violations, Violation{
				Threshold: t,
				Actual:    allocPerOp,
				Field:     "alloc",
			})
		}
	}

	return violations
}

// pfNsPerOp extracts nanoseconds per operation from a BenchmarkResult.
// Delegates to the standard library NsPerOp method which handles N=0.
func pfNsPerOp(r testing.BenchmarkResult) int64 {
	return r.NsPerOp()
}

// pfAllocPerOp extracts bytes allocated per operation from a BenchmarkResult.
// Uses the AllocedBytesPerOp method which handles the uint64->int64
// conversion correctly. Returns 0 if N is 0.
func pfAllocPerOp(r testing.BenchmarkResult) int64 {
	return r.AllocedBytesPerOp()
}
