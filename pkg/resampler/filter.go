package resampler

import "math"

// FilterKind is the closed set of one-dimensional interpolation filters.
type FilterKind int

const (
	FilterRobidoux FilterKind = iota // 0: default, B=0.37822, C=0.31089
	FilterCubicGeneral                // 1: caller-supplied B, C
	FilterCatmullRom                  // 2: B=0, C=0.5
	FilterMitchell                    // 3: B=1/3, C=1/3
	FilterRobidouxAlias                // 4: identical to FilterRobidoux
	FilterRobidouxSharp                // 5: B=0.2620, C=0.3690
	FilterHermite                      // 6: B=0, C=0
	FilterLanczos3                     // 7: windowed sinc, window=3
	FilterLanczos3Sharp                // 8: windowed sinc, window=3, blur 0.9549
	FilterLanczos2                     // 9: windowed sinc, window=2
	FilterLanczos2Sharp                // 10: windowed sinc, window=2, blur 0.9812
	FilterLanczosTruncated              // 11: windowed sinc, window=3 (see DESIGN.md)
	FilterTriangle                      // 12: 1-|t| on [-1,1]
	FilterBox                          // 13: box average, window=0.5 (extension; see DESIGN.md)
)

// filterName maps a FilterKind to its spec name, used in error messages.
var filterName = map[FilterKind]string{
	FilterRobidoux:       "robidoux",
	FilterCubicGeneral:   "cubic",
	FilterCatmullRom:     "catmull-rom",
	FilterMitchell:       "mitchell",
	FilterRobidouxAlias:  "robidoux",
	FilterRobidouxSharp:  "robidoux-sharp",
	FilterHermite:        "hermite",
	FilterLanczos3:       "lanczos3",
	FilterLanczos3Sharp:  "lanczos3-sharp",
	FilterLanczos2:       "lanczos2",
	FilterLanczos2Sharp:  "lanczos2-sharp",
	FilterLanczosTruncated: "lanczos",
	FilterTriangle:       "triangle",
	FilterBox:            "box",
}

func (f FilterKind) String() string {
	if n, ok := filterName[f]; ok {
		return n
	}
	return "unknown"
}

// ParseFilterName resolves a spec filter name (e.g. "lanczos3",
// "catmull-rom") to its FilterKind. Names are case-sensitive and match
// filterName's values exactly; "robidoux" resolves to FilterRobidoux
// rather than its FilterRobidouxAlias synonym.
func ParseFilterName(name string) (FilterKind, bool) {
	for k, n := range filterName {
		if n == name && k != FilterRobidouxAlias {
			return k, true
		}
	}
	return FilterRobidoux, false
}

// ValidFilterKind reports whether id names a filter this package knows
// how to evaluate. The external interface advertises ids 0..12; FilterBox
// (13) is an internal extension used by the box pre-pass and by direct Go
// callers, not by the string-option parser.
func ValidFilterKind(id int) bool {
	return id >= int(FilterRobidoux) && id <= int(FilterBox)
}

// flexCubic evaluates the Mitchell-Netravali family cubic for normalized
// offset x = |t|/blur, given coefficients derived by deriveCubicCoefficients.
func flexCubic(d *InterpolationDetails, t float64) float64 {
	x := math.Abs(t) / d.Blur
	switch {
	case x < 1:
		return d.p1 + x*x*(d.p2+x*d.p3)
	case x < 2:
		return d.q1 + x*(d.q2+x*(d.q3+x*d.q4))
	default:
		return 0
	}
}

// deriveCubicCoefficients computes the flex-cubic polynomial coefficients
// from the classic Mitchell-Netravali (B, C) parameterization.
func deriveCubicCoefficients(b, c float64) (p1, p2, p3, q1, q2, q3, q4 float64) {
	p1 = (6 - 2*b) / 6
	p2 = (-18 + 12*b + 6*c) / 6
	p3 = (12 - 9*b - 6*c) / 6
	q1 = (8*b + 24*c) / 6
	q2 = (-12*b - 48*c) / 6
	q3 = (6*b + 30*c) / 6
	q4 = (-b - 6*c) / 6
	return
}

// windowedSinc evaluates a Lanczos-style windowed sinc of half-width
// d.Window for normalized offset x = t/blur.
func windowedSinc(d *InterpolationDetails, t float64) float64 {
	x := t / d.Blur
	w := d.Window
	if x == 0 {
		return 1
	}
	if math.Abs(x) > w {
		return 0
	}
	px := math.Pi * x
	return w * math.Sin(px/w) * math.Sin(px) / (px * px)
}

// triangleFilter evaluates 1-|t| on [-1,1], else 0.
func triangleFilter(d *InterpolationDetails, t float64) float64 {
	x := math.Abs(t) / d.Blur
	if x >= 1 {
		return 0
	}
	return 1 - x
}

// boxFilter evaluates the box average: 1 inside the half-window, else 0.
func boxFilter(d *InterpolationDetails, t float64) float64 {
	x := math.Abs(t) / d.Blur
	if x > d.Window {
		return 0
	}
	return 1
}

// Filter dispatches to the function implied by d.Filter, evaluated at
// signed source offset t (in source-pixel units).
func Filter(d *InterpolationDetails, t float64) float64 {
	switch d.Filter {
	case FilterTriangle:
		return triangleFilter(d, t)
	case FilterBox:
		return boxFilter(d, t)
	case FilterLanczos3, FilterLanczos3Sharp, FilterLanczos2, FilterLanczos2Sharp, FilterLanczosTruncated:
		return windowedSinc(d, t)
	default:
		return flexCubic(d, t)
	}
}
