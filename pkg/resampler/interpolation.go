package resampler

// InterpolationDetails bundles a filter selection with the scalar
// parameters that drive contribution building and the optional sharpening
// stages. Which of p1..q4 are consulted is determined entirely by Filter.
type InterpolationDetails struct {
	Filter FilterKind
	Window float64
	Blur   float64

	// p1..q4 are the flex-cubic polynomial coefficients; only populated
	// (and consulted) for the cubic-family filters.
	p1, p2, p3, q1, q2, q3, q4 float64

	SharpenPercentGoal       float64
	PostResizeSharpenPercent float64
	IntegratedSharpenPercent float64
	KernelRadius             int
	UnsharpSigma             float64
	KernelThreshold          float64
	UseLUV                   bool
	LinearSharpen            bool
	NegativeMultiplier       float64
	UseHalving               bool
	UseInterpolationForPercent bool
}

// defaultWindow returns the table 4.1 default window for a filter id.
func defaultWindow(kind FilterKind) float64 {
	switch kind {
	case FilterHermite:
		return 1
	case FilterLanczos3, FilterLanczos3Sharp, FilterLanczosTruncated:
		return 3
	case FilterLanczos2, FilterLanczos2Sharp:
		return 2
	case FilterTriangle:
		return 1
	case FilterBox:
		return 0.5
	default:
		return 2
	}
}

// defaultBlur returns the built-in blur multiplier for filters that bake
// one in (the "-Sharp" Lanczos variants); all others default to 1.
func defaultBlur(kind FilterKind) float64 {
	switch kind {
	case FilterLanczos3Sharp:
		return 0.9549
	case FilterLanczos2Sharp:
		return 0.9812
	default:
		return 1
	}
}

// bcForFilter returns the (B, C) Mitchell-Netravali pair baked into each
// named cubic filter. FilterCubicGeneral has no baked pair; callers supply
// their own via NewGeneralCubicInterpolation.
func bcForFilter(kind FilterKind) (b, c float64) {
	switch kind {
	case FilterCatmullRom:
		return 0, 0.5
	case FilterMitchell:
		return 1.0 / 3, 1.0 / 3
	case FilterRobidouxSharp:
		return 0.2620, 0.3690
	case FilterHermite:
		return 0, 0
	default: // FilterRobidoux, FilterRobidouxAlias
		return 0.37822, 0.31089
	}
}

// NewInterpolationDetails builds the details for a named filter id, using
// its table 4.1 default window and baked-in blur/coefficients. windowOverride,
// when > 0, replaces the default window (e.g. a caller-supplied support
// radius for Lanczos variants).
func NewInterpolationDetails(kind FilterKind, blur, windowOverride float64) (*InterpolationDetails, error) {
	if !ValidFilterKind(int(kind)) {
		return nil, newError(StatusInvalidOption, "filter id %d out of range 0..13", int(kind))
	}
	if blur < 0 {
		return nil, newError(StatusInvalidOption, "blur must be non-negative, got %g", blur)
	}
	if windowOverride < 0 {
		return nil, newError(StatusInvalidOption, "window override must be non-negative, got %g", windowOverride)
	}

	window := defaultWindow(kind)
	if windowOverride > 0 {
		window = windowOverride
	}
	if blur == 0 {
		blur = defaultBlur(kind)
	}

	d := &InterpolationDetails{
		Filter:             kind,
		Window:             window,
		Blur:               blur,
		NegativeMultiplier: 1,
	}

	switch kind {
	case FilterLanczos3, FilterLanczos3Sharp, FilterLanczos2, FilterLanczos2Sharp, FilterLanczosTruncated, FilterTriangle, FilterBox:
		// No cubic coefficients consulted.
	default:
		b, c := bcForFilter(kind)
		d.p1, d.p2, d.p3, d.q1, d.q2, d.q3, d.q4 = deriveCubicCoefficients(b, c)
	}

	return d, nil
}

// NewGeneralCubicInterpolation builds InterpolationDetails for
// FilterCubicGeneral with caller-supplied Mitchell-Netravali (B, C).
func NewGeneralCubicInterpolation(b, c, blur, windowOverride float64) (*InterpolationDetails, error) {
	d, err := NewInterpolationDetails(FilterCubicGeneral, blur, windowOverride)
	if err != nil {
		return nil, err
	}
	d.p1, d.p2, d.p3, d.q1, d.q2, d.q3, d.q4 = deriveCubicCoefficients(b, c)
	return d, nil
}
