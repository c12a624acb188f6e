package resampler

import (
	"math"
	"testing"
)

func TestFilterKindStringRoundTrip(t *testing.T) {
	for kind, name := range filterName {
		if kind == FilterRobidouxAlias {
			continue // ParseFilterName intentionally never returns the alias
		}
		got, ok := ParseFilterName(name)
		if !ok {
			t.Errorf("ParseFilterName(%q) ok = false", name)
		}
		if got != kind {
			t.Errorf("ParseFilterName(%q) = %v, want %v", name, got, kind)
		}
	}
}

func TestParseFilterNameUnknown(t *testing.T) {
	if _, ok := ParseFilterName("does-not-exist"); ok {
		t.Fatal("want ok = false for unknown filter name")
	}
}

func TestParseFilterNameRobidouxAliasNotReturned(t *testing.T) {
	// filterName[FilterRobidoux] == filterName[FilterRobidouxAlias] == "robidoux";
	// ParseFilterName must resolve to the canonical id, never the alias.
	got, ok := ParseFilterName("robidoux")
	if !ok || got != FilterRobidoux {
		t.Errorf("ParseFilterName(\"robidoux\") = (%v, %v), want (FilterRobidoux, true)", got, ok)
	}
}

func TestValidFilterKind(t *testing.T) {
	if !ValidFilterKind(int(FilterBox)) {
		t.Error("FilterBox should be a valid (extension) filter kind")
	}
	if ValidFilterKind(-1) {
		t.Error("-1 should not be a valid filter kind")
	}
	if ValidFilterKind(int(FilterBox) + 1) {
		t.Error("id past FilterBox should not be valid")
	}
}

func TestTriangleFilterShape(t *testing.T) {
	d := &InterpolationDetails{Filter: FilterTriangle, Blur: 1}
	if got := Filter(d, 0); got != 1 {
		t.Errorf("triangle(0) = %v, want 1", got)
	}
	if got := Filter(d, 1); got != 0 {
		t.Errorf("triangle(1) = %v, want 0", got)
	}
	if got := Filter(d, 0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("triangle(0.5) = %v, want 0.5", got)
	}
	if got := Filter(d, 2); got != 0 {
		t.Errorf("triangle(2) = %v, want 0 (outside support)", got)
	}
}

func TestBoxFilterShape(t *testing.T) {
	d := &InterpolationDetails{Filter: FilterBox, Blur: 1, Window: 0.5}
	if got := Filter(d, 0.4); got != 1 {
		t.Errorf("box(0.4) = %v, want 1", got)
	}
	if got := Filter(d, 0.6); got != 0 {
		t.Errorf("box(0.6) = %v, want 0", got)
	}
}

func TestWindowedSincPeaksAtZero(t *testing.T) {
	d := &InterpolationDetails{Filter: FilterLanczos3, Blur: 1, Window: 3}
	if got := Filter(d, 0); got != 1 {
		t.Errorf("lanczos3(0) = %v, want 1", got)
	}
	if got := Filter(d, 3.5); got != 0 {
		t.Errorf("lanczos3(3.5) = %v, want 0 (outside window)", got)
	}
}

func TestFlexCubicZeroOutsideSupport(t *testing.T) {
	d, err := NewInterpolationDetails(FilterCatmullRom, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := Filter(d, 3); got != 0 {
		t.Errorf("catmull-rom(3) = %v, want 0", got)
	}
}

func TestFlexCubicContinuousAtBreakpoint(t *testing.T) {
	d, err := NewInterpolationDetails(FilterMitchell, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	left := Filter(d, 0.999999)
	right := Filter(d, 1.000001)
	if math.Abs(left-right) > 1e-4 {
		t.Errorf("flexCubic discontinuous at x=1: left=%v right=%v", left, right)
	}
}
