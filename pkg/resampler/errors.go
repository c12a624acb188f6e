package resampler

import "fmt"

// Status is the taxonomy of outcomes a render stage can return. The zero
// value is the only success value; every other value is a failure.
type Status int

const (
	StatusOK Status = iota
	// StatusBadPixelFormat marks a non-BGRA/BGR source or non-BGRA
	// destination bitmap.
	StatusBadPixelFormat
	// StatusGeometryUnsupported marks a non-axis-aligned target or a
	// source crop rectangle out of bounds.
	StatusGeometryUnsupported
	// StatusInvalidOption marks an out-of-range filter id, or a
	// negative window/blur.
	StatusInvalidOption
	// StatusInvalidFilterSupport marks a contribution row whose total
	// weight is (near) zero, or a window too wide to represent.
	StatusInvalidFilterSupport
	// StatusOutOfMemory marks an allocation failure, and a caller-supplied
	// pixel buffer too small for the requested geometry.
	StatusOutOfMemory
	// StatusInternalInvariant marks a state the implementation believes
	// unreachable; seeing it indicates a bug in this package.
	StatusInternalInvariant
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBadPixelFormat:
		return "bad-pixel-format"
	case StatusGeometryUnsupported:
		return "unsupported-geometry"
	case StatusInvalidOption:
		return "invalid-option"
	case StatusInvalidFilterSupport:
		return "invalid-filter-support"
	case StatusOutOfMemory:
		return "out-of-memory"
	case StatusInternalInvariant:
		return "internal-invariant"
	default:
		return "unknown-status"
	}
}

// Error wraps a Status with a human-readable message. All stage functions
// in this package return *Error (via error) rather than bare Status values
// so callers get context for logging.
type Error struct {
	Status Status
	Msg    string
}

func (e *Error) Error() string { return e.Msg }

func newError(status Status, format string, args ...interface{}) *Error {
	return &Error{Status: status, Msg: fmt.Sprintf(format, args...)}
}

// StatusOf extracts the Status from an error produced by this package,
// returning StatusInternalInvariant for any other error type.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	if e, ok := err.(*Error); ok {
		return e.Status
	}
	return StatusInternalInvariant
}
