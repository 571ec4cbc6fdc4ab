package perspgrid

import "errors"

// Validation failure kinds surfaced by the core. Every operation either
// returns a valid result or wraps one of these; nothing is silently
// corrected and nothing is logged here.
var (
	// ErrInvalidCameraConfig covers position==target, fov outside
	// (0,180), non-positive near, or near >= far.
	ErrInvalidCameraConfig = errors.New("invalid camera config")

	// ErrDegenerateBasis means the camera forward direction is parallel
	// to the up hint, leaving no usable right vector. The caller must
	// supply an alternate up hint.
	ErrDegenerateBasis = errors.New("degenerate camera basis")

	// ErrInvalidLayoutDimensions means a non-positive panel or room
	// dimension.
	ErrInvalidLayoutDimensions = errors.New("invalid layout dimensions")

	// ErrInvalidDensity means a non-positive grid density multiplier.
	ErrInvalidDensity = errors.New("invalid grid density")

	// ErrSingularMatrix means an inverse was requested on a matrix that
	// is non-invertible beyond tolerance.
	ErrSingularMatrix = errors.New("singular matrix")
)
