package escape

import "errors"

// Domain errors for kernel parameters.
var (
	// ErrInvalidIterations indicates a non-positive iteration budget.
	ErrInvalidIterations = errors.New("escape: max iterations must be positive")

	// ErrInvalidRadius indicates a non-positive escape radius.
	ErrInvalidRadius = errors.New("escape: escape radius must be positive")

	// ErrUnknownVariant indicates a variant name that is neither mandelbrot nor julia.
	ErrUnknownVariant = errors.New("escape: unknown variant")
)
