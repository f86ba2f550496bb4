package pointmetric

import "errors"

// Errors are returned wrapped with call context; match them with errors.Is.
var (
	// ErrDimensionMismatch is returned when two points, or the points of the
	// predicted and ground-truth sets, have different dimensions.
	ErrDimensionMismatch = errors.New("pointmetric: point dimensions do not match")

	// ErrMalformedInput is returned when a point set is not a rectangular
	// collection of finite coordinates.
	ErrMalformedInput = errors.New("pointmetric: malformed point set")

	// ErrInvalidPenaltyWeight is returned for a negative or non-finite k.
	ErrInvalidPenaltyWeight = errors.New("pointmetric: penalty weight must be finite and non-negative")
)
