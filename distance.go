package pointmetric

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Distance returns the Euclidean distance between p and q. Points of
// dimension zero are at distance 0 from each other.
func Distance(p, q Point) (float64, error) {
	if len(p) != len(q) {
		return 0, fmt.Errorf("%w: got %d and %d", ErrDimensionMismatch, len(p), len(q))
	}
	if len(p) == 0 {
		return 0, nil
	}
	return floats.Distance(p, q, 2), nil
}
