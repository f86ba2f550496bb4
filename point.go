package pointmetric

import (
	"fmt"
	"math"
)

// Point is a fixed-length tuple of coordinates. Its length is the dimension D.
type Point []float64

// PointSet is an ordered collection of points sharing one dimension. Order
// carries no meaning for any metric in this package.
type PointSet []Point

// NewPointSet copies raw rows into a PointSet and checks that every row has
// the same length and only finite coordinates.
func NewPointSet(rows [][]float64) (PointSet, error) {
	set := make(PointSet, len(rows))
	for i, row := range rows {
		p := make(Point, len(row))
		copy(p, row)
		set[i] = p
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

// Dim returns the shared dimension of the set. An empty set reports 0 and
// ok=false since its dimension is unconstrained.
func (s PointSet) Dim() (dim int, ok bool) {
	if len(s) == 0 {
		return 0, false
	}
	return len(s[0]), true
}

// Validate reports ErrMalformedInput if the set is ragged or holds a NaN or
// infinite coordinate.
func (s PointSet) Validate() error {
	dim, ok := s.Dim()
	if !ok {
		return nil
	}
	for i, p := range s {
		if len(p) != dim {
			return fmt.Errorf("%w: point %d has dimension %d, point 0 has %d", ErrMalformedInput, i, len(p), dim)
		}
		for d, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: point %d coordinate %d is %v", ErrMalformedInput, i, d, v)
			}
		}
	}
	return nil
}

// checkCompatible validates both sets and, when both are non-empty, that
// their dimensions agree.
func checkCompatible(pred, gt PointSet) error {
	if err := pred.Validate(); err != nil {
		return fmt.Errorf("pred: %w", err)
	}
	if err := gt.Validate(); err != nil {
		return fmt.Errorf("gt: %w", err)
	}
	pd, pok := pred.Dim()
	gd, gok := gt.Dim()
	if pok && gok && pd != gd {
		return fmt.Errorf("%w: got %d and %d", ErrDimensionMismatch, pd, gd)
	}
	return nil
}
