package pointmetric

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/stefan-kuepper/point-metric/internal/hungarian"
)

// Pair is one matched (predicted row, ground-truth column) index pair.
type Pair = hungarian.Pair

// Assignment is an optimal matching: min(N, M) pairs and their summed cost.
type Assignment = hungarian.Assignment

// Solver finds a minimum-cost matching of size min(N, M) for a cost matrix.
// Implementations must return the true optimum; ties may be broken freely.
type Solver interface {
	Solve(cost mat.Matrix) (Assignment, error)
}

// SolverFunc adapts an ordinary function to the Solver interface.
type SolverFunc func(cost mat.Matrix) (Assignment, error)

// Solve calls f(cost).
func (f SolverFunc) Solve(cost mat.Matrix) (Assignment, error) { return f(cost) }

// DefaultSolver is the Kuhn–Munkres solver used when no Solver is configured.
var DefaultSolver Solver = SolverFunc(hungarian.Solve)

// CalculateSumAssignmentCost returns the summed cost of the optimal matching
// for cm using DefaultSolver. Empty matrices cost 0.
func CalculateSumAssignmentCost(cm mat.Matrix) (float64, error) {
	a, err := solveAssignment(cm, DefaultSolver)
	if err != nil {
		return 0, err
	}
	return a.Cost, nil
}

// SumAssignmentCost is CalculateSumAssignmentCost with an explicit solver.
// A nil solver selects DefaultSolver.
func SumAssignmentCost(cm mat.Matrix, solver Solver) (float64, error) {
	a, err := solveAssignment(cm, solver)
	if err != nil {
		return 0, err
	}
	return a.Cost, nil
}

// solveAssignment short-circuits empty matrices and recomputes the total
// from the matrix entries, so a solver's own Cost field is never trusted.
func solveAssignment(cm mat.Matrix, solver Solver) (Assignment, error) {
	r, c := cm.Dims()
	if r == 0 || c == 0 {
		return Assignment{Pairs: []Pair{}}, nil
	}
	if solver == nil {
		solver = DefaultSolver
	}

	a, err := solver.Solve(cm)
	if err != nil {
		return Assignment{}, fmt.Errorf("solve assignment: %w", err)
	}

	want := r
	if c < want {
		want = c
	}
	if len(a.Pairs) != want {
		return Assignment{}, fmt.Errorf("solve assignment: solver returned %d pairs, want %d", len(a.Pairs), want)
	}

	var total float64
	for _, p := range a.Pairs {
		if p.Row < 0 || p.Row >= r || p.Col < 0 || p.Col >= c {
			return Assignment{}, fmt.Errorf("solve assignment: pair (%d,%d) outside %dx%d matrix", p.Row, p.Col, r, c)
		}
		total += cm.At(p.Row, p.Col)
	}
	a.Cost = total
	return a, nil
}
