// Package hungarian implements the Kuhn–Munkres (Hungarian) algorithm for
// the rectangular minimum-cost assignment problem.
//
// Given an n×m cost matrix it selects min(n, m) (row, column) pairs, no row
// or column used twice, minimising the summed cost. The solver uses row and
// column potentials with shortest augmenting paths (the Jonker–Volgenant
// formulation) and runs in O(n²·m) for n ≤ m. Inputs with more rows than
// columns are solved on the transpose, so no padding is ever introduced.
package hungarian

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrNonFinite is returned when the cost matrix holds a NaN or ±Inf entry.
var ErrNonFinite = errors.New("hungarian: cost matrix contains NaN or Inf")

// Pair is one matched (row, column) index pair.
type Pair struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Assignment is the optimal matching returned by Solve. Pairs are ordered by
// row index; Cost is the sum of the matched cost entries.
type Assignment struct {
	Pairs []Pair  `json:"pairs"`
	Cost  float64 `json:"cost"`
}

// Solve returns a minimum-cost assignment for cost. An empty matrix (either
// dimension zero) yields an empty assignment with zero cost.
//
// Ties between equally cheap matchings are broken by column order; only the
// total cost is guaranteed to be unique.
func Solve(cost mat.Matrix) (Assignment, error) {
	rows, cols := cost.Dims()
	if rows == 0 || cols == 0 {
		return Assignment{Pairs: []Pair{}}, nil
	}

	// Work on an n×m copy with n ≤ m.
	transposed := rows > cols
	n, m := rows, cols
	if transposed {
		n, m = cols, rows
	}
	c := make([][]float64, n)
	for i := 0; i < n; i++ {
		c[i] = make([]float64, m)
		for j := 0; j < m; j++ {
			var v float64
			if transposed {
				v = cost.At(j, i)
			} else {
				v = cost.At(i, j)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				r, k := i, j
				if transposed {
					r, k = j, i
				}
				return Assignment{}, fmt.Errorf("%w: entry (%d,%d) = %v", ErrNonFinite, r, k, v)
			}
			c[i][j] = v
		}
	}

	colOwner, err := solve(c, n, m)
	if err != nil {
		return Assignment{}, err
	}

	pairs := make([]Pair, 0, n)
	for j := 1; j <= m; j++ {
		if colOwner[j] == 0 {
			continue
		}
		r, k := colOwner[j]-1, j-1
		if transposed {
			r, k = k, r
		}
		pairs = append(pairs, Pair{Row: r, Col: k})
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].Row < pairs[b].Row })

	var total float64
	for _, p := range pairs {
		total += cost.At(p.Row, p.Col)
	}
	return Assignment{Pairs: pairs, Cost: total}, nil
}

// solve runs the potential-based shortest augmenting path loop on an n×m
// matrix with n ≤ m. It returns p, 1-indexed: p[j] is the 1-based row
// assigned to column j, or 0 if column j is free.
func solve(c [][]float64, n, m int) ([]int, error) {
	const inf = math.MaxFloat64 / 2

	u := make([]float64, n+1) // Row potentials
	v := make([]float64, m+1) // Column potentials
	p := make([]int, m+1)     // p[j] = row assigned to column j
	way := make([]int, m+1)   // way[j] = previous column in augmenting path
	minv := make([]float64, m+1)
	used := make([]bool, m+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0 // Virtual column

		for j := 0; j <= m; j++ {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1

			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur := c[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}

			// n ≤ m guarantees a free column while any row is unmatched.
			if j1 < 0 {
				return nil, fmt.Errorf("hungarian: no augmenting path for row %d", i-1)
			}

			for j := 0; j <= m; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Augment along the path.
		for j0 != 0 {
			p[j0] = p[way[j0]]
			j0 = way[j0]
		}
	}

	return p, nil
}
