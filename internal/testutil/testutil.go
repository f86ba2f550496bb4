// Package testutil provides shared test fixtures: random point sets, random
// cost grids and a brute-force assignment oracle to cross-check the solver.
package testutil

import (
	"math"
	"math/rand"
	"path/filepath"
	"testing"
)

// RandomPoints returns n points of the given dimension with coordinates drawn
// from a normal distribution scaled by scale.
func RandomPoints(rng *rand.Rand, n, dim int, scale float64) [][]float64 {
	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = make([]float64, dim)
		for d := range pts[i] {
			pts[i][d] = rng.NormFloat64() * scale
		}
	}
	return pts
}

// RandomGrid returns a rows x cols matrix of integers in [0, max). Small
// values of max produce many ties.
func RandomGrid(rng *rand.Rand, rows, cols, max int) [][]float64 {
	g := make([][]float64, rows)
	for i := range g {
		g[i] = make([]float64, cols)
		for j := range g[i] {
			g[i][j] = float64(rng.Intn(max))
		}
	}
	return g
}

// BruteForceAssignment enumerates every injective map from the smaller side
// to the larger one and returns the minimum total. An empty matrix costs 0.
func BruteForceAssignment(cost [][]float64) float64 {
	if len(cost) == 0 || len(cost[0]) == 0 {
		return 0
	}
	n, m := len(cost), len(cost[0])
	if n > m {
		return BruteForceAssignment(transpose(cost))
	}

	used := make([]bool, m)
	best := math.Inf(1)
	var rec func(i int, acc float64)
	rec = func(i int, acc float64) {
		if i == n {
			if acc < best {
				best = acc
			}
			return
		}
		for j := 0; j < m; j++ {
			if used[j] {
				continue
			}
			used[j] = true
			rec(i+1, acc+cost[i][j])
			used[j] = false
		}
	}
	rec(0, 0)
	return best
}

func transpose(a [][]float64) [][]float64 {
	t := make([][]float64, len(a[0]))
	for j := range t {
		t[j] = make([]float64, len(a))
		for i := range a {
			t[j][i] = a[i][j]
		}
	}
	return t
}

// TempDBPath returns a database path inside a per-test temporary directory.
func TempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "pointmetric-test.db")
}
