package pointmetric

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefan-kuepper/point-metric/internal/testutil"
)

func TestCountExtraOrMissing(t *testing.T) {
	t.Parallel()

	for _, tc := range testPoints {
		want := len(tc.pred) - len(tc.gt)
		if want < 0 {
			want = -want
		}
		assert.Equal(t, want, CountExtraOrMissing(tc.pred, tc.gt), tc.name)
		assert.Equal(t, want, CountExtraOrMissing(tc.gt, tc.pred), tc.name)
	}
}

func TestPointMetric_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pred, gt PointSet
		k        float64
		want     float64
	}{
		{"two_close_pairs", testPoints[0].pred, testPoints[0].gt, DefaultPenaltyWeight, math.Sqrt2 + 1},
		{"empty", PointSet{}, PointSet{}, DefaultPenaltyWeight, 0},
		{"one_missing", testPoints[2].pred, testPoints[2].gt, DefaultPenaltyWeight, 1 + 100},
		{"one_missing_k10", testPoints[2].pred, testPoints[2].gt, 10, 1 + 10},
		{"one_extra_k0", testPoints[3].pred, testPoints[3].gt, 0, math.Sqrt2 + 1},
		{"two_extra", testPoints[4].pred, testPoints[4].gt, DefaultPenaltyWeight, 1 + 200},
		{"only_predictions", PointSet{{1, 2}, {3, 4}}, PointSet{}, 2.5, 5},
		{"zero_dimensional", PointSet{{}, {}}, PointSet{{}}, 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PointMetric(tt.pred, tt.gt, tt.k)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPointMetric_PermutationInvariant(t *testing.T) {
	t.Parallel()

	for _, tc := range testPoints {
		t.Run(tc.name, func(t *testing.T) {
			for _, pair := range [][2]PointSet{{tc.pred, tc.pred}, {tc.pred, tc.gt}} {
				base, err := PointMetric(pair[0], pair[1], DefaultPenaltyWeight)
				require.NoError(t, err)
				for _, p := range permutations(pair[0]) {
					for _, g := range permutations(pair[1]) {
						m, err := PointMetric(p, g, DefaultPenaltyWeight)
						require.NoError(t, err)
						assert.InDelta(t, base, m, 1e-9)
					}
				}
			}
		})
	}
}

func TestPointMetric_MatchesBruteForce(t *testing.T) {
	t.Parallel()

	const k = 3.5
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 100; trial++ {
		dim := 1 + rng.Intn(3)
		pred, err := NewPointSet(testutil.RandomPoints(rng, rng.Intn(5), dim, 20))
		require.NoError(t, err)
		gt, err := NewPointSet(testutil.RandomPoints(rng, rng.Intn(5), dim, 20))
		require.NoError(t, err)

		cm, err := CalculateCostMatrix(pred, gt)
		require.NoError(t, err)
		want := testutil.BruteForceAssignment(cm.Rows()) + k*float64(CountExtraOrMissing(pred, gt))

		got, err := PointMetric(pred, gt, k)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-9, "trial %d", trial)
	}
}

func TestPointMetric_DimensionMismatch(t *testing.T) {
	t.Parallel()

	_, err := PointMetric(PointSet{{1, 2}}, PointSet{{1, 2, 3}}, DefaultPenaltyWeight)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestPointMetric_Malformed(t *testing.T) {
	t.Parallel()

	_, err := PointMetric(PointSet{{1, 2}, {1}}, PointSet{{1, 2}}, DefaultPenaltyWeight)
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestPointMetric_InvalidPenaltyWeight(t *testing.T) {
	t.Parallel()

	for _, k := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := PointMetric(PointSet{}, PointSet{}, k)
		require.ErrorIs(t, err, ErrInvalidPenaltyWeight, "k=%v", k)
	}
}

func TestScorer_Breakdown(t *testing.T) {
	t.Parallel()

	s, err := NewScorer(DefaultConfig())
	require.NoError(t, err)

	got, err := s.Score(testPoints[4].pred, testPoints[4].gt)
	require.NoError(t, err)

	want := Score{
		Displacement:   1,
		ExtraOrMissing: 2,
		PenaltyWeight:  DefaultPenaltyWeight,
		Metric:         201,
		Pairs:          []Pair{{Row: 1, Col: 1}, {Row: 2, Col: 0}},
		PredCount:      4,
		GTCount:        2,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("score mismatch (-want +got):\n%s", diff)
	}
}

func TestNewScorer_RejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := NewScorer(Config{PenaltyWeight: -3})
	require.ErrorIs(t, err, ErrInvalidPenaltyWeight)
}

func TestScorer_ConcurrentUse(t *testing.T) {
	t.Parallel()

	s, err := NewScorer(DefaultConfig())
	require.NoError(t, err)

	want, err := s.Score(testPoints[3].pred, testPoints[3].gt)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]float64, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := s.Score(testPoints[3].pred, testPoints[3].gt)
			if err == nil {
				results[i] = got.Metric
			}
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, want.Metric, r)
	}
}

func TestNewPointSet(t *testing.T) {
	t.Parallel()

	rows := [][]float64{{1, 2}, {3, 4}}
	set, err := NewPointSet(rows)
	require.NoError(t, err)
	rows[0][0] = 99
	assert.Equal(t, Point{1, 2}, set[0], "NewPointSet must copy its input")

	_, err = NewPointSet([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, ErrMalformedInput)

	empty, err := NewPointSet(nil)
	require.NoError(t, err)
	_, ok := empty.Dim()
	assert.False(t, ok)
}
