package pointmetric

import (
	"fmt"
	"math"
)

// DefaultPenaltyWeight is the cost charged per extra or missing point.
const DefaultPenaltyWeight = 100.0

// Config controls how a Scorer combines displacement and cardinality.
type Config struct {
	// PenaltyWeight (k) weights one unmatched point against one unit of
	// spatial displacement. Must be finite and ≥ 0.
	PenaltyWeight float64

	// Solver computes the optimal matching. Nil selects DefaultSolver.
	Solver Solver
}

// DefaultConfig returns the configuration used by PointMetric callers that
// do not choose a weight.
func DefaultConfig() Config {
	return Config{PenaltyWeight: DefaultPenaltyWeight}
}

// Validate checks the penalty weight.
func (c Config) Validate() error {
	return validatePenaltyWeight(c.PenaltyWeight)
}

func validatePenaltyWeight(k float64) error {
	if math.IsNaN(k) || math.IsInf(k, 0) || k < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidPenaltyWeight, k)
	}
	return nil
}

// Score is the breakdown of one metric evaluation.
type Score struct {
	Displacement   float64 `json:"displacement"`     // summed distance over matched pairs
	ExtraOrMissing int     `json:"extra_or_missing"` // |N − M|
	PenaltyWeight  float64 `json:"penalty_weight"`
	Metric         float64 `json:"metric"` // Displacement + PenaltyWeight × ExtraOrMissing
	Pairs          []Pair  `json:"pairs"`  // matched (pred, gt) indices, sorted by pred
	PredCount      int     `json:"pred_count"`
	GTCount        int     `json:"gt_count"`
}

// Scorer evaluates point sets under a fixed Config. It holds no mutable
// state and may be shared between goroutines.
type Scorer struct {
	cfg Config
}

// NewScorer validates cfg and returns a Scorer for it.
func NewScorer(cfg Config) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Solver == nil {
		cfg.Solver = DefaultSolver
	}
	return &Scorer{cfg: cfg}, nil
}

// Config returns the scorer configuration.
func (s *Scorer) Config() Config { return s.cfg }

// Score validates pred and gt, matches them optimally and returns the
// combined metric with its components.
func (s *Scorer) Score(pred, gt PointSet) (Score, error) {
	cm, err := CalculateCostMatrix(pred, gt)
	if err != nil {
		return Score{}, err
	}
	a, err := solveAssignment(cm, s.cfg.Solver)
	if err != nil {
		return Score{}, err
	}

	extra := CountExtraOrMissing(pred, gt)
	return Score{
		Displacement:   a.Cost,
		ExtraOrMissing: extra,
		PenaltyWeight:  s.cfg.PenaltyWeight,
		Metric:         a.Cost + s.cfg.PenaltyWeight*float64(extra),
		Pairs:          a.Pairs,
		PredCount:      len(pred),
		GTCount:        len(gt),
	}, nil
}

// PointMetric returns the optimal matched displacement between pred and gt
// plus k for every extra or missing point. Use DefaultPenaltyWeight for k
// when no other weighting is required.
//
// Inputs are validated before any work: ragged or non-finite sets yield
// ErrMalformedInput, differing dimensions ErrDimensionMismatch, and a
// negative or non-finite k ErrInvalidPenaltyWeight.
func PointMetric(pred, gt PointSet, k float64) (float64, error) {
	s, err := NewScorer(Config{PenaltyWeight: k})
	if err != nil {
		return 0, err
	}
	score, err := s.Score(pred, gt)
	if err != nil {
		return 0, err
	}
	return score.Metric, nil
}
