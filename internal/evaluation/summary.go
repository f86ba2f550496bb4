package evaluation

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Report is the result of one harness run.
type Report struct {
	RunID         string        `json:"run_id"`
	CreatedAt     time.Time     `json:"created_at"`
	PenaltyWeight float64       `json:"penalty_weight"`
	Workers       int           `json:"workers"`
	Results       []FrameResult `json:"results"`
	Summary       Summary       `json:"summary"`
}

// Summary aggregates the metric over the successfully scored frames of a
// run. All statistics are zero when no frame scored.
type Summary struct {
	Frames              int     `json:"frames"`
	Scored              int     `json:"scored"`
	Failed              int     `json:"failed"`
	MeanMetric          float64 `json:"mean_metric"`
	StdDevMetric        float64 `json:"stddev_metric"` // sample std-dev; 0 for fewer than two frames
	MedianMetric        float64 `json:"median_metric"` // empirical quantile
	P95Metric           float64 `json:"p95_metric"`    // empirical quantile
	MinMetric           float64 `json:"min_metric"`
	MaxMetric           float64 `json:"max_metric"`
	MeanDisplacement    float64 `json:"mean_displacement"`
	TotalExtraOrMissing int     `json:"total_extra_or_missing"`
}

// Summarize computes run statistics from frame results.
func Summarize(results []FrameResult) Summary {
	s := Summary{Frames: len(results)}

	metrics := make([]float64, 0, len(results))
	displacements := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			continue
		}
		metrics = append(metrics, r.Score.Metric)
		displacements = append(displacements, r.Score.Displacement)
		s.TotalExtraOrMissing += r.Score.ExtraOrMissing
	}
	s.Scored = len(metrics)
	if s.Scored == 0 {
		return s
	}

	s.MeanMetric = stat.Mean(metrics, nil)
	if s.Scored > 1 {
		s.StdDevMetric = stat.StdDev(metrics, nil)
	}
	s.MeanDisplacement = stat.Mean(displacements, nil)

	sorted := append([]float64(nil), metrics...)
	sort.Float64s(sorted)
	s.MedianMetric = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P95Metric = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	s.MinMetric = floats.Min(sorted)
	s.MaxMetric = floats.Max(sorted)
	return s
}

// Metrics returns the metric of every successfully scored frame, in input
// order.
func (r *Report) Metrics() []float64 {
	out := make([]float64, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Err == nil {
			out = append(out, res.Score.Metric)
		}
	}
	return out
}
