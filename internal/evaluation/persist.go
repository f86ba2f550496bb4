package evaluation

import (
	"encoding/json"
	"fmt"

	"github.com/stefan-kuepper/point-metric/internal/config"
	"github.com/stefan-kuepper/point-metric/internal/store"
	"github.com/stefan-kuepper/point-metric/internal/version"
)

// runParams is the configuration snapshot stored alongside a run.
type runParams struct {
	PenaltyWeight float64 `json:"penalty_weight"`
	Workers       int     `json:"workers"`
	Version       string  `json:"version"`
}

// OpenStore opens the result database named by cfg's database_path.
func OpenStore(cfg *config.TuningConfig) (*store.Store, error) {
	return store.Open(cfg.GetDatabasePath())
}

// Persist writes a report and all of its frame results to s.
func Persist(s *store.Store, r *Report) error {
	params, err := json.Marshal(runParams{
		PenaltyWeight: r.PenaltyWeight,
		Workers:       r.Workers,
		Version:       version.String(),
	})
	if err != nil {
		return fmt.Errorf("marshal run params: %w", err)
	}

	sum := r.Summary
	run := &store.Run{
		RunID:               r.RunID,
		CreatedAt:           r.CreatedAt.UnixNano(),
		PenaltyWeight:       r.PenaltyWeight,
		FrameCount:          sum.Frames,
		FailedCount:         sum.Failed,
		MeanMetric:          sum.MeanMetric,
		StdDevMetric:        sum.StdDevMetric,
		MedianMetric:        sum.MedianMetric,
		P95Metric:           sum.P95Metric,
		MinMetric:           sum.MinMetric,
		MaxMetric:           sum.MaxMetric,
		MeanDisplacement:    sum.MeanDisplacement,
		TotalExtraOrMissing: sum.TotalExtraOrMissing,
		ParamsJSON:          params,
	}

	frames := make([]store.FrameScore, len(r.Results))
	for i, res := range r.Results {
		f := store.FrameScore{
			Seq:       res.Seq,
			FrameID:   res.FrameID,
			PredCount: res.Score.PredCount,
			GTCount:   res.Score.GTCount,
		}
		if res.Err != nil {
			f.Error = res.Err.Error()
		} else {
			pairs, err := json.Marshal(res.Score.Pairs)
			if err != nil {
				return fmt.Errorf("marshal pairs for frame %s: %w", res.FrameID, err)
			}
			f.Metric = res.Score.Metric
			f.Displacement = res.Score.Displacement
			f.ExtraOrMissing = res.Score.ExtraOrMissing
			f.PairsJSON = pairs
		}
		frames[i] = f
	}

	if err := s.InsertRun(run, frames); err != nil {
		return fmt.Errorf("persist run %s: %w", r.RunID, err)
	}
	return nil
}
