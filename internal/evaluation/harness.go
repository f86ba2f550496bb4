package evaluation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	pointmetric "github.com/stefan-kuepper/point-metric"
	"github.com/stefan-kuepper/point-metric/internal/config"
	"github.com/stefan-kuepper/point-metric/internal/monitoring"
	"github.com/stefan-kuepper/point-metric/internal/timeutil"
)

// Frame is one predicted / ground-truth comparison.
type Frame struct {
	ID   string               `json:"id"`
	Pred pointmetric.PointSet `json:"pred"`
	GT   pointmetric.PointSet `json:"gt"`
}

// FrameResult is the outcome of scoring one frame. Err is set, and Score
// left zero, when the frame's point sets were rejected.
type FrameResult struct {
	Seq     int               `json:"seq"`
	FrameID string            `json:"frame_id"`
	Score   pointmetric.Score `json:"score"`
	Err     error             `json:"-"`
	Elapsed time.Duration     `json:"elapsed_ns"`
}

// HarnessConfig holds configuration for the evaluation harness.
type HarnessConfig struct {
	// PenaltyWeight is the per-point cardinality penalty k.
	PenaltyWeight float64

	// Solver overrides the assignment solver; nil uses the default.
	Solver pointmetric.Solver

	// Workers bounds the number of frames scored concurrently.
	Workers int

	// RunTimeout bounds a whole run; zero disables the timeout.
	RunTimeout time.Duration

	// Clock stamps runs and times frames; nil uses the wall clock.
	Clock timeutil.Clock

	// OnFrame is called once per scored frame. Calls are serialised but
	// arrive in completion order, not input order.
	OnFrame func(FrameResult)
}

// DefaultHarnessConfig returns the built-in defaults.
func DefaultHarnessConfig() HarnessConfig {
	return HarnessConfigFromTuning(config.EmptyTuningConfig())
}

// HarnessConfigFromTuning builds a HarnessConfig from a loaded TuningConfig.
func HarnessConfigFromTuning(cfg *config.TuningConfig) HarnessConfig {
	return HarnessConfig{
		PenaltyWeight: cfg.GetPenaltyWeight(),
		Workers:       cfg.GetWorkers(),
		RunTimeout:    cfg.GetRunTimeout(),
	}
}

// Harness scores batches of frames under one configuration. It may be
// reused for many runs and shared between goroutines.
type Harness struct {
	cfg    HarnessConfig
	scorer *pointmetric.Scorer
	clock  timeutil.Clock
}

// NewHarness validates cfg and creates a harness.
func NewHarness(cfg HarnessConfig) (*Harness, error) {
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.RunTimeout < 0 {
		return nil, fmt.Errorf("run timeout must be non-negative, got %s", cfg.RunTimeout)
	}
	scorer, err := pointmetric.NewScorer(pointmetric.Config{
		PenaltyWeight: cfg.PenaltyWeight,
		Solver:        cfg.Solver,
	})
	if err != nil {
		return nil, err
	}
	return &Harness{cfg: cfg, scorer: scorer, clock: timeutil.OrReal(cfg.Clock)}, nil
}

// Run scores every frame and returns the report. Frames whose point sets are
// malformed or dimensionally inconsistent are reported as failed results.
// The run stops early, returning the context error, if ctx is cancelled or
// the configured timeout expires.
func (h *Harness) Run(ctx context.Context, frames []Frame) (*Report, error) {
	if h.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.RunTimeout)
		defer cancel()
	}

	runID := uuid.New().String()
	start := h.clock.Now()
	monitoring.Opsf("evaluation run %s started: %d frames, k=%g, workers=%d",
		runID, len(frames), h.cfg.PenaltyWeight, h.cfg.Workers)

	results := make([]FrameResult, len(frames))
	var cbMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.cfg.Workers)

	for i := range frames {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = h.scoreFrame(i, frames[i])
			if h.cfg.OnFrame != nil {
				cbMu.Lock()
				h.cfg.OnFrame(results[i])
				cbMu.Unlock()
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			monitoring.Opsf("evaluation run %s timed out after %s", runID, h.clock.Since(start))
		} else {
			monitoring.Opsf("evaluation run %s aborted: %v", runID, err)
		}
		return nil, err
	}

	report := &Report{
		RunID:         runID,
		CreatedAt:     start,
		PenaltyWeight: h.cfg.PenaltyWeight,
		Workers:       h.cfg.Workers,
		Results:       results,
		Summary:       Summarize(results),
	}

	s := report.Summary
	monitoring.Diagf("evaluation run %s: scored=%d failed=%d mean=%.4f median=%.4f p95=%.4f max=%.4f",
		runID, s.Scored, s.Failed, s.MeanMetric, s.MedianMetric, s.P95Metric, s.MaxMetric)
	monitoring.Opsf("evaluation run %s finished in %s", runID, h.clock.Since(start))
	return report, nil
}

func (h *Harness) scoreFrame(seq int, f Frame) FrameResult {
	id := f.ID
	if id == "" {
		id = fmt.Sprintf("frame-%d", seq)
	}

	start := h.clock.Now()
	score, err := h.scorer.Score(f.Pred, f.GT)
	res := FrameResult{
		Seq:     seq,
		FrameID: id,
		Elapsed: h.clock.Since(start),
	}
	if err != nil {
		res.Err = err
		res.Score = pointmetric.Score{
			PenaltyWeight: h.cfg.PenaltyWeight,
			PredCount:     len(f.Pred),
			GTCount:       len(f.GT),
		}
		monitoring.Tracef("frame %s rejected: %v", id, err)
		return res
	}
	res.Score = score
	monitoring.Tracef("frame %s: metric=%.4f displacement=%.4f extra_or_missing=%d",
		id, score.Metric, score.Displacement, score.ExtraOrMissing)
	return res
}
