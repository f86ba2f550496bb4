package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Run is the persisted summary of one evaluation run.
type Run struct {
	RunID               string          `json:"run_id"`
	CreatedAt           int64           `json:"created_at"` // unix nanos
	PenaltyWeight       float64         `json:"penalty_weight"`
	FrameCount          int             `json:"frame_count"`
	FailedCount         int             `json:"failed_count"`
	MeanMetric          float64         `json:"mean_metric"`
	StdDevMetric        float64         `json:"stddev_metric"`
	MedianMetric        float64         `json:"median_metric"`
	P95Metric           float64         `json:"p95_metric"`
	MinMetric           float64         `json:"min_metric"`
	MaxMetric           float64         `json:"max_metric"`
	MeanDisplacement    float64         `json:"mean_displacement"`
	TotalExtraOrMissing int             `json:"total_extra_or_missing"`
	ParamsJSON          json.RawMessage `json:"params_json,omitempty"`
}

// FrameScore is the persisted result for one frame of a run. Error is empty
// for frames that scored successfully.
type FrameScore struct {
	RunID          string          `json:"run_id"`
	Seq            int             `json:"seq"`
	FrameID        string          `json:"frame_id"`
	Metric         float64         `json:"metric"`
	Displacement   float64         `json:"displacement"`
	ExtraOrMissing int             `json:"extra_or_missing"`
	PredCount      int             `json:"pred_count"`
	GTCount        int             `json:"gt_count"`
	PairsJSON      json.RawMessage `json:"pairs_json,omitempty"`
	Error          string          `json:"error,omitempty"`
}

const runColumns = `run_id, created_at, penalty_weight, frame_count, failed_count,
	mean_metric, stddev_metric, median_metric, p95_metric, min_metric, max_metric,
	mean_displacement, total_extra_or_missing, params_json`

// InsertRun persists a run and its frame scores in one transaction. If
// RunID is empty a UUID is generated; a zero CreatedAt is set to now.
func (s *Store) InsertRun(run *Run, frames []FrameScore) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = s.clock.Now().UnixNano()
	}

	return retryOnBusy(s.clock, func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback()

		_, err = tx.Exec(`INSERT INTO evaluation_runs (`+runColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, run.CreatedAt, run.PenaltyWeight, run.FrameCount, run.FailedCount,
			run.MeanMetric, run.StdDevMetric, run.MedianMetric, run.P95Metric, run.MinMetric, run.MaxMetric,
			run.MeanDisplacement, run.TotalExtraOrMissing, nullableJSON(run.ParamsJSON),
		)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		stmt, err := tx.Prepare(`INSERT INTO frame_scores (
				run_id, seq, frame_id, metric, displacement, extra_or_missing,
				pred_count, gt_count, pairs_json, error
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare frame insert: %w", err)
		}
		defer stmt.Close()

		for i := range frames {
			f := &frames[i]
			f.RunID = run.RunID
			var errStr interface{}
			if f.Error != "" {
				errStr = f.Error
			}
			if _, err := stmt.Exec(
				f.RunID, f.Seq, f.FrameID, f.Metric, f.Displacement, f.ExtraOrMissing,
				f.PredCount, f.GTCount, nullableJSON(f.PairsJSON), errStr,
			); err != nil {
				return fmt.Errorf("insert frame %q: %w", f.FrameID, err)
			}
		}

		return tx.Commit()
	})
}

// GetRun returns a single run by ID.
func (s *Store) GetRun(runID string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM evaluation_runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	return r, err
}

// ListRuns returns the most recent runs, newest first. A limit ≤ 0 returns
// all runs.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.Query(`SELECT `+runColumns+` FROM evaluation_runs
		ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// FrameScores returns the frame results of a run in input order.
func (s *Store) FrameScores(runID string) ([]FrameScore, error) {
	rows, err := s.db.Query(`
		SELECT run_id, seq, frame_id, metric, displacement, extra_or_missing,
		       pred_count, gt_count, pairs_json, error
		FROM frame_scores
		WHERE run_id = ?
		ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query frame scores: %w", err)
	}
	defer rows.Close()

	var out []FrameScore
	for rows.Next() {
		var f FrameScore
		var pairs, errStr sql.NullString
		if err := rows.Scan(
			&f.RunID, &f.Seq, &f.FrameID, &f.Metric, &f.Displacement, &f.ExtraOrMissing,
			&f.PredCount, &f.GTCount, &pairs, &errStr,
		); err != nil {
			return nil, fmt.Errorf("scan frame score row: %w", err)
		}
		if pairs.Valid {
			f.PairsJSON = json.RawMessage(pairs.String)
		}
		f.Error = errStr.String
		out = append(out, f)
	}
	return out, rows.Err()
}

// DeleteRun removes a run; its frame scores cascade.
func (s *Store) DeleteRun(runID string) error {
	return retryOnBusy(s.clock, func() error {
		result, err := s.db.Exec(`DELETE FROM evaluation_runs WHERE run_id = ?`, runID)
		if err != nil {
			return fmt.Errorf("delete run: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("run %s: %w", runID, ErrNotFound)
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	var params sql.NullString
	err := row.Scan(
		&r.RunID, &r.CreatedAt, &r.PenaltyWeight, &r.FrameCount, &r.FailedCount,
		&r.MeanMetric, &r.StdDevMetric, &r.MedianMetric, &r.P95Metric, &r.MinMetric, &r.MaxMetric,
		&r.MeanDisplacement, &r.TotalExtraOrMissing, &params,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run row: %w", err)
	}
	if params.Valid {
		r.ParamsJSON = json.RawMessage(params.String)
	}
	return &r, nil
}

func nullableJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
