package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestEmptyTuningConfig_Getters(t *testing.T) {
	cfg := EmptyTuningConfig()

	assert.Equal(t, 100.0, cfg.GetPenaltyWeight())
	assert.Equal(t, 4, cfg.GetWorkers())
	assert.Equal(t, 5*time.Minute, cfg.GetRunTimeout())
	assert.Equal(t, 20, cfg.GetHistogramBins())
	assert.Equal(t, "pointmetric.db", cfg.GetDatabasePath())
	assert.NoError(t, cfg.Validate())
}

func TestLoadTuningConfig(t *testing.T) {
	path := writeConfig(t, "test_config.json", `{
  "penalty_weight": 10,
  "workers": 2,
  "run_timeout": "90s",
  "histogram_bins": 8,
  "database_path": "/tmp/eval.db"
}`)

	cfg, err := LoadTuningConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.GetPenaltyWeight())
	assert.Equal(t, 2, cfg.GetWorkers())
	assert.Equal(t, 90*time.Second, cfg.GetRunTimeout())
	assert.Equal(t, 8, cfg.GetHistogramBins())
	assert.Equal(t, "/tmp/eval.db", cfg.GetDatabasePath())
}

func TestLoadTuningConfig_Partial(t *testing.T) {
	path := writeConfig(t, "partial.json", `{"penalty_weight": 0}`)

	cfg, err := LoadTuningConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.0, cfg.GetPenaltyWeight())
	assert.Equal(t, 4, cfg.GetWorkers(), "omitted fields keep defaults")
}

func TestLoadTuningConfig_ZeroTimeoutDisables(t *testing.T) {
	path := writeConfig(t, "notimeout.json", `{"run_timeout": "0s"}`)

	cfg, err := LoadTuningConfig(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.GetRunTimeout())
}

func TestLoadTuningConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"wrong_extension", "config.yaml", `{}`, ".json extension"},
		{"bad_json", "bad.json", `{"penalty_weight": }`, "parse config JSON"},
		{"negative_penalty", "neg.json", `{"penalty_weight": -1}`, "penalty_weight"},
		{"zero_workers", "workers.json", `{"workers": 0}`, "workers"},
		{"bad_timeout", "timeout.json", `{"run_timeout": "soon"}`, "run_timeout"},
		{"negative_timeout", "negtimeout.json", `{"run_timeout": "-1s"}`, "run_timeout"},
		{"zero_bins", "bins.json", `{"histogram_bins": 0}`, "histogram_bins"},
		{"empty_db_path", "db.json", `{"database_path": ""}`, "database_path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.body)
			_, err := LoadTuningConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadTuningConfig_Missing(t *testing.T) {
	_, err := LoadTuningConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat config file")
}

func TestLoadTuningConfig_TooLarge(t *testing.T) {
	body := `{"database_path": "` + strings.Repeat("a", 1024*1024) + `"}`
	path := writeConfig(t, "huge.json", body)
	_, err := LoadTuningConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestMustLoadDefaultConfig(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, 100.0, cfg.GetPenaltyWeight())
	assert.Equal(t, 4, cfg.GetWorkers())
	assert.Equal(t, 20, cfg.GetHistogramBins())
}
