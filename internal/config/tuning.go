package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
const DefaultConfigPath = "config/tuning.defaults.json"

// Fallbacks used by the Get* methods when a field is absent.
const (
	defaultPenaltyWeight = 100.0
	defaultWorkers       = 4
	defaultRunTimeout    = 5 * time.Minute
	defaultHistogramBins = 20
	defaultDatabasePath  = "pointmetric.db"
)

// TuningConfig holds the knobs for batch evaluation runs. Every field is
// optional; absent fields fall back to the defaults returned by the getters.
type TuningConfig struct {
	// Metric params
	PenaltyWeight *float64 `json:"penalty_weight,omitempty"`

	// Harness params
	Workers    *int    `json:"workers,omitempty"`
	RunTimeout *string `json:"run_timeout,omitempty"` // duration string like "90s"; "0s" disables

	// Reporting / persistence
	HistogramBins *int    `json:"histogram_bins,omitempty"`
	DatabasePath  *string `json:"database_path,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file must have a .json extension and be under 1MB. Fields omitted
// from the file keep their defaults, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath,
// searching the current directory and its parents up to the repo root.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/<pkg>/
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.PenaltyWeight != nil {
		k := *c.PenaltyWeight
		if math.IsNaN(k) || math.IsInf(k, 0) || k < 0 {
			return fmt.Errorf("penalty_weight must be finite and non-negative, got %v", k)
		}
	}

	if c.Workers != nil && *c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", *c.Workers)
	}

	if c.RunTimeout != nil && *c.RunTimeout != "" {
		d, err := time.ParseDuration(*c.RunTimeout)
		if err != nil {
			return fmt.Errorf("invalid run_timeout '%s': %w", *c.RunTimeout, err)
		}
		if d < 0 {
			return fmt.Errorf("run_timeout must be non-negative, got %s", d)
		}
	}

	if c.HistogramBins != nil && *c.HistogramBins < 1 {
		return fmt.Errorf("histogram_bins must be at least 1, got %d", *c.HistogramBins)
	}

	if c.DatabasePath != nil && *c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty when set")
	}

	return nil
}

// GetPenaltyWeight returns the penalty_weight value or the default.
func (c *TuningConfig) GetPenaltyWeight() float64 {
	if c.PenaltyWeight == nil {
		return defaultPenaltyWeight
	}
	return *c.PenaltyWeight
}

// GetWorkers returns the workers value or the default.
func (c *TuningConfig) GetWorkers() int {
	if c.Workers == nil {
		return defaultWorkers
	}
	return *c.Workers
}

// GetRunTimeout returns the run_timeout as a time.Duration. Zero means the
// run is bounded only by its caller's context.
func (c *TuningConfig) GetRunTimeout() time.Duration {
	if c.RunTimeout == nil || *c.RunTimeout == "" {
		return defaultRunTimeout
	}
	d, err := time.ParseDuration(*c.RunTimeout)
	if err != nil {
		return defaultRunTimeout // default on parse error
	}
	return d
}

// GetHistogramBins returns the histogram_bins value or the default.
func (c *TuningConfig) GetHistogramBins() int {
	if c.HistogramBins == nil {
		return defaultHistogramBins
	}
	return *c.HistogramBins
}

// GetDatabasePath returns the database_path value or the default.
func (c *TuningConfig) GetDatabasePath() string {
	if c.DatabasePath == nil {
		return defaultDatabasePath
	}
	return *c.DatabasePath
}
