// Package config loads the planner tuning parameters.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning is returned (wrapped) by Validate.
var ErrInvalidTuning = errors.New("invalid tuning")

// Default tuning values.
const (
	DefaultGridSize        = 0.25
	DefaultSafetyClearance = 0.4
	DefaultStopDistance    = 0.3
	DefaultLookaheadRadius = 1.0
	DefaultMaxExpansions   = 500000
)

const maxFileSize = 1 * 1024 * 1024 // 1MB

// Tuning holds the constants that shape planner behavior.
type Tuning struct {
	// GridSize is the lattice step length in meters.
	GridSize float64 `yaml:"grid_size"`
	// SafetyClearance is the full clearance width; a travel segment is
	// rejected when an obstacle comes within half of it.
	SafetyClearance float64 `yaml:"safety_clearance"`
	// StopDistance is the radius of the goal disc.
	StopDistance float64 `yaml:"stop_distance"`
	// LookaheadRadius selects how far ahead on the path the local goal is.
	LookaheadRadius float64 `yaml:"lookahead_radius"`
	// MaxExpansions caps one global search. Zero means unbounded.
	MaxExpansions int `yaml:"max_expansions"`
}

// Default returns the default tuning.
func Default() Tuning {
	return Tuning{
		GridSize:        DefaultGridSize,
		SafetyClearance: DefaultSafetyClearance,
		StopDistance:    DefaultStopDistance,
		LookaheadRadius: DefaultLookaheadRadius,
		MaxExpansions:   DefaultMaxExpansions,
	}
}

// Load reads a YAML tuning file. Fields omitted from the file keep their
// default values.
func Load(path string) (Tuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return Tuning{}, fmt.Errorf("config file must have .yaml or .yml extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return Tuning{}, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Tuning{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Tuning{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the values describe a usable planner.
func (t Tuning) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"grid_size", t.GridSize},
		{"safety_clearance", t.SafetyClearance},
		{"stop_distance", t.StopDistance},
		{"lookahead_radius", t.LookaheadRadius},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %f", ErrInvalidTuning, f.name, f.value)
		}
	}
	if t.GridSize <= 0 {
		return fmt.Errorf("%w: grid_size must be positive, got %f", ErrInvalidTuning, t.GridSize)
	}
	if t.SafetyClearance < 0 {
		return fmt.Errorf("%w: safety_clearance must be non-negative, got %f", ErrInvalidTuning, t.SafetyClearance)
	}
	// The nearest lattice point to any goal can be half a cell diagonal away.
	if minStop := t.GridSize * math.Sqrt2 / 2; t.StopDistance <= minStop {
		return fmt.Errorf("%w: stop_distance must exceed %f for grid_size %f, got %f",
			ErrInvalidTuning, minStop, t.GridSize, t.StopDistance)
	}
	if t.LookaheadRadius <= 0 {
		return fmt.Errorf("%w: lookahead_radius must be positive, got %f", ErrInvalidTuning, t.LookaheadRadius)
	}
	if t.MaxExpansions < 0 {
		return fmt.Errorf("%w: max_expansions must be non-negative, got %d", ErrInvalidTuning, t.MaxExpansions)
	}
	return nil
}
