package config

import (
	"math"

	"github.com/vovakirdan/bizsim/internal/econ"
)

// DifficultyManager calculates event pressure based on the elapsed periods.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) for a period.
func (d *DifficultyManager) Level(period int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "period" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}
	progress := clampF(float64(period)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// EventFactor is the multiplier applied to every event probability.
// It grows from 1 to 1 + event_multiplier as the level reaches 1.
func (d *DifficultyManager) EventFactor(period int) float64 {
	return 1.0 + d.Level(period)*d.cfg.Scaling.EventMultiplier
}

// Events returns the catalog with probabilities scaled for the period.
func (d *DifficultyManager) Events(catalog []econ.EventSpec, period int) []econ.EventSpec {
	if len(catalog) == 0 {
		return nil
	}
	return econ.ScaleProbability(catalog, d.EventFactor(period))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
