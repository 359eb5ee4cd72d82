package config

import "math"

// DifficultyManager calculates dynamic prototype parameters based on
// score or elapsed time.
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

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) from the score
// and the elapsed simulated seconds.
func (d *DifficultyManager) Level(score int, elapsed float64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = elapsed / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed scales a base speed from base to base * (1 + speed_multiplier).
func (d *DifficultyManager) Speed(baseSpeed float64, score int, elapsed float64) float64 {
	return baseSpeed * (1.0 + d.Level(score, elapsed)*d.cfg.Scaling.SpeedMultiplier)
}

// Health scales a base monster health the same way.
func (d *DifficultyManager) Health(baseHealth float64, score int, elapsed float64) float64 {
	return baseHealth * (1.0 + d.Level(score, elapsed)*d.cfg.Scaling.HealthMultiplier)
}

// WaveSize returns how many monsters a wave spawns. It never drops below
// the base size.
func (d *DifficultyManager) WaveSize(base int, score int, elapsed float64) int {
	n := int(math.Round(float64(base) * (1.0 + d.Level(score, elapsed)*d.cfg.Scaling.WaveMultiplier)))
	if n < base {
		n = base
	}
	return n
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
