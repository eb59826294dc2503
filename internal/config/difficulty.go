package config

import "math"

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a session.
type ProgressionConfig struct {
	Type  string `yaml:"type" toml:"type"`     // "score", "time", or "none"
	MaxAt int    `yaml:"max_at" toml:"max_at"` // Score or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"` // Added to speed at max difficulty
	SpawnMultiplier float64 `yaml:"spawn_multiplier" toml:"spawn_multiplier"` // Added to spawn rates at max difficulty
}

func (c DifficultyConfig) validate() error {
	if math.IsNaN(c.InitialLevel) || c.InitialLevel < 0 || c.InitialLevel > 1 {
		return invalid("difficulty initial_level %v outside [0,1]", c.InitialLevel)
	}
	switch c.Progression.Type {
	case "", "none", "score", "time":
	default:
		return invalid("difficulty progression %q", c.Progression.Type)
	}
	if c.Scaling.SpeedMultiplier < 0 || c.Scaling.SpawnMultiplier < 0 {
		return invalid("difficulty multipliers must not be negative")
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset overrides cfg with a named preset. An empty name keeps cfg.
func ApplyPreset(cfg *DifficultyConfig, name string) error {
	switch preset := DifficultyPreset(name); preset {
	case "":
		return nil
	case DifficultyFixed:
		cfg.Enabled = false
		return nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		cfg.InitialLevel = InitialLevelForPreset(preset)
		return nil
	default:
		return invalid("unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0, 1)
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none" && d.cfg.Progression.Type != ""
}

// Level returns the current difficulty level (0.0 to 1.0) based on score or
// elapsed seconds.
func (d *DifficultyManager) Level(score int, elapsed float64) float64 {
	if !d.IsEnabled() {
		return d.cfg.InitialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = elapsed / maxAt
	}
	progress = clampF(progress, 0.0, 1.0)

	return d.cfg.InitialLevel + progress*(1.0-d.cfg.InitialLevel)
}

// Speed scales baseSpeed from base to base * (1 + speed_multiplier).
func (d *DifficultyManager) Speed(baseSpeed float64, score int, elapsed float64) float64 {
	return baseSpeed * (1.0 + d.Level(score, elapsed)*d.cfg.Scaling.SpeedMultiplier)
}

// Rate scales a per-frame spawn probability, capped at 1.
func (d *DifficultyManager) Rate(baseRate float64, score int, elapsed float64) float64 {
	return math.Min(1, baseRate*(1.0+d.Level(score, elapsed)*d.cfg.Scaling.SpawnMultiplier))
}

// Period shortens a spawn period as the rate rises.
func (d *DifficultyManager) Period(basePeriod float64, score int, elapsed float64) float64 {
	return basePeriod / (1.0 + d.Level(score, elapsed)*d.cfg.Scaling.SpawnMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
