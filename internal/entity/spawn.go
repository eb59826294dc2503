package entity

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/frame-arcade/internal/core"
)

// ErrInvalidSpawn is returned for spawn configurations that cannot work.
var ErrInvalidSpawn = errors.New("entity: invalid spawn config")

// Spawner decides how many entities to spawn on a frame.
type Spawner interface {
	Due(frame core.Frame, rng *rand.Rand) int
}

// SpawnConfig describes a spawn policy in a game config file.
type SpawnConfig struct {
	// Mode is "chance" (random threshold each frame) or "period" (fixed timer).
	Mode string `yaml:"mode" toml:"mode"`
	// Chance is the spawn probability per reference frame for "chance".
	Chance float64 `yaml:"chance" toml:"chance"`
	// Period is the interval in seconds for "period".
	Period float64 `yaml:"period" toml:"period"`
}

// Validate checks the policy without building it.
func (c SpawnConfig) Validate() error {
	switch c.Mode {
	case "chance":
		if math.IsNaN(c.Chance) || c.Chance < 0 || c.Chance > 1 {
			return fmt.Errorf("%w: chance %v outside [0,1]", ErrInvalidSpawn, c.Chance)
		}
	case "period":
		if math.IsNaN(c.Period) || math.IsInf(c.Period, 0) || c.Period <= 0 {
			return fmt.Errorf("%w: period %v must be positive", ErrInvalidSpawn, c.Period)
		}
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidSpawn, c.Mode)
	}
	return nil
}

// NewSpawner builds the spawner described by c.
func NewSpawner(c SpawnConfig) (Spawner, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Mode == "chance" {
		return &ChanceSpawner{Chance: c.Chance}, nil
	}
	return &PeriodSpawner{Period: c.Period}, nil
}

// ChanceSpawner spawns at most one entity per frame with a fixed probability
// per reference frame. Longer frames get a proportionally higher chance so
// the spawn rate does not depend on the tick rate.
type ChanceSpawner struct {
	Chance float64
}

// Due rolls once for the frame.
func (s *ChanceSpawner) Due(frame core.Frame, rng *rand.Rand) int {
	p := s.Chance
	if steps := frame.Steps(); steps != 1 && steps > 0 {
		p = 1 - math.Pow(1-p, steps)
	}
	if rng.Float64() < p {
		return 1
	}
	return 0
}

// PeriodSpawner spawns one entity every Period seconds.
type PeriodSpawner struct {
	Period float64
	acc    float64
}

// Due accumulates frame time and returns how many periods elapsed.
func (s *PeriodSpawner) Due(frame core.Frame, _ *rand.Rand) int {
	s.acc += frame.Delta
	n := 0
	for s.acc >= s.Period {
		s.acc -= s.Period
		n++
	}
	return n
}

// Reset clears the accumulated time.
func (s *PeriodSpawner) Reset() {
	s.acc = 0
}
