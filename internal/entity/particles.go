package entity

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/frame-arcade/internal/core"
)

// Particle is a short-lived cosmetic entity.
type Particle struct {
	Entity
	MaxLife float64
	Color   core.Color
}

// Fade returns the remaining life as a fraction in [0, 1].
func (p *Particle) Fade() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return core.ClampF(p.Life/p.MaxLife, 0, 1)
}

// Burst spawns n particles spread evenly around at, each with a random speed
// in [minSpeed, minSpeed+jitter).
func Burst(pool *Pool[*Particle], rng *rand.Rand, at core.Vec2, n int, minSpeed, jitter, life float64, c core.Color) {
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		speed := minSpeed + rng.Float64()*jitter
		p := &Particle{
			Entity:  Entity{Kind: "particle", Pos: at, Life: life},
			MaxLife: life,
			Color:   c,
		}
		p.Vel = core.V(math.Cos(angle)*speed, math.Sin(angle)*speed)
		// Spawn only fails for a non-finite origin; the burst is skipped then.
		if pool.Spawn(p) != nil {
			return
		}
	}
}

// StepParticles moves and ages every particle, applies gravity and drag per
// reference frame and reaps the expired ones.
func StepParticles(pool *Pool[*Particle], steps, gravity, drag float64) {
	pool.ForEachAlive(func(p *Particle) {
		p.Integrate(steps)
		p.Vel.Y += gravity * steps
		if drag > 0 {
			k := math.Pow(drag, steps)
			p.Vel = p.Vel.Scale(k)
		}
	})
	pool.Reap()
}
