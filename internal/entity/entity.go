// Package entity holds the simulated objects of the arcade games and the
// ordered pools that carry them from frame to frame.
package entity

import (
	"math"

	"github.com/vovakirdan/frame-arcade/internal/core"
)

// Forever is a lifetime that never runs out.
var Forever = math.Inf(1)

// Entity is a simulated object: bullet, enemy, coin, particle.
//
// Life is measured in reference frames and Health in hit points; the entity
// expires when either drops to zero or when it is killed. Only entities with
// a positive MaxHealth take damage; for the rest Health is free for the
// game to use and only Life limits them.
type Entity struct {
	Pos       core.Vec2
	Vel       core.Vec2
	Life      float64
	Health    int
	MaxHealth int
	Kind      string

	// Hitbox. A positive Radius makes the entity a circle; otherwise the
	// half extents describe an axis-aligned box.
	Radius float64
	HalfW  float64
	HalfH  float64

	Dead bool
}

// New returns an immortal entity of the given kind at pos.
func New(kind string, pos, vel core.Vec2) *Entity {
	return &Entity{Kind: kind, Pos: pos, Vel: vel, Life: Forever}
}

// Alive reports whether the entity is still part of the simulation.
func (e *Entity) Alive() bool {
	if e.Dead || e.Life <= 0 {
		return false
	}
	if e.Damageable() && e.Health <= 0 {
		return false
	}
	return e.Pos.Finite()
}

// Damageable reports whether hit points limit the entity.
func (e *Entity) Damageable() bool {
	return e.MaxHealth > 0
}

// SetHealth makes the entity damageable with n hit points.
func (e *Entity) SetHealth(n int) {
	e.Health = n
	e.MaxHealth = n
}

// Position returns the entity's current position.
func (e *Entity) Position() core.Vec2 {
	return e.Pos
}

// Integrate moves the entity by its velocity and ages it, both scaled by
// steps reference frames.
func (e *Entity) Integrate(steps float64) {
	e.Pos = e.Pos.Add(e.Vel.Scale(steps))
	e.Life -= steps
}

// Kill marks the entity for removal on the next reap.
func (e *Entity) Kill() {
	e.Dead = true
}

// Damage subtracts hit points and reports whether the hit was fatal.
func (e *Entity) Damage(n int) bool {
	e.Health -= n
	if e.Health <= 0 {
		e.Dead = true
		return true
	}
	return false
}

// Shape returns the entity's hitbox at its current position.
func (e *Entity) Shape() core.Shape {
	if e.Radius > 0 {
		return core.Circle(e.Pos, e.Radius)
	}
	return core.Box(e.Pos, e.HalfW, e.HalfH)
}

// Hits reports whether two entities' hitboxes overlap.
func Hits(a, b *Entity) bool {
	return core.Overlaps(a.Shape(), b.Shape())
}
