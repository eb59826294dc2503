package entity

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/frame-arcade/internal/core"
)

// ErrNonFinite is returned when spawning a member whose position is NaN or infinite.
var ErrNonFinite = errors.New("entity: non-finite position")

// Member is anything a Pool can hold.
type Member interface {
	Alive() bool
	Position() core.Vec2
}

// Pool is an ordered collection of members that is filtered once per frame.
// It is not safe for concurrent use; only the frame loop touches it.
type Pool[T Member] struct {
	items []T
}

// NewPool returns an empty pool with room for capacity members.
func NewPool[T Member](capacity int) *Pool[T] {
	return &Pool[T]{items: make([]T, 0, capacity)}
}

// Spawn appends a member to the end of the pool.
func (p *Pool[T]) Spawn(m T) error {
	if pos := m.Position(); !pos.Finite() {
		return fmt.Errorf("%w: (%v, %v)", ErrNonFinite, pos.X, pos.Y)
	}
	p.items = append(p.items, m)
	return nil
}

// ForEachAlive calls fn for every alive member in spawn order.
// Members killed by fn earlier in the pass are skipped.
func (p *Pool[T]) ForEachAlive(fn func(T)) {
	for _, m := range p.items {
		if m.Alive() {
			fn(m)
		}
	}
}

// Reap removes every member that is no longer alive or whose position became
// non-finite, keeping survivors in their original order. It returns the
// number of members removed.
func (p *Pool[T]) Reap() int {
	valid := p.items[:0]
	for _, m := range p.items {
		if m.Alive() && m.Position().Finite() {
			valid = append(valid, m)
		}
	}

	removed := len(p.items) - len(valid)
	// Release references held by the tail.
	var zero T
	for i := len(valid); i < len(p.items); i++ {
		p.items[i] = zero
	}
	p.items = valid
	return removed
}

// Len returns the number of members, alive or not.
func (p *Pool[T]) Len() int {
	return len(p.items)
}

// CountAlive returns the number of alive members.
func (p *Pool[T]) CountAlive() int {
	n := 0
	for _, m := range p.items {
		if m.Alive() {
			n++
		}
	}
	return n
}

// Items returns the backing slice. Callers must not keep it across a Reap.
func (p *Pool[T]) Items() []T {
	return p.items
}

// Clear removes all members.
func (p *Pool[T]) Clear() {
	var zero T
	for i := range p.items {
		p.items[i] = zero
	}
	p.items = p.items[:0]
}
