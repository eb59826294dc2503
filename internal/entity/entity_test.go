package entity

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/frame-arcade/internal/core"
)

func TestReapPreservesOrder(t *testing.T) {
	p := NewPool[*Entity](8)
	for i := 0; i < 6; i++ {
		e := New("dot", core.V(float64(i), 0), core.V(0, 0))
		e.Life = float64(i % 3) // 0, 1, 2, 0, 1, 2
		if err := p.Spawn(e); err != nil {
			t.Fatalf("Spawn: %v", err)
		}
	}

	removed := p.Reap()
	if removed != 2 {
		t.Fatalf("Reap() = %d, expected 2", removed)
	}

	var xs []float64
	for _, e := range p.Items() {
		if e.Life <= 0 {
			t.Errorf("expired entity at x=%v survived", e.Pos.X)
		}
		xs = append(xs, e.Pos.X)
	}
	want := []float64{1, 2, 4, 5}
	if len(xs) != len(want) {
		t.Fatalf("survivors = %v, expected %v", xs, want)
	}
	for i := range want {
		if xs[i] != want[i] {
			t.Fatalf("survivors = %v, expected %v", xs, want)
		}
	}
}

func TestReapDropsKilledAndDamaged(t *testing.T) {
	p := NewPool[*Entity](4)
	a := New("a", core.V(0, 0), core.V(0, 0))
	b := New("b", core.V(1, 0), core.V(0, 0))
	b.SetHealth(2)
	c := New("c", core.V(2, 0), core.V(0, 0))
	for _, e := range []*Entity{a, b, c} {
		_ = p.Spawn(e)
	}

	a.Kill()
	if b.Damage(1) {
		t.Fatal("first hit should not be fatal")
	}
	if !b.Damage(1) {
		t.Fatal("second hit should be fatal")
	}

	var seen []string
	p.ForEachAlive(func(e *Entity) { seen = append(seen, e.Kind) })
	if len(seen) != 1 || seen[0] != "c" {
		t.Errorf("ForEachAlive visited %v, expected [c]", seen)
	}
	if p.CountAlive() != 1 {
		t.Errorf("CountAlive() = %d, expected 1", p.CountAlive())
	}

	p.Reap()
	if p.Len() != 1 || p.Items()[0] != c {
		t.Errorf("pool after reap has %d items", p.Len())
	}

	p.Clear()
	if p.Len() != 0 {
		t.Error("Clear should empty the pool")
	}
}

func TestHealthBoundary(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e *Entity)
		alive bool
	}{
		{"not damageable, zero health", func(e *Entity) {}, true},
		{"not damageable, health as payload", func(e *Entity) { e.Health = 3 }, true},
		{"damageable, full health", func(e *Entity) { e.SetHealth(2) }, true},
		{"damageable, health set to zero", func(e *Entity) { e.SetHealth(2); e.Health = 0 }, false},
		{"damageable, health below zero", func(e *Entity) { e.SetHealth(2); e.Health = -1 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := New("crate", core.V(0, 0), core.V(0, 0))
			tc.setup(e)
			if got := e.Alive(); got != tc.alive {
				t.Errorf("Alive() = %v, expected %v", got, tc.alive)
			}
		})
	}
}

func TestSpawnRejectsNonFinite(t *testing.T) {
	p := NewPool[*Entity](1)
	for _, pos := range []core.Vec2{core.V(math.NaN(), 0), core.V(0, math.Inf(-1))} {
		err := p.Spawn(New("bad", pos, core.V(0, 0)))
		if !errors.Is(err, ErrNonFinite) {
			t.Errorf("Spawn(%v) error = %v, expected ErrNonFinite", pos, err)
		}
	}
	if p.Len() != 0 {
		t.Errorf("pool holds %d rejected entities", p.Len())
	}

	// A position that turns non-finite after spawning is reaped.
	e := New("drift", core.V(0, 0), core.V(math.Inf(1), 0))
	if err := p.Spawn(e); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	e.Integrate(1)
	if p.Reap() != 1 || p.Len() != 0 {
		t.Error("entity with non-finite position should be reaped")
	}
}

func TestIntegrate(t *testing.T) {
	e := New("bullet", core.V(10, 10), core.V(0, -4))
	e.Life = 3
	e.Integrate(0.5)
	if e.Pos != core.V(10, 8) || e.Life != 2.5 {
		t.Errorf("after half step pos=%v life=%v", e.Pos, e.Life)
	}
	e.Integrate(2.5)
	if e.Alive() {
		t.Error("entity should expire when its life runs out")
	}
}

func TestHits(t *testing.T) {
	enemy := New("enemy", core.V(0, 0), core.V(0, 0))
	enemy.Radius = 5
	player := New("player", core.V(3, 0), core.V(0, 0))
	player.Radius = 5

	if !Hits(enemy, player) || !Hits(player, enemy) {
		t.Error("circles 3 apart with radius 5 should overlap")
	}

	box := New("crate", core.V(20, 0), core.V(0, 0))
	box.HalfW, box.HalfH = 5, 5
	if Hits(enemy, box) {
		t.Error("circle and distant box should not overlap")
	}
}

func TestNewSpawnerValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  SpawnConfig
		ok   bool
	}{
		{"chance", SpawnConfig{Mode: "chance", Chance: 0.02}, true},
		{"period", SpawnConfig{Mode: "period", Period: 1.2}, true},
		{"chance above one", SpawnConfig{Mode: "chance", Chance: 1.5}, false},
		{"negative chance", SpawnConfig{Mode: "chance", Chance: -0.1}, false},
		{"zero period", SpawnConfig{Mode: "period"}, false},
		{"nan period", SpawnConfig{Mode: "period", Period: math.NaN()}, false},
		{"unknown mode", SpawnConfig{Mode: "burst", Period: 1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSpawner(tc.cfg)
			if tc.ok {
				if err != nil || s == nil {
					t.Fatalf("NewSpawner() = %v, %v", s, err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidSpawn) {
				t.Errorf("NewSpawner() error = %v, expected ErrInvalidSpawn", err)
			}
		})
	}
}

func TestPeriodSpawner(t *testing.T) {
	s := &PeriodSpawner{Period: 0.5}
	f := core.Frame{Delta: 0.25}

	got := 0
	for i := 0; i < 8; i++ {
		got += s.Due(f, nil)
	}
	if got != 4 {
		t.Errorf("spawned %d over 2s, expected 4", got)
	}

	// One long frame catches up on every missed period.
	if n := s.Due(core.Frame{Delta: 1.0}, nil); n != 2 {
		t.Errorf("Due(1s) = %d, expected 2", n)
	}
}

func TestChanceSpawner(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	never := &ChanceSpawner{Chance: 0}
	always := &ChanceSpawner{Chance: 1}
	frame := core.Frame{Delta: 1.0 / 60}
	for i := 0; i < 100; i++ {
		if never.Due(frame, rng) != 0 {
			t.Fatal("chance 0 spawned")
		}
		if always.Due(frame, rng) != 1 {
			t.Fatal("chance 1 did not spawn")
		}
	}

	// The rate per second should not depend on the tick rate.
	s := &ChanceSpawner{Chance: 0.05}
	count := func(fps int) int {
		r := rand.New(rand.NewSource(1))
		f := core.Frame{Delta: 1.0 / float64(fps)}
		n := 0
		for i := 0; i < fps*200; i++ {
			n += s.Due(f, r)
		}
		return n
	}
	at60, at30 := count(60), count(30)
	// Expected about 600 and 585 over 200 seconds.
	if at60 < 500 || at60 > 700 || at30 < 490 || at30 > 690 {
		t.Errorf("spawns at 60fps=%d, 30fps=%d", at60, at30)
	}
}
