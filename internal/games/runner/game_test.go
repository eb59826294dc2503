package runner

import (
	"strings"
	"testing"

	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/entity"
)

const dt = 1.0 / 60

func frame(i int, actions ...core.Action) core.Frame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return core.Frame{Index: uint64(i), Delta: dt, Elapsed: float64(i) * dt, Input: in}
}

func newGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	if err := g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	// Keep random obstacles out of tests that do not ask for them.
	for i := range g.cfg.Levels {
		g.cfg.Levels[i].ObstacleChance = 0
	}
	g.cfg.Coins.Spawn.Chance = 0
	g.coinSpawner = &entity.ChanceSpawner{}
	return g
}

func step(t *testing.T, g *Game, from, n int, actions ...core.Action) {
	t.Helper()
	for i := from; i < from+n; i++ {
		if err := g.Update(frame(i, actions...)); err != nil {
			t.Fatal(err)
		}
	}
}

func hasCue(cues []core.Cue, c core.Cue) bool {
	for _, x := range cues {
		if x == c {
			return true
		}
	}
	return false
}

func TestReset(t *testing.T) {
	g := newGame(t, 1)
	if g.player != core.V(150, 250) || g.level != 1 || g.flipped {
		t.Errorf("player %v level %d flipped %v", g.player, g.level, g.flipped)
	}
	if g.ceilingY != 60 || g.groundY != 440 {
		t.Errorf("corridor %v..%v, expected 60..440", g.ceilingY, g.groundY)
	}
}

func TestGravityFlip(t *testing.T) {
	g := newGame(t, 1)

	step(t, g, 1, 120)
	if g.player.Y != 440-12.5 {
		t.Errorf("player y = %v, expected resting on the floor at 427.5", g.player.Y)
	}

	step(t, g, 121, 1, core.ActionFire)
	if !g.flipped || g.flips != 1 {
		t.Fatalf("flipped %v flips %d", g.flipped, g.flips)
	}
	if !hasCue(g.DrainCues(), core.CueFlip) {
		t.Error("flip did not emit a cue")
	}

	step(t, g, 122, 120)
	if g.player.Y != 60+12.5 {
		t.Errorf("player y = %v, expected resting on the ceiling at 72.5", g.player.Y)
	}
}

func TestPointerFlips(t *testing.T) {
	g := newGame(t, 1)
	f := frame(1)
	f.Input.Pointer = core.Pointer{X: 3, Y: 4, Pressed: true}
	if err := g.Update(f); err != nil {
		t.Fatal(err)
	}
	if !g.flipped {
		t.Error("click should flip gravity")
	}
}

func TestObstacleGap(t *testing.T) {
	g := newGame(t, 5)
	for i := range g.cfg.Levels {
		g.cfg.Levels[i].ObstacleChance = 1
	}

	step(t, g, 1, 30)
	if n := g.obstacles.Len(); n != 0 {
		t.Fatalf("%d obstacles before the first gap opened", n)
	}
	step(t, g, 31, 30)
	if n := g.obstacles.Len(); n != 1 {
		t.Fatalf("%d obstacles after 60 frames, expected exactly 1", n)
	}
	o := g.obstacles.Items()[0]
	if w := 2 * o.HalfW; w < 25 || w > 45 {
		t.Errorf("obstacle width %v outside [25, 45]", w)
	}
	if h := 2 * o.HalfH; h < 30 || h > 70 {
		t.Errorf("obstacle height %v outside [30, 70]", h)
	}
}

func TestCrash(t *testing.T) {
	g := newGame(t, 1)
	o := &Obstacle{Entity: *entity.New("obstacle", g.player, core.Vec2{})}
	o.HalfW, o.HalfH = 15, 20
	if err := g.obstacles.Spawn(o); err != nil {
		t.Fatal(err)
	}

	step(t, g, 1, 1)
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}
	if !hasCue(g.DrainCues(), core.CueCrash) {
		t.Error("crash did not emit a cue")
	}
	dist := g.dist
	step(t, g, 2, 10)
	if g.dist != dist {
		t.Error("distance kept growing after game over")
	}
}

func TestCoinPickup(t *testing.T) {
	g := newGame(t, 1)
	c := entity.New("coin", g.player.Add(core.V(15, 0)), core.Vec2{})
	c.Radius = g.cfg.Coins.Radius
	if err := g.coins.Spawn(c); err != nil {
		t.Fatal(err)
	}

	step(t, g, 1, 1)
	if g.coinsHit != 1 || g.coins.Len() != 0 {
		t.Fatalf("coins %d, pool %d", g.coinsHit, g.coins.Len())
	}
	if g.score != 50 {
		t.Errorf("score = %d, expected 50 for one coin", g.score)
	}
	if !hasCue(g.DrainCues(), core.CueCoin) {
		t.Error("pickup did not emit a cue")
	}
}

func TestDistanceLevels(t *testing.T) {
	g := newGame(t, 1)
	g.dist = 99.99

	step(t, g, 1, 1)
	if g.level != 2 {
		t.Errorf("level = %d at %vm, expected 2", g.level, g.dist)
	}
	if g.score != 1000 {
		t.Errorf("score = %d, expected 1000", g.score)
	}
	if !hasCue(g.DrainCues(), core.CueLevelUp) {
		t.Error("level up did not emit a cue")
	}
	if g.speed() != 6 {
		t.Errorf("level 2 speed = %v, expected 6", g.speed())
	}

	g.dist = 5000
	step(t, g, 2, 1)
	if g.level != 10 || g.levelConfig().Name != "IMPOSSIBLE" {
		t.Errorf("level = %d, expected the cap of 10", g.level)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() (int, int, float64) {
		g := New()
		if err := g.Reset(core.RuntimeConfig{Seed: 99}); err != nil {
			t.Fatal(err)
		}
		for i := 1; i <= 900 && !g.gameOver; i++ {
			var acts []core.Action
			if i%45 == 0 {
				acts = append(acts, core.ActionFire)
			}
			if err := g.Update(frame(i, acts...)); err != nil {
				t.Fatal(err)
			}
		}
		return g.score, g.coinsHit, g.player.Y
	}

	s1, c1, y1 := run()
	s2, c2, y2 := run()
	if s1 != s2 || c1 != c2 || y1 != y2 {
		t.Errorf("runs differ: score %d/%d coins %d/%d y %v/%v", s1, s2, c1, c2, y1, y2)
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, 1)
	s := core.NewScreen(80, 24)
	g.Render(s)

	if !strings.Contains(s.Row(0), "SCORE: 0") || !strings.Contains(s.Row(0), "LEVEL 1 Training") {
		t.Errorf("HUD row = %q", s.Row(0))
	}
	if !strings.ContainsRune(s.String(), ShipChar) || !strings.Contains(s.String(), "NORMAL") {
		t.Error("ship or gravity indicator missing")
	}
}
