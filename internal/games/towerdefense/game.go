// Package towerdefense implements a path tower defense game. Creeps walk a
// fixed path in waves; the player spends money on towers that shoot the
// closest creep in range.
package towerdefense

import (
	"math"

	"github.com/vovakirdan/frame-arcade/internal/config"
	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/entity"
	"github.com/vovakirdan/frame-arcade/internal/registry"
)

// Creep is an enemy walking the path.
type Creep struct {
	entity.Entity
	Speed     float64
	PathIndex int // Index of the last waypoint reached
}

// Tower shoots the closest creep in range.
type Tower struct {
	Pos      core.Vec2
	Cooldown float64 // Reference frames until the next shot
}

// shot is a tower firing this frame, kept for rendering.
type shot struct {
	from, to core.Vec2
}

// Game implements the Tower Defense game logic.
type Game struct {
	core.CueQueue

	cfg        config.TowerDefenseConfig
	difficulty *config.DifficultyManager
	world      core.Bounds
	path       []core.Vec2
	view       core.Viewport // Last viewport drawn, maps pointer cells to the world

	creeps *entity.Pool[*Creep]
	towers []*Tower
	shots  []shot
	cursor core.Vec2

	wave          int // Current wave, starting at 0
	spawned       int // Creeps spawned in the current wave
	spawnCooldown float64
	money         int
	lives         int
	kills         int
	ticks         float64
	elapsed       float64
	gameOver      bool
	won           bool
	paused        bool
}

// New creates a new Tower Defense game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return config.GameTowerDefense
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tower Defense"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, _, err := config.LoadTowerDefense(runtime.ConfigPath)
	if err != nil {
		return err
	}
	if err := config.ApplyPreset(&cfg.Difficulty, runtime.Difficulty); err != nil {
		return err
	}

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.world = core.NewBounds(cfg.World.Width, cfg.World.Height)
	g.path = make([]core.Vec2, len(cfg.Path))
	for i, p := range cfg.Path {
		g.path[i] = core.V(p.X, p.Y)
	}
	g.view = core.Viewport{}

	g.creeps = entity.NewPool[*Creep](32)
	g.towers = g.towers[:0]
	g.shots = g.shots[:0]
	g.cursor = g.snap(core.V(cfg.World.Width/2, cfg.World.Height/2))

	g.wave = 0
	g.spawned = 0
	g.spawnCooldown = 0
	g.money = cfg.Economy.StartMoney
	g.lives = cfg.Economy.Lives
	g.kills = 0
	g.ticks = 0
	g.elapsed = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.DrainCues()
	return nil
}

// Update advances the game by one frame.
func (g *Game) Update(f core.Frame) error {
	if g.gameOver || g.won {
		return nil
	}
	if f.Input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}

	steps := f.Steps()
	g.ticks += steps
	g.elapsed += f.Delta
	g.shots = g.shots[:0]

	g.handleBuild(f.Input)

	if err := g.spawn(steps); err != nil {
		return err
	}
	g.walk(steps)
	if g.gameOver {
		return nil
	}
	g.shoot(steps)
	g.creeps.Reap()
	return nil
}

// handleBuild moves the keyboard cursor and places towers from the cursor
// or the pointer.
func (g *Game) handleBuild(in core.InputFrame) {
	step := g.cfg.Tower.CursorStep
	switch {
	case in.Has(core.ActionLeft):
		g.cursor.X -= step
	case in.Has(core.ActionRight):
		g.cursor.X += step
	}
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y -= step
	case in.Has(core.ActionDown):
		g.cursor.Y += step
	}
	g.cursor = g.snap(g.cursor)

	if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
		g.Build(g.cursor)
	}
	if in.Pointer.Pressed && g.view.Screen != nil {
		at := g.view.WorldAt(in.Pointer.X, in.Pointer.Y)
		if g.world.ContainsPoint(at) {
			g.cursor = at
			g.Build(at)
		}
	}
}

// snap clamps p to the world.
func (g *Game) snap(p core.Vec2) core.Vec2 {
	return core.V(core.ClampF(p.X, 0, g.world.MaxX-1), core.ClampF(p.Y, 0, g.world.MaxY-1))
}

// CanBuild reports whether a tower may be placed at p: the player can pay,
// p is inside the world, clear of the path and away from other towers.
func (g *Game) CanBuild(p core.Vec2) bool {
	t := g.cfg.Tower
	if g.money < g.cfg.Economy.TowerCost || !g.world.ContainsPoint(p) {
		return false
	}
	if g.pathDistance(p) < t.PathClearance {
		return false
	}
	for _, other := range g.towers {
		if other.Pos.Dist(p) < t.Spacing {
			return false
		}
	}
	return true
}

// Build places a tower at p if allowed.
func (g *Game) Build(p core.Vec2) bool {
	if !g.CanBuild(p) {
		return false
	}
	g.towers = append(g.towers, &Tower{Pos: p})
	g.money -= g.cfg.Economy.TowerCost
	return true
}

// pathDistance is the distance from p to the nearest path segment.
func (g *Game) pathDistance(p core.Vec2) float64 {
	best := math.Inf(1)
	for i := 0; i+1 < len(g.path); i++ {
		best = math.Min(best, segmentDistance(p, g.path[i], g.path[i+1]))
	}
	return best
}

func segmentDistance(p, a, b core.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return p.Dist(a)
	}
	ap := p.Sub(a)
	t := core.ClampF((ap.X*ab.X+ap.Y*ab.Y)/l2, 0, 1)
	return p.Dist(a.Add(ab.Scale(t)))
}

// waveSize is the number of creeps in the current wave.
func (g *Game) waveSize() int {
	return g.cfg.Waves.BaseCount + g.cfg.Waves.CountPerWave*g.wave
}

func (g *Game) spawn(steps float64) error {
	w := g.cfg.Waves
	if g.spawned < g.waveSize() {
		g.spawnCooldown -= steps
		if g.spawnCooldown > 0 {
			return nil
		}
		health := w.BaseHealth + w.HealthPerWave*g.wave
		speed := g.difficulty.Speed(w.BaseSpeed+w.SpeedPerWave*float64(g.wave), g.score(), g.elapsed)
		c := &Creep{Entity: *entity.New("creep", g.path[0], core.Vec2{}), Speed: speed}
		c.SetHealth(health)
		if err := g.creeps.Spawn(c); err != nil {
			return err
		}
		g.spawned++
		g.spawnCooldown = g.difficulty.Period(w.SpawnEvery, g.score(), g.elapsed)
		return nil
	}

	if g.creeps.CountAlive() > 0 {
		return nil
	}
	g.wave++
	g.spawned = 0
	g.spawnCooldown = 0
	if w.WinWave > 0 && g.wave >= w.WinWave {
		g.won = true
		g.Emit(core.CueWin)
		return nil
	}
	g.Emit(core.CueLevelUp)
	return nil
}

// walk moves every creep toward its next waypoint. A creep that passes the
// last waypoint costs a life.
func (g *Game) walk(steps float64) {
	g.creeps.ForEachAlive(func(c *Creep) {
		if c.PathIndex+1 >= len(g.path) {
			c.Kill()
			g.lives--
			g.Emit(core.CueCrash)
			if g.lives <= 0 && !g.gameOver {
				g.lives = 0
				g.gameOver = true
			}
			return
		}
		target := g.path[c.PathIndex+1]
		move := c.Speed * steps
		d := target.Sub(c.Pos)
		if dist := d.Len(); dist < move {
			c.Pos = target
			c.PathIndex++
		} else {
			c.Pos = c.Pos.Add(d.Scale(move / dist))
		}
	})
}

// shoot lets every ready tower fire at the closest creep within range.
func (g *Game) shoot(steps float64) {
	t := g.cfg.Tower
	for _, tower := range g.towers {
		var target *Creep
		closest := t.Range
		g.creeps.ForEachAlive(func(c *Creep) {
			if d := c.Pos.Dist(tower.Pos); d < closest {
				closest = d
				target = c
			}
		})

		tower.Cooldown -= steps
		if tower.Cooldown > 0 || target == nil {
			continue
		}
		tower.Cooldown = t.Cooldown
		g.shots = append(g.shots, shot{from: tower.Pos, to: target.Pos})
		g.Emit(core.CueShoot)
		if target.Damage(t.Damage) {
			g.money += g.cfg.Economy.KillReward
			g.kills++
			g.Emit(core.CueExplode)
		}
	}
}

// score is wave points plus the money left.
func (g *Game) score() int {
	return g.wave*g.cfg.Waves.WavePoints + g.money
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score(),
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

func init() {
	registry.Register(config.GameTowerDefense, func() registry.Game {
		return New()
	})
}
