// Package shooter implements a vertical space shooter in two variants:
// the tiered game with three enemy kinds unlocked by level, and the classic
// game with a single enemy kind and box hits.
package shooter

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/frame-arcade/internal/config"
	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/entity"
	"github.com/vovakirdan/frame-arcade/internal/registry"
)

// Tuning that is not worth a config key.
const (
	spawnY        = -30.0 // Enemies enter above the top edge
	bulletOffset  = 20.0  // Shots leave the nose of the ship
	bulletCullY   = -20.0
	enemyCullY    = 30.0 // Below the bottom edge
	particleSpeed = 2.0
	particleJit   = 3.0
	crashBurst    = 30
)

// Enemy is a falling ship.
type Enemy struct {
	entity.Entity
	kind int // Index into config enemies
}

// Game implements both shooter variants.
type Game struct {
	core.CueQueue

	id    string
	title string

	cfg        config.ShooterConfig
	runtime    core.RuntimeConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	world      core.Bounds
	spawner    entity.Spawner

	player    core.Vec2
	cooldown  float64 // Seconds until the next shot
	bullets   *entity.Pool[*entity.Entity]
	enemies   *entity.Pool[*Enemy]
	particles *entity.Pool[*entity.Particle]

	score    int
	level    int
	elapsed  float64
	gameOver bool
	paused   bool
}

// NewTiered creates the tiered variant.
func NewTiered() *Game {
	return &Game{id: config.GameShooter, title: "Space Shooter"}
}

// NewClassic creates the classic variant.
func NewClassic() *Game {
	return &Game{id: config.GameShooterClassic, title: "Space Shooter Classic"}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the configuration and starts a new game.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, _, err := config.LoadShooter(g.id, runtime.ConfigPath)
	if err != nil {
		return err
	}
	if err := config.ApplyPreset(&cfg.Difficulty, runtime.Difficulty); err != nil {
		return err
	}
	spawner, err := entity.NewSpawner(cfg.Spawn)
	if err != nil {
		return err
	}

	g.cfg = cfg
	g.runtime = runtime
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.world = core.NewBounds(cfg.World.Width, cfg.World.Height)
	g.spawner = spawner

	g.player = core.V(cfg.World.Width/2, cfg.World.Height-cfg.Player.BottomY)
	g.cooldown = 0
	g.bullets = entity.NewPool[*entity.Entity](32)
	g.enemies = entity.NewPool[*Enemy](32)
	g.particles = entity.NewPool[*entity.Particle](128)

	g.score = 0
	g.level = 1
	g.elapsed = 0
	g.gameOver = false
	g.paused = false
	g.DrainCues()
	return nil
}

// Update advances the game by one frame.
func (g *Game) Update(f core.Frame) error {
	if g.gameOver {
		// Let the last explosion play out.
		entity.StepParticles(g.particles, f.Steps(), g.cfg.Particles.Gravity, g.cfg.Particles.Drag)
		return nil
	}

	if f.Input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}

	steps := f.Steps()
	g.elapsed += f.Delta

	g.movePlayer(f.Input)
	if err := g.fire(f); err != nil {
		return err
	}

	g.bullets.ForEachAlive(func(b *entity.Entity) {
		b.Integrate(steps)
		if b.Pos.Y <= bulletCullY {
			b.Kill()
		}
	})

	g.enemies.ForEachAlive(func(e *Enemy) {
		e.Integrate(steps)
		g.bullets.ForEachAlive(func(b *entity.Entity) {
			if !e.Alive() || !g.bulletHits(b, e) {
				return
			}
			b.Kill()
			g.hit(e, b)
		})
		if !e.Alive() {
			return
		}
		if !g.gameOver && g.playerHit(e) {
			g.crash()
		}
		if e.Pos.Y >= g.world.MaxY+enemyCullY {
			e.Kill()
		}
	})

	if err := g.spawn(f); err != nil {
		return err
	}

	g.bullets.Reap()
	g.enemies.Reap()
	entity.StepParticles(g.particles, steps, g.cfg.Particles.Gravity, g.cfg.Particles.Drag)
	return nil
}

func (g *Game) movePlayer(in core.InputFrame) {
	p := g.cfg.Player
	if in.Has(core.ActionLeft) {
		g.player.X -= p.Step
	}
	if in.Has(core.ActionRight) {
		g.player.X += p.Step
	}
	g.player.X = core.ClampF(g.player.X, p.Margin, g.world.MaxX-p.Margin)
}

func (g *Game) fire(f core.Frame) error {
	g.cooldown -= f.Delta
	if !f.Input.Has(core.ActionFire) || g.cooldown > 0 {
		return nil
	}
	g.cooldown = g.cfg.Player.Cooldown

	b := entity.New("bullet", core.V(g.player.X, g.player.Y-bulletOffset), core.V(0, -g.cfg.Bullets.Speed))
	b.Health = g.cfg.Bullets.Damage
	if g.cfg.Collision.Shape == "rect" {
		b.Radius = 1
	}
	if err := g.bullets.Spawn(b); err != nil {
		return err
	}
	g.Emit(core.CueShoot)
	return nil
}

// hit applies a bullet to an enemy.
func (g *Game) hit(e *Enemy, b *entity.Entity) {
	pc := g.cfg.Particles
	entity.Burst(g.particles, g.rng, b.Pos, pc.Hit, particleSpeed, particleJit, pc.Life, core.ColorYellow)

	if !e.Damage(max(b.Health, 1)) {
		g.Emit(core.CueHit)
		return
	}

	g.score += g.cfg.Enemies[e.kind].Points
	entity.Burst(g.particles, g.rng, e.Pos, pc.Burst, particleSpeed, particleJit, pc.Life, core.ColorOrange)
	g.Emit(core.CueExplode)

	if step := g.cfg.Levels.ScorePerLevel; step > 0 && g.score > step*g.level {
		g.level++
		g.Emit(core.CueLevelUp)
	}
}

func (g *Game) crash() {
	g.gameOver = true
	entity.Burst(g.particles, g.rng, g.player, crashBurst, particleSpeed, particleJit, g.cfg.Particles.Life, core.ColorRed)
	g.Emit(core.CueCrash)
}

// bulletHits uses a center distance for "circle" and the enemy box for "rect".
func (g *Game) bulletHits(b *entity.Entity, e *Enemy) bool {
	c := g.cfg.Collision
	if c.Shape == "rect" {
		half := c.BoxSize / 2
		return core.Overlaps(core.Circle(b.Pos, b.Radius), core.Box(e.Pos, half, half))
	}
	return core.Overlaps(core.Circle(b.Pos, c.BulletHit), core.Circle(e.Pos, 0))
}

// playerHit tests the enemy against the ship. In "rect" mode the ship is a
// strip PlayerZone high along the bottom edge.
func (g *Game) playerHit(e *Enemy) bool {
	c := g.cfg.Collision
	if c.Shape == "rect" {
		half := c.BoxSize / 2
		zone := core.Box(core.V(g.player.X, g.world.MaxY-c.PlayerZone/2), math.Max(c.PlayerHit-half, 0.5), c.PlayerZone/2)
		return core.Overlaps(core.Box(e.Pos, half, half), zone)
	}
	return core.Overlaps(core.Circle(g.player, c.PlayerHit), core.Circle(e.Pos, 0))
}

func (g *Game) spawn(f core.Frame) error {
	switch s := g.spawner.(type) {
	case *entity.PeriodSpawner:
		s.Period = g.spawnPeriod()
	case *entity.ChanceSpawner:
		s.Chance = g.difficulty.Rate(g.cfg.Spawn.Chance, g.score, g.elapsed)
	}

	for n := g.spawner.Due(f, g.rng); n > 0; n-- {
		if err := g.enemies.Spawn(g.newEnemy()); err != nil {
			return err
		}
	}
	return nil
}

// spawnPeriod shortens the base period by PeriodStep per level, capped at
// PeriodMaxCut, then applies difficulty.
func (g *Game) spawnPeriod() float64 {
	lv := g.cfg.Levels
	base := g.cfg.Spawn.Period - math.Min(lv.PeriodStep*float64(g.level), lv.PeriodMaxCut)
	return math.Max(g.difficulty.Period(base, g.score, g.elapsed), 0.05)
}

// unlocked returns the indexes of the enemy kinds available at the current level.
func (g *Game) unlocked() []int {
	kinds := make([]int, 0, len(g.cfg.Enemies))
	for i, k := range g.cfg.Enemies {
		if k.UnlockLevel <= g.level {
			kinds = append(kinds, i)
		}
	}
	if len(kinds) == 0 {
		kinds = append(kinds, 0)
	}
	return kinds
}

func (g *Game) newEnemy() *Enemy {
	kinds := g.unlocked()
	idx := kinds[g.rng.Intn(len(kinds))]
	k := g.cfg.Enemies[idx]

	margin := g.cfg.Player.Margin
	x := margin + g.rng.Float64()*(g.world.MaxX-2*margin)
	speed := k.Speed + k.SpeedPerLevel*float64(g.level)
	if k.SpeedJitter > 0 {
		speed += g.rng.Float64() * k.SpeedJitter
	}
	speed = g.difficulty.Speed(speed, g.score, g.elapsed)

	e := &Enemy{Entity: *entity.New(k.Name, core.V(x, spawnY), core.V(0, speed)), kind: idx}
	e.SetHealth(k.Health)
	return e
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

func init() {
	registry.Register(config.GameShooter, func() registry.Game { return NewTiered() })
	registry.Register(config.GameShooterClassic, func() registry.Game { return NewClassic() })
}
