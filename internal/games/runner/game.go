// Package runner implements Gravity Runner: the ship runs through a corridor
// and flips gravity to dodge spikes on the floor and ceiling.
package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/frame-arcade/internal/config"
	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/entity"
	"github.com/vovakirdan/frame-arcade/internal/registry"
)

const (
	obstacleEntryX = 50.0 // Obstacles appear this far beyond the right edge
	coinEntryX     = 30.0
	coinMargin     = 40.0 // Coins keep this distance from floor and ceiling
	obstacleCullX  = -100.0
	coinCullX      = -30.0
	wobbleRate     = 0.05

	particleSpeed = 2.0
	particleJit   = 4.0
	flipBurst     = 8
	levelBurst    = 20
)

// Obstacle is a spike or a moving block.
type Obstacle struct {
	entity.Entity
	Ceiling bool
	Moving  bool
}

// Game implements the Gravity Runner game logic.
type Game struct {
	core.CueQueue

	cfg        config.RunnerConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	world      core.Bounds
	ceilingY   float64
	groundY    float64

	obstacleSpawner *entity.ChanceSpawner
	coinSpawner     entity.Spawner

	player       core.Vec2
	vy           float64
	flipped      bool
	lastObstacle float64 // Left edge of the most recent obstacle

	obstacles *entity.Pool[*Obstacle]
	coins     *entity.Pool[*entity.Entity]
	particles *entity.Pool[*entity.Particle]

	ticks    float64 // Reference frames since start
	elapsed  float64
	dist     float64
	coinsHit int
	flips    int
	level    int
	score    int
	gameOver bool
	paused   bool
}

// New creates a new Gravity Runner game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return config.GameRunner
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Gravity Runner"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, _, err := config.LoadRunner(runtime.ConfigPath)
	if err != nil {
		return err
	}
	if err := config.ApplyPreset(&cfg.Difficulty, runtime.Difficulty); err != nil {
		return err
	}
	coins, err := entity.NewSpawner(cfg.Coins.Spawn)
	if err != nil {
		return err
	}

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.world = core.NewBounds(cfg.World.Width, cfg.World.Height)
	g.ceilingY = cfg.Physics.GroundHeight
	g.groundY = cfg.World.Height - cfg.Physics.GroundHeight
	g.obstacleSpawner = &entity.ChanceSpawner{}
	g.coinSpawner = coins

	g.player = core.V(cfg.Player.X, cfg.World.Height/2)
	g.vy = 0
	g.flipped = false
	g.lastObstacle = cfg.World.Width

	g.obstacles = entity.NewPool[*Obstacle](16)
	g.coins = entity.NewPool[*entity.Entity](16)
	g.particles = entity.NewPool[*entity.Particle](128)

	g.ticks = 0
	g.elapsed = 0
	g.dist = 0
	g.coinsHit = 0
	g.flips = 0
	g.level = 1
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.DrainCues()
	return nil
}

// speed is the scroll speed of the current level in pixels per reference frame.
func (g *Game) speed() float64 {
	return g.difficulty.Speed(g.levelConfig().Speed, g.score, g.elapsed)
}

func (g *Game) levelConfig() config.RunnerLevel {
	return g.cfg.Levels[core.Clamp(g.level-1, 0, len(g.cfg.Levels)-1)]
}

// Update advances the game by one frame.
func (g *Game) Update(f core.Frame) error {
	steps := f.Steps()
	pc := g.cfg.Particles

	if g.gameOver {
		entity.StepParticles(g.particles, steps, pc.Gravity, pc.Drag)
		return nil
	}
	if f.Input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}

	g.ticks += steps
	g.elapsed += f.Delta
	speed := g.speed()

	if wantsFlip(f.Input) {
		g.flip()
	}
	g.fall(steps)

	if err := g.spawn(f); err != nil {
		return err
	}

	playerBox := core.Box(g.player, g.cfg.Player.Size*g.cfg.Player.HitScale, g.cfg.Player.Size*g.cfg.Player.HitScale)
	g.obstacles.ForEachAlive(func(o *Obstacle) {
		o.Pos.X -= speed * steps
		if o.Moving {
			o.Pos.Y += math.Sin(g.ticks*wobbleRate) * g.cfg.Obstacles.Wobble * steps
		}
		if !g.gameOver && core.Overlaps(playerBox, o.Shape()) {
			g.crash()
		}
		if o.Pos.X-o.HalfW <= obstacleCullX {
			o.Kill()
		}
	})
	g.lastObstacle -= speed * steps

	pickup := core.Box(g.player, g.cfg.Player.Size/2, g.cfg.Player.Size/2)
	g.coins.ForEachAlive(func(c *entity.Entity) {
		c.Pos.X -= speed * steps
		if !g.gameOver && core.Overlaps(c.Shape(), pickup) {
			c.Kill()
			g.coinsHit++
			entity.Burst(g.particles, g.rng, c.Pos, pc.Hit, particleSpeed, particleJit, pc.Life, core.ColorYellow)
			g.Emit(core.CueCoin)
			return
		}
		if c.Pos.X <= coinCullX {
			c.Kill()
		}
	})

	g.obstacles.Reap()
	g.coins.Reap()
	entity.StepParticles(g.particles, steps, pc.Gravity, pc.Drag)

	if !g.gameOver {
		g.advance(speed * steps)
	}
	return nil
}

// wantsFlip reports whether any flip control was used this frame.
func wantsFlip(in core.InputFrame) bool {
	return in.Has(core.ActionFire) || in.Has(core.ActionUp) || in.Has(core.ActionDown) ||
		in.Has(core.ActionConfirm) || in.Pointer.Pressed
}

func (g *Game) flip() {
	g.flipped = !g.flipped
	g.flips++
	pc := g.cfg.Particles
	entity.Burst(g.particles, g.rng, g.player, flipBurst, particleSpeed, particleJit, pc.Life, core.ColorCyan)
	g.Emit(core.CueFlip)
}

// fall applies gravity and keeps the ship inside the corridor.
func (g *Game) fall(steps float64) {
	gravity := g.cfg.Physics.Gravity
	if g.flipped {
		gravity = -gravity
	}
	g.vy += gravity * steps
	g.player.Y += g.vy * steps

	half := g.cfg.Player.Size / 2
	if g.player.Y < g.ceilingY+half {
		g.player.Y = g.ceilingY + half
		g.vy = 0
	}
	if g.player.Y > g.groundY-half {
		g.player.Y = g.groundY - half
		g.vy = 0
	}
}

func (g *Game) spawn(f core.Frame) error {
	oc := g.cfg.Obstacles
	g.obstacleSpawner.Chance = g.difficulty.Rate(g.levelConfig().ObstacleChance, g.score, g.elapsed)

	// The roll happens every frame; the gap check only gates the result.
	if g.obstacleSpawner.Due(f, g.rng) > 0 && g.lastObstacle < g.world.MaxX-oc.MinGap {
		ceiling := g.rng.Float64() > 0.5
		h := oc.MinHeight + g.rng.Float64()*(oc.MaxHeight-oc.MinHeight)
		w := oc.MinWidth + g.rng.Float64()*(oc.MaxWidth-oc.MinWidth)
		moving := g.rng.Float64() < oc.MovingChance

		x := g.world.MaxX + obstacleEntryX
		y := g.groundY - h
		if ceiling {
			y = g.ceilingY
		}
		shape := core.BoxFromCorner(x, y, w, h)
		o := &Obstacle{Entity: *entity.New("obstacle", shape.Center, core.Vec2{}), Ceiling: ceiling, Moving: moving}
		o.HalfW, o.HalfH = shape.HalfW, shape.HalfH
		if err := g.obstacles.Spawn(o); err != nil {
			return err
		}
		g.lastObstacle = x
	}

	for n := g.coinSpawner.Due(f, g.rng); n > 0; n-- {
		span := g.groundY - g.ceilingY - 2*coinMargin
		c := entity.New("coin", core.V(g.world.MaxX+coinEntryX, g.ceilingY+coinMargin+g.rng.Float64()*span), core.Vec2{})
		c.Radius = g.cfg.Coins.Radius
		if err := g.coins.Spawn(c); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) crash() {
	g.gameOver = true
	pc := g.cfg.Particles
	entity.Burst(g.particles, g.rng, g.player, pc.Burst, particleSpeed, particleJit, pc.Life, core.ColorRed)
	g.Emit(core.CueCrash)
}

// advance adds travelled distance and recomputes score and level.
func (g *Game) advance(moved float64) {
	sc := g.cfg.Scoring
	g.dist += moved * sc.DistancePerSpeed
	g.score = int(math.Floor(g.dist*sc.DistancePoints)) + g.coinsHit*g.cfg.Coins.Points

	level := min(len(g.cfg.Levels), int(math.Floor(g.dist/sc.LevelDistance))+1)
	if level > g.level {
		g.level = level
		pc := g.cfg.Particles
		entity.Burst(g.particles, g.rng, g.player, levelBurst, particleSpeed, particleJit, pc.Life, core.ColorGreen)
		g.Emit(core.CueLevelUp)
	}
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
	registry.Register(config.GameRunner, func() registry.Game {
		return New()
	})
}
