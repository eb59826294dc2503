// Package racing implements a top-down lap race. The player and two AI cars
// drive through a loop of checkpoints; the first car to complete every lap
// decides the placing.
package racing

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/frame-arcade/internal/config"
	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/entity"
	"github.com/vovakirdan/frame-arcade/internal/registry"
)

const (
	lapBurst    = 12
	burstSpeed  = 1.5
	burstJitter = 1.5
	burstLife   = 30
	burstDrag   = 0.92
)

// Car is a racing car. Checkpoint is the index of the next checkpoint to
// reach. A lap is complete when the car crosses the first checkpoint again
// after visiting all the others.
type Car struct {
	entity.Entity
	Angle      float64 // Heading in radians, 0 points right
	Speed      float64 // World pixels per reference frame, negative backwards
	Passed     int     // Checkpoints crossed since the start
	Checkpoint int
	Lap        int
	Finished   bool
	Color      core.Color
}

// Game implements the Racing game logic.
type Game struct {
	core.CueQueue

	cfg        config.RacingConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	world      core.Bounds
	track      []core.Vec2
	view       core.Viewport // Last viewport drawn, maps pointer cells to the world

	player    *Car
	opponents *entity.Pool[*Car]
	particles *entity.Pool[*entity.Particle]

	throttle  float64 // Reference frames of throttle left from the last press
	brake     float64
	countdown float64 // Seconds until the start
	raceTime  float64
	finishers int // Opponents that finished before the player
	score     int
	won       bool
	paused    bool
}

// New creates a new Racing game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return config.GameRacing
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Racing"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, _, err := config.LoadRacing(runtime.ConfigPath)
	if err != nil {
		return err
	}
	if err := config.ApplyPreset(&cfg.Difficulty, runtime.Difficulty); err != nil {
		return err
	}

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.world = core.NewBounds(cfg.World.Width, cfg.World.Height)
	g.track = make([]core.Vec2, len(cfg.Track))
	for i, p := range cfg.Track {
		g.track[i] = core.V(p.X, p.Y)
	}
	g.view = core.Viewport{}

	g.player = g.newCar(cfg.Player.Start, core.ColorBrightCyan)
	g.opponents = entity.NewPool[*Car](len(cfg.Opponents.Starts))
	colors := []core.Color{core.ColorBrightRed, core.ColorBrightMagenta, core.ColorOrange, core.ColorBrightGreen}
	for i, p := range cfg.Opponents.Starts {
		if err := g.opponents.Spawn(g.newCar(p, colors[i%len(colors)])); err != nil {
			return err
		}
	}
	g.particles = entity.NewPool[*entity.Particle](64)

	g.throttle = 0
	g.brake = 0
	g.countdown = cfg.Countdown
	g.raceTime = 0
	g.finishers = 0
	g.score = 0
	g.won = false
	g.paused = false
	g.DrainCues()
	return nil
}

func (g *Game) newCar(at config.PathPoint, c core.Color) *Car {
	car := &Car{Entity: *entity.New("car", core.V(at.X, at.Y), core.Vec2{}), Angle: -math.Pi / 2, Color: c}
	car.Radius = g.cfg.CarRadius
	return car
}

// Update advances the game by one frame.
func (g *Game) Update(f core.Frame) error {
	if g.won {
		return nil
	}
	if f.Input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}

	steps := f.Steps()
	entity.StepParticles(g.particles, steps, 0, burstDrag)

	if g.countdown > 0 {
		before := math.Ceil(g.countdown)
		g.countdown -= f.Delta
		if g.countdown <= 0 {
			g.countdown = 0
			g.Emit(core.CueLevelUp)
		} else if math.Ceil(g.countdown) < before {
			g.Emit(core.CueFlip)
		}
		return nil
	}
	g.raceTime += f.Delta

	g.steer(f.Input)
	g.drive(steps)
	g.opponents.ForEachAlive(func(c *Car) {
		if !c.Finished {
			g.driveAI(c, steps)
		}
	})
	g.bump()

	g.opponents.ForEachAlive(func(c *Car) {
		if !c.Finished && g.pass(c) && c.Lap >= g.cfg.Laps {
			c.Finished = true
			c.Speed = 0
			g.finishers++
		}
	})
	if g.pass(g.player) && g.player.Lap >= g.cfg.Laps {
		g.finish()
	}
	return nil
}

// steer turns the player's car and arms the throttle or brake. A pointer
// press points the car at the pressed cell and opens the throttle.
func (g *Game) steer(in core.InputFrame) {
	p := g.cfg.Player
	switch {
	case in.Has(core.ActionLeft):
		g.player.Angle -= p.TurnStep
	case in.Has(core.ActionRight):
		g.player.Angle += p.TurnStep
	}
	switch {
	case in.Has(core.ActionUp):
		g.throttle, g.brake = p.Hold, 0
	case in.Has(core.ActionDown):
		g.throttle, g.brake = 0, p.Hold
	}
	if in.Pointer.Pressed && g.view.Screen != nil {
		at := g.view.WorldAt(in.Pointer.X, in.Pointer.Y)
		if d := at.Sub(g.player.Pos); g.world.ContainsPoint(at) && d.Len() > 0 {
			g.player.Angle = math.Atan2(d.Y, d.X)
			g.throttle, g.brake = p.Hold, 0
		}
	}
}

// drive applies throttle, brake or coasting friction to the player's car and
// moves it, keeping it Margin away from the world edge.
func (g *Game) drive(steps float64) {
	p := g.cfg.Player
	car := g.player
	switch {
	case g.throttle > 0:
		car.Speed = math.Min(car.Speed+p.Accel*steps, p.MaxSpeed)
		g.throttle -= steps
	case g.brake > 0:
		car.Speed = math.Max(car.Speed-p.Brake*steps, -p.Reverse)
		g.brake -= steps
	default:
		car.Speed *= math.Pow(p.Friction, steps)
	}
	g.move(car, steps)
}

// driveAI steers an opponent toward its next checkpoint and accelerates it
// up to a jittered top speed.
func (g *Game) driveAI(c *Car, steps float64) {
	o := g.cfg.Opponents
	d := g.track[c.Checkpoint].Sub(c.Pos)
	diff := wrapAngle(math.Atan2(d.Y, d.X) - c.Angle)
	c.Angle += diff * math.Min(o.Steer*steps, 1)

	top := g.difficulty.Speed(o.TopSpeed, 0, g.raceTime) + g.rng.Float64()*o.SpeedJitter
	c.Speed = math.Min(c.Speed+o.Accel*steps, top)
	g.move(c, steps)
}

func (g *Game) move(c *Car, steps float64) {
	m := g.cfg.Player.Margin
	c.Vel = core.V(math.Cos(c.Angle), math.Sin(c.Angle)).Scale(c.Speed)
	c.Pos = c.Pos.Add(c.Vel.Scale(steps))
	c.Pos.X = core.ClampF(c.Pos.X, m, g.world.MaxX-m)
	c.Pos.Y = core.ClampF(c.Pos.Y, m, g.world.MaxY-m)
}

// wrapAngle maps a to (-pi, pi].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// bump separates the player from any opponent it touches and slows both.
func (g *Game) bump() {
	car := g.player
	g.opponents.ForEachAlive(func(c *Car) {
		if !entity.Hits(&car.Entity, &c.Entity) {
			return
		}
		d := car.Pos.Sub(c.Pos)
		dist := d.Len()
		if dist == 0 {
			d, dist = core.V(0, 1), 1
		}
		car.Pos = c.Pos.Add(d.Scale((car.Radius + c.Radius) / dist))
		car.Speed *= g.cfg.Bump
		c.Speed *= g.cfg.Bump
		g.Emit(core.CueHit)
	})
}

// pass advances c past its next checkpoint when it is within reach and
// reports whether that completed a lap.
func (g *Game) pass(c *Car) bool {
	target := core.Circle(g.track[c.Checkpoint], g.cfg.CheckpointRadius)
	if !core.Overlaps(core.Circle(c.Pos, 0), target) {
		return false
	}
	c.Passed++
	c.Checkpoint = c.Passed % len(g.track)
	if c == g.player {
		g.Emit(core.CueCoin)
	}
	if c.Passed == 1 || c.Checkpoint != 1 {
		return false
	}
	c.Lap++
	entity.Burst(g.particles, g.rng, c.Pos, lapBurst, burstSpeed, burstJitter, burstLife, c.Color)
	if c == g.player && c.Lap < g.cfg.Laps {
		g.Emit(core.CueLevelUp)
	}
	return true
}

// finish ends the race for the player. Every opponent already home costs
// PerRival points.
func (g *Game) finish() {
	s := g.cfg.Scoring
	g.score = max(s.FinishPoints-s.PerRival*g.finishers, 0)
	g.player.Speed = 0
	g.won = true
	g.Emit(core.CueWin)
}

// Position is the player's place in the race, 1 for the lead. Ties go to
// the player.
func (g *Game) Position() int {
	pos := 1
	g.opponents.ForEachAlive(func(c *Car) {
		if c.Finished || c.Passed > g.player.Passed {
			pos++
		}
	})
	return pos
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.score,
		Won:    g.won,
		Paused: g.paused,
	}
}

func init() {
	registry.Register(config.GameRacing, func() registry.Game {
		return New()
	})
}
