// Package snake implements grid Snake: steer into food to grow, and avoid
// the border walls and your own tail.
package snake

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/frame-arcade/internal/config"
	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// opposite reports whether two directions point against each other.
func (d Direction) opposite(o Direction) bool {
	return (d+2)%4 == o
}

// Point is a grid cell.
type Point struct {
	X, Y int
}

func (p Point) step(d Direction) Point {
	switch d {
	case DirUp:
		p.Y--
	case DirDown:
		p.Y++
	case DirLeft:
		p.X--
	case DirRight:
		p.X++
	}
	return p
}

// Game implements the Snake game.
type Game struct {
	core.CueQueue

	cfg        config.SnakeConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	snake     []Point // Head at index 0
	direction Direction
	nextDir   Direction // Buffered direction for the next move
	grow      int       // Segments still to add
	food      Point

	moveTicker float64 // Reference frames since the last move
	tick       uint64
	elapsed    float64
	score      int
	foodEaten  int
	gameOver   bool
	won        bool
	paused     bool
}

// New creates a new Snake game.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return config.GameSnake
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, _, err := config.LoadSnake(runtime.ConfigPath)
	if err != nil {
		return err
	}
	if err := config.ApplyPreset(&cfg.Difficulty, runtime.Difficulty); err != nil {
		return err
	}

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tick = 0
	g.elapsed = 0
	g.moveTicker = 0
	g.score = 0
	g.foodEaten = 0
	g.gameOver = false
	g.won = false
	g.paused = false

	// Start left of center heading right.
	startX := core.Clamp(cfg.Width/4, 1, cfg.Width-1-cfg.StartLength)
	y := cfg.Height / 2
	g.snake = g.snake[:0]
	for i := cfg.StartLength - 1; i >= 0; i-- {
		g.snake = append(g.snake, Point{X: startX + i, Y: y})
	}
	g.direction = DirRight
	g.nextDir = DirRight
	g.grow = 0

	g.spawnFood()
	g.DrainCues()
	return nil
}

// Wall reports whether p is on the border or outside the grid.
func (g *Game) Wall(p Point) bool {
	return p.X <= 0 || p.Y <= 0 || p.X >= g.cfg.Width-1 || p.Y >= g.cfg.Height-1
}

// spawnFood places food at a random free cell. A full grid wins the game.
func (g *Game) spawnFood() {
	var empty []Point
	for y := 1; y < g.cfg.Height-1; y++ {
		for x := 1; x < g.cfg.Width-1; x++ {
			p := Point{X: x, Y: y}
			if !g.isSnakeAt(p) {
				empty = append(empty, p)
			}
		}
	}
	if len(empty) == 0 {
		g.food = Point{X: -1, Y: -1}
		g.won = true
		return
	}
	g.food = empty[g.rng.Intn(len(empty))]
}

func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Interval returns the reference frames between two moves. Every food
// shortens it by speed_up down to min_move_every; difficulty divides it
// further.
func (g *Game) Interval() float64 {
	base := math.Max(g.cfg.MoveEvery-g.cfg.SpeedUp*float64(g.foodEaten), g.cfg.MinMoveEvery)
	return math.Max(base/g.difficulty.Speed(1, g.score, g.elapsed), g.cfg.MinMoveEvery)
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

	g.tick++
	g.elapsed += f.Delta
	g.processInput(f.Input)

	g.moveTicker += f.Steps()
	if g.moveTicker >= g.Interval() {
		g.moveTicker = 0
		g.move()
	}
	return nil
}

// processInput buffers a direction change; reversing onto the body is ignored.
func (g *Game) processInput(in core.InputFrame) {
	next := g.nextDir
	switch {
	case in.Has(core.ActionUp):
		next = DirUp
	case in.Has(core.ActionDown):
		next = DirDown
	case in.Has(core.ActionLeft):
		next = DirLeft
	case in.Has(core.ActionRight):
		next = DirRight
	}
	if !next.opposite(g.direction) {
		g.nextDir = next
	}
}

// move advances the snake one cell.
func (g *Game) move() {
	g.direction = g.nextDir
	head := g.snake[0].step(g.direction)

	// The tail moves away this step unless the snake is growing.
	body := g.snake
	if g.grow == 0 {
		body = body[:len(body)-1]
	}
	if g.Wall(head) || containsPoint(body, head) {
		g.gameOver = true
		g.Emit(core.CueCrash)
		return
	}

	g.snake = append([]Point{head}, g.snake...)
	if g.grow > 0 {
		g.grow--
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}

	if head != g.food {
		return
	}
	g.foodEaten++
	g.score += g.cfg.PointsPerFood
	g.grow++
	g.Emit(core.CueCoin)

	if g.cfg.WinLength > 0 && len(g.snake)+g.grow >= g.cfg.WinLength {
		g.won = true
		g.Emit(core.CueWin)
		return
	}
	g.spawnFood()
	if g.won {
		g.Emit(core.CueWin)
	}
}

func containsPoint(pts []Point, p Point) bool {
	for _, q := range pts {
		if q == p {
			return true
		}
	}
	return false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

func init() {
	registry.Register(config.GameSnake, func() registry.Game {
		return New()
	})
}
