// Package match3 implements a swap puzzle: exchange neighbouring gems to line
// up three or more of a kind before the moves run out.
package match3

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/frame-arcade/internal/config"
	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/registry"
)

// layout records where the board was last drawn, in screen cells.
type layout struct {
	area  core.Rect
	cellW int
}

// Game implements the Match-3 game logic.
type Game struct {
	core.CueQueue

	cfg   config.Match3Config
	rng   *rand.Rand
	board Board
	view  layout

	cursor   Cell
	selected *Cell

	score    int
	moves    int
	combo    float64
	matched  int // Gems cleared so far
	gameOver bool
	won      bool
	paused   bool
}

// New creates a new Match-3 game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return config.GameMatch3
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Match 3"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, _, err := config.LoadMatch3(runtime.ConfigPath)
	if err != nil {
		return err
	}

	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.board = NewBoard(g.rng, cfg.Rows, cfg.Cols, cfg.Gems)
	g.view = layout{}
	g.cursor = Cell{cfg.Rows / 2, cfg.Cols / 2}
	g.selected = nil
	g.score = 0
	g.moves = cfg.Moves
	g.combo = 1
	g.matched = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.DrainCues()
	return nil
}

// Update applies the input of one frame. The board only changes on a click
// or a confirm, so frame timing is irrelevant here.
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

	in := f.Input
	switch {
	case in.Has(core.ActionUp):
		g.moveCursor(-1, 0)
	case in.Has(core.ActionDown):
		g.moveCursor(1, 0)
	case in.Has(core.ActionLeft):
		g.moveCursor(0, -1)
	case in.Has(core.ActionRight):
		g.moveCursor(0, 1)
	}
	if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
		g.Click(g.cursor)
	}
	if in.Pointer.Pressed {
		if c, ok := g.cellAt(in.Pointer.X, in.Pointer.Y); ok {
			g.cursor = c
			g.Click(c)
		}
	}
	return nil
}

func (g *Game) moveCursor(dr, dc int) {
	g.cursor.Row = core.Clamp(g.cursor.Row+dr, 0, g.cfg.Rows-1)
	g.cursor.Col = core.Clamp(g.cursor.Col+dc, 0, g.cfg.Cols-1)
}

// cellAt maps a screen cell to the board cell drawn there.
func (g *Game) cellAt(x, y int) (Cell, bool) {
	if !g.view.area.Contains(x, y) {
		return Cell{}, false
	}
	c := Cell{Row: y - g.view.area.Y, Col: (x - g.view.area.X) / g.view.cellW}
	return c, g.board.Contains(c)
}

// Click selects c, or swaps it with the selected cell when the two are
// neighbours. A swap that lines up no gems is undone and resets the combo;
// a matching swap clears and refills the matched cells and costs a move.
func (g *Game) Click(c Cell) {
	if g.gameOver || g.won || !g.board.Contains(c) {
		return
	}
	if g.selected == nil {
		g.selected = &c
		return
	}
	from := *g.selected
	g.selected = nil
	if !from.adjacent(c) {
		return
	}

	g.board.Swap(from, c)
	matches := g.board.Matches()
	if len(matches) == 0 {
		g.board.Swap(from, c)
		g.combo = 1
		g.Emit(core.CueHit)
		return
	}

	for _, m := range matches {
		g.board[m.Row][m.Col] = g.rng.Intn(g.cfg.Gems)
	}
	g.score += int(math.Round(float64(len(matches)*g.cfg.PointsPerGem) * g.combo))
	g.combo = math.Min(g.combo+g.cfg.ComboStep, g.cfg.MaxCombo)
	g.matched += len(matches)
	g.moves--
	g.Emit(core.CueMatch)

	switch {
	case g.cfg.TargetScore > 0 && g.score >= g.cfg.TargetScore:
		g.won = true
		g.Emit(core.CueWin)
	case g.moves <= 0:
		g.gameOver = true
		g.Emit(core.CueCrash)
	}
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
	registry.Register(config.GameMatch3, func() registry.Game {
		return New()
	})
}
