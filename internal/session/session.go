// Package session runs one game from start to a terminal state.
//
// A Session owns the game, its input buffer and the frame loop driver. Its
// lifecycle is create (New) -> run (Run, possibly many times via Restart) ->
// dispose (Dispose).
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frame-arcade/internal/audio"
	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/loop"
	"github.com/vovakirdan/frame-arcade/internal/registry"
	"github.com/vovakirdan/frame-arcade/internal/scores"
)

var (
	// ErrDisposed is returned by operations on a disposed session.
	ErrDisposed = errors.New("session: disposed")
	// ErrBusy is returned when Run or Restart is called while running.
	ErrBusy = errors.New("session: already running")
)

// Phase is the session state.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseGameOver
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	case PhaseWon:
		return "won"
	default:
		return "idle"
	}
}

// Outcome is how a run ended.
type Outcome int

const (
	// OutcomeAborted means the run was stopped before a terminal state.
	OutcomeAborted Outcome = iota
	OutcomeGameOver
	OutcomeWon
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGameOver:
		return "game over"
	case OutcomeWon:
		return "won"
	default:
		return "aborted"
	}
}

// Result summarizes a finished run.
type Result struct {
	Outcome Outcome
	Score   int
	Best    int
	NewBest bool
}

// Options configures a session. Zero values get working defaults.
type Options struct {
	Runtime core.RuntimeConfig
	Bridge  *scores.Bridge
	Audio   audio.Player
	Logger  *log.Logger

	// Render turns the screen into the presented view. Defaults to the
	// plain text of the screen.
	Render func(*core.Screen) string

	// Ticker replaces the wall-clock ticker of the frame loop.
	Ticker loop.TickerFunc
}

// Session is a single game play-through.
type Session struct {
	game    registry.Game
	runtime core.RuntimeConfig
	bridge  *scores.Bridge
	audio   audio.Player
	logger  *log.Logger
	render  func(*core.Screen) string

	input  *core.InputBuffer
	driver *loop.Driver

	phase atomic.Int32

	mu       sync.Mutex // guards screen, last, best, cancel and disposed
	screen   *core.Screen
	last     string // plain text of the last rendered frame
	best     int
	cancel   context.CancelFunc
	disposed bool
}

// New resets game with opts.Runtime and loads its best score. A
// configuration error from the game is returned and the session is not
// created.
func New(game registry.Game, opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Bridge == nil {
		opts.Bridge = scores.NewBridge(nil, opts.Logger)
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Render == nil {
		opts.Render = (*core.Screen).String
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.ReferenceFPS
	}

	s := &Session{
		game:    game,
		runtime: opts.Runtime,
		bridge:  opts.Bridge,
		audio:   opts.Audio,
		logger:  opts.Logger.WithPrefix("session"),
		render:  opts.Render,
		input:   core.NewInputBuffer(),
		screen:  core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
	}

	driverOpts := []loop.Option{loop.WithLogger(s.logger)}
	if opts.Ticker != nil {
		driverOpts = append(driverOpts, loop.WithTicker(opts.Ticker))
	}
	s.driver = loop.New(opts.Runtime.TickRate, s.input, driverOpts...)

	if err := game.Reset(s.runtime); err != nil {
		return nil, fmt.Errorf("session: reset %s: %w", game.ID(), err)
	}
	s.best = s.bridge.LoadBest(game.ID())
	return s, nil
}

// Game returns the game being played.
func (s *Session) Game() registry.Game {
	return s.game
}

// Input returns the buffer the host writes key and pointer events into.
func (s *Session) Input() *core.InputBuffer {
	return s.input
}

// Phase returns the current state.
func (s *Session) Phase() Phase {
	return Phase(s.phase.Load())
}

// Best returns the best score known for the game.
func (s *Session) Best() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.best
}

// Resize changes the presentation size. The simulation is unaffected.
func (s *Session) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.Resize(w, h)
}

// Snapshot returns the current state as plain text. While a run is live
// the game belongs to the frame loop, so the last rendered frame is
// returned instead of rendering again.
func (s *Session) Snapshot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Phase() != PhaseIdle {
		return s.last
	}
	s.screen.Clear()
	s.game.Render(s.screen)
	s.last = s.screen.String()
	return s.last
}

// Run plays the game until it reaches a terminal state, Stop is called, ctx
// is cancelled or a frame fails. present receives the view after every
// frame. A terminal state reports the score to the bridge; aborted runs do
// not. The session is Idle again when Run returns.
func (s *Session) Run(ctx context.Context, present func(view string)) (Result, error) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return Result{}, ErrDisposed
	}
	if !s.phase.CompareAndSwap(int32(PhaseIdle), int32(PhaseRunning)) {
		s.mu.Unlock()
		return Result{}, ErrBusy
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancel = nil
		s.mu.Unlock()
		s.phase.Store(int32(PhaseIdle))
	}()

	id := s.game.ID()
	s.logger.Info("run started", "game", id, "seed", s.runtime.Seed)

	update := func(f core.Frame) error {
		if err := s.game.Update(f); err != nil {
			return err
		}
		s.playCues()

		st := s.game.State()
		if !st.Terminal() {
			return nil
		}
		if st.Won {
			s.phase.Store(int32(PhaseWon))
		} else {
			s.phase.Store(int32(PhaseGameOver))
		}
		s.driver.Stop()
		return nil
	}

	render := func(core.Frame) error {
		s.mu.Lock()
		s.screen.Clear()
		s.game.Render(s.screen)
		s.last = s.screen.String()
		view := s.render(s.screen)
		s.mu.Unlock()

		if present != nil {
			present(view)
		}
		return nil
	}

	err := s.driver.Run(ctx, update, render)
	st := s.game.State()
	res := Result{Score: st.Score, Best: s.Best()}

	if err != nil {
		s.logger.Error("run failed", "game", id, "frames", s.driver.Frames(), "err", err)
		return res, err
	}

	switch Phase(s.phase.Load()) {
	case PhaseWon:
		res.Outcome = OutcomeWon
	case PhaseGameOver:
		res.Outcome = OutcomeGameOver
	default:
		s.logger.Info("run aborted", "game", id, "score", st.Score)
		return res, nil
	}

	prev := res.Best
	res.Best = s.bridge.ReportScore(id, st.Score)
	res.NewBest = st.Score > prev && res.Best == st.Score

	s.mu.Lock()
	s.best = res.Best
	s.mu.Unlock()

	s.logger.Info("run finished", "game", id, "outcome", res.Outcome, "score", res.Score, "best", res.Best)
	return res, nil
}

func (s *Session) playCues() {
	src, ok := s.game.(core.CueSource)
	if !ok {
		return
	}
	for _, c := range src.DrainCues() {
		s.audio.Play(c)
	}
}

// Stop ends a running session before its next frame. It is a no-op when
// the session is not running.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// Restart resets the game with a new seed for another run. A zero seed
// keeps the previous one.
func (s *Session) Restart(seed int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return ErrDisposed
	}
	if s.Phase() != PhaseIdle {
		return ErrBusy
	}
	if seed != 0 {
		s.runtime.Seed = seed
	}
	if err := s.game.Reset(s.runtime); err != nil {
		return fmt.Errorf("session: reset %s: %w", s.game.ID(), err)
	}
	s.input.Reset()
	s.best = s.bridge.LoadBest(s.game.ID())
	return nil
}

// Dispose stops the session and releases audio. It is idempotent.
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.disposed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.audio.Close()
}
