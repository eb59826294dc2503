package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/loop"
	"github.com/vovakirdan/frame-arcade/internal/scores"
)

// fakeGame ends after endAt updates, scoring 10 points per update.
type fakeGame struct {
	core.CueQueue

	endAt    int
	win      bool
	failAt   int
	resetErr error

	resets  int
	seed    int64
	updates int
	pressed int
	state   core.GameState
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) error {
	if g.resetErr != nil {
		return g.resetErr
	}
	g.resets++
	g.seed = cfg.Seed
	g.updates = 0
	g.state = core.GameState{}
	return nil
}

func (g *fakeGame) Update(f core.Frame) error {
	g.updates++
	if g.failAt > 0 && g.updates == g.failAt {
		return errors.New("boom")
	}
	if f.Input.Has(core.ActionFire) {
		g.pressed++
	}
	g.state.Score += 10
	g.Emit(core.CueShoot)
	if g.endAt > 0 && g.updates >= g.endAt {
		g.state.GameOver = !g.win
		g.state.Won = g.win
	}
	return nil
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, fmt.Sprintf("frame %d", g.updates))
}

func (g *fakeGame) State() core.GameState { return g.state }

// recorder is an audio.Player that counts cues.
type recorder struct {
	mu     sync.Mutex
	played []core.Cue
	closed bool
}

func (r *recorder) Play(c core.Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played = append(r.played, c)
}

func (r *recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

type manualTicker struct {
	ch chan time.Time
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               {}

// ticks pre-fills n ticks one reference frame apart.
func ticks(n int) loop.TickerFunc {
	return func(time.Duration) loop.Ticker {
		m := &manualTicker{ch: make(chan time.Time, n)}
		t0 := time.Unix(1000, 0)
		for i := 0; i < n; i++ {
			m.ch <- t0.Add(time.Duration(i) * time.Second / 60)
		}
		return m
	}
}

func newSession(t *testing.T, g *fakeGame, bridge *scores.Bridge, player *recorder, n int) *Session {
	t.Helper()
	logger := log.New(io.Discard)
	opts := Options{
		Runtime: core.RuntimeConfig{ScreenW: 20, ScreenH: 5, TickRate: 60, Seed: 7},
		Bridge:  bridge,
		Logger:  logger,
		Ticker:  ticks(n),
	}
	if player != nil {
		opts.Audio = player
	}
	s, err := New(g, opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func TestRunToGameOver(t *testing.T) {
	g := &fakeGame{endAt: 5}
	bridge := scores.NewBridge(scores.NewMemoryKV(), log.New(io.Discard))
	player := &recorder{}
	s := newSession(t, g, bridge, player, 20)

	if s.Phase() != PhaseIdle || g.resets != 1 || g.seed != 7 {
		t.Fatalf("after New: phase %v, resets %d, seed %d", s.Phase(), g.resets, g.seed)
	}

	var views []string
	res, err := s.Run(context.Background(), func(v string) { views = append(views, v) })
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if res.Outcome != OutcomeGameOver || res.Score != 50 || res.Best != 50 || !res.NewBest {
		t.Errorf("result = %+v", res)
	}
	if g.updates != 5 {
		t.Errorf("updates = %d, expected the loop to stop at the terminal frame", g.updates)
	}
	if len(views) != 5 || !strings.HasPrefix(views[4], "frame") {
		t.Errorf("presented %d views, last %q", len(views), views[len(views)-1])
	}
	if len(player.played) != 5 {
		t.Errorf("played %d cues, expected 5", len(player.played))
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("phase after Run = %v, expected idle", s.Phase())
	}
	if got := bridge.LoadBest("fake"); got != 50 {
		t.Errorf("stored best = %d", got)
	}
}

func TestRunWonAndLowerScore(t *testing.T) {
	kv := scores.NewMemoryKV()
	if err := kv.Set(scores.Key("fake"), "100"); err != nil {
		t.Fatal(err)
	}
	bridge := scores.NewBridge(kv, log.New(io.Discard))

	g := &fakeGame{endAt: 3, win: true}
	s := newSession(t, g, bridge, nil, 10)
	if s.Best() != 100 {
		t.Fatalf("Best() = %d, expected 100", s.Best())
	}

	res, err := s.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeWon || res.Score != 30 || res.Best != 100 || res.NewBest {
		t.Errorf("result = %+v", res)
	}
}

func TestRunErrorStopsSession(t *testing.T) {
	g := &fakeGame{failAt: 2}
	bridge := scores.NewBridge(scores.NewMemoryKV(), log.New(io.Discard))
	s := newSession(t, g, bridge, nil, 10)

	rendered := 0
	_, err := s.Run(context.Background(), func(string) { rendered++ })
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("Run() error = %v", err)
	}
	if rendered != 1 {
		t.Errorf("rendered %d frames, expected only the successful one", rendered)
	}
	if bridge.LoadBest("fake") != 0 {
		t.Error("failed run should not report a score")
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("phase = %v", s.Phase())
	}
}

func TestResetErrorFailsNew(t *testing.T) {
	g := &fakeGame{resetErr: errors.New("bad config")}
	_, err := New(g, Options{Logger: log.New(io.Discard)})
	if err == nil || !strings.Contains(err.Error(), "bad config") {
		t.Errorf("New() error = %v", err)
	}
}

func TestStopAborts(t *testing.T) {
	g := &fakeGame{}
	bridge := scores.NewBridge(scores.NewMemoryKV(), log.New(io.Discard))
	s := newSession(t, g, bridge, nil, 100)

	var frames int
	res, err := s.Run(context.Background(), func(string) {
		frames++
		if frames == 4 {
			s.Stop()
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != OutcomeAborted || res.Score != 40 {
		t.Errorf("result = %+v", res)
	}
	if bridge.LoadBest("fake") != 0 {
		t.Error("aborted run should not report a score")
	}
}

func TestInputReachesGame(t *testing.T) {
	g := &fakeGame{endAt: 3}
	s := newSession(t, g, nil, nil, 10)

	s.Input().Press(core.ActionFire)
	if _, err := s.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if g.pressed != 1 {
		t.Errorf("fire seen %d times, expected once", g.pressed)
	}
}

func TestRestartAndDispose(t *testing.T) {
	g := &fakeGame{endAt: 2}
	player := &recorder{}
	s := newSession(t, g, nil, player, 10)

	if _, err := s.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if err := s.Restart(99); err != nil {
		t.Fatalf("Restart() = %v", err)
	}
	if g.resets != 2 || g.seed != 99 || g.state.Score != 0 {
		t.Errorf("after Restart: resets %d, seed %d, score %d", g.resets, g.seed, g.state.Score)
	}
	if err := s.Restart(0); err != nil || g.seed != 99 {
		t.Errorf("Restart(0) should keep the seed: %v, seed %d", err, g.seed)
	}

	s.Dispose()
	s.Dispose()
	if !player.closed {
		t.Error("Dispose() did not close audio")
	}
	if _, err := s.Run(context.Background(), nil); !errors.Is(err, ErrDisposed) {
		t.Errorf("Run() after Dispose = %v", err)
	}
	if err := s.Restart(1); !errors.Is(err, ErrDisposed) {
		t.Errorf("Restart() after Dispose = %v", err)
	}
}

func TestResizeKeepsSimulation(t *testing.T) {
	g := &fakeGame{endAt: 2}
	s := newSession(t, g, nil, nil, 10)
	s.Resize(40, 10)

	if snap := s.Snapshot(); !strings.HasPrefix(snap, "frame") || len(strings.Split(snap, "\n")) != 10 {
		t.Errorf("snapshot after resize = %q", snap)
	}
	if g.resets != 1 {
		t.Error("Resize() must not reset the game")
	}
}

func TestSnapshotDuringRun(t *testing.T) {
	g := &fakeGame{endAt: 400}
	s := newSession(t, g, nil, nil, 400)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			s.Input().Press(core.ActionFire)
			if snap := s.Snapshot(); snap != "" && !strings.HasPrefix(snap, "frame") {
				t.Errorf("snapshot during run = %q", snap)
				return
			}
		}
	}()

	_, err := s.Run(context.Background(), nil)
	close(done)
	wg.Wait()
	if err != nil {
		t.Fatal(err)
	}
	if snap := s.Snapshot(); !strings.HasPrefix(snap, "frame 400") {
		t.Errorf("snapshot after run = %q", snap)
	}
}

func TestPhaseStrings(t *testing.T) {
	if PhaseWon.String() != "won" || PhaseIdle.String() != "idle" || OutcomeAborted.String() != "aborted" {
		t.Error("unexpected phase or outcome names")
	}
}
