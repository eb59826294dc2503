package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/session"
)

// FrameMsg carries the latest rendered frame from the session goroutine.
type FrameMsg struct {
	View string
	from *session.Session
}

// SessionDoneMsg is sent when a run of the session ends.
type SessionDoneMsg struct {
	Result session.Result
	Err    error
	from   *session.Session
}

// BackMsg asks the parent model to leave the current screen.
type BackMsg struct{}

func back() tea.Msg { return BackMsg{} }

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	bestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// PlayModel hosts one session. The session runs its own frame loop in a
// command goroutine and hands rendered frames over a one-slot channel that
// drops stale frames; the model only forwards input and shows frames.
type PlayModel struct {
	sess   *session.Session
	keys   *KeyMapper
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	frames chan string

	view       string
	result     *session.Result
	err        error
	exitOnBack bool
	quitting   bool
	width      int
	height     int
}

// NewPlayModel creates a model for sess. The session stops when ctx is
// cancelled. With exitOnBack the program quits instead of sending BackMsg
// when the player leaves the game.
func NewPlayModel(ctx context.Context, sess *session.Session, logger *log.Logger, exitOnBack bool) PlayModel {
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(ctx)
	return PlayModel{
		sess:       sess,
		keys:       NewKeyMapper(),
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		frames:     make(chan string, 1),
		exitOnBack: exitOnBack,
	}
}

// Init starts the first run.
func (m PlayModel) Init() tea.Cmd {
	return tea.Batch(m.start(), m.waitFrame())
}

// start runs the session until it ends.
func (m PlayModel) start() tea.Cmd {
	sess, ctx, frames := m.sess, m.ctx, m.frames
	return func() tea.Msg {
		res, err := sess.Run(ctx, func(view string) { offer(frames, view) })
		return SessionDoneMsg{Result: res, Err: err, from: sess}
	}
}

// offer puts view into the one-slot channel, replacing an unread frame.
func offer(frames chan string, view string) {
	for {
		select {
		case frames <- view:
			return
		default:
		}
		select {
		case <-frames:
		default:
		}
	}
}

// waitFrame delivers the next frame, or nothing once the model is closed.
func (m PlayModel) waitFrame() tea.Cmd {
	sess, ctx, frames := m.sess, m.ctx, m.frames
	return func() tea.Msg {
		select {
		case v := <-frames:
			return FrameMsg{View: v, from: sess}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update handles messages and forwards input to the session.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		if msg.from != m.sess {
			return m, nil
		}
		m.view = msg.View
		return m, m.waitFrame()

	case SessionDoneMsg:
		if msg.from != m.sess {
			return m, nil
		}
		m.result = &msg.Result
		m.err = msg.Err
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.sess.Resize(msg.Width, max(msg.Height-1, 1))
		return m, nil

	case tea.MouseMsg:
		if p, ok := m.keys.MapMouse(msg); ok {
			m.sess.Input().Point(p.X, p.Y, p.Pressed)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		m.close()
		return m, tea.Quit
	case action == core.ActionBack:
		m.close()
		if m.exitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		return m, back
	case action == core.ActionRestart && m.result != nil:
		if err := m.sess.Restart(time.Now().UnixNano()); err != nil {
			m.err = err
			return m, nil
		}
		m.result, m.err = nil, nil
		return m, m.start()
	case action != core.ActionNone:
		m.sess.Input().Press(action)
	}
	return m, nil
}

// close stops the session and releases it.
func (m PlayModel) close() {
	m.cancel()
	m.sess.Dispose()
}

// saveScreenshot writes the current frame as text to ~/.arcade/screenshots.
func (m PlayModel) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.sess.Game().ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.sess.Snapshot()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the last frame and a status line.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return m.errorView()
	}

	if m.view == "" {
		return statusStyle.Render(" Starting " + m.sess.Game().Title() + "...")
	}

	var b strings.Builder
	b.WriteString(m.view)
	b.WriteString("\n")
	b.WriteString(m.status())
	return b.String()
}

func (m PlayModel) status() string {
	if m.result == nil {
		return statusStyle.Render(fmt.Sprintf(" BEST %d  |  P pause  B back  Q quit  ^S screenshot", m.sess.Best()))
	}
	line := fmt.Sprintf(" %s  SCORE %d  BEST %d", strings.ToUpper(m.result.Outcome.String()), m.result.Score, m.result.Best)
	if m.result.NewBest {
		return bestStyle.Render(line+"  NEW BEST!") + statusStyle.Render("  |  R restart  B back  Q quit")
	}
	return statusStyle.Render(line + "  |  R restart  B back  Q quit")
}

// errorView is the failure screen shown when a run fails.
func (m PlayModel) errorView() string {
	msg := errorStyle.Render("Something went wrong") + "\n\n" + m.err.Error() + "\n\n" +
		statusStyle.Render("B back  Q quit")
	if m.width <= 0 || m.height <= 0 {
		return msg
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

// Result returns the outcome of the last finished run.
func (m PlayModel) Result() (session.Result, bool) {
	if m.result == nil {
		return session.Result{}, false
	}
	return *m.result, true
}

// Run plays sess in a local Bubble Tea program until the player quits or
// ctx is cancelled.
func Run(ctx context.Context, sess *session.Session, logger *log.Logger) error {
	p := tea.NewProgram(
		NewPlayModel(ctx, sess, logger, true),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
