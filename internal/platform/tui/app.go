package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frame-arcade/internal/audio"
	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/registry"
	"github.com/vovakirdan/frame-arcade/internal/scores"
	"github.com/vovakirdan/frame-arcade/internal/session"
)

// AppConfig holds what every session of one host shares.
type AppConfig struct {
	// Context bounds every game started from the app, e.g. the lifetime of
	// an SSH connection. Nil means context.Background().
	Context context.Context

	Runtime core.RuntimeConfig
	Bridge  *scores.Bridge
	Logger  *log.Logger

	// Sound enables audio cues. Nil keeps sessions silent.
	Sound *audio.Config

	// Renderer styles frames for the output. Nil means the local terminal.
	Renderer *lipgloss.Renderer
}

func (c AppConfig) withDefaults() AppConfig {
	if c.Context == nil {
		c.Context = context.Background()
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	if c.Bridge == nil {
		c.Bridge = scores.NewBridge(nil, c.Logger)
	}
	if c.Runtime.TickRate <= 0 {
		c.Runtime.TickRate = core.ReferenceFPS
	}
	return c
}

// NewSession creates a session for gameID sized to a w x h terminal. One
// row is kept for the status line. A zero seed picks a time based one.
func NewSession(cfg AppConfig, gameID string, w, h int) (*session.Session, error) {
	cfg = cfg.withDefaults()
	game, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}

	rt := cfg.Runtime
	if w > 0 && h > 0 {
		rt.ScreenW, rt.ScreenH = w, max(h-1, 1)
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	logger := cfg.Logger.With("game", gameID)
	var player audio.Player = audio.Nop{}
	if cfg.Sound != nil {
		player = audio.Open(*cfg.Sound, logger)
	}

	sess, err := session.New(game, session.Options{
		Runtime: rt,
		Bridge:  cfg.Bridge,
		Audio:   player,
		Logger:  logger,
		Render:  NewScreenRenderer(cfg.Renderer).Render,
	})
	if err != nil {
		player.Close()
		return nil, err
	}
	return sess, nil
}

type appScreen int

const (
	screenMenu appScreen = iota
	screenPlay
	screenScores
)

// AppModel manages the full arcade flow: menu -> game or scoreboard -> menu.
// It is the top-level model for `arcade menu` and for SSH sessions.
type AppModel struct {
	cfg    AppConfig
	screen appScreen
	menu   MenuModel
	play   PlayModel
	board  ScoreboardModel
	width  int
	height int
}

// NewAppModel creates the flow starting at the menu.
func NewAppModel(cfg AppConfig) AppModel {
	cfg = cfg.withDefaults()
	return AppModel{
		cfg:    cfg,
		menu:   NewMenuModel(cfg.Bridge, cfg.Runtime.ScreenW, cfg.Runtime.ScreenH),
		width:  cfg.Runtime.ScreenW,
		height: cfg.Runtime.ScreenH,
	}
}

// Init initializes the menu.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen and switches screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case SelectGameMsg:
		sess, err := NewSession(m.cfg, msg.GameID, m.width, m.height)
		if err != nil {
			m.cfg.Logger.Error("cannot start game", "game", msg.GameID, "err", err)
			m.menu.notice = fmt.Sprintf("Cannot start %s: %v", msg.GameID, err)
			return m, nil
		}
		m.play = NewPlayModel(m.cfg.Context, sess, m.cfg.Logger, false)
		m.screen = screenPlay
		return m, m.play.Init()

	case ShowScoresMsg:
		m.board = NewScoreboardModel(m.cfg.Bridge, m.width, m.height)
		m.screen = screenScores
		return m, nil

	case BackMsg:
		cursor := m.menu.cursor
		m.menu = NewMenuModel(m.cfg.Bridge, m.width, m.height)
		m.menu.cursor = min(cursor, max(len(m.menu.items)-1, 0))
		m.screen = screenMenu
		return m, nil
	}

	var cmd tea.Cmd
	var next tea.Model
	switch m.screen {
	case screenPlay:
		next, cmd = m.play.Update(msg)
		m.play = next.(PlayModel)
	case screenScores:
		next, cmd = m.board.Update(msg)
		m.board = next.(ScoreboardModel)
	default:
		next, cmd = m.menu.Update(msg)
		m.menu = next.(MenuModel)
	}
	return m, cmd
}

// View renders the active screen.
func (m AppModel) View() string {
	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenScores:
		return m.board.View()
	default:
		return m.menu.View()
	}
}

// Close releases a running game, if any.
func (m AppModel) Close() {
	if m.screen == screenPlay {
		m.play.close()
	}
}

// RunApp runs the menu flow in a local Bubble Tea program.
func RunApp(cfg AppConfig) error {
	cfg = cfg.withDefaults()
	p := tea.NewProgram(
		NewAppModel(cfg),
		tea.WithContext(cfg.Context),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if app, ok := final.(AppModel); ok {
		app.Close()
	}
	return err
}
