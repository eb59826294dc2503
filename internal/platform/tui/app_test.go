package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/registry"
	"github.com/vovakirdan/frame-arcade/internal/scores"
)

func init() {
	registry.Register("tui-count", func() registry.Game { return &countGame{} })
}

func newApp(t *testing.T) (AppModel, *scores.Bridge) {
	t.Helper()
	logger := log.New(io.Discard)
	bridge := scores.NewBridge(scores.NewMemoryKV(), logger)
	return NewAppModel(AppConfig{
		Runtime: core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 60, Seed: 1},
		Bridge:  bridge,
		Logger:  logger,
	}), bridge
}

func appUpdate(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	app, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return app, cmd
}

func TestAppFlow(t *testing.T) {
	app, _ := newApp(t)
	if !strings.Contains(app.View(), "Count") {
		t.Fatalf("menu does not list the game:\n%s", app.View())
	}

	app, cmd := appUpdate(t, app, SelectGameMsg{GameID: "tui-count"})
	if app.screen != screenPlay || cmd == nil {
		t.Fatalf("screen = %v after selecting a game", app.screen)
	}
	if !strings.Contains(app.View(), "Starting Count") {
		t.Errorf("play view before the first frame = %q", app.View())
	}

	app, _ = appUpdate(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	app, _ = appUpdate(t, app, BackMsg{})
	if app.screen != screenMenu {
		t.Fatalf("screen = %v after back", app.screen)
	}

	app, _ = appUpdate(t, app, ShowScoresMsg{})
	if app.screen != screenScores || !strings.Contains(app.View(), "HIGH SCORES") {
		t.Fatalf("scoreboard not shown:\n%s", app.View())
	}
	_, cmd = appUpdate(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc on the scoreboard produced no command")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Error("esc on the scoreboard should go back")
	}
}

func TestAppUnknownGame(t *testing.T) {
	app, _ := newApp(t)
	app, _ = appUpdate(t, app, SelectGameMsg{GameID: "pinball"})
	if app.screen != screenMenu || !strings.Contains(app.View(), "Cannot start pinball") {
		t.Errorf("unknown game should stay on the menu with a notice:\n%s", app.View())
	}
}

func TestMenuSelect(t *testing.T) {
	app, _ := newApp(t)
	item, ok := app.menu.Selected()
	if !ok {
		t.Fatal("menu is empty")
	}
	_, cmd := appUpdate(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	if msg, ok := cmd().(SelectGameMsg); !ok || msg.GameID != item.GameID {
		t.Errorf("enter sent %v, expected SelectGameMsg for %s", msg, item.GameID)
	}
}

func TestLoadScoreRows(t *testing.T) {
	_, bridge := newApp(t)
	bridge.ReportScore("tui-count", 50)

	rows := LoadScoreRows(bridge)
	if len(rows) == 0 || rows[0].GameID != "tui-count" || rows[0].Best != 50 {
		t.Errorf("rows = %+v", rows)
	}
}
