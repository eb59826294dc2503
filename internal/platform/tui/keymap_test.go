package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/frame-arcade/internal/core"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runes("w"), core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"a", runes("a"), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFire, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"pause", runes("p"), core.ActionPause, false},
		{"restart", runes("r"), core.ActionRestart, false},
		{"q", runes("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runes("z"), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()

	p, ok := km.MapMouse(tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !ok || p != (core.Pointer{X: 4, Y: 7, Pressed: true}) {
		t.Errorf("left press = %+v, %v", p, ok)
	}
	if _, ok := km.MapMouse(tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionMotion}); ok {
		t.Error("motion should not count as a press")
	}
	if _, ok := km.MapMouse(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}); ok {
		t.Error("right button should be ignored")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action MenuAction
	}{
		{runes("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runes("b"), MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("x"), MenuActionNone},
	}
	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.action {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.action)
		}
	}
}
