// Package tui hosts arcade sessions in Bubble Tea: key and mouse mapping,
// colored screen rendering, the game picker, the scoreboard and the SSH
// server.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/frame-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ", "x":
		return core.ActionFire, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MapMouse translates a mouse message to a pointer event. Only left button
// presses count.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) (core.Pointer, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return core.Pointer{}, false
	}
	return core.Pointer{X: msg.X, Y: msg.Y, Pressed: true}, true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
