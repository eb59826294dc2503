package core

import "sync"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionFire           // Space - shoot, flip gravity, select
	ActionConfirm        // Enter - confirm selection
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Pointer is the mouse state in screen cells.
type Pointer struct {
	X, Y    int
	Pressed bool // A click arrived since the previous frame
}

// InputFrame is the input snapshot for one simulation frame.
// It contains all actions that were triggered since the previous frame.
type InputFrame struct {
	Actions map[Action]bool
	Pointer Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer.Pressed = false
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = f.Pointer
	return clone
}

// InputBuffer collects input events as they arrive from the UI goroutine.
// The frame loop takes one Snapshot per frame, so a frame never observes
// an event half-applied.
type InputBuffer struct {
	mu      sync.Mutex
	pending InputFrame
}

// NewInputBuffer creates an empty buffer.
func NewInputBuffer() *InputBuffer {
	return &InputBuffer{pending: NewInputFrame()}
}

// Press records an action for the next frame.
func (b *InputBuffer) Press(a Action) {
	if a == ActionNone {
		return
	}
	b.mu.Lock()
	b.pending.Set(a)
	b.mu.Unlock()
}

// Point records the pointer position, and a click when pressed is true.
func (b *InputBuffer) Point(x, y int, pressed bool) {
	b.mu.Lock()
	b.pending.Pointer.X = x
	b.pending.Pointer.Y = y
	if pressed {
		b.pending.Pointer.Pressed = true
	}
	b.mu.Unlock()
}

// Snapshot returns the input accumulated since the last call and resets the
// edge-triggered state. The pointer position carries over between frames.
func (b *InputBuffer) Snapshot() InputFrame {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := b.pending.Clone()
	b.pending.Clear()
	return snap
}

// Reset drops any pending input.
func (b *InputBuffer) Reset() {
	b.mu.Lock()
	b.pending.Clear()
	b.mu.Unlock()
}
