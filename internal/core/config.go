package core

import "time"

// ReferenceFPS is the frame rate the game tuning constants are written for.
// Per-frame speeds and lifetimes are scaled by Frame.Steps.
const ReferenceFPS = 60

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Simulation ticks per second (default 60)
	Seed       int64  // RNG seed for deterministic gameplay
	ConfigPath string // Optional path to a game config file
	Difficulty string // Difficulty preset name ("" keeps the config's own)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Frame is the per-tick context handed to Game.Update.
// It is rebuilt for every tick and never shared between frames.
type Frame struct {
	Index   uint64     // 1 for the first frame of a run
	Time    time.Time  // Tick timestamp
	Delta   float64    // Seconds since the previous frame
	Elapsed float64    // Seconds accumulated since the run started
	Input   InputFrame // Input snapshot taken at the start of the tick
}

// Steps converts Delta into reference frames (1/60 s).
func (f Frame) Steps() float64 {
	return f.Delta * ReferenceFPS
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // The session was lost
	Won      bool // The objective was met
	Paused   bool // Whether the game is paused
}

// Terminal reports whether the game reached an end state.
func (s GameState) Terminal() bool {
	return s.GameOver || s.Won
}
