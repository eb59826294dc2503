// Package registry holds the game factories.
// Games register themselves in init(), so the CLI and the terminal shell can
// list and start them without importing each game by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/frame-arcade/internal/core"
)

// Game is a single playable simulation driven by the frame loop.
// Games never touch the terminal: the session feeds them frames and the
// platform presents what they draw.
type Game interface {
	// ID is the stable identifier used for CLI arguments and score keys.
	ID() string

	// Title is the display name.
	Title() string

	// Reset (re)starts the game. It loads the game's configuration from
	// cfg.ConfigPath and applies cfg.Difficulty; a bad configuration is
	// returned as an error and the game must not be run.
	Reset(cfg core.RuntimeConfig) error

	// Update advances the simulation by one frame. Movement is scaled by
	// frame.Steps() so the game plays at the same speed at any tick rate.
	Update(frame core.Frame) error

	// Render draws the current state. The screen is cleared beforehand.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh, not yet reset, game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a factory. It panics on a duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// IDs returns the registered ids, sorted.
func IDs() []string {
	games := List()
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	return ids
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
