// Package scores keeps the best score of every game in a key-value store.
//
// The bridge never fails its callers: when the store is missing or returns
// errors, it logs a warning and keeps best scores in memory for the rest of
// the process, so a lost high score never interrupts play.
package scores

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// KeySuffix is appended to a game ID to form its storage key.
const KeySuffix = "-highscore"

// KV is the persistent store behind the bridge.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)
	// Set stores value under key.
	Set(key, value string) error
}

// Key returns the storage key of a game's best score.
func Key(gameID string) string {
	return gameID + KeySuffix
}

// Bridge reads and writes best scores. It is safe for concurrent use.
type Bridge struct {
	mu       sync.Mutex
	kv       KV
	logger   *log.Logger
	degraded bool
	cache    map[string]int
}

// NewBridge creates a bridge over kv. A nil kv disables persistence.
func NewBridge(kv KV, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.Default()
	}
	return &Bridge{
		kv:       kv,
		logger:   logger.WithPrefix("scores"),
		degraded: kv == nil,
		cache:    make(map[string]int),
	}
}

// Persistent reports whether scores are still written to the store.
func (b *Bridge) Persistent() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.degraded
}

// LoadBest returns the best score recorded for gameID, or 0 if there is none.
func (b *Bridge) LoadBest(gameID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.load(gameID)
}

// ReportScore records value for gameID if it beats the stored best and
// returns the best after the update. Negative values are ignored.
func (b *Bridge) ReportScore(gameID string, value int) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	best := b.load(gameID)
	if value <= best {
		return best
	}

	b.cache[gameID] = value
	if !b.degraded {
		if err := b.kv.Set(Key(gameID), strconv.Itoa(value)); err != nil {
			b.degrade("cannot save best score", gameID, err)
		}
	}
	return value
}

// Bests returns the best score of every listed game.
func (b *Bridge) Bests(gameIDs []string) map[string]int {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[string]int, len(gameIDs))
	for _, id := range gameIDs {
		out[id] = b.load(id)
	}
	return out
}

// load returns the cached best, reading through to the store once per game.
func (b *Bridge) load(gameID string) int {
	if v, ok := b.cache[gameID]; ok {
		return v
	}
	if b.degraded {
		return 0
	}

	raw, ok, err := b.kv.Get(Key(gameID))
	if err != nil {
		b.degrade("cannot read best score", gameID, err)
		return 0
	}
	best := 0
	if ok {
		n, perr := strconv.Atoi(strings.TrimSpace(raw))
		if perr != nil || n < 0 {
			b.logger.Warn("ignoring malformed best score", "game", gameID, "value", raw)
		} else {
			best = n
		}
	}
	b.cache[gameID] = best
	return best
}

func (b *Bridge) degrade(msg, gameID string, err error) {
	b.logger.Warn(msg+"; scores will not persist", "game", gameID, "err", err)
	b.degraded = true
}
