// arcade is a terminal arcade: fixed-step games rendered into a character
// grid, played locally or over SSH.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Pick games interactively
//	arcade serve             - Start the SSH server
//	arcade scores [game]     - Show best scores
//
// Global flags:
//
//	--fps <rate>        - Tick rate (default: 60)
//	--seed <value>      - RNG seed for reproducible play
//	--db <path>         - Database path (default: ~/.arcade/arcade.db, "" keeps scores in memory)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Log destination while a game owns the terminal
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/scores"
	"github.com/vovakirdan/frame-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/frame-arcade/internal/games/match3"
	_ "github.com/vovakirdan/frame-arcade/internal/games/racing"
	_ "github.com/vovakirdan/frame-arcade/internal/games/runner"
	_ "github.com/vovakirdan/frame-arcade/internal/games/shooter"
	_ "github.com/vovakirdan/frame-arcade/internal/games/snake"
	_ "github.com/vovakirdan/frame-arcade/internal/games/towerdefense"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Frame Arcade - retro games in your terminal",
	Long: `Frame Arcade runs small real-time games on a fixed frame clock and
draws them as text, in your terminal or over SSH.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View best scores

Examples:
  arcade list
  arcade play snake
  arcade play space-shooter --difficulty hard --sound
  arcade menu
  arcade serve --ssh :2222
  arcade scores`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.ReferenceFPS, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to the scores database (empty = memory only)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the process logger. While a TUI owns the terminal, logs
// go to --log-file or are discarded.
func newLogger(tui bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	case tui:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "arcade",
		Level:           level,
	})
	return logger, closeFn, nil
}

// openBridge opens the score store behind a bridge. A database that cannot
// be opened leaves the bridge memory only.
func openBridge(logger *log.Logger) (*scores.Bridge, func()) {
	if flagDBPath == "" {
		return scores.NewBridge(scores.NewMemoryKV(), logger), func() {}
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", flagDBPath, "err", err)
		return scores.NewBridge(nil, logger), func() {}
	}
	return scores.NewBridge(store, logger), func() { store.Close() }
}

// runtimeConfig returns the base runtime for local play, sized to the
// terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && h > 0 {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}
