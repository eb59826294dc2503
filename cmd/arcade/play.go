package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/frame-arcade/internal/audio"
	"github.com/vovakirdan/frame-arcade/internal/platform/tui"
	"github.com/vovakirdan/frame-arcade/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSound      bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move
  Space/X      - Fire / act
  Enter        - Confirm
  Mouse        - Click to aim, build or select
  P            - Pause
  R            - Restart (after the game ends)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play snake
  arcade play runner --difficulty easy
  arcade play racing --seed 42
  arcade play space-shooter --difficulty hard --sound
  arcade play towerdefense --config ./my-td.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a game config file (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	bridge, closeStore := openBridge(logger)
	defer closeStore()

	rt := runtimeConfig()
	rt.ConfigPath = flagConfig
	rt.Difficulty = flagDifficulty

	app := tui.AppConfig{
		Runtime: rt,
		Bridge:  bridge,
		Logger:  logger,
	}
	if flagSound {
		sound := audio.DefaultConfig()
		app.Sound = &sound
	}

	sess, err := tui.NewSession(app, gameID, rt.ScreenW, rt.ScreenH)
	if err != nil {
		return fmt.Errorf("cannot start %s: %w", gameID, err)
	}
	defer sess.Dispose()

	if err := tui.Run(context.Background(), sess, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		return err
	}
	return nil
}
