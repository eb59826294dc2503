package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/frame-arcade/internal/audio"
	"github.com/vovakirdan/frame-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or w/s to navigate, Enter to select a game and Tab for the
scoreboard. After a game, Esc returns to the menu.

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db --sound`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	bridge, closeStore := openBridge(logger)
	defer closeStore()

	app := tui.AppConfig{
		Runtime: runtimeConfig(),
		Bridge:  bridge,
		Logger:  logger,
	}
	if flagSound {
		sound := audio.DefaultConfig()
		app.Sound = &sound
	}
	return tui.RunApp(app)
}
