package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/frame-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows every game registered in the arcade with its best score.

Best scores come from --db; with an empty --db they are all zero.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	bridge, closeStore := openBridge(logger)
	defer closeStore()

	games := registry.List()
	printGames(os.Stdout, games, bridge.Bests(registry.IDs()))
	return nil
}

// printGames writes the game table. bests may miss games that were never
// played.
func printGames(w io.Writer, games []registry.GameInfo, bests map[string]int) {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games available.")
		return
	}

	fmt.Fprintln(w, "Available games:")
	fmt.Fprintln(w)

	// Calculate column widths
	idW, titleW := len("ID"), len("Title")
	for _, g := range games {
		idW = max(idW, len(g.ID))
		titleW = max(titleW, len(g.Title))
	}

	// Print header
	fmt.Fprintf(w, "  %-*s  %-*s  %s\n", idW, "ID", titleW, "Title", "Best")
	fmt.Fprintf(w, "  %-*s  %-*s  %s\n", idW, "--", titleW, "-----", "----")

	// Print games, never played ones with a dash
	for _, g := range games {
		best := "-"
		if v := bests[g.ID]; v > 0 {
			best = fmt.Sprint(v)
		}
		fmt.Fprintf(w, "  %-*s  %-*s  %s\n", idW, g.ID, titleW, g.Title, best)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'arcade play <id>' to play a game.")
}
