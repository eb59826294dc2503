package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/frame-arcade/internal/registry"
	"github.com/vovakirdan/frame-arcade/internal/scores"
	"github.com/vovakirdan/frame-arcade/internal/storage"
)

var flagReset bool

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show best scores",
	Long: `Display the best score of every game, or of one game.

With --reset the shown best scores are deleted from the database.

Examples:
  arcade scores
  arcade scores snake
  arcade scores snake --reset`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete the shown best scores")
}

type scoreLine struct {
	id    string
	title string
	best  int
	when  string
}

func runScores(_ *cobra.Command, args []string) error {
	if flagDBPath == "" {
		return errors.New("scores need a database, --db is empty")
	}

	games := registry.List()
	if len(args) == 1 {
		id := args[0]
		if !registry.Exists(id) {
			return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", id)
		}
		games = onlyGame(games, id)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	entries, err := store.EntriesWithSuffix(scores.KeySuffix)
	if err != nil {
		return fmt.Errorf("cannot read scores: %w", err)
	}
	stored := make(map[string]storage.Entry, len(entries))
	for _, e := range entries {
		stored[strings.TrimSuffix(e.Key, scores.KeySuffix)] = e
	}

	if flagReset {
		for _, g := range games {
			if err := store.Delete(scores.Key(g.ID)); err != nil {
				return fmt.Errorf("cannot reset %s: %w", g.ID, err)
			}
			fmt.Printf("Reset best score of %s\n", g.Title)
		}
		return nil
	}

	lines := make([]scoreLine, 0, len(games))
	for _, g := range games {
		line := scoreLine{id: g.ID, title: g.Title, when: "-"}
		if e, ok := stored[g.ID]; ok {
			if v, err := strconv.Atoi(e.Value); err == nil {
				line.best = v
			}
			if !e.UpdatedAt.IsZero() {
				line.when = e.UpdatedAt.Local().Format("2006-01-02 15:04")
			}
		}
		lines = append(lines, line)
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].best > lines[j].best
	})

	fmt.Println("Best Scores")
	fmt.Println()
	fmt.Printf("  %-4s  %-24s  %-8s  %s\n", "Rank", "Game", "Best", "Date")
	fmt.Printf("  %-4s  %-24s  %-8s  %s\n", "----", "----", "----", "----")
	for i, l := range lines {
		fmt.Printf("  %-4d  %-24s  %-8d  %s\n", i+1, l.title, l.best, l.when)
	}

	if len(args) == 1 && lines[0].best == 0 {
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", args[0])
	}
	return nil
}

func onlyGame(games []registry.GameInfo, id string) []registry.GameInfo {
	for _, g := range games {
		if g.ID == id {
			return []registry.GameInfo{g}
		}
	}
	return nil
}
