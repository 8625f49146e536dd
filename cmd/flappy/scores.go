package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/play"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagClear bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the recorded runs and the best score.

On a terminal an interactive table is shown; otherwise the top runs are
printed as plain text. --clear deletes the run history but keeps the best
score.

Examples:
  flappy scores
  flappy scores --limit 20 | less
  flappy scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the run history (the best score is kept)")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print in plain output")
}

func runScores(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.DBPath())
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(play.GameID); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, cfg.Storage, width, height)
	}

	best, err := play.BestScore(store, cfg.Storage).LoadBest()
	if err != nil {
		return err
	}
	scores, err := store.TopScores(play.GameID, flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}
	printScores(os.Stdout, scores, best)
	return nil
}

// printScores writes the top runs and the best score as plain text.
func printScores(w io.Writer, scores []storage.ScoreEntry, best int) {
	fmt.Fprintln(w, "High Scores - Flappy")
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'flappy play' to set the first high score!")
	} else {
		// Print header
		fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "----", "-----", "----")

		for i, entry := range scores {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Fprintf(w, "  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d\n", best)
}
