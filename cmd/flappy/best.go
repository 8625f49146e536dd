package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/play"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Print the best score",
	Long: `Print the persisted best score as a bare number, for scripts.

Examples:
  flappy best
  flappy best --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runBest,
}

func runBest(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.DBPath())
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	best, err := play.BestScore(store, cfg.Storage).LoadBest()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), best)
	return nil
}
