package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start playing in the current terminal.

Controls:
  Space/Up/Enter/W  - Start, flap, play again
  Left click        - Same as space
  Ctrl+S            - Save a text screenshot to ~/.flappy/screenshots
  ?                 - Toggle help
  Q/Esc/Ctrl+C      - Quit

Examples:
  flappy play
  flappy play --fps 30
  flappy play --seed 42
  flappy play --config ./my-flappy.yaml --log ./flappy.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The alt screen owns the terminal, so logs only go to --log
	logger, closeLog, err := newLogger(io.Discard, log.InfoLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(tui.SessionConfig{Config: playConfig(cfg, store, logger)}); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
