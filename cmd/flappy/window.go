package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/desktop"
)

var (
	flagWidth  int
	flagHeight int
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a desktop window and play there.

Controls:
  Space/Up/Enter/W  - Start, flap, play again
  Left click/touch  - Same as space
  Q/Esc             - Quit

Examples:
  flappy window
  flappy window --width 360 --height 600`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagWidth, "width", 0, "Window width in pixels (0 = fit the screen)")
	windowCmd.Flags().IntVar(&flagHeight, "height", 0, "Window height in pixels (0 = fit the screen)")
}

func runWindow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr, log.InfoLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	pc := playConfig(cfg, store, logger)
	pc.Runtime.ScreenW = flagWidth
	pc.Runtime.ScreenH = flagHeight

	if err := desktop.Run(pc); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
