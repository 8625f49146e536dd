package tui

import (
	"context"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/loop"
	"github.com/vovakirdan/tui-flappy/internal/play"
)

// SessionConfig holds everything needed to start one player's game.
type SessionConfig struct {
	play.Config

	// Renderer styles frames for the player's terminal. Nil means the
	// local terminal.
	Renderer *lipgloss.Renderer
}

// Session is one scene with its driver and terminal surface.
type Session struct {
	Scene  *flappy.Scene
	Driver *loop.Driver
	Frames *Frames
}

// NewSession builds the scene and its driver. The driver is not started.
func NewSession(cfg SessionConfig) (*Session, error) {
	scene, err := play.NewScene(cfg.Config)
	if err != nil {
		return nil, err
	}

	layout := scene.Layout()
	frames := NewFrames(layout.Width, layout.Height, cfg.Renderer)
	driver := loop.New(scene, frames, cfg.TickRate(), cfg.Logger)

	return &Session{
		Scene:  scene,
		Driver: driver,
		Frames: frames,
	}, nil
}

// Start runs the driver until ctx is cancelled or Close is called.
func (s *Session) Start(ctx context.Context) error {
	return s.Driver.Start(ctx)
}

// Snapshot returns the scene summary, taken between ticks.
func (s *Session) Snapshot() core.GameState {
	var snap core.GameState
	s.Driver.Do(func() {
		snap = s.Scene.Snapshot()
	})
	return snap
}

// Close stops the driver and releases the program's frame wait.
// It is safe to call more than once.
func (s *Session) Close() {
	s.Driver.Stop()
	s.Frames.Close()
}
