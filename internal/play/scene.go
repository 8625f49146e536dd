// Package play assembles a flappy scene with its persistence, for any host.
package play

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// GameID identifies flappy runs in the scores table.
const GameID = "flappy"

// Config holds what a host needs to build a scene.
type Config struct {
	Game    config.FlappyConfig
	Runtime core.RuntimeConfig

	// Store keeps the best score and the run history. May be nil.
	Store *storage.Store

	// Logger defaults to a discarding logger.
	Logger *log.Logger
}

// TickRate returns the runtime tick rate, or the game's when unset.
func (c Config) TickRate() int {
	return c.Runtime.TickRateOr(c.Game.Loop.TickRate)
}

func (c Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard)
	}
	return c.Logger
}

// NewScene builds a scene that loads and raises the persisted best score
// and appends every scoring run to the history.
func NewScene(cfg Config) (*flappy.Scene, error) {
	logger := cfg.logger()

	opts := []flappy.Option{
		flappy.WithLogger(logger),
		flappy.OnRunEnded(RecordRun(cfg.Store, logger)),
	}
	if cfg.Runtime.Seed != 0 {
		opts = append(opts, flappy.WithSeed(cfg.Runtime.Seed))
	}
	if cfg.Store != nil {
		opts = append(opts, flappy.WithBestScoreStore(BestScore(cfg.Store, cfg.Game.Storage)))
	}

	return flappy.NewScene(cfg.Game, opts...)
}

// BestScore returns the best-score view of store under the configured key.
func BestScore(store *storage.Store, prefs config.StorageConfig) *storage.BestScore {
	return storage.NewBestScore(store, prefs.Namespace, prefs.Key)
}

// RecordRun returns a run-end callback that appends scoring runs to the
// history table. Runs scoring zero are not recorded.
func RecordRun(store *storage.Store, logger *log.Logger) func(score int) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return func(score int) {
		if store == nil || score <= 0 {
			return
		}
		if _, err := store.SaveScore(GameID, score); err != nil {
			logger.Warn("run not recorded", "score", score, "err", err)
		}
	}
}
