package core

// RuntimeConfig contains host parameters chosen on the command line.
// Zero values defer to the game configuration.
type RuntimeConfig struct {
	ScreenW  int   // Window width in pixels (desktop host only)
	ScreenH  int   // Window height in pixels (desktop host only)
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed for gap placement, 0 means time-seeded
}

// TickRateOr returns the configured tick rate, or fallback when unset.
func (c RuntimeConfig) TickRateOr(fallback int) int {
	if c.TickRate > 0 {
		return c.TickRate
	}
	return fallback
}

// GameState is a read-only summary of the game for hosts.
type GameState struct {
	Score    int  // Current run score
	Best     int  // Best score ever recorded
	NewBest  bool // Whether the current run set a new best
	Playing  bool // Whether a run is in progress
	GameOver bool // Whether the last run has ended
}
