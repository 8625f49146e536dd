package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// LoadFlappy loads flappy configuration.
// Search order: customPath -> ~/.flappy/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default
//
// Files are decoded over DefaultFlappyConfig, so a file only needs the keys it
// changes. The result is validated before it is returned.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	cfg, err := loadFlappy(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFlappy(customPath string) (FlappyConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultFlappyConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseFlappy(data)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseFlappy(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "flappy.yaml")); err == nil {
		if cfg, err := parseFlappy(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseFlappy(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseFlappy(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultFlappyConfig(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "configs", filename)
}

// DefaultDBPath returns ~/.flappy/scores.db, or a relative fallback when the
// home directory is unavailable.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "flappy.db"
	}
	return filepath.Join(home, ".flappy", "scores.db")
}

// DBPath returns the configured database path, or DefaultDBPath when unset.
func (c StorageConfig) DBPath() string {
	if c.Path != "" {
		return c.Path
	}
	return DefaultDBPath()
}

// FloorY returns the floor line in world units.
func (c FlappyConfig) FloorY() float64 {
	return c.Viewport.Height * c.World.FloorRatio
}

// Validate rejects values the simulation cannot run with. NaN and infinite
// values are rejected everywhere.
func (c FlappyConfig) Validate() error {
	v := c.Viewport
	if !finite(v.Width, v.Height) || v.Width < MinViewportWidth || v.Height < MinViewportHeight {
		return fmt.Errorf("%w: viewport %gx%g is below the minimum %dx%d",
			ErrInvalidConfig, v.Width, v.Height, MinViewportWidth, MinViewportHeight)
	}

	p := c.Physics
	switch {
	case !finite(p.Gravity, p.JumpVelocity, p.MaxFallSpeed, p.RotationFactor, p.MaxUpRotation, p.MaxDownRotation):
		return fmt.Errorf("%w: physics values must be finite", ErrInvalidConfig)
	case p.Gravity <= 0:
		return fmt.Errorf("%w: physics.gravity must be positive", ErrInvalidConfig)
	case p.JumpVelocity >= 0:
		return fmt.Errorf("%w: physics.jump_velocity must be negative", ErrInvalidConfig)
	case p.MaxFallSpeed <= 0:
		return fmt.Errorf("%w: physics.max_fall_speed must be positive", ErrInvalidConfig)
	case p.MaxUpRotation > p.MaxDownRotation:
		return fmt.Errorf("%w: physics.max_up_rotation exceeds max_down_rotation", ErrInvalidConfig)
	}

	pl := c.Player
	if !isRatio(pl.SizeRatio) || !isRatio(pl.XRatio) {
		return fmt.Errorf("%w: player ratios must be in (0, 1]", ErrInvalidConfig)
	}
	if !(pl.HitboxMargin >= 0 && pl.HitboxMargin < 0.5) {
		return fmt.Errorf("%w: player.hitbox_margin must be in [0, 0.5)", ErrInvalidConfig)
	}
	if pl.WingFrameTicks <= 0 {
		return fmt.Errorf("%w: player.wing_frame_ticks must be positive", ErrInvalidConfig)
	}

	o := c.Obstacles
	if !finite(o.Speed) || o.Speed <= 0 {
		return fmt.Errorf("%w: obstacles.speed must be positive", ErrInvalidConfig)
	}
	if !isRatio(o.WidthRatio) || !isRatio(o.GapRatio) || !isRatio(o.CapRatio) || !isRatio(o.SpacingRatio) {
		return fmt.Errorf("%w: obstacle ratios must be in (0, 1]", ErrInvalidConfig)
	}
	if !(o.MarginRatio >= 0 && o.MarginRatio < 0.5) {
		return fmt.Errorf("%w: obstacles.margin_ratio must be in [0, 0.5)", ErrInvalidConfig)
	}
	// One spawn per tick at most, and obstacles may not overlap.
	if o.SpacingRatio <= o.WidthRatio {
		return fmt.Errorf("%w: obstacles.spacing_ratio %g must exceed width_ratio %g",
			ErrInvalidConfig, o.SpacingRatio, o.WidthRatio)
	}
	if spacing := v.Width * o.SpacingRatio; spacing < o.Speed {
		return fmt.Errorf("%w: obstacle spacing %g is below the speed %g",
			ErrInvalidConfig, spacing, o.Speed)
	}

	if !isRatio(c.World.FloorRatio) {
		return fmt.Errorf("%w: world.floor_ratio must be in (0, 1]", ErrInvalidConfig)
	}
	if !(c.World.AnimStep >= 0) || !finite(c.World.AnimStep) {
		return fmt.Errorf("%w: world.anim_step must be finite and not negative", ErrInvalidConfig)
	}

	floor := c.FloorY()
	if free := floor - v.Height*o.GapRatio - 2*floor*o.MarginRatio; free < 0 {
		return fmt.Errorf("%w: gap and margins do not fit above the floor (short by %g)", ErrInvalidConfig, -free)
	}

	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("%w: loop.tick_rate must be positive", ErrInvalidConfig)
	}
	if c.Storage.Namespace == "" || c.Storage.Key == "" {
		return fmt.Errorf("%w: storage.namespace and storage.key are required", ErrInvalidConfig)
	}
	return nil
}

// isRatio is false for NaN.
func isRatio(r float64) bool {
	return r > 0 && r <= 1
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
