package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the hard-coded flappy configuration. It matches
// the embedded defaults/flappy.yaml and is the last resort of LoadFlappy.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Viewport: ViewportConfig{
			Width:  480,
			Height: 800,
		},
		Physics: FlappyPhysics{
			Gravity:         0.8,
			JumpVelocity:    -12,
			MaxFallSpeed:    15,
			RotationFactor:  3,
			MaxUpRotation:   -25,
			MaxDownRotation: 70,
		},
		Player: FlappyPlayer{
			SizeRatio:      0.1,
			XRatio:         0.25,
			HitboxMargin:   0.15,
			WingFrameTicks: 5,
		},
		Obstacles: FlappyObstacles{
			Speed:        5,
			WidthRatio:   0.15,
			GapRatio:     0.25,
			CapRatio:     0.04,
			SpacingRatio: 0.45,
			MarginRatio:  0.15,
		},
		World: WorldConfig{
			FloorRatio: 0.85,
			AnimStep:   0.05,
		},
		Loop: LoopConfig{
			TickRate: 60,
		},
		Storage: StorageConfig{
			Namespace: "flappy_clone_prefs",
			Key:       "best_score",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultFlappyYAML
}
