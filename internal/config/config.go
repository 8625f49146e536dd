// Package config provides YAML-based configuration loading and validation
// for the flappy game and its hosts.
package config

// FlappyConfig contains all configuration for the flappy game.
type FlappyConfig struct {
	Viewport  ViewportConfig  `yaml:"viewport"`
	Physics   FlappyPhysics   `yaml:"physics"`
	Player    FlappyPlayer    `yaml:"player"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	World     WorldConfig     `yaml:"world"`
	Loop      LoopConfig      `yaml:"loop"`
	Storage   StorageConfig   `yaml:"storage"`
}

// ViewportConfig is the logical world size. Every game dimension is a ratio
// of it; hosts scale the world onto their own cells or pixels.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FlappyPhysics defines the avatar integrator. Units are world units per tick.
type FlappyPhysics struct {
	Gravity         float64 `yaml:"gravity"`
	JumpVelocity    float64 `yaml:"jump_velocity"`
	MaxFallSpeed    float64 `yaml:"max_fall_speed"`
	RotationFactor  float64 `yaml:"rotation_factor"`
	MaxUpRotation   float64 `yaml:"max_up_rotation"`   // degrees, negative tilts the nose up
	MaxDownRotation float64 `yaml:"max_down_rotation"` // degrees
}

// FlappyPlayer defines avatar geometry and animation.
type FlappyPlayer struct {
	SizeRatio      float64 `yaml:"size_ratio"`       // of viewport width
	XRatio         float64 `yaml:"x_ratio"`          // of viewport width
	HitboxMargin   float64 `yaml:"hitbox_margin"`    // of avatar size, per side
	WingFrameTicks int     `yaml:"wing_frame_ticks"` // ticks per wing frame
}

// FlappyObstacles defines obstacle geometry and movement.
type FlappyObstacles struct {
	Speed        float64 `yaml:"speed"`         // world units per tick
	WidthRatio   float64 `yaml:"width_ratio"`   // of viewport width
	GapRatio     float64 `yaml:"gap_ratio"`     // of viewport height
	CapRatio     float64 `yaml:"cap_ratio"`     // of viewport height
	SpacingRatio float64 `yaml:"spacing_ratio"` // of viewport width
	MarginRatio  float64 `yaml:"margin_ratio"`  // of floor height, above and below the gap
}

// WorldConfig defines scene layout.
type WorldConfig struct {
	FloorRatio float64 `yaml:"floor_ratio"` // floor line as a ratio of viewport height
	AnimStep   float64 `yaml:"anim_step"`   // menu animation phase per tick
}

// LoopConfig defines the frame driver cadence.
type LoopConfig struct {
	TickRate int `yaml:"tick_rate"`
}

// StorageConfig defines where the best score is kept.
type StorageConfig struct {
	Path      string `yaml:"path"`      // empty means ~/.flappy/scores.db
	Namespace string `yaml:"namespace"` // key-value namespace for the best score
	Key       string `yaml:"key"`
}

// Minimum supported viewport. At this size the gap margins still fit above
// and below the gap.
const (
	MinViewportWidth  = 120
	MinViewportHeight = 200
)
