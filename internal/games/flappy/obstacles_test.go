package flappy

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// fixedRandom always returns the same value.
type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

func defaultLayout(t *testing.T) Layout {
	t.Helper()
	l, err := NewLayout(config.DefaultFlappyConfig())
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}
	return l
}

func TestNewObstacle(t *testing.T) {
	l := defaultLayout(t)

	low := NewObstacle(l, 5, fixedRandom(0))
	if low.X != l.Width {
		t.Errorf("obstacle should spawn at the right edge, X = %v", low.X)
	}
	if low.GapTop != l.GapMargin {
		t.Errorf("GapTop at r=0 = %v, expected %v", low.GapTop, l.GapMargin)
	}
	if low.GapHeight != l.GapHeight || low.Width != l.ObstacleWidth || low.CapHeight != l.CapHeight {
		t.Errorf("unexpected dimensions: %+v", low)
	}
	if low.Passed {
		t.Error("new obstacle should not be passed")
	}

	high := NewObstacle(l, 5, fixedRandom(1))
	if want := l.FloorY - l.GapHeight - l.GapMargin; math.Abs(high.GapTop-want) > 1e-9 {
		t.Errorf("GapTop at r=1 = %v, expected %v", high.GapTop, want)
	}
}

func TestObstacleGapWithinMargins(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	sizes := []config.ViewportConfig{
		{Width: config.MinViewportWidth, Height: config.MinViewportHeight},
		{Width: 240, Height: 320},
		{Width: 480, Height: 800},
		{Width: 1080, Height: 1920},
		{Width: 800, Height: 480},
	}

	for _, vp := range sizes {
		cfg := config.DefaultFlappyConfig()
		cfg.Viewport = vp
		l, err := NewLayout(cfg)
		if err != nil {
			t.Fatalf("NewLayout(%+v) failed: %v", vp, err)
		}
		lo := l.FloorY * 0.15
		hi := l.FloorY - l.GapHeight - l.FloorY*0.15

		for i := 0; i < 500; i++ {
			o := NewObstacle(l, 5, rng)
			if o.GapTop < lo-1e-9 || o.GapTop > hi+1e-9 {
				t.Fatalf("viewport %+v: GapTop %v outside [%v, %v]", vp, o.GapTop, lo, hi)
			}
			if o.GapHeight != vp.Height*0.25 {
				t.Fatalf("viewport %+v: gap height %v changed", vp, o.GapHeight)
			}
		}
	}
}

func TestObstacleMovement(t *testing.T) {
	l := defaultLayout(t)
	o := NewObstacle(l, 5, fixedRandom(0.5))

	o.Update()
	if o.X != l.Width-5 {
		t.Errorf("X after Update = %v, expected %v", o.X, l.Width-5)
	}

	o.X = -o.Width
	if o.IsOffScreen() {
		t.Error("trailing edge at the origin is still on screen")
	}
	o.Update()
	if !o.IsOffScreen() {
		t.Error("trailing edge left of the origin should be off screen")
	}
}

func TestObstacleHitboxes(t *testing.T) {
	o := Obstacle{X: 100, GapTop: 200, GapHeight: 150, Width: 60, floorY: 680}

	if top := o.TopHitbox(); top != core.RectFromEdges(100, 0, 160, 200) {
		t.Errorf("TopHitbox() = %+v", top)
	}
	if bottom := o.BottomHitbox(); bottom != core.RectFromEdges(100, 350, 160, 680) {
		t.Errorf("BottomHitbox() = %+v", bottom)
	}
	if c := o.GapCenterX(); c != 130 {
		t.Errorf("GapCenterX() = %v, expected 130", c)
	}
}

func TestStreamFirstSpawn(t *testing.T) {
	l := defaultLayout(t)
	s := NewObstacleStream(l, 5, fixedRandom(0.5))

	if s.Len() != 0 {
		t.Fatalf("fresh stream should be empty, got %d", s.Len())
	}

	s.Update()
	if s.Len() != 1 {
		t.Fatalf("first Update should spawn exactly one obstacle, got %d", s.Len())
	}

	// Spacing is 216 at speed 5: the next spawn needs 44 more ticks
	for i := 0; i < 43; i++ {
		s.Update()
	}
	if s.Len() != 1 {
		t.Errorf("no spawn expected before the spacing threshold, got %d", s.Len())
	}
	s.Update()
	if s.Len() != 2 {
		t.Errorf("second obstacle expected once the threshold is reached, got %d", s.Len())
	}

	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Reset should clear obstacles, got %d", s.Len())
	}
	s.Update()
	if s.Len() != 1 {
		t.Errorf("Update after Reset should spawn immediately, got %d", s.Len())
	}
}

func TestStreamBoundedAndOrdered(t *testing.T) {
	l := defaultLayout(t)
	s := NewObstacleStream(l, 5, rand.New(rand.NewSource(1)))
	limit := int(math.Ceil(l.Width/l.Spacing)) + 1

	for i := 0; i < 3000; i++ {
		s.Update()
		if s.Len() > limit {
			t.Fatalf("tick %d: %d live obstacles, limit %d", i, s.Len(), limit)
		}
		obs := s.Obstacles()
		for j := 1; j < len(obs); j++ {
			if obs[j-1].X >= obs[j].X {
				t.Fatalf("tick %d: obstacles out of spawn order", i)
			}
		}
		for _, o := range obs {
			if o.IsOffScreen() {
				t.Fatalf("tick %d: off-screen obstacle kept", i)
			}
		}
	}
}

func TestStreamCheckCollision(t *testing.T) {
	l := defaultLayout(t)
	s := NewObstacleStream(l, 5, fixedRandom(0.5))
	s.obstacles = append(s.obstacles, Obstacle{X: 100, GapTop: 200, GapHeight: 200, Width: 72, floorY: l.FloorY})

	tests := []struct {
		name     string
		hitbox   core.Rect
		expected bool
	}{
		{"inside the gap", core.NewRect(110, 250, 30, 30), false},
		{"overlapping the top barrier", core.NewRect(110, 190, 30, 30), true},
		{"overlapping the bottom barrier", core.NewRect(110, 390, 30, 30), true},
		{"touching the top barrier edge", core.NewRect(110, 200, 30, 30), false},
		{"left of the obstacle", core.NewRect(40, 100, 30, 30), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.CheckCollision(tc.hitbox); got != tc.expected {
				t.Errorf("CheckCollision() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestStreamCheckScoreCountsOnce(t *testing.T) {
	l := defaultLayout(t)
	s := NewObstacleStream(l, 5, fixedRandom(0.5))
	s.obstacles = append(s.obstacles,
		Obstacle{X: 0, Width: 10},
		Obstacle{X: 5, Width: 10},
		Obstacle{X: 200, Width: 10},
	)

	if n := s.CheckScore(100); n != 2 {
		t.Errorf("first CheckScore() = %d, expected 2", n)
	}
	if n := s.CheckScore(100); n != 0 {
		t.Errorf("second CheckScore() = %d, expected 0", n)
	}
}

func TestStreamScoreOverRun(t *testing.T) {
	l := defaultLayout(t)
	s := NewObstacleStream(l, 5, fixedRandom(0.5))
	avatarX := l.AvatarX

	// Obstacles spawn on ticks 1, 45, 89, ... and their gap centre crosses
	// x=120 eighty ticks later, so 21 obstacles cross within 1000 ticks.
	total := 0
	for i := 0; i < 1000; i++ {
		s.Update()
		total += s.CheckScore(avatarX)
	}
	if total != 21 {
		t.Errorf("scored %d obstacles over the run, expected 21", total)
	}
}

func TestStreamBoundHoldsForValidConfigs(t *testing.T) {
	tests := []struct {
		name    string
		width   float64
		spacing float64
		speed   float64
	}{
		{"defaults", 0.15, 0.45, 5},
		{"spacing just above width", 0.3, 0.31, 5},
		{"viewport a multiple of spacing", 0.24, 0.25, 5},
		{"spawn every tick", 0.15, 0.2, 96},
		{"speed not dividing spacing", 0.15, 0.25, 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultFlappyConfig()
			cfg.Obstacles.WidthRatio = tc.width
			cfg.Obstacles.SpacingRatio = tc.spacing
			cfg.Obstacles.Speed = tc.speed
			if err := cfg.Validate(); err != nil {
				t.Fatalf("config should be valid: %v", err)
			}
			l, err := NewLayout(cfg)
			if err != nil {
				t.Fatalf("NewLayout failed: %v", err)
			}

			s := NewObstacleStream(l, tc.speed, rand.New(rand.NewSource(1)))
			limit := int(math.Ceil(l.Width/l.Spacing)) + 1
			maxLive := 0
			for i := 0; i < 2000; i++ {
				s.Update()
				maxLive = max(maxLive, s.Len())
			}
			if maxLive > limit {
				t.Errorf("%d live obstacles, limit %d", maxLive, limit)
			}
		})
	}
}
