package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// RandomSource supplies uniform values in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// Obstacle is a paired top/bottom barrier with a passable gap.
type Obstacle struct {
	X         float64 // Left edge, decreases every tick
	GapTop    float64 // Y where the gap starts
	GapHeight float64
	Width     float64
	CapHeight float64
	Passed    bool // Whether the avatar has crossed the gap centre

	floorY float64
	speed  float64
}

// NewObstacle creates an obstacle at the right edge of the world with its
// gap placed uniformly between the floor margins.
func NewObstacle(l Layout, speed float64, rng RandomSource) Obstacle {
	lo := l.GapMargin
	hi := l.FloorY - l.GapHeight - l.GapMargin
	if hi < lo {
		hi = lo
	}
	return Obstacle{
		X:         l.Width,
		GapTop:    lo + rng.Float64()*(hi-lo),
		GapHeight: l.GapHeight,
		Width:     l.ObstacleWidth,
		CapHeight: l.CapHeight,
		floorY:    l.FloorY,
		speed:     speed,
	}
}

// Update moves the obstacle left by its speed.
func (o *Obstacle) Update() {
	o.X -= o.speed
}

// IsOffScreen reports whether the trailing edge has left the world.
func (o Obstacle) IsOffScreen() bool {
	return o.X+o.Width < 0
}

// TopHitbox spans from the top of the world to the gap.
func (o Obstacle) TopHitbox() core.Rect {
	return core.RectFromEdges(o.X, 0, o.X+o.Width, o.GapTop)
}

// BottomHitbox spans from the end of the gap to the floor.
func (o Obstacle) BottomHitbox() core.Rect {
	return core.RectFromEdges(o.X, o.GapTop+o.GapHeight, o.X+o.Width, o.floorY)
}

// GapBottom returns the Y where the gap ends.
func (o Obstacle) GapBottom() float64 {
	return o.GapTop + o.GapHeight
}

// GapCenterX returns the horizontal centre of the gap.
func (o Obstacle) GapCenterX() float64 {
	return o.X + o.Width/2
}

// ObstacleStream handles spawning, movement and removal of obstacles.
// Obstacles are kept in spawn order, which is also right-to-left screen order.
type ObstacleStream struct {
	obstacles []Obstacle
	rng       RandomSource
	layout    Layout
	speed     float64
	spacing   float64
	distance  float64 // Travelled since the last spawn
}

// NewObstacleStream creates an empty stream that spawns on its first Update.
func NewObstacleStream(l Layout, speed float64, rng RandomSource) *ObstacleStream {
	s := &ObstacleStream{
		obstacles: make([]Obstacle, 0, 8),
		rng:       rng,
		layout:    l,
		speed:     speed,
		spacing:   l.Spacing,
	}
	s.Reset()
	return s
}

// Reset clears all obstacles. The next Update spawns immediately.
func (s *ObstacleStream) Reset() {
	s.obstacles = s.obstacles[:0]
	s.distance = s.spacing
}

// Update moves obstacles left, retires off-screen ones and spawns at most
// one new obstacle.
func (s *ObstacleStream) Update() {
	live := s.obstacles[:0]
	for _, o := range s.obstacles {
		o.Update()
		if !o.IsOffScreen() {
			live = append(live, o)
		}
	}
	s.obstacles = live

	s.distance += s.speed
	if s.distance >= s.spacing {
		s.obstacles = append(s.obstacles, NewObstacle(s.layout, s.speed, s.rng))
		s.distance = 0
	}
}

// CheckCollision tests the hitbox against every obstacle, stopping at the
// first hit.
func (s *ObstacleStream) CheckCollision(hitbox core.Rect) bool {
	for _, o := range s.obstacles {
		if hitbox.Intersects(o.TopHitbox()) || hitbox.Intersects(o.BottomHitbox()) {
			return true
		}
	}
	return false
}

// CheckScore marks every unpassed obstacle whose gap centre is left of
// avatarX and returns how many were marked.
func (s *ObstacleStream) CheckScore(avatarX float64) int {
	passed := 0
	for i := range s.obstacles {
		if !s.obstacles[i].Passed && s.obstacles[i].GapCenterX() < avatarX {
			s.obstacles[i].Passed = true
			passed++
		}
	}
	return passed
}

// Obstacles returns the live obstacles. The slice must not be modified.
func (s *ObstacleStream) Obstacles() []Obstacle {
	return s.obstacles
}

// Len returns the number of live obstacles.
func (s *ObstacleStream) Len() int {
	return len(s.obstacles)
}
