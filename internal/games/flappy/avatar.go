package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// wingFrames is the length of the wing flap cycle.
const wingFrames = 3

// Avatar is the player-controlled falling entity. X is fixed for the
// session; everything else changes every tick.
type Avatar struct {
	X    float64 // Horizontal centre, fixed lane
	Y    float64 // Vertical centre
	Size float64 // Side of the visual square

	velocity  float64
	rotation  float64 // Degrees, positive tilts the nose down
	wingPhase int
	wingTimer int

	spawnY         float64
	hitboxMargin   float64
	wingFrameTicks int
	phys           config.FlappyPhysics
}

// NewAvatar creates an avatar positioned for the given layout.
func NewAvatar(l Layout, phys config.FlappyPhysics, player config.FlappyPlayer) *Avatar {
	a := &Avatar{
		X:              l.AvatarX,
		Size:           l.AvatarSize,
		spawnY:         l.Height / 2,
		hitboxMargin:   l.AvatarSize * player.HitboxMargin,
		wingFrameTicks: player.WingFrameTicks,
		phys:           phys,
	}
	a.Reset()
	return a
}

// Update applies gravity, integrates position, derives rotation from
// velocity and advances the wing animation.
func (a *Avatar) Update() {
	a.velocity += a.phys.Gravity
	if a.velocity > a.phys.MaxFallSpeed {
		a.velocity = a.phys.MaxFallSpeed
	}
	a.Y += a.velocity

	a.rotation = core.ClampF(a.velocity*a.phys.RotationFactor, a.phys.MaxUpRotation, a.phys.MaxDownRotation)

	a.wingTimer++
	if a.wingTimer > a.wingFrameTicks {
		a.wingTimer = 0
		a.wingPhase = (a.wingPhase + 1) % wingFrames
	}
}

// Jump overwrites the velocity with the jump impulse.
func (a *Avatar) Jump() {
	a.velocity = a.phys.JumpVelocity
}

// Reset restores the spawn pose. X is left alone.
func (a *Avatar) Reset() {
	a.Y = a.spawnY
	a.velocity = 0
	a.rotation = 0
	a.wingPhase = 0
	a.wingTimer = 0
}

// Hitbox returns the collision square, inset from the visual bounds on
// every side.
func (a *Avatar) Hitbox() core.Rect {
	half := a.Size / 2
	return core.RectFromEdges(a.X-half, a.Y-half, a.X+half, a.Y+half).Inset(a.hitboxMargin)
}

// IsOutOfBounds reports whether the hitbox crosses the top of the world or
// the floor line.
func (a *Avatar) IsOutOfBounds(floorY float64) bool {
	hb := a.Hitbox()
	return hb.Y < 0 || hb.Bottom() > floorY
}

// Velocity returns the vertical velocity in world units per tick.
func (a *Avatar) Velocity() float64 { return a.velocity }

// Rotation returns the current tilt in degrees.
func (a *Avatar) Rotation() float64 { return a.rotation }

// WingPhase returns the wing frame, 0..2.
func (a *Avatar) WingPhase() int { return a.wingPhase }
