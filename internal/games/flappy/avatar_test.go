package flappy

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func newTestAvatar(t *testing.T) (*Avatar, config.FlappyConfig) {
	t.Helper()
	cfg := config.DefaultFlappyConfig()
	l, err := NewLayout(cfg)
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}
	return NewAvatar(l, cfg.Physics, cfg.Player), cfg
}

func TestAvatarSpawn(t *testing.T) {
	a, _ := newTestAvatar(t)

	if a.X != 120 || a.Y != 400 || a.Size != 48 {
		t.Errorf("spawn = (%v, %v) size %v, expected (120, 400) size 48", a.X, a.Y, a.Size)
	}
	if a.Velocity() != 0 || a.Rotation() != 0 || a.WingPhase() != 0 {
		t.Error("avatar should spawn at rest")
	}
}

func TestAvatarGravityFromRest(t *testing.T) {
	a, cfg := newTestAvatar(t)
	y0 := a.Y

	a.Update()

	if a.Velocity() != cfg.Physics.Gravity {
		t.Errorf("velocity = %v, expected %v", a.Velocity(), cfg.Physics.Gravity)
	}
	if a.Y != y0+cfg.Physics.Gravity {
		t.Errorf("y = %v, expected %v", a.Y, y0+cfg.Physics.Gravity)
	}
}

func TestAvatarFallSpeedClamped(t *testing.T) {
	a, _ := newTestAvatar(t)
	a.velocity = 20
	y0 := a.Y

	a.Update()

	if a.Velocity() != 15 {
		t.Errorf("velocity = %v, expected clamp to 15", a.Velocity())
	}
	if a.Y != y0+15 {
		t.Errorf("y should advance by the clamped velocity, got %v", a.Y-y0)
	}
}

func TestAvatarJumpOverwrites(t *testing.T) {
	for _, v := range []float64{-30, -12, 0, 3.3, 15} {
		a, cfg := newTestAvatar(t)
		a.velocity = v
		a.Jump()
		if a.Velocity() != cfg.Physics.JumpVelocity {
			t.Errorf("Jump() from %v: velocity = %v, expected %v", v, a.Velocity(), cfg.Physics.JumpVelocity)
		}
		a.Jump()
		if a.Velocity() != cfg.Physics.JumpVelocity {
			t.Errorf("second Jump() should not stack, got %v", a.Velocity())
		}
	}
}

func TestAvatarInvariantsOverManyTicks(t *testing.T) {
	a, cfg := newTestAvatar(t)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		if rng.Intn(12) == 0 {
			a.Jump()
		}
		a.Update()

		if a.Velocity() > cfg.Physics.MaxFallSpeed {
			t.Fatalf("tick %d: velocity %v exceeds max fall speed", i, a.Velocity())
		}
		if r := a.Rotation(); r < cfg.Physics.MaxUpRotation || r > cfg.Physics.MaxDownRotation {
			t.Fatalf("tick %d: rotation %v outside [%v, %v]", i, r, cfg.Physics.MaxUpRotation, cfg.Physics.MaxDownRotation)
		}
		if p := a.WingPhase(); p < 0 || p > 2 {
			t.Fatalf("tick %d: wing phase %d out of range", i, p)
		}
	}
}

func TestAvatarRotationFollowsVelocity(t *testing.T) {
	a, _ := newTestAvatar(t)

	a.Jump()
	a.Update() // velocity -11.2, rotation clamps at -25
	if a.Rotation() != -25 {
		t.Errorf("climbing rotation = %v, expected -25", a.Rotation())
	}

	a.velocity = 5
	a.Update() // velocity 5.8
	if math.Abs(a.Rotation()-17.4) > 1e-9 {
		t.Errorf("rotation = %v, expected 17.4", a.Rotation())
	}
}

func TestAvatarWingCycle(t *testing.T) {
	a, _ := newTestAvatar(t)

	for i := 0; i < 5; i++ {
		a.Update()
	}
	if a.WingPhase() != 0 {
		t.Errorf("wing should hold for 5 ticks, phase = %d", a.WingPhase())
	}
	a.Update()
	if a.WingPhase() != 1 {
		t.Errorf("wing should advance on the sixth tick, phase = %d", a.WingPhase())
	}
	for i := 0; i < 12; i++ {
		a.Update()
	}
	if a.WingPhase() != 0 {
		t.Errorf("wing should wrap after three frames, phase = %d", a.WingPhase())
	}
}

func TestAvatarReset(t *testing.T) {
	a, _ := newTestAvatar(t)
	for i := 0; i < 30; i++ {
		a.Update()
	}
	a.Jump()

	a.Reset()

	if a.X != 120 || a.Y != 400 {
		t.Errorf("Reset position = (%v, %v), expected (120, 400)", a.X, a.Y)
	}
	if a.Velocity() != 0 || a.Rotation() != 0 || a.WingPhase() != 0 || a.wingTimer != 0 {
		t.Error("Reset should zero velocity, rotation and wing state")
	}
}

func TestAvatarHitbox(t *testing.T) {
	a, _ := newTestAvatar(t)
	hb := a.Hitbox()

	// 48 wide with a 7.2 inset on each side
	const eps = 1e-9
	if math.Abs(hb.W-33.6) > eps || math.Abs(hb.H-33.6) > eps {
		t.Errorf("hitbox size = %vx%v, expected 33.6x33.6", hb.W, hb.H)
	}
	if c := hb.Center(); math.Abs(c.X-a.X) > eps || math.Abs(c.Y-a.Y) > eps {
		t.Errorf("hitbox should be centred on the avatar, got %+v", c)
	}
}

func TestAvatarIsOutOfBounds(t *testing.T) {
	a, _ := newTestAvatar(t)
	floorY := 680.0

	tests := []struct {
		name     string
		y        float64
		expected bool
	}{
		{"centre of sky", 400, false},
		{"hitbox just inside top", 17, false},
		{"hitbox above top", 10, true},
		{"just above floor", 660, false},
		{"hitbox below floor", 670, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a.Y = tc.y
			if got := a.IsOutOfBounds(floorY); got != tc.expected {
				t.Errorf("IsOutOfBounds() at y=%v = %v, expected %v", tc.y, got, tc.expected)
			}
		})
	}
}
