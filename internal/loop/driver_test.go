package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// recordingScene logs every call and flags overlapping calls.
type recordingScene struct {
	mu      sync.Mutex
	calls   []string
	actions []core.Action
	busy    atomic.Bool
	overlap atomic.Bool
}

func (s *recordingScene) enter(name string) {
	if !s.busy.CompareAndSwap(false, true) {
		s.overlap.Store(true)
	}
	s.mu.Lock()
	s.calls = append(s.calls, name)
	s.mu.Unlock()
}

func (s *recordingScene) leave() {
	s.busy.Store(false)
}

func (s *recordingScene) HandleAction(a core.Action) {
	s.enter("action")
	defer s.leave()
	s.mu.Lock()
	s.actions = append(s.actions, a)
	s.mu.Unlock()
}

func (s *recordingScene) Update() {
	s.enter("update")
	defer s.leave()
}

func (s *recordingScene) Render(core.Surface) {
	s.enter("render")
	defer s.leave()
}

func (s *recordingScene) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// stubProvider hands out one screen, failing while fail is set.
type stubProvider struct {
	screen   *core.Screen
	fail     bool
	acquired int
	presents int
}

func (p *stubProvider) Acquire() (core.Surface, error) {
	p.acquired++
	if p.fail {
		return nil, errors.New("surface lost")
	}
	return p.screen, nil
}

func (p *stubProvider) Present(core.Surface) {
	p.presents++
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStepUpdatesBeforeRender(t *testing.T) {
	scene := &recordingScene{}
	surfaces := &stubProvider{screen: core.NewScreen(4, 4)}
	d := New(scene, surfaces, 60, nil)

	d.Step()
	d.Step()

	calls := scene.snapshot()
	expected := []string{"update", "render", "update", "render"}
	if len(calls) != len(expected) {
		t.Fatalf("calls = %v, expected %v", calls, expected)
	}
	for i := range expected {
		if calls[i] != expected[i] {
			t.Errorf("call %d = %q, expected %q", i, calls[i], expected[i])
		}
	}
	if surfaces.presents != 2 {
		t.Errorf("Present called %d times, expected 2", surfaces.presents)
	}
	if d.Ticks() != 2 {
		t.Errorf("Ticks() = %d, expected 2", d.Ticks())
	}
}

func TestStepSkipsRenderWhenSurfaceUnavailable(t *testing.T) {
	scene := &recordingScene{}
	surfaces := &stubProvider{screen: core.NewScreen(4, 4), fail: true}
	d := New(scene, surfaces, 60, nil)

	d.Step()
	if calls := scene.snapshot(); len(calls) != 1 || calls[0] != "update" {
		t.Errorf("failed acquire should skip render, calls = %v", calls)
	}
	if surfaces.presents != 0 {
		t.Error("nothing should be presented for a skipped frame")
	}

	// Next tick retries
	surfaces.fail = false
	d.Step()
	if calls := scene.snapshot(); len(calls) != 3 || calls[2] != "render" {
		t.Errorf("render should resume once the surface is back, calls = %v", calls)
	}
	if d.Ticks() != 2 {
		t.Errorf("skipped frames still count as ticks, got %d", d.Ticks())
	}
}

func TestHeadlessDriver(t *testing.T) {
	scene := &recordingScene{}
	d := New(scene, nil, 60, nil)

	d.Step()

	if calls := scene.snapshot(); len(calls) != 1 || calls[0] != "update" {
		t.Errorf("headless driver should only update, calls = %v", calls)
	}
}

func TestPressAppliesImmediately(t *testing.T) {
	scene := &recordingScene{}
	d := New(scene, nil, 60, nil)

	d.Press(core.ActionPrimary)
	d.Press(core.ActionPrimary)

	if len(scene.actions) != 2 || scene.actions[0] != core.ActionPrimary {
		t.Errorf("actions = %v, expected two primary presses", scene.actions)
	}
}

func TestStartStopJoins(t *testing.T) {
	scene := &recordingScene{}
	d := New(scene, &stubProvider{screen: core.NewScreen(4, 4)}, 500, nil)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	waitFor(t, func() bool { return d.Ticks() >= 3 })

	d.Stop()
	stopped := d.Ticks()
	time.Sleep(20 * time.Millisecond)
	if d.Ticks() != stopped {
		t.Errorf("driver ticked after Stop returned: %d -> %d", stopped, d.Ticks())
	}

	// Idempotent
	d.Stop()
}

func TestStopBeforeStart(t *testing.T) {
	d := New(&recordingScene{}, nil, 60, nil)

	done := make(chan struct{})
	go func() {
		d.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop should not block when the loop never ran")
	}
}

func TestRunReturnsOnCancel(t *testing.T) {
	d := New(&recordingScene{}, nil, 500, nil)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- d.Run(ctx) }()

	waitFor(t, func() bool { return d.Ticks() >= 1 })
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v, expected context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run should return after cancel")
	}

	if err := d.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() = %v, expected ErrAlreadyRunning", err)
	}
}

func TestInputNeverInterleavesWithTick(t *testing.T) {
	scene := &recordingScene{}
	d := New(scene, &stubProvider{screen: core.NewScreen(4, 4)}, 1000, nil)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for i := 0; i < 200; i++ {
		d.Press(core.ActionPrimary)
	}
	waitFor(t, func() bool { return d.Ticks() >= 5 })
	d.Stop()

	if scene.overlap.Load() {
		t.Error("scene methods ran concurrently")
	}
}

func TestNewDefaultsTickRate(t *testing.T) {
	d := New(&recordingScene{}, nil, 0, nil)
	if d.TickRate() != 60 {
		t.Errorf("TickRate() = %d, expected 60", d.TickRate())
	}
}
