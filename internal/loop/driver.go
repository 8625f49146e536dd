// Package loop runs a scene at a fixed tick rate on its own goroutine.
package loop

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ErrAlreadyRunning is returned by Run when the driver loop is already active.
var ErrAlreadyRunning = errors.New("loop: driver already running")

// Scene is the simulation driven by a Driver.
type Scene interface {
	HandleAction(a core.Action)
	Update()
	Render(dst core.Surface)
}

// SurfaceProvider hands out a drawing surface for one frame. Acquire may
// fail, in which case the frame is skipped and the next tick tries again.
// Present is called once the scene has drawn onto the surface.
type SurfaceProvider interface {
	Acquire() (core.Surface, error)
	Present(dst core.Surface)
}

// Driver steps a scene at a fixed rate. Update and Render run as one
// critical section, and input is applied under the same lock, so the scene
// never sees concurrent calls.
//
// Overrunning ticks are dropped rather than caught up.
type Driver struct {
	mu       sync.Mutex
	scene    Scene
	surfaces SurfaceProvider
	tickRate int
	tick     uint64
	logger   *log.Logger

	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
	exited   chan struct{}
}

// New creates a driver. surfaces may be nil for a headless driver.
func New(scene Scene, surfaces SurfaceProvider, tickRate int, logger *log.Logger) *Driver {
	if tickRate <= 0 {
		tickRate = 60
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Driver{
		scene:    scene,
		surfaces: surfaces,
		tickRate: tickRate,
		logger:   logger,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// TickRate returns the ticks per second.
func (d *Driver) TickRate() int {
	return d.tickRate
}

// Run drives the scene until Stop is called or ctx is cancelled. It blocks.
func (d *Driver) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	return d.loop(ctx)
}

// Start runs the driver on a new goroutine. A later Stop waits for that
// goroutine to exit.
func (d *Driver) Start(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	go func() {
		if err := d.loop(ctx); err != nil && !errors.Is(err, context.Canceled) {
			d.logger.Error("driver exited", "err", err)
		}
	}()
	return nil
}

func (d *Driver) loop(ctx context.Context) error {
	defer close(d.exited)

	tickDuration := time.Second / time.Duration(d.tickRate)
	ticker := time.NewTicker(tickDuration)
	defer ticker.Stop()

	d.logger.Debug("driver started", "tick_rate", d.tickRate)
	for {
		select {
		case <-ticker.C:
			d.Step()

		case <-d.done:
			d.logger.Debug("driver stopped", "ticks", d.Ticks())
			return nil

		case <-ctx.Done():
			d.logger.Debug("driver cancelled", "ticks", d.Ticks())
			return ctx.Err()
		}
	}
}

// Stop signals the loop to exit and waits for it. It is safe to call more
// than once, and before Run. It must not be called from scene or surface
// callbacks.
func (d *Driver) Stop() {
	d.doneOnce.Do(func() {
		close(d.done)
	})
	if d.running.Load() {
		<-d.exited
	}
}

// Step runs one tick: update, then render onto a freshly acquired surface.
func (d *Driver) Step() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.scene.Update()
	d.tick++

	if d.surfaces == nil {
		return
	}
	dst, err := d.surfaces.Acquire()
	if err != nil {
		d.logger.Debug("skipping render", "tick", d.tick, "err", err)
		return
	}
	d.scene.Render(dst)
	d.surfaces.Present(dst)
}

// Press applies an input action immediately, between ticks.
func (d *Driver) Press(a core.Action) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scene.HandleAction(a)
}

// Do runs fn while holding the scene lock, for hosts that need to read
// scene state between ticks.
func (d *Driver) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
}

// Ticks returns the number of completed ticks.
func (d *Driver) Ticks() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tick
}
