package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestFramesAcquireNeedsSize(t *testing.T) {
	f := NewFrames(480, 800, nil)

	if _, err := f.Acquire(); !errors.Is(err, ErrNoTerminalSize) {
		t.Errorf("Acquire before Resize = %v, expected ErrNoTerminalSize", err)
	}

	f.Resize(40, 0)
	if _, err := f.Acquire(); !errors.Is(err, ErrNoTerminalSize) {
		t.Errorf("Acquire with zero rows = %v, expected ErrNoTerminalSize", err)
	}
}

func TestFramesAcquireFollowsResize(t *testing.T) {
	f := NewFrames(480, 800, nil)

	f.Resize(30, 20)
	dst, err := f.Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	scr := dst.(*core.Screen)
	if scr.Width() != 30 || scr.Height() != 20 {
		t.Errorf("screen = %dx%d, expected 30x20", scr.Width(), scr.Height())
	}
	if b := scr.Bounds(); b.W != 480 || b.H != 800 {
		t.Errorf("world bounds = %+v, expected 480x800", b)
	}

	// Stale content is cleared on the next acquire
	scr.PutText(0, 0, "x", core.ColorWhite)
	f.Resize(10, 8)
	dst, _ = f.Acquire()
	scr = dst.(*core.Screen)
	if scr.Width() != 10 || scr.Height() != 8 {
		t.Errorf("screen after resize = %dx%d, expected 10x8", scr.Width(), scr.Height())
	}
	if scr.Get(0, 0) != ' ' {
		t.Error("acquired screen should be cleared")
	}
}

func TestFramesPresentNotifies(t *testing.T) {
	f := NewFrames(480, 800, nil)
	f.Resize(12, 4)
	dst, _ := f.Acquire()
	dst.(*core.Screen).PutText(0, 0, "hi", core.ColorWhite)

	f.Present(dst)
	// A second frame before the first is consumed must not block
	f.Present(dst)

	if got := f.Plain(); got != dst.(*core.Screen).String() {
		t.Errorf("Plain() = %q", got)
	}
	if f.Frame() == "" {
		t.Error("Frame() should hold the rendered frame")
	}

	msg := f.WaitForFrame()()
	if _, ok := msg.(frameMsg); !ok {
		t.Errorf("WaitForFrame() = %T, expected frameMsg", msg)
	}
}

func TestFramesCloseReleasesWait(t *testing.T) {
	f := NewFrames(480, 800, nil)

	got := make(chan any, 1)
	go func() { got <- f.WaitForFrame()() }()

	f.Close()
	f.Close()

	select {
	case msg := <-got:
		if msg != nil {
			t.Errorf("WaitForFrame after Close = %v, expected nil", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("Close should release a pending wait")
	}
}
