package tui

import (
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/loop"
)

// ErrNoTerminalSize is returned by Acquire until the terminal size is known.
var ErrNoTerminalSize = errors.New("tui: terminal size unknown")

var _ loop.SurfaceProvider = (*Frames)(nil)

// frameMsg announces that a new frame is ready.
type frameMsg struct{}

// Frames is the terminal surface provider. The driver goroutine draws onto
// its screen and renders it to a string; the Bubble Tea program picks the
// string up through WaitForFrame.
type Frames struct {
	mu    sync.Mutex
	cols  int
	rows  int
	frame string
	plain string

	// Driver goroutine only
	screen   *core.Screen
	renderer *Renderer
	worldW   float64
	worldH   float64

	ready     chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
}

// NewFrames creates a provider that stretches a worldW x worldH world over
// the terminal. lg may be nil for the local terminal.
func NewFrames(worldW, worldH float64, lg *lipgloss.Renderer) *Frames {
	return &Frames{
		screen:   core.NewScreen(0, 0),
		renderer: NewRenderer(lg),
		worldW:   worldW,
		worldH:   worldH,
		ready:    make(chan struct{}, 1),
		closed:   make(chan struct{}),
	}
}

// Resize sets the number of cells available for the game.
func (f *Frames) Resize(cols, rows int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cols = max(cols, 0)
	f.rows = max(rows, 0)
}

// Size returns the cell grid size set by Resize.
func (f *Frames) Size() (cols, rows int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cols, f.rows
}

// Acquire returns a cleared screen matching the latest terminal size.
func (f *Frames) Acquire() (core.Surface, error) {
	cols, rows := f.Size()
	if cols == 0 || rows == 0 {
		return nil, ErrNoTerminalSize
	}
	f.screen.Resize(cols, rows)
	f.screen.SetWorld(f.worldW, f.worldH)
	f.screen.Clear()
	return f.screen, nil
}

// Present renders the finished screen and wakes the program. A frame that
// has not been picked up yet is replaced.
func (f *Frames) Present(dst core.Surface) {
	scr, ok := dst.(*core.Screen)
	if !ok {
		return
	}
	frame := f.renderer.RenderScreen(scr)
	plain := scr.String()

	f.mu.Lock()
	f.frame = frame
	f.plain = plain
	f.mu.Unlock()

	select {
	case f.ready <- struct{}{}:
	default:
	}
}

// Frame returns the latest styled frame.
func (f *Frames) Frame() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frame
}

// Plain returns the latest frame without styling.
func (f *Frames) Plain() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plain
}

// Close releases any pending WaitForFrame command.
func (f *Frames) Close() {
	f.closeOnce.Do(func() {
		close(f.closed)
	})
}

// WaitForFrame returns a command that blocks until the next frame is ready.
// After Close it returns nil.
func (f *Frames) WaitForFrame() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-f.ready:
			return frameMsg{}
		case <-f.closed:
			return nil
		}
	}
}
