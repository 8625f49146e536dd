// Package desktop hosts the game in a window using Ebitengine.
package desktop

import (
	"errors"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/loop"
	"github.com/vovakirdan/tui-flappy/internal/play"
)

// inputState reports edge-triggered input for the current frame.
type inputState interface {
	KeyJustPressed(k ebiten.Key) bool
	MouseJustPressed(b ebiten.MouseButton) bool
	TouchJustPressed() bool
}

// ebitenInput reads inpututil state.
type ebitenInput struct {
	touches []ebiten.TouchID
}

func (in *ebitenInput) KeyJustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}

func (in *ebitenInput) MouseJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

func (in *ebitenInput) TouchJustPressed() bool {
	in.touches = inpututil.AppendJustPressedTouchIDs(in.touches[:0])
	return len(in.touches) > 0
}

var (
	primaryKeys = []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyEnter}
	quitKeys    = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}
)

// readAction maps this frame's input to an action. Quit wins over primary.
func readAction(in inputState) core.Action {
	for _, k := range quitKeys {
		if in.KeyJustPressed(k) {
			return core.ActionQuit
		}
	}
	for _, k := range primaryKeys {
		if in.KeyJustPressed(k) {
			return core.ActionPrimary
		}
	}
	if in.MouseJustPressed(ebiten.MouseButtonLeft) || in.TouchJustPressed() {
		return core.ActionPrimary
	}
	return core.ActionNone
}

// Game adapts a scene to ebiten.Game. Ebitengine calls Update and Draw on
// one goroutine, so the scene never sees concurrent calls.
type Game struct {
	scene  loop.Scene
	input  inputState
	canvas *Canvas
	width  int
	height int
}

var _ ebiten.Game = (*Game)(nil)

// NewGame creates a game drawing a w x h world.
func NewGame(scene loop.Scene, w, h float64) *Game {
	return &Game{
		scene:  scene,
		input:  &ebitenInput{},
		canvas: NewCanvas(w, h),
		width:  int(math.Ceil(w)),
		height: int(math.Ceil(h)),
	}
}

// Update applies input then advances the scene by one tick.
func (g *Game) Update() error {
	switch readAction(g.input) {
	case core.ActionQuit:
		return ebiten.Termination
	case core.ActionPrimary:
		g.scene.HandleAction(core.ActionPrimary)
	}
	g.scene.Update()
	return nil
}

// Draw renders the scene onto the world-sized screen image.
func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Target(screen)
	g.scene.Render(g.canvas)
}

// Layout fixes the logical screen to the world size; Ebitengine scales it
// to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// windowSize returns the requested window size, or the world size scaled to
// fit maxH pixels of height.
func windowSize(rt core.RuntimeConfig, worldW, worldH float64, maxH int) (int, int) {
	if rt.ScreenW > 0 && rt.ScreenH > 0 {
		return rt.ScreenW, rt.ScreenH
	}
	scale := 1.0
	if maxH > 0 && worldH > float64(maxH) {
		scale = float64(maxH) / worldH
	}
	return int(worldW * scale), int(worldH * scale)
}

// Run opens a window and plays until it is closed or a quit key is pressed.
func Run(cfg play.Config) error {
	scene, err := play.NewScene(cfg)
	if err != nil {
		return err
	}
	layout := scene.Layout()

	maxH := 0
	if m := ebiten.Monitor(); m != nil {
		_, monitorH := m.Size()
		maxH = monitorH * 9 / 10
	}
	w, h := windowSize(cfg.Runtime, layout.Width, layout.Height, maxH)

	ebiten.SetWindowTitle("Flappy")
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TickRate())

	err = ebiten.RunGame(NewGame(scene, layout.Width, layout.Height))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
