package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Scene palette
var (
	skyTop    = core.RGB(78, 192, 202)
	skyBottom = core.RGB(135, 206, 235)

	pipeDark      = core.RGB(56, 142, 60)
	pipeLight     = core.RGB(76, 175, 80)
	pipeDeep      = core.RGB(46, 125, 50)
	capDark       = core.RGB(67, 160, 71)
	capLight      = core.RGB(102, 187, 106)
	pipeShadow    = core.RGB(27, 94, 32)
	pipeHighlight = pipeLight

	avatarBody = core.RGB(255, 215, 0)
	avatarWing = core.RGB(230, 190, 0)
	avatarBeak = core.RGB(255, 102, 0)

	groundTop    = core.RGB(222, 184, 135)
	groundBottom = core.RGB(210, 180, 140)
	groundLine   = core.RGB(139, 90, 43)
	groundStripe = core.RGB(160, 120, 80)

	overlayDim = core.ARGB(120, 0, 0, 0)
	panelFill  = core.ARGB(200, 50, 50, 50)
	textShadow = core.ARGB(150, 0, 0, 0)
)

// Render draws the scene onto dst. It does not change simulation state.
func (s *Scene) Render(dst core.Surface) {
	s.drawSky(dst)
	for _, o := range s.stream.Obstacles() {
		drawObstacle(dst, o)
	}
	s.drawAvatar(dst)
	s.drawGround(dst)
	stateHandlers[s.state].hud(s, dst)
}

func (s *Scene) drawSky(dst core.Surface) {
	l := s.layout
	dst.FillRect(core.NewRect(0, 0, l.Width, l.Height), core.Paint{
		Gradient: core.VerticalGradient(0, l.Height, skyTop, skyBottom),
	})
}

func drawObstacle(dst core.Surface, o Obstacle) {
	body := core.Paint{Gradient: core.HorizontalGradient(o.X, o.X+o.Width, pipeDark, pipeLight, pipeDeep)}
	overhang := o.Width * 0.1
	capPaint := core.Paint{Gradient: core.HorizontalGradient(o.X-overhang, o.X+o.Width+overhang, capDark, capLight, pipeDark)}
	radius := o.CapHeight / 4

	// Top barrier, cap at its lower end
	dst.FillRect(o.TopHitbox(), body)
	dst.FillRoundRect(core.RectFromEdges(o.X-overhang, o.GapTop-o.CapHeight, o.X+o.Width+overhang, o.GapTop), radius, capPaint)

	// Bottom barrier, cap at its upper end
	dst.FillRect(o.BottomHitbox(), body)
	bottom := o.GapBottom()
	dst.FillRoundRect(core.RectFromEdges(o.X-overhang, bottom, o.X+o.Width+overhang, bottom+o.CapHeight), radius, capPaint)

	// Edge lines along the bodies
	hx, sx := o.X+4, o.X+o.Width-4
	dst.StrokeLine(core.Point{X: hx, Y: 0}, core.Point{X: hx, Y: o.GapTop - o.CapHeight}, 4, pipeHighlight)
	dst.StrokeLine(core.Point{X: hx, Y: bottom + o.CapHeight}, core.Point{X: hx, Y: o.floorY}, 4, pipeHighlight)
	dst.StrokeLine(core.Point{X: sx, Y: 0}, core.Point{X: sx, Y: o.GapTop - o.CapHeight}, 4, pipeShadow)
	dst.StrokeLine(core.Point{X: sx, Y: bottom + o.CapHeight}, core.Point{X: sx, Y: o.floorY}, 4, pipeShadow)
}

func (s *Scene) drawAvatar(dst core.Surface) {
	a := s.avatar
	half := a.Size / 2
	centre := core.Point{X: a.X, Y: a.Y}
	rot := a.rotation

	// place maps a point in the avatar's own frame to world space.
	place := func(x, y float64) core.Point {
		return core.Point{X: x, Y: y}.Rotate(rot).Add(centre)
	}

	dst.FillCircle(centre, half*0.9, core.Solid(avatarBody))

	var wingOffset float64
	switch a.wingPhase {
	case 1:
		wingOffset = -a.Size * 0.1
	case 2:
		wingOffset = a.Size * 0.1
	}
	wc := place(-half*0.2, wingOffset+half*0.3)
	dst.FillEllipse(core.NewRect(wc.X-half*0.4, wc.Y-half*0.3, half*0.8, half*0.6), core.Solid(avatarWing))

	dst.FillCircle(place(half*0.3, -half*0.2), half*0.35, core.Solid(core.ColorWhite))
	dst.FillCircle(place(half*0.4, -half*0.15), half*0.18, core.Solid(core.ColorBlack))

	dst.FillPath([]core.Point{
		place(half*0.6, 0),
		place(half*1.3, half*0.1),
		place(half*0.6, half*0.35),
	}, core.Solid(avatarBeak))
}

func (s *Scene) drawGround(dst core.Surface) {
	l := s.layout
	dst.FillRect(core.RectFromEdges(0, l.FloorY, l.Width, l.Height), core.Paint{
		Gradient: core.VerticalGradient(l.FloorY, l.Height, groundTop, groundBottom),
	})
	dst.StrokeLine(core.Point{X: 0, Y: l.FloorY}, core.Point{X: l.Width, Y: l.FloorY}, 4, groundLine)

	step := l.Width / 8
	for i := 0; i <= 8; i++ {
		x := float64(i) * step
		dst.StrokeLine(core.Point{X: x, Y: l.FloorY + 15}, core.Point{X: x + 20, Y: l.Height}, 3, groundStripe)
	}
}

// pulseAlpha maps the animation phase to an alpha in [105, 255].
func pulseAlpha(phase float64) uint8 {
	return uint8((math.Sin(phase)+1)/2*150 + 105)
}

func (s *Scene) drawMenuHUD(dst core.Surface) {
	l := s.layout
	cx := l.Width / 2

	dst.DrawText(cx, l.Height*0.25, "Flappy", core.TextStyle{
		Color:  core.ColorWhite,
		Size:   l.Width * 0.12,
		Align:  core.AlignCenter,
		Bold:   true,
		Shadow: &core.Shadow{DX: 4, DY: 4, Color: textShadow},
	})
	dst.DrawText(cx, l.Height*0.55, "Press space to start", core.TextStyle{
		Color: core.ColorWhite.WithAlpha(pulseAlpha(s.phase)),
		Size:  l.Width * 0.05,
		Align: core.AlignCenter,
	})
	if best := s.score.Best(); best > 0 {
		dst.DrawText(cx, l.Height*0.75, fmt.Sprintf("Best: %d", best), core.TextStyle{
			Color: core.ColorWhite.WithAlpha(180),
			Size:  l.Width * 0.05,
			Align: core.AlignCenter,
		})
	}
}

func (s *Scene) drawScoreHUD(dst core.Surface) {
	l := s.layout
	dst.DrawText(l.Width/2, l.Height*0.12, fmt.Sprintf("%d", s.score.Current()), core.TextStyle{
		Color:  core.ColorWhite,
		Size:   l.Width * 0.15,
		Align:  core.AlignCenter,
		Bold:   true,
		Shadow: &core.Shadow{DX: 4, DY: 4, Color: textShadow},
	})
}

func (s *Scene) drawGameOverHUD(dst core.Surface) {
	l := s.layout
	cx := l.Width / 2

	dst.FillRect(core.NewRect(0, 0, l.Width, l.Height), core.Solid(overlayDim))

	pw, ph := l.Width*0.7, l.Height*0.35
	top := l.Height * 0.25
	dst.FillRoundRect(core.NewRect((l.Width-pw)/2, top, pw, ph), 30, core.Solid(panelFill))

	dst.DrawText(cx, top+ph*0.2, "Game over", core.TextStyle{
		Color: core.ColorWhite,
		Size:  l.Width * 0.08,
		Align: core.AlignCenter,
		Bold:  true,
	})
	dst.DrawText(cx, top+ph*0.5, fmt.Sprintf("Score: %d", s.score.Current()), core.TextStyle{
		Color: core.ColorWhite,
		Size:  l.Width * 0.06,
		Align: core.AlignCenter,
	})

	best := core.TextStyle{Size: l.Width * 0.05, Align: core.AlignCenter}
	if s.score.IsNewBest() {
		best.Color = core.ColorGold
		best.Bold = true
		dst.DrawText(cx, top+ph*0.75, "New best!", best)
	} else {
		best.Color = core.ColorWhite.WithAlpha(200)
		dst.DrawText(cx, top+ph*0.75, fmt.Sprintf("Best: %d", s.score.Best()), best)
	}

	dst.DrawText(cx, l.Height*0.75, "Press space to play again", core.TextStyle{
		Color: core.ColorWhite.WithAlpha(pulseAlpha(s.phase)),
		Size:  l.Width * 0.045,
		Align: core.AlignCenter,
	})
}
