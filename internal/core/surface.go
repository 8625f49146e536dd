package core

import "sort"

// GradientStop is a colour at a relative offset along a gradient.
type GradientStop struct {
	Offset float64 // 0.0 at the gradient start, 1.0 at its end
	Color  Color
}

// LinearGradient is a colour ramp between two world points. Positions outside
// the segment clamp to the first or last stop.
type LinearGradient struct {
	From, To Point
	Stops    []GradientStop
}

// At returns the gradient colour at world point p.
func (g *LinearGradient) At(p Point) Color {
	if len(g.Stops) == 0 {
		return ColorTransparent
	}
	dx, dy := g.To.X-g.From.X, g.To.Y-g.From.Y
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = ((p.X-g.From.X)*dx + (p.Y-g.From.Y)*dy) / lenSq
	}
	return g.ColorAt(t)
}

// ColorAt returns the gradient colour at relative offset t.
func (g *LinearGradient) ColorAt(t float64) Color {
	stops := g.Stops
	if len(stops) == 0 {
		return ColorTransparent
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return last.Color
	}
	i := sort.Search(len(stops), func(i int) bool { return stops[i].Offset >= t })
	a, b := stops[i-1], stops[i]
	span := b.Offset - a.Offset
	if span <= 0 {
		return b.Color
	}
	return LerpColor(a.Color, b.Color, (t-a.Offset)/span)
}

// HorizontalGradient builds a left-to-right gradient across [x0, x1] with
// evenly spaced colours.
func HorizontalGradient(x0, x1 float64, colors ...Color) *LinearGradient {
	return evenGradient(Point{X: x0}, Point{X: x1}, colors)
}

// VerticalGradient builds a top-to-bottom gradient across [y0, y1] with
// evenly spaced colours.
func VerticalGradient(y0, y1 float64, colors ...Color) *LinearGradient {
	return evenGradient(Point{Y: y0}, Point{Y: y1}, colors)
}

func evenGradient(from, to Point, colors []Color) *LinearGradient {
	g := &LinearGradient{From: from, To: to, Stops: make([]GradientStop, len(colors))}
	for i, c := range colors {
		off := 0.0
		if len(colors) > 1 {
			off = float64(i) / float64(len(colors)-1)
		}
		g.Stops[i] = GradientStop{Offset: off, Color: c}
	}
	return g
}

// Paint describes how a shape is filled: a solid colour, or a gradient when
// Gradient is non-nil.
type Paint struct {
	Color    Color
	Gradient *LinearGradient
}

// Solid returns a solid-colour paint.
func Solid(c Color) Paint {
	return Paint{Color: c}
}

// Shade returns the paint colour at world point p.
func (p Paint) Shade(at Point) Color {
	if p.Gradient != nil {
		return p.Gradient.At(at)
	}
	return p.Color
}

// Align is horizontal text alignment relative to the anchor x.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Shadow is a drop shadow drawn beneath text.
type Shadow struct {
	DX, DY float64
	Color  Color
}

// TextStyle configures DrawText.
type TextStyle struct {
	Color  Color
	Size   float64 // Glyph height in world units; cell surfaces ignore it
	Align  Align
	Bold   bool
	Shadow *Shadow
}

// Surface is an immediate-mode 2D drawing target in world coordinates.
// Game code issues drawing calls; hosts own the pixels (or cells).
type Surface interface {
	// Bounds returns the world rectangle covered by the surface.
	Bounds() Rect

	FillRect(r Rect, p Paint)
	FillRoundRect(r Rect, radius float64, p Paint)
	FillCircle(center Point, radius float64, p Paint)
	// FillEllipse fills the ellipse inscribed in r.
	FillEllipse(r Rect, p Paint)
	// FillPath fills the closed polygon through pts.
	FillPath(pts []Point, p Paint)
	StrokeLine(from, to Point, width float64, c Color)
	// DrawText draws a single line of text. x is aligned per style.Align,
	// y is the vertical centre of the line.
	DrawText(x, y float64, text string, style TextStyle)
}
