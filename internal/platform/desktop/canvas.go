package desktop

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

const (
	// Gradient fills are split into this many bands so multi-stop ramps
	// survive per-vertex interpolation.
	gradientBands = 24

	ellipseSegments = 48

	// Height of basicfont.Face7x13 in pixels.
	baseGlyphHeight = 13
)

// Canvas draws world-space primitives onto an Ebitengine image. The image is
// expected to be world-sized; Ebitengine scales it to the window.
type Canvas struct {
	dst    *ebiten.Image
	bounds core.Rect
	white  *ebiten.Image
	face   *text.GoXFace

	vertices []ebiten.Vertex
	indices  []uint16
}

var _ core.Surface = (*Canvas)(nil)

// NewCanvas creates a canvas for a w x h world.
func NewCanvas(w, h float64) *Canvas {
	return &Canvas{
		bounds: core.NewRect(0, 0, w, h),
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
}

// Target sets the image the next drawing calls go to.
func (c *Canvas) Target(dst *ebiten.Image) {
	c.dst = dst
}

// Bounds returns the world rectangle covered by the canvas.
func (c *Canvas) Bounds() core.Rect {
	return c.bounds
}

func (c *Canvas) whiteImage() *ebiten.Image {
	if c.white == nil {
		c.white = ebiten.NewImage(1, 1)
		c.white.Fill(color.White)
	}
	return c.white
}

// fill triangulates path and shades each vertex with p.
func (c *Canvas) fill(path *vector.Path, p core.Paint) {
	c.vertices, c.indices = path.AppendVerticesAndIndicesForFilling(c.vertices[:0], c.indices[:0])
	shadeVertices(c.vertices, p)

	op := &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  ebiten.FillRuleNonZero,
	}
	c.dst.DrawTriangles(c.vertices, c.indices, c.whiteImage(), op)
}

// shadeVertices colours every vertex with the paint at its position.
func shadeVertices(vs []ebiten.Vertex, p core.Paint) {
	for i := range vs {
		v := &vs[i]
		v.SrcX, v.SrcY = 0, 0
		col := p.Shade(core.Point{X: float64(v.DstX), Y: float64(v.DstY)})
		v.ColorR = float32(col.R) / 255
		v.ColorG = float32(col.G) / 255
		v.ColorB = float32(col.B) / 255
		v.ColorA = float32(col.A) / 255
	}
}

// FillRect fills r. Gradient fills are drawn as bands along the gradient axis.
func (c *Canvas) FillRect(r core.Rect, p core.Paint) {
	for _, band := range gradientSlices(r, p) {
		var path vector.Path
		appendRect(&path, band)
		c.fill(&path, p)
	}
}

// gradientSlices splits r into bands across the dominant gradient axis.
// Solid paints return r unchanged.
func gradientSlices(r core.Rect, p core.Paint) []core.Rect {
	g := p.Gradient
	if g == nil || len(g.Stops) < 3 {
		return []core.Rect{r}
	}
	bands := make([]core.Rect, 0, gradientBands)
	vertical := math.Abs(g.To.Y-g.From.Y) >= math.Abs(g.To.X-g.From.X)
	for i := 0; i < gradientBands; i++ {
		t0 := float64(i) / gradientBands
		t1 := float64(i+1) / gradientBands
		if vertical {
			bands = append(bands, core.RectFromEdges(r.X, r.Y+t0*r.H, r.Right(), r.Y+t1*r.H))
		} else {
			bands = append(bands, core.RectFromEdges(r.X+t0*r.W, r.Y, r.X+t1*r.W, r.Bottom()))
		}
	}
	return bands
}

func appendRect(path *vector.Path, r core.Rect) {
	path.MoveTo(float32(r.X), float32(r.Y))
	path.LineTo(float32(r.Right()), float32(r.Y))
	path.LineTo(float32(r.Right()), float32(r.Bottom()))
	path.LineTo(float32(r.X), float32(r.Bottom()))
	path.Close()
}

// FillRoundRect fills r with corners of the given radius.
func (c *Canvas) FillRoundRect(r core.Rect, radius float64, p core.Paint) {
	radius = math.Min(radius, math.Min(r.W, r.H)/2)
	if radius <= 0 {
		c.FillRect(r, p)
		return
	}
	x0, y0 := float32(r.X), float32(r.Y)
	x1, y1 := float32(r.Right()), float32(r.Bottom())
	rad := float32(radius)

	var path vector.Path
	path.MoveTo(x0+rad, y0)
	path.LineTo(x1-rad, y0)
	path.ArcTo(x1, y0, x1, y0+rad, rad)
	path.LineTo(x1, y1-rad)
	path.ArcTo(x1, y1, x1-rad, y1, rad)
	path.LineTo(x0+rad, y1)
	path.ArcTo(x0, y1, x0, y1-rad, rad)
	path.LineTo(x0, y0+rad)
	path.ArcTo(x0, y0, x0+rad, y0, rad)
	path.Close()
	c.fill(&path, p)
}

// FillCircle fills a circle.
func (c *Canvas) FillCircle(center core.Point, radius float64, p core.Paint) {
	if radius <= 0 {
		return
	}
	var path vector.Path
	path.Arc(float32(center.X), float32(center.Y), float32(radius), 0, 2*math.Pi, vector.Clockwise)
	path.Close()
	c.fill(&path, p)
}

// FillEllipse fills the ellipse inscribed in r.
func (c *Canvas) FillEllipse(r core.Rect, p core.Paint) {
	c.FillPath(ellipsePoints(r, ellipseSegments), p)
}

// ellipsePoints returns n points on the ellipse inscribed in r.
func ellipsePoints(r core.Rect, n int) []core.Point {
	center := r.Center()
	rx, ry := r.W/2, r.H/2
	pts := make([]core.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = core.Point{X: center.X + rx*math.Cos(a), Y: center.Y + ry*math.Sin(a)}
	}
	return pts
}

// FillPath fills the closed polygon through pts.
func (c *Canvas) FillPath(pts []core.Point, p core.Paint) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, pt := range pts[1:] {
		path.LineTo(float32(pt.X), float32(pt.Y))
	}
	path.Close()
	c.fill(&path, p)
}

// StrokeLine draws a line segment.
func (c *Canvas) StrokeLine(from, to core.Point, width float64, col core.Color) {
	vector.StrokeLine(c.dst,
		float32(from.X), float32(from.Y), float32(to.X), float32(to.Y),
		float32(width), toNRGBA(col), true)
}

// DrawText draws a line of text scaled from the bitmap font.
func (c *Canvas) DrawText(x, y float64, s string, style core.TextStyle) {
	if style.Shadow != nil {
		c.drawText(x+style.Shadow.DX, y+style.Shadow.DY, s, style, style.Shadow.Color)
	}
	c.drawText(x, y, s, style, style.Color)
	if style.Bold {
		c.drawText(x+textScale(style), y, s, style, style.Color)
	}
}

func (c *Canvas) drawText(x, y float64, s string, style core.TextStyle, col core.Color) {
	scale := textScale(style)

	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(toNRGBA(col))
	op.PrimaryAlign = textAlign(style.Align)
	op.SecondaryAlign = text.AlignCenter
	op.Filter = ebiten.FilterLinear

	text.Draw(c.dst, s, c.face, op)
}

// textScale returns the factor from the bitmap font to style.Size.
func textScale(style core.TextStyle) float64 {
	if style.Size <= 0 {
		return 1
	}
	return style.Size / baseGlyphHeight
}

func textAlign(a core.Align) text.Align {
	switch a {
	case core.AlignCenter:
		return text.AlignCenter
	case core.AlignRight:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}

func toNRGBA(c core.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
