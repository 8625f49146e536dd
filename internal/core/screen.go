package core

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Cell is one character position of a Screen.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
	Bold bool
}

var blankCell = Cell{Rune: ' ', FG: ColorWhite, BG: ColorBlack}

// Screen is a 2D character buffer for rendering game graphics.
// It decouples game rendering from the terminal: games draw world-space
// primitives through the Surface interface, Screen rasterises them onto cells
// by sampling each cell centre, and the platform handles actual display.
type Screen struct {
	width  int
	height int
	cells  [][]Cell

	worldW float64
	worldH float64
}

var _ Surface = (*Screen)(nil)

// NewScreen creates a new screen buffer with the given dimensions.
// World coordinates map 1:1 to cells until SetWorld is called.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
		worldW: float64(width),
		worldH: float64(height),
	}
	s.allocate()
	s.Clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// SetWorld sets the world size that is stretched over the whole grid.
func (s *Screen) SetWorld(w, h float64) {
	s.worldW = w
	s.worldH = h
}

// Bounds returns the world rectangle covered by the screen.
func (s *Screen) Bounds() Rect {
	return NewRect(0, 0, s.worldW, s.worldH)
}

// Resize changes the screen dimensions. Content is discarded.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width = width
	s.height = height
	s.allocate()
	s.Clear()
}

// Clear resets every cell to a blank black cell.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blankCell
		}
	}
}

// Set places a rune at the given cell, keeping its colours.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if !s.inside(x, y) {
		return
	}
	s.cells[y][x].Rune = r
}

// Get returns the rune at the given cell.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	if !s.inside(x, y) {
		return ' '
	}
	return s.cells[y][x].Rune
}

// GetCell returns the full cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return blankCell
	}
	return s.cells[y][x]
}

// PutText writes a string horizontally starting at cell (x, y) using fg.
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) PutText(x, y int, text string, fg Color) {
	i := 0
	for _, r := range text {
		if s.inside(x+i, y) {
			c := &s.cells[y][x+i]
			c.Rune = r
			c.FG = fg.Over(c.BG)
		}
		i++
	}
}

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

func (s *Screen) cellSize() (float64, float64) {
	if s.width == 0 || s.height == 0 {
		return 1, 1
	}
	return s.worldW / float64(s.width), s.worldH / float64(s.height)
}

// cellCenter returns the world position sampled for cell (x, y).
func (s *Screen) cellCenter(x, y int) Point {
	cw, ch := s.cellSize()
	return Point{X: (float64(x) + 0.5) * cw, Y: (float64(y) + 0.5) * ch}
}

// toCell converts a world position to the cell containing it.
func (s *Screen) toCell(p Point) (int, int) {
	cw, ch := s.cellSize()
	return int(math.Floor(p.X / cw)), int(math.Floor(p.Y / ch))
}

// paintCell blends a fill colour into a cell background. Opaque fills erase
// any glyph underneath.
func (s *Screen) paintCell(x, y int, c Color) {
	if !s.inside(x, y) || c.A == 0 {
		return
	}
	cell := &s.cells[y][x]
	if c.Opaque() {
		*cell = Cell{Rune: ' ', FG: cell.FG, BG: c}
		return
	}
	cell.BG = c.Over(cell.BG)
	cell.FG = c.Over(cell.FG)
}

// fillWhere paints every cell within the world-space box whose centre
// satisfies inside.
func (s *Screen) fillWhere(box Rect, p Paint, inside func(Point) bool) {
	x0, y0 := s.toCell(Point{X: box.X, Y: box.Y})
	x1, y1 := s.toCell(Point{X: box.Right(), Y: box.Bottom()})
	x0, y0 = Clamp(x0, 0, s.width-1), Clamp(y0, 0, s.height-1)
	x1, y1 = Clamp(x1, 0, s.width-1), Clamp(y1, 0, s.height-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			c := s.cellCenter(x, y)
			if inside(c) {
				s.paintCell(x, y, p.Shade(c))
			}
		}
	}
}

// FillRect fills r.
func (s *Screen) FillRect(r Rect, p Paint) {
	if r.Empty() {
		return
	}
	s.fillWhere(r, p, func(c Point) bool { return r.Contains(c.X, c.Y) })
}

// FillRoundRect fills r with corners rounded by radius.
func (s *Screen) FillRoundRect(r Rect, radius float64, p Paint) {
	if r.Empty() {
		return
	}
	radius = math.Min(radius, math.Min(r.W, r.H)/2)
	s.fillWhere(r, p, func(c Point) bool {
		if !r.Contains(c.X, c.Y) {
			return false
		}
		// Nearest point of the inner (radius-shrunk) rectangle
		nx := ClampF(c.X, r.X+radius, r.Right()-radius)
		ny := ClampF(c.Y, r.Y+radius, r.Bottom()-radius)
		dx, dy := c.X-nx, c.Y-ny
		return dx*dx+dy*dy <= radius*radius
	})
}

// FillCircle fills a circle.
func (s *Screen) FillCircle(center Point, radius float64, p Paint) {
	s.FillEllipse(NewRect(center.X-radius, center.Y-radius, 2*radius, 2*radius), p)
}

// FillEllipse fills the ellipse inscribed in r.
func (s *Screen) FillEllipse(r Rect, p Paint) {
	if r.Empty() {
		return
	}
	ctr := r.Center()
	rx, ry := r.W/2, r.H/2
	s.fillWhere(r, p, func(c Point) bool {
		dx, dy := (c.X-ctr.X)/rx, (c.Y-ctr.Y)/ry
		return dx*dx+dy*dy <= 1
	})
}

// FillPath fills the closed polygon through pts using the even-odd rule.
func (s *Screen) FillPath(pts []Point, p Paint) {
	if len(pts) < 3 {
		return
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, q := range pts[1:] {
		minX, maxX = math.Min(minX, q.X), math.Max(maxX, q.X)
		minY, maxY = math.Min(minY, q.Y), math.Max(maxY, q.Y)
	}
	s.fillWhere(RectFromEdges(minX, minY, maxX, maxY), p, func(c Point) bool {
		return pointInPolygon(c, pts)
	})
}

func pointInPolygon(p Point, pts []Point) bool {
	in := false
	j := len(pts) - 1
	for i := range pts {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				in = !in
			}
		}
		j = i
	}
	return in
}

// StrokeLine paints every cell the segment passes through. Cells are far
// coarser than any stroke width, so width only matters when it spans
// several cells.
func (s *Screen) StrokeLine(from, to Point, width float64, c Color) {
	cw, ch := s.cellSize()
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	step := math.Min(cw, ch) / 2
	n := int(length/step) + 1
	seen := make(map[[2]int]bool, n)
	half := int(width / cw / 2)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		x, y := s.toCell(Point{X: from.X + dx*t, Y: from.Y + dy*t})
		for k := -half; k <= half; k++ {
			key := [2]int{x + k, y}
			if seen[key] {
				continue
			}
			seen[key] = true
			s.paintCell(x+k, y, c)
		}
	}
}

// DrawText writes text on the row containing y. Shadows darken the cell
// background behind the glyphs since cells cannot be offset by sub-cell
// amounts.
func (s *Screen) DrawText(x, y float64, text string, style TextStyle) {
	col, row := s.toCell(Point{X: x, Y: y})
	n := utf8.RuneCountInString(text)
	switch style.Align {
	case AlignCenter:
		col -= n / 2
	case AlignRight:
		col -= n
	}
	i := 0
	for _, r := range text {
		cx := col + i
		i++
		if !s.inside(cx, row) {
			continue
		}
		cell := &s.cells[row][cx]
		if style.Shadow != nil {
			cell.BG = style.Shadow.Color.Over(cell.BG)
		}
		cell.Rune = r
		cell.FG = style.Color.Over(cell.BG)
		cell.Bold = style.Bold
	}
}

// String converts the screen buffer to plain text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the runes of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
