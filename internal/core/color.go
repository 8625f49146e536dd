package core

import "fmt"

// Color is a straight (non-premultiplied) RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// ARGB returns a colour with the given alpha.
func ARGB(a, r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Palette used by the game. Values follow the classic flappy look.
var (
	ColorWhite       = RGB(255, 255, 255)
	ColorBlack       = RGB(0, 0, 0)
	ColorTransparent = Color{}
	ColorGold        = RGB(255, 215, 0)
)

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Opaque reports whether the colour fully covers what is beneath it.
func (c Color) Opaque() bool {
	return c.A == 255
}

// Over composites c over dst and returns an opaque result.
func (c Color) Over(dst Color) Color {
	if c.A == 255 {
		return c
	}
	if c.A == 0 {
		return dst
	}
	a := float64(c.A) / 255
	mix := func(s, d uint8) uint8 {
		return uint8(float64(s)*a + float64(d)*(1-a) + 0.5)
	}
	return Color{R: mix(c.R, dst.R), G: mix(c.G, dst.G), B: mix(c.B, dst.B), A: 255}
}

// Hex returns the colour as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// LerpColor interpolates between two colours, t in [0, 1].
func LerpColor(a, b Color, t float64) Color {
	t = ClampF(t, 0, 1)
	ch := func(x, y uint8) uint8 {
		return uint8(Lerp(float64(x), float64(y), t) + 0.5)
	}
	return Color{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}
