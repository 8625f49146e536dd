package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func testRenderer(profile termenv.Profile) *Renderer {
	lg := lipgloss.NewRenderer(io.Discard)
	lg.SetColorProfile(profile)
	return NewRenderer(lg)
}

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(6, 2)
	scr.PutText(1, 0, "hey", core.ColorGold)
	scr.PutText(0, 1, "yo", core.ColorWhite)

	out := testRenderer(termenv.Ascii).RenderScreen(scr)

	if out != scr.String() {
		t.Errorf("ascii render = %q, expected %q", out, scr.String())
	}
}

func TestRenderScreenGroupsRuns(t *testing.T) {
	scr := core.NewScreen(8, 1)
	scr.PutText(2, 0, "ab", core.ColorGold)

	r := testRenderer(termenv.TrueColor)
	out := r.RenderScreen(scr)

	// Blank, gold, blank: two distinct styles, three runs
	if len(r.styles) != 2 {
		t.Errorf("cached %d styles, expected 2", len(r.styles))
	}
	if n := strings.Count(out, "\x1b[0m"); n != 3 {
		t.Errorf("rendered %d runs, expected 3: %q", n, out)
	}
	if !strings.Contains(out, "ab") {
		t.Errorf("run text should stay contiguous: %q", out)
	}
}

func TestRenderScreenSeparatesBold(t *testing.T) {
	scr := core.NewScreen(4, 1)
	scr.DrawText(0, 0, "ab", core.TextStyle{Color: core.ColorWhite, Bold: true})

	r := testRenderer(termenv.TrueColor)
	r.RenderScreen(scr)

	if len(r.styles) != 2 {
		t.Errorf("bold and plain cells should use different styles, got %d", len(r.styles))
	}
}

func TestRenderScreenEmpty(t *testing.T) {
	if out := RenderScreen(core.NewScreen(0, 0)); out != "" {
		t.Errorf("empty screen rendered %q", out)
	}
}
