package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/play"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func newTestSession(t *testing.T, store *storage.Store) *Session {
	t.Helper()
	s, err := NewSession(SessionConfig{Config: play.Config{
		Game:    config.DefaultFlappyConfig(),
		Runtime: core.RuntimeConfig{Seed: 7},
		Store:   store,
	}})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func sceneState(s *Session) flappy.State {
	var st flappy.State
	s.Driver.Do(func() { st = s.Scene.State() })
	return st
}

func TestNewSessionUsesConfigTickRate(t *testing.T) {
	s := newTestSession(t, nil)
	if s.Driver.TickRate() != 60 {
		t.Errorf("TickRate() = %d, expected 60", s.Driver.TickRate())
	}

	s2, err := NewSession(SessionConfig{Config: play.Config{
		Game:    config.DefaultFlappyConfig(),
		Runtime: core.RuntimeConfig{TickRate: 30},
	}})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	defer s2.Close()
	if s2.Driver.TickRate() != 30 {
		t.Errorf("runtime tick rate should win, got %d", s2.Driver.TickRate())
	}
}

func TestNewSessionRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Viewport.Width = 0
	if _, err := NewSession(SessionConfig{Config: play.Config{Game: cfg}}); err == nil {
		t.Error("expected an error for a zero-width viewport")
	}
}

func TestModelResizeReservesFooter(t *testing.T) {
	s := newTestSession(t, nil)
	m := NewModel(s)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	cols, rows := s.Frames.Size()
	if cols != 80 || rows != 23 {
		t.Errorf("frame size = %dx%d, expected 80x23", cols, rows)
	}

	// Full help takes more rows
	update(t, m, runeKey('?'))
	if _, rows := s.Frames.Size(); rows >= 23 {
		t.Errorf("full help should shrink the game area, rows = %d", rows)
	}
}

func TestModelPrimaryKeyStartsRun(t *testing.T) {
	s := newTestSession(t, nil)
	m := NewModel(s)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if st := sceneState(s); st != flappy.StatePlaying {
		t.Fatalf("state after space = %v, expected Playing", st)
	}

	update(t, m, runeKey('x'))
	if st := sceneState(s); st != flappy.StatePlaying {
		t.Errorf("unbound key changed state to %v", st)
	}
}

func TestModelMouseStartsRun(t *testing.T) {
	s := newTestSession(t, nil)
	m := NewModel(s)

	update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	if st := sceneState(s); st != flappy.StatePlaying {
		t.Errorf("state after click = %v, expected Playing", st)
	}
}

func TestModelQuit(t *testing.T) {
	s := newTestSession(t, nil)
	m := NewModel(s)

	m, cmd := update(t, m, runeKey('q'))

	if !m.quitting {
		t.Error("model should be quitting")
	}
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelShowsPresentedFrame(t *testing.T) {
	s := newTestSession(t, nil)
	m := NewModel(s)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 41})

	if !strings.HasPrefix(m.View(), "starting") {
		t.Errorf("view before first frame = %q", m.View())
	}

	s.Driver.Step()
	m, cmd := update(t, m, frameMsg{})

	if cmd == nil {
		t.Error("frame handling should wait for the next frame")
	}
	if !strings.Contains(s.Frames.Plain(), "Flappy") {
		t.Error("menu frame should show the title")
	}
	if !strings.HasPrefix(m.View(), m.frame) || m.frame == "" {
		t.Error("view should start with the latest frame")
	}
}

func TestModelScreenshot(t *testing.T) {
	s := newTestSession(t, nil)
	m := NewModel(s)
	m.screenshotDir = t.TempDir()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.status != "nothing to capture yet" {
		t.Errorf("status before any frame = %q", m.status)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 41})
	s.Driver.Step()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(m.screenshotDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one screenshot, got %v (err %v)", entries, err)
	}
	data, err := os.ReadFile(filepath.Join(m.screenshotDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "Flappy") {
		t.Error("screenshot should contain the plain frame")
	}
	if !strings.HasPrefix(m.status, "saved ") {
		t.Errorf("status = %q", m.status)
	}
}

func TestSessionPersistsBestScore(t *testing.T) {
	store := openTestStore(t)
	if _, err := play.BestScore(store, config.DefaultFlappyConfig().Storage).SaveBest(9); err != nil {
		t.Fatalf("SaveBest failed: %v", err)
	}

	s := newTestSession(t, store)

	if best := s.Snapshot().Best; best != 9 {
		t.Errorf("session best = %d, expected 9", best)
	}
}
