package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/play"
)

// Model is the Bubble Tea model for a running session. The session's driver
// owns the simulation; the model forwards input and displays frames.
type Model struct {
	session       *Session
	keys          KeyMap
	help          help.Model
	footerStyle   lipgloss.Style
	frame         string
	status        string
	snapshot      core.GameState
	width         int
	height        int
	screenshotDir string
	quitting      bool
}

// NewModel creates a model for s.
func NewModel(s *Session) Model {
	h := help.New()
	h.ShowAll = false

	return Model{
		session:       s,
		keys:          DefaultKeyMap(),
		help:          h,
		footerStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		screenshotDir: filepath.Join(os.Getenv("HOME"), ".flappy", "screenshots"),
	}
}

// Init waits for the first frame.
func (m Model) Init() tea.Cmd {
	return m.session.Frames.WaitForFrame()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if MapMouse(msg) == core.ActionPrimary {
			m.session.Driver.Press(core.ActionPrimary)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeFrames()
		return m, nil

	case frameMsg:
		m.frame = m.session.Frames.Frame()
		m.snapshot = m.session.Snapshot()
		return m, m.session.Frames.WaitForFrame()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.status = m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeFrames()
		return m, nil
	}

	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		m.session.Close()
		return m, tea.Quit
	case core.ActionPrimary:
		m.session.Driver.Press(core.ActionPrimary)
		m.status = ""
	}
	return m, nil
}

// resizeFrames gives the game every row the footer does not use.
func (m Model) resizeFrames() {
	rows := m.height - lipgloss.Height(m.footer())
	m.session.Frames.Resize(m.width, rows)
}

// saveScreenshot writes the latest frame as plain text and returns a
// status line describing the result.
func (m Model) saveScreenshot() string {
	plain := m.session.Frames.Plain()
	if plain == "" {
		return "nothing to capture yet"
	}

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		return fmt.Sprintf("screenshot failed: %v", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("%s_%s.txt", play.GameID, timestamp))
	if err := os.WriteFile(path, []byte(plain), 0o600); err != nil {
		return fmt.Sprintf("screenshot failed: %v", err)
	}
	return "saved " + path
}

func (m Model) footer() string {
	line := fmt.Sprintf("best %d  %s", m.snapshot.Best, m.help.View(m.keys))
	if m.status != "" {
		line = m.status + "  " + line
	}
	return m.footerStyle.Render(line)
}

// View renders the latest frame above the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.frame == "" {
		return "starting...\n" + m.footer()
	}
	return m.frame + "\n" + m.footer()
}

// Snapshot returns the scene summary taken with the latest frame.
func (m Model) Snapshot() core.GameState {
	return m.snapshot
}

// Run plays one session in the local terminal.
func Run(cfg SessionConfig) error {
	s, err := NewSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Start(context.Background()); err != nil {
		return err
	}

	p := tea.NewProgram(
		NewModel(s),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
