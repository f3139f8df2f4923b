package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/microtris/internal/core"
	"github.com/vovakirdan/microtris/internal/engine"
)

// footerHeight is the number of lines under the board reserved for help.
const footerHeight = 1

// FrameMsg carries a frame published by a session's runner.
type FrameMsg struct {
	session *Session
	Frame   engine.Frame
}

// waitForFrame blocks until the runner publishes a frame or the session stops.
func waitForFrame(s *Session) tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-s.runner.Frames():
			return FrameMsg{session: s, Frame: f}
		case <-s.Done():
			return nil
		}
	}
}

// Model is the Bubble Tea model for a running game. It never steps the game
// itself: keys are latched on the runner and frames arrive as messages.
type Model struct {
	session  *Session
	keys     KeyMap
	help     help.Model
	palette  Palette
	hint     lipgloss.Style
	frame    engine.Frame
	hasFrame bool
	quitting bool
	back     bool
}

// NewModel creates the model for a started session. r may be nil.
func NewModel(s *Session, r *lipgloss.Renderer) Model {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Model{
		session: s,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		palette: NewPalette(r),
		hint:    r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Init waits for the first frame.
func (m Model) Init() tea.Cmd {
	return waitForFrame(m.session)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.session.runner.Resize(msg.Width, max(msg.Height-footerHeight, 0))
		return m, nil

	case FrameMsg:
		if msg.session != m.session {
			// left over from a game that was stopped
			return m, nil
		}
		m.frame = msg.Frame
		m.hasFrame = true
		return m, waitForFrame(m.session)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Back):
		state := m.State()
		if state.GameOver || state.Paused {
			m.back = true
		}
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	default:
		m.session.runner.Press(a)
	}
	return m, nil
}

// View renders the newest frame and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.hasFrame {
		return "Starting..."
	}
	return m.palette.Render(m.frame.Screen) + "\n" + m.hint.Render(m.help.View(m.keys))
}

// State returns the game state as of the newest frame.
func (m Model) State() core.GameState {
	return m.frame.Result.State
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to leave a paused or ended game.
func (m Model) BackToMenu() bool {
	return m.back
}
