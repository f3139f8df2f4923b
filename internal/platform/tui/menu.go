package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/microtris/internal/registry"
)

// MenuModel is the Bubble Tea model for picking a weight table.
// It never quits the program itself; the parent reads the flags.
type MenuModel struct {
	items    []registry.GameInfo
	cursor   int
	width    int
	keys     MenuKeyMap
	help     help.Model
	title    lipgloss.Style
	active   lipgloss.Style
	hint     lipgloss.Style
	selected *registry.GameInfo
	history  bool
	quitting bool
}

// NewMenuModel lists every registered game. r may be nil.
func NewMenuModel(r *lipgloss.Renderer, width int) MenuModel {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return MenuModel{
		items:  registry.List(),
		width:  width,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		active: r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		hint:   r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				selected := m.items[m.cursor]
				m.selected = &selected
			}
		case key.Matches(msg, m.keys.History):
			m.history = true
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.title.Render("M I C R O T R I S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a piece mix", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = m.active.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.hint.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen game, or nil if none was chosen.
func (m MenuModel) Selected() *registry.GameInfo {
	return m.selected
}

// WantsHistory returns true if the user asked for the history screen.
func (m MenuModel) WantsHistory() bool {
	return m.history
}

// IsQuitting returns true if the user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within the given width. Width is measured in
// cells so styled text centers correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
