package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/microtris/internal/registry"
	"github.com/vovakirdan/microtris/internal/storage"
)

// History layout constants
const (
	maxSessions   = 100 // Max rows to load per game
	historyChrome = 9   // Lines used by title, summary, borders and help
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mix"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev mix"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel lists finished games per weight table.
type HistoryModel struct {
	games    []registry.GameInfo
	cursor   int
	store    *storage.Store
	sessions []storage.Session
	stats    *storage.GameStats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	renderer *lipgloss.Renderer
	width    int
	height   int
	quitting bool
	back     bool
}

// NewHistoryModel creates the history screen. store may be nil, in which
// case the screen explains that history is disabled.
func NewHistoryModel(store *storage.Store, r *lipgloss.Renderer, width, height int) HistoryModel {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	m := HistoryModel{
		games:    registry.List(),
		store:    store,
		keys:     DefaultHistoryKeyMap(),
		help:     help.New(),
		renderer: r,
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	if len(m.games) > 0 {
		m.load(m.games[0].ID)
	}
	return m
}

// createTable creates a table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rows", Width: 6},
		{Title: "Pieces", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Played", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-historyChrome, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the sessions and totals of one game.
func (m *HistoryModel) load(gameID string) {
	m.sessions, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		m.sessions, m.loadErr = m.store.RecentSessions(gameID, maxSessions)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.Stats(gameID)
		}
	}
	m.updateRows()
}

// updateRows fills the table from the loaded sessions.
func (m *HistoryModel) updateRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = table.Row{
			strconv.Itoa(s.Rows),
			strconv.Itoa(s.Pieces),
			formatDuration(s.Duration),
			s.EndedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatDuration renders a game length as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, nil

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.cursor = (m.cursor + 1) % len(m.games)
				m.load(m.games[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.cursor = (m.cursor + len(m.games) - 1) % len(m.games)
				m.load(m.games[m.cursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.updateRows()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	r := m.renderer
	var b strings.Builder

	title := "HISTORY"
	if len(m.games) > 0 {
		title = "HISTORY - " + m.games[m.cursor].Title
	}
	b.WriteString(centerText(r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.summary(), m.width))
	b.WriteString("\n\n")

	box := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(box.Render(m.tableContent()))

	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))

	return b.String()
}

// summary renders the per-game totals line.
func (m HistoryModel) summary() string {
	if m.stats == nil || m.stats.Games == 0 {
		return ""
	}
	return fmt.Sprintf("games %d  best %d  avg %.1f  total %d rows",
		m.stats.Games, m.stats.BestRows, m.stats.AvgRows, m.stats.TotalRows)
}

// tableContent renders the table or an explanation when there is nothing to list.
func (m HistoryModel) tableContent() string {
	empty := m.renderer.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(1, 2)

	switch {
	case m.store == nil:
		return empty.Render("History is disabled.")
	case m.loadErr != nil:
		return empty.Render("Could not read history:\n" + m.loadErr.Error())
	case len(m.sessions) == 0:
		return empty.Render("No games recorded yet.\nFinish a game to see it here.")
	}
	return m.table.View()
}

// IsGoingBack returns true if the user wants to go back to the menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if the user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// historyProgram runs the history screen on its own.
type historyProgram struct {
	m HistoryModel
}

func (p historyProgram) Init() tea.Cmd { return nil }

func (p historyProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	p.m, cmd = p.m.Update(msg)
	if p.m.IsQuitting() || p.m.IsGoingBack() {
		return p, tea.Quit
	}
	return p, cmd
}

func (p historyProgram) View() string {
	if p.m.IsQuitting() || p.m.IsGoingBack() {
		return ""
	}
	return p.m.View()
}

// RunHistory shows the history screen until the user leaves it.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		historyProgram{m: NewHistoryModel(store, nil, width, height)},
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
