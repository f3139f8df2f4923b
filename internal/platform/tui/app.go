// Package tui provides the Bubble Tea front end for microtris: the game
// screen, the variant menu, the history table and the SSH server.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/microtris/internal/audio"
	"github.com/vovakirdan/microtris/internal/core"
	"github.com/vovakirdan/microtris/internal/storage"
)

// AppConfig holds everything a terminal needs to play.
type AppConfig struct {
	// GameID starts this game immediately. Empty opens the menu.
	GameID string

	Runtime  core.RuntimeConfig
	Store    *storage.Store
	Sink     audio.Sink
	Logger   *log.Logger
	Renderer *lipgloss.Renderer
}

type screen int

const (
	screenMenu screen = iota
	screenGame
	screenHistory
)

// App is the top-level model: menu, game and history screens over one
// terminal. Leaving a game stops its session.
type App struct {
	ctx     context.Context
	cfg     AppConfig
	screen  screen
	width   int
	height  int
	menu    MenuModel
	history HistoryModel
	game    Model
	session *Session
	err     error
}

// NewApp creates the app. Sessions it starts end with ctx.
func NewApp(ctx context.Context, cfg AppConfig) App {
	if cfg.Runtime.ScreenW == 0 || cfg.Runtime.ScreenH == 0 {
		def := core.DefaultConfig()
		cfg.Runtime.ScreenW, cfg.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	return App{
		ctx:    ctx,
		cfg:    cfg,
		width:  cfg.Runtime.ScreenW,
		height: cfg.Runtime.ScreenH,
		menu:   NewMenuModel(cfg.Renderer, cfg.Runtime.ScreenW),
	}
}

// Init waits for the first frame when Start opened a game.
func (a App) Init() tea.Cmd {
	if a.screen == screenGame {
		return a.game.Init()
	}
	return nil
}

// Start opens the configured game before the program runs.
func (a App) Start() (App, error) {
	if a.cfg.GameID == "" {
		return a, nil
	}
	return a.startGame(a.cfg.GameID)
}

// startGame starts a session sized to the window and switches to it.
func (a App) startGame(id string) (App, error) {
	rc := a.cfg.Runtime
	rc.ScreenW = a.width
	rc.ScreenH = max(a.height-footerHeight, 0)

	s, err := StartSession(a.ctx, SessionConfig{
		GameID:  id,
		Runtime: rc,
		Sink:    a.cfg.Sink,
		Store:   a.cfg.Store,
		Logger:  a.cfg.Logger,
	})
	if err != nil {
		return a, err
	}
	a.session = s
	a.game = NewModel(s, a.cfg.Renderer)
	a.screen = screenGame
	return a, nil
}

// Update routes messages to the active screen.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = wsm.Width
		a.height = wsm.Height
	}

	switch a.screen {
	case screenGame:
		return a.updateGame(msg)
	case screenHistory:
		return a.updateHistory(msg)
	default:
		return a.updateMenu(msg)
	}
}

func (a App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.menu, cmd = a.menu.Update(msg)

	switch {
	case a.menu.IsQuitting():
		return a, tea.Quit

	case a.menu.WantsHistory():
		a.history = NewHistoryModel(a.cfg.Store, a.cfg.Renderer, a.width, a.height)
		a.screen = screenHistory
		return a, nil

	case a.menu.Selected() != nil:
		next, err := a.startGame(a.menu.Selected().ID)
		if err != nil {
			a.err = err
			return a, tea.Quit
		}
		return next, next.game.Init()
	}

	return a, cmd
}

func (a App) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.game.Update(msg)
	if gm, ok := next.(Model); ok {
		a.game = gm
	}

	switch {
	case a.game.IsQuitting():
		a.stopGame()
		return a, tea.Quit

	case a.game.BackToMenu():
		a.stopGame()
		a.menu = NewMenuModel(a.cfg.Renderer, a.width)
		a.screen = screenMenu
		return a, nil
	}

	return a, cmd
}

func (a App) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.history, cmd = a.history.Update(msg)

	switch {
	case a.history.IsQuitting():
		return a, tea.Quit

	case a.history.IsGoingBack():
		a.menu = NewMenuModel(a.cfg.Renderer, a.width)
		a.screen = screenMenu
		return a, nil
	}

	return a, cmd
}

// View renders the active screen.
func (a App) View() string {
	switch a.screen {
	case screenGame:
		return a.game.View()
	case screenHistory:
		return a.history.View()
	default:
		return a.menu.View()
	}
}

// stopGame ends the running session, if any.
func (a *App) stopGame() {
	if a.session != nil {
		a.session.Stop()
		a.session = nil
	}
}

// Err returns the error that ended the app, if any.
func (a App) Err() error {
	return a.err
}

// Run plays on the local terminal until the user quits or ctx is done.
func Run(ctx context.Context, cfg AppConfig) error {
	app, err := NewApp(ctx, cfg).Start()
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if a, ok := final.(App); ok {
		a.stopGame()
		if err == nil {
			err = a.Err()
		}
	}
	return err
}
