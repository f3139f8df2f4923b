// Package microtris adapts the 5×5 playfield to the platform's registry.Game
// contract: it owns the grid buffer and the generator, translates input frames
// and draws the board into a core.Screen.
package microtris

import (
	"fmt"

	"github.com/vovakirdan/microtris/internal/core"
	"github.com/vovakirdan/microtris/internal/games/microtris/field"
	"github.com/vovakirdan/microtris/internal/registry"
)

// Game IDs.
const (
	IDStandard = "microtris"
	IDBoard    = "microtris_board"
)

// Game implements registry.Game for one weight table.
type Game struct {
	id    string
	title string
	table field.Table
	style Style

	grid   field.Grid
	st     *field.State
	seed   field.Seed
	last   field.Outcome
	paused bool

	screenW int
	screenH int
}

// New creates a game using the standard weight table.
func New() *Game {
	return &Game{
		id:    IDStandard,
		title: "Microtris",
		table: field.StandardTable,
		style: currentStyle(),
	}
}

// NewBoard creates a game using the weight table of the original LED board.
func NewBoard() *Game {
	return &Game{
		id:    IDBoard,
		title: "Microtris (Board Mix)",
		table: field.BoardTable,
		style: currentStyle(),
	}
}

func init() {
	registry.Register(IDStandard, func() registry.Game {
		return New()
	})
	registry.Register(IDBoard, func() registry.Game {
		return NewBoard()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset starts a new game on an empty grid with a fresh generator.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = field.Seed{Hi: cfg.SeedHi, Lo: cfg.SeedLo}
	g.grid = field.Grid{}
	g.st = field.NewState(field.NewGenerator(g.seed, g.table))
	g.last = field.RowsCleared(0)
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
}

// Step applies the latched input and advances the playfield by one tick.
// While paused or after game over the playfield is frozen; restart is only
// honored once the game has ended.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.st == nil {
		g.Reset(core.DefaultConfig())
	}

	if in.Has(core.ActionRestart) && g.st.GameOver() {
		g.Reset(core.RuntimeConfig{
			ScreenW: g.screenW,
			ScreenH: g.screenH,
			SeedHi:  g.seed.Hi,
			SeedLo:  g.seed.Lo + 1,
		})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.st.GameOver() {
		g.paused = !g.paused
	}

	if g.paused || g.st.GameOver() {
		return core.StepResult{State: g.State()}
	}

	field.Apply(&g.grid, g.st, inputFrom(in))
	g.last = field.Step(&g.grid, g.st)

	return core.StepResult{
		State:   g.State(),
		Cleared: g.last.Cleared(),
		Ended:   g.last.IsGameOver(),
	}
}

// inputFrom maps platform actions onto the playfield's input snapshot.
func inputFrom(in core.InputFrame) field.Input {
	return field.Input{
		Left:   in.Has(core.ActionLeft),
		Right:  in.Has(core.ActionRight),
		Rotate: in.Has(core.ActionRotate),
	}
}

// State returns the current game state. Score is the number of rows cleared.
func (g *Game) State() core.GameState {
	if g.st == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.st.Cleared,
		GameOver: g.st.GameOver(),
		Paused:   g.paused,
	}
}

// Grid returns a copy of the current playfield.
func (g *Game) Grid() field.Grid {
	return g.grid
}

// Seed returns the seed the current game was started with.
func (g *Game) Seed() field.Seed {
	return g.seed
}

// Stats returns the session counters.
func (g *Game) Stats() core.Stats {
	if g.st == nil {
		return core.Stats{}
	}
	return core.Stats{
		Ticks:   g.st.Ticks,
		Pieces:  g.st.Pieces,
		Cleared: g.st.Cleared,
		Seed:    fmt.Sprintf("%d:%d", g.seed.Hi, g.seed.Lo),
	}
}
