package field

import "fmt"

// OutcomeKind tags a tick outcome.
type OutcomeKind uint8

const (
	OutcomeRows OutcomeKind = iota
	OutcomeGameOver
)

// Outcome is the result of one tick: either a count of cleared rows (0..Rows)
// or game over. The two cases never share a representation.
type Outcome struct {
	Kind OutcomeKind
	Rows uint8
}

// RowsCleared returns a rows outcome.
func RowsCleared(n uint8) Outcome {
	return Outcome{Kind: OutcomeRows, Rows: n}
}

// GameOver is the terminal outcome.
var GameOver = Outcome{Kind: OutcomeGameOver}

// IsGameOver reports whether the outcome is terminal.
func (o Outcome) IsGameOver() bool {
	return o.Kind == OutcomeGameOver
}

// Cleared returns the rows cleared, or 0 for game over.
func (o Outcome) Cleared() int {
	if o.Kind != OutcomeRows {
		return 0
	}
	return int(o.Rows)
}

// String implements fmt.Stringer.
func (o Outcome) String() string {
	if o.IsGameOver() {
		return "GameOver"
	}
	return fmt.Sprintf("RowsCleared(%d)", o.Rows)
}

// Step advances the playfield by exactly one tick. Player input must already
// have been applied with Apply.
//
// With nothing falling it spawns a piece and returns RowsCleared(0) without
// applying gravity. With a piece falling it drops or commits it; a commit is
// followed by row clearing. Once the state is over, every call returns
// GameOver and leaves the grid untouched.
func Step(g *Grid, st *State) Outcome {
	if st.GameOver() {
		return GameOver
	}
	st.Ticks++

	if !st.Falling() {
		Spawn(g, st)
		return RowsCleared(0)
	}

	switch Fall(g, st) {
	case PhaseGameOver:
		return GameOver
	case PhaseLanded:
		n := ClearFullRows(g)
		st.Cleared += int(n)
		st.Phase = PhaseNoPiece
		return RowsCleared(n)
	default:
		return RowsCleared(0)
	}
}
