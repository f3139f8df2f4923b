package field

// Phase is the gravity/collision state of the playfield.
type Phase uint8

const (
	PhaseNoPiece Phase = iota // nothing falling; next tick spawns
	PhaseFalling              // a piece is falling
	PhaseLanded               // a piece committed this tick
	PhaseGameOver             // stack reached the top row
)

// String returns a readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNoPiece:
		return "no_piece"
	case PhaseFalling:
		return "falling"
	case PhaseLanded:
		return "landed"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// State owns the current falling piece. It does not own the Grid, which the
// caller passes in on every tick.
type State struct {
	Piece  Shape // zero when nothing is falling
	Kind   Kind
	Anchor Anchor
	Phase  Phase

	// Session counters.
	Ticks   uint64
	Pieces  int
	Cleared int

	gen *Generator
}

// NewState returns a state with no falling piece that spawns from gen.
func NewState(gen *Generator) *State {
	return &State{
		Anchor: SpawnAnchor,
		Phase:  PhaseNoPiece,
		gen:    gen,
	}
}

// Generator returns the generator the state spawns from.
func (st *State) Generator() *Generator {
	return st.gen
}

// Falling reports whether a piece is currently falling.
func (st *State) Falling() bool {
	return st.Phase == PhaseFalling && !st.Piece.IsEmpty()
}

// GameOver reports whether the state has reached its terminal phase.
func (st *State) GameOver() bool {
	return st.Phase == PhaseGameOver
}

// clearPiece drops the falling piece and resets the anchor for the next spawn.
func (st *State) clearPiece() {
	st.Piece = Shape{}
	st.Kind = KindNone
	st.Anchor = SpawnAnchor
}
