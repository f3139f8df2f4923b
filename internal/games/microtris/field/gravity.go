package field

// Spawn draws the next shape and places it at the spawn anchor.
func Spawn(g *Grid, st *State) {
	kind := st.gen.Next()
	st.Kind = kind
	st.Piece = kind.Shape()
	st.Anchor = SpawnAnchor
	st.Phase = PhaseFalling
	st.Pieces++
	Place(g, st.Piece, st.Anchor, Falling)
}

// Grounded reports whether the falling piece cannot drop another row: some set
// cell is on the floor or directly above a Landed cell.
func Grounded(g *Grid, st *State) bool {
	if st.Anchor.Row >= st.Piece.MaxRow() {
		return true
	}
	for _, p := range st.Piece.Cells(st.Anchor) {
		below := p.Row + 1
		if below >= Rows || g[below][p.Col] == Landed {
			return true
		}
	}
	return false
}

// Fall advances the falling piece by one tick. On contact it commits the piece
// to the stack and moves to PhaseLanded, or to PhaseGameOver when the commit
// left stack cells in the top row. Otherwise the piece drops one row.
func Fall(g *Grid, st *State) Phase {
	if !st.Falling() {
		return st.Phase
	}

	if Grounded(g, st) {
		Commit(g, st.Piece, st.Anchor)
		st.clearPiece()
		if g.RowHas(0, Landed) {
			st.Phase = PhaseGameOver
		} else {
			st.Phase = PhaseLanded
		}
		return st.Phase
	}

	Erase(g, st.Piece, st.Anchor)
	st.Anchor.Row++
	Place(g, st.Piece, st.Anchor, Falling)
	return st.Phase
}
