package field

// Input is the player's request for one tick. Each flag is consumed at most once.
type Input struct {
	Left   bool
	Right  bool
	Rotate bool
}

// IsZero reports whether nothing was requested.
func (in Input) IsZero() bool {
	return !in.Left && !in.Right && !in.Rotate
}

// Apply runs the requested moves against the falling piece, left then right
// then rotate, before gravity advances.
func Apply(g *Grid, st *State, in Input) {
	if in.Left {
		MoveLeft(g, st)
	}
	if in.Right {
		MoveRight(g, st)
	}
	if in.Rotate {
		Rotate(g, st)
	}
}

// MoveLeft shifts the falling piece one column left.
// It is a no-op at column 0 or when the stack is in the way.
func MoveLeft(g *Grid, st *State) bool {
	if !st.Falling() || st.Anchor.Col == 0 {
		return false
	}
	return relocate(g, st, st.Piece, Anchor{Row: st.Anchor.Row, Col: st.Anchor.Col - 1})
}

// MoveRight shifts the falling piece one column right.
// It is a no-op when the bounding box already touches the right wall
// or when the stack is in the way.
func MoveRight(g *Grid, st *State) bool {
	if !st.Falling() || st.Anchor.Col+1 == Cols-1 {
		return false
	}
	return relocate(g, st, st.Piece, Anchor{Row: st.Anchor.Row, Col: st.Anchor.Col + 1})
}

// Rotate turns the falling piece clockwise in place.
func Rotate(g *Grid, st *State) bool {
	// TODO: confirm with product whether this guard should read Cols-2; the
	// anchor never reaches Cols-1, so as written rotation is always allowed.
	if !st.Falling() || st.Anchor.Col == Cols-1 {
		return false
	}
	return relocate(g, st, RotateClockwise(st.Piece), st.Anchor)
}

// relocate erases the piece and redraws it as s at a. If the target does not
// fit or overlaps the stack, the piece is redrawn where it was.
func relocate(g *Grid, st *State, s Shape, a Anchor) bool {
	Erase(g, st.Piece, st.Anchor)
	if blocked(g, s, a) {
		Place(g, st.Piece, st.Anchor, Falling)
		return false
	}
	st.Piece = s
	st.Anchor = a
	Place(g, st.Piece, st.Anchor, Falling)
	return true
}
