package field

// Place writes mark into every cell selected by the mask at anchor a.
// Cells that are not Empty are left alone, so placing never clobbers the stack
// and placing the same piece twice changes nothing.
func Place(g *Grid, s Shape, a Anchor, mark Cell) {
	for _, p := range s.Cells(a) {
		if !InBounds(p.Row, p.Col) {
			continue
		}
		if g[p.Row][p.Col] == Empty {
			g[p.Row][p.Col] = mark
		}
	}
}

// Erase clears every cell selected by the mask at anchor a.
func Erase(g *Grid, s Shape, a Anchor) {
	for _, p := range s.Cells(a) {
		if InBounds(p.Row, p.Col) {
			g[p.Row][p.Col] = Empty
		}
	}
}

// Commit converts the falling piece's cells into Landed stack cells.
func Commit(g *Grid, s Shape, a Anchor) {
	for _, p := range s.Cells(a) {
		if InBounds(p.Row, p.Col) && g[p.Row][p.Col] == Falling {
			g[p.Row][p.Col] = Empty
		}
	}
	Place(g, s, a, Landed)
}

// blocked reports whether any cell of s at a lies outside the grid or on the stack.
func blocked(g *Grid, s Shape, a Anchor) bool {
	for _, p := range s.Cells(a) {
		if !InBounds(p.Row, p.Col) || g[p.Row][p.Col] == Landed {
			return true
		}
	}
	return false
}
