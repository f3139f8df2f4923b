package field

// ClearFullRows empties every fully Landed row, then lets the stack settle:
// each Landed cell falls straight down in its own column until it rests on the
// floor or on another Landed cell. Settling can complete a new row, so the
// pass repeats until the stack is settled with no full row left. It returns
// the number of rows cleared.
func ClearFullRows(g *Grid) uint8 {
	var cleared uint8
	for {
		n := clearPass(g)
		compact(g)
		cleared += n
		if n == 0 && !hasFullRow(g) {
			return cleared
		}
	}
}

func hasFullRow(g *Grid) bool {
	for r := range Rows {
		if g.RowFull(r) {
			return true
		}
	}
	return false
}

// clearPass empties the full rows, bottom to top, and returns how many there were.
func clearPass(g *Grid) uint8 {
	var n uint8
	for r := Rows - 1; r >= 0; r-- {
		if !g.RowFull(r) {
			continue
		}
		for c := range Cols {
			g[r][c] = Empty
		}
		n++
	}
	return n
}

// compact settles each column independently. Scanning bottom to top, every
// Landed cell moves to the lowest free slot beneath it.
func compact(g *Grid) {
	for c := range Cols {
		floor := Rows - 1
		for r := Rows - 1; r >= 0; r-- {
			switch g[r][c] {
			case Landed:
				if r != floor {
					g[floor][c] = Landed
					g[r][c] = Empty
				}
				floor--
			case Falling:
				// a falling cell blocks like the floor; it is never moved here
				floor = r - 1
			}
		}
	}
}
