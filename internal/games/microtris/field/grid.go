// Package field implements the 5x5 playfield state machine: piece generation,
// placement, player movement, gravity with floor/stack contact, row clearing and
// the per-tick orchestrator. It has no external dependencies and performs no I/O,
// so the platform can drive it from any loop.
package field

import "strings"

// Grid dimensions. Every boundary check in this package derives from these.
const (
	Rows = 5
	Cols = 5
)

// Cell is the state of one grid position.
type Cell uint8

const (
	Empty Cell = iota
	Falling
	Landed
)

// String returns a short name for the cell state.
func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Falling:
		return "falling"
	case Landed:
		return "landed"
	default:
		return "unknown"
	}
}

// Grid is the playfield, indexed [row][col] with row 0 at the top.
// It is a value type: assigning a Grid copies it, which is how the display gets
// a snapshot that the next tick cannot disturb.
type Grid [Rows][Cols]Cell

// InBounds reports whether (row, col) indexes the grid.
func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// Get returns the cell at (row, col), or Empty when out of bounds.
func (g *Grid) Get(row, col int) Cell {
	if !InBounds(row, col) {
		return Empty
	}
	return g[row][col]
}

// Count returns how many cells hold the given state.
func (g *Grid) Count(state Cell) int {
	n := 0
	for r := range Rows {
		for c := range Cols {
			if g[r][c] == state {
				n++
			}
		}
	}
	return n
}

// RowFull reports whether every cell in the row is Landed.
func (g *Grid) RowFull(row int) bool {
	for c := range Cols {
		if g[row][c] != Landed {
			return false
		}
	}
	return true
}

// RowHas reports whether any cell in the row holds the given state.
func (g *Grid) RowHas(row int, state Cell) bool {
	for c := range Cols {
		if g[row][c] == state {
			return true
		}
	}
	return false
}

// Settled reports whether no Landed cell sits directly above an Empty one.
func (g *Grid) Settled() bool {
	for c := range Cols {
		for r := range Rows - 1 {
			if g[r][c] == Landed && g[r+1][c] == Empty {
				return false
			}
		}
	}
	return true
}

// ParseGrid builds a grid from rows of '.', '#' (falling) and 'x' (landed).
// Missing rows or columns stay Empty. Intended for fixtures and tools.
func ParseGrid(lines ...string) Grid {
	var g Grid
	for r, line := range lines {
		if r >= Rows {
			break
		}
		for c, ch := range []rune(line) {
			if c >= Cols {
				break
			}
			switch ch {
			case '#':
				g[r][c] = Falling
			case 'x':
				g[r][c] = Landed
			}
		}
	}
	return g
}

// String renders the grid in the ParseGrid notation, one row per line.
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow(Rows * (Cols + 1))
	for r := range Rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range Cols {
			switch g[r][c] {
			case Falling:
				sb.WriteByte('#')
			case Landed:
				sb.WriteByte('x')
			default:
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
