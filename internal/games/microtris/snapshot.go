package microtris

import "github.com/vovakirdan/microtris/internal/games/microtris/field"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Pieces  int
	Cleared int
	Phase   string
	Kind    string
	Anchor  field.Anchor
	Grid    string // ParseGrid notation
	Outcome string // outcome of the last tick
	Paused  bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.st == nil {
		return Snapshot{}
	}
	return Snapshot{
		Tick:    g.st.Ticks,
		Pieces:  g.st.Pieces,
		Cleared: g.st.Cleared,
		Phase:   g.st.Phase.String(),
		Kind:    g.st.Kind.String(),
		Anchor:  g.st.Anchor,
		Grid:    g.grid.String(),
		Outcome: g.last.String(),
		Paused:  g.paused,
	}
}
