package core

import (
	"fmt"
	"time"
)

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	TickInterval time.Duration // Gravity period; one Step per interval
	SeedHi       uint64        // High half of the 128-bit generator seed
	SeedLo       uint64        // Low half of the 128-bit generator seed
}

// DefaultTickInterval is the board's gravity period.
const DefaultTickInterval = 400 * time.Millisecond

// DefaultConfig returns a RuntimeConfig with sensible defaults.
// A zero seed means the platform derives one from the clock.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      40,
		ScreenH:      16,
		TickInterval: DefaultTickInterval,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Rows cleared so far
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// Cleared is the number of rows removed on this tick. The audio
	// collaborator beeps once per row.
	Cleared int

	// Ended is set only on the tick the game transitioned to game over.
	Ended bool
}

// Cue asks the tone collaborator for sound: one beep per cleared row, or the
// game-over tune.
type Cue struct {
	Rows     int
	GameOver bool
}

// CueFor derives the cue for a step result. ok is false when the tick was silent.
func CueFor(res StepResult) (cue Cue, ok bool) {
	cue = Cue{Rows: res.Cleared, GameOver: res.Ended}
	return cue, cue.Rows > 0 || cue.GameOver
}

// Stats are the counters a game keeps for the history store.
type Stats struct {
	Ticks   uint64
	Pieces  int
	Cleared int
	Seed    string // "hi:lo" in decimal
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	return fmt.Sprintf("rows=%d pieces=%d ticks=%d", s.Cleared, s.Pieces, s.Ticks)
}
