package config

import (
	"fmt"
	"strings"
	"time"
)

// Pace is a named gravity period. The interval stays fixed for the whole game.
type Pace string

const (
	PaceRelaxed Pace = "relaxed"
	PaceBoard   Pace = "board"
	PaceBrisk   Pace = "brisk"
)

// Paces lists the presets from slowest to fastest.
var Paces = []Pace{PaceRelaxed, PaceBoard, PaceBrisk}

// Interval returns the tick interval for a preset.
func (p Pace) Interval() time.Duration {
	switch p {
	case PaceRelaxed:
		return 650 * time.Millisecond
	case PaceBrisk:
		return 250 * time.Millisecond
	default:
		return 400 * time.Millisecond
	}
}

// ParsePace accepts a preset name, case-insensitively.
func ParsePace(s string) (Pace, error) {
	p := Pace(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Paces {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown pace %q (want relaxed, board or brisk)", ErrInvalid, s)
}

// ApplyPace overrides the tick interval with a preset.
func ApplyPace(cfg *MicrotrisConfig, p Pace) {
	cfg.Game.TickInterval = p.Interval()
}
