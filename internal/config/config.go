// Package config loads the YAML configuration for microtris: game pacing and
// weight table, the tone collaborator, display glyphs and session history.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/microtris/internal/core"
)

// Sentinel validation errors.
var (
	ErrUnknownTable   = errors.New("config: unknown weight table")
	ErrUnknownBackend = errors.New("config: unknown audio backend")
	ErrInvalid        = errors.New("config: invalid value")
)

// Weight table names.
const (
	TableStandard = "standard"
	TableBoard    = "board"
)

// Audio backend names.
const (
	BackendSpeaker = "speaker"
	BackendBell    = "bell"
	BackendNone    = "none"
)

// MicrotrisConfig is the complete configuration.
type MicrotrisConfig struct {
	Game    GameConfig    `yaml:"game"`
	Audio   AudioConfig   `yaml:"audio"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
}

// GameConfig controls the simulation.
type GameConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	Table        string        `yaml:"table"`   // standard | board
	SeedHi       uint64        `yaml:"seed_hi"` // 0 with seed_lo 0 = derive from clock
	SeedLo       uint64        `yaml:"seed_lo"`
}

// AudioConfig controls the row-clear beep.
type AudioConfig struct {
	Backend    string        `yaml:"backend"` // speaker | bell | none
	Frequency  float64       `yaml:"frequency"`
	BeepCycles int           `yaml:"beep_cycles"`
	Gap        time.Duration `yaml:"gap"`
	Volume     float64       `yaml:"volume"`
	SampleRate int           `yaml:"sample_rate"`
}

// DisplayConfig controls how cells are drawn.
type DisplayConfig struct {
	EmptyGlyph   string `yaml:"empty_glyph"`
	FallingGlyph string `yaml:"falling_glyph"`
	LandedGlyph  string `yaml:"landed_glyph"`
	FallingColor string `yaml:"falling_color"`
	LandedColor  string `yaml:"landed_color"`
	FrameColor   string `yaml:"frame_color"`
}

// StorageConfig controls the session history database.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// GameID returns the registry ID for the configured weight table.
func (c GameConfig) GameID() string {
	if c.Table == TableBoard {
		return "microtris_board"
	}
	return "microtris"
}

// Validate checks every section and returns the first problem found.
func (c MicrotrisConfig) Validate() error {
	if c.Game.TickInterval <= 0 {
		return fmt.Errorf("%w: game.tick_interval must be positive, got %s", ErrInvalid, c.Game.TickInterval)
	}
	switch c.Game.Table {
	case TableStandard, TableBoard:
	default:
		return fmt.Errorf("%w %q", ErrUnknownTable, c.Game.Table)
	}

	switch c.Audio.Backend {
	case BackendSpeaker, BackendBell, BackendNone:
	default:
		return fmt.Errorf("%w %q", ErrUnknownBackend, c.Audio.Backend)
	}
	if c.Audio.Frequency <= 0 || c.Audio.BeepCycles <= 0 {
		return fmt.Errorf("%w: audio.frequency and audio.beep_cycles must be positive", ErrInvalid)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume must be within [0, 1], got %g", ErrInvalid, c.Audio.Volume)
	}
	if c.Audio.SampleRate <= 0 || c.Audio.Gap < 0 {
		return fmt.Errorf("%w: audio.sample_rate must be positive and audio.gap non-negative", ErrInvalid)
	}

	glyphs := map[string]string{
		"empty_glyph":   c.Display.EmptyGlyph,
		"falling_glyph": c.Display.FallingGlyph,
		"landed_glyph":  c.Display.LandedGlyph,
	}
	for name, g := range glyphs {
		if utf8.RuneCountInString(g) != 1 {
			return fmt.Errorf("%w: display.%s must be a single character, got %q", ErrInvalid, name, g)
		}
	}
	colors := map[string]string{
		"falling_color": c.Display.FallingColor,
		"landed_color":  c.Display.LandedColor,
		"frame_color":   c.Display.FrameColor,
	}
	for name, col := range colors {
		if _, ok := core.ParseColor(col); !ok {
			return fmt.Errorf("%w: display.%s: unknown color %q", ErrInvalid, name, col)
		}
	}

	if c.Storage.Enabled && c.Storage.Path == "" {
		return fmt.Errorf("%w: storage.path is required when storage is enabled", ErrInvalid)
	}
	return nil
}

// Glyph returns the first rune of a glyph setting.
func Glyph(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
