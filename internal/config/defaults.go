package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/microtris.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultConfig returns the hardcoded defaults. They match defaults/microtris.yaml.
func DefaultConfig() MicrotrisConfig {
	return MicrotrisConfig{
		Game: GameConfig{
			TickInterval: 400 * time.Millisecond,
			Table:        TableStandard,
		},
		Audio: AudioConfig{
			Backend:    BackendBell,
			Frequency:  500,
			BeepCycles: 20,
			Gap:        60 * time.Millisecond,
			Volume:     0.5,
			SampleRate: 48000,
		},
		Display: DisplayConfig{
			EmptyGlyph:   "·",
			FallingGlyph: "█",
			LandedGlyph:  "▓",
			FallingColor: "bright_cyan",
			LandedColor:  "blue",
			FrameColor:   "gray",
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "~/.microtris/history.db",
		},
	}
}
