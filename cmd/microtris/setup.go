package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/microtris/internal/audio"
	"github.com/vovakirdan/microtris/internal/config"
	"github.com/vovakirdan/microtris/internal/core"
	"github.com/vovakirdan/microtris/internal/games/microtris"
	"github.com/vovakirdan/microtris/internal/storage"
)

// loadConfig reads the config file and applies the global flags on top.
func loadConfig() (config.MicrotrisConfig, string, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return cfg, source, err
	}

	if flagPace != "" {
		p, err := config.ParsePace(flagPace)
		if err != nil {
			return cfg, source, err
		}
		config.ApplyPace(&cfg, p)
	}
	if flagSeed != "" {
		hi, lo, err := parseSeed(flagSeed)
		if err != nil {
			return cfg, source, err
		}
		cfg.Game.SeedHi, cfg.Game.SeedLo = hi, lo
	}
	if flagDBPath != "" {
		cfg.Storage.Enabled = true
		cfg.Storage.Path = flagDBPath
	}
	return cfg, source, nil
}

// parseSeed accepts "hi:lo" or a single number, which becomes the low half.
func parseSeed(s string) (hi, lo uint64, err error) {
	hiStr, loStr, split := strings.Cut(strings.TrimSpace(s), ":")
	if !split {
		hiStr, loStr = "0", hiStr
	}
	if hi, err = strconv.ParseUint(hiStr, 10, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid seed %q: %w", s, err)
	}
	if lo, err = strconv.ParseUint(loStr, 10, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid seed %q: %w", s, err)
	}
	return hi, lo, nil
}

// newLogger builds the logger for a command. w receives the output unless
// --log-file is set. The returned closer releases the log file.
func newLogger(w io.Writer, prefix string) (*log.Logger, func(), error) {
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, closer, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closer, nil
}

// openStore opens the history database when enabled. Failures are logged and
// the game runs without history.
func openStore(cfg config.StorageConfig, logger *log.Logger) *storage.Store {
	if !cfg.Enabled {
		return nil
	}
	store, err := storage.Open(cfg.Path)
	if err != nil {
		logger.Warn("could not open history database", "path", cfg.Path, "error", err)
		return nil
	}
	return store
}

// styleFrom converts the display section into a board style.
// Colors were checked by Validate; unknown names fall back to the default.
func styleFrom(d config.DisplayConfig) microtris.Style {
	s := microtris.DefaultStyle()
	s.Empty = config.Glyph(d.EmptyGlyph)
	s.Falling = config.Glyph(d.FallingGlyph)
	s.Landed = config.Glyph(d.LandedGlyph)
	if c, ok := core.ParseColor(d.FallingColor); ok {
		s.FallingColor = c
	}
	if c, ok := core.ParseColor(d.LandedColor); ok {
		s.LandedColor = c
	}
	if c, ok := core.ParseColor(d.FrameColor); ok {
		s.FrameColor = c
	}
	return s
}

// toneFrom converts the audio section into a beep tone.
func toneFrom(a config.AudioConfig) audio.Tone {
	return audio.Tone{
		Frequency:  a.Frequency,
		Cycles:     a.BeepCycles,
		Gap:        a.Gap,
		Volume:     a.Volume,
		SampleRate: beep.SampleRate(a.SampleRate),
	}
}

// newSink opens the configured audio backend. A backend that cannot start
// is logged and replaced by silence.
func newSink(a config.AudioConfig, bell io.Writer, logger *log.Logger) audio.Sink {
	sink, err := audio.NewSink(a.Backend, toneFrom(a), bell)
	if err != nil {
		logger.Warn("audio disabled", "backend", a.Backend, "error", err)
		return audio.NopSink{}
	}
	return sink
}
