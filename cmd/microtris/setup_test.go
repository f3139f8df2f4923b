package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/microtris/internal/audio"
	"github.com/vovakirdan/microtris/internal/config"
	"github.com/vovakirdan/microtris/internal/core"
	"github.com/vovakirdan/microtris/internal/games/microtris"
	"github.com/vovakirdan/microtris/internal/storage"
)

// isolate points config lookup at an empty home and working directory and
// resets the global flags.
func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	flagConfig, flagSeed, flagPace, flagDBPath = "", "", "", ""
	t.Cleanup(func() {
		flagConfig, flagSeed, flagPace, flagDBPath = "", "", "", ""
	})
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		in      string
		hi, lo  uint64
		wantErr bool
	}{
		{"42", 0, 42, false},
		{"3:4", 3, 4, false},
		{" 18446744073709551615:1 ", 18446744073709551615, 1, false},
		{"x", 0, 0, true},
		{"1:", 0, 0, true},
		{"-1", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			hi, lo, err := parseSeed(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hi, hi)
			assert.Equal(t, tt.lo, lo)
		})
	}
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	isolate(t)

	cfg, source, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.SourceEmbedded, source)
	assert.Equal(t, 400*time.Millisecond, cfg.Game.TickInterval)

	flagPace = "brisk"
	flagSeed = "5:6"
	flagDBPath = filepath.Join(t.TempDir(), "h.db")
	cfg, _, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.PaceBrisk.Interval(), cfg.Game.TickInterval)
	assert.Equal(t, uint64(5), cfg.Game.SeedHi)
	assert.Equal(t, uint64(6), cfg.Game.SeedLo)
	assert.True(t, cfg.Storage.Enabled)
	assert.Equal(t, flagDBPath, cfg.Storage.Path)
}

func TestLoadConfigRejectsBadFlags(t *testing.T) {
	isolate(t)

	flagPace = "ludicrous"
	_, _, err := loadConfig()
	assert.ErrorIs(t, err, config.ErrInvalid)

	flagPace = ""
	flagSeed = "nope"
	_, _, err = loadConfig()
	assert.Error(t, err)
}

func TestStyleFrom(t *testing.T) {
	s := styleFrom(config.DisplayConfig{
		EmptyGlyph:   ".",
		FallingGlyph: "#",
		LandedGlyph:  "=",
		FallingColor: "red",
		LandedColor:  "bogus",
		FrameColor:   "grey",
	})
	assert.Equal(t, '.', s.Empty)
	assert.Equal(t, '#', s.Falling)
	assert.Equal(t, '=', s.Landed)
	assert.Equal(t, core.ColorRed, s.FallingColor)
	assert.Equal(t, microtris.DefaultStyle().LandedColor, s.LandedColor)
	assert.Equal(t, core.ColorGray, s.FrameColor)
}

func TestToneFromDefaults(t *testing.T) {
	tone := toneFrom(config.DefaultConfig().Audio)
	assert.Equal(t, audio.DefaultTone(), tone)
}

func TestNewSinkFallsBack(t *testing.T) {
	logger, closeLog, err := newLogger(&bytes.Buffer{}, "test")
	require.NoError(t, err)
	defer closeLog()

	sink := newSink(config.AudioConfig{Backend: "theremin"}, &bytes.Buffer{}, logger)
	assert.IsType(t, audio.NopSink{}, sink)

	var bell bytes.Buffer
	sink = newSink(config.AudioConfig{Backend: config.BackendBell}, &bell, logger)
	assert.IsType(t, &audio.BellSink{}, sink)
}

func TestPrintHistory(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	var out bytes.Buffer
	require.NoError(t, printHistory(&out, store, "", 10))
	assert.Contains(t, out.String(), "No games recorded yet.")

	for _, rows := range []int{2, 5} {
		_, err := store.SaveSession(storage.Session{
			GameID: microtris.IDStandard,
			Rows:   rows,
			Pieces: 10,
			Ticks:  50,
			Seed:   "1:2",
		})
		require.NoError(t, err)
	}

	out.Reset()
	require.NoError(t, printHistory(&out, store, microtris.IDStandard, 10))
	text := out.String()
	assert.Contains(t, text, "Seed")
	assert.Contains(t, text, "Microtris: best 5 rows (seed 1:2), 7 rows in total")
	assert.NotContains(t, text, "Board Mix")
}
