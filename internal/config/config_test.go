package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var embedded MicrotrisConfig
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &embedded))
	assert.Equal(t, DefaultConfig(), embedded)
	assert.NoError(t, embedded.Validate())
}

func TestLoadCustomPathOverridesSomeKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("game:\n  tick_interval: 250ms\n  table: board\naudio:\n  backend: none\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, source, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, source)
	assert.Equal(t, 250*time.Millisecond, cfg.Game.TickInterval)
	assert.Equal(t, TableBoard, cfg.Game.Table)
	assert.Equal(t, "microtris_board", cfg.Game.GameID())
	assert.Equal(t, BackendNone, cfg.Audio.Backend)
	assert.Equal(t, 500.0, cfg.Audio.Frequency, "unset keys keep defaults")
	assert.Equal(t, "█", cfg.Display.FallingGlyph)
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"unknown table", "game:\n  table: tetromino\n", ErrUnknownTable},
		{"unknown backend", "audio:\n  backend: midi\n", ErrUnknownBackend},
		{"zero interval", "game:\n  tick_interval: 0s\n", ErrInvalid},
		{"loud", "audio:\n  volume: 1.5\n", ErrInvalid},
		{"wide glyph", "display:\n  landed_glyph: \"##\"\n", ErrInvalid},
		{"bad color", "display:\n  frame_color: plaid\n", ErrInvalid},
		{"storage without path", "storage:\n  enabled: true\n  path: \"\"\n", ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, _, err := Load(path)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game: [unterminated"), 0o644))

	_, _, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse")
}

func TestLoadFallsBackToLocalThenEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	_, source, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, SourceEmbedded, source)

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "microtris.yaml"), []byte("game:\n  table: board\n"), 0o644))

	cfg, source, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("configs", "microtris.yaml"), source)
	assert.Equal(t, TableBoard, cfg.Game.Table)
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Game.SeedHi = 7

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "tick_interval: 400ms")

	var back MicrotrisConfig
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, cfg, back)
}

func TestPace(t *testing.T) {
	p, err := ParsePace(" Brisk ")
	require.NoError(t, err)
	assert.Equal(t, PaceBrisk, p)

	_, err = ParsePace("ludicrous")
	assert.ErrorIs(t, err, ErrInvalid)

	cfg := DefaultConfig()
	ApplyPace(&cfg, PaceRelaxed)
	assert.Equal(t, 650*time.Millisecond, cfg.Game.TickInterval)

	for i := 1; i < len(Paces); i++ {
		assert.Less(t, Paces[i].Interval(), Paces[i-1].Interval(), "presets run slowest to fastest")
	}
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, '▓', Glyph("▓"))
	assert.Equal(t, rune(0), Glyph(""))
}
