package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, [4]float64{1, 0, 0, 1}, cfg.Renderer.ClearColor)
	assert.Equal(t, 9, cfg.Spine.Iterations)
	assert.Equal(t, 3*time.Second, cfg.Engine.WanderIdle.Duration)
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[window]
title = "fish tank"

[renderer]
present_mode = "uncapped"

[spine]
preset = "fish"
iterations = 4

[engine]
wander_idle = "250ms"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fish tank", cfg.Window.Title)
	assert.Equal(t, 864, cfg.Window.Width, "untouched keys keep their defaults")
	assert.Equal(t, PresentUncapped, cfg.Renderer.PresentMode)
	assert.Equal(t, "fish", cfg.Spine.Preset)
	assert.Equal(t, 4, cfg.Spine.Iterations)
	assert.Equal(t, float32(0.05), cfg.Spine.SegmentLength)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.WanderIdle.Duration)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := Decode([]byte("[window]\ntitel = \"x\"\n"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "titel")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cfg := Default()
	err := Decode([]byte("[renderer]\npresent_mode = \"mailbox\"\n[window]\nwidth = 0\n"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "present_mode")
	assert.Contains(t, err.Error(), "window size")
}

func TestValidateWindowLimits(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"min above max", "[window]\nmin_width = 3000\n", "window limits"},
		{"zero min", "[window]\nmin_height = 0\n", "window limits"},
		{"size above max", "[window]\nmax_height = 900\n", "outside"},
		{"size below min", "[window]\nwidth = 100\n", "outside"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := Decode([]byte(tt.toml), &cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	cfg := Default()
	require.NoError(t, Decode([]byte("[window]\nwidth = 400\nheight = 300\nmin_width = 400\nmin_height = 300\n"), &cfg))
	assert.Equal(t, 400, cfg.Window.MinWidth)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
