//go:build !wasm
// +build !wasm

package visual

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4000.0, cfg.SampleWindowMs)
	assert.Equal(t, 50.0, cfg.JankFrameMs)
	assert.Equal(t, 10, cfg.StatusEvery)
	assert.Equal(t, Limits{JankFrames: 6, MinFPS: 50, LongTaskMs: 200}, cfg.Limits(true))
	assert.Equal(t, Limits{JankFrames: 8, MinFPS: 45, LongTaskMs: 300}, cfg.Limits(false))
	assert.Equal(t, "neonsignal_visual_mode", cfg.StorageKey)
	assert.Equal(t, "neonsignal_visual_banner_dismissed", cfg.DismissedKey)
}

func TestParseConfig_OverlaysDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("sample_window_ms: 2000\nnormal:\n  jank_frames: 10\n  min_fps: 30\n  long_task_ms: 500\n"))
	require.NoError(t, err)

	assert.Equal(t, 2000.0, cfg.SampleWindowMs)
	assert.Equal(t, 50.0, cfg.JankFrameMs)
	assert.Equal(t, Limits{JankFrames: 10, MinFPS: 30, LongTaskMs: 500}, cfg.Normal)
	assert.Equal(t, DefaultConfig().LowPower, cfg.LowPower)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero window", "sample_window_ms: 0"},
		{"negative jank", "jank_frame_ms: -1"},
		{"zero status cadence", "status_every_frames: 0"},
		{"empty storage key", `storage_key: ""`},
		{"zero limit", "low_power:\n  jank_frames: 0\n  min_fps: 50\n  long_task_ms: 200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := ParseConfig([]byte("sample_window_ms: [1"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visual.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jank_frame_ms: 33\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 33.0, cfg.JankFrameMs)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
