package game_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/plus3/glecs/ecs"
	"github.com/plus3/glecs/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
build:
  mode: production
  date: 2024-03-01T12:00:00Z
  version: 1.2.3
baseUrl: https://example.com/assets/
showDebug: true
frameRate: 30
`

const jsonConfig = `{
  "build": {"mode": "development", "date": "2024-03-01T12:00:00Z", "version": "0.0.1"},
  "baseUrl": "http://localhost:8080/",
  "loopOnce": true,
  "debugInterval": 0.5
}`

func TestLoadYAML(t *testing.T) {
	cfg, err := game.LoadYAML(strings.NewReader(yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, game.Production, cfg.Build.Mode)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), cfg.Build.Date.UTC())
	assert.Equal(t, "1.2.3", cfg.Build.Version)
	assert.Equal(t, "https://example.com/assets/", cfg.BaseURL)
	assert.True(t, cfg.ShowDebug)
	assert.False(t, cfg.LoopOnce)
	assert.Equal(t, 30, cfg.FrameRate)
	assert.Equal(t, float64(1), cfg.DebugInterval, "unset fields keep their defaults")
	assert.Equal(t, time.Second/30, cfg.FrameDuration())
}

func TestLoadJSON(t *testing.T) {
	cfg, err := game.LoadJSON(strings.NewReader(jsonConfig))
	require.NoError(t, err)

	assert.Equal(t, game.Development, cfg.Build.Mode)
	assert.Equal(t, "0.0.1", cfg.Build.Version)
	assert.True(t, cfg.LoopOnce)
	assert.Equal(t, 60, cfg.FrameRate)
	assert.Equal(t, 500*time.Millisecond, cfg.DebugDuration())
}

func TestLoadEmptyConfig(t *testing.T) {
	cfg, err := game.LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), *cfg)

	cfg, err = game.LoadJSON(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), *cfg)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, game.DefaultConfig().Validate())

	tests := []struct {
		name   string
		modify func(*game.Config)
	}{
		{"unknown mode", func(c *game.Config) { c.Build.Mode = "staging" }},
		{"empty mode", func(c *game.Config) { c.Build.Mode = "" }},
		{"zero frame rate", func(c *game.Config) { c.FrameRate = 0 }},
		{"negative debug interval", func(c *game.Config) { c.DebugInterval = -1 }},
		{"frame rate above nanosecond resolution", func(c *game.Config) { c.FrameRate = 2_000_000_000 }},
		{"debug interval below nanosecond resolution", func(c *game.Config) { c.DebugInterval = 1e-10 }},
		{"NaN debug interval", func(c *game.Config) { c.DebugInterval = math.NaN() }},
		{"infinite debug interval", func(c *game.Config) { c.DebugInterval = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := game.DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ecs.ErrConfig)
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	_, err := game.LoadYAML(strings.NewReader("frameRate: [1, 2"))
	assert.ErrorIs(t, err, ecs.ErrConfig)

	_, err = game.LoadJSON(strings.NewReader(`{"frameRate": "fast"}`))
	assert.ErrorIs(t, err, ecs.ErrConfig)

	_, err = game.LoadYAML(strings.NewReader("frameRate: -5"))
	assert.ErrorIs(t, err, ecs.ErrConfig)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	cfg, err := game.LoadConfig(write("app.config.yml", yamlConfig))
	require.NoError(t, err)
	assert.Equal(t, game.Production, cfg.Build.Mode)

	cfg, err = game.LoadConfig(write("app.config.JSON", jsonConfig))
	require.NoError(t, err)
	assert.True(t, cfg.LoopOnce)

	_, err = game.LoadConfig(write("app.config.toml", "frameRate = 1"))
	assert.ErrorIs(t, err, ecs.ErrConfig)

	_, err = game.LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ecs.ErrConfig)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = game.LoadConfig(write("bad.yaml", "build:\n  mode: beta\n"))
	assert.ErrorIs(t, err, ecs.ErrConfig)
	assert.Contains(t, err.Error(), "bad.yaml")
}
