package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 50.0, cfg.Engine.TickHz)
	assert.Equal(t, "synthetic", cfg.Feed.Mode)
	assert.InDelta(t, 9.80665, cfg.Reference.Up.Vec3().Magnitude(), 1e-9)
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	override := `
server:
  port: 9000
feed:
  mode: manual
`
	require.NoError(t, os.WriteFile(path, []byte(override), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "manual", cfg.Feed.Mode)
	// untouched fields keep their defaults
	assert.Equal(t, 50.0, cfg.Engine.TickHz)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = -1 }},
		{"zero tick rate", func(c *Config) { c.Engine.TickHz = 0 }},
		{"unknown feed mode", func(c *Config) { c.Feed.Mode = "replay" }},
		{"negative full scale", func(c *Config) { c.Feed.FullScale = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Server.Port = 1234

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}
