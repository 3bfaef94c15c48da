// Package config provides configuration loading for the orientation server.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"acc-orientation/internal/geometry/vector"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all server configuration parameters.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Engine    EngineConfig    `yaml:"engine"`
	Reference ReferenceConfig `yaml:"reference"`
	Feed      FeedConfig      `yaml:"feed"`
	Output    OutputConfig    `yaml:"output"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type EngineConfig struct {
	TickHz float64 `yaml:"tick_hz"`
}

// ReferenceConfig holds the calibration reference vectors.
type ReferenceConfig struct {
	Up      VectorConfig `yaml:"up"`
	UpFront VectorConfig `yaml:"up_front"`
}

// FeedConfig selects and tunes the sample source. Mode "synthetic" runs the
// built-in tumbling-device generator at the engine tick rate; "manual" waits
// for measurements posted over the API.
type FeedConfig struct {
	Mode      string       `yaml:"mode"`
	SweepHz   float64      `yaml:"sweep_hz"`
	Surge     float64      `yaml:"surge"`
	Bias      VectorConfig `yaml:"bias"`
	FullScale float64      `yaml:"full_scale"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// VectorConfig is a Vec3 in YAML form.
type VectorConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Vec3 converts the YAML form to the geometry type.
func (v VectorConfig) Vec3() vector.Vec3 {
	return vector.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the engine or feed cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Engine.TickHz <= 0 {
		return fmt.Errorf("engine.tick_hz must be positive, got %v", c.Engine.TickHz)
	}
	if c.Feed.Mode != "synthetic" && c.Feed.Mode != "manual" {
		return fmt.Errorf("feed.mode must be synthetic or manual, got %q", c.Feed.Mode)
	}
	if c.Feed.FullScale <= 0 {
		return fmt.Errorf("feed.full_scale must be positive, got %v", c.Feed.FullScale)
	}
	return nil
}

// WriteYAML saves the configuration to a file, for capturing the effective
// settings next to a recording.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
