package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/plus3/glecs/ecs"
	"gopkg.in/yaml.v3"
)

type BuildMode string

const (
	Development BuildMode = "development"
	Production  BuildMode = "production"
)

// BuildInfo describes the build that produced the running binary.
type BuildInfo struct {
	Mode    BuildMode `json:"mode" yaml:"mode"`
	Date    time.Time `json:"date" yaml:"date"`
	Version string    `json:"version" yaml:"version"`
}

// Config is the engine configuration. It can be described in JSON or YAML.
type Config struct {
	Build     BuildInfo `json:"build" yaml:"build"`
	BaseURL   string    `json:"baseUrl" yaml:"baseUrl"`
	LoopOnce  bool      `json:"loopOnce" yaml:"loopOnce"`
	ShowDebug bool      `json:"showDebug" yaml:"showDebug"`

	// FrameRate is the number of scene updates per second.
	FrameRate int `json:"frameRate" yaml:"frameRate"`

	// DebugInterval is the number of seconds between debug info reports.
	DebugInterval float64 `json:"debugInterval" yaml:"debugInterval"`
}

// DefaultConfig returns the configuration used for fields a config file
// leaves unset.
func DefaultConfig() Config {
	return Config{
		Build:         BuildInfo{Mode: Development},
		FrameRate:     60,
		DebugInterval: 1,
	}
}

// Validate checks the configuration for values the game loop cannot run with.
func (c Config) Validate() error {
	switch c.Build.Mode {
	case Development, Production:
	default:
		return fmt.Errorf("%w: unknown build mode %q", ecs.ErrConfig, c.Build.Mode)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame rate must be positive (got %d)", ecs.ErrConfig, c.FrameRate)
	}
	if c.FrameDuration() <= 0 {
		return fmt.Errorf("%w: frame rate %d is above one update per nanosecond", ecs.ErrConfig, c.FrameRate)
	}
	if !(c.DebugInterval > 0) || math.IsInf(c.DebugInterval, 1) {
		return fmt.Errorf("%w: debug interval must be positive (got %g)", ecs.ErrConfig, c.DebugInterval)
	}
	if c.DebugDuration() <= 0 {
		return fmt.Errorf("%w: debug interval %g is below one nanosecond", ecs.ErrConfig, c.DebugInterval)
	}
	return nil
}

// FrameDuration is the target time between two scene updates.
func (c Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

// DebugDuration is the time between two debug info reports.
func (c Config) DebugDuration() time.Duration {
	return time.Duration(c.DebugInterval * float64(time.Second))
}

// LoadJSON loads config from JSON reader.
func LoadJSON(r io.Reader) (*Config, error) {
	c := DefaultConfig()
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decode json: %w", ecs.ErrConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadYAML loads config from YAML reader.
func LoadYAML(r io.Reader) (*Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decode yaml: %w", ecs.ErrConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadConfig reads the config file at path, choosing the decoder from the
// file extension (.json, .yaml or .yml).
func LoadConfig(path string) (*Config, error) {
	var load func(io.Reader) (*Config, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		load = LoadJSON
	case ".yaml", ".yml":
		load = LoadYAML
	default:
		return nil, fmt.Errorf("%w: unsupported config file %q", ecs.ErrConfig, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ecs.ErrConfig, err)
	}
	defer f.Close()

	c, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return c, nil
}
