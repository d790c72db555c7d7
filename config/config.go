// Package config provides configuration loading for flow-texture runs.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/currents/field"
	"github.com/pthm-cable/currents/olic"
	"github.com/pthm-cable/currents/particles"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all run configuration.
type Config struct {
	OLIC      olic.Params      `yaml:"olic"`
	Field     field.Config     `yaml:"field"`
	Animation AnimationConfig  `yaml:"animation"`
	Preview   PreviewConfig    `yaml:"preview"`
	Particles particles.Config `yaml:"particles"`
	Telemetry TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// AnimationConfig controls how phases are produced.
type AnimationConfig struct {
	Phases int     `yaml:"phases"` // Phases to compute per run (0 = one full period)
	FPS    float64 `yaml:"fps"`    // Playback rate in the preview, phases per second
}

// PreviewConfig holds display settings for the preview tool.
type PreviewConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int  `yaml:"perf_window"` // Frames averaged by the perf collector
	LogFrames  bool `yaml:"log_frames"`  // Log stats for every computed frame
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Period int // Distinct ramp offsets, 2*side_length
	Phases int // Effective phase count per run
	Pixels int // Canvas size
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks every section that can fail at construction time.
func (c *Config) Validate() error {
	if err := c.OLIC.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Field.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Particles.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Animation.Phases < 0 {
		return fmt.Errorf("config: animation.phases must not be negative, got %d", c.Animation.Phases)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Period = c.OLIC.Period()
	c.Derived.Phases = c.Animation.Phases
	if c.Derived.Phases == 0 {
		c.Derived.Phases = c.Derived.Period
	}
	c.Derived.Pixels = c.OLIC.Width * c.OLIC.Height

	if c.Animation.FPS <= 0 {
		c.Animation.FPS = 12
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = c.Derived.Period
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
