package field

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
)

// Source names accepted by Config.Source.
const (
	SourceNoise   = "noise"
	SourceUniform = "uniform"
	SourceGrid    = "grid"
)

// Config selects and parameterizes the field a run visualizes.
type Config struct {
	Source  string        `yaml:"source"` // noise | uniform | grid
	Noise   NoiseConfig   `yaml:"noise"`
	Uniform UniformConfig `yaml:"uniform"`
	Grid    GridConfig    `yaml:"grid"`
}

// NoiseConfig parameterizes the synthetic opensimplex field.
type NoiseConfig struct {
	Seed     int64   `yaml:"seed"`
	Scale    float64 `yaml:"scale"`    // Spatial frequency per canvas unit
	Strength float64 `yaml:"strength"` // Peak speed in canvas units per step
	DriftX   float64 `yaml:"drift_x"`
	DriftY   float64 `yaml:"drift_y"`
}

// UniformConfig holds the constant vector of a uniform field.
type UniformConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// GridConfig describes a gridded dataset exported as CSV.
type GridConfig struct {
	Path          string  `yaml:"path"`
	Convention    string  `yaml:"convention"`    // cf | south_sea
	Interpolation string  `yaml:"interpolation"` // bilinear | nearest
	Level         string  `yaml:"level"`         // Level slice to keep (empty = only one present)
	Time          string  `yaml:"time"`          // Time slice to keep (empty = only one present)
	VelocityScale float64 `yaml:"velocity_scale"`
}

// Validate checks the parts of the config that can be checked without I/O.
func (c Config) Validate() error {
	switch c.Source {
	case SourceNoise, SourceUniform:
	case SourceGrid:
		if c.Grid.Path == "" {
			return fmt.Errorf("field: grid source requires grid.path")
		}
		if _, err := LookupConvention(c.Grid.Convention); err != nil {
			return fmt.Errorf("field: %w", err)
		}
		if _, err := ParseInterpolation(c.Grid.Interpolation); err != nil {
			return fmt.Errorf("field: %w", err)
		}
	default:
		return fmt.Errorf("field: unknown source %q", c.Source)
	}
	return nil
}

// New builds the configured sampler for a width x height canvas.
func New(cfg Config, width, height int) (Sampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Source {
	case SourceUniform:
		return Uniform{V: r2.Vec{X: cfg.Uniform.X, Y: cfg.Uniform.Y}}, nil
	case SourceGrid:
		return newGridSampler(cfg.Grid, width, height)
	default:
		n := cfg.Noise
		return NewNoise(n.Seed, n.Scale, n.Strength, r2.Vec{X: n.DriftX, Y: n.DriftY}), nil
	}
}

func newGridSampler(cfg GridConfig, width, height int) (Sampler, error) {
	conv, err := LookupConvention(cfg.Convention)
	if err != nil {
		return nil, err
	}
	mode, err := ParseInterpolation(cfg.Interpolation)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening grid: %w", err)
	}
	defer f.Close()

	g, err := LoadGridCSV(f, conv, Selection{Level: cfg.Level, Time: cfg.Time})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", cfg.Path, err)
	}
	scale := cfg.VelocityScale
	if scale == 0 {
		scale = 1
	}
	return g.Sampler(width, height, mode, scale), nil
}
