package olic

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is wrapped by every Params validation failure.
var ErrInvalidParams = errors.New("invalid olic params")

// Params holds the algorithm parameters. It is fixed for the lifetime of an
// Engine.
type Params struct {
	SideLength   int     `yaml:"side_length"`   // Integration steps in each direction (streamline half-length L)
	MaxHitNum    int     `yaml:"max_hit_num"`   // Times a pixel may be used per frame (1 = classic OLIC)
	DimPixel     int     `yaml:"dim_pixel"`     // Droplet block side length in pixels
	DropletRate  float64 `yaml:"droplet_rate"`  // Expected fraction of pixels that seed a droplet, [0, 1]
	IntegralStep float64 `yaml:"integral_step"` // Runge-Kutta step in canvas units (0.5 recommended)
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	ExtraPoints  int     `yaml:"extra_points"` // Streamline points convolved per side besides the seed (0 = seed only)
	Seed         int64   `yaml:"seed"`         // Droplet placement RNG seed
}

// DefaultParams returns the classic OLIC settings on a 1024x1024 canvas.
func DefaultParams() Params {
	return Params{
		SideLength:   30,
		MaxHitNum:    1,
		DimPixel:     3,
		DropletRate:  0.1,
		IntegralStep: 0.5,
		Width:        1024,
		Height:       1024,
	}
}

// Validate reports the first structural problem with p.
func (p Params) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: canvas must be positive, got %dx%d", ErrInvalidParams, p.Width, p.Height)
	case p.SideLength <= 0:
		return fmt.Errorf("%w: side_length must be positive, got %d", ErrInvalidParams, p.SideLength)
	case p.DimPixel <= 0:
		return fmt.Errorf("%w: dim_pixel must be positive, got %d", ErrInvalidParams, p.DimPixel)
	case p.MaxHitNum < 0:
		return fmt.Errorf("%w: max_hit_num must not be negative, got %d", ErrInvalidParams, p.MaxHitNum)
	case math.IsNaN(p.DropletRate) || p.DropletRate < 0 || p.DropletRate > 1:
		return fmt.Errorf("%w: droplet_rate must be in [0, 1], got %g", ErrInvalidParams, p.DropletRate)
	case p.IntegralStep == 0 || math.IsNaN(p.IntegralStep) || math.IsInf(p.IntegralStep, 0):
		return fmt.Errorf("%w: integral_step must be finite and non-zero, got %g", ErrInvalidParams, p.IntegralStep)
	case p.ExtraPoints < 0 || p.ExtraPoints > p.SideLength:
		return fmt.Errorf("%w: extra_points must be in [0, side_length], got %d", ErrInvalidParams, p.ExtraPoints)
	}
	return nil
}

// Period is the number of distinct ramp offsets, and so the length of one
// animation cycle in phases.
func (p Params) Period() int {
	return 2 * p.SideLength
}

// GlobalOffset maps an animation phase onto a ramp offset in [0, Period).
func (p Params) GlobalOffset(phase int) int {
	return mod(phase, p.Period())
}

func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
