// Package field provides vector field samplers consumed by the OLIC engine.
//
// Positions and velocities are expressed in canvas units: a position (x, y)
// addresses the pixel grid of the texture being synthesized, and a velocity is
// the displacement per unit integration step.
package field

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Sampler provides flow vectors at canvas positions.
// Implementations must return a finite vector for every position an
// integrator may visit, including positions outside the canvas.
type Sampler interface {
	Velocity(p r2.Vec) r2.Vec
}

// Func adapts an ordinary function to the Sampler interface.
type Func func(p r2.Vec) r2.Vec

// Velocity calls f(p).
func (f Func) Velocity(p r2.Vec) r2.Vec {
	return f(p)
}

// Uniform is a constant field.
type Uniform struct {
	V r2.Vec
}

// Velocity returns the constant vector regardless of position.
func (u Uniform) Velocity(r2.Vec) r2.Vec {
	return u.V
}

// Counting wraps a Sampler and counts Velocity calls.
// Useful for asserting that cached work does not touch the field.
type Counting struct {
	Sampler Sampler
	Calls   int
}

// Velocity forwards to the wrapped sampler.
func (c *Counting) Velocity(p r2.Vec) r2.Vec {
	c.Calls++
	return c.Sampler.Velocity(p)
}

// MaxSpeed returns the largest velocity magnitude found on a lattice of
// pixel centers spaced stride apart over a width x height canvas.
func MaxSpeed(s Sampler, width, height, stride int) float64 {
	if stride < 1 {
		stride = 1
	}
	var fastest float64
	for y := 0; y < height; y += stride {
		for x := 0; x < width; x += stride {
			if m := r2.Norm(s.Velocity(r2.Vec{X: float64(x), Y: float64(y)})); m > fastest {
				fastest = m
			}
		}
	}
	return fastest
}
