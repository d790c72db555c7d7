package olic

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/currents/field"
)

// Integrate advances p by one classic fourth-order Runge-Kutta step through f.
// A negative step integrates backward. There is no bounds checking; callers
// test containment themselves.
func Integrate(f field.Sampler, p r2.Vec, step float64) r2.Vec {
	k1 := r2.Scale(step, f.Velocity(p))
	k2 := r2.Scale(step, f.Velocity(r2.Add(p, r2.Scale(0.5, k1))))
	k3 := r2.Scale(step, f.Velocity(r2.Add(p, r2.Scale(0.5, k2))))
	k4 := r2.Scale(step, f.Velocity(r2.Add(p, k3)))

	// p + k1/6 + k2/3 + k3/3 + k4/6
	sum := r2.Add(r2.Add(k1, r2.Scale(2, k2)), r2.Add(r2.Scale(2, k3), k4))
	return r2.Add(p, r2.Vec{X: sum.X / 6, Y: sum.Y / 6})
}
