package field

import (
	"math"

	"github.com/ojrac/opensimplex-go"
	"gonum.org/v1/gonum/spatial/r2"
)

// Noise is a smooth synthetic field driven by two opensimplex channels.
// One channel selects the flow angle, the other its magnitude.
type Noise struct {
	angle     opensimplex.Noise
	magnitude opensimplex.Noise
	scale     float64
	strength  float64
	drift     r2.Vec
}

// NewNoise creates a noise field.
// scale is the spatial frequency in cycles per canvas unit, strength the
// maximum speed, drift a constant vector added everywhere.
func NewNoise(seed int64, scale, strength float64, drift r2.Vec) *Noise {
	return &Noise{
		angle:     opensimplex.New(seed),
		magnitude: opensimplex.New(seed + 1),
		scale:     scale,
		strength:  strength,
		drift:     drift,
	}
}

// Velocity samples the field at p.
func (n *Noise) Velocity(p r2.Vec) r2.Vec {
	x := p.X * n.scale
	y := p.Y * n.scale

	// Eval2 returns [-1, 1]
	flowAngle := n.angle.Eval2(x, y) * math.Pi * 2
	flowMagnitude := (n.magnitude.Eval2(x+100, y+100) + 1) * 0.5

	v := r2.Vec{
		X: math.Cos(flowAngle) * flowMagnitude * n.strength,
		Y: math.Sin(flowAngle) * flowMagnitude * n.strength,
	}
	return r2.Add(v, n.drift)
}
