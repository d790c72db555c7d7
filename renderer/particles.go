package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/currents/camera"
	"github.com/pthm-cable/currents/particles"
)

// ParticleRenderer draws particle path segments over the texture.
type ParticleRenderer struct {
	palette   Palette
	maxSpeed  float64
	thickness float32
	segments  []particles.Segment
}

// NewParticleRenderer creates a renderer coloring segments by speed.
// Speeds at or above maxSpeed get the last palette color.
func NewParticleRenderer(palette Palette, maxSpeed float64) *ParticleRenderer {
	if maxSpeed <= 0 {
		maxSpeed = 1
	}
	return &ParticleRenderer{
		palette:   palette,
		maxSpeed:  maxSpeed,
		thickness: 1.5,
	}
}

// Draw renders the segments of the last evolve through the view.
func (r *ParticleRenderer) Draw(s *particles.Swarm, view *camera.View, origin rl.Vector2) {
	r.segments = s.Segments(r.segments[:0])
	for _, seg := range r.segments {
		x0, y0 := view.CanvasToScreen(float32(seg.X0), float32(seg.Y0))
		x1, y1 := view.CanvasToScreen(float32(seg.X1), float32(seg.Y1))
		col := r.palette.At(seg.Speed / r.maxSpeed)
		rl.DrawLineEx(
			rl.NewVector2(origin.X+x0, origin.Y+y0),
			rl.NewVector2(origin.X+x1, origin.Y+y1),
			r.thickness*view.Zoom,
			col,
		)
	}
}
