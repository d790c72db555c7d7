package olic

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// StreamLine is the path traced through a seed pixel.
//
// Points holds 2*SideLength positions: the backward half reversed, then the
// forward half. The seed itself sits between Points[SideLength-1] and
// Points[SideLength] and is kept separately in Seed.
type StreamLine struct {
	Points []r2.Vec
	Seed   r2.Vec
	Owner  int // Droplet whose phase offset drives the ramp filter
}

// sample returns the position at index j of the convolution sequence, which
// is Points with Seed inserted at index SideLength. j must be in [0, 2L].
func (s *StreamLine) sample(j int) r2.Vec {
	half := len(s.Points) / 2
	switch {
	case j < half:
		return s.Points[j]
	case j == half:
		return s.Seed
	default:
		return s.Points[j-1]
	}
}

// ownerAt returns the droplet responsible for px in the current frame:
// the droplet that painted it, else the owner cached when px was traced.
func (e *Engine) ownerAt(px Pixel) int {
	if o := e.source.owner[px]; o != noOwner {
		return o
	}
	return e.seedOwner[px]
}

func (e *Engine) ownerAtPos(p r2.Vec) int {
	px, ok := e.canvas.PixelAt(p)
	if !ok {
		return noOwner
	}
	return e.ownerAt(px)
}

// trace integrates SideLength steps each way from px and finds the droplet
// that owns the resulting streamline. ok is false when neither the path nor
// the seed touches a droplet.
func (e *Engine) trace(px Pixel) (sl StreamLine, ok bool) {
	L := e.params.SideLength
	step := e.params.IntegralStep

	seed := e.canvas.Center(px)
	points := make([]r2.Vec, 2*L)
	fwd, bwd := seed, seed
	found := noOwner

	for i := 0; i < L; i++ {
		fwd = Integrate(e.field, fwd, step)
		bwd = Integrate(e.field, bwd, -step)
		points[L+i] = fwd
		points[L-1-i] = bwd

		// Later hits overwrite earlier ones; forward beats backward within a step
		if o := e.ownerAtPos(bwd); o != noOwner {
			found = o
		}
		if o := e.ownerAtPos(fwd); o != noOwner {
			found = o
		}
	}

	owner := e.ownerAt(px)
	if owner == noOwner {
		if found == noOwner {
			return StreamLine{}, false
		}
		// First touch: later streamlines crossing px this frame see this owner
		e.seedOwner[px] = found
		owner = found
	}

	return StreamLine{Points: points, Seed: seed, Owner: owner}, true
}
