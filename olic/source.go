package olic

import (
	"math/rand"
)

// noOwner marks a pixel that no droplet is responsible for.
const noOwner = -1

// Droplet is a block of full-intensity noise on the source texture.
// PhaseOffset shifts this droplet's ramp filter so neighbouring droplets do
// not pulse in lockstep.
type Droplet struct {
	X, Y        int
	PhaseOffset int // [0, 2*SideLength)
}

// sourceTexture holds the droplet pattern and, per pixel, the index of the
// droplet that painted it.
type sourceTexture struct {
	droplets  []Droplet
	intensity []float64
	owner     []int
}

// buildSource scatters droplets over the canvas in scan order.
//
// Each pixel draws one sample in [0, 1); the pixel anchors a droplet when the
// sample is at least 1-DropletRate and the DimPixel block fits on the canvas.
// Blocks are not checked for overlap: a later droplet takes over shared pixels.
func buildSource(p Params, rng *rand.Rand) sourceTexture {
	c := Canvas{Width: p.Width, Height: p.Height}
	st := sourceTexture{
		intensity: make([]float64, c.Size()),
		owner:     make([]int, c.Size()),
	}
	for i := range st.owner {
		st.owner[i] = noOwner
	}

	threshold := 1 - p.DropletRate
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			if rng.Float64() < threshold {
				continue
			}
			if x+p.DimPixel > p.Width || y+p.DimPixel > p.Height {
				continue
			}

			st.droplets = append(st.droplets, Droplet{
				X:           x,
				Y:           y,
				PhaseOffset: rng.Intn(p.Period()),
			})
			idx := len(st.droplets) - 1

			for dy := 0; dy < p.DimPixel; dy++ {
				row := (y + dy) * p.Width
				for dx := 0; dx < p.DimPixel; dx++ {
					st.intensity[row+x+dx] = 1.0
					st.owner[row+x+dx] = idx
				}
			}
		}
	}
	return st
}
