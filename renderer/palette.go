package renderer

import (
	"image/color"
	"math"
)

// Palette maps an intensity in [0, 1] to a color by linear interpolation
// between evenly spaced stops.
type Palette []color.RGBA

// Ocean runs from deep water through the current color to white foam.
var Ocean = Palette{
	{R: 4, G: 12, B: 32, A: 255},
	{R: 13, G: 68, B: 127, A: 255},
	{R: 64, G: 156, B: 196, A: 255},
	{R: 235, G: 248, B: 255, A: 255},
}

// Gray is a plain black to white ramp.
var Gray = Palette{
	{A: 255},
	{R: 255, G: 255, B: 255, A: 255},
}

// At returns the color for intensity v. Values outside [0, 1] and NaN are clamped.
func (p Palette) At(v float64) color.RGBA {
	if len(p) == 0 {
		return color.RGBA{A: 255}
	}
	if len(p) == 1 || !(v > 0) {
		return p[0]
	}
	if v >= 1 {
		return p[len(p)-1]
	}

	pos := v * float64(len(p)-1)
	i := int(pos)
	t := pos - float64(i)
	a, b := p[i], p[i+1]
	return color.RGBA{
		R: lerp8(a.R, b.R, t),
		G: lerp8(a.G, b.G, t),
		B: lerp8(a.B, b.B, t),
		A: lerp8(a.A, b.A, t),
	}
}

// Colorize writes the palette color of each intensity into dst.
// dst must be at least as long as tex.
func (p Palette) Colorize(tex []float64, dst []color.RGBA) {
	for i, v := range tex {
		dst[i] = p.At(v)
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// Foam fades from translucent blue-white to opaque white, for overlays.
var Foam = Palette{
	{R: 160, G: 200, B: 230, A: 60},
	{R: 255, G: 255, B: 255, A: 255},
}
