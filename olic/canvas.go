package olic

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Pixel is a flat row-major index into a Canvas. Every per-pixel array of the
// engine is indexed by Pixel; obtain one through Canvas.Index or
// Canvas.PixelAt rather than computing it by hand.
type Pixel int

// Canvas is the fixed pixel grid shared by all textures.
type Canvas struct {
	Width, Height int
}

// Size returns the number of pixels.
func (c Canvas) Size() int {
	return c.Width * c.Height
}

// Contains reports whether (x, y) is on the canvas.
func (c Canvas) Contains(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// Index returns the pixel at (x, y).
func (c Canvas) Index(x, y int) (Pixel, bool) {
	if !c.Contains(x, y) {
		return 0, false
	}
	return Pixel(x + y*c.Width), true
}

// Coords returns the column and row of px.
func (c Canvas) Coords(px Pixel) (x, y int) {
	return int(px) % c.Width, int(px) / c.Width
}

// Center returns the continuous position of px.
func (c Canvas) Center(px Pixel) r2.Vec {
	x, y := c.Coords(px)
	return r2.Vec{X: float64(x), Y: float64(y)}
}

// PixelAt rounds a continuous position to the nearest pixel.
// ok is false when the position is off the canvas or not finite.
func (c Canvas) PixelAt(p r2.Vec) (px Pixel, ok bool) {
	rx, ry := math.Round(p.X), math.Round(p.Y)
	// Written so NaN fails both comparisons
	if !(rx >= 0 && rx < float64(c.Width) && ry >= 0 && ry < float64(c.Height)) {
		return 0, false
	}
	return Pixel(int(rx) + int(ry)*c.Width), true
}
