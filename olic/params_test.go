package olic

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		valid  bool
	}{
		{"defaults", func(*Params) {}, true},
		{"zero width", func(p *Params) { p.Width = 0 }, false},
		{"negative height", func(p *Params) { p.Height = -4 }, false},
		{"zero side length", func(p *Params) { p.SideLength = 0 }, false},
		{"zero droplet size", func(p *Params) { p.DimPixel = 0 }, false},
		{"negative max hit", func(p *Params) { p.MaxHitNum = -1 }, false},
		{"zero max hit", func(p *Params) { p.MaxHitNum = 0 }, true},
		{"rate above one", func(p *Params) { p.DropletRate = 1.01 }, false},
		{"rate below zero", func(p *Params) { p.DropletRate = -0.1 }, false},
		{"rate NaN", func(p *Params) { p.DropletRate = math.NaN() }, false},
		{"rate bounds", func(p *Params) { p.DropletRate = 1 }, true},
		{"zero step", func(p *Params) { p.IntegralStep = 0 }, false},
		{"infinite step", func(p *Params) { p.IntegralStep = math.Inf(1) }, false},
		{"negative step", func(p *Params) { p.IntegralStep = -0.5 }, true},
		{"extra points past side", func(p *Params) { p.ExtraPoints = 31 }, false},
		{"odd canvas", func(p *Params) { p.Width, p.Height = 7, 5 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			tc.mutate(&p)
			err := p.Validate()
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestParams_GlobalOffset(t *testing.T) {
	p := DefaultParams()
	p.SideLength = 5

	tests := []struct{ phase, want int }{
		{0, 0}, {3, 3}, {10, 0}, {13, 3}, {-1, 9}, {-10, 0},
	}
	for _, tc := range tests {
		if got := p.GlobalOffset(tc.phase); got != tc.want {
			t.Errorf("GlobalOffset(%d): expected %d, got %d", tc.phase, tc.want, got)
		}
	}
}

func TestCanvas_PixelAt(t *testing.T) {
	c := Canvas{Width: 4, Height: 3}

	tests := []struct {
		p      r2.Vec
		x, y   int
		inside bool
	}{
		{r2.Vec{X: 0, Y: 0}, 0, 0, true},
		{r2.Vec{X: 1.4, Y: 1.6}, 1, 2, true},
		{r2.Vec{X: 3.49, Y: 2.49}, 3, 2, true},
		{r2.Vec{X: -0.4, Y: 0}, 0, 0, true},
		{r2.Vec{X: -0.5, Y: 0}, 0, 0, false},
		{r2.Vec{X: 3.5, Y: 0}, 0, 0, false},
		{r2.Vec{X: 0, Y: 2.5}, 0, 0, false},
		{r2.Vec{X: math.NaN(), Y: 0}, 0, 0, false},
		{r2.Vec{X: math.Inf(1), Y: 0}, 0, 0, false},
	}

	for _, tc := range tests {
		px, ok := c.PixelAt(tc.p)
		if ok != tc.inside {
			t.Errorf("PixelAt(%v): expected inside=%v, got %v", tc.p, tc.inside, ok)
			continue
		}
		if !ok {
			continue
		}
		x, y := c.Coords(px)
		if x != tc.x || y != tc.y {
			t.Errorf("PixelAt(%v): expected (%d,%d), got (%d,%d)", tc.p, tc.x, tc.y, x, y)
		}
	}
}

func TestCanvas_IndexRoundTrip(t *testing.T) {
	c := Canvas{Width: 5, Height: 4}

	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			px, ok := c.Index(x, y)
			if !ok || int(px) != x+y*c.Width {
				t.Fatalf("Index(%d,%d): got %d ok=%v", x, y, px, ok)
			}
			gx, gy := c.Coords(px)
			if gx != x || gy != y {
				t.Errorf("Coords(%d): expected (%d,%d), got (%d,%d)", px, x, y, gx, gy)
			}
		}
	}
	if _, ok := c.Index(5, 0); ok {
		t.Error("expected (5,0) to be off the canvas")
	}
}
