package field

import (
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const cfGrid = `lon,lat,u,v
10,20,1,0
11,20,3,0
10,21,1,2
11,21,,
`

func TestLoadGridCSV_Layout(t *testing.T) {
	g, err := LoadGridCSV(strings.NewReader(cfGrid), CF, Selection{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.NX() != 2 || g.NY() != 2 {
		t.Fatalf("expected 2x2 grid, got %dx%d", g.NX(), g.NY())
	}
	if g.Lon[0] != 10 || g.Lon[1] != 11 {
		t.Errorf("expected ascending longitudes, got %v", g.Lon)
	}
	if g.Lat[0] != 21 || g.Lat[1] != 20 {
		t.Errorf("expected north-first latitudes, got %v", g.Lat)
	}

	// Row 0 is lat 21
	v, ok := g.At(0, 0)
	if !ok || v != (r2.Vec{X: 1, Y: 2}) {
		t.Errorf("expected (1,2) at (0,0), got %v ok=%v", v, ok)
	}
	if _, ok := g.At(1, 0); ok {
		t.Error("expected missing sample at (1,0)")
	}
	if _, ok := g.At(2, 0); ok {
		t.Error("expected out-of-range lookup to fail")
	}
}

func TestLoadGridCSV_SouthSeaConvention(t *testing.T) {
	data := `x,y,z,t,u,v
0,0,5,0,1,1
1,0,5,0,2,2
0,0,10,0,9,9
1,0,10,0,9,9
`
	g, err := LoadGridCSV(strings.NewReader(data), SouthSea, Selection{Level: "5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.NX() != 2 || g.NY() != 1 {
		t.Fatalf("expected 2x1 grid, got %dx%d", g.NX(), g.NY())
	}
	if v, _ := g.At(1, 0); v.X != 2 {
		t.Errorf("expected level 5 value 2, got %v", v)
	}
}

func TestLoadGridCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		conv Convention
		sel  Selection
	}{
		{"wrong convention", cfGrid, SouthSea, Selection{}},
		{"missing velocity", "lon,lat,u\n0,0,1\n", CF, Selection{}},
		{"bad longitude", "lon,lat,u,v\nabc,0,1,1\n", CF, Selection{}},
		{"NaN longitude", "lon,lat,u,v\n0,0,1,1\n1,0,2,2\nNaN,0,9,9\n", CF, Selection{}},
		{"infinite latitude", "lon,lat,u,v\n0,0,1,1\n0,+Inf,2,2\n", CF, Selection{}},
		{"negative infinite longitude", "lon,lat,u,v\n-Inf,0,1,1\n", CF, Selection{}},
		{"duplicates without selection", "lon,lat,time,u,v\n0,0,a,1,1\n0,0,b,1,1\n", CF, Selection{}},
		{"selection without column", cfGrid, CF, Selection{Time: "1"}},
		{"selection matches nothing", "lon,lat,time,u,v\n0,0,a,1,1\n", CF, Selection{Time: "b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadGridCSV(strings.NewReader(tc.data), tc.conv, tc.sel); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadGridCSV_NonFiniteCoordinateLine(t *testing.T) {
	data := "lon,lat,u,v\n0,0,1,1\n1,0,2,2\nNaN,0,9,9\n"
	_, err := LoadGridCSV(strings.NewReader(data), CF, Selection{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "line 4") {
		t.Errorf("expected error to name line 4, got %v", err)
	}
}

func TestGridSampler_BilinearMidpoint(t *testing.T) {
	g := &Grid{
		Lon: []float64{0, 1},
		Lat: []float64{1, 0},
		U:   []float64{0, 2, 0, 2},
		V:   []float64{0, 0, 4, 4},
	}
	// 3x3 canvas: pixel 1 is halfway between grid nodes
	s := g.Sampler(3, 3, Bilinear, 1)

	v := s.Velocity(r2.Vec{X: 1, Y: 1})
	if math.Abs(v.X-1) > 1e-12 || math.Abs(v.Y+2) > 1e-12 {
		t.Errorf("expected (1,-2), got %v", v)
	}

	corner := s.Velocity(r2.Vec{X: 2, Y: 2})
	if math.Abs(corner.X-2) > 1e-12 || math.Abs(corner.Y+4) > 1e-12 {
		t.Errorf("expected (2,-4) at far corner, got %v", corner)
	}

	if out := s.Velocity(r2.Vec{X: -1, Y: 0}); out != (r2.Vec{}) {
		t.Errorf("expected zero outside grid, got %v", out)
	}
}

func TestGridSampler_MissingReadsAsZero(t *testing.T) {
	nan := math.NaN()
	g := &Grid{
		Lon: []float64{0, 1},
		Lat: []float64{0},
		U:   []float64{2, nan},
		V:   []float64{0, nan},
	}
	s := g.Sampler(3, 1, Bilinear, 1)

	v := s.Velocity(r2.Vec{X: 1, Y: 0})
	if math.Abs(v.X-1) > 1e-12 {
		t.Errorf("expected missing corner to halve the blend, got %v", v)
	}

	n := g.Sampler(3, 1, Nearest, 1)
	if v := n.Velocity(r2.Vec{X: 2, Y: 0}); v != (r2.Vec{}) {
		t.Errorf("expected zero at missing node, got %v", v)
	}
}

func TestGridSampler_VelocityScale(t *testing.T) {
	g := &Grid{Lon: []float64{0}, Lat: []float64{0}, U: []float64{1}, V: []float64{1}}
	s := g.Sampler(1, 1, Nearest, 0.5)

	v := s.Velocity(r2.Vec{})
	if v.X != 0.5 || v.Y != -0.5 {
		t.Errorf("expected (0.5,-0.5), got %v", v)
	}
}
