package olic

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/currents/field"
)

func TestRampWeight_Shape(t *testing.T) {
	const L = 4

	if w := rampWeight(L, L); w != 1 {
		t.Errorf("expected peak 1 at centre, got %f", w)
	}
	if w := rampWeight(0, L); math.Abs(w-1.0/(L+1)) > 1e-12 {
		t.Errorf("expected 1/(L+1) at window start, got %f", w)
	}
	for k := 1; k <= L; k++ {
		if rampWeight(L-k, L) != rampWeight(L+k, L) {
			t.Errorf("expected symmetric weights at +-%d", k)
		}
		if rampWeight(L-k, L) >= rampWeight(L-k+1, L) {
			t.Errorf("expected weight to rise towards the centre at %d", L-k)
		}
	}
	// Periodic in 2L, including negative indices
	for k := -3 * L; k < 3*L; k++ {
		if rampWeight(k, L) != rampWeight(k+2*L, L) {
			t.Errorf("expected period 2L at %d", k)
		}
		if rampWeight(k, L) <= 0 {
			t.Errorf("expected positive weight at %d", k)
		}
	}
}

// tinyEngine is a 3x1 canvas with one lit pixel at x=0 and unit eastward flow.
func tinyEngine(t *testing.T) (*Engine, StreamLine) {
	t.Helper()
	p := Params{SideLength: 1, MaxHitNum: 1, DimPixel: 1, IntegralStep: 1, Width: 3, Height: 1}
	e := newTestEngine(t, p, field.Uniform{V: r2.Vec{X: 1}})
	e.source.droplets = []Droplet{{X: 0, Y: 0}}
	e.paint(0, 0, 0)

	seed, _ := e.canvas.Index(1, 0)
	sl, ok := e.trace(seed)
	if !ok {
		t.Fatal("expected trace to succeed")
	}
	return e, sl
}

func TestConvolve_PhaseShiftsPeak(t *testing.T) {
	e, sl := tinyEngine(t)

	// Weights (0.5, 1, 0.5): only the first sample is lit
	if got := e.convolveAt(&sl, 1, 0); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("expected 0.25 at offset 0, got %f", got)
	}
	// Weights (1, 0.5, 1)
	if got := e.convolveAt(&sl, 1, 1); math.Abs(got-0.4) > 1e-12 {
		t.Errorf("expected 0.4 at offset 1, got %f", got)
	}
	// Offsets are periodic in 2L
	if e.convolveAt(&sl, 1, 2) != e.convolveAt(&sl, 1, 0) {
		t.Error("expected offset 2 to match offset 0")
	}
}

func TestConvolve_SkipsOffCanvasSamples(t *testing.T) {
	p := Params{SideLength: 3, MaxHitNum: 1, DimPixel: 1, IntegralStep: 1, Width: 3, Height: 1}
	e := newTestEngine(t, p, field.Uniform{V: r2.Vec{X: 1}})
	e.source.droplets = []Droplet{{}}
	e.paint(2, 0, 0)

	seed, _ := e.canvas.Index(1, 0)
	sl, ok := e.trace(seed)
	if !ok {
		t.Fatal("expected trace to succeed")
	}

	// In-canvas samples are x=0,1,2 at indices 2,3,4 with weights 3/4, 1, 3/4
	want := 0.75 / 2.5
	if got := e.convolveAt(&sl, 3, 0); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, got)
	}
}

func TestConvolve_AllLitIsOne(t *testing.T) {
	p := testParams(12, 12)
	p.DropletRate = 1
	p.DimPixel = 1
	e := newTestEngine(t, p, swirl())

	for i, v := range e.Refresh(3) {
		if v != 1 {
			t.Fatalf("expected 1 at pixel %d on a saturated source, got %f", i, v)
		}
	}
}

func TestConvolve_ExtraPointWindowIsTruncated(t *testing.T) {
	e, sl := tinyEngine(t)

	// Centre on the first sample: window covers indices 0..1 with shift -1
	// weights rampWeight(1,1)=1 and rampWeight(2,1)=0.5
	want := 1.0 / 1.5
	if got := e.convolveAt(&sl, 0, 0); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %f, got %f", want, got)
	}
}
