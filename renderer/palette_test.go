package renderer

import (
	"image/color"
	"math"
	"testing"
)

func TestPalette_Endpoints(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want color.RGBA
	}{
		{"zero", 0, Ocean[0]},
		{"one", 1, Ocean[len(Ocean)-1]},
		{"below", -3, Ocean[0]},
		{"above", 7, Ocean[len(Ocean)-1]},
		{"nan", math.NaN(), Ocean[0]},
		{"middle stop", 1.0 / 3, Ocean[1]},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Ocean.At(tc.v); got != tc.want {
				t.Errorf("At(%v) = %v, want %v", tc.v, got, tc.want)
			}
		})
	}
}

func TestPalette_Interpolates(t *testing.T) {
	got := Gray.At(0.5)
	if got.R != 128 || got.G != 128 || got.B != 128 || got.A != 255 {
		t.Errorf("expected mid gray, got %v", got)
	}
}

func TestPalette_Colorize(t *testing.T) {
	tex := []float64{0, 1, 0.25}
	dst := make([]color.RGBA, 4)

	Gray.Colorize(tex, dst)

	if dst[0] != Gray[0] || dst[1] != Gray[1] {
		t.Errorf("unexpected endpoints %v %v", dst[0], dst[1])
	}
	if dst[2].R != 64 {
		t.Errorf("expected 64 at quarter intensity, got %d", dst[2].R)
	}
	if dst[3] != (color.RGBA{}) {
		t.Errorf("expected trailing pixel untouched, got %v", dst[3])
	}
}

func TestPalette_Empty(t *testing.T) {
	if got := (Palette{}).At(0.5); got != (color.RGBA{A: 255}) {
		t.Errorf("expected opaque black, got %v", got)
	}
}
