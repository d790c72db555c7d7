// Package renderer draws flow textures with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/currents/camera"
	"github.com/pthm-cable/currents/olic"
)

// TextureRenderer keeps a GPU texture in sync with CPU-side intensity frames.
type TextureRenderer struct {
	palette Palette
	pixels  []color.RGBA
	texture rl.Texture2D
	width   int
	height  int

	initialized bool
}

// NewTextureRenderer creates a renderer for a canvas of the given size.
func NewTextureRenderer(width, height int, palette Palette) *TextureRenderer {
	return &TextureRenderer{
		palette: palette,
		pixels:  make([]color.RGBA, width*height),
		width:   width,
		height:  height,
	}
}

// Init allocates the GPU texture (must be called after the raylib window is created).
func (r *TextureRenderer) Init() {
	if r.initialized {
		return
	}

	img := rl.GenImageColor(r.width, r.height, rl.Black)
	defer rl.UnloadImage(img)

	r.texture = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.texture, rl.FilterBilinear)
	r.initialized = true
}

// SetPalette changes the palette used by subsequent uploads.
func (r *TextureRenderer) SetPalette(p Palette) {
	r.palette = p
}

// Upload colorizes a frame and copies it to the GPU.
func (r *TextureRenderer) Upload(tex olic.Texture) {
	if !r.initialized {
		r.Init()
	}
	r.palette.Colorize(tex, r.pixels)
	rl.UpdateTexture(r.texture, r.pixels)
}

// Draw renders the texture through the view, with the viewport's top-left at origin.
func (r *TextureRenderer) Draw(view *camera.View, origin rl.Vector2) {
	if !r.initialized {
		return
	}

	x0, y0 := view.CanvasToScreen(0, 0)
	x1, y1 := view.CanvasToScreen(float32(r.width), float32(r.height))

	src := rl.NewRectangle(0, 0, float32(r.width), float32(r.height))
	dst := rl.NewRectangle(origin.X+x0, origin.Y+y0, x1-x0, y1-y0)
	rl.DrawTexturePro(r.texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

// Unload frees resources.
func (r *TextureRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.texture)
		r.initialized = false
	}
}
