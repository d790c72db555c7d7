// Package camera provides a 2D view for panning and zooming over a texture.
package camera

// View controls the viewport into a bounded canvas.
// The visible area is kept inside the canvas; there is no wrapping.
type View struct {
	// Position is the view center in canvas coordinates
	X, Y float32

	// Zoom level (1.0 = one canvas pixel per screen pixel)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Canvas dimensions
	CanvasW, CanvasH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a view centered on the canvas, zoomed so the whole canvas fits.
func New(viewportW, viewportH, canvasW, canvasH float32) *View {
	v := &View{
		ViewportW: viewportW,
		ViewportH: viewportH,
		CanvasW:   canvasW,
		CanvasH:   canvasH,
		MaxZoom:   8.0,
	}
	v.MinZoom = v.fitZoom()
	v.Reset()
	return v
}

// fitZoom is the zoom at which the whole canvas is visible.
func (v *View) fitZoom() float32 {
	zx := v.ViewportW / v.CanvasW
	zy := v.ViewportH / v.CanvasH
	if zy < zx {
		return zy
	}
	return zx
}

// CanvasToScreen converts canvas coordinates to screen coordinates.
func (v *View) CanvasToScreen(cx, cy float32) (sx, sy float32) {
	sx = v.ViewportW/2 + (cx-v.X)*v.Zoom
	sy = v.ViewportH/2 + (cy-v.Y)*v.Zoom
	return sx, sy
}

// ScreenToCanvas converts screen coordinates to canvas coordinates.
// The result may lie outside the canvas when the canvas does not fill the viewport.
func (v *View) ScreenToCanvas(sx, sy float32) (cx, cy float32) {
	cx = v.X + (sx-v.ViewportW/2)/v.Zoom
	cy = v.Y + (sy-v.ViewportH/2)/v.Zoom
	return cx, cy
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (v *View) Resize(viewportW, viewportH float32) {
	if viewportW == v.ViewportW && viewportH == v.ViewportH {
		return
	}
	v.ViewportW = viewportW
	v.ViewportH = viewportH
	v.MinZoom = v.fitZoom()
	v.SetZoom(v.Zoom)
}

// Pan moves the view by the given delta in screen pixels.
func (v *View) Pan(dx, dy float32) {
	v.X += dx / v.Zoom
	v.Y += dy / v.Zoom
	v.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (v *View) SetZoom(zoom float32) {
	v.Zoom = clamp(zoom, v.MinZoom, v.MaxZoom)
	v.clampCenter()
}

// ZoomBy multiplies the current zoom by the given factor.
func (v *View) ZoomBy(factor float32) {
	v.SetZoom(v.Zoom * factor)
}

// ZoomAt zooms by factor keeping the canvas point under (sx, sy) fixed where possible.
func (v *View) ZoomAt(sx, sy, factor float32) {
	cx, cy := v.ScreenToCanvas(sx, sy)
	v.Zoom = clamp(v.Zoom*factor, v.MinZoom, v.MaxZoom)
	v.X = cx - (sx-v.ViewportW/2)/v.Zoom
	v.Y = cy - (sy-v.ViewportH/2)/v.Zoom
	v.clampCenter()
}

// Reset returns the view to the canvas center at the fitting zoom.
func (v *View) Reset() {
	v.X = v.CanvasW / 2
	v.Y = v.CanvasH / 2
	v.Zoom = v.MinZoom
}

// VisibleBounds returns the canvas-coordinate bounds of the visible area.
func (v *View) VisibleBounds() (minX, minY, maxX, maxY float32) {
	halfW := v.ViewportW / (2 * v.Zoom)
	halfH := v.ViewportH / (2 * v.Zoom)
	return v.X - halfW, v.Y - halfH, v.X + halfW, v.Y + halfH
}

// clampCenter keeps the visible area inside the canvas on each axis.
// An axis whose visible extent exceeds the canvas is centered instead.
func (v *View) clampCenter() {
	v.X = clampAxis(v.X, v.ViewportW/(2*v.Zoom), v.CanvasW)
	v.Y = clampAxis(v.Y, v.ViewportH/(2*v.Zoom), v.CanvasH)
}

func clampAxis(center, half, size float32) float32 {
	if 2*half >= size {
		return size / 2
	}
	return clamp(center, half, size-half)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
