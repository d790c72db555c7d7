package olic

// Phase names reported to a PhaseTimer during Refresh.
const (
	PhaseReset       = "reset"
	PhaseOrchestrate = "orchestrate"
)

// computeFrame covers the canvas with convolved streamlines.
//
// Each pixel may seed a streamline only while its hit count is below
// MaxHitNum, and seeding marks the pixel. Scanning row by row would let the
// top of the canvas claim most of the streamlines, so the canvas is split into
// four quadrants and pixel i of every quadrant is visited together.
func (e *Engine) computeFrame(offset int) FrameStats {
	var stats FrameStats
	w, h := e.params.Width, e.params.Height
	halfW, halfH := w/2, h/2

	for i := 0; i < halfW*halfH; i++ {
		x, y := i%halfW, i/halfW
		e.visit(x, y, offset, &stats)
		e.visit(x+halfW, y, offset, &stats)
		e.visit(x, y+halfH, offset, &stats)
		e.visit(x+halfW, y+halfH, offset, &stats)
	}

	// Odd dimensions leave a last column and/or row outside the quadrants
	if w%2 == 1 {
		for y := 0; y < 2*halfH; y++ {
			e.visit(w-1, y, offset, &stats)
		}
	}
	if h%2 == 1 {
		for x := 0; x < w; x++ {
			e.visit(x, h-1, offset, &stats)
		}
	}
	return stats
}

func (e *Engine) visit(x, y, offset int, stats *FrameStats) {
	px, ok := e.canvas.Index(x, y)
	if !ok || e.hits[px] >= e.params.MaxHitNum {
		return
	}

	stats.Traced++
	if sl, ok := e.trace(px); ok {
		L := e.params.SideLength
		total := offset + e.source.droplets[sl.Owner].PhaseOffset
		e.write(px, e.convolveAt(&sl, L, total), stats)
		stats.Written++
		if e.params.ExtraPoints > 0 {
			e.spread(&sl, total, stats)
		}
	}
	e.hits[px]++
}

// spread reuses a streamline for up to ExtraPoints samples on either side of
// its seed, each convolved with the ramp window re-centred on that sample.
func (e *Engine) spread(sl *StreamLine, offset int, stats *FrameStats) {
	L := e.params.SideLength
	for k := 1; k <= e.params.ExtraPoints; k++ {
		for _, center := range [2]int{L - k, L + k} {
			px, ok := e.canvas.PixelAt(sl.sample(center))
			if !ok || e.hits[px] >= e.params.MaxHitNum {
				continue
			}
			e.write(px, e.convolveAt(sl, center, offset), stats)
			e.hits[px]++
			stats.Extra++
		}
	}
}

// write stores v at px; later writes to a pixel replace earlier ones.
func (e *Engine) write(px Pixel, v float64, stats *FrameStats) {
	e.result[px] = v
	if !e.filled[px] {
		e.filled[px] = true
		stats.Filled++
	}
}
