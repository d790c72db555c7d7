package olic

import "math"

// rampWeight is the triangular filter evaluated at shifted index k over a
// sequence of 2L+1 samples. It peaks at 1 when k = L (mod 2L) and falls
// linearly to 1/(L+1) at the window ends, so it is never zero.
func rampWeight(k, L int) float64 {
	d := mod(k, 2*L)
	return 1 - math.Abs(float64(d-L))/float64(L+1)
}

// convolveAt returns the ramp-filtered intensity at index center of the
// convolution sequence of sl (see StreamLine.sample). The window spans L
// samples on each side of center, truncated to the streamline. offset is the
// owning droplet's phase offset plus the frame's global offset.
//
// Samples off the canvas are skipped in both sums. The sample at center must
// be on the canvas, which keeps the weight sum positive.
func (e *Engine) convolveAt(sl *StreamLine, center, offset int) float64 {
	L := e.params.SideLength
	lo, hi := max(center-L, 0), min(center+L, 2*L)
	shift := center - L + offset

	var intensity, acc float64
	for j := lo; j <= hi; j++ {
		px, ok := e.canvas.PixelAt(sl.sample(j))
		if !ok {
			continue
		}
		w := rampWeight(j-shift, L)
		intensity += w * e.source.intensity[px]
		acc += w
	}
	return intensity / acc
}
