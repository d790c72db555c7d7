// Package olic synthesizes Oriented Line Integral Convolution textures.
//
// An Engine scatters sparse droplets over a canvas, traces a streamline of a
// vector field through each pixel and convolves the droplet pattern along it
// with a ramp filter. Shifting the ramp by an animation phase makes the
// droplets appear to flow; frames are cached per phase.
//
//	eng, err := olic.New(olic.DefaultParams(), sampler)
//	if err != nil { ... }
//	for phase := 0; phase < eng.Params().Period(); phase++ {
//		upload(eng.Refresh(phase))
//	}
//
// An Engine is not safe for concurrent use. Refresh blocks for a full
// recomputation on a cache miss; run it off the render thread if needed.
package olic

import (
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/currents/field"
)

// ErrNilField is returned by New when no sampler is given.
var ErrNilField = errors.New("olic: nil field sampler")

// Texture is a row-major intensity image with values in [0, 1].
type Texture []float64

// PhaseTimer receives phase boundaries during a frame computation.
// *telemetry.PerfCollector satisfies it.
type PhaseTimer interface {
	StartPhase(name string)
}

// FrameStats describes one computed frame.
type FrameStats struct {
	Phase    int
	Offset   int           // Global ramp offset used
	Traced   int           // Seeds traced
	Written  int           // Seeds whose streamline touched a droplet
	Extra    int           // Pixels filled from neighbouring streamlines
	Filled   int           // Distinct pixels given a value, at most the canvas size
	Duration time.Duration // Wall time of the recomputation
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-frame debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithTimer reports reset/orchestrate phases of each recomputation to t.
func WithTimer(t PhaseTimer) Option {
	return func(e *Engine) { e.timer = t }
}

// Engine owns the source texture and the animation cache for one field.
type Engine struct {
	params Params
	canvas Canvas
	field  field.Sampler
	source sourceTexture

	// Per-frame state, reset on every recomputation
	hits      []int
	seedOwner []int
	filled    []bool
	result    Texture

	cache  map[int]Texture
	frames map[int]FrameStats
	last   FrameStats

	logger *slog.Logger
	timer  PhaseTimer
}

// New validates p and builds the droplet texture.
func New(p Params, f field.Sampler, opts ...Option) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNilField
	}

	e := &Engine{
		params: p,
		canvas: Canvas{Width: p.Width, Height: p.Height},
		field:  f,
		cache:  make(map[int]Texture),
		frames: make(map[int]FrameStats),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.source = buildSource(p, rand.New(rand.NewSource(p.Seed)))
	e.hits = make([]int, e.canvas.Size())
	e.seedOwner = make([]int, e.canvas.Size())
	e.filled = make([]bool, e.canvas.Size())
	e.resetFrame()

	e.logger.Debug("olic source built",
		"width", p.Width,
		"height", p.Height,
		"droplets", len(e.source.droplets),
	)
	return e, nil
}

// Refresh returns the texture for an animation phase, computing and caching it
// on first request. The returned texture is shared with the cache and must not
// be modified.
func (e *Engine) Refresh(phase int) Texture {
	if tex, ok := e.cache[phase]; ok {
		return tex
	}

	start := time.Now()
	e.startPhase(PhaseReset)
	e.resetFrame()

	e.startPhase(PhaseOrchestrate)
	offset := e.params.GlobalOffset(phase)
	stats := e.computeFrame(offset)
	stats.Phase = phase
	stats.Offset = offset
	stats.Duration = time.Since(start)

	e.cache[phase] = e.result
	e.frames[phase] = stats
	e.last = stats

	e.logger.Debug("olic frame computed",
		"phase", phase,
		"offset", offset,
		"traced", stats.Traced,
		"written", stats.Written,
		"extra", stats.Extra,
		"filled", stats.Filled,
		"duration_ms", stats.Duration.Milliseconds(),
	)
	return e.result
}

// resetFrame clears hit counts, fill marks and cached seed owners and starts
// a fresh result texture. The previous result stays alive in the cache.
func (e *Engine) resetFrame() {
	clear(e.hits)
	clear(e.filled)
	for i := range e.seedOwner {
		e.seedOwner[i] = noOwner
	}
	e.result = make(Texture, e.canvas.Size())
}

func (e *Engine) startPhase(name string) {
	if e.timer != nil {
		e.timer.StartPhase(name)
	}
}

// Params returns the engine parameters.
func (e *Engine) Params() Params { return e.params }

// Canvas returns the pixel grid.
func (e *Engine) Canvas() Canvas { return e.canvas }

// Droplets returns the droplets in placement order. Do not modify.
func (e *Engine) Droplets() []Droplet { return e.source.droplets }

// SourceTexture returns the droplet intensity texture. Do not modify.
func (e *Engine) SourceTexture() Texture { return e.source.intensity }

// Owner returns the index of the droplet that painted px, or false if none did.
func (e *Engine) Owner(px Pixel) (int, bool) {
	o := e.source.owner[px]
	return o, o != noOwner
}

// HitCounts returns the per-pixel hit counts of the most recent recomputation.
// Do not modify.
func (e *Engine) HitCounts() []int { return e.hits }

// Cached reports whether phase has already been computed.
func (e *Engine) Cached(phase int) bool {
	_, ok := e.cache[phase]
	return ok
}

// LastFrame returns statistics of the most recent recomputation.
func (e *Engine) LastFrame() FrameStats { return e.last }

// Frame returns the statistics recorded when phase was computed.
func (e *Engine) Frame(phase int) (FrameStats, bool) {
	s, ok := e.frames[phase]
	return s, ok
}
