// Package animation drives an engine through the phases of a flow texture animation
// and records per-frame telemetry.
package animation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/currents/config"
	"github.com/pthm-cable/currents/field"
	"github.com/pthm-cable/currents/olic"
	"github.com/pthm-cable/currents/telemetry"
)

// Options configures a Runner.
type Options struct {
	Phases    int    // Number of phases to compute (0 = config value)
	LogStats  bool   // Log frame and perf stats via slog
	OutputDir string // Directory for CSV logs and config snapshot (empty = disabled)
	Logger    *slog.Logger
}

// Runner steps an engine through consecutive animation phases.
type Runner struct {
	cfg    *config.Config
	engine *olic.Engine
	logger *slog.Logger

	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager

	phases     int
	phase      int
	computed   int
	perfWindow int
	logStats   bool
	logFrames  bool

	frameCallback func(telemetry.FrameRecord)
}

// New creates a runner over the given field using the engine parameters in cfg.
func New(cfg *config.Config, sampler field.Sampler, opts Options) (*Runner, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	phases := cfg.Derived.Phases
	if opts.Phases > 0 {
		phases = opts.Phases
	}
	if phases < 1 {
		phases = cfg.OLIC.Period()
	}
	perfWindow := cfg.Telemetry.PerfWindow
	if perfWindow < 1 {
		perfWindow = cfg.OLIC.Period()
	}

	perf := telemetry.NewPerfCollector(perfWindow)
	eng, err := olic.New(cfg.OLIC, sampler, olic.WithLogger(logger), olic.WithTimer(perf))
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	return &Runner{
		cfg:           cfg,
		engine:        eng,
		logger:        logger,
		perfCollector: perf,
		outputManager: om,
		phases:        phases,
		perfWindow:    perfWindow,
		logStats:      opts.LogStats,
		logFrames:     cfg.Telemetry.LogFrames,
	}, nil
}

// SetFrameCallback registers fn to receive the record of every computed frame.
func (r *Runner) SetFrameCallback(fn func(telemetry.FrameRecord)) {
	r.frameCallback = fn
}

// Engine returns the underlying engine.
func (r *Runner) Engine() *olic.Engine { return r.engine }

// Phase returns the next phase to be stepped.
func (r *Runner) Phase() int { return r.phase }

// Phases returns the number of phases Run computes.
func (r *Runner) Phases() int { return r.phases }

// Done reports whether all phases have been stepped.
func (r *Runner) Done() bool { return r.phase >= r.phases }

// Step refreshes the next phase. It returns the texture and whether it was
// computed rather than served from the phase cache.
func (r *Runner) Step() (olic.Texture, bool) {
	phase := r.phase
	r.phase++

	if r.engine.Cached(phase) {
		r.logger.Debug("phase cached", "phase", phase)
		return r.engine.Refresh(phase), false
	}

	r.perfCollector.StartFrame()
	tex := r.engine.Refresh(phase)
	r.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	rec := telemetry.NewFrameRecord(r.engine.LastFrame(), tex)
	r.perfCollector.EndFrame()

	r.computed++
	r.recordFrame(rec)
	if r.computed%r.perfWindow == 0 {
		r.flushPerf(phase)
	}
	return tex, true
}

// Run steps through all remaining phases, stopping early if ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	for !r.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.Step()
	}
	// Partial window at the end
	if r.computed%r.perfWindow != 0 {
		r.flushPerf(r.phase - 1)
	}
	return nil
}

// Close flushes and closes telemetry output.
func (r *Runner) Close() error {
	return r.outputManager.Close()
}
