package animation

import (
	"log/slog"

	"github.com/pthm-cable/currents/telemetry"
)

// recordFrame logs and writes the record of a computed frame.
func (r *Runner) recordFrame(rec telemetry.FrameRecord) {
	if r.frameCallback != nil {
		r.frameCallback(rec)
	}

	if r.logFrames || r.logStats {
		r.logger.Info("frame", "stats", rec)
	}

	if err := r.outputManager.WriteFrame(rec); err != nil {
		slog.Error("failed to write frame", "error", err)
	}
}

// flushPerf logs and writes aggregated timing over the current perf window.
func (r *Runner) flushPerf(phase int) {
	perfStats := r.perfCollector.Stats()

	if r.logStats {
		perfStats.LogStats()
	}

	if err := r.outputManager.WritePerf(perfStats, phase); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
