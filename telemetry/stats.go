package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/currents/olic"
)

// FrameRecord holds statistics for one computed animation frame.
type FrameRecord struct {
	Phase  int `csv:"phase"`
	Offset int `csv:"offset"`

	// Orchestration counts
	Traced  int `csv:"traced"`
	Written int `csv:"written"`
	Extra   int `csv:"extra"`
	Filled  int `csv:"filled"`

	// Fraction of pixels that received a convolved value, Filled/len(tex)
	Coverage float64 `csv:"coverage"`

	// Intensity distribution over the whole texture
	IntensityMean float64 `csv:"intensity_mean"`
	IntensityStd  float64 `csv:"intensity_std"`
	IntensityMax  float64 `csv:"intensity_max"`

	DurationMS float64 `csv:"duration_ms"`
}

// NewFrameRecord summarizes a texture and the stats of the frame that produced it.
func NewFrameRecord(stats olic.FrameStats, tex olic.Texture) FrameRecord {
	rec := FrameRecord{
		Phase:      stats.Phase,
		Offset:     stats.Offset,
		Traced:     stats.Traced,
		Written:    stats.Written,
		Extra:      stats.Extra,
		Filled:     stats.Filled,
		DurationMS: float64(stats.Duration.Microseconds()) / 1000,
	}
	if len(tex) == 0 {
		return rec
	}

	rec.Coverage = float64(stats.Filled) / float64(len(tex))
	rec.IntensityMean, rec.IntensityStd = stat.MeanStdDev(tex, nil)
	rec.IntensityMax = floats.Max(tex)
	return rec
}

// LogValue implements slog.LogValuer for structured logging.
func (r FrameRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("phase", r.Phase),
		slog.Int("offset", r.Offset),
		slog.Int("traced", r.Traced),
		slog.Int("written", r.Written),
		slog.Int("extra", r.Extra),
		slog.Int("filled", r.Filled),
		slog.Float64("coverage", r.Coverage),
		slog.Float64("intensity_mean", r.IntensityMean),
		slog.Float64("intensity_std", r.IntensityStd),
		slog.Float64("intensity_max", r.IntensityMax),
		slog.Float64("duration_ms", r.DurationMS),
	)
}
