package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/currents/olic"
)

// Phase names for one frame computation.
const (
	PhaseReset       = olic.PhaseReset
	PhaseOrchestrate = olic.PhaseOrchestrate
	PhaseUpload      = "upload"
	PhaseTelemetry   = "telemetry"
)

type frameSample struct {
	total  time.Duration
	phases map[string]time.Duration
}

// PerfCollector keeps phase timings of the last computed frames in a ring.
// It implements olic.PhaseTimer.
type PerfCollector struct {
	ring  []frameSample
	next  int
	count int

	current    frameSample
	frameStart time.Time
	phaseStart time.Time
	phase      string

	lastDraw time.Time
	drawGap  time.Duration
}

// NewPerfCollector keeps up to window frames; window < 1 means 60.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{ring: make([]frameSample, window)}
}

// StartFrame begins timing a new frame computation.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.current = frameSample{phases: make(map[string]time.Duration)}
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens the named one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

// EndFrame closes the frame and stores it in the ring.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""
	p.current.total = now.Sub(p.frameStart)

	p.ring[p.next] = p.current
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" && p.current.phases != nil {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// RecordDraw marks one pass of the preview render loop.
func (p *PerfCollector) RecordDraw() {
	now := time.Now()
	if !p.lastDraw.IsZero() {
		p.drawGap = now.Sub(p.lastDraw)
	}
	p.lastDraw = now
}

// PerfStats aggregates the frames in the ring.
type PerfStats struct {
	AvgFrameDuration time.Duration
	MaxFrameDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Share of the average frame, 0-100

	// Render loop rate, zero until RecordDraw ran twice
	FPS float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.drawGap > 0 {
		s.FPS = float64(time.Second) / float64(p.drawGap)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	for _, f := range p.ring[:p.count] {
		total += f.total
		s.MaxFrameDuration = max(s.MaxFrameDuration, f.total)
		for phase, d := range f.phases {
			s.PhaseAvg[phase] += d
		}
	}
	n := time.Duration(p.count)
	s.AvgFrameDuration = total / n
	for phase, sum := range s.PhaseAvg {
		s.PhaseAvg[phase] = sum / n
		if s.AvgFrameDuration > 0 {
			s.PhasePct[phase] = float64(s.PhaseAvg[phase]) / float64(s.AvgFrameDuration) * 100
		}
	}
	return s
}

// LogStats logs the aggregate at info level.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_ms", ms(s.AvgFrameDuration),
		"max_frame_ms", ms(s.MaxFrameDuration),
	}
	for _, phase := range []string{PhaseReset, PhaseOrchestrate, PhaseTelemetry} {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	Phase          int     `csv:"phase"`
	AvgFrameMS     float64 `csv:"avg_frame_ms"`
	MaxFrameMS     float64 `csv:"max_frame_ms"`
	ResetPct       float64 `csv:"reset_pct"`
	OrchestratePct float64 `csv:"orchestrate_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the row of the given animation phase.
func (s PerfStats) ToCSV(phase int) PerfStatsCSV {
	return PerfStatsCSV{
		Phase:          phase,
		AvgFrameMS:     ms(s.AvgFrameDuration),
		MaxFrameMS:     ms(s.MaxFrameDuration),
		ResetPct:       s.PhasePct[PhaseReset],
		OrchestratePct: s.PhasePct[PhaseOrchestrate],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
