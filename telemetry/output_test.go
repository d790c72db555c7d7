package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/currents/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}

	// All methods are safe on a nil manager
	if err := om.WriteFrame(FrameRecord{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := om.WriteConfig(nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("expected empty dir, got %q", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOutputManager_WritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for phase := 0; phase < 3; phase++ {
		if err := om.WriteFrame(FrameRecord{Phase: phase, Offset: phase, Traced: 10 + phase}); err != nil {
			t.Fatalf("writing frame: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{PhasePct: map[string]float64{PhaseOrchestrate: 90}}, 2); err != nil {
		t.Fatalf("writing perf: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatalf("reading frames.csv: %v", err)
	}
	if n := strings.Count(string(raw), "phase,offset"); n != 1 {
		t.Errorf("expected exactly one header line, got %d", n)
	}

	var frames []FrameRecord
	if err := gocsv.UnmarshalBytes(raw, &frames); err != nil {
		t.Fatalf("parsing frames.csv: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	if frames[2].Traced != 12 {
		t.Errorf("expected traced 12 in last row, got %d", frames[2].Traced)
	}

	perfRaw, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatalf("reading perf.csv: %v", err)
	}
	var perf []PerfStatsCSV
	if err := gocsv.UnmarshalBytes(perfRaw, &perf); err != nil {
		t.Fatalf("parsing perf.csv: %v", err)
	}
	if len(perf) != 1 || perf[0].Phase != 2 || perf[0].OrchestratePct != 90 {
		t.Errorf("unexpected perf rows: %+v", perf)
	}
}

func TestOutputManager_WriteConfig(t *testing.T) {
	om, err := NewOutputManager(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.OLIC.Seed = 1234
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	back, err := config.Load(filepath.Join(om.Dir(), "config.yaml"))
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if back.OLIC.Seed != 1234 {
		t.Errorf("expected seed 1234, got %d", back.OLIC.Seed)
	}
}
