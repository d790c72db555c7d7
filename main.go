package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/currents/animation"
	"github.com/pthm-cable/currents/config"
	"github.com/pthm-cable/currents/field"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "Droplet placement seed (0 = use config, -1 = time-based)")
	phases := flag.Int("phases", 0, "Number of phases to compute (0 = use config)")
	logStats := flag.Bool("log-stats", false, "Output frame and perf stats via slog")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	switch {
	case *seed == -1:
		cfg.OLIC.Seed = time.Now().UnixNano()
	case *seed != 0:
		cfg.OLIC.Seed = *seed
	}

	sampler, err := field.New(cfg.Field, cfg.OLIC.Width, cfg.OLIC.Height)
	if err != nil {
		slog.Error("failed to build vector field", "error", err)
		os.Exit(1)
	}

	r, err := animation.New(cfg, sampler, animation.Options{
		Phases:    *phases,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Logger:    logger,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer r.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting",
		"seed", cfg.OLIC.Seed,
		"width", cfg.OLIC.Width,
		"height", cfg.OLIC.Height,
		"side_length", cfg.OLIC.SideLength,
		"field", cfg.Field.Source,
		"phases", r.Phases(),
		"droplets", len(r.Engine().Droplets()),
	)

	start := time.Now()
	if err := r.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run failed", "error", err)
		return
	}
	slog.Info("done", "phases", r.Phase(), "elapsed_ms", time.Since(start).Milliseconds())
}
