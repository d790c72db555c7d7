// Flow texture preview tool - interactive animation of an OLIC texture.
//
// Usage: go run ./cmd/olicpreview [-config path]
//
// Controls: Space play/pause, Right arrow step, mouse wheel zoom,
// right drag pan, R reset view, P switch palette, S show droplets,
// T toggle tracer particles.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/currents/camera"
	"github.com/pthm-cable/currents/config"
	"github.com/pthm-cable/currents/field"
	"github.com/pthm-cable/currents/olic"
	"github.com/pthm-cable/currents/particles"
	"github.com/pthm-cable/currents/renderer"
	"github.com/pthm-cable/currents/telemetry"
)

const panelWidth = 300

// frame is a computed texture handed from the worker to the render loop.
type frame struct {
	phase  int
	tex    olic.Texture
	stats  olic.FrameStats
	cached bool
	perf   telemetry.PerfStats
}

// worker owns the engine. It refreshes each requested phase and sends the result back.
func worker(eng *olic.Engine, perf *telemetry.PerfCollector, requests <-chan int, frames chan<- frame) {
	defer close(frames)
	for phase := range requests {
		cached := eng.Cached(phase)
		if !cached {
			perf.StartFrame()
		}
		tex := eng.Refresh(phase)
		if !cached {
			perf.EndFrame()
		}
		// Stats recorded when this phase was computed, not the latest recomputation
		stats, _ := eng.Frame(phase)
		frames <- frame{
			phase:  phase,
			tex:    tex,
			stats:  stats,
			cached: cached,
			perf:   perf.Stats(),
		}
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config file (uses embedded defaults if not specified)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sampler, err := field.New(cfg.Field, cfg.OLIC.Width, cfg.OLIC.Height)
	if err != nil {
		log.Fatalf("Failed to build vector field: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	eng, err := olic.New(cfg.OLIC, sampler, olic.WithLogger(logger), olic.WithTimer(perf))
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	// Immutable after New, safe to read from the render loop
	source := eng.SourceTexture()
	droplets := len(eng.Droplets())

	// The swarm samples the field from the render loop; samplers are read-only
	swarm, err := particles.New(cfg.Particles, sampler, eng.Canvas())
	if err != nil {
		log.Fatalf("Failed to create particles: %v", err)
	}
	maxSpeed := field.MaxSpeed(sampler, cfg.OLIC.Width, cfg.OLIC.Height, 8)

	requests := make(chan int, 1)
	frames := make(chan frame, 1)
	go worker(eng, perf, requests, frames)
	defer close(requests)

	windowW, windowH := int32(cfg.Preview.Width), int32(cfg.Preview.Height)
	rl.InitWindow(windowW, windowH, "Flow Texture Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Preview.TargetFPS))

	viewX, viewY := float32(10), float32(10)
	viewW := float32(windowW) - panelWidth - 30
	viewH := float32(windowH) - 20
	view := camera.New(viewW, viewH, float32(cfg.OLIC.Width), float32(cfg.OLIC.Height))
	viewRect := rl.NewRectangle(viewX, viewY, viewW, viewH)

	tr := renderer.NewTextureRenderer(cfg.OLIC.Width, cfg.OLIC.Height, renderer.Ocean)
	tr.Init()
	defer tr.Unload()
	pr := renderer.NewParticleRenderer(renderer.Foam, maxSpeed)

	// Upload timing lives on the render thread, separate from the worker's collector
	drawPerf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)

	phases := cfg.Derived.Phases
	fps := float32(cfg.Animation.FPS)
	playing := true
	showSource := false
	gray := false
	showParticles := swarm.Len() > 0

	var current frame
	haveFrame := false
	pending := true
	requests <- 0
	var sinceFrame float32

	upload := func() {
		drawPerf.StartFrame()
		drawPerf.StartPhase(telemetry.PhaseUpload)
		if showSource {
			tr.Upload(source)
		} else {
			tr.Upload(current.tex)
		}
		drawPerf.EndFrame()
	}

	for !rl.WindowShouldClose() {
		drawPerf.RecordDraw()

		// Receive finished frames without blocking the render loop
		select {
		case f, ok := <-frames:
			if ok {
				current = f
				haveFrame = true
				pending = false
				upload()
			}
		default:
		}

		// Request the next phase
		step := rl.IsKeyPressed(rl.KeyRight)
		if playing {
			sinceFrame += rl.GetFrameTime()
			if fps > 0 && sinceFrame >= 1/fps {
				step = true
			}
		}
		if step && !pending {
			sinceFrame = 0
			pending = true
			requests <- (current.phase + 1) % phases
		}

		// Input
		if rl.IsKeyPressed(rl.KeySpace) {
			playing = !playing
		}
		if rl.IsKeyPressed(rl.KeyR) {
			view.Reset()
		}
		if rl.IsKeyPressed(rl.KeyP) {
			gray = !gray
			if gray {
				tr.SetPalette(renderer.Gray)
			} else {
				tr.SetPalette(renderer.Ocean)
			}
			if haveFrame {
				upload()
			}
		}
		if rl.IsKeyPressed(rl.KeyT) {
			showParticles = !showParticles
		}
		if rl.IsKeyPressed(rl.KeyS) {
			showSource = !showSource
			if haveFrame {
				upload()
			}
		}

		if playing && showParticles {
			swarm.Evolve()
		}

		mouse := rl.GetMousePosition()
		if rl.CheckCollisionPointRec(mouse, viewRect) {
			if wheel := rl.GetMouseWheelMove(); wheel != 0 {
				view.ZoomAt(mouse.X-viewX, mouse.Y-viewY, 1+0.1*wheel)
			}
			if rl.IsMouseButtonDown(rl.MouseButtonRight) {
				d := rl.GetMouseDelta()
				view.Pan(-d.X, -d.Y)
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.BeginScissorMode(int32(viewX), int32(viewY), int32(viewW), int32(viewH))
		rl.DrawRectangleRec(viewRect, rl.Black)
		tr.Draw(view, rl.NewVector2(viewX, viewY))
		if showParticles {
			pr.Draw(swarm, view, rl.NewVector2(viewX, viewY))
		}
		rl.EndScissorMode()
		rl.DrawRectangleLinesEx(viewRect, 1, rl.DarkGray)

		// Control panel
		panelX := viewX + viewW + 20
		panelY := float32(10)

		rl.DrawText("Flow Texture", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText(fmt.Sprintf("Canvas %dx%d  L=%d", cfg.OLIC.Width, cfg.OLIC.Height, cfg.OLIC.SideLength), int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		rl.DrawText(fmt.Sprintf("Droplets %d  Field %s", droplets, cfg.Field.Source), int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		rl.DrawText(fmt.Sprintf("Particles %d  Max speed %.2f", swarm.Len(), maxSpeed), int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 30

		// Speed slider
		rl.DrawText("Speed (phases per second)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		fps = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
			"1", "60",
			fps, 1, 60,
		)
		rl.DrawText(fmt.Sprintf("%.0f", fps), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(playing, "Pause", "Play")) {
			playing = !playing
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset View") {
			view.Reset()
		}
		panelY += 45

		// Frame stats
		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+panelWidth-20, int32(panelY), rl.LightGray)
		panelY += 15
		if haveFrame {
			lines := []string{
				fmt.Sprintf("Phase %d / %d  (offset %d)", current.phase, phases, cfg.OLIC.GlobalOffset(current.phase)),
				fmt.Sprintf("Traced %d  Written %d  Extra %d", current.stats.Traced, current.stats.Written, current.stats.Extra),
				fmt.Sprintf("Filled %d  (%.0f ms)", current.stats.Filled, float64(current.stats.Duration.Microseconds())/1000),
				fmt.Sprintf("Cached: %v", current.cached),
				fmt.Sprintf("Compute avg %.1f ms", float64(current.perf.AvgFrameDuration.Microseconds())/1000),
				fmt.Sprintf("Orchestrate %.0f%%", current.perf.PhasePct[telemetry.PhaseOrchestrate]),
			}
			for _, line := range lines {
				rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
				panelY += 18
			}
		} else {
			rl.DrawText("Computing first frame...", int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
		}

		ds := drawPerf.Stats()
		rl.DrawText(fmt.Sprintf("FPS %.0f  Upload %.2f ms", ds.FPS, float64(ds.PhaseAvg[telemetry.PhaseUpload].Microseconds())/1000), int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Space play  Right step  P palette  S droplets  T particles", int32(panelX), windowH-30, 12, rl.LightGray)

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
