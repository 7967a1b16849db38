// Package game wires the fire engine, renderer, UI and telemetry into a
// frame loop, either in a raylib window or headless.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ember/camera"
	"github.com/pthm-cable/ember/config"
	"github.com/pthm-cable/ember/renderer"
	"github.com/pthm-cable/ember/sim"
	"github.com/pthm-cable/ember/systems"
	"github.com/pthm-cable/ember/telemetry"
	"github.com/pthm-cable/ember/ui"
)

// Options configures a game instance.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Seed           int64
	LogStats       bool
	OutputDir      string
	Headless       bool
	StepsPerUpdate int // ticks per UpdateHeadless call
	StatsCallback  func(telemetry.WindowStats)
}

// Game holds the complete game state.
type Game struct {
	cfg     *config.Config
	engine  *sim.Engine
	stepper *sim.Stepper
	rng     *rand.Rand // pointer bursts; the engine owns its own stream
	field   systems.Field
	tuning  ui.Tuning

	// Rendering (nil when headless)
	camera   *camera.Camera
	window   *renderer.Window
	glow     *renderer.GlowRenderer
	fieldViz *renderer.FieldRenderer
	sprites  []sim.Sprite

	// UI
	hud        *ui.HUD
	overlays   *ui.OverlayRegistry
	controls   *ui.ControlsPanel
	tuningUI   *ui.TuningPanel
	statsPanel *ui.StatsPanel
	inspector  *ui.Inspector
	perfPanel  *ui.PerfPanel
	registry   *systems.SystemRegistry

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	framePerf     *PerfStats
	outputManager *telemetry.OutputManager
	lastStats     telemetry.WindowStats
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Pending pointer injections, applied at the start of the next tick
	bursts []sim.Point

	// State
	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int
	hovered        sim.Particle
	hasHovered     bool

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game. In windowed mode raylib must already
// be initialized.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:            cfg,
		engine:         sim.New(cfg, systems.NewRandom(opts.Seed)),
		stepper:        sim.NewStepper(cfg.Simulation.DT, cfg.Simulation.MaxCatchUp),
		rng:            systems.NewRandom(opts.Seed + 1),
		field:          systems.NewField(cfg.Turbulence),
		tuning:         tuningFromConfig(cfg),
		collector:      telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		framePerf:      NewPerfStats(),
		registry:       systems.NewSystemRegistry(),
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		screenWidth:    float32(cfg.Screen.Width),
		screenHeight:   float32(cfg.Screen.Height),
	}
	g.engine.SetField(g.field)
	g.engine.SetPhaseTimer(g.perfCollector)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	if err := g.engine.Initialize(cfg.Simulation.Population); err != nil {
		slog.Warn("initialize", "error", err)
	}

	if !g.headless {
		g.initGraphics()
	}
	return g, nil
}

// Placement of the left-hand panels (overlay legend and tuning).
const (
	sidePanelX     = 10
	sidePanelY     = 100
	sidePanelWidth = 220
)

// initGraphics creates the renderers and UI panels.
func (g *Game) initGraphics() {
	cfg := g.cfg
	w, h := float32(cfg.Derived.Width), float32(cfg.Derived.Height)

	g.camera = camera.New(g.screenWidth, g.screenHeight, w, h)
	g.window = renderer.NewWindow(g.camera, cfg.Derived.BackgroundRGB)
	g.glow = renderer.NewGlowRenderer(g.camera, float32(cfg.Derived.CenterX), h, float32(cfg.Flame.BaseWidth))
	g.fieldViz = renderer.NewFieldRenderer(g.camera, 24)

	g.hud = ui.NewHUD()
	g.overlays = ui.NewOverlayRegistry()
	g.controls = ui.NewControlsPanel(sidePanelX, sidePanelY, sidePanelWidth)
	g.tuningUI = ui.NewTuningPanel(sidePanelX, sidePanelY, sidePanelWidth)
	g.statsPanel = ui.NewStatsPanel()
	g.inspector = ui.NewInspector()
	g.perfPanel = ui.NewPerfPanel(10, int32(g.screenHeight)-160)

	g.overlays.SetEnabled(ui.OverlayGlow, true)
	g.overlays.SetEnabled(ui.OverlayStats, true)
}

// Update handles input and advances the simulation by the frame time.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	n := g.stepper.Advance(float64(rl.GetFrameTime()))
	for i := 0; i < n; i++ {
		g.step()
	}
	g.flushTelemetry()
}

// UpdateHeadless runs StepsPerUpdate fixed ticks without graphics.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
	g.flushTelemetry()
}

// step runs a single fixed tick.
func (g *Game) step() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseInject)
	g.applyBursts()

	report, err := g.engine.Tick(g.stepper.DT())
	if err != nil {
		slog.Warn("tick", "error", err)
		g.collector.RecordRejected()
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordTick(report)
	g.perfCollector.EndTick()

	g.tick++
}

// Tick returns the number of fixed ticks run so far.
func (g *Game) Tick() int32 {
	return g.tick
}

// Engine exposes the particle engine.
func (g *Game) Engine() *sim.Engine {
	return g.engine
}

// LastStats returns the most recently flushed stats window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(p bool) {
	g.paused = p
}

// Reset restarts the fire with the configured population.
func (g *Game) Reset() {
	g.engine.Reset()
	g.stepper.Reset()
	g.collector.Reset(g.engine.Clock())
	g.bursts = g.bursts[:0]
	g.tick = 0
	g.logState("reset")
}

// Unload releases resources.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("closing output", "error", err)
		}
	}
}
