// Command fireterm runs the fire in a terminal using half-block pixels.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/ember/components"
	"github.com/pthm-cable/ember/config"
	"github.com/pthm-cable/ember/game"
	"github.com/pthm-cable/ember/sim"
	"github.com/pthm-cable/ember/surface"
	"github.com/pthm-cable/ember/systems"
	"github.com/pthm-cable/ember/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config seed, or time-based)")
	fps := flag.Int("fps", 30, "Frames per second")
	population := flag.Int("population", 0, "Particle count (0 = use config)")
	logPath := flag.String("log", "", "Write JSON logs and window stats to this file")
	flag.Parse()

	if err := run(*configPath, *seed, *fps, *population, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, "fireterm:", err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, fps, population int, logPath string) error {
	// The terminal owns stdout, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(game.NewLogger(logOut, true, slog.LevelInfo))

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if population > 0 {
		cfg.Simulation.Population = population
	}
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	app, err := newApp(screen, cfg, seed)
	if err != nil {
		return err
	}
	slog.Info("fireterm started", "seed", seed, "population", cfg.Simulation.Population)

	// Event handling
	events := make(chan tcell.Event)
	quit := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	defer close(quit)

	if fps < 1 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if app.handleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			app.frame(now.Sub(last).Seconds())
			last = now
		}
	}
}

// app is one terminal fire: engine, stepper and surface driven by a
// single frame loop.
type app struct {
	cfg       *config.Config
	screen    tcell.Screen
	engine    *sim.Engine
	stepper   *sim.Stepper
	term      *surface.Terminal
	collector *telemetry.Collector
	rng       *rand.Rand
	zone      components.Zone
	sprites   []sim.Sprite

	paused   bool
	pointing bool
	pointX   float64
	pointY   float64
}

func newApp(screen tcell.Screen, cfg *config.Config, seed int64) (*app, error) {
	zone, ok := components.ParseZone(cfg.Input.Zone)
	if !ok {
		zone = components.ZoneCore
	}

	bg := cfg.Derived.BackgroundRGB
	a := &app{
		cfg:       cfg,
		screen:    screen,
		engine:    sim.New(cfg, systems.NewRandom(seed)),
		stepper:   sim.NewStepper(cfg.Simulation.DT, cfg.Simulation.MaxCatchUp),
		term:      surface.NewTerminal(screen, cfg.Derived.Width, cfg.Derived.Height, color.NRGBA{R: bg[0], G: bg[1], B: bg[2], A: 255}),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		rng:       systems.NewRandom(seed + 1),
		zone:      zone,
	}
	if err := a.engine.Initialize(cfg.Simulation.Population); err != nil {
		return nil, err
	}
	return a, nil
}

// handleEvent applies one terminal event. Returns true to quit.
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.term.Resize()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			a.paused = !a.paused
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
			a.engine.Reset()
			a.stepper.Reset()
			a.collector.Reset(0)
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		a.pointing = ev.Buttons()&tcell.Button1 != 0
		a.pointX, a.pointY = a.term.ToWorld(col, row)
	}
	return false
}

// frame advances the simulation by elapsed seconds and redraws.
func (a *app) frame(elapsed float64) {
	if !a.paused {
		if a.pointing {
			a.burst()
		}
		for n := a.stepper.Advance(elapsed); n > 0; n-- {
			report, err := a.engine.Tick(a.stepper.DT())
			if err != nil {
				slog.Warn("tick", "error", err)
			}
			a.collector.RecordTick(report)
		}
		if clock := a.engine.Clock(); a.collector.ShouldFlush(clock) {
			a.collector.Flush(clock, a.engine.Particles()).LogStats()
		}
	}

	a.sprites = a.engine.AppendSnapshot(a.sprites[:0])
	surface.Paint(a.term, a.sprites)
	a.term.Present()
}

// burst injects particles around the pointer, capped by input.max_population.
func (a *app) burst() {
	in := a.cfg.Input
	n := sim.BurstBudget(a.engine.Len(), in.BurstCount, in.MaxPopulation)
	if n == 0 {
		a.collector.RecordRejected()
		return
	}
	added := 0
	for _, p := range sim.BurstPoints(a.rng, a.pointX, a.pointY, n, in.BurstSpread) {
		if err := a.engine.Inject(p.X, p.Y, in.Temperature, a.zone); err != nil {
			if !errors.Is(err, sim.ErrOutOfBounds) {
				slog.Warn("inject", "error", err)
			}
			a.collector.RecordRejected()
			continue
		}
		added++
	}
	a.collector.RecordInject(added)
}
