package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/ember/components"
	"github.com/pthm-cable/ember/config"
	"github.com/pthm-cable/ember/systems"
)

const frame = 1.0 / 60

func newTestEngine(t *testing.T, n int) (*Engine, *config.Config) {
	t.Helper()
	cfg := config.Default()
	e := New(cfg, systems.NewRandom(42))
	if err := e.Initialize(n); err != nil {
		t.Fatalf("Initialize(%d): %v", n, err)
	}
	return e, cfg
}

// ---------- Initialize ----------

func TestInitialize_Population(t *testing.T) {
	e, _ := newTestEngine(t, 250)
	if e.Len() != 250 {
		t.Errorf("Len = %d, want 250", e.Len())
	}
	if got := len(e.Particles()); got != 250 {
		t.Errorf("len(Particles) = %d, want 250", got)
	}
}

func TestInitialize_Negative(t *testing.T) {
	e := New(config.Default(), systems.NewRandom(1))
	err := e.Initialize(-5)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if e.Len() != 0 {
		t.Errorf("negative population should clamp to 0, got %d", e.Len())
	}
	if _, err := e.Tick(frame); err != nil {
		t.Errorf("empty engine should still tick: %v", err)
	}
}

func TestInitialize_ReplacesExisting(t *testing.T) {
	e, _ := newTestEngine(t, 100)
	if err := e.Initialize(30); err != nil {
		t.Fatal(err)
	}
	if e.Len() != 30 || len(e.Particles()) != 30 {
		t.Errorf("expected 30 particles after re-initialize, got %d", e.Len())
	}
}

func TestInitialize_LiveInvariants(t *testing.T) {
	e, cfg := newTestEngine(t, 500)
	seen := make(map[uint64]bool)
	for _, p := range e.Particles() {
		if p.Temperature <= 0 || p.Age >= p.Lifespan {
			t.Fatalf("new particle not live: %+v", p)
		}
		if p.Y < 0 || p.Y >= cfg.Derived.Height {
			t.Fatalf("new particle y %f out of bounds", p.Y)
		}
		if seen[p.Serial] {
			t.Fatalf("duplicate serial %d", p.Serial)
		}
		seen[p.Serial] = true
	}
}

// ---------- Tick ----------

func TestTick_PopulationInvariant(t *testing.T) {
	e, _ := newTestEngine(t, 400)
	expired := 0
	for i := 0; i < 600; i++ {
		report, err := e.Tick(frame)
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if report.Respawned != report.Expired() {
			t.Fatalf("tick %d: respawned %d of %d expired", i, report.Respawned, report.Expired())
		}
		expired += report.Expired()
		if e.Len() != 400 {
			t.Fatalf("tick %d: population %d, want 400", i, e.Len())
		}
	}
	if expired == 0 {
		t.Error("expected some particles to expire over 10 seconds")
	}
	if got := len(e.Particles()); got != 400 {
		t.Errorf("len(Particles) = %d, want 400", got)
	}
}

func TestTick_LiveSetInvariants(t *testing.T) {
	e, cfg := newTestEngine(t, 300)
	for i := 0; i < 300; i++ {
		if _, err := e.Tick(frame); err != nil {
			t.Fatal(err)
		}
		for _, p := range e.Particles() {
			if !(p.Temperature > 0) || p.Age >= p.Lifespan || p.Y < 0 || p.Y >= cfg.Derived.Height {
				t.Fatalf("tick %d: dead particle in live set: %+v", i, p)
			}
			if p.Size < 0 || p.Age < 0 {
				t.Fatalf("tick %d: negative attribute: %+v", i, p)
			}
		}
	}
}

func TestTick_ResetRespawnMode(t *testing.T) {
	cfg := config.Default()
	cfg.Emission.RespawnMode = "reset"
	e := New(cfg, systems.NewRandom(4))
	if err := e.Initialize(200); err != nil {
		t.Fatal(err)
	}

	serials := make(map[uint64]components.Zone)
	for _, p := range e.Particles() {
		serials[p.Serial] = p.Zone
	}
	for i := 0; i < 300; i++ {
		if _, err := e.Tick(frame); err != nil {
			t.Fatal(err)
		}
	}
	// Reset reuses particles in place: same serials, same zones
	for _, p := range e.Particles() {
		zone, ok := serials[p.Serial]
		if !ok {
			t.Fatalf("unexpected new serial %d in reset mode", p.Serial)
		}
		if zone != p.Zone {
			t.Fatalf("particle %d changed zone", p.Serial)
		}
	}
}

func TestTick_InvalidDT(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	before := e.Particles()

	for _, dt := range []float64{0, -frame, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := e.Tick(dt); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Tick(%v): expected ErrInvalidArgument, got %v", dt, err)
		}
	}
	if e.Clock() != 0 {
		t.Errorf("invalid ticks advanced the clock to %f", e.Clock())
	}
	after := e.Particles()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("invalid tick mutated particle %d", i)
		}
	}
}

func TestTick_ClampsLargeDT(t *testing.T) {
	e, cfg := newTestEngine(t, 10)
	if _, err := e.Tick(5); err != nil {
		t.Fatal(err)
	}
	if e.Clock() != cfg.Simulation.MaxDT {
		t.Errorf("clock = %f, want clamped step %f", e.Clock(), cfg.Simulation.MaxDT)
	}
}

func TestTick_ClockAdvances(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	for i := 0; i < 60; i++ {
		if _, err := e.Tick(frame); err != nil {
			t.Fatal(err)
		}
	}
	if math.Abs(e.Clock()-1) > 1e-9 {
		t.Errorf("clock = %f after 60 frames, want 1", e.Clock())
	}
}

// ---------- Scenarios ----------

func TestScenario_CoreParticlesRise(t *testing.T) {
	cfg := config.Default()
	cfg.Emission.ZoneWeights = []float64{1, 0, 0}
	cfg.ComputeDerived()

	e := New(cfg, systems.NewRandom(7))
	if err := e.Initialize(100); err != nil {
		t.Fatal(err)
	}

	spawnY := make(map[uint64]float64)
	for _, p := range e.Particles() {
		if p.Zone != components.ZoneCore {
			t.Fatalf("expected only core particles, got %s", p.Zone)
		}
		spawnY[p.Serial] = p.Y
	}

	if _, err := e.Tick(frame); err != nil {
		t.Fatal(err)
	}

	rose, compared := 0, 0
	for _, p := range e.Particles() {
		y0, ok := spawnY[p.Serial]
		if !ok {
			continue // respawned this tick
		}
		compared++
		if p.Y < y0 {
			rose++
		}
	}
	if compared < 90 {
		t.Fatalf("only %d particles survived one tick", compared)
	}
	if rose*10 < compared*9 {
		t.Errorf("%d/%d core particles rose in one tick, want at least 90%%", rose, compared)
	}
}

func TestScenario_CoolingDeath(t *testing.T) {
	e := New(config.Default(), systems.NewRandom(1))
	if err := e.Initialize(0); err != nil {
		t.Fatal(err)
	}

	err := e.InjectParticle(Particle{
		X: 400, Y: 500,
		Temperature: 0.5,
		Lifespan:    2.0,
		InitialSize: 4, MaxSize: 6,
		Depth:       0.5,
		Sensitivity: 1,
		Zone:        components.ZoneCore,
	})
	if err != nil {
		t.Fatal(err)
	}

	var elapsed float64
	for i := 0; i < 200; i++ {
		report, err := e.Tick(frame)
		if err != nil {
			t.Fatal(err)
		}
		elapsed += frame
		if report.Expired() == 0 {
			continue
		}
		if report.Cooled != 1 {
			t.Fatalf("expected death by cooling, got %+v", report)
		}
		if elapsed >= 2.0 {
			t.Errorf("died at %.3fs, expected before lifespan 2.0s", elapsed)
		}
		if math.Abs(elapsed-0.5/0.3) > 2*frame {
			t.Errorf("died at %.3fs, expected ~%.3fs", elapsed, 0.5/0.3)
		}
		if report.Removed != 1 || e.Len() != 0 {
			t.Errorf("injected particle should be removed, report %+v len %d", report, e.Len())
		}
		return
	}
	t.Fatal("particle never expired")
}

// ---------- Inject ----------

func TestInject_GrowsPopulation(t *testing.T) {
	e, _ := newTestEngine(t, 50)
	for i := 0; i < 5; i++ {
		if err := e.Inject(400, 300, 1, components.ZoneMid); err != nil {
			t.Fatal(err)
		}
	}
	if e.Len() != 55 {
		t.Errorf("Len = %d, want 55", e.Len())
	}
	injected := 0
	for _, p := range e.Particles() {
		if p.Injected {
			injected++
			if p.X != 400 || p.Y != 300 || p.Temperature != 1 || p.Zone != components.ZoneMid {
				t.Errorf("injected particle has wrong parameters: %+v", p)
			}
		}
	}
	if injected != 5 {
		t.Errorf("found %d injected particles, want 5", injected)
	}
}

func TestInject_InjectedNotReplaced(t *testing.T) {
	e, _ := newTestEngine(t, 50)
	for i := 0; i < 20; i++ {
		if err := e.Inject(400, 500, 0.2, components.ZoneOuter); err != nil {
			t.Fatal(err)
		}
	}
	// 0.2 / 0.3 per second: all injected particles are gone within a second
	for i := 0; i < 90; i++ {
		if _, err := e.Tick(frame); err != nil {
			t.Fatal(err)
		}
	}
	if e.Len() != 50 {
		t.Errorf("Len = %d, want base population 50", e.Len())
	}
	for _, p := range e.Particles() {
		if p.Injected {
			t.Fatalf("expired injected particle still live: %+v", p)
		}
	}
}

func TestInject_Invalid(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		temp float64
		zone components.Zone
	}{
		{"nan x", math.NaN(), 10, 1, components.ZoneCore},
		{"inf y", 10, math.Inf(-1), 1, components.ZoneCore},
		{"zero temperature", 10, 10, 0, components.ZoneCore},
		{"negative temperature", 10, 10, -1, components.ZoneCore},
		{"nan temperature", 10, 10, math.NaN(), components.ZoneCore},
		{"unknown zone", 10, 10, 1, components.Zone(9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t, 5)
			if err := e.Inject(tt.x, tt.y, tt.temp, tt.zone); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			if e.Len() != 5 {
				t.Errorf("invalid inject changed population to %d", e.Len())
			}
		})
	}
}

func TestInject_Bounds(t *testing.T) {
	tests := []struct {
		name  string
		y     float64
		upper bool
		ok    bool
	}{
		{"inside", 300, true, true},
		{"top edge", 0, true, true},
		{"above top", -0.5, true, false},
		{"bottom edge", 600, true, false},
		{"below bottom", 650, true, false},
		{"below bottom without upper bound", 650, false, true},
		{"above top without upper bound", -1, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, cfg := newTestEngine(t, 5)
			phys := cfg.Physics
			phys.EnforceUpperBound = tt.upper
			e.SetPhysics(phys)

			err := e.Inject(400, tt.y, 1, components.ZoneCore)
			if tt.ok {
				if err != nil {
					t.Fatalf("Inject(y=%v): %v", tt.y, err)
				}
				if e.Len() != 6 {
					t.Errorf("population = %d, want 6", e.Len())
				}
				return
			}
			if !errors.Is(err, ErrOutOfBounds) || !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Inject(y=%v): expected ErrOutOfBounds, got %v", tt.y, err)
			}
			if e.Len() != 5 {
				t.Errorf("rejected inject changed population to %d", e.Len())
			}
			for _, s := range e.Snapshot() {
				if s.Y < 0 || (tt.upper && s.Y >= cfg.Derived.Height) {
					t.Fatalf("snapshot holds sprite outside the surface: %+v", s)
				}
			}
		})
	}

	e, _ := newTestEngine(t, 0)
	if err := e.InjectParticle(Particle{X: 1, Y: -3, Temperature: 1, Lifespan: 1, Zone: components.ZoneCore}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("InjectParticle above the top: expected ErrOutOfBounds, got %v", err)
	}
}

func TestInjectParticle_Invalid(t *testing.T) {
	valid := Particle{X: 1, Y: 1, Temperature: 1, Lifespan: 1, Depth: 0.5, Zone: components.ZoneCore}

	tests := []struct {
		name   string
		mutate func(p *Particle)
	}{
		{"nan velocity", func(p *Particle) { p.VX = math.NaN() }},
		{"zero lifespan", func(p *Particle) { p.Lifespan = 0 }},
		{"age past lifespan", func(p *Particle) { p.Age = 2 }},
		{"negative size", func(p *Particle) { p.MaxSize = -1 }},
		{"depth above 1", func(p *Particle) { p.Depth = 1.5 }},
		{"cold", func(p *Particle) { p.Temperature = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t, 0)
			p := valid
			tt.mutate(&p)
			if err := e.InjectParticle(p); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			if e.Len() != 0 {
				t.Error("invalid particle was added")
			}
		})
	}

	e, _ := newTestEngine(t, 0)
	if err := e.InjectParticle(valid); err != nil {
		t.Errorf("valid particle rejected: %v", err)
	}
}

// ---------- Snapshot ----------

func TestSnapshot_DoesNotMutate(t *testing.T) {
	e, _ := newTestEngine(t, 200)
	for i := 0; i < 30; i++ {
		if _, err := e.Tick(frame); err != nil {
			t.Fatal(err)
		}
	}

	before := e.Particles()
	clock := e.Clock()
	sprites := e.Snapshot()
	after := e.Particles()

	if len(sprites) != len(before) {
		t.Fatalf("snapshot has %d sprites, want %d", len(sprites), len(before))
	}
	if e.Clock() != clock {
		t.Error("snapshot advanced the clock")
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("snapshot mutated particle %d", i)
		}
	}
}

func TestSnapshot_MapsParticles(t *testing.T) {
	e, cfg := newTestEngine(t, 100)
	palette := systems.NewPalette(cfg.Color)

	particles := e.Particles()
	sprites := e.Snapshot()
	for i, s := range sprites {
		p := particles[i]
		if s.X != p.X || s.Y != p.Y {
			t.Fatalf("sprite %d at (%f, %f), particle at (%f, %f)", i, s.X, s.Y, p.X, p.Y)
		}
		if s.Radius != math.Max(1, p.Size) {
			t.Fatalf("sprite %d radius %f, want %f", i, s.Radius, math.Max(1, p.Size))
		}
		if s.Color != palette.ColorFor(p.Temperature, p.Depth) {
			t.Fatalf("sprite %d colour mismatch", i)
		}
	}
}

func TestAppendSnapshot_ReusesBuffer(t *testing.T) {
	e, _ := newTestEngine(t, 64)
	buf := make([]Sprite, 0, 128)
	out := e.AppendSnapshot(buf[:0])
	if len(out) != 64 || &out[0] != &buf[:1][0] {
		t.Error("expected sprites appended into the supplied buffer")
	}
}

// ---------- Reset ----------

func TestReset(t *testing.T) {
	e, cfg := newTestEngine(t, 10)
	cfg.Simulation.Population = 25
	if err := e.Inject(1, 1, 1, components.ZoneCore); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Tick(frame); err != nil {
		t.Fatal(err)
	}

	e.Reset()
	if e.Clock() != 0 {
		t.Errorf("clock = %f after reset", e.Clock())
	}
	if e.Len() != 25 {
		t.Errorf("Len = %d after reset, want 25", e.Len())
	}
}

type phaseLog []string

func (l *phaseLog) StartPhase(name string) { *l = append(*l, name) }

func TestTick_PhaseTimer(t *testing.T) {
	e, _ := newTestEngine(t, 10)
	var log phaseLog
	e.SetPhaseTimer(&log)

	if _, err := e.Tick(frame); err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 || log[0] != systems.PhasePhysics || log[1] != systems.PhaseRespawn {
		t.Errorf("phases = %v, want [physics respawn]", log)
	}

	e.SetPhaseTimer(nil)
	if _, err := e.Tick(frame); err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 {
		t.Errorf("timer still called after removal: %v", log)
	}
}

func TestNearest(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	for _, x := range []float64{100, 200, 300} {
		if err := e.Inject(x, 300, 0.9, components.ZoneCore); err != nil {
			t.Fatal(err)
		}
	}

	p, ok := e.Nearest(210, 305, 20)
	if !ok {
		t.Fatal("expected a particle within range")
	}
	if p.X != 200 || !p.Injected {
		t.Errorf("nearest = %+v, want the particle at x=200", p)
	}
	if _, ok := e.Nearest(500, 100, 20); ok {
		t.Error("found a particle outside the radius")
	}
}

func TestSetPhysics(t *testing.T) {
	e, _ := newTestEngine(t, 0)
	p := e.Physics()
	p.Buoyancy = 55
	e.SetPhysics(p)
	if e.Physics().Buoyancy != 55 {
		t.Errorf("buoyancy = %v, want 55", e.Physics().Buoyancy)
	}
}
