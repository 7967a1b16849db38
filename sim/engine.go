// Package sim owns the particle population and advances it tick by tick.
package sim

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ember/components"
	"github.com/pthm-cable/ember/config"
	"github.com/pthm-cable/ember/systems"
)

// Engine holds one fire: its particles, clock and randomness.
// It is not safe for concurrent use.
type Engine struct {
	cfg   *config.Config
	rng   systems.Random
	world *ecs.World

	mapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Thermal,
		components.Body,
		components.Emission,
	]
	filter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Thermal,
		components.Body,
		components.Emission,
	]

	physics *systems.PhysicsSystem
	emitter *systems.Emitter
	palette systems.Palette

	timer PhaseTimer

	clock      float64
	nextSerial uint64
	population int
	count      int
}

// PhaseTimer receives phase boundaries during Tick.
type PhaseTimer interface {
	StartPhase(name string)
}

// New creates an empty engine. Call Initialize to populate it.
func New(cfg *config.Config, rng systems.Random) *Engine {
	world := ecs.NewWorld()

	e := &Engine{
		cfg:   cfg,
		rng:   rng,
		world: world,
		mapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Thermal,
			components.Body,
			components.Emission,
		](world),
		filter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Thermal,
			components.Body,
			components.Emission,
		](world),
		emitter: systems.NewEmitter(cfg),
		palette: systems.NewPalette(cfg.Color),
	}
	e.physics = systems.NewPhysicsSystem(world, cfg, systems.NewField(cfg.Turbulence))
	return e
}

// Initialize replaces any existing particles with n freshly sampled ones.
// A negative n is treated as zero.
func (e *Engine) Initialize(n int) error {
	var err error
	if n < 0 {
		err = invalid("population %d", n)
		n = 0
	}

	e.clear()
	e.population = n
	for i := 0; i < n; i++ {
		s := e.emitter.New(e.rng, false)
		e.create(&s)
	}
	return err
}

// Reset re-initializes with the configured population and zeroes the clock.
func (e *Engine) Reset() {
	e.clock = 0
	_ = e.Initialize(e.cfg.Simulation.Population)
}

// Tick advances the simulation by dt seconds. Expired base particles are
// replaced; expired injected particles are removed.
func (e *Engine) Tick(dt float64) (TickReport, error) {
	var report TickReport
	if !systems.IsFinite(dt) || dt <= 0 {
		return report, invalid("tick dt %v", dt)
	}
	if maxDT := e.cfg.Simulation.MaxDT; maxDT > 0 && dt > maxDT {
		dt = maxDT
	}

	e.clock += dt
	e.startPhase(systems.PhasePhysics)
	expired := e.physics.Update(e.clock, dt)
	e.startPhase(systems.PhaseRespawn)

	// Query is closed; safe to modify entities now
	for _, x := range expired {
		report.count(x.Cause)

		pos, vel, th, body, em := e.mapper.Get(x.Entity)
		if em.Injected {
			e.mapper.Remove(x.Entity)
			e.count--
			report.Removed++
			continue
		}

		s := systems.Spawn{Position: *pos, Velocity: *vel, Thermal: *th, Body: *body, Emission: *em}
		if e.cfg.Emission.RespawnMode == "reset" {
			e.emitter.Reset(e.rng, &s)
		} else {
			s = e.emitter.New(e.rng, true)
			s.Emission.Serial = e.serial()
		}
		*pos, *vel, *th, *body, *em = s.Position, s.Velocity, s.Thermal, s.Body, s.Emission
		report.Respawned++
	}
	return report, nil
}

// checkBounds applies the vertical bounds of the liveness check.
func (e *Engine) checkBounds(y float64) error {
	if y < 0 || (e.physics.Physics().EnforceUpperBound && y >= e.cfg.Derived.Height) {
		return fmt.Errorf("%w: y %v", ErrOutOfBounds, y)
	}
	return nil
}

// SetPhaseTimer installs a timer notified of each Tick phase. nil disables it.
func (e *Engine) SetPhaseTimer(t PhaseTimer) {
	e.timer = t
}

func (e *Engine) startPhase(name string) {
	if e.timer != nil {
		e.timer.StartPhase(name)
	}
}

// Inject adds one particle at (x, y) with the given temperature and zone.
// The remaining attributes are sampled as for a regular particle. Positions
// the liveness check would reject fail with ErrOutOfBounds.
func (e *Engine) Inject(x, y, temperature float64, zone components.Zone) error {
	if !systems.IsFinite(x) || !systems.IsFinite(y) {
		return invalid("inject position (%v, %v)", x, y)
	}
	if err := e.checkBounds(y); err != nil {
		return err
	}
	if !systems.IsFinite(temperature) || temperature <= 0 {
		return invalid("inject temperature %v", temperature)
	}
	if !zone.Valid() {
		return invalid("inject zone %d", zone)
	}

	s := e.emitter.Build(e.rng, components.Position{X: x, Y: y}, temperature, zone)
	s.Emission.Injected = true
	e.create(&s)
	return nil
}

// InjectParticle adds a fully specified particle. Serial and Injected are
// assigned by the engine. A zero Size starts at InitialSize.
func (e *Engine) InjectParticle(p Particle) error {
	if err := validate(&p); err != nil {
		return err
	}
	if err := e.checkBounds(p.Y); err != nil {
		return err
	}
	if p.Size == 0 {
		p.Size = p.InitialSize
	}

	s := systems.Spawn{
		Position: components.Position{X: p.X, Y: p.Y},
		Velocity: components.Velocity{X: p.VX, Y: p.VY},
		Thermal:  components.Thermal{Temperature: p.Temperature, Age: p.Age, Lifespan: p.Lifespan},
		Body:     components.Body{InitialSize: p.InitialSize, MaxSize: p.MaxSize, Size: p.Size, Depth: p.Depth},
		Emission: components.Emission{Zone: p.Zone, Sensitivity: p.Sensitivity, Injected: true},
	}
	e.create(&s)
	return nil
}

// Snapshot maps every live particle to a sprite without changing state.
func (e *Engine) Snapshot() []Sprite {
	return e.AppendSnapshot(make([]Sprite, 0, e.count))
}

// AppendSnapshot appends sprites to dst, letting callers reuse a buffer
// across frames.
func (e *Engine) AppendSnapshot(dst []Sprite) []Sprite {
	query := e.filter.Query()
	for query.Next() {
		pos, _, th, body, _ := query.Get()
		dst = append(dst, Sprite{
			X:      pos.X,
			Y:      pos.Y,
			Radius: math.Max(1, body.Size),
			Color:  e.palette.ColorFor(th.Temperature, body.Depth),
		})
	}
	return dst
}

// Particles returns a copy of every particle's state.
func (e *Engine) Particles() []Particle {
	out := make([]Particle, 0, e.count)
	query := e.filter.Query()
	for query.Next() {
		out = append(out, particleOf(query.Get()))
	}
	return out
}

// Nearest returns the particle closest to (x, y) within radius.
func (e *Engine) Nearest(x, y, radius float64) (Particle, bool) {
	var best Particle
	found := false
	bestD2 := radius * radius

	query := e.filter.Query()
	for query.Next() {
		pos, vel, th, body, em := query.Get()
		dx, dy := pos.X-x, pos.Y-y
		if d2 := dx*dx + dy*dy; d2 <= bestD2 {
			bestD2 = d2
			best = particleOf(pos, vel, th, body, em)
			found = true
		}
	}
	return best, found
}

func particleOf(pos *components.Position, vel *components.Velocity, th *components.Thermal, body *components.Body, em *components.Emission) Particle {
	return Particle{
		X: pos.X, Y: pos.Y,
		VX: vel.X, VY: vel.Y,
		Temperature: th.Temperature,
		Age:         th.Age,
		Lifespan:    th.Lifespan,
		InitialSize: body.InitialSize,
		MaxSize:     body.MaxSize,
		Size:        body.Size,
		Depth:       body.Depth,
		Zone:        em.Zone,
		Sensitivity: em.Sensitivity,
		Serial:      em.Serial,
		Injected:    em.Injected,
	}
}

// Len returns the number of live particles.
func (e *Engine) Len() int {
	return e.count
}

// Population returns the base population set by Initialize.
func (e *Engine) Population() int {
	return e.population
}

// Clock returns the simulation time in seconds.
func (e *Engine) Clock() float64 {
	return e.clock
}

// SetField swaps the turbulence field.
func (e *Engine) SetField(f systems.Field) {
	e.physics.SetField(f)
}

// SetPhysics replaces the physics parameters for subsequent ticks.
func (e *Engine) SetPhysics(p config.PhysicsConfig) {
	e.physics.SetPhysics(p)
}

// Physics returns the active physics parameters.
func (e *Engine) Physics() config.PhysicsConfig {
	return e.physics.Physics()
}

// SetZoneWeights changes the zone mix for particles spawned from now on.
func (e *Engine) SetZoneWeights(w [components.NumZones]float64) {
	e.emitter.SetZoneWeights(w)
}

// SetPalette swaps the colour mapping used by Snapshot.
func (e *Engine) SetPalette(p systems.Palette) {
	e.palette = p
}

func (e *Engine) serial() uint64 {
	e.nextSerial++
	return e.nextSerial
}

func (e *Engine) create(s *systems.Spawn) {
	s.Emission.Serial = e.serial()
	e.mapper.NewEntity(&s.Position, &s.Velocity, &s.Thermal, &s.Body, &s.Emission)
	e.count++
}

// clear removes every particle using the collect-then-remove pattern.
func (e *Engine) clear() {
	var toRemove []ecs.Entity
	query := e.filter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, entity := range toRemove {
		e.mapper.Remove(entity)
	}
	e.count = 0
}
