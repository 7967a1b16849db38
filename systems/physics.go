// Package systems contains ECS systems for the simulation.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ember/components"
	"github.com/pthm-cable/ember/config"
)

// Cause records why a particle left the live set.
type Cause uint8

const (
	Alive Cause = iota
	Cooled
	Aged
	OutOfBounds
)

// String returns a short name used in logs and telemetry.
func (c Cause) String() string {
	switch c {
	case Alive:
		return "alive"
	case Cooled:
		return "cooled"
	case Aged:
		return "aged"
	case OutOfBounds:
		return "out_of_bounds"
	default:
		return "unknown"
	}
}

// Expired is a particle that failed the liveness check this tick.
type Expired struct {
	Entity ecs.Entity
	Cause  Cause
}

// PhysicsSystem advances every particle by one step.
type PhysicsSystem struct {
	filter  ecs.Filter5[components.Position, components.Velocity, components.Thermal, components.Body, components.Emission]
	field   Field
	physics config.PhysicsConfig
	size    config.SizeConfig
	height  float64

	expired []Expired
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, cfg *config.Config, field Field) *PhysicsSystem {
	return &PhysicsSystem{
		filter:  *ecs.NewFilter5[components.Position, components.Velocity, components.Thermal, components.Body, components.Emission](w),
		field:   field,
		physics: cfg.Physics,
		size:    cfg.Size,
		height:  cfg.Derived.Height,
	}
}

// SetField swaps the turbulence field.
func (s *PhysicsSystem) SetField(f Field) {
	s.field = f
}

// SetPhysics replaces the physics parameters used by later steps.
func (s *PhysicsSystem) SetPhysics(cfg config.PhysicsConfig) {
	s.physics = cfg
}

// Physics returns the active physics parameters.
func (s *PhysicsSystem) Physics() config.PhysicsConfig {
	return s.physics
}

// Field returns the active turbulence field.
func (s *PhysicsSystem) Field() Field {
	return s.field
}

// Update steps all particles at simulation time t and returns the ones that
// expired. The returned slice is reused by the next call.
func (s *PhysicsSystem) Update(t, dt float64) []Expired {
	s.expired = s.expired[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, vel, th, body, em := query.Get()
		if cause := s.Step(pos, vel, th, body, em.Sensitivity, t, dt); cause != Alive {
			s.expired = append(s.expired, Expired{Entity: query.Entity(), Cause: cause})
		}
	}
	return s.expired
}

// Step applies one update to a single particle and reports its liveness.
func (s *PhysicsSystem) Step(pos *components.Position, vel *components.Velocity, th *components.Thermal, body *components.Body, sensitivity, t, dt float64) Cause {
	p := &s.physics

	fx, fy := s.field.Force(pos.X, pos.Y, t)
	vel.X += fx * dt * sensitivity
	vel.Y += fy * dt * sensitivity

	vel.X *= p.DampingX
	vel.Y *= p.DampingY

	// Hotter rises faster
	vel.Y -= th.Temperature * p.Buoyancy * dt

	if p.ThermalDrag {
		drag := 0.98 + th.Temperature*0.02
		vel.X *= drag
		vel.Y *= drag
	}

	pos.X += vel.X * dt
	pos.Y += vel.Y * dt

	// Wobble from the particle's own age and position
	vel.X += math.Sin(th.Age*p.SwirlAgeRate+pos.X*p.SwirlSpatialRate) * p.SwirlAmplitude * dt

	th.Age += dt
	th.Temperature -= dt * p.CoolingRate

	body.Size = Size(s.size, body, th)

	return s.liveness(pos, th)
}

func (s *PhysicsSystem) liveness(pos *components.Position, th *components.Thermal) Cause {
	switch {
	case !(th.Temperature > 0):
		return Cooled
	case th.Age >= th.Lifespan:
		return Aged
	case !(pos.Y >= 0):
		return OutOfBounds
	case s.physics.EnforceUpperBound && pos.Y >= s.height:
		return OutOfBounds
	case !IsFinite(pos.X):
		return OutOfBounds
	}
	return Alive
}

// Size computes the rendered radius from age and temperature.
// During expansion the size only reaches ExpansionPhase/ExpansionSpan of the
// way to MaxSize; afterwards it follows temperature down to ShrinkFloor.
func Size(cfg config.SizeConfig, body *components.Body, th *components.Thermal) float64 {
	if th.Lifespan <= 0 {
		return body.InitialSize
	}
	progress := th.Age / th.Lifespan
	if progress < cfg.ExpansionPhase {
		return lerp(body.InitialSize, body.MaxSize, progress/cfg.ExpansionSpan)
	}
	return body.MaxSize * math.Max(cfg.ShrinkFloor, th.Temperature)
}
