package sim

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/pthm-cable/ember/components"
	"github.com/pthm-cable/ember/systems"
)

// ErrInvalidArgument is returned when a caller passes a value the engine
// cannot use. The engine clamps or skips the operation and keeps running.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrOutOfBounds is returned for injections outside the live area. It wraps
// ErrInvalidArgument.
var ErrOutOfBounds = fmt.Errorf("%w: outside the surface", ErrInvalidArgument)

// Particle is a flattened copy of one particle's state.
type Particle struct {
	X, Y   float64
	VX, VY float64

	Temperature float64
	Age         float64
	Lifespan    float64

	InitialSize float64
	MaxSize     float64
	Size        float64
	Depth       float64

	Zone        components.Zone
	Sensitivity float64
	Serial      uint64
	Injected    bool
}

// Sprite is the renderable form of a live particle.
type Sprite struct {
	X, Y   float64
	Radius float64
	Color  color.NRGBA
}

// TickReport summarizes what happened during one tick.
type TickReport struct {
	Cooled      int // Expired because temperature reached zero
	Aged        int // Expired because age reached lifespan
	OutOfBounds int // Expired by leaving the surface
	Respawned   int // Base particles replaced
	Removed     int // Injected particles dropped
}

// Expired returns the total number of particles that failed liveness.
func (r TickReport) Expired() int {
	return r.Cooled + r.Aged + r.OutOfBounds
}

func (r *TickReport) count(c systems.Cause) {
	switch c {
	case systems.Cooled:
		r.Cooled++
	case systems.Aged:
		r.Aged++
	case systems.OutOfBounds:
		r.OutOfBounds++
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

func validate(p *Particle) error {
	for _, v := range [...]float64{p.X, p.Y, p.VX, p.VY, p.Age, p.Lifespan, p.InitialSize, p.MaxSize, p.Size, p.Depth, p.Sensitivity} {
		if !systems.IsFinite(v) {
			return invalid("non-finite particle field %v", v)
		}
	}
	if !systems.IsFinite(p.Temperature) || p.Temperature <= 0 {
		return invalid("temperature %v must be positive", p.Temperature)
	}
	if !p.Zone.Valid() {
		return invalid("unknown zone %d", p.Zone)
	}
	if p.Lifespan <= 0 || p.Age < 0 || p.Age >= p.Lifespan {
		return invalid("age %v outside lifespan %v", p.Age, p.Lifespan)
	}
	if p.InitialSize < 0 || p.MaxSize < 0 || p.Size < 0 {
		return invalid("negative size")
	}
	if p.Depth < 0 || p.Depth > 1 {
		return invalid("depth %v outside [0, 1]", p.Depth)
	}
	return nil
}
