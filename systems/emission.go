package systems

import (
	"math"

	"github.com/pthm-cable/ember/components"
	"github.com/pthm-cable/ember/config"
)

// velocityProfile describes how a zone's initial velocity is sampled.
type velocityProfile struct {
	baseSpeed    float64 // Speed at temperature 0
	tempSpeed    float64 // Extra speed per unit temperature
	jitter       float64 // Uniform lateral jitter added to vx
	sigma        float64 // Angle standard deviation (gaussian mode)
	minAngle     float64 // Clamp range for the emission angle
	maxAngle     float64
	lateralBands float64 // Chance of a lateral band (outer zone only)
}

var profiles = [components.NumZones]velocityProfile{
	components.ZoneCore: {
		baseSpeed: 80, tempSpeed: 200, jitter: 3,
		sigma:    math.Pi / 12,
		minAngle: -math.Pi, maxAngle: 0,
	},
	components.ZoneMid: {
		baseSpeed: 60, tempSpeed: 150, jitter: 10,
		sigma:    math.Pi / 8,
		minAngle: -3 * math.Pi / 4, maxAngle: -math.Pi / 4,
	},
	components.ZoneOuter: {
		baseSpeed: 50, tempSpeed: 100, jitter: 15,
		sigma:    math.Pi / 4,
		minAngle: -5 * math.Pi / 6, maxAngle: -math.Pi / 6,
		lateralBands: 0.3,
	},
}

// Emitter samples spawn state for new particles.
type Emitter struct {
	flame    config.FlameConfig
	emission config.EmissionConfig
	particle config.ParticleConfig
	weights  [components.NumZones]float64
	centerX  float64
	height   float64
}

// NewEmitter creates an emitter from config.
func NewEmitter(cfg *config.Config) *Emitter {
	return &Emitter{
		flame:    cfg.Flame,
		emission: cfg.Emission,
		particle: cfg.Particle,
		weights:  cfg.Derived.ZoneWeights,
		centerX:  cfg.Derived.CenterX,
		height:   cfg.Derived.Height,
	}
}

// SetZoneWeights overrides the zone weights.
func (e *Emitter) SetZoneWeights(w [components.NumZones]float64) {
	e.weights = w
}

// ChooseZone picks a zone by weighted random choice.
func ChooseZone(rng Random, weights [components.NumZones]float64) components.Zone {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return components.ZoneCore
	}

	r := rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return components.Zone(i)
		}
		r -= w
	}
	// Rounding fallthrough: last zone with a positive weight
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return components.Zone(i)
		}
	}
	return components.ZoneCore
}

// Spawn is the sampled creation state of one particle.
type Spawn struct {
	Position components.Position
	Velocity components.Velocity
	Thermal  components.Thermal
	Body     components.Body
	Emission components.Emission
}

// New samples a complete particle. respawn selects the respawn temperature
// ranges when they are enabled.
func (e *Emitter) New(rng Random, respawn bool) Spawn {
	zone := components.ZoneCore
	if e.flame.Layout != "disk" {
		zone = ChooseZone(rng, e.weights)
	}

	var pos components.Position
	if e.flame.Layout == "disk" {
		pos = e.diskPosition(rng)
	} else {
		pos = e.zonePosition(rng, zone)
	}

	temp := e.Temperature(rng, zone, respawn)
	return e.Build(rng, pos, temp, zone)
}

// Build samples everything except position, temperature and zone.
func (e *Emitter) Build(rng Random, pos components.Position, temp float64, zone components.Zone) Spawn {
	vx, vy := e.Velocity(rng, zone, temp)
	initial := sample(rng, e.particle.InitialSize)
	return Spawn{
		Position: pos,
		Velocity: components.Velocity{X: vx, Y: vy},
		Thermal: components.Thermal{
			Temperature: temp,
			Lifespan:    sample(rng, e.particle.Lifespan),
		},
		Body: components.Body{
			InitialSize: initial,
			MaxSize:     sample(rng, e.particle.MaxSize),
			Size:        initial,
			Depth:       sample(rng, e.particle.Depth),
		},
		Emission: components.Emission{
			Zone:        zone,
			Sensitivity: sample(rng, e.particle.TurbulenceSensitivity),
		},
	}
}

// Reset re-arms an expired particle in place, keeping its zone, sizes,
// depth and sensitivity. Velocity is uniform rather than zone-shaped.
func (e *Emitter) Reset(rng Random, s *Spawn) {
	zone := s.Emission.Zone
	if e.flame.Layout == "disk" {
		s.Position = e.diskPosition(rng)
	} else {
		s.Position = e.zonePosition(rng, zone)
	}
	s.Velocity = components.Velocity{
		X: uniform(rng, -100, 100),
		Y: uniform(rng, -290, 10),
	}
	s.Thermal = components.Thermal{
		Temperature: e.Temperature(rng, zone, true),
		Lifespan:    sample(rng, e.particle.Lifespan),
	}
	s.Body.Size = s.Body.InitialSize
}

func (e *Emitter) zoneConfig(zone components.Zone) config.ZoneConfig {
	switch zone {
	case components.ZoneMid:
		return e.emission.Mid
	case components.ZoneOuter:
		return e.emission.Outer
	default:
		return e.emission.Core
	}
}

// Temperature samples a starting temperature for the zone.
func (e *Emitter) Temperature(rng Random, zone components.Zone, respawn bool) float64 {
	zc := e.zoneConfig(zone)
	r := zc.SpawnTemperature
	if respawn && e.emission.UseRespawnTemperatures {
		r = zc.RespawnTemperature
	}
	return sample(rng, r)
}

// zonePosition samples a point in the zone's band above the surface bottom.
// y stays strictly above the bottom edge so new particles pass the bounds check.
func (e *Emitter) zonePosition(rng Random, zone components.Zone) components.Position {
	zc := e.zoneConfig(zone)
	half := e.flame.BaseWidth * zc.LateralFraction
	band := e.flame.VolumeHeight * zc.HeightFraction
	return components.Position{
		X: e.centerX + uniform(rng, -half, half),
		Y: e.height - (1-rng.Float64())*band,
	}
}

// diskPosition samples inside an ellipse centered three quarters down the surface.
func (e *Emitter) diskPosition(rng Random) components.Position {
	r := e.flame.BaseWidth / 2
	rx := (rng.Float64() - 0.5) * e.flame.BaseWidth
	return components.Position{
		X: e.centerX + rx,
		Y: 0.75*e.height + math.Sqrt(r*r-rx*rx)*2*(rng.Float64()-0.5),
	}
}

// Velocity samples an initial velocity. Hotter particles are launched faster.
func (e *Emitter) Velocity(rng Random, zone components.Zone, temp float64) (vx, vy float64) {
	p := profiles[components.ZoneCore]
	if zone.Valid() {
		p = profiles[zone]
	}

	angle := e.angle(rng, zone, p)
	speed := (temp*p.tempSpeed + p.baseSpeed) * uniform(rng, 0.8, 1.2)

	vx = speed*math.Cos(angle) + uniform(rng, -p.jitter, p.jitter)
	vy = speed * math.Sin(angle)
	return vx, vy
}

func (e *Emitter) angle(rng Random, zone components.Zone, p velocityProfile) float64 {
	const up = -math.Pi / 2

	if e.emission.AngleMode == "uniform" {
		return uniform(rng, p.minAngle, p.maxAngle)
	}

	switch zone {
	case components.ZoneMid:
		// Bimodal around -75 and -105 degrees
		base := -math.Pi * 5 / 12
		if rng.Float64() >= 0.5 {
			base = -math.Pi * 7 / 12
		}
		return clampFloat(gauss(rng, base, p.sigma), p.minAngle, p.maxAngle)
	case components.ZoneOuter:
		a := gauss(rng, up, p.sigma)
		if rng.Float64() < p.lateralBands {
			if rng.Float64() < 0.5 {
				return uniform(rng, -math.Pi/3, -math.Pi/6)
			}
			return uniform(rng, -5*math.Pi/6, -2*math.Pi/3)
		}
		return clampFloat(a, p.minAngle, p.maxAngle)
	default:
		return gauss(rng, up, p.sigma)
	}
}
