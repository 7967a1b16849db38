// Package components defines ECS components for the simulation.
package components

// Zone identifies the emission zone a particle was spawned from.
// Fixed at creation; only affects initial velocity and temperature sampling.
type Zone uint8

const (
	ZoneCore  Zone = iota // Hottest, narrow, near the base
	ZoneMid               // Cooler, wider, angled emission
	ZoneOuter             // Coolest, widest lateral spread
)

// NumZones is the number of emission zones.
const NumZones = 3

// String returns the config name of the zone.
func (z Zone) String() string {
	switch z {
	case ZoneCore:
		return "core"
	case ZoneMid:
		return "mid"
	case ZoneOuter:
		return "outer"
	default:
		return "unknown"
	}
}

// Valid reports whether z is a known zone.
func (z Zone) Valid() bool {
	return z < NumZones
}

// ParseZone maps a config name to a Zone.
func ParseZone(name string) (Zone, bool) {
	switch name {
	case "core":
		return ZoneCore, true
	case "mid":
		return ZoneMid, true
	case "outer":
		return ZoneOuter, true
	}
	return 0, false
}

// Position represents a particle's position on the surface.
// Y grows downward, matching screen coordinates.
type Position struct {
	X, Y float64
}

// Velocity represents a particle's velocity in pixels per second.
type Velocity struct {
	X, Y float64
}

// Thermal holds the state that decides a particle's lifetime.
type Thermal struct {
	Temperature float64 // Nominally [0, 1]; dead once <= 0
	Age         float64 // Seconds since creation
	Lifespan    float64 // Dies when Age >= Lifespan
}

// Body holds the rendered radius envelope.
type Body struct {
	InitialSize float64
	MaxSize     float64
	Size        float64 // Recomputed every tick
	Depth       float64 // 0 = front, 1 = back; only modulates opacity
}

// Emission holds immutable creation metadata.
type Emission struct {
	Zone        Zone
	Sensitivity float64 // Turbulence force multiplier
	Serial      uint64  // Engine-assigned, unique per engine
	Injected    bool    // Added by the caller; removed rather than replaced on expiry
}
