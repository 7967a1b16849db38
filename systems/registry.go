package systems

// Phase IDs used for perf tracking.
const (
	PhasePhysics   = "physics"
	PhaseRespawn   = "respawn"
	PhaseInject    = "inject"
	PhaseSnapshot  = "snapshot"
	PhaseRender    = "render"
	PhaseTelemetry = "telemetry"
)

// SystemInfo describes a simulation phase for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string
	Category    string // Grouping (e.g., "core", "visual")
}

// SystemRegistry holds metadata about all phases.
// This centralizes naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known phases in tick order.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: PhasePhysics, Name: "Physics", Description: "Turbulence, buoyancy, cooling and sizing", Category: "core"})
	r.Register(SystemInfo{ID: PhaseRespawn, Name: "Respawn", Description: "Replaces expired particles", Category: "core"})
	r.Register(SystemInfo{ID: PhaseInject, Name: "Inject", Description: "Adds pointer-driven particles", Category: "input"})
	r.Register(SystemInfo{ID: PhaseSnapshot, Name: "Snapshot", Description: "Maps particles to sprites", Category: "visual"})
	r.Register(SystemInfo{ID: PhaseRender, Name: "Render", Description: "Paints sprites to the surface", Category: "visual"})
	r.Register(SystemInfo{ID: PhaseTelemetry, Name: "Telemetry", Description: "Collects window stats", Category: "internal"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	if _, ok := r.byID[info.ID]; !ok {
		r.systems = append(r.systems, info)
	}
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
