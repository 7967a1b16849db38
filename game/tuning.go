package game

import (
	"log/slog"

	"github.com/pthm-cable/ember/config"
	"github.com/pthm-cable/ember/systems"
	"github.com/pthm-cable/ember/ui"
)

// tuningFromConfig seeds the live tuning values from the loaded config.
func tuningFromConfig(cfg *config.Config) ui.Tuning {
	w := cfg.Derived.ZoneWeights
	return ui.Tuning{
		TurbulenceStrength: float32(cfg.Turbulence.Strength),
		Buoyancy:           float32(cfg.Physics.Buoyancy),
		CoolingRate:        float32(cfg.Physics.CoolingRate),
		ZoneWeights:        [3]float32{float32(w[0]), float32(w[1]), float32(w[2])},
		GammaRemap:         cfg.Color.GammaRemap,
		EnforceUpperBound:  cfg.Physics.EnforceUpperBound,
		ThermalDrag:        cfg.Physics.ThermalDrag,
	}
}

// applyTuning pushes the tuning values into the engine. Existing particles
// keep their state; new parameters apply from the next tick.
func (g *Game) applyTuning() {
	t := g.tuning

	p := g.engine.Physics()
	p.Buoyancy = float64(t.Buoyancy)
	p.CoolingRate = float64(t.CoolingRate)
	p.EnforceUpperBound = t.EnforceUpperBound
	p.ThermalDrag = t.ThermalDrag
	g.engine.SetPhysics(p)

	turb := g.cfg.Turbulence
	turb.Strength = float64(t.TurbulenceStrength)
	g.field = systems.NewField(turb)
	g.engine.SetField(g.field)

	g.engine.SetZoneWeights(t.NormalizeWeights())

	colors := g.cfg.Color
	colors.GammaRemap = t.GammaRemap
	g.engine.SetPalette(systems.NewPalette(colors))

	slog.Debug("tuning applied",
		"turbulence", t.TurbulenceStrength,
		"buoyancy", t.Buoyancy,
		"cooling", t.CoolingRate,
		"gamma_remap", t.GammaRemap,
		"upper_bound", t.EnforceUpperBound,
		"thermal_drag", t.ThermalDrag,
	)
}

// SetTuning replaces the tuning values and applies them.
func (g *Game) SetTuning(t ui.Tuning) {
	g.tuning = t
	g.applyTuning()
}

// Tuning returns the current tuning values.
func (g *Game) Tuning() ui.Tuning {
	return g.tuning
}
