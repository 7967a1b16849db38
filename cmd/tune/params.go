package main

import (
	"github.com/pthm-cable/ember/config"
)

// ParamSpec describes one tunable flame parameter.
type ParamSpec struct {
	Name    string  // Short name for logging
	Path    string  // YAML path in config
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Starting point for the search
}

// ParamVector maps between the optimizer's flat vector and config fields.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector returns the tuned parameter set. Defaults follow defaults.yaml.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "turbulence_strength", Path: "turbulence.strength", Min: 0, Max: 150, Default: 40},
			{Name: "turbulence_scale", Path: "turbulence.scale", Min: 0.002, Max: 0.05, Default: 0.02},
			{Name: "buoyancy", Path: "physics.buoyancy", Min: 0, Max: 80, Default: 20},
			{Name: "damping_y", Path: "physics.damping_y", Min: 0.9, Max: 1.0, Default: 0.99},
			{Name: "cooling_rate", Path: "physics.cooling_rate", Min: 0.05, Max: 1.5, Default: 0.3},
			{Name: "lifespan_max", Path: "particle.lifespan.max", Min: 1, Max: 6, Default: 3},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default value of every parameter.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize maps raw values to [0, 1] using each spec's bounds.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize maps [0, 1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp bounds every value to its spec range.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped values into cfg. Order matches NewParamVector.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Turbulence.Strength = c[0]
	cfg.Turbulence.Scale = c[1]
	cfg.Physics.Buoyancy = c[2]
	cfg.Physics.DampingY = c[3]
	cfg.Physics.CoolingRate = c[4]
	cfg.Particle.Lifespan.Max = max(c[5], cfg.Particle.Lifespan.Min)

	cfg.ComputeDerived()
}
