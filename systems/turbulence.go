package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/ember/config"
)

// Field produces a turbulent force at a position and simulation time.
// Implementations are deterministic and side-effect free.
type Field interface {
	Force(x, y, t float64) (fx, fy float64)
}

// Octave weights shared by every field: the horizontal force is bounded by
// their sum times the strength.
var octaves = [3]struct{ space, time, amp float64 }{
	{1, 1, 1},
	{2, 1.5, 0.5},
	{4, 2, 0.25},
}

// OctaveSum is the bound on |combined noise| for unit-amplitude base noise.
const OctaveSum = 1.75

// SineField is a cheap trigonometric pseudo-noise field.
type SineField struct {
	Strength       float64
	Scale          float64 // Spatial frequency
	VerticalFactor float64 // Vertical force is this fraction of Strength
	VerticalOffset float64 // Spatial offset decoupling the vertical phase
}

// NewSineField creates a sine field from config.
func NewSineField(cfg config.TurbulenceConfig) SineField {
	return SineField{
		Strength:       cfg.Strength,
		Scale:          cfg.Scale,
		VerticalFactor: cfg.VerticalFactor,
		VerticalOffset: cfg.VerticalOffset,
	}
}

// Noise returns the base scalar noise in [-1, 1].
func (f SineField) Noise(x, y, t float64) float64 {
	s := f.Scale
	return math.Sin(x*s+t) *
		math.Cos(y*s+t*0.7) *
		math.Sin((x+y)*s*0.5+t*1.3)
}

// Force implements Field.
func (f SineField) Force(x, y, t float64) (fx, fy float64) {
	var combined float64
	for _, o := range octaves {
		combined += f.Noise(x*o.space, y*o.space, t*o.time) * o.amp
	}

	fx = combined * f.Strength
	fy = f.Noise(x+f.VerticalOffset, y+f.VerticalOffset, t) * f.Strength * f.VerticalFactor
	return fx, fy
}

// SimplexField uses OpenSimplex noise with time as the third axis.
// Smoother and less periodic than SineField, at a higher cost per sample.
type SimplexField struct {
	noise          opensimplex.Noise
	Strength       float64
	Scale          float64
	VerticalFactor float64
	VerticalOffset float64
}

// NewSimplexField creates a seeded simplex field from config.
func NewSimplexField(cfg config.TurbulenceConfig) *SimplexField {
	return &SimplexField{
		noise:          opensimplex.New(cfg.Seed),
		Strength:       cfg.Strength,
		Scale:          cfg.Scale,
		VerticalFactor: cfg.VerticalFactor,
		VerticalOffset: cfg.VerticalOffset,
	}
}

// Noise returns the base scalar noise, clamped to [-1, 1].
func (f *SimplexField) Noise(x, y, t float64) float64 {
	return clampFloat(f.noise.Eval3(x*f.Scale, y*f.Scale, t), -1, 1)
}

// Force implements Field.
func (f *SimplexField) Force(x, y, t float64) (fx, fy float64) {
	var combined float64
	for _, o := range octaves {
		combined += f.Noise(x*o.space, y*o.space, t*o.time) * o.amp
	}

	fx = combined * f.Strength
	fy = f.Noise(x+f.VerticalOffset, y+f.VerticalOffset, t) * f.Strength * f.VerticalFactor
	return fx, fy
}

// Field kinds accepted by NewField.
const (
	KindSine    = "sine"
	KindSimplex = "simplex"
)

// NewField returns the field selected by cfg.Kind.
func NewField(cfg config.TurbulenceConfig) Field {
	if cfg.Kind == KindSimplex {
		return NewSimplexField(cfg)
	}
	return NewSineField(cfg)
}
