package systems

import (
	"math/rand"

	"github.com/pthm-cable/ember/config"
)

// Random is the randomness source used for particle construction.
// *rand.Rand satisfies it; tests pass a seeded one for determinism.
type Random interface {
	Float64() float64
	NormFloat64() float64
}

// NewRandom returns a seeded source.
func NewRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// uniform samples [lo, hi).
func uniform(rng Random, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// gauss samples a normal distribution.
func gauss(rng Random, mean, stddev float64) float64 {
	return mean + stddev*rng.NormFloat64()
}

// sample draws uniformly from a config range.
func sample(rng Random, r config.Range) float64 {
	return r.Lerp(rng.Float64())
}
