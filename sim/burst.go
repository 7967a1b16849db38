package sim

import "github.com/pthm-cable/ember/systems"

// Point is a position on the surface.
type Point struct {
	X, Y float64
}

// BurstBudget returns how many of want particles fit under maxPopulation
// given live particles. A cap of zero or less means unlimited.
func BurstBudget(live, want, maxPopulation int) int {
	if want < 0 {
		return 0
	}
	if maxPopulation <= 0 {
		return want
	}
	return max(0, min(want, maxPopulation-live))
}

// BurstPoints scatters n points around (x, y) with a gaussian spread.
func BurstPoints(rng systems.Random, x, y float64, n int, spread float64) []Point {
	points := make([]Point, max(n, 0))
	for i := range points {
		points[i] = Point{
			X: x + rng.NormFloat64()*spread,
			Y: y + rng.NormFloat64()*spread,
		}
	}
	return points
}
