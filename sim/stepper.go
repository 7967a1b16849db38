package sim

import "math"

// Stepper decides how many fixed steps to run for a measured frame time.
// The step size never changes; slow frames run more steps, up to a cap, and
// any backlog beyond the cap is dropped.
type Stepper struct {
	dt         float64
	maxCatchUp int
	acc        float64
}

// NewStepper creates a scheduler for step size dt.
func NewStepper(dt float64, maxCatchUp int) *Stepper {
	if maxCatchUp < 1 {
		maxCatchUp = 1
	}
	return &Stepper{dt: dt, maxCatchUp: maxCatchUp}
}

// DT returns the fixed step size.
func (s *Stepper) DT() float64 {
	return s.dt
}

// Advance adds elapsed wall time and returns the number of steps to run.
func (s *Stepper) Advance(elapsed float64) int {
	if math.IsNaN(elapsed) || math.IsInf(elapsed, 0) || elapsed < 0 || s.dt <= 0 {
		return 0
	}
	s.acc += elapsed

	steps := int(s.acc / s.dt)
	if steps > s.maxCatchUp {
		steps = s.maxCatchUp
		s.acc = 0
		return steps
	}
	s.acc -= float64(steps) * s.dt
	return steps
}

// Reset discards accumulated time.
func (s *Stepper) Reset() {
	s.acc = 0
}
