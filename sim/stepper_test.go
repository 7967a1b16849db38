package sim

import (
	"math"
	"testing"
)

func TestStepper_Advance(t *testing.T) {
	const dt = 1.0 / 60

	tests := []struct {
		name       string
		maxCatchUp int
		frames     []float64
		want       []int
	}{
		{"exact frames", 3, []float64{dt, dt, dt}, []int{1, 1, 1}},
		{"fast display accumulates", 3, []float64{dt / 2, dt / 2, dt / 2, dt / 2}, []int{0, 1, 0, 1}},
		{"slow frame catches up", 3, []float64{2 * dt}, []int{2}},
		{"catch up capped", 2, []float64{10 * dt, dt}, []int{2, 1}},
		{"invalid elapsed ignored", 3, []float64{math.NaN(), -1, math.Inf(1), dt}, []int{0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStepper(dt, tt.maxCatchUp)
			for i, elapsed := range tt.frames {
				// Nudge past float rounding on exact multiples
				if got := s.Advance(elapsed + 1e-12); got != tt.want[i] {
					t.Errorf("frame %d: got %d steps, want %d", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestStepper_StepSizeFixed(t *testing.T) {
	s := NewStepper(0.02, 5)
	s.Advance(0.07)
	if s.DT() != 0.02 {
		t.Errorf("DT changed to %f", s.DT())
	}
}

func TestStepper_Reset(t *testing.T) {
	s := NewStepper(0.1, 1)
	s.Advance(0.09)
	s.Reset()
	if got := s.Advance(0.05); got != 0 {
		t.Errorf("expected backlog discarded, got %d steps", got)
	}
}
