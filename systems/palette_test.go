package systems

import (
	"testing"

	"github.com/pthm-cable/ember/config"
)

func TestColorFor_Endpoints(t *testing.T) {
	for _, gamma := range []bool{false, true} {
		p := NewPalette(config.ColorConfig{GammaRemap: gamma, Gamma: 0.6})
		first, last := FireStops[0].Color, FireStops[len(FireStops)-1].Color

		for _, depth := range []float64{0, 0.3, 1} {
			c := p.ColorFor(0, depth)
			if c.R != first.R || c.G != first.G || c.B != first.B {
				t.Errorf("gamma=%v depth=%.1f: ColorFor(0) = %v, want rgb of %v", gamma, depth, c, first)
			}
			c = p.ColorFor(1, depth)
			if c.R != last.R || c.G != last.G || c.B != last.B {
				t.Errorf("gamma=%v depth=%.1f: ColorFor(1) = %v, want rgb of %v", gamma, depth, c, last)
			}
		}
	}
}

func TestColorFor_ClampsTemperature(t *testing.T) {
	p := NewPalette(config.ColorConfig{})
	if p.ColorFor(-3, 0.5) != p.ColorFor(0, 0.5) {
		t.Error("negative temperature should clamp to 0")
	}
	if p.ColorFor(7, 0.5) != p.ColorFor(1, 0.5) {
		t.Error("temperature above 1 should clamp to 1")
	}
}

func TestColorFor_AlphaMonotonicInTemperature(t *testing.T) {
	for _, gamma := range []bool{false, true} {
		p := NewPalette(config.ColorConfig{GammaRemap: gamma, Gamma: 0.6})
		for _, depth := range []float64{0, 0.5, 1} {
			prev := p.ColorFor(0, depth).A
			for i := 1; i <= 200; i++ {
				a := p.ColorFor(float64(i)/200, depth).A
				if a < prev {
					t.Fatalf("gamma=%v depth=%.1f: alpha fell from %d to %d at T=%.3f", gamma, depth, prev, a, float64(i)/200)
				}
				prev = a
			}
		}
	}
}

func TestColorFor_AlphaRisesAsDepthFalls(t *testing.T) {
	p := NewPalette(config.ColorConfig{})
	for _, temp := range []float64{0, 0.25, 0.5, 1} {
		prev := p.ColorFor(temp, 1).A
		for i := 99; i >= 0; i-- {
			a := p.ColorFor(temp, float64(i)/100).A
			if a < prev {
				t.Fatalf("T=%.2f: alpha fell from %d to %d at depth %.2f", temp, prev, a, float64(i)/100)
			}
			prev = a
		}
	}
}

func TestColorFor_AlphaFactors(t *testing.T) {
	p := NewPalette(config.ColorConfig{})

	// Hottest, nearest: full alpha
	if a := p.ColorFor(1, 0).A; a != 255 {
		t.Errorf("ColorFor(1, 0).A = %d, want 255", a)
	}
	// Coolest, farthest: 120 * 0.7 * 0.6
	if a := p.ColorFor(0, 1).A; a != 50 {
		t.Errorf("ColorFor(0, 1).A = %d, want 50", a)
	}
}

func TestColorFor_Interpolates(t *testing.T) {
	p := NewPalette(config.ColorConfig{})
	// Halfway between stop 0 and stop 1
	c := p.ColorFor(0.5/14, 0)
	if c.R < 139 || c.R > 178 || c.G > 34 {
		t.Errorf("expected colour between first two stops, got %v", c)
	}
}
