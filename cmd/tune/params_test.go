package main

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/ember/config"
	"github.com/pthm-cable/ember/telemetry"
)

func TestParamVector_NormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()

	norm := pv.Normalize(raw)
	for i, v := range norm {
		if v < 0 || v > 1 {
			t.Errorf("%s: default normalizes to %v, outside [0, 1]", pv.Specs[i].Name, v)
		}
	}

	back := pv.Denormalize(norm)
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: round trip %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestParamVector_Clamp(t *testing.T) {
	pv := NewParamVector()
	low := make([]float64, pv.Dim())
	high := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		low[i] = spec.Min - 10
		high[i] = spec.Max + 10
	}

	for i, v := range pv.Clamp(low) {
		if v != pv.Specs[i].Min {
			t.Errorf("%s: clamp low = %v, want %v", pv.Specs[i].Name, v, pv.Specs[i].Min)
		}
	}
	for i, v := range pv.Clamp(high) {
		if v != pv.Specs[i].Max {
			t.Errorf("%s: clamp high = %v, want %v", pv.Specs[i].Name, v, pv.Specs[i].Max)
		}
	}
}

func TestParamVector_DefaultsMatchConfig(t *testing.T) {
	cfg := config.Default()
	pv := NewParamVector()
	pv.ApplyToConfig(cfg, pv.DefaultVector())

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults produce an invalid config: %v", err)
	}
	def := config.Default()
	if cfg.Turbulence != def.Turbulence || cfg.Physics != def.Physics || cfg.Particle != def.Particle {
		t.Error("default vector should reproduce the embedded defaults")
	}
}

func TestParamVector_ApplyKeepsLifespanOrdered(t *testing.T) {
	cfg := config.Default()
	cfg.Particle.Lifespan.Min = 2.5
	pv := NewParamVector()

	x := pv.DefaultVector()
	x[5] = 1 // lifespan_max below the configured minimum
	pv.ApplyToConfig(cfg, x)

	if cfg.Particle.Lifespan.Max < cfg.Particle.Lifespan.Min {
		t.Errorf("lifespan [%v, %v] out of order", cfg.Particle.Lifespan.Min, cfg.Particle.Lifespan.Max)
	}
}

func TestCloneConfig_Independent(t *testing.T) {
	base := config.Default()
	c := cloneConfig(base)
	c.Emission.ZoneWeights[0] = 99
	c.Physics.Buoyancy = 99

	if base.Emission.ZoneWeights[0] == 99 || base.Physics.Buoyancy == 99 {
		t.Error("clone shares state with its base")
	}
}

func TestComputeLoss(t *testing.T) {
	cfg := config.Default()
	h := cfg.Derived.Height
	target := Target{Height: 0.5, Hot: 0.2, Cooled: 0.6, TempP50: 0.5}
	fe := NewFitnessEvaluator(NewParamVector(), 0, nil, cfg, target)

	// Cooled 3 of 5 expiries = 0.6
	match := telemetry.WindowStats{Population: 100, TopY: h * 0.5, HotFraction: 0.2, Cooled: 3, Aged: 2, TempP50: 0.5}
	miss := match
	miss.TopY = h
	miss.HotFraction = 0.8

	tests := []struct {
		name    string
		windows []telemetry.WindowStats
		want    float64
	}{
		{"too few windows", []telemetry.WindowStats{match, match}, 1},
		{"exact match", []telemetry.WindowStats{match, match, match, match}, 0},
		{"empty flame", []telemetry.WindowStats{match, match, {}}, 1},
		{"miss", []telemetry.WindowStats{match, match, miss}, weightHeight*0.25 + weightHot*0.36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fe.computeLoss(tt.windows)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("loss = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate_Headless(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.Population = 100
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 250, []int64{1, 2}, cfg, Target{Height: 0.3, Hot: 0.3, Cooled: 0.5, TempP50: 0.5})

	got := fe.Evaluate(pv.DefaultVector())
	if math.IsNaN(got) || got < 0 || got > 1 {
		t.Errorf("fitness = %v, want a finite loss in [0, 1]", got)
	}
	if fe.BestStats().Population != 100 {
		t.Errorf("best window population = %d, want 100", fe.BestStats().Population)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		sec  int
		want string
	}{
		{0, "0m00s"},
		{75, "1m15s"},
		{3725, "1h02m05s"},
	}
	for _, tt := range tests {
		if got := formatDuration(time.Duration(tt.sec) * time.Second); got != tt.want {
			t.Errorf("formatDuration(%ds) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}
