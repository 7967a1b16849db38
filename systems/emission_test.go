package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/ember/components"
	"github.com/pthm-cable/ember/config"
)

func TestChooseZone_Weights(t *testing.T) {
	tests := []struct {
		name    string
		weights [3]float64
		only    components.Zone
	}{
		{"core only", [3]float64{1, 0, 0}, components.ZoneCore},
		{"mid only", [3]float64{0, 2, 0}, components.ZoneMid},
		{"outer only", [3]float64{0, 0, 0.5}, components.ZoneOuter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := NewRandom(1)
			for i := 0; i < 500; i++ {
				if z := ChooseZone(rng, tt.weights); z != tt.only {
					t.Fatalf("got zone %s, want %s", z, tt.only)
				}
			}
		})
	}
}

func TestChooseZone_Distribution(t *testing.T) {
	rng := NewRandom(42)
	weights := [3]float64{0.4, 0.35, 0.25}
	var counts [3]int
	const n = 20000
	for i := 0; i < n; i++ {
		counts[ChooseZone(rng, weights)]++
	}
	for i, w := range weights {
		got := float64(counts[i]) / n
		if math.Abs(got-w) > 0.02 {
			t.Errorf("zone %d frequency %.3f, want ~%.2f", i, got, w)
		}
	}
}

func TestEmitter_NewWithinBounds(t *testing.T) {
	cfg := config.Default()
	e := NewEmitter(cfg)
	rng := NewRandom(3)

	for i := 0; i < 2000; i++ {
		s := e.New(rng, false)
		if !s.Emission.Zone.Valid() {
			t.Fatalf("invalid zone %d", s.Emission.Zone)
		}
		if s.Position.Y < 0 || s.Position.Y >= cfg.Derived.Height {
			t.Fatalf("spawn y %f outside [0, %f)", s.Position.Y, cfg.Derived.Height)
		}
		if s.Thermal.Temperature <= 0 || s.Thermal.Lifespan <= 0 {
			t.Fatalf("non-positive temperature or lifespan: %+v", s.Thermal)
		}
		if s.Body.Size != s.Body.InitialSize {
			t.Fatalf("size %f should start at initial size %f", s.Body.Size, s.Body.InitialSize)
		}
		if s.Body.Depth < 0 || s.Body.Depth > 1 {
			t.Fatalf("depth %f outside [0, 1]", s.Body.Depth)
		}
	}
}

func TestEmitter_CoreSpreadNarrowerThanOuter(t *testing.T) {
	cfg := config.Default()
	rng := NewRandom(9)

	spread := func(w [3]float64) float64 {
		e := NewEmitter(cfg)
		e.SetZoneWeights(w)
		var maxDX float64
		for i := 0; i < 1000; i++ {
			s := e.New(rng, false)
			maxDX = math.Max(maxDX, math.Abs(s.Position.X-cfg.Derived.CenterX))
		}
		return maxDX
	}

	core := spread([3]float64{1, 0, 0})
	outer := spread([3]float64{0, 0, 1})
	if core >= outer {
		t.Errorf("core spread %f should be narrower than outer %f", core, outer)
	}
}

func TestEmitter_CoreLaunchesUpward(t *testing.T) {
	cfg := config.Default()
	e := NewEmitter(cfg)
	rng := NewRandom(11)

	up := 0
	const n = 1000
	for i := 0; i < n; i++ {
		_, vy := e.Velocity(rng, components.ZoneCore, 1)
		if vy < 0 {
			up++
		}
	}
	if up < n*95/100 {
		t.Errorf("only %d/%d core launches were upward", up, n)
	}
}

func TestEmitter_UniformAngleMode(t *testing.T) {
	cfg := config.Default()
	cfg.Emission.AngleMode = "uniform"
	e := NewEmitter(cfg)
	rng := NewRandom(5)

	for i := 0; i < 1000; i++ {
		_, vy := e.Velocity(rng, components.ZoneMid, 0.5)
		// Mid angles stay within [-135, -45] degrees
		if vy >= 0 {
			t.Fatalf("mid launch vy %f should be upward", vy)
		}
	}
}

func TestEmitter_RespawnTemperatures(t *testing.T) {
	cfg := config.Default()
	cfg.Emission.UseRespawnTemperatures = true
	cfg.Emission.Core.SpawnTemperature = config.Range{Min: 0.9, Max: 0.9}
	cfg.Emission.Core.RespawnTemperature = config.Range{Min: 0.2, Max: 0.2}
	e := NewEmitter(cfg)
	rng := NewRandom(1)

	if got := e.Temperature(rng, components.ZoneCore, false); got != 0.9 {
		t.Errorf("spawn temperature = %f, want 0.9", got)
	}
	if got := e.Temperature(rng, components.ZoneCore, true); got != 0.2 {
		t.Errorf("respawn temperature = %f, want 0.2", got)
	}

	cfg.Emission.UseRespawnTemperatures = false
	e = NewEmitter(cfg)
	if got := e.Temperature(rng, components.ZoneCore, true); got != 0.9 {
		t.Errorf("respawn disabled: temperature = %f, want 0.9", got)
	}
}

func TestEmitter_ResetKeepsIdentity(t *testing.T) {
	cfg := config.Default()
	e := NewEmitter(cfg)
	rng := NewRandom(8)

	s := e.Build(rng, components.Position{X: 10, Y: 10}, 0.5, components.ZoneOuter)
	s.Thermal.Age = 3
	s.Body.Size = 99
	before := s

	e.Reset(rng, &s)
	if s.Emission != before.Emission {
		t.Error("reset must keep emission metadata")
	}
	if s.Body.InitialSize != before.Body.InitialSize || s.Body.Depth != before.Body.Depth {
		t.Error("reset must keep body envelope")
	}
	if s.Thermal.Age != 0 || s.Body.Size != s.Body.InitialSize {
		t.Errorf("reset must restart age and size, got age=%f size=%f", s.Thermal.Age, s.Body.Size)
	}
	if s.Velocity.X < -100 || s.Velocity.X > 100 || s.Velocity.Y < -290 || s.Velocity.Y > 10 {
		t.Errorf("reset velocity out of range: %+v", s.Velocity)
	}
}

func TestEmitter_DiskLayout(t *testing.T) {
	cfg := config.Default()
	cfg.Flame.Layout = "disk"
	e := NewEmitter(cfg)
	rng := NewRandom(2)

	r := cfg.Flame.BaseWidth / 2
	for i := 0; i < 1000; i++ {
		s := e.New(rng, false)
		dx := s.Position.X - cfg.Derived.CenterX
		dy := s.Position.Y - 0.75*cfg.Derived.Height
		if math.Abs(dx) > r || math.Abs(dy) > r {
			t.Fatalf("disk spawn (%f, %f) outside radius %f", dx, dy, r)
		}
	}
}
