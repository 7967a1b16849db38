// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Flame      FlameConfig      `yaml:"flame"`
	Emission   EmissionConfig   `yaml:"emission"`
	Particle   ParticleConfig   `yaml:"particle"`
	Turbulence TurbulenceConfig `yaml:"turbulence"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Size       SizeConfig       `yaml:"size"`
	Color      ColorConfig      `yaml:"color"`
	Input      InputConfig      `yaml:"input"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Range is a closed interval sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Lerp maps f in [0, 1) onto the range.
func (r Range) Lerp(f float64) float64 {
	return r.Min + (r.Max-r.Min)*f
}

// ScreenConfig holds display settings. Width and height are also the
// simulation surface bounds.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// SimulationConfig holds stepping and population parameters.
type SimulationConfig struct {
	DT         float64 `yaml:"dt"`           // Fixed step in seconds
	MaxDT      float64 `yaml:"max_dt"`       // Larger measured steps are clamped to this
	MaxCatchUp int     `yaml:"max_catch_up"` // Max fixed steps run per frame
	Population int     `yaml:"population"`
	Seed       int64   `yaml:"seed"` // 0 = time-based
}

// FlameConfig describes the fire source geometry.
type FlameConfig struct {
	CenterX      float64 `yaml:"center_x"` // 0 = horizontal middle of the surface
	BaseWidth    float64 `yaml:"base_width"`
	VolumeHeight float64 `yaml:"volume_height"`
	Layout       string  `yaml:"layout"` // "zones" or "disk"
}

// ZoneConfig holds per-emission-zone spawn parameters.
type ZoneConfig struct {
	SpawnTemperature   Range   `yaml:"spawn_temperature"`
	RespawnTemperature Range   `yaml:"respawn_temperature"`
	LateralFraction    float64 `yaml:"lateral_fraction"` // Half-spread as a fraction of base width
	HeightFraction     float64 `yaml:"height_fraction"`  // Spawn band as a fraction of volume height
}

// EmissionConfig holds emission-zone sampling parameters.
type EmissionConfig struct {
	ZoneWeights            []float64  `yaml:"zone_weights"` // core, mid, outer
	AngleMode              string     `yaml:"angle_mode"`   // "gaussian" or "uniform"
	RespawnMode            string     `yaml:"respawn_mode"` // "fresh" or "reset"
	UseRespawnTemperatures bool       `yaml:"use_respawn_temperatures"`
	Core                   ZoneConfig `yaml:"core"`
	Mid                    ZoneConfig `yaml:"mid"`
	Outer                  ZoneConfig `yaml:"outer"`
}

// ParticleConfig holds ranges for per-particle attributes fixed at creation.
type ParticleConfig struct {
	Lifespan              Range `yaml:"lifespan"`
	TurbulenceSensitivity Range `yaml:"turbulence_sensitivity"`
	InitialSize           Range `yaml:"initial_size"`
	MaxSize               Range `yaml:"max_size"`
	Depth                 Range `yaml:"depth"`
}

// TurbulenceConfig holds turbulence field parameters.
type TurbulenceConfig struct {
	Kind           string  `yaml:"kind"` // "sine" or "simplex"
	Strength       float64 `yaml:"strength"`
	Scale          float64 `yaml:"scale"`
	VerticalFactor float64 `yaml:"vertical_factor"`
	VerticalOffset float64 `yaml:"vertical_offset"`
	Seed           int64   `yaml:"seed"` // simplex only
}

// PhysicsConfig holds per-particle integration parameters.
type PhysicsConfig struct {
	DampingX          float64 `yaml:"damping_x"`
	DampingY          float64 `yaml:"damping_y"`
	Buoyancy          float64 `yaml:"buoyancy"`
	ThermalDrag       bool    `yaml:"thermal_drag"`
	SwirlAmplitude    float64 `yaml:"swirl_amplitude"`
	SwirlAgeRate      float64 `yaml:"swirl_age_rate"`
	SwirlSpatialRate  float64 `yaml:"swirl_spatial_rate"`
	CoolingRate       float64 `yaml:"cooling_rate"`
	EnforceUpperBound bool    `yaml:"enforce_upper_bound"`
}

// SizeConfig holds the rendered radius envelope parameters.
type SizeConfig struct {
	ExpansionPhase float64 `yaml:"expansion_phase"` // Fraction of life spent expanding
	ExpansionSpan  float64 `yaml:"expansion_span"`  // Divisor for the expansion fraction
	ShrinkFloor    float64 `yaml:"shrink_floor"`    // Minimum size as a fraction of max
}

// ColorConfig holds temperature-to-colour mapping options.
type ColorConfig struct {
	GammaRemap bool    `yaml:"gamma_remap"`
	Gamma      float64 `yaml:"gamma"`
	Background []int   `yaml:"background"` // RGB
}

// InputConfig holds pointer injection policy.
type InputConfig struct {
	BurstCount    int     `yaml:"burst_count"`
	BurstSpread   float64 `yaml:"burst_spread"`
	Temperature   float64 `yaml:"temperature"`
	Zone          string  `yaml:"zone"`
	MaxPopulation int     `yaml:"max_population"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Width, Height float64 // Surface bounds as float64
	CenterX       float64 // Effective flame center
	ZoneWeights   [3]float64
	BackgroundRGB [3]uint8
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		bad("screen size %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if !(c.Simulation.DT > 0) || math.IsInf(c.Simulation.DT, 0) {
		bad("simulation.dt %v", c.Simulation.DT)
	}
	if c.Simulation.MaxDT < c.Simulation.DT {
		bad("simulation.max_dt %v below dt %v", c.Simulation.MaxDT, c.Simulation.DT)
	}
	if c.Simulation.Population < 0 {
		bad("simulation.population %d", c.Simulation.Population)
	}
	if len(c.Emission.ZoneWeights) != 3 {
		bad("emission.zone_weights needs 3 entries, got %d", len(c.Emission.ZoneWeights))
	} else {
		var sum float64
		for _, w := range c.Emission.ZoneWeights {
			if w < 0 {
				bad("emission.zone_weights has negative weight %v", w)
			}
			sum += w
		}
		if sum <= 0 {
			bad("emission.zone_weights sum to %v", sum)
		}
	}
	switch c.Flame.Layout {
	case "zones", "disk":
	default:
		bad("flame.layout %q", c.Flame.Layout)
	}
	switch c.Emission.AngleMode {
	case "gaussian", "uniform":
	default:
		bad("emission.angle_mode %q", c.Emission.AngleMode)
	}
	switch c.Emission.RespawnMode {
	case "fresh", "reset":
	default:
		bad("emission.respawn_mode %q", c.Emission.RespawnMode)
	}
	switch c.Turbulence.Kind {
	case "sine", "simplex":
	default:
		bad("turbulence.kind %q", c.Turbulence.Kind)
	}

	ranges := map[string]Range{
		"particle.lifespan":                  c.Particle.Lifespan,
		"particle.turbulence_sensitivity":    c.Particle.TurbulenceSensitivity,
		"particle.initial_size":              c.Particle.InitialSize,
		"particle.max_size":                  c.Particle.MaxSize,
		"particle.depth":                     c.Particle.Depth,
		"emission.core.spawn_temperature":    c.Emission.Core.SpawnTemperature,
		"emission.mid.spawn_temperature":     c.Emission.Mid.SpawnTemperature,
		"emission.outer.spawn_temperature":   c.Emission.Outer.SpawnTemperature,
		"emission.core.respawn_temperature":  c.Emission.Core.RespawnTemperature,
		"emission.mid.respawn_temperature":   c.Emission.Mid.RespawnTemperature,
		"emission.outer.respawn_temperature": c.Emission.Outer.RespawnTemperature,
	}
	for name, r := range ranges {
		if r.Min < 0 || r.Max < r.Min {
			bad("%s [%v, %v]", name, r.Min, r.Max)
		}
	}
	if c.Particle.Lifespan.Min <= 0 {
		bad("particle.lifespan must be positive")
	}
	if c.Particle.Depth.Max > 1 {
		bad("particle.depth must stay within [0, 1]")
	}
	if c.Size.ExpansionSpan <= 0 {
		bad("size.expansion_span %v", c.Size.ExpansionSpan)
	}
	if c.Size.ShrinkFloor < 0 {
		bad("size.shrink_floor %v", c.Size.ShrinkFloor)
	}
	if c.Color.GammaRemap && c.Color.Gamma <= 0 {
		bad("color.gamma %v", c.Color.Gamma)
	}
	if c.Physics.CoolingRate <= 0 {
		bad("physics.cooling_rate %v", c.Physics.CoolingRate)
	}

	return errors.Join(errs...)
}

// ComputeDerived calculates values derived from loaded config.
func (c *Config) ComputeDerived() {
	c.Derived.Width = float64(c.Screen.Width)
	c.Derived.Height = float64(c.Screen.Height)

	c.Derived.CenterX = c.Flame.CenterX
	if c.Derived.CenterX == 0 {
		c.Derived.CenterX = c.Derived.Width / 2
	}

	for i := range c.Derived.ZoneWeights {
		c.Derived.ZoneWeights[i] = 0
		if i < len(c.Emission.ZoneWeights) {
			c.Derived.ZoneWeights[i] = c.Emission.ZoneWeights[i]
		}
	}

	for i := range c.Derived.BackgroundRGB {
		c.Derived.BackgroundRGB[i] = 0
		if i < len(c.Color.Background) {
			c.Derived.BackgroundRGB[i] = uint8(min(max(c.Color.Background[i], 0), 255))
		}
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
