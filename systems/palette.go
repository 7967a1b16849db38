package systems

import (
	"image/color"
	"math"

	"github.com/pthm-cable/ember/config"
)

// Stop is one palette entry. Temperature is the nominal kelvin tag of the
// colour and is not used by the mapping.
type Stop struct {
	Temperature int
	Color       color.NRGBA
}

// FireStops runs from the coolest ember to white-hot.
var FireStops = []Stop{
	{800, color.NRGBA{139, 0, 0, 120}},
	{900, color.NRGBA{178, 34, 34, 140}},
	{1000, color.NRGBA{220, 20, 60, 150}},
	{1100, color.NRGBA{255, 0, 0, 160}},
	{1200, color.NRGBA{255, 69, 0, 170}},
	{1300, color.NRGBA{255, 99, 71, 180}},
	{1400, color.NRGBA{255, 140, 0, 190}},
	{1500, color.NRGBA{255, 165, 0, 200}},
	{1600, color.NRGBA{255, 200, 0, 210}},
	{1700, color.NRGBA{255, 215, 0, 220}},
	{1800, color.NRGBA{255, 255, 0, 230}},
	{1900, color.NRGBA{255, 255, 100, 240}},
	{2000, color.NRGBA{255, 255, 150, 250}},
	{2100, color.NRGBA{255, 255, 200, 255}},
	{2200, color.NRGBA{255, 255, 255, 255}},
}

// Palette maps temperature and depth to a colour.
type Palette struct {
	Stops []Stop
	Gamma float64 // Applied as T^(1/Gamma); 0 disables the remap
}

// NewPalette creates the fire palette from config.
func NewPalette(cfg config.ColorConfig) Palette {
	p := Palette{Stops: FireStops}
	if cfg.GammaRemap {
		p.Gamma = cfg.Gamma
	}
	return p
}

// ColorFor returns the colour of a particle at temperature and depth.
// Alpha rises with temperature and falls with depth.
func (p Palette) ColorFor(temperature, depth float64) color.NRGBA {
	t := clamp01(temperature)
	if math.IsNaN(temperature) {
		t = 0
	}
	d := clamp01(depth)
	if math.IsNaN(depth) {
		d = 0
	}

	idx := t
	if p.Gamma > 0 {
		idx = math.Pow(t, 1/p.Gamma)
	}

	last := len(p.Stops) - 1
	pos := idx * float64(last)
	i := int(pos)
	if i >= last {
		i = last - 1
	}
	frac := pos - float64(i)
	a, b := p.Stops[i].Color, p.Stops[i+1].Color

	alpha := lerp(float64(a.A), float64(b.A), frac) / 255
	alpha *= 0.7 + 0.3*t
	alpha *= 0.6 + 0.4*(1-d)

	return color.NRGBA{
		R: channel(lerp(float64(a.R), float64(b.R), frac)),
		G: channel(lerp(float64(a.G), float64(b.G), frac)),
		B: channel(lerp(float64(a.B), float64(b.B), frac)),
		A: channel(clamp01(alpha) * 255),
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(clampFloat(v, 0, 255)))
}
