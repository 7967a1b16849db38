package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ember/camera"
)

// GlowRenderer draws a warm radial light under the flame base.
type GlowRenderer struct {
	cam            *camera.Camera
	centerX, baseY float32
	radius         float32
	Intensity      float32 // 0-1
}

// NewGlowRenderer creates a glow centred on the flame base.
func NewGlowRenderer(cam *camera.Camera, centerX, baseY, baseWidth float32) *GlowRenderer {
	return &GlowRenderer{
		cam:       cam,
		centerX:   centerX,
		baseY:     baseY,
		radius:    baseWidth * 2,
		Intensity: 1,
	}
}

// Draw renders the glow. flicker in [0, 1] modulates the intensity, usually
// the current hot fraction of the population.
func (r *GlowRenderer) Draw(flicker float32) {
	intensity := r.Intensity * (0.6 + 0.4*flicker)
	if intensity <= 0 {
		return
	}

	x, y := r.cam.WorldToScreen(r.centerX, r.baseY)
	maxRadius := r.radius * r.cam.Scale()

	rl.BeginBlendMode(rl.BlendAdditive)
	steps := 12
	for i := steps; i >= 0; i-- {
		t := float32(i) / float32(steps)
		radius := maxRadius * t

		// Fast falloff - light concentrated near the base
		falloff := float32(math.Pow(float64(1-t), 3.0))
		alpha := falloff * 0.06 * intensity * 255
		if alpha < 1 {
			continue
		}

		color := rl.Color{R: 255, G: 120, B: 40, A: uint8(alpha)}
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, radius, color)
	}
	rl.EndBlendMode()
}
