package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ember/camera"
	"github.com/pthm-cable/ember/systems"
)

// FieldRenderer draws a turbulence field as a grid of force vectors.
type FieldRenderer struct {
	cam     *camera.Camera
	spacing float32
}

// NewFieldRenderer creates a field renderer sampling every spacing world units.
func NewFieldRenderer(cam *camera.Camera, spacing float32) *FieldRenderer {
	return &FieldRenderer{cam: cam, spacing: spacing}
}

// Draw samples f at time t and draws one line per grid point with additive
// blending. maxForce normalizes the line length and brightness.
func (r *FieldRenderer) Draw(f systems.Field, t float64, maxForce float32) {
	if maxForce <= 0 || r.spacing <= 0 {
		return
	}

	rl.BeginBlendMode(rl.BlendAdditive)

	for wy := r.spacing / 2; wy < r.cam.WorldH; wy += r.spacing {
		for wx := r.spacing / 2; wx < r.cam.WorldW; wx += r.spacing {
			if !r.cam.IsVisible(wx, wy, r.spacing) {
				continue
			}
			fx, fy := f.Force(float64(wx), float64(wy), t)
			mag := float32(math.Hypot(fx, fy)) / maxForce
			if mag < 0.02 {
				continue
			}

			// Shimmer with magnitude
			alpha := min(mag, 1) * 160
			color := rl.Color{R: 255, G: 140, B: 60, A: uint8(alpha)}

			length := r.spacing * 0.9 * min(mag, 1)
			nx, ny := float32(fx)/(mag*maxForce), float32(fy)/(mag*maxForce)

			sx, sy := r.cam.WorldToScreen(wx, wy)
			ex, ey := r.cam.WorldToScreen(wx+nx*length, wy+ny*length)
			rl.DrawLineEx(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: ex, Y: ey}, 1.5, color)
			rl.DrawCircleV(rl.Vector2{X: ex, Y: ey}, 1.5, color)
		}
	}

	rl.EndBlendMode()
}
