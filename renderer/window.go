// Package renderer draws the fire with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ember/camera"
)

// Window is a raylib drawing surface. Simulation coordinates are mapped to
// the window through the camera; the area outside the surface is left as
// letterbox bars.
type Window struct {
	cam        *camera.Camera
	background rl.Color
	bars       rl.Color
	additive   bool
	inBlend    bool
}

// NewWindow creates a window surface. Must be used between rl.BeginDrawing
// and rl.EndDrawing.
func NewWindow(cam *camera.Camera, bg [3]uint8) *Window {
	return &Window{
		cam:        cam,
		background: rl.Color{R: bg[0], G: bg[1], B: bg[2], A: 255},
		bars:       rl.Color{R: 8, G: 8, B: 8, A: 255},
	}
}

// SetAdditive switches between alpha and additive blending for particles.
func (w *Window) SetAdditive(on bool) {
	w.additive = on
}

// Additive reports whether additive blending is on.
func (w *Window) Additive() bool {
	return w.additive
}

// Clear implements surface.Surface.
func (w *Window) Clear() {
	w.End()
	rl.ClearBackground(w.bars)
	x, y, sw, sh := w.cam.SurfaceRect()
	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: sw, Height: sh}, w.background)
}

// FillCircle implements surface.Surface.
func (w *Window) FillCircle(x, y, radius float64, c color.NRGBA) {
	if w.additive && !w.inBlend {
		rl.BeginBlendMode(rl.BlendAdditive)
		w.inBlend = true
	}

	fx, fy, r := float32(x), float32(y), float32(radius)
	if !w.cam.IsVisible(fx, fy, r) {
		return
	}
	sx, sy := w.cam.WorldToScreen(fx, fy)
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, r*w.cam.Scale(), rl.Color{R: c.R, G: c.G, B: c.B, A: c.A})
}

// End closes any blend mode opened by FillCircle. Call it before drawing UI.
func (w *Window) End() {
	if w.inBlend {
		rl.EndBlendMode()
		w.inBlend = false
	}
}
