package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ember/ui"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.Reset()
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}

	g.handleOverlayKeys()

	// Camera controls
	g.handleCameraInput()

	g.handlePointer()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	if g.camera != nil {
		g.camera.Resize(w, h)
	}
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}

	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / g.camera.Zoom

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Zoom controls: mouse wheel or +/- keys
	wheelMove := rl.GetMouseWheelMove()
	if wheelMove != 0 {
		zoomFactor := float32(1.0) + wheelMove*0.1
		g.camera.ZoomBy(zoomFactor)
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// handlePointer queues a burst while the left button is held over the
// surface, and tracks the particle under the cursor for the inspector.
func (g *Game) handlePointer() {
	mouse := rl.GetMousePosition()
	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
	onSurface := g.camera.Contains(wx, wy) && !g.overPanel(mouse)

	if onSurface && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		g.QueueBurst(float64(wx), float64(wy))
	}

	g.hasHovered = false
	if g.overlays.IsEnabled(ui.OverlayInspector) && onSurface {
		radius := 12 / float64(g.camera.Scale())
		g.hovered, g.hasHovered = g.engine.Nearest(float64(wx), float64(wy), radius)
	}
}

// overPanel reports whether the pointer is over an open UI panel.
func (g *Game) overPanel(p rl.Vector2) bool {
	// The tuning panel replaces the overlay legend while it is open
	if g.overlays.IsEnabled(ui.OverlayTuning) {
		return ui.InRect(g.tuningUI.Bounds(), p.X, p.Y)
	}
	return g.controls.IsVisible() && ui.InRect(g.controls.Bounds(g.overlays), p.X, p.Y)
}
