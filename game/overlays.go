package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ember/systems"
	"github.com/pthm-cable/ember/ui"
)

// handleOverlayKeys toggles overlays bound to the pressed key.
func (g *Game) handleOverlayKeys() {
	key := rl.GetKeyPressed()
	if key == 0 {
		return
	}
	if id, on, ok := g.overlays.HandleKeyPress(key); ok {
		g.applyOverlay(id, on)
	}
}

// applyOverlay pushes overlay state that lives outside the registry.
func (g *Game) applyOverlay(id ui.OverlayID, on bool) {
	switch id {
	case ui.OverlayAdditive:
		g.window.SetAdditive(on)
	case ui.OverlayField:
		// The field overlay is exclusive with additive blending
		g.window.SetAdditive(g.overlays.IsEnabled(ui.OverlayAdditive))
	}
}

// drawBackgroundOverlays draws overlays that sit under the particles.
func (g *Game) drawBackgroundOverlays() {
	if g.overlays.IsEnabled(ui.OverlayGlow) {
		g.glow.Draw(float32(g.lastStats.HotFraction))
	}
	if g.overlays.IsEnabled(ui.OverlayField) {
		maxForce := float32(float64(g.tuning.TurbulenceStrength) * systems.OctaveSum)
		g.fieldViz.Draw(g.field, g.engine.Clock(), maxForce)
	}
}

// drawPanels draws the UI panels that are switched on.
func (g *Game) drawPanels() {
	sw, sh := int32(g.screenWidth), int32(g.screenHeight)

	if g.overlays.IsEnabled(ui.OverlayStats) {
		g.statsPanel.Draw(g.lastStats, sw, sh)
	}

	if g.overlays.IsEnabled(ui.OverlayTuning) {
		actions := g.tuningUI.Draw(&g.tuning, g.paused)
		if actions.Changed {
			g.applyTuning()
		}
		if actions.Pause {
			g.paused = !g.paused
		}
		if actions.Reset {
			g.Reset()
		}
	} else {
		g.controls.Draw(g.overlays)
	}

	if g.overlays.IsEnabled(ui.OverlayInspector) && g.hasHovered {
		p := g.hovered
		sx, sy := g.camera.WorldToScreen(float32(p.X), float32(p.Y))
		g.inspector.Draw(p, sx, sy, float32(p.Size)*g.camera.Scale(), sw, sh)
	}

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.drawPerfPanel()
	}
}
