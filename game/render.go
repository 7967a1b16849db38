package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ember/surface"
	"github.com/pthm-cable/ember/telemetry"
	"github.com/pthm-cable/ember/ui"
)

// Draw renders the game.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()

	start := time.Now()
	g.sprites = g.engine.AppendSnapshot(g.sprites[:0])
	g.framePerf.Record(telemetry.PhaseSnapshot, time.Since(start))

	start = time.Now()
	g.window.Clear()
	g.drawBackgroundOverlays()
	surface.Paint(g.window, g.sprites)
	g.window.End()
	g.framePerf.Record(telemetry.PhaseRender, time.Since(start))

	g.drawUI()

	rl.EndDrawing()
}

// drawUI renders the HUD and panels on top of the fire.
func (g *Game) drawUI() {
	g.hud.Draw(ui.HUDData{
		Title:       g.cfg.Screen.Title,
		Particles:   g.engine.Len(),
		Population:  g.engine.Population(),
		Injected:    g.engine.Len() - g.engine.Population(),
		SimTime:     g.engine.Clock(),
		RespawnMode: g.cfg.Emission.RespawnMode,
		FPS:         rl.GetFPS(),
		Paused:      g.paused,
	})

	g.drawPanels()

	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight),
		"[Space] Pause  [R] Reset  [Tab] Overlays  [T] Tuning  [Mouse] Inject  [Wheel] Zoom  [F11] Fullscreen")
}

// drawPerfPanel shows tick phases and frame phases together.
func (g *Game) drawPerfPanel() {
	stats := g.perfCollector.Stats()
	times := make(map[string]time.Duration, len(stats.PhaseAvg)+2)
	for name, d := range stats.PhaseAvg {
		times[name] = d
	}
	for _, name := range g.framePerf.SortedNames() {
		times[name] = g.framePerf.Avg(name)
	}

	g.perfPanel.SetPosition(10, int32(g.screenHeight)-g.perfPanel.Height(len(times))-30)
	g.perfPanel.Draw(ui.PerfPanelData{
		PhaseTimes: times,
		Registry:   g.registry,
	})
}
