// Turbulence field preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/fieldpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ember/camera"
	"github.com/pthm-cable/ember/config"
	"github.com/pthm-cable/ember/renderer"
	"github.com/pthm-cable/ember/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewW     = 640
	previewH     = 480
	panelWidth   = windowWidth - previewW - 30
	gridW        = 160
	gridH        = 120
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	defaults := cfg.Turbulence
	params := defaults
	worldW, worldH := float32(cfg.Derived.Width), float32(cfg.Derived.Height)

	rl.InitWindow(windowWidth, windowHeight, "Turbulence Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	// The preview area is a letterboxed view of the simulation surface
	cam := camera.New(previewW, previewH, worldW, worldH)
	vectors := renderer.NewFieldRenderer(cam, 24)
	palette := systems.NewPalette(cfg.Color)

	// Magnitude heatmap texture
	grid := make([]float32, gridW*gridH)
	img := rl.GenImageColor(gridW, gridH, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	field := systems.NewField(params)
	var t float64
	animating := true
	showVectors := true
	var stats magnitudeStats

	for !rl.WindowShouldClose() {
		if animating {
			t += float64(rl.GetFrameTime())
		}

		stats = sampleMagnitude(field, grid, gridW, gridH, float64(worldW), float64(worldH), t)
		updateTexture(texture, grid, palette)

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 20, G: 16, B: 14, A: 255})

		// Draw preview
		sx, sy, sw, sh := cam.SurfaceRect()
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridW, Height: gridH},
			rl.Rectangle{X: sx, Y: sy, Width: sw, Height: sh},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		if showVectors {
			vectors.Draw(field, t, float32(params.Strength*systems.OctaveSum))
		}
		rl.DrawRectangleLines(int32(sx), int32(sy), int32(sw), int32(sh), rl.DarkGray)

		statsY := int32(previewH + 20)
		rl.DrawText(fmt.Sprintf("|F| min: %.1f  max: %.1f  mean: %.1f", stats.Min, stats.Max, stats.Mean), 15, statsY, 16, rl.LightGray)
		rl.DrawText(fmt.Sprintf("Time: %.1f  Kind: %s", t, params.Kind), 15, statsY+20, 16, rl.LightGray)

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Turbulence Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		changed := false
		slider := func(label string, value *float64, lo, hi float64, format string) {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			nv := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				float32(*value), float32(lo), float32(hi),
			)
			rl.DrawText(fmt.Sprintf(format, *value), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
			if float64(nv) != float64(float32(*value)) {
				*value = float64(nv)
				changed = true
			}
			panelY += 35
		}

		slider("Strength (force scale)", &params.Strength, 0, 150, "%.1f")
		slider("Scale (spatial frequency)", &params.Scale, 0.001, 0.1, "%.3f")
		slider("Vertical factor", &params.VerticalFactor, 0, 1, "%.2f")
		slider("Vertical offset", &params.VerticalOffset, 0, 500, "%.0f")
		if params.Kind == systems.KindSimplex {
			seed := float64(params.Seed)
			slider("Seed", &seed, 0, 99999, "%.0f")
			params.Seed = int64(seed)
		}

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			t = 0
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Kind: "+params.Kind) {
			params.Kind = nextKind(params.Kind)
			changed = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(showVectors, "Hide Vectors", "Show Vectors")) {
			showVectors = !showVectors
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 250, Height: 30}, "Reset All") {
			params = defaults
			t = 0
			changed = true
		}
		panelY += 55

		if changed {
			field = systems.NewField(params)
		}

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.LightGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.Gray)

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(strings.Join(yamlLines(params), "\n"))
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// nextKind cycles the turbulence field implementations.
func nextKind(kind string) string {
	if kind == systems.KindSimplex {
		return systems.KindSine
	}
	return systems.KindSimplex
}

// yamlLines renders the turbulence section as it appears in config.yaml.
func yamlLines(p config.TurbulenceConfig) []string {
	lines := []string{
		"turbulence:",
		fmt.Sprintf("  kind: %s", p.Kind),
		fmt.Sprintf("  strength: %.1f", p.Strength),
		fmt.Sprintf("  scale: %.3f", p.Scale),
		fmt.Sprintf("  vertical_factor: %.2f", p.VerticalFactor),
		fmt.Sprintf("  vertical_offset: %.0f", p.VerticalOffset),
	}
	if p.Kind == systems.KindSimplex {
		lines = append(lines, fmt.Sprintf("  seed: %d", p.Seed))
	}
	return lines
}

// magnitudeStats summarizes force magnitudes over the sampled grid.
type magnitudeStats struct {
	Min, Max, Mean float64
}

// sampleMagnitude fills grid with |F| normalized to [0, 1] by the grid
// maximum, sampling cell centres of a worldW x worldH surface at time t.
func sampleMagnitude(f systems.Field, grid []float32, gw, gh int, worldW, worldH, t float64) magnitudeStats {
	stats := magnitudeStats{Min: math.Inf(1)}
	mags := make([]float64, len(grid))
	sum := 0.0
	for j := 0; j < gh; j++ {
		for i := 0; i < gw; i++ {
			x := (float64(i) + 0.5) * worldW / float64(gw)
			y := (float64(j) + 0.5) * worldH / float64(gh)
			fx, fy := f.Force(x, y, t)
			m := math.Hypot(fx, fy)
			mags[j*gw+i] = m
			sum += m
			stats.Min = math.Min(stats.Min, m)
			stats.Max = math.Max(stats.Max, m)
		}
	}
	if len(grid) == 0 {
		return magnitudeStats{}
	}
	stats.Mean = sum / float64(len(grid))
	for k, m := range mags {
		if stats.Max > 0 {
			grid[k] = float32(m / stats.Max)
		} else {
			grid[k] = 0
		}
	}
	return stats
}

// updateTexture updates the GPU texture from the grid, coloured like fire.
func updateTexture(texture rl.Texture2D, grid []float32, palette systems.Palette) {
	pixels := make([]color.RGBA, len(grid))
	for i, v := range grid {
		c := palette.ColorFor(float64(v), 0)
		// Dim so the vector overlay stays readable
		pixels[i] = color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
