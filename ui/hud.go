package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ember/systems"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Particles   int
	Population  int
	Injected    int
	SimTime     float64
	RespawnMode string
	FPS         int32
	Paused      bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	// Title
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d (base %d, injected %d)", data.Particles, data.Population, data.Injected),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Time: %.1fs | FPS: %d | Respawn: %s", data.SimTime, data.FPS, data.RespawnMode),
		10, 55, 16, rl.LightGray,
	)

	// Status
	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds averaged phase timings for display.
type PerfPanelData struct {
	PhaseTimes map[string]time.Duration
	Registry   *systems.SystemRegistry
}

// perfRow is one phase line in the perf panel.
type perfRow struct {
	ID       string
	Name     string
	Category string
	Avg      time.Duration
	Share    float32 // fraction of the summed phase time
}

// perfRows orders phases by registry category, then by cost within a
// category. Phases the registry does not know go last under "other".
func perfRows(data PerfPanelData) ([]perfRow, time.Duration) {
	var total time.Duration
	for _, d := range data.PhaseTimes {
		total += d
	}

	rank := map[string]int{}
	rows := make([]perfRow, 0, len(data.PhaseTimes))
	for id, d := range data.PhaseTimes {
		row := perfRow{ID: id, Name: id, Category: "other", Avg: d}
		if data.Registry != nil {
			if info, ok := data.Registry.Get(id); ok {
				row.Name = info.Name
				row.Category = info.Category
			}
		}
		if total > 0 {
			row.Share = float32(d) / float32(total)
		}
		if _, ok := rank[row.Category]; !ok {
			rank[row.Category] = categoryRank(row.Category)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if rank[a.Category] != rank[b.Category] {
			return rank[a.Category] < rank[b.Category]
		}
		if a.Avg != b.Avg {
			return a.Avg > b.Avg
		}
		return a.ID < b.ID
	})
	return rows, total
}

func categoryRank(category string) int {
	switch category {
	case "core":
		return 0
	case "input":
		return 1
	case "visual":
		return 2
	case "internal":
		return 3
	}
	return 4
}

// PerfPanel renders per-phase frame cost as heat bars.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    240,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Height returns the panel height for n phases.
func (p *PerfPanel) Height(n int) int32 {
	return 48 + int32(n)*18
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	rows, total := perfRows(data)
	r := p.renderer

	r.DrawPanel(p.x-6, p.y-6, p.width+12, p.Height(len(rows)))
	y := r.DrawSectionHeader(p.x, p.y, "Frame Cost")
	y = r.DrawLabelValue(p.x, y, "Total", total.Round(time.Microsecond).String(), p.width)

	category := ""
	for _, row := range rows {
		if row.Category != category {
			category = row.Category
			rl.DrawText(category, p.x, y, 10, r.Theme.LabelColor)
			y += 12
		}
		label := fmt.Sprintf("%s %s", row.Name, row.Avg.Round(time.Microsecond))
		y = r.DrawThresholdBar(p.x, y, label, row.Share, 1, p.width)
	}
}
