package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel renders the left-side controls panel with overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  false,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Height returns the panel height for the registry's overlays.
func (c *ControlsPanel) Height(overlays *OverlayRegistry) int32 {
	r := c.renderer
	totalItems := 0
	for _, cat := range overlays.Categories() {
		totalItems += len(overlays.ByCategory(cat)) + 1 // +1 for category header
	}
	return int32(totalItems)*r.Theme.LineHeight + r.Theme.Padding*3 + r.Theme.LineHeight // Extra for title
}

// Bounds returns the area the panel covers when visible.
func (c *ControlsPanel) Bounds(overlays *OverlayRegistry) rl.Rectangle {
	return rl.NewRectangle(float32(c.x), float32(c.y), float32(c.width), float32(c.Height(overlays)))
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the controls panel.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	categories := overlays.Categories()

	// Draw panel background
	r.DrawPanel(c.x, c.y, c.width, c.Height(overlays))

	y := c.y + padding

	// Title
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	// Draw overlays by category
	for _, category := range categories {
		// Category header
		catLabel := categoryLabel(category)
		rl.DrawText(catLabel, c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		// Overlays in this category
		for _, desc := range overlays.ByCategory(category) {
			enabled := overlays.IsEnabled(desc.ID)
			c.drawToggle(c.x+padding, y, desc, enabled, c.width-padding*2)
			y += lineHeight
		}

		y += 4 // Gap between categories
	}

	return y
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	// Status indicator
	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	// Name
	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	// Key binding (right aligned)
	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "panels":
		return "Panels"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

// Tuning holds the parameters adjustable while the fire runs.
type Tuning struct {
	TurbulenceStrength float32
	Buoyancy           float32
	CoolingRate        float32
	ZoneWeights        [3]float32
	GammaRemap         bool
	EnforceUpperBound  bool
	ThermalDrag        bool
}

// TuningActions reports what the user did in the tuning panel this frame.
type TuningActions struct {
	Changed bool // a slider or toggle moved
	Pause   bool // pause/resume pressed
	Reset   bool // reset pressed
}

// SliderDescriptor binds a raygui slider to one Tuning value.
type SliderDescriptor struct {
	Label    string
	Min, Max float32
	Format   string
	Value    func(*Tuning) *float32
}

// ToggleDescriptor binds a button toggle to one Tuning flag.
type ToggleDescriptor struct {
	Label string
	Value func(*Tuning) *bool
}

// DefaultSliders returns the standard tuning sliders.
func DefaultSliders() []SliderDescriptor {
	return []SliderDescriptor{
		{Label: "Turbulence", Min: 0, Max: 150, Format: "%.0f", Value: func(t *Tuning) *float32 { return &t.TurbulenceStrength }},
		{Label: "Buoyancy", Min: 0, Max: 80, Format: "%.1f", Value: func(t *Tuning) *float32 { return &t.Buoyancy }},
		{Label: "Cooling", Min: 0, Max: 1.5, Format: "%.2f", Value: func(t *Tuning) *float32 { return &t.CoolingRate }},
		{Label: "Core weight", Min: 0, Max: 1, Format: "%.2f", Value: func(t *Tuning) *float32 { return &t.ZoneWeights[0] }},
		{Label: "Mid weight", Min: 0, Max: 1, Format: "%.2f", Value: func(t *Tuning) *float32 { return &t.ZoneWeights[1] }},
		{Label: "Outer weight", Min: 0, Max: 1, Format: "%.2f", Value: func(t *Tuning) *float32 { return &t.ZoneWeights[2] }},
	}
}

// DefaultToggles returns the standard policy toggles.
func DefaultToggles() []ToggleDescriptor {
	return []ToggleDescriptor{
		{Label: "Gamma remap", Value: func(t *Tuning) *bool { return &t.GammaRemap }},
		{Label: "Upper bound", Value: func(t *Tuning) *bool { return &t.EnforceUpperBound }},
		{Label: "Thermal drag", Value: func(t *Tuning) *bool { return &t.ThermalDrag }},
	}
}

// TuningPanel renders raygui sliders, toggles and run controls.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sliders  []SliderDescriptor
	toggles  []ToggleDescriptor
}

// NewTuningPanel creates a tuning panel with the default controls.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sliders:  DefaultSliders(),
		toggles:  DefaultToggles(),
	}
}

// SetPosition updates the panel position.
func (p *TuningPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Bounds returns the area the panel covers.
func (p *TuningPanel) Bounds() rl.Rectangle {
	return rl.NewRectangle(float32(p.x), float32(p.y), float32(p.width), float32(p.Height()))
}

// Height returns the panel height in pixels.
func (p *TuningPanel) Height() int32 {
	r := p.renderer
	return r.Theme.Padding*2 + 24 + int32(len(p.sliders))*36 + int32(len(p.toggles))*28 + 36
}

// Draw renders the panel, applies slider and toggle changes to t and
// reports button presses.
func (p *TuningPanel) Draw(t *Tuning, paused bool) TuningActions {
	var actions TuningActions
	r := p.renderer
	padding := r.Theme.Padding

	r.DrawPanel(p.x, p.y, p.width, p.Height())

	x := float32(p.x + padding)
	y := float32(p.y + padding)
	sliderWidth := float32(p.width-padding*2) - 50

	rl.DrawText("Tuning", int32(x), int32(y), 16, rl.White)
	y += 24

	for _, sd := range p.sliders {
		v := sd.Value(t)
		rl.DrawText(sd.Label, int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		y += 14
		nv := gui.SliderBar(
			rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: 16},
			"", "",
			*v, sd.Min, sd.Max,
		)
		rl.DrawText(fmt.Sprintf(sd.Format, *v), int32(x+sliderWidth+6), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
		if nv != *v {
			*v = nv
			actions.Changed = true
		}
		y += 22
	}

	for _, td := range p.toggles {
		v := td.Value(t)
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: float32(p.width - padding*2), Height: 22}, toggleText(td.Label, *v)) {
			*v = !*v
			actions.Changed = true
		}
		y += 28
	}

	half := float32(p.width-padding*3) / 2
	pauseLabel := "Pause"
	if paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 26}, pauseLabel) {
		actions.Pause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + float32(padding), Y: y, Width: half, Height: 26}, "Reset") {
		actions.Reset = true
	}

	return actions
}

func toggleText(label string, on bool) string {
	if on {
		return label + ": ON"
	}
	return label + ": OFF"
}

// NormalizeWeights rescales zone weights to sum to 1. All-zero weights fall
// back to the core zone.
func (t *Tuning) NormalizeWeights() [3]float64 {
	var out [3]float64
	sum := 0.0
	for i, w := range t.ZoneWeights {
		if w > 0 {
			out[i] = float64(w)
			sum += float64(w)
		}
	}
	if sum <= 0 {
		return [3]float64{1, 0, 0}
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
