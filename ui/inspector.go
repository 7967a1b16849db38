package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/ember/sim"
)

// InspectorPanelDescriptor lays out one particle's attributes.
func InspectorPanelDescriptor() PanelDescriptor {
	part := func(d any) sim.Particle { return d.(sim.Particle) }

	return PanelDescriptor{
		ID:     "inspector",
		Title:  "Particle",
		Width:  240,
		Anchor: AnchorBottomRight,
		Sections: []SectionDescriptor{
			{
				ID: "identity",
				Fields: []FieldDescriptor{
					{ID: "serial", Label: "Serial", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(part(d).Serial) }},
					{ID: "zone", Label: "Zone", Widget: WidgetText,
						TextGetter: func(d any) string {
							p := part(d)
							if p.Injected {
								return p.Zone.String() + " (injected)"
							}
							return p.Zone.String()
						}},
				},
			},
			{
				ID:    "thermal",
				Title: "Thermal",
				Fields: []FieldDescriptor{
					{ID: "temperature", Label: "Temp", Widget: WidgetThresholdBar, Range: DefaultRange(),
						Getter: func(d any) float32 { return float32(part(d).Temperature) }},
					{ID: "life", Label: "Life", Widget: WidgetBar, Range: DefaultRange(),
						Getter: func(d any) float32 {
							p := part(d)
							if p.Lifespan <= 0 {
								return 0
							}
							return float32(p.Age / p.Lifespan)
						}},
				},
			},
			{
				ID:    "motion",
				Title: "Motion",
				Fields: []FieldDescriptor{
					{ID: "vx", Label: "Vx", Widget: WidgetCenteredBar, Range: FieldRange{Min: -150, Max: 150},
						Getter: func(d any) float32 { return float32(part(d).VX) }},
					{ID: "vy", Label: "Vy", Widget: WidgetCenteredBar, Range: FieldRange{Min: -300, Max: 300},
						Getter: func(d any) float32 { return float32(part(d).VY) }},
					{ID: "sensitivity", Label: "Sensitivity", Widget: WidgetText, Format: "%.2f",
						Getter: func(d any) float32 { return float32(part(d).Sensitivity) }},
				},
			},
			{
				ID:    "body",
				Title: "Body",
				Fields: []FieldDescriptor{
					{ID: "size", Label: "Size", Widget: WidgetText, Format: "%.2f",
						Getter: func(d any) float32 { return float32(part(d).Size) }},
					{ID: "depth", Label: "Depth", Widget: WidgetBar, Range: DefaultRange(),
						Getter: func(d any) float32 { return float32(part(d).Depth) }},
				},
			},
		},
	}
}

// Inspector shows the attributes of one particle.
type Inspector struct {
	renderer *Renderer
	layout   PanelDescriptor
}

// NewInspector creates a particle inspector.
func NewInspector() *Inspector {
	return &Inspector{renderer: NewRenderer(), layout: InspectorPanelDescriptor()}
}

// Draw renders the panel for p and a ring around it at screen position (sx, sy).
func (ins *Inspector) Draw(p sim.Particle, sx, sy, radius float32, screenW, screenH int32) {
	rl.DrawCircleLines(int32(sx), int32(sy), radius+3, rl.White)

	const height = 270
	x, y := ins.layout.Position(screenW, screenH, height, 10)
	ins.renderer.DrawPanelDescriptor(x, y, ins.layout, p, height)
}
