package ui

import (
	"fmt"

	"github.com/pthm-cable/ember/telemetry"
)

// StatsPanelDescriptor lays out the windowed fire statistics.
func StatsPanelDescriptor() PanelDescriptor {
	stats := func(d any) telemetry.WindowStats { return d.(telemetry.WindowStats) }

	return PanelDescriptor{
		ID:     "stats",
		Title:  "Fire Stats",
		Width:  260,
		Anchor: AnchorTopRight,
		Sections: []SectionDescriptor{
			{
				ID:    "population",
				Title: "Population",
				Fields: []FieldDescriptor{
					{ID: "population", Label: "Live", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(stats(d).Population) }},
					{ID: "zones", Label: "Zones", Widget: WidgetText,
						TextGetter: func(d any) string {
							s := stats(d)
							return fmt.Sprintf("%d / %d / %d", s.CoreCount, s.MidCount, s.OuterCount)
						}},
					{ID: "injected", Label: "Injected", Widget: WidgetText, Format: "%.0f",
						Visible: func(d any) bool { return stats(d).Injected > 0 },
						Getter:  func(d any) float32 { return float32(stats(d).Injected) }},
				},
			},
			{
				ID:    "expiry",
				Title: "Expiry",
				Fields: []FieldDescriptor{
					{ID: "expired", Label: "Per window", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(stats(d).Expired()) }},
					{ID: "cooled_frac", Label: "Cooled", Widget: WidgetBar, Range: DefaultRange(),
						Getter: func(d any) float32 { return float32(stats(d).CooledFraction()) }},
				},
			},
			{
				ID:    "temperature",
				Title: "Temperature",
				Fields: []FieldDescriptor{
					{ID: "temp_mean", Label: "Mean", Widget: WidgetThresholdBar, Range: DefaultRange(),
						Getter: func(d any) float32 { return float32(stats(d).TempMean) }},
					{ID: "temp_spread", Label: "P10-P90", Widget: WidgetText,
						TextGetter: func(d any) string {
							s := stats(d)
							return fmt.Sprintf("%.2f - %.2f", s.TempP10, s.TempP90)
						}},
					{ID: "hot", Label: "Hot", Widget: WidgetBar, Range: DefaultRange(),
						Getter: func(d any) float32 { return float32(stats(d).HotFraction) }},
				},
			},
			{
				ID:    "shape",
				Title: "Shape",
				Fields: []FieldDescriptor{
					{ID: "size_mean", Label: "Size", Widget: WidgetText, Format: "%.2f",
						Getter: func(d any) float32 { return float32(stats(d).SizeMean) }},
					{ID: "top_y", Label: "Top y", Widget: WidgetText, Format: "%.0f",
						Getter: func(d any) float32 { return float32(stats(d).TopY) }},
				},
			},
		},
	}
}

// StatsPanel draws the latest window stats.
type StatsPanel struct {
	renderer *Renderer
	layout   PanelDescriptor
}

// NewStatsPanel creates a stats panel.
func NewStatsPanel() *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), layout: StatsPanelDescriptor()}
}

// Draw renders stats anchored against the screen size.
func (p *StatsPanel) Draw(stats telemetry.WindowStats, screenW, screenH int32) {
	const height = 280
	x, y := p.layout.Position(screenW, screenH, height, 10)
	p.renderer.DrawPanelDescriptor(x, y, p.layout, stats, height)
}
