package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayRegistry_Defaults(t *testing.T) {
	r := NewOverlayRegistry()

	if len(r.All()) == 0 {
		t.Fatal("expected default overlays")
	}
	for _, d := range r.All() {
		if r.IsEnabled(d.ID) {
			t.Errorf("%s enabled by default", d.ID)
		}
		if _, ok := r.Get(d.ID); !ok {
			t.Errorf("%s not retrievable", d.ID)
		}
	}

	cats := r.Categories()
	want := []string{"visual", "panels", "debug"}
	if len(cats) != len(want) {
		t.Fatalf("categories = %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("category %d = %q, want %q", i, cats[i], want[i])
		}
	}
}

func TestOverlayRegistry_ToggleExclusive(t *testing.T) {
	r := NewOverlayRegistry()

	r.SetEnabled(OverlayAdditive, true)
	if !r.Toggle(OverlayField) {
		t.Fatal("field overlay should turn on")
	}
	if r.IsEnabled(OverlayAdditive) {
		t.Error("enabling the field overlay should disable additive blending")
	}
	if r.Toggle(OverlayField) {
		t.Error("second toggle should turn the field overlay off")
	}
	if r.Toggle("missing") {
		t.Error("unknown overlay toggled on")
	}
}

func TestOverlayRegistry_HandleKeyPress(t *testing.T) {
	r := NewOverlayRegistry()

	id, on, ok := r.HandleKeyPress(rl.KeyS)
	if !ok || id != OverlayStats || !on {
		t.Errorf("HandleKeyPress(S) = %q, %v, %v", id, on, ok)
	}
	if _, _, ok := r.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key reported a toggle")
	}

	r.SetEnabled(OverlayPerf, true)
	enabled := r.EnabledOverlays()
	if len(enabled) != 2 || enabled[0] != OverlayStats || enabled[1] != OverlayPerf {
		t.Errorf("EnabledOverlays = %v, want [stats perf]", enabled)
	}
}

func TestPanelDescriptor_Position(t *testing.T) {
	pd := PanelDescriptor{Width: 200}
	tests := []struct {
		anchor PanelAnchor
		x, y   int32
	}{
		{AnchorTopLeft, 10, 10},
		{AnchorTopRight, 590, 10},
		{AnchorBottomLeft, 10, 490},
		{AnchorBottomRight, 590, 490},
		{AnchorCenter, 300, 250},
	}
	for _, tt := range tests {
		pd.Anchor = tt.anchor
		x, y := pd.Position(800, 600, 100, 10)
		if x != tt.x || y != tt.y {
			t.Errorf("anchor %d: got (%d, %d), want (%d, %d)", tt.anchor, x, y, tt.x, tt.y)
		}
	}
}
