package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/ember/config"
	"github.com/pthm-cable/ember/sim"
)

func newTestApp(t *testing.T) (*app, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 30)

	cfg := config.Default()
	cfg.Simulation.Population = 300
	a, err := newApp(screen, cfg, 5)
	if err != nil {
		t.Fatal(err)
	}
	return a, screen
}

func TestFrame_DrawsFire(t *testing.T) {
	a, screen := newTestApp(t)
	for i := 0; i < 30; i++ {
		a.frame(1.0 / 30)
	}

	black := tcell.NewRGBColor(0, 0, 0)
	lit := 0
	for row := 0; row < 30; row++ {
		for col := 0; col < 80; col++ {
			_, _, style, _ := screen.GetContent(col, row)
			fg, bg, _ := style.Decompose()
			if fg != black || bg != black {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no lit cells were presented")
	}
	if a.engine.Len() != 300 {
		t.Errorf("population = %d, want 300", a.engine.Len())
	}
}

func TestHandleEvent_Keys(t *testing.T) {
	a, _ := newTestApp(t)

	if a.handleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)) {
		t.Fatal("space should not quit")
	}
	if !a.paused {
		t.Error("space should pause")
	}

	clock := a.engine.Clock()
	a.frame(0.5)
	if a.engine.Clock() != clock {
		t.Error("paused frame advanced the clock")
	}

	if !a.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape should quit")
	}
	if !a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should quit")
	}
}

func TestHandleEvent_MouseInjects(t *testing.T) {
	a, _ := newTestApp(t)
	a.handleEvent(tcell.NewEventMouse(40, 20, tcell.Button1, tcell.ModNone))
	if !a.pointing {
		t.Fatal("button press not tracked")
	}

	a.frame(1.0 / 60)
	if a.engine.Len() <= 300 {
		t.Errorf("len = %d, expected injected particles", a.engine.Len())
	}

	a.handleEvent(tcell.NewEventMouse(40, 20, tcell.ButtonNone, tcell.ModNone))
	if a.pointing {
		t.Error("release not tracked")
	}
}

func TestBurst_RespectsCap(t *testing.T) {
	a, _ := newTestApp(t)
	a.cfg.Input.MaxPopulation = 302
	a.pointX, a.pointY = 400, 500

	a.burst()
	a.burst()
	if a.engine.Len() != 302 {
		t.Errorf("len = %d, want cap 302", a.engine.Len())
	}
}

func TestBurst_MatchesSharedBudget(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		maxPop    int
		wantAdded int
	}{
		{"room", 6, 400, 6},
		{"partial", 6, 303, 3},
		{"full", 6, 300, 0},
		{"negative count", -2, 400, 0},
		{"unlimited", 6, 0, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t)
			a.cfg.Input.BurstCount = tt.count
			a.cfg.Input.MaxPopulation = tt.maxPop
			a.cfg.Input.BurstSpread = 0
			a.pointX, a.pointY = 400, 500

			want := sim.BurstBudget(a.engine.Len(), tt.count, tt.maxPop)
			if want != tt.wantAdded {
				t.Fatalf("BurstBudget = %d, want %d", want, tt.wantAdded)
			}
			a.burst()
			if got := a.engine.Len() - 300; got != tt.wantAdded {
				t.Errorf("added %d, want %d", got, tt.wantAdded)
			}
		})
	}
}
