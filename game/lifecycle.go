package game

import (
	"errors"
	"log/slog"

	"github.com/pthm-cable/ember/components"
	"github.com/pthm-cable/ember/sim"
)

// QueueBurst queues an injection burst centred on (x, y) for the next tick.
func (g *Game) QueueBurst(x, y float64) {
	g.bursts = append(g.bursts, sim.Point{X: x, Y: y})
}

// applyBursts injects the queued bursts, capped by input.max_population.
func (g *Game) applyBursts() {
	if len(g.bursts) == 0 {
		return
	}
	in := g.cfg.Input
	zone, ok := components.ParseZone(in.Zone)
	if !ok {
		zone = components.ZoneCore
	}

	added := 0
	for _, b := range g.bursts {
		n := sim.BurstBudget(g.engine.Len(), in.BurstCount, in.MaxPopulation)
		if n == 0 {
			g.collector.RecordRejected()
			continue
		}
		for _, p := range sim.BurstPoints(g.rng, b.X, b.Y, n, in.BurstSpread) {
			if err := g.engine.Inject(p.X, p.Y, in.Temperature, zone); err != nil {
				logInjectError(err)
				g.collector.RecordRejected()
				continue
			}
			added++
		}
	}
	g.bursts = g.bursts[:0]
	g.collector.RecordInject(added)
}

// logInjectError logs a refused injection. Points scattered past the surface
// edge are routine while dragging, so they only show at debug level.
func logInjectError(err error) {
	if errors.Is(err, sim.ErrOutOfBounds) {
		slog.Debug("inject", "error", err)
		return
	}
	slog.Warn("inject", "error", err)
}
