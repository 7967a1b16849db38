package telemetry

import (
	"github.com/pthm-cable/ember/components"
	"github.com/pthm-cable/ember/sim"
)

// Collector accumulates tick reports within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartSec float64
	ticks          int

	// Event counters for current window
	cooled      int
	aged        int
	outOfBounds int
	respawned   int
	removed     int
	injectAdded int
	rejected    int

	// Scratch buffers reused between flushes
	temps, sizes, ages []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordTick adds one tick's report to the window.
func (c *Collector) RecordTick(r sim.TickReport) {
	c.ticks++
	c.cooled += r.Cooled
	c.aged += r.Aged
	c.outOfBounds += r.OutOfBounds
	c.respawned += r.Respawned
	c.removed += r.Removed
}

// RecordInject records n accepted injections.
func (c *Collector) RecordInject(n int) {
	c.injectAdded += n
}

// RecordRejected records an operation the engine refused.
func (c *Collector) RecordRejected() {
	c.rejected++
}

// ShouldFlush returns true if enough simulation time has passed to flush the window.
func (c *Collector) ShouldFlush(simTime float64) bool {
	return simTime-c.windowStartSec >= c.windowDurationSec
}

// Flush produces a WindowStats from the counters and the current particle
// set, and resets counters for the next window.
func (c *Collector) Flush(simTime float64, particles []sim.Particle) WindowStats {
	stats := WindowStats{
		WindowStartSec: c.windowStartSec,
		SimTimeSec:     simTime,
		Ticks:          c.ticks,
		Population:     len(particles),

		Cooled:      c.cooled,
		Aged:        c.aged,
		OutOfBounds: c.outOfBounds,
		Respawned:   c.respawned,
		Removed:     c.removed,
		InjectAdded: c.injectAdded,
		Rejected:    c.rejected,
	}

	c.temps, c.sizes, c.ages = c.temps[:0], c.sizes[:0], c.ages[:0]
	hot := 0
	for i := range particles {
		p := &particles[i]
		c.temps = append(c.temps, p.Temperature)
		c.sizes = append(c.sizes, p.Size)
		c.ages = append(c.ages, p.Age)

		if p.Injected {
			stats.Injected++
		}
		switch p.Zone {
		case components.ZoneCore:
			stats.CoreCount++
		case components.ZoneMid:
			stats.MidCount++
		case components.ZoneOuter:
			stats.OuterCount++
		}
		if p.Temperature > HotThreshold {
			hot++
		}
	}

	if len(particles) > 0 {
		temp := Summarize(c.temps)
		stats.TempMean = temp.Mean
		stats.TempStd = temp.Std
		stats.TempP10 = temp.P10
		stats.TempP50 = temp.P50
		stats.TempP90 = temp.P90
		stats.HotFraction = float64(hot) / float64(len(particles))
		stats.SizeMean = Summarize(c.sizes).Mean
		stats.AgeMean = Summarize(c.ages).Mean

		top := particles[0].Y
		for i := range particles {
			top = min(top, particles[i].Y)
		}
		stats.TopY = top
	}

	// Reset for next window
	c.windowStartSec = simTime
	c.ticks = 0
	c.cooled = 0
	c.aged = 0
	c.outOfBounds = 0
	c.respawned = 0
	c.removed = 0
	c.injectAdded = 0
	c.rejected = 0

	return stats
}

// Reset restarts the window at simTime, discarding counters.
func (c *Collector) Reset(simTime float64) {
	c.Flush(simTime, nil)
}

// WindowDuration returns the window length in simulation seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
