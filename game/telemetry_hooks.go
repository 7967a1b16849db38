package game

import (
	"log/slog"
)

// flushTelemetry checks if the stats window should be flushed and writes it out.
func (g *Game) flushTelemetry() {
	clock := g.engine.Clock()
	if !g.collector.ShouldFlush(clock) {
		return
	}

	stats := g.collector.Flush(clock, g.engine.Particles())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, clock, g.engine.Len()); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
