// Package telemetry provides windowed fire statistics, perf tracking and CSV output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// HotThreshold is the temperature above which a particle counts as hot.
const HotThreshold = 0.7

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartSec float64 `csv:"-"`
	SimTimeSec     float64 `csv:"sim_time"`
	Ticks          int     `csv:"ticks"`

	// Population at window end
	Population int `csv:"population"`
	Injected   int `csv:"injected"`
	CoreCount  int `csv:"core"`
	MidCount   int `csv:"mid"`
	OuterCount int `csv:"outer"`

	// Events during window
	Cooled      int `csv:"cooled"`
	Aged        int `csv:"aged"`
	OutOfBounds int `csv:"out_of_bounds"`
	Respawned   int `csv:"respawned"`
	Removed     int `csv:"removed"`
	InjectAdded int `csv:"inject_added"`
	Rejected    int `csv:"rejected"`

	// Temperature distribution (sampled at window end)
	TempMean    float64 `csv:"temp_mean"`
	TempStd     float64 `csv:"temp_std"`
	TempP10     float64 `csv:"temp_p10"`
	TempP50     float64 `csv:"temp_p50"`
	TempP90     float64 `csv:"temp_p90"`
	HotFraction float64 `csv:"hot_fraction"`

	// Shape of the flame
	SizeMean float64 `csv:"size_mean"`
	AgeMean  float64 `csv:"age_mean"`
	TopY     float64 `csv:"top_y"` // Highest particle (smallest y)
}

// Expired returns the number of particles that failed liveness in the window.
func (s WindowStats) Expired() int {
	return s.Cooled + s.Aged + s.OutOfBounds
}

// CooledFraction returns the share of expiries caused by cooling.
func (s WindowStats) CooledFraction() float64 {
	if n := s.Expired(); n > 0 {
		return float64(s.Cooled) / float64(n)
	}
	return 0
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Min, Max      float64
}

// Summarize computes mean, standard deviation, percentiles and range.
// values is not modified.
func Summarize(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	var d Distribution
	if n == 1 {
		d.Mean = values[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(values, nil)
	}
	d.Min = floats.Min(values)
	d.Max = floats.Max(values)

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	d.P10 = Percentile(sorted, 0.10)
	d.P50 = Percentile(sorted, 0.50)
	d.P90 = Percentile(sorted, 0.90)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("ticks", s.Ticks),
		slog.Int("population", s.Population),
		slog.Int("injected", s.Injected),
		slog.Int("core", s.CoreCount),
		slog.Int("mid", s.MidCount),
		slog.Int("outer", s.OuterCount),
		slog.Int("cooled", s.Cooled),
		slog.Int("aged", s.Aged),
		slog.Int("out_of_bounds", s.OutOfBounds),
		slog.Int("respawned", s.Respawned),
		slog.Int("removed", s.Removed),
		slog.Int("inject_added", s.InjectAdded),
		slog.Int("rejected", s.Rejected),
		slog.Float64("temp_mean", s.TempMean),
		slog.Float64("temp_std", s.TempStd),
		slog.Float64("temp_p10", s.TempP10),
		slog.Float64("temp_p50", s.TempP50),
		slog.Float64("temp_p90", s.TempP90),
		slog.Float64("hot_fraction", s.HotFraction),
		slog.Float64("size_mean", s.SizeMean),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("top_y", s.TopY),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"sim_time", s.SimTimeSec,
		"population", s.Population,
		"injected", s.Injected,
		"cooled", s.Cooled,
		"aged", s.Aged,
		"out_of_bounds", s.OutOfBounds,
		"cooled_frac", s.CooledFraction(),
		"respawned", s.Respawned,
		"removed", s.Removed,
		"temp_mean", s.TempMean,
		"temp_p50", s.TempP50,
		"hot_fraction", s.HotFraction,
		"size_mean", s.SizeMean,
		"top_y", s.TopY,
	)
}
