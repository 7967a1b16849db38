package main

import (
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/pthm-cable/ember/config"
	"github.com/pthm-cable/ember/game"
	"github.com/pthm-cable/ember/telemetry"
)

// Target is the flame shape a tuning run aims for.
type Target struct {
	Height  float64 // Flame reach as a fraction of surface height
	Hot     float64 // Share of particles above telemetry.HotThreshold
	Cooled  float64 // Share of expiries caused by cooling
	TempP50 float64 // Median temperature
}

// Loss weights.
const (
	weightHeight = 0.40
	weightHot    = 0.25
	weightCooled = 0.20
	weightTemp   = 0.15

	warmupWindows = 2 // skip windows while the flame establishes
)

// FitnessEvaluator runs headless simulations and scores them against a Target.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config
	target     Target

	mu          sync.Mutex
	bestFitness float64
	bestStats   telemetry.WindowStats // last window of the best run
	lastStats   telemetry.WindowStats
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, target Target) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		target:      target,
		bestFitness: math.Inf(1),
	}
}

// BestStats returns the final window of the best evaluation so far.
func (fe *FitnessEvaluator) BestStats() telemetry.WindowStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestStats
}

// LastStats returns the final window of the most recent evaluation.
func (fe *FitnessEvaluator) LastStats() telemetry.WindowStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastStats
}

type seedResult struct {
	fitness float64
	last    telemetry.WindowStats
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Seeds run in parallel; the result is their mean loss.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows := fe.runSimulation(x, s)
			results[idx].fitness = fe.computeLoss(windows)
			if len(windows) > 0 {
				results[idx].last = windows[len(windows)-1]
			}
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, r := range results {
		total += r.fitness
	}
	avg := total / float64(len(results))

	fe.mu.Lock()
	if len(results) > 0 {
		fe.lastStats = results[0].last
	}
	if avg < fe.bestFitness {
		fe.bestFitness = avg
		fe.bestStats = fe.lastStats
	}
	fe.mu.Unlock()

	return avg
}

// runSimulation executes one headless run and returns its stats windows.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) []telemetry.WindowStats {
	cfg := cloneConfig(fe.baseConfig)
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	g, err := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 1,
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s)
		},
	})
	if err != nil {
		slog.Warn("evaluation failed", "seed", seed, "error", err)
		return nil
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return windows
}

// computeLoss scores windows against the target. Runs with no usable
// windows get the worst possible loss.
func (fe *FitnessEvaluator) computeLoss(windows []telemetry.WindowStats) float64 {
	if len(windows) <= warmupWindows {
		return 1
	}
	height := fe.baseConfig.Derived.Height
	if height <= 0 {
		height = float64(fe.baseConfig.Screen.Height)
	}

	var loss float64
	valid := windows[warmupWindows:]
	for _, w := range valid {
		if w.Population == 0 {
			loss += 1
			continue
		}
		reach := (height - w.TopY) / height
		loss += weightHeight*sq(reach-fe.target.Height) +
			weightHot*sq(w.HotFraction-fe.target.Hot) +
			weightCooled*sq(w.CooledFraction()-fe.target.Cooled) +
			weightTemp*sq(w.TempP50-fe.target.TempP50)
	}
	return loss / float64(len(valid))
}

func sq(v float64) float64 { return v * v }

// cloneConfig copies cfg deeply enough for concurrent runs to mutate.
func cloneConfig(cfg *config.Config) *config.Config {
	c := *cfg
	c.Emission.ZoneWeights = slices.Clone(cfg.Emission.ZoneWeights)
	c.Color.Background = slices.Clone(cfg.Color.Background)
	return &c
}
