package main

import (
	"context"
	"math"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/semaphore"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/fishfeed/config"
	"github.com/pthm-cable/fishfeed/game"
	"github.com/pthm-cable/fishfeed/telemetry"
)

// FitnessEvaluator runs headless sessions and scores how close the
// catch rate lands to a target.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config
	target     float64 // desired consumed / (consumed + pruned)
	sessions   *semaphore.Weighted

	mu            sync.Mutex
	lastCatchRate float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
		sessions:   semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

// LastCatchRate returns the mean catch rate from the most recent evaluation.
func (fe *FitnessEvaluator) LastCatchRate() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastCatchRate
}

// Skip the first windows while the first pellets are still falling.
const warmupWindows = 1

// Weight of the window-to-window catch rate variation in the fitness.
const stabilityWeight = 0.1

// runResult holds the results from a single session.
type runResult struct {
	consumed, pruned int
	windowRates      []float64
}

func (r *runResult) catchRate() float64 {
	settled := r.consumed + r.pruned
	if settled == 0 {
		return 0
	}
	return float64(r.consumed) / float64(settled)
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Seeds run in parallel, at most GOMAXPROCS sessions at a time; each gets
// its own Game.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	ctx := context.Background()
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		if err := fe.sessions.Acquire(ctx, 1); err != nil {
			results[i] = &runResult{}
			continue
		}
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			defer fe.sessions.Release(1)
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total, rates float64
	for _, r := range results {
		total += fe.computeFitness(r)
		rates += r.catchRate()
	}
	n := float64(len(results))

	fe.mu.Lock()
	fe.lastCatchRate = rates / n
	fe.mu.Unlock()

	return total / n
}

// runSimulation executes a single headless session driven by the autopilot.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}
	windows := 0

	g, err := game.NewGameWithOptions(game.Options{
		Config:   cfg,
		Seed:     seed,
		Headless: true,
		StatsCallback: func(stats telemetry.WindowStats) {
			windows++
			if windows <= warmupWindows {
				return
			}
			result.consumed += stats.PelletsConsumed
			result.pruned += stats.PelletsPruned
			if settled := stats.PelletsConsumed + stats.PelletsPruned; settled > 0 {
				result.windowRates = append(result.windowRates, stats.CatchRate)
			}
		},
	})
	if err != nil {
		return result
	}
	defer g.Unload()

	if err := g.StartSession(cfg.Level); err != nil {
		return result
	}
	for g.Tick() < fe.maxTicks {
		g.Step()
	}
	return result
}

// copyConfig creates a deep copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Props = slices.Clone(fe.baseConfig.Props)
	cfg.Level.Spawns = slices.Clone(fe.baseConfig.Level.Spawns)
	cfg.ComputeDerived()
	return &cfg
}

// computeFitness is the squared catch rate error plus a penalty for the
// coefficient of variation across windows. A run that settled no pellets
// scores the worst possible error.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	if r.consumed+r.pruned == 0 {
		return 1 + stabilityWeight
	}
	e := r.catchRate() - fe.target
	c := cv(r.windowRates)
	return e*e + stabilityWeight*c*c
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean, std := stat.MeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return math.Abs(std / mean)
}
