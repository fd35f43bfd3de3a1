package main

import (
	"math"
	"sync"

	"github.com/vireolab/vireoviz/config"
	"github.com/vireolab/vireoviz/sim"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxSteps   int
	seeds      []int64
	baseConfig *config.Config

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxSteps int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxSteps:    maxSteps,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Minimum viable population: if the herd stays below this for
// extinctionGraceSec of sim time, it counts as functionally extinct.
const (
	minViablePop       = 3
	extinctionGraceSec = 30.0 // seconds of grace below minViablePop
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalSteps int              // steps before functional extinction (or maxSteps if survived)
	windows       []sim.AgentStats // population stats sampled every metrics interval
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative survival steps: longer survival = lower (better) fitness.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	// Install this eval's parameters as the active config; the sim
	// constructors read it. Evaluations run sequentially (Concurrent: 0
	// in the optimizer settings) and the seed goroutines only read the
	// config, so one install per eval is safe.
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	config.Set(cfg)

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(s)
			results[idx] = seedResult{
				fitness: fe.computeFitness(result),
				quality: fe.computeQuality(result.windows),
			}
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	// Update best tracking
	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run.
// Runs until functional extinction or maxSteps, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(seed int64) *runResult {
	cfg := config.Cfg()
	dt := cfg.Derived.DT32

	field := sim.NewField(cfg.World.Width, cfg.World.Height)
	field.SeedResources(seed)
	agents := sim.NewAgents(cfg.Agents.Herbivores, seed+1)

	result := &runResult{}

	// Track how long the population has been below minimum viable size
	graceSteps := int(extinctionGraceSec / cfg.World.DT)
	var belowSteps int

	// Let the population establish before checking (skip first 5 sim-seconds)
	warmupSteps := int(5.0 / cfg.World.DT)

	interval := cfg.Telemetry.MetricsInterval

	for step := 0; step < fe.maxSteps; step++ {
		agents.Step(field, dt)
		agents.Deposit(field)
		field.Step(dt)

		if interval > 0 && step%interval == 0 {
			result.windows = append(result.windows, agents.Stats())
		}

		if step < warmupSteps {
			continue
		}

		alive := agents.Count()

		// Hard extinction: population completely gone
		if alive == 0 {
			result.survivalSteps = step
			return result
		}

		// Functional extinction: population below minimum viable size too long
		if alive < minViablePop {
			belowSteps++
		} else {
			belowSteps = 0
		}
		if belowSteps >= graceSteps {
			result.survivalSteps = step
			return result
		}
	}

	// Survived the full run
	result.survivalSteps = fe.maxSteps
	return result
}

// copyConfig creates a copy of the base config.
// Shallow copy is fine: ApplyToConfig only writes scalar fields.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalSteps × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% bonus to differentiate
// configs with similar survival.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	survival := float64(r.survivalSteps)
	quality := fe.computeQuality(r.windows)
	return -(survival * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightForaging  = 0.30
	qualityWeightStability = 0.25
	qualityWeightEnergy    = 0.25
	qualityWeightActivity  = 0.20

	qualityWarmupWindows = 3 // skip first N windows (warmup)
	qualityMinPop        = 3 // exclude windows with fewer live agents
)

// computeQuality computes population quality ∈ [0, 1] from window stats.
func (fe *FitnessEvaluator) computeQuality(windows []sim.AgentStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	// Collect valid windows (past warmup, population present)
	valid := windows[qualityWarmupWindows:]

	// --- Per-window accumulators ---
	var forageSum, energySum, activitySum float64
	var count int

	// --- Full time series for stability ---
	aliveCounts := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.AliveCount < qualityMinPop {
			continue
		}

		aliveCounts = append(aliveCounts, float64(w.AliveCount))

		// 1. Foraging efficiency score
		if w.MeanVelocity > 0 {
			forageSum += clamp01(w.MeanEnergy / w.MeanVelocity / 10.0)
		}

		// 3. Energy health score
		energySum += math.Exp(-math.Pow((w.MeanEnergy-1.0)/0.5, 2))

		// 4. Movement activity score
		activitySum += 1.0 - math.Exp(-w.MeanVelocity/0.5)

		count++
	}

	// No valid windows → zero quality
	if count == 0 {
		return 0
	}

	// 1. Foraging efficiency (averaged per valid window)
	forageScore := forageSum / float64(count)

	// 2. Population stability (CV across all valid windows)
	stabilityScore := 0.0
	if len(aliveCounts) >= 2 {
		cvAlive := cv(aliveCounts)
		stabilityScore = math.Exp(-cvAlive * cvAlive)
	}

	// 3. Energy health (averaged per valid window)
	energyScore := energySum / float64(count)

	// 4. Movement activity (averaged per valid window)
	activityScore := activitySum / float64(count)

	quality := qualityWeightForaging*forageScore +
		qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energyScore +
		qualityWeightActivity*activityScore

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff/n) / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
