package sim

import (
	"time"

	"github.com/vireolab/vireoviz/config"
	"github.com/vireolab/vireoviz/results"
)

// Options configure one demo run. Zero values fall back to the loaded
// configuration.
type Options struct {
	OutDir string
	Steps  int
	Seed   int64
}

// Result reports what a completed run produced.
type Result struct {
	StepsRun   int
	FinalAlive int
	Extinct    bool
}

// Run executes the demo simulation and writes a results directory the
// analysis tools can consume.
func Run(opts Options) (Result, error) {
	cfg := config.Cfg()

	dir := opts.OutDir
	if dir == "" {
		dir = cfg.Results.Dir
	}
	steps := opts.Steps
	if steps == 0 {
		steps = cfg.World.Steps
	}
	seed := opts.Seed
	if seed == 0 {
		seed = cfg.World.Seed
	}

	writer, err := NewResultsWriter(dir)
	if err != nil {
		return Result{}, err
	}
	defer writer.Close()

	if err := writer.WriteConfig(cfg); err != nil {
		return Result{}, err
	}

	field := NewField(cfg.World.Width, cfg.World.Height)
	Logf("Seeding field with resources...")
	field.SeedResources(seed)

	agents := NewAgents(cfg.Agents.Herbivores, seed+1)

	tracker := &Tracker{}
	dt := cfg.Derived.DT32

	Logf("Starting simulation for %d steps...", steps)
	start := time.Now()

	var res Result
	for step := 0; step <= steps; step++ {
		stepStart := time.Now()

		agents.Step(field, dt)
		agents.Deposit(field)

		if isSnapshotStep(cfg.Results.SnapshotSteps, step) {
			path, err := writer.WriteOccupancySnapshot(step, field)
			if err != nil {
				return res, err
			}
			Logf("Saved occupancy PNG: %s", path)
		}

		field.Step(dt)

		elapsed := time.Since(stepStart)
		if step%cfg.Telemetry.MetricsInterval == 0 {
			fs := field.Stats()
			as := agents.Stats()
			if err := writer.WriteMetrics(metricsRow(step, fs, as, tracker, elapsed)); err != nil {
				return res, err
			}
			Logf("Step %d: R=%.3f, W=%.3f, Agents=%d, Time=%v", step, fs.MeanR, fs.MeanW, as.AliveCount, elapsed)
		}

		if isSnapshotStep(cfg.Results.SnapshotSteps, step) {
			if err := writer.WriteFieldSnapshot(step, field); err != nil {
				return res, err
			}
			if err := writer.WriteAgentsSnapshot(step, agents); err != nil {
				return res, err
			}
			Logf("Snapshot written for step %d", step)
		}

		res.StepsRun = step
		res.FinalAlive = agents.Count()
		if res.FinalAlive == 0 {
			res.Extinct = true
			Logf("Warning: All agents died at step %d", step)
			break
		}
	}

	Logf("Simulation completed in %v", time.Since(start))
	Logf("Results written to %s", dir)

	if err := writer.Close(); err != nil {
		return res, err
	}
	return res, nil
}

// metricsRow assembles one metrics table row from the step aggregates.
func metricsRow(step int, fs FieldStats, as AgentStats, t *Tracker, elapsed time.Duration) results.MetricsRow {
	t.Push(as.AliveCount)

	wallMS := float64(elapsed) / float64(time.Millisecond)
	fps := 0.0
	if wallMS > 0 {
		fps = 1000 / wallMS
	}

	return results.MetricsRow{
		Step:                       step,
		MeanR:                      fs.MeanR,
		MeanW:                      fs.MeanW,
		VarR:                       fs.VarR,
		VarW:                       fs.VarW,
		MeanGradR:                  fs.MeanGradR,
		MaxR:                       fs.MaxR,
		MaxW:                       fs.MaxW,
		MinR:                       fs.MinR,
		MinW:                       fs.MinW,
		AliveCount:                 as.AliveCount,
		TotalEnergy:                as.TotalEnergy,
		MeanEnergy:                 as.MeanEnergy,
		MeanVelocity:               as.MeanVelocity,
		ForagingEfficiency:         as.ForagingEfficiency,
		CycleScore:                 t.CycleScore(),
		ForagingEfficiencyEnhanced: enhancedForaging(as),
		WallTimeMS:                 wallMS,
		FPSProxy:                   fps,
	}
}

func isSnapshotStep(steps []int, step int) bool {
	for _, s := range steps {
		if s == step {
			return true
		}
	}
	return false
}
