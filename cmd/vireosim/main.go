// Package main runs the demo simulation that produces a results
// directory for the analysis tools.
package main

import (
	"flag"
	"log"

	"github.com/vireolab/vireoviz/config"
	"github.com/vireolab/vireoviz/sim"
)

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	outDir := flag.String("out", "", "Output directory (empty = use config)")
	steps := flag.Int("steps", 0, "Number of steps to run (0 = use config)")
	seed := flag.Int64("seed", 0, "Random seed (0 = use config)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	opts := sim.Options{
		OutDir: *outDir,
		Steps:  *steps,
		Seed:   *seed,
	}
	if _, err := sim.Run(opts); err != nil {
		log.Fatalf("simulation failed: %v", err)
	}
}
