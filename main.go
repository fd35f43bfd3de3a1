// Vireoviz generates the post-run analysis for a simulation results
// directory: a text summary report, composite plot images written next
// to the data, and an interactive viewer for the rendered files.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/vireolab/vireoviz/config"
	"github.com/vireolab/vireoviz/plot"
	"github.com/vireolab/vireoviz/report"
	"github.com/vireolab/vireoviz/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	resultsDir := flag.String("results", "", "Results directory (empty = use config)")
	headless := flag.Bool("headless", false, "Skip the interactive viewer")
	video := flag.Bool("video", false, "Also render the field snapshot animation")
	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	dir := *resultsDir
	if dir == "" {
		dir = cfg.Results.Dir
	}

	// A missing results directory is not a failure: report and stop.
	if _, err := os.Stat(dir); err != nil {
		fmt.Printf("Results directory not found: %s\n", dir)
		return
	}

	fmt.Println("Generating visualizations for Vireo simulation results...")

	clean := true
	if err := report.Write(os.Stdout, dir); err != nil {
		fmt.Printf("Error generating summary: %v\n", err)
		clean = false
	}

	renderers := []func(string) (string, error){
		plot.FieldEvolution,
		plot.AgentDistributions,
		plot.MetricsOverTime,
	}
	if *video {
		renderers = append(renderers, plot.FieldAnimation)
	}

	var rendered []string
	for _, render := range renderers {
		path, err := render(dir)
		if err != nil {
			fmt.Printf("Error generating visualizations: %v\n", err)
			clean = false
			continue
		}
		// Renderers return an empty path when their inputs are absent.
		if path != "" {
			rendered = append(rendered, path)
		}
	}

	if clean {
		fmt.Println("All visualizations generated successfully!")
	}

	if !*headless {
		viewer.Show(rendered)
	}
}
