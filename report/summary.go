// Package report prints the post-run summary of a recorded simulation:
// run totals, final field and agent statistics, and the artifact listing.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vireolab/vireoviz/results"
)

const bannerWidth = 60

// Write prints the summary report for a results directory to w. A missing
// metrics table prints a notice and is not an error; a table that cannot
// be parsed, or one with no data rows, is.
func Write(w io.Writer, dir string) error {
	path := results.MetricsPath(dir)
	table, err := results.LoadMetrics(path)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(w, "Metrics file not found: %s\n", path)
		return nil
	}
	if err != nil {
		return err
	}

	final, ok := table.Final()
	if !ok {
		return fmt.Errorf("metrics table %s has no rows", path)
	}

	banner := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, "Vireo Simulation Summary Report")
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "Total Steps: %d\n", table.Len())
	fmt.Fprintf(w, "Simulation Duration: %.2f seconds\n", table.TotalWallTimeMS()/1000)
	fmt.Fprintf(w, "Average Step Time: %.2f ms\n", table.MeanWallTimeMS())
	fmt.Fprintf(w, "Average FPS: %.1f\n", table.MeanFPS())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Field Statistics (Final):")
	fmt.Fprintf(w, "  Mean Resource: %.6f\n", final.MeanR)
	fmt.Fprintf(w, "  Max Resource: %.6f\n", final.MaxR)
	fmt.Fprintf(w, "  Min Resource: %.6f\n", final.MinR)
	fmt.Fprintf(w, "  Resource Variance: %.6f\n", final.VarR)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Agent Statistics (Final):")
	fmt.Fprintf(w, "  Alive Count: %d\n", final.AliveCount)
	fmt.Fprintf(w, "  Mean Energy: %.6f\n", final.MeanEnergy)
	fmt.Fprintf(w, "  Mean Velocity: %.6f\n", final.MeanVelocity)
	fmt.Fprintf(w, "  Foraging Efficiency: %.6f\n", final.ForagingEfficiency)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Files Generated:")
	artifacts, err := results.ListArtifacts(dir)
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		fmt.Fprintf(w, "  %s: %d bytes\n", a.Name, a.Size)
	}

	fmt.Fprintln(w, banner)
	return nil
}
