package plot

import (
	"image"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/vireolab/vireoviz/config"
	"github.com/vireolab/vireoviz/results"
)

// MetricsOverTime renders the four metrics panels and writes
// metrics_over_time.png into the results directory. A missing metrics
// table is tolerated: a notice is emitted and no file is written. A
// table that exists but cannot be parsed is an error.
func MetricsOverTime(dir string) (string, error) {
	cfg := config.Cfg()
	pw, ph := cfg.Plot.PanelWidth, cfg.Plot.PanelHeight

	path := results.MetricsPath(dir)
	if _, err := os.Stat(path); err != nil {
		Logf("Metrics file not found: %s", path)
		return "", nil
	}
	table, err := results.LoadMetrics(path)
	if err != nil {
		return "", err
	}

	var panels []image.Image
	if table.Len() == 0 {
		// Keep the composite geometry for a header-only table
		for _, title := range []string{
			"Resource Field Statistics", "Agent Population", "Agent State", "Performance (FPS Proxy)",
		} {
			panels = append(panels, Placeholder(pw, ph, title, "no data"))
		}
	} else {
		xs := table.Steps()
		col := table.Column

		resource, err := linePanel("Resource Field Statistics", "Step", "Resource Value", xs, []lineSeries{
			{name: "mean_R", ys: col(func(r results.MetricsRow) float64 { return r.MeanR }),
				style: chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2.0}},
			{name: "max_R", ys: col(func(r results.MetricsRow) float64 { return r.MaxR }),
				style: chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2.0, StrokeDashArray: []float64{5, 5}}},
			{name: "min_R", ys: col(func(r results.MetricsRow) float64 { return r.MinR }),
				style: chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2.0, StrokeDashArray: []float64{2, 2}}},
		}, pw, ph)
		if err != nil {
			return "", err
		}

		population, err := linePanel("Agent Population", "Step", "Alive Count", xs, []lineSeries{
			{name: "alive_count", ys: col(func(r results.MetricsRow) float64 { return float64(r.AliveCount) }),
				style: chart.Style{StrokeColor: chart.ColorGreen, StrokeWidth: 2.0}},
		}, pw, ph)
		if err != nil {
			return "", err
		}

		state, err := linePanel("Agent State", "Step", "Value", xs, []lineSeries{
			{name: "mean_energy", ys: col(func(r results.MetricsRow) float64 { return r.MeanEnergy }),
				style: chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2.0}},
			{name: "mean_velocity", ys: col(func(r results.MetricsRow) float64 { return r.MeanVelocity }),
				style: chart.Style{StrokeColor: orange, StrokeWidth: 2.0}},
		}, pw, ph)
		if err != nil {
			return "", err
		}

		fps, err := linePanel("Performance (FPS Proxy)", "Step", "FPS", xs, []lineSeries{
			{name: "fps_proxy", ys: col(func(r results.MetricsRow) float64 { return r.FPSProxy }),
				style: chart.Style{StrokeColor: purple, StrokeWidth: 2.0}},
		}, pw, ph)
		if err != nil {
			return "", err
		}

		panels = []image.Image{resource, population, state, fps}
	}

	img := Grid("Simulation Metrics Over Time", panels, 2, pw, ph)
	out := filepath.Join(dir, "metrics_over_time.png")
	if err := savePNG(out, img); err != nil {
		return "", err
	}
	return out, nil
}
