package plot

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/vireolab/vireoviz/config"
	"github.com/vireolab/vireoviz/results"
)

// FieldEvolution renders a grid of resource heatmaps for the configured
// snapshot steps and writes field_evolution.png into the results
// directory. Steps without a snapshot on disk get a placeholder panel;
// a snapshot that exists but cannot be decoded is an error.
func FieldEvolution(dir string) (string, error) {
	cfg := config.Cfg()
	pw, ph := cfg.Plot.PanelWidth, cfg.Plot.PanelHeight

	panels := make([]image.Image, 0, len(cfg.Results.SnapshotSteps))
	for _, step := range cfg.Results.SnapshotSteps {
		title := fmt.Sprintf("Step %d", step)
		path := results.FieldPath(dir, step)
		if _, err := os.Stat(path); err != nil {
			panels = append(panels, Placeholder(pw, ph, title, "no snapshot"))
			continue
		}
		grid, err := results.LoadField(path)
		if err != nil {
			return "", err
		}
		panels = append(panels, Heatmap(grid, 0, pw, ph, title))
	}

	img := Grid("Resource Field Evolution (R channel)", panels, 2, pw, ph)
	out := filepath.Join(dir, "field_evolution.png")
	if err := savePNG(out, img); err != nil {
		return "", err
	}
	return out, nil
}
