package plot

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/vireolab/vireoviz/config"
	"github.com/vireolab/vireoviz/results"
)

// agentTitle is the per-panel title carrying the live-agent count.
func agentTitle(step, count int) string {
	return fmt.Sprintf("Step %d - %d agents", step, count)
}

// AgentDistributions renders a grid of agent position scatters for the
// configured snapshot steps and writes agent_distributions.png into the
// results directory. Missing snapshot tables get a placeholder panel;
// zero-row tables render an empty panel whose title reports 0 agents.
func AgentDistributions(dir string) (string, error) {
	cfg := config.Cfg()
	pw, ph := cfg.Plot.PanelWidth, cfg.Plot.PanelHeight

	panels := make([]image.Image, 0, len(cfg.Results.SnapshotSteps))
	for _, step := range cfg.Results.SnapshotSteps {
		path := results.AgentsPath(dir, step)
		if _, err := os.Stat(path); err != nil {
			panels = append(panels, Placeholder(pw, ph, fmt.Sprintf("Step %d", step), "no snapshot"))
			continue
		}
		rows, err := results.LoadAgents(path)
		if err != nil {
			return "", err
		}
		title := agentTitle(step, len(rows))
		if len(rows) == 0 {
			panels = append(panels, Placeholder(pw, ph, title, ""))
			continue
		}
		xs, ys := results.Positions(rows)
		panel, err := scatterPanel(title, xs, ys, cfg.Derived.Extent, pw, ph)
		if err != nil {
			return "", fmt.Errorf("step %d scatter: %w", step, err)
		}
		panels = append(panels, panel)
	}

	img := Grid("Agent Distributions Over Time", panels, 2, pw, ph)
	out := filepath.Join(dir, "agent_distributions.png")
	if err := savePNG(out, img); err != nil {
		return "", err
	}
	return out, nil
}
