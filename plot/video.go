package plot

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/icza/mjpeg"

	"github.com/vireolab/vireoviz/config"
	"github.com/vireolab/vireoviz/results"
)

const animationFPS = 2

// FieldAnimation encodes every field snapshot in the results directory as
// an MJPEG AVI of heatmap frames, in step order, and writes
// field_animation.avi. Snapshots whose dimensions differ from the first
// frame are skipped with a notice.
func FieldAnimation(dir string) (string, error) {
	steps, err := snapshotSteps(dir)
	if err != nil {
		return "", err
	}
	if len(steps) == 0 {
		Logf("No field snapshots found in %s", dir)
		return "", nil
	}

	cfg := config.Cfg()
	pw, ph := cfg.Plot.PanelWidth, cfg.Plot.PanelHeight

	out := filepath.Join(dir, "field_animation.avi")
	aw, err := mjpeg.New(out, int32(pw), int32(ph), animationFPS)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", out, err)
	}

	var fieldW, fieldH int
	for _, step := range steps {
		grid, err := results.LoadField(results.FieldPath(dir, step))
		if err != nil {
			aw.Close()
			return "", err
		}
		if fieldW == 0 {
			fieldW, fieldH = grid.Width, grid.Height
		} else if grid.Width != fieldW || grid.Height != fieldH {
			Logf("Skipping step %d snapshot: %dx%d does not match %dx%d",
				step, grid.Width, grid.Height, fieldW, fieldH)
			continue
		}

		frame := Heatmap(grid, 0, pw, ph, fmt.Sprintf("Step %d", step))
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: 90}); err != nil {
			aw.Close()
			return "", fmt.Errorf("encoding frame for step %d: %w", step, err)
		}
		if err := aw.AddFrame(buf.Bytes()); err != nil {
			aw.Close()
			return "", fmt.Errorf("adding frame for step %d: %w", step, err)
		}
	}

	if err := aw.Close(); err != nil {
		return "", fmt.Errorf("finalizing %s: %w", out, err)
	}
	return out, nil
}

// snapshotSteps lists the steps with a field snapshot on disk, ascending.
func snapshotSteps(dir string) ([]int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "R_*.png"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	var steps []int
	for _, m := range matches {
		base := filepath.Base(m)
		numeric := strings.TrimSuffix(strings.TrimPrefix(base, "R_"), ".png")
		step, err := strconv.Atoi(numeric)
		if err != nil {
			continue
		}
		steps = append(steps, step)
	}
	sort.Ints(steps)
	return steps, nil
}
