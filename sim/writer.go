package sim

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/vireolab/vireoviz/config"
	"github.com/vireolab/vireoviz/results"
)

// ResultsWriter owns the output directory for one run: the metrics
// table, per-step agent tables, field and occupancy images, and a copy
// of the effective configuration.
type ResultsWriter struct {
	dir string

	metricsFile          *os.File
	metricsHeaderWritten bool
}

// NewResultsWriter creates the output directory and opens the metrics
// table for writing.
func NewResultsWriter(dir string) (*ResultsWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}
	f, err := os.Create(results.MetricsPath(dir))
	if err != nil {
		return nil, fmt.Errorf("creating metrics table: %w", err)
	}
	return &ResultsWriter{dir: dir, metricsFile: f}, nil
}

// Dir returns the output directory.
func (w *ResultsWriter) Dir() string { return w.dir }

// WriteConfig records the effective configuration next to the results.
func (w *ResultsWriter) WriteConfig(cfg *config.Config) error {
	return cfg.WriteYAML(filepath.Join(w.dir, "config.yaml"))
}

// WriteMetrics appends one row to the metrics table, emitting the
// header on the first call.
func (w *ResultsWriter) WriteMetrics(row results.MetricsRow) error {
	records := []results.MetricsRow{row}
	if !w.metricsHeaderWritten {
		if err := gocsv.Marshal(records, w.metricsFile); err != nil {
			return fmt.Errorf("writing metrics header: %w", err)
		}
		w.metricsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, w.metricsFile); err != nil {
		return fmt.Errorf("writing metrics row: %w", err)
	}
	return nil
}

// WriteAgentsSnapshot writes the per-step agent table, one row per
// live agent. An extinct population still produces the header.
func (w *ResultsWriter) WriteAgentsSnapshot(step int, agents *Agents) error {
	f, err := os.Create(results.AgentsPath(w.dir, step))
	if err != nil {
		return fmt.Errorf("creating agents snapshot: %w", err)
	}
	defer f.Close()

	records := agents.Snapshots()
	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing agents snapshot: %w", err)
	}
	return nil
}

// WriteFieldSnapshot writes the field image for a step: red is the
// min-max normalized resource plane, green the raw waste plane, blue
// unused.
func (w *ResultsWriter) WriteFieldSnapshot(step int, f *Field) error {
	lo, hi := f.Res[0], f.Res[0]
	for _, v := range f.Res {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, f.W, f.H))
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			i := y*f.W + x
			r := (f.Res[i] - lo) / span * 255
			g := f.Waste[i] * 255
			if g > 255 {
				g = 255
			}
			img.SetRGBA(x, y, color.RGBA{R: uint8(r), G: uint8(g), A: 255})
		}
	}
	return writePNG(results.FieldPath(w.dir, step), img)
}

// WriteOccupancySnapshot writes the grayscale agent density image for a
// step and returns its path. An empty grid produces a black image.
func (w *ResultsWriter) WriteOccupancySnapshot(step int, f *Field) (string, error) {
	var max int32
	for _, c := range f.Occupancy {
		if c > max {
			max = c
		}
	}

	img := image.NewGray(image.Rect(0, 0, f.W, f.H))
	if max > 0 {
		for y := 0; y < f.H; y++ {
			for x := 0; x < f.W; x++ {
				v := float64(f.Occupancy[y*f.W+x]) / float64(max) * 255
				img.SetGray(x, y, color.Gray{Y: uint8(v)})
			}
		}
	}

	path := filepath.Join(w.dir, fmt.Sprintf("occupancy_%04d.png", step))
	if err := writePNG(path, img); err != nil {
		return "", err
	}
	return path, nil
}

// Close closes the metrics table. Safe to call more than once.
func (w *ResultsWriter) Close() error {
	if w.metricsFile == nil {
		return nil
	}
	err := w.metricsFile.Close()
	w.metricsFile = nil
	return err
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
