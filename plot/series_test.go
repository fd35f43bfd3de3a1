package plot

import (
	"testing"

	chart "github.com/wcharczuk/go-chart/v2"
)

func TestPadRange(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		wantLo float64
		wantHi float64
	}{
		{"normal", 2, 8, 2, 8},
		{"degenerate", 5, 5, 4, 6},
		{"degenerate zero", 0, 0, -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := padRange(tt.lo, tt.hi)
			if lo != tt.wantLo || hi != tt.wantHi {
				t.Errorf("padRange(%v, %v) = (%v, %v), want (%v, %v)",
					tt.lo, tt.hi, lo, hi, tt.wantLo, tt.wantHi)
			}
		})
	}
}

func TestLinePanel(t *testing.T) {
	xs := []float64{0, 50, 100}
	series := []lineSeries{
		{name: "mean_R", ys: []float64{0.2, 0.3, 0.25}, style: chart.Style{StrokeColor: chart.ColorBlue}},
		{name: "max_R", ys: []float64{0.9, 1.1, 1.0}, style: chart.Style{StrokeColor: chart.ColorBlue, StrokeDashArray: []float64{5, 5}}},
	}
	img, err := linePanel("Resource Field Statistics", "Step", "Value", xs, series, 560, 420)
	if err != nil {
		t.Fatalf("linePanel error: %v", err)
	}
	if img.Bounds().Dx() != 560 || img.Bounds().Dy() != 420 {
		t.Errorf("panel = %dx%d, want 560x420", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestLinePanelConstantSeries(t *testing.T) {
	// Flat series would give the chart a zero-height y range without padding
	xs := []float64{0, 50}
	series := []lineSeries{
		{name: "alive_count", ys: []float64{2000, 2000}, style: chart.Style{StrokeColor: chart.ColorGreen}},
	}
	img, err := linePanel("Agent Population", "Step", "Count", xs, series, 560, 420)
	if err != nil {
		t.Fatalf("linePanel error: %v", err)
	}
	if img.Bounds().Dx() != 560 {
		t.Errorf("panel width = %d, want 560", img.Bounds().Dx())
	}
}

func TestScatterPanel(t *testing.T) {
	xs := []float64{10, 64, 120}
	ys := []float64{12, 70, 110}
	img, err := scatterPanel("Step 0 - 3 agents", xs, ys, 128, 560, 420)
	if err != nil {
		t.Fatalf("scatterPanel error: %v", err)
	}
	if img.Bounds().Dx() != 560 || img.Bounds().Dy() != 420 {
		t.Errorf("panel = %dx%d, want 560x420", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestScatterPanelSinglePoint(t *testing.T) {
	img, err := scatterPanel("Step 0 - 1 agents", []float64{64}, []float64{64}, 128, 560, 420)
	if err != nil {
		t.Fatalf("scatterPanel error: %v", err)
	}
	if img.Bounds().Dx() != 560 {
		t.Errorf("panel width = %d, want 560", img.Bounds().Dx())
	}
}
