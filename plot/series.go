package plot

import (
	"bytes"
	"fmt"
	"image"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"
)

var (
	orange = drawing.Color{R: 255, G: 165, B: 0, A: 255}
	purple = drawing.Color{R: 128, G: 0, B: 128, A: 255}
	// Scatter dots at 60% alpha, as the agent panels have always drawn them
	agentRed = drawing.Color{R: 255, G: 0, B: 0, A: 153}
)

// lineSeries is one named series in a metrics panel.
type lineSeries struct {
	name  string
	ys    []float64
	style chart.Style
}

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    2,
		DotColor:    col,
	}
}

func gridStyle() chart.Style {
	return chart.Style{
		StrokeColor: chart.ColorAlternateGray,
		StrokeWidth: 1.0,
	}
}

// padRange widens a degenerate range so the chart backend always has a
// nonzero span to divide by.
func padRange(lo, hi float64) (float64, float64) {
	if hi-lo == 0 {
		return lo - 1, hi + 1
	}
	return lo, hi
}

// renderPanel rasterizes a chart and decodes it back for compositing.
func renderPanel(graph chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	img, _, err := image.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decoding chart: %w", err)
	}
	return img, nil
}

// linePanel renders overlaid line series against a shared x column.
func linePanel(title, xName, yName string, xs []float64, series []lineSeries, w, h int) (image.Image, error) {
	cs := make([]chart.Series, 0, len(series))
	yLo, yHi := floats.Min(series[0].ys), floats.Max(series[0].ys)
	for _, s := range series {
		yLo = min(yLo, floats.Min(s.ys))
		yHi = max(yHi, floats.Max(s.ys))
		cs = append(cs, chart.ContinuousSeries{
			Name:    s.name,
			XValues: xs,
			YValues: s.ys,
			Style:   s.style,
		})
	}
	xLo, xHi := padRange(floats.Min(xs), floats.Max(xs))
	yLo, yHi = padRange(yLo, yHi)

	graph := chart.Chart{
		Title:  title,
		Width:  w,
		Height: h,
		XAxis: chart.XAxis{
			Name:           xName,
			Range:          &chart.ContinuousRange{Min: xLo, Max: xHi},
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           yName,
			Range:          &chart.ContinuousRange{Min: yLo, Max: yHi},
			GridMajorStyle: gridStyle(),
		},
		Series: cs,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return renderPanel(graph)
}

// scatterPanel renders positions as dots over a fixed square extent.
func scatterPanel(title string, xs, ys []float64, extent float64, w, h int) (image.Image, error) {
	graph := chart.Chart{
		Title:  title,
		Width:  w,
		Height: h,
		XAxis: chart.XAxis{
			Name:           "X Position",
			Range:          &chart.ContinuousRange{Min: 0, Max: extent},
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           "Y Position",
			Range:          &chart.ContinuousRange{Min: 0, Max: extent},
			GridMajorStyle: gridStyle(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style:   pointStyle(agentRed),
			},
		},
	}
	return renderPanel(graph)
}
