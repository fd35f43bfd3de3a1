package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/floats"

	"github.com/vireolab/vireoviz/results"
)

const (
	heatTitleH = 24
	heatMargin = 10
	heatBarW   = 22
	heatLabelW = 46
)

// heatmapLayout returns the raster and colorbar rectangles inside a panel.
func heatmapLayout(w, h int) (raster, bar image.Rectangle) {
	side := min(w-heatBarW-heatLabelW-3*heatMargin, h-heatTitleH-2*heatMargin)
	raster = image.Rect(heatMargin, heatTitleH+heatMargin, heatMargin+side, heatTitleH+heatMargin+side)
	bar = image.Rect(raster.Max.X+heatMargin, raster.Min.Y, raster.Max.X+heatMargin+heatBarW, raster.Max.Y)
	return raster, bar
}

// Heatmap renders one channel of a field grid as a viridis raster with a
// value colorbar, scaled into a panel of the given size. The value range
// is normalized per image, matching the producer's snapshot encoding.
func Heatmap(g *results.FieldGrid, channel, w, h int, title string) *image.RGBA {
	plane := g.Channel(channel)
	if len(plane) == 0 {
		return Placeholder(w, h, title, "no data")
	}

	lo, hi := floats.Min(plane), floats.Max(plane)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	raw := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			t := (g.At(x, y, channel) - lo) / span
			raw.SetRGBA(x, y, Viridis(t))
		}
	}

	panel := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(panel, panel.Bounds(), image.White, image.Point{}, draw.Src)

	rasterBox, barBox := heatmapLayout(w, h)
	scaled := resize.Resize(uint(rasterBox.Dx()), uint(rasterBox.Dy()), raw, resize.NearestNeighbor)
	draw.Draw(panel, rasterBox, scaled, image.Point{}, draw.Src)

	// Colorbar, max value at the top
	for y := barBox.Min.Y; y < barBox.Max.Y; y++ {
		t := 1 - float64(y-barBox.Min.Y)/float64(barBox.Dy()-1)
		c := Viridis(t)
		for x := barBox.Min.X; x < barBox.Max.X; x++ {
			panel.SetRGBA(x, y, c)
		}
	}
	addLabel(panel, barBox.Max.X+4, barBox.Min.Y+10, fmt.Sprintf("%.3g", hi), color.Black)
	addLabel(panel, barBox.Max.X+4, barBox.Max.Y, fmt.Sprintf("%.3g", lo), color.Black)

	drawCenteredLabel(panel, w/2, 16, title, color.Black)
	return panel
}
