// Package plot renders composite diagnostic images from recorded
// simulation results: field heatmaps, agent scatters, and metrics charts.
package plot

import "image/color"

// viridisAnchors are evenly spaced control points of the viridis ramp,
// dark purple through teal to yellow.
var viridisAnchors = [...][3]float64{
	{68, 1, 84},
	{59, 82, 139},
	{33, 145, 140},
	{94, 201, 98},
	{253, 231, 37},
}

// Viridis maps t in [0, 1] to the viridis colormap. Out-of-range inputs
// clamp to the ramp ends.
func Viridis(t float64) color.RGBA {
	last := len(viridisAnchors) - 1
	if t <= 0 {
		a := viridisAnchors[0]
		return color.RGBA{R: uint8(a[0]), G: uint8(a[1]), B: uint8(a[2]), A: 255}
	}
	if t >= 1 {
		a := viridisAnchors[last]
		return color.RGBA{R: uint8(a[0]), G: uint8(a[1]), B: uint8(a[2]), A: 255}
	}

	pos := t * float64(last)
	i := int(pos)
	if i >= last {
		i = last - 1
	}
	f := pos - float64(i)

	a, b := viridisAnchors[i], viridisAnchors[i+1]
	return color.RGBA{
		R: uint8(a[0] + (b[0]-a[0])*f),
		G: uint8(a[1] + (b[1]-a[1])*f),
		B: uint8(a[2] + (b[2]-a[2])*f),
		A: 255,
	}
}
