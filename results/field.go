package results

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

// FieldGrid is a decoded field snapshot: dense per-channel planes in
// row-major order, values scaled 0-255. Channel 0 carries the resource
// quantity in the producer's encoding.
type FieldGrid struct {
	Width  int
	Height int
	planes [][]float64
}

// FieldPath returns the field snapshot path for a step, e.g. R_0200.png.
func FieldPath(dir string, step int) string {
	return filepath.Join(dir, fmt.Sprintf("R_%04d.png", step))
}

// LoadField decodes a PNG field snapshot. Channel count is not validated;
// requesting a channel that does not exist is a caller fault.
func LoadField(path string) (*FieldGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening field snapshot: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding field snapshot %s: %w", path, err)
	}

	b := img.Bounds()
	g := &FieldGrid{
		Width:  b.Dx(),
		Height: b.Dy(),
		planes: make([][]float64, 4),
	}
	for c := range g.planes {
		g.planes[c] = make([]float64, g.Width*g.Height)
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, gr, bl, a := img.At(x, y).RGBA()
			g.planes[0][i] = float64(r >> 8)
			g.planes[1][i] = float64(gr >> 8)
			g.planes[2][i] = float64(bl >> 8)
			g.planes[3][i] = float64(a >> 8)
			i++
		}
	}
	return g, nil
}

// Channels returns the number of decoded channel planes.
func (g *FieldGrid) Channels() int {
	return len(g.planes)
}

// Channel returns one plane in row-major order.
func (g *FieldGrid) Channel(c int) []float64 {
	return g.planes[c]
}

// At returns the value at (x, y) in channel c.
func (g *FieldGrid) At(x, y, c int) float64 {
	return g.planes[c][y*g.Width+x]
}
