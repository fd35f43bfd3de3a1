package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	gridMargin     = 12
	gridGap        = 10
	supTitleHeight = 40
)

var (
	frameGray = color.RGBA{R: 170, G: 170, B: 170, A: 255}
	noteGray  = color.RGBA{R: 120, G: 120, B: 120, A: 255}
)

// gridSize returns the composite dimensions for n panels laid out in cols
// columns at the given panel size.
func gridSize(n, cols, panelW, panelH int) (int, int) {
	rows := (n + cols - 1) / cols
	w := 2*gridMargin + cols*panelW + (cols-1)*gridGap
	h := supTitleHeight + rows*panelH + (rows-1)*gridGap + gridMargin
	return w, h
}

// Grid composites panel images into a grid with a suptitle. Panels are
// placed row-major; a nil panel leaves its cell blank.
func Grid(title string, panels []image.Image, cols, panelW, panelH int) *image.RGBA {
	w, h := gridSize(len(panels), cols, panelW, panelH)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)

	drawTitle(out, w/2, supTitleHeight/2, title, color.Black)

	for i, p := range panels {
		if p == nil {
			continue
		}
		col := i % cols
		row := i / cols
		x := gridMargin + col*(panelW+gridGap)
		y := supTitleHeight + row*(panelH+gridGap)
		draw.Draw(out, image.Rect(x, y, x+panelW, y+panelH), p, p.Bounds().Min, draw.Src)
	}
	return out
}

// Placeholder renders an empty framed panel with a title and a centered
// note. Used where a snapshot is absent so composite geometry stays stable.
func Placeholder(w, h int, title, note string) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)

	for x := 0; x < w; x++ {
		out.SetRGBA(x, 0, frameGray)
		out.SetRGBA(x, h-1, frameGray)
	}
	for y := 0; y < h; y++ {
		out.SetRGBA(0, y, frameGray)
		out.SetRGBA(w-1, y, frameGray)
	}

	drawCenteredLabel(out, w/2, 18, title, color.Black)
	if note != "" {
		drawCenteredLabel(out, w/2, h/2, note, noteGray)
	}
	return out
}

// addLabel draws a text label onto an image at the given baseline position.
func addLabel(img *image.RGBA, x, y int, label string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(label)
}

// drawCenteredLabel draws a label horizontally centered on cx.
func drawCenteredLabel(img *image.RGBA, cx, baseline int, label string, col color.Color) {
	addLabel(img, cx-len(label)*7/2, baseline, label, col)
}

// drawTitle draws a label at double scale, centered on (cx, cy).
func drawTitle(img *image.RGBA, cx, cy int, title string, col color.Color) {
	w := len(title)*7 + 2
	h := 16
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	addLabel(tmp, 1, 13, title, col)
	big := resize.Resize(uint(w*2), uint(h*2), tmp, resize.NearestNeighbor)
	draw.Draw(img, image.Rect(cx-w, cy-h, cx+w, cy+h), big, image.Point{}, draw.Over)
}

// savePNG writes an image to disk as PNG.
func savePNG(path string, img image.Image) error {
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
