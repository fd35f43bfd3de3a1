package plot

import (
	"image"
	"image/color"
	"testing"
)

func TestGridSize(t *testing.T) {
	tests := []struct {
		n, cols, pw, ph int
		wantW, wantH    int
	}{
		{4, 2, 100, 80, 2*gridMargin + 200 + gridGap, supTitleHeight + 160 + gridGap + gridMargin},
		{1, 2, 100, 80, 2*gridMargin + 200 + gridGap, supTitleHeight + 80 + gridMargin},
		{3, 2, 50, 50, 2*gridMargin + 100 + gridGap, supTitleHeight + 100 + gridGap + gridMargin},
	}
	for _, tt := range tests {
		w, h := gridSize(tt.n, tt.cols, tt.pw, tt.ph)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("gridSize(%d, %d, %d, %d) = (%d, %d), want (%d, %d)",
				tt.n, tt.cols, tt.pw, tt.ph, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestGridComposite(t *testing.T) {
	red := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			red.SetRGBA(x, y, color.RGBA{255, 0, 0, 255})
		}
	}

	out := Grid("Title", []image.Image{red, nil, red, red}, 2, 40, 30)
	wantW, wantH := gridSize(4, 2, 40, 30)
	if out.Bounds().Dx() != wantW || out.Bounds().Dy() != wantH {
		t.Fatalf("composite = %dx%d, want %dx%d", out.Bounds().Dx(), out.Bounds().Dy(), wantW, wantH)
	}

	// First cell carries the panel
	got := out.RGBAAt(gridMargin+5, supTitleHeight+5)
	if got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("panel cell pixel = %v, want red", got)
	}
	// Nil cell stays background white
	got = out.RGBAAt(gridMargin+40+gridGap+5, supTitleHeight+5)
	if got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("empty cell pixel = %v, want white", got)
	}
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder(120, 90, "Step 0 - 0 agents", "no snapshot")
	if p.Bounds().Dx() != 120 || p.Bounds().Dy() != 90 {
		t.Fatalf("placeholder = %dx%d, want 120x90", p.Bounds().Dx(), p.Bounds().Dy())
	}
	if got := p.RGBAAt(0, 0); got != frameGray {
		t.Errorf("border pixel = %v, want %v", got, frameGray)
	}
	if got := p.RGBAAt(60, 80); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("interior pixel = %v, want white", got)
	}
}
