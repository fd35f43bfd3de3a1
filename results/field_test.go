package results

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeFieldPNG(t *testing.T, path string, w, h int, at func(x, y int) color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, at(x, y))
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
}

func TestFieldPath(t *testing.T) {
	got := FieldPath("results", 200)
	want := filepath.Join("results", "R_0200.png")
	if got != want {
		t.Errorf("FieldPath(results, 200) = %q, want %q", got, want)
	}
}

func TestLoadField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "R_0000.png")
	writeFieldPNG(t, path, 4, 3, func(x, y int) color.NRGBA {
		// Resource on red, waste on green, as the producer encodes
		return color.NRGBA{R: uint8(x * 50), G: uint8(y * 60), B: 0, A: 255}
	})

	g, err := LoadField(path)
	if err != nil {
		t.Fatalf("LoadField error: %v", err)
	}
	if g.Width != 4 || g.Height != 3 {
		t.Fatalf("grid = %dx%d, want 4x3", g.Width, g.Height)
	}
	if g.Channels() != 4 {
		t.Fatalf("Channels = %d, want 4", g.Channels())
	}

	if got := g.At(2, 0, 0); got != 100 {
		t.Errorf("At(2,0,0) = %v, want 100", got)
	}
	if got := g.At(0, 2, 1); got != 120 {
		t.Errorf("At(0,2,1) = %v, want 120", got)
	}
	if got := g.At(3, 2, 2); got != 0 {
		t.Errorf("At(3,2,2) = %v, want 0", got)
	}

	plane := g.Channel(0)
	if len(plane) != 12 {
		t.Fatalf("len(Channel(0)) = %d, want 12", len(plane))
	}
	// Row-major: (x=1, y=2) lands at index 2*4+1
	if plane[9] != 50 {
		t.Errorf("Channel(0)[9] = %v, want 50", plane[9])
	}
}

func TestLoadFieldMissing(t *testing.T) {
	if _, err := LoadField(filepath.Join(t.TempDir(), "R_0000.png")); err == nil {
		t.Fatal("LoadField on missing file: want error")
	}
}

func TestLoadFieldNotPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "R_0000.png")
	if err := os.WriteFile(path, []byte("not a png"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := LoadField(path); err == nil {
		t.Fatal("LoadField on non-PNG data: want error")
	}
}
