// Package viewer displays generated composite images in an interactive
// window, paging between them with the arrow keys or on-screen buttons.
package viewer

import (
	"fmt"
	"path/filepath"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/vireolab/vireoviz/config"
)

const toolbarHeight = 48

// page is one loaded composite image.
type page struct {
	name string
	tex  rl.Texture2D
}

// Show opens a window and pages through the images at the given paths,
// blocking until the window is closed. Unreadable images are skipped;
// with nothing displayable the viewer returns immediately.
func Show(paths []string) {
	if len(paths) == 0 {
		return
	}

	cfg := config.Cfg()
	rl.InitWindow(int32(cfg.Viewer.Width), int32(cfg.Viewer.Height), "Vireo Results Viewer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Viewer.TargetFPS))

	pages := make([]page, 0, len(paths))
	for _, path := range paths {
		tex := rl.LoadTexture(path)
		if tex.ID == 0 {
			continue
		}
		rl.SetTextureFilter(tex, rl.FilterBilinear)
		pages = append(pages, page{name: filepath.Base(path), tex: tex})
	}
	defer func() {
		for _, p := range pages {
			rl.UnloadTexture(p.tex)
		}
	}()
	if len(pages) == 0 {
		return
	}

	idx := 0
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyRight) {
			idx = (idx + 1) % len(pages)
		}
		if rl.IsKeyPressed(rl.KeyLeft) {
			idx = (idx + len(pages) - 1) % len(pages)
		}

		p := pages[idx]
		screenW := float32(rl.GetScreenWidth())
		screenH := float32(rl.GetScreenHeight())

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		src := rl.Rectangle{Width: float32(p.tex.Width), Height: float32(p.tex.Height)}
		dst := fitRect(float32(p.tex.Width), float32(p.tex.Height), screenW, screenH-toolbarHeight)
		rl.DrawTexturePro(p.tex, src, dst, rl.Vector2{}, 0, rl.White)

		barY := screenH - toolbarHeight + 9
		if gui.Button(rl.Rectangle{X: 10, Y: barY, Width: 90, Height: 30}, "< Prev") {
			idx = (idx + len(pages) - 1) % len(pages)
		}
		if gui.Button(rl.Rectangle{X: 110, Y: barY, Width: 90, Height: 30}, "Next >") {
			idx = (idx + 1) % len(pages)
		}

		label := fmt.Sprintf("%s (%d/%d)", p.name, idx+1, len(pages))
		rl.DrawText(label, 220, int32(barY)+7, 16, rl.DarkGray)

		rl.EndDrawing()
	}
}

// fitRect scales (w, h) to fit inside (areaW, areaH) preserving aspect
// ratio, centered. Images smaller than the area are not upscaled.
func fitRect(w, h, areaW, areaH float32) rl.Rectangle {
	scale := areaW / w
	if s := areaH / h; s < scale {
		scale = s
	}
	if scale > 1 {
		scale = 1
	}
	dw := w * scale
	dh := h * scale
	return rl.Rectangle{
		X:      (areaW - dw) / 2,
		Y:      (areaH - dh) / 2,
		Width:  dw,
		Height: dh,
	}
}
