// Resource field preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/vireolab/vireoviz/config"
	"github.com/vireolab/vireoviz/plot"
	"github.com/vireolab/vireoviz/sim"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 640
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file (empty = use defaults)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Vireo Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	seed := cfg.World.Seed
	dt := cfg.Derived.DT32

	field := sim.NewField(cfg.World.Width, cfg.World.Height)
	field.SeedResources(seed)

	// Create texture for rendering
	img := rl.GenImageColor(field.W, field.H, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	// Step counter and run state
	step := 0
	running := false

	// Render initial field
	updateTexture(texture, field)

	// GUI state
	needsRedraw := false

	for !rl.WindowShouldClose() {
		// Advance the simulation while running
		if running {
			field.Step(dt)
			step++
			needsRedraw = true
		}

		// Redraw if needed
		if needsRedraw {
			updateTexture(texture, field)
			needsRedraw = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(field.W), Height: float32(field.H)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Draw stats
		var total float32
		var minVal, maxVal float32 = field.Res[0], field.Res[0]
		for _, v := range field.Res {
			total += v
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
		avg := total / float32(len(field.Res))

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Avg: %.3f", minVal, maxVal, avg), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Seed: %d  Step: %d", seed, step), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Resource Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Diffusion slider
		rl.DrawText("D_R (resource diffusion)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newDR := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "1.0",
			field.DR, 0, 1.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", field.DR), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newDR != field.DR {
			field.DR = newDR
		}
		panelY += 35

		// Replenishment slider
		rl.DrawText("sigma_R (replenishment rate)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSigmaR := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "0.02",
			field.SigmaR, 0, 0.02,
		)
		rl.DrawText(fmt.Sprintf("%.4f", field.SigmaR), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newSigmaR != field.SigmaR {
			field.SigmaR = newSigmaR
		}
		panelY += 35

		// Decay slider
		rl.DrawText("lambda_R (decay rate)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newLambdaR := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "0.02",
			field.LambdaR, 0, 0.02,
		)
		rl.DrawText(fmt.Sprintf("%.4f", field.LambdaR), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newLambdaR != field.LambdaR {
			field.LambdaR = newLambdaR
		}
		panelY += 35

		// Seed slider
		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "99999",
			float32(seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int64(newSeed) != seed {
			seed = int64(newSeed)
			field.SeedResources(seed)
			step = 0
			needsRedraw = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(running, "Pause", "Run")) {
			running = !running
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Step Once") {
			field.Step(dt)
			step++
			needsRedraw = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(0, 99999))
			field.SeedResources(seed)
			step = 0
			needsRedraw = true
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reseed") {
			field.SeedResources(seed)
			step = 0
			needsRedraw = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yamlLines := []string{
			"field:",
			fmt.Sprintf("  d_r: %.2f", field.DR),
			fmt.Sprintf("  sigma_r: %.4f", field.SigmaR),
			fmt.Sprintf("  lambda_r: %.4f", field.LambdaR),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		// Instructions
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := fmt.Sprintf(`field:
  d_r: %.2f
  sigma_r: %.4f
  lambda_r: %.4f`,
				field.DR, field.SigmaR, field.LambdaR)
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// updateTexture maps the resource plane through the viridis ramp,
// normalized to the current maximum.
func updateTexture(texture rl.Texture2D, f *sim.Field) {
	maxVal := float32(0)
	for _, v := range f.Res {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	pixels := make([]color.RGBA, len(f.Res))
	for i, v := range f.Res {
		pixels[i] = plot.Viridis(float64(v / maxVal))
	}
	rl.UpdateTexture(texture, pixels)
}
