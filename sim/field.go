// Package sim implements the demo simulator that produces a results
// directory in the format the analysis tools consume: a coupled
// resource/waste reaction-diffusion field grazed by chemotactic agents.
package sim

import (
	"math"
	"math/rand"

	"github.com/vireolab/vireoviz/config"
)

// maxDiffuse is the stability clamp for explicit Euler diffusion.
const maxDiffuse = 0.25

// Field is a toroidal reaction-diffusion grid with a resource plane, a
// waste plane, and a per-cell agent occupancy count that couples the
// agents back into the field dynamics.
type Field struct {
	W, H int

	// Resource plane - what agents consume
	Res []float32
	// Waste plane - emitted where agents crowd
	Waste []float32
	// Agent count per cell, rebuilt every step
	Occupancy []int32

	// Reaction-diffusion parameters
	DR      float32 // resource diffusion coefficient
	DW      float32 // waste diffusion coefficient
	SigmaR  float32 // resource replenishment per second
	AlphaH  float32 // grazing uptake rate
	BetaH   float32 // waste emission rate
	LambdaR float32 // resource decay rate
	LambdaW float32 // waste decay rate
	HScale  float32 // occupancy count to density scale

	// Scratch buffers for the update pass
	tmpR []float32
	tmpW []float32
}

// NewField creates a field of the given size with parameters from the
// loaded configuration.
func NewField(w, h int) *Field {
	fc := config.Cfg().Field
	return &Field{
		W: w, H: h,
		Res:       make([]float32, w*h),
		Waste:     make([]float32, w*h),
		Occupancy: make([]int32, w*h),
		tmpR:      make([]float32, w*h),
		tmpW:      make([]float32, w*h),

		DR:      float32(fc.DR),
		DW:      float32(fc.DW),
		SigmaR:  float32(fc.SigmaR),
		AlphaH:  float32(fc.AlphaH),
		BetaH:   float32(fc.BetaH),
		LambdaR: float32(fc.LambdaR),
		LambdaW: float32(fc.LambdaW),
		HScale:  float32(fc.HScale),
	}
}

// SeedResources fills the resource plane with the initial distribution:
// a central blob, a few large clusters, small scattered patches, and a
// directional ramp. Deterministic for a given seed. The waste plane
// starts empty.
func (f *Field) SeedResources(seed int64) {
	rng := rand.New(rand.NewSource(seed))

	for i := range f.Res {
		f.Res[i] = 0
		f.Waste[i] = 0
	}

	minDim := float32(f.W)
	if float32(f.H) < minDim {
		minDim = float32(f.H)
	}

	// Central blob
	const centerAmp = 0.8
	f.addBlob(float32(f.W)/2, float32(f.H)/2, centerAmp, sigmaPx(minDim, 0.07, 2.0))

	// Large clusters away from the borders
	clusters := 4
	if minDim >= 192 {
		clusters = 8
	}
	for i := 0; i < clusters; i++ {
		cx := randRange(rng, 0.15*float32(f.W), 0.85*float32(f.W))
		cy := randRange(rng, 0.15*float32(f.H), 0.85*float32(f.H))
		amp := randRange(rng, 0.3, 0.7)
		f.addBlob(cx, cy, amp, sigmaPx(minDim, 0.05, 2.0))
	}

	// Small scattered patches
	scattered := 8
	if minDim >= 192 {
		scattered = 15
	}
	for i := 0; i < scattered; i++ {
		cx := randRange(rng, 0.05*float32(f.W), 0.95*float32(f.W))
		cy := randRange(rng, 0.05*float32(f.H), 0.95*float32(f.H))
		amp := randRange(rng, 0.2, 0.5)
		f.addBlob(cx, cy, amp, sigmaPx(minDim, 0.02, 1.5))
	}

	// Directional ramp across the grid so the distribution is anisotropic
	theta := randRange(rng, 0, 2*math.Pi)
	f.addRamp(theta, centerAmp*0.15)

	for i := range f.Res {
		if f.Res[i] < 0 {
			f.Res[i] = 0
		}
	}
}

// addBlob adds a Gaussian bump to the resource plane.
func (f *Field) addBlob(cx, cy, amp, sigma float32) {
	inv := 1 / (2 * float64(sigma) * float64(sigma))
	for y := 0; y < f.H; y++ {
		dy := float64(float32(y) - cy)
		for x := 0; x < f.W; x++ {
			dx := float64(float32(x) - cx)
			f.Res[y*f.W+x] += amp * float32(math.Exp(-(dx*dx+dy*dy)*inv))
		}
	}
}

// addRamp adds a linear gradient along direction theta, centered on the
// grid and clamped to half an amplitude either side.
func (f *Field) addRamp(theta, amp float32) {
	minDim := float32(f.W)
	if float32(f.H) < minDim {
		minDim = float32(f.H)
	}
	cosT := float32(math.Cos(float64(theta)))
	sinT := float32(math.Sin(float64(theta)))

	for y := 0; y < f.H; y++ {
		dy := float32(y) - float32(f.H)/2
		for x := 0; x < f.W; x++ {
			dx := float32(x) - float32(f.W)/2
			factor := (dx*cosT + dy*sinT) / minDim
			if factor < -0.5 {
				factor = -0.5
			}
			if factor > 0.5 {
				factor = 0.5
			}
			f.Res[y*f.W+x] += amp * factor
		}
	}
}

// Step advances both planes by dt seconds: 5-point Laplacian diffusion,
// replenishment, occupancy-coupled grazing and emission, and decay.
func (f *Field) Step(dt float32) {
	w, h := f.W, f.H

	aR := f.DR * dt
	aW := f.DW * dt
	// Stability clamp for explicit diffusion
	if aR > maxDiffuse {
		aR = maxDiffuse
	}
	if aW > maxDiffuse {
		aW = maxDiffuse
	}

	for y := 0; y < h; y++ {
		yN := modInt(y-1, h)
		yS := modInt(y+1, h)
		for x := 0; x < w; x++ {
			xW := modInt(x-1, w)
			xE := modInt(x+1, w)

			i := y*w + x
			dens := float32(f.Occupancy[i]) * f.HScale

			r := f.Res[i]
			lapR := f.Res[yN*w+x] + f.Res[yS*w+x] + f.Res[y*w+xE] + f.Res[y*w+xW] - 4*r
			f.tmpR[i] = r + aR*lapR + dt*(f.SigmaR-f.AlphaH*dens*r-f.LambdaR*r)

			wv := f.Waste[i]
			lapW := f.Waste[yN*w+x] + f.Waste[yS*w+x] + f.Waste[y*w+xE] + f.Waste[y*w+xW] - 4*wv
			f.tmpW[i] = wv + aW*lapW + dt*(f.BetaH*dens-f.LambdaW*wv)
		}
	}

	// Swap and clamp: both planes stay non-negative
	copy(f.Res, f.tmpR)
	copy(f.Waste, f.tmpW)
	for i := range f.Res {
		if f.Res[i] < 0 {
			f.Res[i] = 0
		}
		if f.Waste[i] < 0 {
			f.Waste[i] = 0
		}
	}
}

// ClearOccupancy zeroes the per-cell agent counts.
func (f *Field) ClearOccupancy() {
	for i := range f.Occupancy {
		f.Occupancy[i] = 0
	}
}

// AddOccupant increments the count of the cell containing (x, y).
func (f *Field) AddOccupant(x, y float32) {
	cx := modInt(int(math.Floor(float64(x))), f.W)
	cy := modInt(int(math.Floor(float64(y))), f.H)
	f.Occupancy[cy*f.W+cx]++
}

// Sample returns the resource level at (x, y) with bilinear
// interpolation on the toroidal grid.
func (f *Field) Sample(x, y float32) float32 {
	return f.sampleBilinear(f.Res, x, y)
}

// SampleWaste returns the waste level at (x, y).
func (f *Field) SampleWaste(x, y float32) float32 {
	return f.sampleBilinear(f.Waste, x, y)
}

// GradResource returns the resource gradient at (x, y) by central
// difference over one cell in each axis.
func (f *Field) GradResource(x, y float32) (float32, float32) {
	gx := (f.sampleBilinear(f.Res, x+1, y) - f.sampleBilinear(f.Res, x-1, y)) / 2
	gy := (f.sampleBilinear(f.Res, x, y+1) - f.sampleBilinear(f.Res, x, y-1)) / 2
	return gx, gy
}

// GradWaste returns the waste gradient at (x, y).
func (f *Field) GradWaste(x, y float32) (float32, float32) {
	gx := (f.sampleBilinear(f.Waste, x+1, y) - f.sampleBilinear(f.Waste, x-1, y)) / 2
	gy := (f.sampleBilinear(f.Waste, x, y+1) - f.sampleBilinear(f.Waste, x, y-1)) / 2
	return gx, gy
}

// sampleBilinear performs bilinear interpolation on a grid.
func (f *Field) sampleBilinear(grid []float32, x, y float32) float32 {
	x0 := int(math.Floor(float64(x)))
	y0 := int(math.Floor(float64(y)))

	tx := x - float32(x0)
	ty := y - float32(y0)

	x1 := modInt(x0+1, f.W)
	y1 := modInt(y0+1, f.H)
	x0 = modInt(x0, f.W)
	y0 = modInt(y0, f.H)

	i00 := y0*f.W + x0
	i10 := y0*f.W + x1
	i01 := y1*f.W + x0
	i11 := y1*f.W + x1

	a := grid[i00] + (grid[i10]-grid[i00])*tx
	b := grid[i01] + (grid[i11]-grid[i01])*tx
	return a + (b-a)*ty
}

// sigmaPx converts a fraction of the smaller grid dimension to a blob
// radius in cells, with a floor.
func sigmaPx(minDim, pct, minPx float32) float32 {
	s := minDim * pct
	if s < minPx {
		s = minPx
	}
	return s
}

// randRange returns a uniform float32 in [lo, hi).
func randRange(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

// modInt wraps a to [0, m).
func modInt(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
