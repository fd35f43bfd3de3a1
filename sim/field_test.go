package sim

import (
	"math"
	"testing"
)

// zeroField returns a field with all dynamics switched off so tests
// can enable one term at a time.
func zeroField(w, h int) *Field {
	f := NewField(w, h)
	f.DR = 0
	f.DW = 0
	f.SigmaR = 0
	f.AlphaH = 0
	f.BetaH = 0
	f.LambdaR = 0
	f.LambdaW = 0
	return f
}

func sumPlane(p []float32) float64 {
	var s float64
	for _, v := range p {
		s += float64(v)
	}
	return s
}

func TestSeedResourcesDeterministic(t *testing.T) {
	a := NewField(32, 32)
	b := NewField(32, 32)
	a.SeedResources(7)
	b.SeedResources(7)

	for i := range a.Res {
		if a.Res[i] != b.Res[i] {
			t.Fatalf("cell %d differs for same seed: %v vs %v", i, a.Res[i], b.Res[i])
		}
	}

	c := NewField(32, 32)
	c.SeedResources(8)
	same := true
	for i := range a.Res {
		if a.Res[i] != c.Res[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical planes")
	}
}

func TestSeedResourcesShape(t *testing.T) {
	f := NewField(64, 64)
	f.SeedResources(1)

	for i, v := range f.Res {
		if v < 0 {
			t.Fatalf("cell %d negative after seeding: %v", i, v)
		}
	}
	for i, v := range f.Waste {
		if v != 0 {
			t.Fatalf("waste cell %d not empty after seeding: %v", i, v)
		}
	}

	// The central blob dominates the corners
	center := f.Res[32*64+32]
	corner := f.Res[0]
	if center <= corner {
		t.Errorf("center %v not above corner %v", center, corner)
	}
}

func TestStepReplenishment(t *testing.T) {
	f := zeroField(8, 8)
	f.SigmaR = 0.01

	f.Step(0.1)
	f.Step(0.1)

	want := 2 * 0.1 * 0.01
	for i, v := range f.Res {
		if math.Abs(float64(v)-want) > 1e-6 {
			t.Fatalf("cell %d = %v, want %v", i, v, want)
		}
	}
}

func TestStepDiffusionSmooths(t *testing.T) {
	f := zeroField(16, 16)
	f.DR = 0.5
	f.Res[8*16+8] = 1

	before := sumPlane(f.Res)
	for i := 0; i < 10; i++ {
		f.Step(0.1)
	}
	after := sumPlane(f.Res)

	if math.Abs(before-after) > 1e-4 {
		t.Errorf("diffusion not conservative: sum %v -> %v", before, after)
	}

	peak := f.Res[8*16+8]
	if peak >= 1 {
		t.Errorf("peak did not spread: %v", peak)
	}
	if neighbor := f.Res[8*16+9]; neighbor <= 0 {
		t.Errorf("neighbor cell still empty after diffusion")
	}
}

func TestStepGrazingUptake(t *testing.T) {
	f := zeroField(8, 8)
	f.AlphaH = 0.1
	f.HScale = 1
	for i := range f.Res {
		f.Res[i] = 1
		f.Occupancy[i] = 2
	}

	f.Step(0.1)

	// dR = -alpha * H * R * dt with H = 2
	want := 1 - 0.1*2*1*0.1
	for i, v := range f.Res {
		if math.Abs(float64(v)-want) > 1e-6 {
			t.Fatalf("cell %d = %v, want %v", i, v, want)
		}
	}
}

func TestStepWasteEmissionAndDecay(t *testing.T) {
	f := zeroField(8, 8)
	f.BetaH = 0.05
	f.HScale = 1
	for i := range f.Occupancy {
		f.Occupancy[i] = 1
	}

	f.Step(0.1)
	if got, want := float64(f.Waste[0]), 0.05*1*0.1; math.Abs(got-want) > 1e-6 {
		t.Fatalf("waste after emission = %v, want %v", got, want)
	}

	f.ClearOccupancy()
	f.BetaH = 0
	f.LambdaW = 0.5
	before := f.Waste[0]
	f.Step(0.1)
	if f.Waste[0] >= before {
		t.Errorf("waste did not decay: %v -> %v", before, f.Waste[0])
	}
}

func TestStepClampsNegative(t *testing.T) {
	f := zeroField(8, 8)
	f.LambdaR = 100
	for i := range f.Res {
		f.Res[i] = 0.01
	}

	f.Step(1)

	for i, v := range f.Res {
		if v < 0 {
			t.Fatalf("cell %d went negative: %v", i, v)
		}
	}
}

func TestSampleBilinear(t *testing.T) {
	f := zeroField(4, 4)
	f.Res[0] = 1 // cell (0,0)

	tests := []struct {
		name string
		x, y float32
		want float64
	}{
		{"cell origin", 0, 0, 1},
		{"halfway to east neighbor", 0.5, 0, 0.5},
		{"halfway to south neighbor", 0, 0.5, 0.5},
		{"diagonal midpoint", 0.5, 0.5, 0.25},
		{"east neighbor", 1, 0, 0},
		{"wraps from west edge", 3.5, 0, 0.5},
		{"negative coordinate wraps", -0.5, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := float64(f.Sample(tt.x, tt.y))
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Sample(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestGradResource(t *testing.T) {
	f := zeroField(16, 16)
	// Linear ramp along x; taking the gradient mid-grid avoids the seam.
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			f.Res[y*16+x] = 0.1 * float32(x)
		}
	}

	gx, gy := f.GradResource(8, 8)
	if math.Abs(float64(gx)-0.1) > 1e-5 {
		t.Errorf("gx = %v, want 0.1", gx)
	}
	if math.Abs(float64(gy)) > 1e-5 {
		t.Errorf("gy = %v, want 0", gy)
	}
}

func TestOccupancy(t *testing.T) {
	f := zeroField(4, 4)

	f.AddOccupant(1.2, 2.7)
	f.AddOccupant(1.9, 2.1)
	f.AddOccupant(-0.5, 0) // wraps to the last column

	if got := f.Occupancy[2*4+1]; got != 2 {
		t.Errorf("cell (1,2) count = %d, want 2", got)
	}
	if got := f.Occupancy[0*4+3]; got != 1 {
		t.Errorf("wrapped cell (3,0) count = %d, want 1", got)
	}

	f.ClearOccupancy()
	for i, c := range f.Occupancy {
		if c != 0 {
			t.Fatalf("cell %d not cleared: %d", i, c)
		}
	}
}

func TestModInt(t *testing.T) {
	tests := []struct {
		a, m, want int
	}{
		{5, 4, 1},
		{-1, 4, 3},
		{4, 4, 0},
		{-4, 4, 0},
		{0, 4, 0},
	}
	for _, tt := range tests {
		if got := modInt(tt.a, tt.m); got != tt.want {
			t.Errorf("modInt(%d, %d) = %d, want %d", tt.a, tt.m, got, tt.want)
		}
	}
}
