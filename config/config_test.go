package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Results.Dir != "results" {
		t.Errorf("Results.Dir = %q, want %q", cfg.Results.Dir, "results")
	}
	wantSteps := []int{0, 200, 1000, 2000}
	if len(cfg.Results.SnapshotSteps) != len(wantSteps) {
		t.Fatalf("SnapshotSteps = %v, want %v", cfg.Results.SnapshotSteps, wantSteps)
	}
	for i, want := range wantSteps {
		if cfg.Results.SnapshotSteps[i] != want {
			t.Errorf("SnapshotSteps[%d] = %d, want %d", i, cfg.Results.SnapshotSteps[i], want)
		}
	}
	if cfg.World.Width != 128 || cfg.World.Height != 128 {
		t.Errorf("World = %dx%d, want 128x128", cfg.World.Width, cfg.World.Height)
	}
	if cfg.World.Seed != 1337 {
		t.Errorf("World.Seed = %d, want 1337", cfg.World.Seed)
	}
	if cfg.Field.DR != 0.5 {
		t.Errorf("Field.DR = %v, want 0.5", cfg.Field.DR)
	}
	if cfg.Chemotaxis.VMax != 2.0 {
		t.Errorf("Chemotaxis.VMax = %v, want 2.0", cfg.Chemotaxis.VMax)
	}
	if cfg.Telemetry.MetricsInterval != 50 {
		t.Errorf("Telemetry.MetricsInterval = %d, want 50", cfg.Telemetry.MetricsInterval)
	}
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	override := "results:\n  dir: out\nworld:\n  steps: 100\n"
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatalf("writing override: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}

	if cfg.Results.Dir != "out" {
		t.Errorf("Results.Dir = %q, want %q", cfg.Results.Dir, "out")
	}
	if cfg.World.Steps != 100 {
		t.Errorf("World.Steps = %d, want 100", cfg.World.Steps)
	}
	// Fields absent from the override keep their defaults
	if cfg.World.Width != 128 {
		t.Errorf("World.Width = %d, want 128", cfg.World.Width)
	}
	if cfg.Agents.Herbivores != 2000 {
		t.Errorf("Agents.Herbivores = %d, want 2000", cfg.Agents.Herbivores)
	}
}

func TestComputeDerived(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Derived.WorldW32 != 128 || cfg.Derived.WorldH32 != 128 {
		t.Errorf("Derived world = %vx%v, want 128x128", cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	}
	if cfg.Derived.DT32 != 0.1 {
		t.Errorf("Derived.DT32 = %v, want 0.1", cfg.Derived.DT32)
	}
	if cfg.Derived.Extent != 128 {
		t.Errorf("Derived.Extent = %v, want 128", cfg.Derived.Extent)
	}

	// Zero extent falls back to world width
	path := filepath.Join(t.TempDir(), "config.yaml")
	override := "plot:\n  extent: 0\nworld:\n  width: 256\n"
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatalf("writing override: %v", err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}
	if cfg.Derived.Extent != 256 {
		t.Errorf("Derived.Extent = %v, want 256", cfg.Derived.Extent)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}
	if reloaded.World.Seed != cfg.World.Seed {
		t.Errorf("reloaded World.Seed = %d, want %d", reloaded.World.Seed, cfg.World.Seed)
	}
	if reloaded.Field.SigmaR != cfg.Field.SigmaR {
		t.Errorf("reloaded Field.SigmaR = %v, want %v", reloaded.Field.SigmaR, cfg.Field.SigmaR)
	}
	if reloaded.Results.Dir != cfg.Results.Dir {
		t.Errorf("reloaded Results.Dir = %q, want %q", reloaded.Results.Dir, cfg.Results.Dir)
	}
}
