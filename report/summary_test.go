package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const metricsHeader = "step,mean_R,mean_W,var_R,var_W,mean_grad_R,max_R,max_W,min_R,min_W," +
	"alive_count,total_energy,mean_energy,mean_velocity,foraging_efficiency,cycle_score," +
	"foraging_efficiency_enhanced,wall_time_ms,fps_proxy"

func writeMetrics(t *testing.T, dir, body string) string {
	t.Helper()
	content := metricsHeader + "\n" + body
	path := filepath.Join(dir, "metrics.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return content
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	content := writeMetrics(t, dir,
		"0,0.25,0.0,0.010,0.0,0.002,1.20,0.0,0.0,0.0,2000,2000.0,1.0,0.30,3.33,0.0,0.333,12.5,80.0\n"+
			"50,0.24,0.01,0.011,0.0,0.002,1.19,0.02,0.0,0.0,1998,1900.0,0.95,0.31,3.06,0.0,0.306,11.0,91.0\n")

	var buf bytes.Buffer
	if err := Write(&buf, dir); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()

	wantLines := []string{
		strings.Repeat("=", 60),
		"Vireo Simulation Summary Report",
		"Total Steps: 2",
		"Simulation Duration: 0.02 seconds",
		"Average Step Time: 11.75 ms",
		"Average FPS: 85.5",
		"Field Statistics (Final):",
		"  Mean Resource: 0.240000",
		"  Max Resource: 1.190000",
		"  Min Resource: 0.000000",
		"  Resource Variance: 0.011000",
		"Agent Statistics (Final):",
		"  Alive Count: 1998",
		"  Mean Energy: 0.950000",
		"  Mean Velocity: 0.310000",
		"  Foraging Efficiency: 3.060000",
		"Files Generated:",
		fmt.Sprintf("  metrics.csv: %d bytes", len(content)),
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want+"\n") {
			t.Errorf("report missing line %q\nreport:\n%s", want, out)
		}
	}
}

func TestWriteListsGeneratedImages(t *testing.T) {
	dir := t.TempDir()
	writeMetrics(t, dir,
		"0,0.25,0.0,0.010,0.0,0.002,1.20,0.0,0.0,0.0,2000,2000.0,1.0,0.30,3.33,0.0,0.333,12.5,80.0\n")
	if err := os.WriteFile(filepath.Join(dir, "R_0000.png"), []byte("fake"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, dir); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "  R_0000.png: 4 bytes\n") {
		t.Errorf("report missing snapshot artifact:\n%s", out)
	}
	if strings.Contains(out, "notes.txt") {
		t.Errorf("report lists non-artifact file:\n%s", out)
	}
}

func TestWriteMissingMetrics(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	if err := Write(&buf, dir); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	want := fmt.Sprintf("Metrics file not found: %s\n", filepath.Join(dir, "metrics.csv"))
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestWriteEmptyTable(t *testing.T) {
	dir := t.TempDir()
	writeMetrics(t, dir, "")

	var buf bytes.Buffer
	if err := Write(&buf, dir); err == nil {
		t.Fatal("expected error for table with no rows")
	}
}

func TestWriteMalformedTable(t *testing.T) {
	dir := t.TempDir()
	writeMetrics(t, dir,
		"0,bad,0.0,0.010,0.0,0.002,1.20,0.0,0.0,0.0,2000,2000.0,1.0,0.30,3.33,0.0,0.333,12.5,80.0\n")

	var buf bytes.Buffer
	if err := Write(&buf, dir); err == nil {
		t.Fatal("expected error for malformed table")
	}
}
