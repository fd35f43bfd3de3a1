// Package results provides read-only access to a recorded simulation
// results directory: the metrics table, per-step agent snapshots, and
// per-step field images.
package results

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MetricsRow is one recorded step of the simulation metrics table.
// Columns match the simulator's full schema; tables carrying only a
// subset of them load with the missing fields zeroed.
type MetricsRow struct {
	Step                       int     `csv:"step"`
	MeanR                      float64 `csv:"mean_R"`
	MeanW                      float64 `csv:"mean_W"`
	VarR                       float64 `csv:"var_R"`
	VarW                       float64 `csv:"var_W"`
	MeanGradR                  float64 `csv:"mean_grad_R"`
	MaxR                       float64 `csv:"max_R"`
	MaxW                       float64 `csv:"max_W"`
	MinR                       float64 `csv:"min_R"`
	MinW                       float64 `csv:"min_W"`
	AliveCount                 int     `csv:"alive_count"`
	TotalEnergy                float64 `csv:"total_energy"`
	MeanEnergy                 float64 `csv:"mean_energy"`
	MeanVelocity               float64 `csv:"mean_velocity"`
	ForagingEfficiency         float64 `csv:"foraging_efficiency"`
	CycleScore                 float64 `csv:"cycle_score"`
	ForagingEfficiencyEnhanced float64 `csv:"foraging_efficiency_enhanced"`
	WallTimeMS                 float64 `csv:"wall_time_ms"`
	FPSProxy                   float64 `csv:"fps_proxy"`
}

// MetricsTable holds the loaded metrics rows in file order.
type MetricsTable struct {
	Rows []MetricsRow
}

// MetricsPath returns the metrics table path inside a results directory.
func MetricsPath(dir string) string {
	return filepath.Join(dir, "metrics.csv")
}

// LoadMetrics reads a metrics table. A missing file surfaces as an error
// satisfying errors.Is(err, os.ErrNotExist) so callers can treat absence
// separately from a malformed table.
func LoadMetrics(path string) (*MetricsTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening metrics table: %w", err)
	}
	defer f.Close()

	var rows []MetricsRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parsing metrics table %s: %w", path, err)
	}
	return &MetricsTable{Rows: rows}, nil
}

// Len returns the number of recorded rows.
func (t *MetricsTable) Len() int {
	return len(t.Rows)
}

// Final returns the last recorded row. ok is false for an empty table.
func (t *MetricsTable) Final() (MetricsRow, bool) {
	if len(t.Rows) == 0 {
		return MetricsRow{}, false
	}
	return t.Rows[len(t.Rows)-1], true
}

// Steps returns the step column as float64 for plotting.
func (t *MetricsTable) Steps() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = float64(r.Step)
	}
	return out
}

// Column extracts one column as float64 for plotting.
func (t *MetricsTable) Column(get func(MetricsRow) float64) []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = get(r)
	}
	return out
}

// TotalWallTimeMS sums per-step wall time across all rows.
func (t *MetricsTable) TotalWallTimeMS() float64 {
	return floats.Sum(t.Column(func(r MetricsRow) float64 { return r.WallTimeMS }))
}

// MeanWallTimeMS averages per-step wall time. Zero for an empty table.
func (t *MetricsTable) MeanWallTimeMS() float64 {
	if len(t.Rows) == 0 {
		return 0
	}
	return stat.Mean(t.Column(func(r MetricsRow) float64 { return r.WallTimeMS }), nil)
}

// MeanFPS averages the FPS proxy column. Zero for an empty table.
func (t *MetricsTable) MeanFPS() float64 {
	if len(t.Rows) == 0 {
		return 0
	}
	return stat.Mean(t.Column(func(r MetricsRow) float64 { return r.FPSProxy }), nil)
}
