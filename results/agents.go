package results

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// AgentRow is one agent in a per-step snapshot table. Only position is
// guaranteed; the remaining columns are zero when the producer omits them.
type AgentRow struct {
	ID     int     `csv:"id"`
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	VX     float64 `csv:"vx"`
	VY     float64 `csv:"vy"`
	Energy float64 `csv:"energy"`
	Alive  bool    `csv:"alive"`
}

// AgentsPath returns the agent snapshot path for a step, e.g. agents_0200.csv.
func AgentsPath(dir string, step int) string {
	return filepath.Join(dir, fmt.Sprintf("agents_%04d.csv", step))
}

// LoadAgents reads a per-step agent snapshot table. A header-only file
// yields an empty slice and no error; a missing file surfaces as an error
// satisfying errors.Is(err, os.ErrNotExist).
func LoadAgents(path string) ([]AgentRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening agent snapshot: %w", err)
	}
	defer f.Close()

	var rows []AgentRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parsing agent snapshot %s: %w", path, err)
	}
	return rows, nil
}

// Positions splits agent rows into x and y slices for plotting.
func Positions(rows []AgentRow) (xs, ys []float64) {
	xs = make([]float64, len(rows))
	ys = make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = r.X
		ys[i] = r.Y
	}
	return xs, ys
}
