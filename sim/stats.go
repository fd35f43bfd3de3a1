package sim

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FieldStats aggregates both field planes for one metrics row.
type FieldStats struct {
	MeanR, MeanW float64
	VarR, VarW   float64
	MeanGradR    float64
	MaxR, MaxW   float64
	MinR, MinW   float64
}

// Stats computes the field aggregate columns: plane means, population
// variances, extrema, and the mean resource gradient magnitude.
func (f *Field) Stats() FieldStats {
	res := toFloat64(f.Res)
	waste := toFloat64(f.Waste)

	return FieldStats{
		MeanR:     stat.Mean(res, nil),
		MeanW:     stat.Mean(waste, nil),
		VarR:      stat.PopVariance(res, nil),
		VarW:      stat.PopVariance(waste, nil),
		MeanGradR: f.meanGradR(),
		MaxR:      floats.Max(res),
		MaxW:      floats.Max(waste),
		MinR:      floats.Min(res),
		MinW:      floats.Min(waste),
	}
}

// meanGradR sums central-difference gradient magnitudes over the
// interior cells and averages over the full cell count, leaving the
// border out of the sum.
func (f *Field) meanGradR() float64 {
	w, h := f.W, f.H
	if w < 3 || h < 3 {
		return 0
	}
	var sum float64
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			dx := float64(f.Res[y*w+x+1]-f.Res[y*w+x-1]) / 2
			dy := float64(f.Res[(y+1)*w+x]-f.Res[(y-1)*w+x]) / 2
			sum += math.Hypot(dx, dy)
		}
	}
	return sum / float64(w*h)
}

func toFloat64(src []float32) []float64 {
	dst := make([]float64, len(src))
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}

// AgentStats aggregates the live population for one metrics row.
type AgentStats struct {
	AliveCount         int
	TotalEnergy        float64
	MeanEnergy         float64
	MeanVelocity       float64
	ForagingEfficiency float64
}

// Stats computes population aggregates over the live agents. An empty
// population yields all zeros.
func (a *Agents) Stats() AgentStats {
	var energies, speeds []float64
	query := a.filter.Query()
	for query.Next() {
		_, vel, energy, _ := query.Get()
		energies = append(energies, float64(energy.Value))
		speeds = append(speeds, math.Hypot(float64(vel.X), float64(vel.Y)))
	}

	var s AgentStats
	s.AliveCount = len(energies)
	if s.AliveCount == 0 {
		return s
	}
	s.TotalEnergy = floats.Sum(energies)
	s.MeanEnergy = s.TotalEnergy / float64(s.AliveCount)
	s.MeanVelocity = stat.Mean(speeds, nil)
	if s.MeanVelocity > 0 {
		s.ForagingEfficiency = s.MeanEnergy / s.MeanVelocity
	}
	return s
}

// maxHistory bounds the alive-count history used for the cycle score.
const maxHistory = 200

// Tracker accumulates the alive-count history behind the derived
// metrics columns.
type Tracker struct {
	aliveHistory []float64
}

// Push records the alive count for the row being assembled.
func (t *Tracker) Push(aliveCount int) {
	t.aliveHistory = append(t.aliveHistory, float64(aliveCount))
	if len(t.aliveHistory) > maxHistory {
		t.aliveHistory = t.aliveHistory[1:]
	}
}

// CycleScore measures population oscillation as the mean absolute
// difference between the newest alive count and its lagged history,
// normalized to [0, 1]. Short histories score zero.
func (t *Tracker) CycleScore() float64 {
	n := len(t.aliveHistory)
	if n < 50 {
		return 0
	}
	window := n / 2
	if window > 20 {
		window = 20
	}

	last := t.aliveHistory[n-1]
	var sum float64
	for lag := 1; lag <= window; lag++ {
		sum += math.Abs(last - t.aliveHistory[n-1-lag])
	}

	score := sum / float64(window) / 100
	if score > 1 {
		score = 1
	}
	return score
}

// enhancedForaging normalizes the energy-per-velocity ratio to [0, 1].
// A motionless population scores zero.
func enhancedForaging(s AgentStats) float64 {
	if s.MeanVelocity == 0 {
		return 0
	}
	score := s.MeanEnergy / s.MeanVelocity / 10
	if score > 1 {
		score = 1
	}
	return score
}
