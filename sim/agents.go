package sim

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/vireolab/vireoviz/config"
)

// spawnMargin keeps initial positions away from the grid border.
const spawnMargin = 10

// Agents manages the herbivore population: spawning, chemotactic
// movement, energy balance, and removal on starvation.
type Agents struct {
	world  *ecs.World
	mapper *ecs.Map4[Position, Velocity, Energy, Ident]
	filter *ecs.Filter4[Position, Velocity, Energy, Ident]

	rng    *rand.Rand
	nextID int32

	worldW, worldH float32

	chiR  float32 // resource attraction strength
	chiW  float32 // waste repulsion strength
	kappa float32 // gradient saturation
	gamma float32 // velocity damping
	vMax  float32 // speed cap
	eps0  float32 // basal energy drain per second
	etaR  float32 // energy gain per unit resource per second
}

// NewAgents creates the initial population with random headings, slow
// initial speeds, and full energy stores.
func NewAgents(count int, seed int64) *Agents {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	a := &Agents{
		world:  world,
		mapper: ecs.NewMap4[Position, Velocity, Energy, Ident](world),
		filter: ecs.NewFilter4[Position, Velocity, Energy, Ident](world),
		rng:    rand.New(rand.NewSource(seed)),
		worldW: cfg.Derived.WorldW32,
		worldH: cfg.Derived.WorldH32,
		chiR:   float32(cfg.Chemotaxis.ChiR),
		chiW:   float32(cfg.Chemotaxis.ChiW),
		kappa:  float32(cfg.Chemotaxis.Kappa),
		gamma:  float32(cfg.Chemotaxis.Gamma),
		vMax:   float32(cfg.Chemotaxis.VMax),
		eps0:   float32(cfg.Chemotaxis.Eps0),
		etaR:   float32(cfg.Chemotaxis.EtaR),
	}

	e0 := float32(cfg.Agents.E0)
	for i := 0; i < count; i++ {
		a.spawn(e0)
	}
	return a
}

// spawn creates one agent inside the spawn margin.
func (a *Agents) spawn(e0 float32) {
	pos := Position{
		X: randRange(a.rng, spawnMargin, a.worldW-spawnMargin),
		Y: randRange(a.rng, spawnMargin, a.worldH-spawnMargin),
	}
	heading := randRange(a.rng, 0, 2*math.Pi)
	speed := randRange(a.rng, 0.1, 0.5)
	vel := Velocity{
		X: speed * float32(math.Cos(float64(heading))),
		Y: speed * float32(math.Sin(float64(heading))),
	}
	energy := Energy{Value: e0}
	ident := Ident{ID: a.nextID}
	a.nextID++

	a.mapper.NewEntity(&pos, &vel, &energy, &ident)
}

// Deposit rebuilds the field's occupancy counts from the current agent
// positions.
func (a *Agents) Deposit(f *Field) {
	f.ClearOccupancy()
	query := a.filter.Query()
	for query.Next() {
		pos, _, _, _ := query.Get()
		f.AddOccupant(pos.X, pos.Y)
	}
}

// Step advances every agent by dt seconds: saturated chemotaxis up the
// resource gradient and down the waste gradient, velocity damping and
// speed cap, toroidal position update, then energy uptake and drain.
// Starved agents are removed afterwards.
func (a *Agents) Step(f *Field, dt float32) {
	query := a.filter.Query()
	for query.Next() {
		pos, vel, energy, _ := query.Get()

		gx, gy := f.GradResource(pos.X, pos.Y)
		wx, wy := f.GradWaste(pos.X, pos.Y)

		gMag := float32(math.Hypot(float64(gx), float64(gy)))
		wMag := float32(math.Hypot(float64(wx), float64(wy)))

		ax := a.chiR*gx/(a.kappa+gMag) - a.chiW*wx/(a.kappa+wMag) - a.gamma*vel.X
		ay := a.chiR*gy/(a.kappa+gMag) - a.chiW*wy/(a.kappa+wMag) - a.gamma*vel.Y

		vel.X += dt * ax
		vel.Y += dt * ay

		speed := float32(math.Hypot(float64(vel.X), float64(vel.Y)))
		if speed > a.vMax {
			scale := a.vMax / speed
			vel.X *= scale
			vel.Y *= scale
		}

		pos.X = wrapCoord(pos.X+dt*vel.X, a.worldW)
		pos.Y = wrapCoord(pos.Y+dt*vel.Y, a.worldH)

		energy.Value += dt * (a.etaR*f.Sample(pos.X, pos.Y) - a.eps0)
	}

	a.removeStarved()
}

// removeStarved removes agents whose energy has run out. Collection and
// removal are separate passes so the query iteration is never modified
// mid-flight.
func (a *Agents) removeStarved() {
	var starved []ecs.Entity

	query := a.filter.Query()
	for query.Next() {
		_, _, energy, _ := query.Get()
		if energy.Value <= 0 {
			starved = append(starved, query.Entity())
		}
	}

	for _, e := range starved {
		a.mapper.Remove(e)
	}
}

// Count returns the number of live agents.
func (a *Agents) Count() int {
	n := 0
	query := a.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Snapshot is one live agent's row in the per-step agent table.
type Snapshot struct {
	ID     int32   `csv:"id"`
	X      float32 `csv:"x"`
	Y      float32 `csv:"y"`
	VX     float32 `csv:"vx"`
	VY     float32 `csv:"vy"`
	Energy float32 `csv:"energy"`
	Alive  int     `csv:"alive"`
}

// Snapshots returns the live population. Dead agents have already been
// removed, so every row carries alive=1.
func (a *Agents) Snapshots() []Snapshot {
	rows := make([]Snapshot, 0, 64)
	query := a.filter.Query()
	for query.Next() {
		pos, vel, energy, ident := query.Get()
		rows = append(rows, Snapshot{
			ID:     ident.ID,
			X:      pos.X,
			Y:      pos.Y,
			VX:     vel.X,
			VY:     vel.Y,
			Energy: energy.Value,
			Alive:  1,
		})
	}
	return rows
}

// wrapCoord wraps a coordinate to [0, size).
func wrapCoord(x, size float32) float32 {
	r := float32(math.Mod(float64(x), float64(size)))
	if r < 0 {
		r += size
	}
	return r
}
