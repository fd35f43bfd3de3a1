package sim

// Position is an agent's location in field cell coordinates.
type Position struct {
	X, Y float32
}

// Velocity is an agent's velocity in cells per second.
type Velocity struct {
	X, Y float32
}

// Energy is an agent's internal energy store. Agents die when it
// reaches zero.
type Energy struct {
	Value float32
}

// Ident carries the stable row identifier used in agent snapshots.
type Ident struct {
	ID int32
}
