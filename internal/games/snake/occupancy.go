package snake

// Kind identifies a non-snake entity on the board.
type Kind int

const (
	KindNone Kind = iota
	KindFruit
	KindObstacle
	KindShrink
	KindPenalty
	KindBonus
)

func (k Kind) String() string {
	switch k {
	case KindFruit:
		return "fruit"
	case KindObstacle:
		return "obstacle"
	case KindShrink:
		return "shrink"
	case KindPenalty:
		return "penalty"
	case KindBonus:
		return "bonus"
	default:
		return "none"
	}
}

// Occupancy is the registry of cells claimed by non-snake entities.
// Spawners consult it so placements never overlap.
type Occupancy struct {
	cells map[Cell]Kind
}

// NewOccupancy creates an empty registry.
func NewOccupancy() *Occupancy {
	return &Occupancy{cells: make(map[Cell]Kind)}
}

// Claim records c as held by kind.
func (o *Occupancy) Claim(c Cell, kind Kind) {
	o.cells[c] = kind
}

// Release frees c.
func (o *Occupancy) Release(c Cell) {
	delete(o.cells, c)
}

// Occupies reports whether any entity holds c.
func (o *Occupancy) Occupies(c Cell) bool {
	_, ok := o.cells[c]
	return ok
}

// KindAt returns the entity kind holding c, or KindNone.
func (o *Occupancy) KindAt(c Cell) Kind {
	return o.cells[c]
}

// Len returns the number of claimed cells.
func (o *Occupancy) Len() int {
	return len(o.cells)
}

// Clear releases every cell.
func (o *Occupancy) Clear() {
	clear(o.cells)
}
