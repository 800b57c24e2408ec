package snake

// Placement bundles what a spawner needs to find a free cell.
type Placement struct {
	Grid  *Grid
	Occ   *Occupancy
	Snake *Snake
}

// free draws a cell outside the snake and the occupancy registry.
func (p Placement) free() Cell {
	return p.Grid.RandomFreeCell(p.Snake, p.Occ)
}

// Spawner is implemented by every entity kind. Each variant places and
// clears its own cells; there are no shared defaults.
type Spawner interface {
	Kind() Kind
	// Spawn places new cells, claims them in the registry and returns them.
	Spawn(p Placement) []Cell
	// Clear releases every cell the entity holds.
	Clear(occ *Occupancy)
	// Cells returns the currently held cells.
	Cells() []Cell
}

// Fruit is the single growth item. It is always on the board while the
// simulation runs.
type Fruit struct {
	cell   Cell
	placed bool
}

// Kind implements Spawner.
func (f *Fruit) Kind() Kind { return KindFruit }

// Spawn moves the fruit to a free cell.
func (f *Fruit) Spawn(p Placement) []Cell {
	f.Clear(p.Occ)
	f.cell = p.free()
	f.placed = true
	p.Occ.Claim(f.cell, KindFruit)
	return []Cell{f.cell}
}

// Clear implements Spawner.
func (f *Fruit) Clear(occ *Occupancy) {
	if f.placed {
		occ.Release(f.cell)
	}
	f.placed = false
}

// Cells implements Spawner.
func (f *Fruit) Cells() []Cell {
	if !f.placed {
		return nil
	}
	return []Cell{f.cell}
}

// Cell returns the fruit position and whether it is placed.
func (f *Fruit) Cell() (Cell, bool) {
	return f.cell, f.placed
}

// ObstacleCluster is a fixed-size group of static cells placed once per life.
type ObstacleCluster struct {
	size  int
	cells []Cell
}

// NewObstacleCluster creates an empty cluster of size cells.
func NewObstacleCluster(size int) *ObstacleCluster {
	return &ObstacleCluster{size: size}
}

// Kind implements Spawner.
func (o *ObstacleCluster) Kind() Kind { return KindObstacle }

// Spawn replaces the cluster with size fresh cells. Each cell is claimed
// before the next is drawn, so the cluster never overlaps itself.
func (o *ObstacleCluster) Spawn(p Placement) []Cell {
	o.Clear(p.Occ)
	for range o.size {
		c := p.free()
		p.Occ.Claim(c, KindObstacle)
		o.cells = append(o.cells, c)
	}
	return o.Cells()
}

// Clear implements Spawner.
func (o *ObstacleCluster) Clear(occ *Occupancy) {
	for _, c := range o.cells {
		occ.Release(c)
	}
	o.cells = o.cells[:0]
}

// Cells implements Spawner.
func (o *ObstacleCluster) Cells() []Cell {
	out := make([]Cell, len(o.cells))
	copy(out, o.cells)
	return out
}

// Patch is a transient entity holding zero or more cells of one kind:
// the shrink hazard, the penalty hazard and the bonus coin.
type Patch struct {
	kind  Kind
	limit int
	cells []Cell
}

// NewPatch creates an empty patch of kind holding at most limit cells.
func NewPatch(kind Kind, limit int) *Patch {
	return &Patch{kind: kind, limit: limit}
}

// Kind implements Spawner.
func (h *Patch) Kind() Kind { return h.kind }

// Spawn adds one cell. At the limit nothing is placed and nil is returned.
func (h *Patch) Spawn(p Placement) []Cell {
	if len(h.cells) >= h.limit {
		return nil
	}
	c := p.free()
	p.Occ.Claim(c, h.kind)
	h.cells = append(h.cells, c)
	return []Cell{c}
}

// Clear implements Spawner.
func (h *Patch) Clear(occ *Occupancy) {
	for _, c := range h.cells {
		occ.Release(c)
	}
	h.cells = h.cells[:0]
}

// Cells implements Spawner.
func (h *Patch) Cells() []Cell {
	out := make([]Cell, len(h.cells))
	copy(out, h.cells)
	return out
}

// Consume removes c from the patch and the registry together.
// Reports whether the patch held c.
func (h *Patch) Consume(c Cell, occ *Occupancy) bool {
	for i, held := range h.cells {
		if held == c {
			h.cells = append(h.cells[:i], h.cells[i+1:]...)
			occ.Release(c)
			return true
		}
	}
	return false
}

// Holds reports whether the patch occupies c.
func (h *Patch) Holds(c Cell) bool {
	for _, held := range h.cells {
		if held == c {
			return true
		}
	}
	return false
}
