package snake

import "fmt"

// Board geometry. The board is fixed; it wraps on every edge.
const (
	BoardWidth  = 32 // cells
	BoardHeight = 24 // cells
	GridUnit    = 20 // pixels per cell for pixel-based sinks
	BoardCells  = BoardWidth * BoardHeight
)

// Rand is the randomness source of the simulation.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Cell is a board position in cell units.
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Directions lists every direction, used for uniform draws.
var Directions = [...]Direction{DirRight, DirDown, DirLeft, DirUp}

// Delta returns the unit step of the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Occupant is anything that claims board cells.
type Occupant interface {
	Occupies(c Cell) bool
}

// cellSet is an ad-hoc Occupant.
type cellSet map[Cell]struct{}

func (s cellSet) Occupies(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Grid is the toroidal board and its free-cell sampler.
type Grid struct {
	width  int
	height int
	rng    Rand
}

// NewGrid creates a grid of the given size drawing positions from rng.
func NewGrid(width, height int, rng Rand) *Grid {
	return &Grid{width: width, height: height, rng: rng}
}

// Width returns the board width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the board height in cells.
func (g *Grid) Height() int { return g.height }

// Wrap reduces a cell onto the torus.
func (g *Grid) Wrap(c Cell) Cell {
	return Cell{X: mod(c.X, g.width), Y: mod(c.Y, g.height)}
}

// Step returns the wrapped neighbour of c in direction d.
func (g *Grid) Step(c Cell, d Direction) Cell {
	dx, dy := d.Delta()
	return g.Wrap(Cell{X: c.X + dx, Y: c.Y + dy})
}

// Center returns the board center.
func (g *Grid) Center() Cell {
	return Cell{X: g.width / 2, Y: g.height / 2}
}

// Contains reports whether c lies on the board without wrapping.
func (g *Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Pixel returns the top-left pixel of c for pixel-based sinks.
func (g *Grid) Pixel(c Cell) (x, y int) {
	return c.X * GridUnit, c.Y * GridUnit
}

// RandomFreeCell samples uniformly until it finds a cell none of the
// occupants claim. The caller guarantees at least one free cell exists;
// otherwise the call never returns.
func (g *Grid) RandomFreeCell(excluding ...Occupant) Cell {
	for {
		c := Cell{X: g.rng.Intn(g.width), Y: g.rng.Intn(g.height)}
		if !occupied(c, excluding) {
			return c
		}
	}
}

func occupied(c Cell, occupants []Occupant) bool {
	for _, o := range occupants {
		if o != nil && o.Occupies(c) {
			return true
		}
	}
	return false
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
