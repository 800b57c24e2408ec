package snake

import "errors"

// Reset causes. They are recovered inside the simulation by a full reset
// and reported to the render sink, never returned to callers as failures.
var (
	ErrSelfCollision     = errors.New("snake: self collision")
	ErrObstacleCollision = errors.New("snake: obstacle collision")
	ErrStarvationShrink  = errors.New("snake: shrunk below one segment")
)

// Snake is the player's body: an ordered list of cells, head first.
//
// length is the target size. The body catches up one cell per move after
// growth; shrinking trims the tail immediately.
type Snake struct {
	body       []Cell
	length     int
	direction  Direction
	pending    Direction
	hasPending bool
	vacated    []Cell
}

// NewSnake creates a one-cell snake at start heading in dir.
func NewSnake(start Cell, dir Direction) *Snake {
	s := &Snake{}
	s.Reset(start, dir)
	return s
}

// Reset restores the one-cell snake at start heading in dir.
func (s *Snake) Reset(start Cell, dir Direction) {
	s.body = append(s.body[:0], start)
	s.length = 1
	s.direction = dir
	s.hasPending = false
	s.vacated = s.vacated[:0]
}

// Head returns the head cell.
func (s *Snake) Head() Cell {
	return s.body[0]
}

// Body returns a copy of the body, head first.
func (s *Snake) Body() []Cell {
	out := make([]Cell, len(s.body))
	copy(out, s.body)
	return out
}

// Size returns the number of cells in the body.
func (s *Snake) Size() int {
	return len(s.body)
}

// Length returns the target length.
func (s *Snake) Length() int {
	return s.length
}

// Direction returns the committed direction.
func (s *Snake) Direction() Direction {
	return s.direction
}

// Pending returns the direction waiting to be committed, if any.
func (s *Snake) Pending() (Direction, bool) {
	return s.pending, s.hasPending
}

// Vacated returns the cells the body left during the current tick.
func (s *Snake) Vacated() []Cell {
	return s.vacated
}

// Steer records a direction intent. Reversals of the committed direction
// and repeats of the pending one are ignored. Reports whether the intent
// was accepted.
func (s *Snake) Steer(d Direction) bool {
	if d == s.direction.Opposite() {
		return false
	}
	if s.hasPending && d == s.pending {
		return false
	}
	s.pending = d
	s.hasPending = true
	return true
}

// UpdateDirection commits the pending direction.
func (s *Snake) UpdateDirection() {
	if !s.hasPending {
		return
	}
	if s.pending != s.direction.Opposite() {
		s.direction = s.pending
	}
	s.hasPending = false
}

// Move advances the head one cell and drops the tail once the body is
// longer than its target length. Dropped cells are recorded as vacated.
func (s *Snake) Move(g *Grid) {
	s.vacated = s.vacated[:0]

	head := g.Step(s.Head(), s.direction)
	s.body = append(s.body, Cell{})
	copy(s.body[1:], s.body)
	s.body[0] = head

	if len(s.body) > s.length {
		last := len(s.body) - 1
		s.vacated = append(s.vacated, s.body[last])
		s.body = s.body[:last]
	}
}

// Grow raises the target length by n.
func (s *Snake) Grow(n int) {
	if n > 0 {
		s.length += n
	}
}

// Shrink removes n cells from the tail at once and lowers the target
// length by the same amount. A body of n cells or fewer cannot pay; the
// snake is left untouched and ErrStarvationShrink is returned so the
// caller can reset.
func (s *Snake) Shrink(n int) error {
	if n <= 0 {
		return nil
	}
	if len(s.body) <= n {
		return ErrStarvationShrink
	}
	for range n {
		last := len(s.body) - 1
		s.vacated = append(s.vacated, s.body[last])
		s.body = s.body[:last]
	}
	// len(body) <= length holds before the call, so this stays >= len(body).
	s.length -= n
	return nil
}

// SelfCollision reports whether the head overlaps the rest of the body.
func (s *Snake) SelfCollision() bool {
	head := s.Head()
	for _, c := range s.body[1:] {
		if c == head {
			return true
		}
	}
	return false
}

// Occupies reports whether any segment is on c.
func (s *Snake) Occupies(c Cell) bool {
	for _, seg := range s.body {
		if seg == c {
			return true
		}
	}
	return false
}
