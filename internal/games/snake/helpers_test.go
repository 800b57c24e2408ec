package snake

import "math/rand"

// scriptRand returns queued values first, then falls back to a seeded source.
type scriptRand struct {
	vals     []int
	fallback *rand.Rand
	draws    int
}

func newScriptRand(vals ...int) *scriptRand {
	return &scriptRand{vals: vals, fallback: rand.New(rand.NewSource(1))}
}

func (s *scriptRand) Intn(n int) int {
	s.draws++
	if len(s.vals) > 0 {
		v := s.vals[0]
		s.vals = s.vals[1:]
		return v % n
	}
	return s.fallback.Intn(n)
}

func (s *scriptRand) push(vals ...int) {
	s.vals = append(s.vals, vals...)
}

// quietRules is the canonical rule set without obstacles or random events,
// so tests place every entity themselves.
func quietRules() Rules {
	r := DefaultRules()
	r.ObstacleCount = 0
	r.Events = EventScheduler{}
	return r
}

// setSnake replaces the snake body (head first) and its direction.
func setSnake(e *Engine, dir Direction, body ...Cell) {
	e.snake.body = append(e.snake.body[:0], body...)
	e.snake.length = len(body)
	e.snake.direction = dir
	e.snake.hasPending = false
	e.speed.Recompute(len(body))
}

// placeFruit moves the fruit to c.
func placeFruit(e *Engine, c Cell) {
	e.fruit.Clear(e.occ)
	e.fruit.cell = c
	e.fruit.placed = true
	e.occ.Claim(c, KindFruit)
}

// plant adds c to a patch without drawing randomness.
func plant(e *Engine, p *Patch, c Cell) {
	p.cells = append(p.cells, c)
	e.occ.Claim(c, p.Kind())
}

// plantObstacle adds c to the obstacle cluster.
func plantObstacle(e *Engine, c Cell) {
	e.obstacles.cells = append(e.obstacles.cells, c)
	e.occ.Claim(c, KindObstacle)
}
