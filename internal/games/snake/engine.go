package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Engine owns one simulation: the grid, the occupancy registry, the snake,
// every spawner, the speed controller and the event gates.
// It is single-threaded; callers serialize Steer and Tick.
type Engine struct {
	rules Rules
	rng   Rand

	grid      *Grid
	occ       *Occupancy
	snake     *Snake
	fruit     *Fruit
	obstacles *ObstacleCluster
	shrink    *Patch
	penalty   *Patch
	bonus     *Patch
	speed     *SpeedController

	tick   uint64
	resets int
	cause  error // reset cause of the current tick
	events []core.Event
}

// NewEngine builds a running simulation. The snake starts at the center
// heading rules.StartDir with obstacles and fruit already placed.
func NewEngine(rules Rules, rng Rand) *Engine {
	grid := NewGrid(BoardWidth, BoardHeight, rng)
	e := &Engine{
		rules:     rules,
		rng:       rng,
		grid:      grid,
		occ:       NewOccupancy(),
		snake:     NewSnake(grid.Center(), rules.StartDir),
		fruit:     &Fruit{},
		obstacles: NewObstacleCluster(rules.ObstacleCount),
		shrink:    NewPatch(KindShrink, rules.HazardLimit),
		penalty:   NewPatch(KindPenalty, rules.HazardLimit),
		bonus:     NewPatch(KindBonus, rules.BonusLimit),
		speed:     NewSpeedController(rules.Speed),
	}
	e.populate()
	return e
}

// populate places the per-life entities. Obstacles go first so the fruit
// never lands on them.
func (e *Engine) populate() {
	p := e.placement()
	if e.rules.ObstacleCount > 0 {
		e.obstacles.Spawn(p)
	}
	e.fruit.Spawn(p)
}

func (e *Engine) placement() Placement {
	return Placement{Grid: e.grid, Occ: e.occ, Snake: e.snake}
}

func (e *Engine) spawners() []Spawner {
	return []Spawner{e.fruit, e.obstacles, e.shrink, e.penalty, e.bonus}
}

func (e *Engine) patchFor(k Kind) *Patch {
	switch k {
	case KindShrink:
		return e.shrink
	case KindPenalty:
		return e.penalty
	case KindBonus:
		return e.bonus
	default:
		return nil
	}
}

// Steer forwards a direction intent to the snake.
func (e *Engine) Steer(d Direction) bool {
	return e.snake.Steer(d)
}

// Tick advances the simulation by one step and returns what changed.
func (e *Engine) Tick() Frame {
	e.tick++
	e.cause = nil
	e.events = e.events[:0]

	e.snake.UpdateDirection()
	e.snake.Move(e.grid)
	e.resolve()

	if e.rules.Events.LotteryDraw(e.rng) {
		e.spawn(e.bonus)
	}
	return e.Frame()
}

// spawn adds one cell to a patch and reports it. Nothing happens when
// the patch is at its limit.
func (e *Engine) spawn(p *Patch) {
	if cells := p.Spawn(e.placement()); len(cells) > 0 {
		e.emit(core.Event{Kind: core.EventSpawn, Source: p.Kind().String(), Amount: len(cells)})
	}
}

func (e *Engine) emit(ev core.Event) {
	e.events = append(e.events, ev)
}

// Reset performs a full reset: the snake restarts at the center with a
// random direction, every entity is cleared, obstacles and fruit are
// placed again and the speed returns to the base tier.
func (e *Engine) Reset(cause error) {
	e.resets++
	e.cause = cause

	dir := Directions[e.rng.Intn(len(Directions))]
	e.snake.Reset(e.grid.Center(), dir)
	for _, s := range e.spawners() {
		s.Clear(e.occ)
	}
	e.occ.Clear()
	e.populate()
	e.speed.Reset()

	e.emit(core.Event{Kind: core.EventReset, Cause: cause})
}

// TickRate returns the current ticks per second.
func (e *Engine) TickRate() int { return e.speed.Rate() }

// Skin returns the current snake skin.
func (e *Engine) Skin() Skin { return e.speed.Skin() }

// Ticks returns the number of completed ticks.
func (e *Engine) Ticks() uint64 { return e.tick }

// Resets returns how many full resets happened.
func (e *Engine) Resets() int { return e.resets }

// Events returns the events of the last tick. The slice is reused by the
// next Tick.
func (e *Engine) Events() []core.Event { return e.events }

// Snake returns the snake. Callers must not mutate it.
func (e *Engine) Snake() *Snake { return e.snake }

// Grid returns the board.
func (e *Engine) Grid() *Grid { return e.grid }

// Occupancy returns the registry of non-snake entities.
func (e *Engine) Occupancy() *Occupancy { return e.occ }

// Fruit returns the fruit position.
func (e *Engine) Fruit() (Cell, bool) { return e.fruit.Cell() }

// Entities returns the cells held by kind.
func (e *Engine) Entities(k Kind) []Cell {
	switch k {
	case KindFruit:
		return e.fruit.Cells()
	case KindObstacle:
		return e.obstacles.Cells()
	default:
		if p := e.patchFor(k); p != nil {
			return p.Cells()
		}
		return nil
	}
}
