package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// resolve applies the effect of whatever the head moved onto. Checks run in
// a fixed priority and stop at the first match: fruit, self, obstacle,
// shrink hazard, penalty hazard, bonus.
func (e *Engine) resolve() {
	head := e.snake.Head()

	if fc, ok := e.fruit.Cell(); ok && fc == head {
		e.eatFruit()
		return
	}
	if e.snake.SelfCollision() {
		e.Reset(ErrSelfCollision)
		return
	}

	switch e.occ.KindAt(head) {
	case KindObstacle:
		e.Reset(ErrObstacleCollision)
	case KindShrink:
		e.hitHazard(e.shrink, head, e.rules.ShrinkAmount)
	case KindPenalty:
		e.hitHazard(e.penalty, head, e.rules.PenaltyAmount)
	case KindBonus:
		e.eatBonus(head)
	}
}

func (e *Engine) eatFruit() {
	e.snake.Grow(1)
	e.emit(core.Event{Kind: core.EventGrow, Source: KindFruit.String(), Amount: 1})

	e.fruit.Spawn(e.placement())
	if kind := e.rules.Events.AfterFruit(e.rng); kind != KindNone {
		e.spawn(e.patchFor(kind))
	}
	e.speed.Recompute(e.snake.Length())
}

// hitHazard consumes the hazard cell and trims the tail. A snake too short
// to lose amount cells starves and the simulation resets.
func (e *Engine) hitHazard(p *Patch, head Cell, amount int) {
	p.Consume(head, e.occ)
	if err := e.snake.Shrink(amount); err != nil {
		e.Reset(err)
		return
	}
	e.emit(core.Event{Kind: core.EventShrink, Source: p.Kind().String(), Amount: amount})
	e.speed.Recompute(e.snake.Length())
}

func (e *Engine) eatBonus(head Cell) {
	e.bonus.Consume(head, e.occ)
	n := e.rules.BonusMin
	if span := e.rules.BonusMax - e.rules.BonusMin; span > 0 {
		n += e.rng.Intn(span + 1)
	}
	e.snake.Grow(n)
	e.emit(core.Event{Kind: core.EventGrow, Source: KindBonus.String(), Amount: n})
	e.speed.Recompute(e.snake.Length())
}
