package snake

// Gate fires with probability 1/N. A non-positive N never fires.
//
// A single uniform draw is compared against zero. This keeps the 1/N rate
// of comparing two independent draws for equality while consuming one
// random number per evaluation.
type Gate struct {
	N int
}

// Fires draws from rng and reports whether the gate opened.
// Disabled gates do not consume randomness.
func (g Gate) Fires(rng Rand) bool {
	if g.N <= 0 {
		return false
	}
	return rng.Intn(g.N) == 0
}

// EventScheduler decides which extra entity appears after the snake eats.
type EventScheduler struct {
	Bonus   Gate // after fruit, tried first
	Penalty Gate // after fruit, tried second
	Shrink  Gate // after fruit, tried last
	Lottery Gate // every tick, bonus only
}

// DefaultEventScheduler returns the canonical gates.
func DefaultEventScheduler() EventScheduler {
	return EventScheduler{
		Bonus:   Gate{N: 30},
		Penalty: Gate{N: 7},
		Shrink:  Gate{N: 3},
		Lottery: Gate{N: 300},
	}
}

// AfterFruit evaluates the post-fruit gates in order and returns the kind
// to spawn, or KindNone. At most one gate fires.
func (es EventScheduler) AfterFruit(rng Rand) Kind {
	switch {
	case es.Bonus.Fires(rng):
		return KindBonus
	case es.Penalty.Fires(rng):
		return KindPenalty
	case es.Shrink.Fires(rng):
		return KindShrink
	default:
		return KindNone
	}
}

// LotteryDraw evaluates the per-tick bonus gate.
func (es EventScheduler) LotteryDraw(rng Rand) bool {
	return es.Lottery.Fires(rng)
}
