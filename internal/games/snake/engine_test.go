package snake

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestNewEngine(t *testing.T) {
	e := NewEngine(DefaultRules(), newScriptRand())

	if e.Snake().Head() != (Cell{16, 12}) || e.Snake().Direction() != DirRight {
		t.Errorf("snake starts at %v heading %v", e.Snake().Head(), e.Snake().Direction())
	}
	if n := len(e.Entities(KindObstacle)); n != 3 {
		t.Errorf("obstacles = %d, want 3", n)
	}
	if _, ok := e.Fruit(); !ok {
		t.Error("no fruit placed")
	}
	if e.Occupancy().Len() != 4 {
		t.Errorf("registry holds %d cells, want 4", e.Occupancy().Len())
	}
	if e.TickRate() != 5 {
		t.Errorf("tick rate = %d, want 5", e.TickRate())
	}
}

func TestEatFruit(t *testing.T) {
	e := NewEngine(quietRules(), newScriptRand())
	setSnake(e, DirRight, Cell{10, 10}, Cell{9, 10}, Cell{8, 10})
	placeFruit(e, Cell{11, 10})

	f := e.Tick()

	if e.Snake().Length() != 4 {
		t.Errorf("length = %d, want 4", e.Snake().Length())
	}
	if fc, ok := e.Fruit(); !ok || fc == (Cell{11, 10}) || e.Snake().Occupies(fc) {
		t.Errorf("fruit not respawned to a free cell: %v", fc)
	}
	if e.TickRate() != 7 {
		t.Errorf("tick rate = %d, want 7 at length 4", e.TickRate())
	}
	if f.Reset != nil {
		t.Errorf("unexpected reset: %v", f.Reset)
	}
	if evs := e.Events(); len(evs) != 1 || evs[0].Kind != core.EventGrow || evs[0].Source != "fruit" {
		t.Errorf("events = %+v", evs)
	}
}

func TestFruitTriggersOneGate(t *testing.T) {
	rules := quietRules()
	rules.Events = DefaultEventScheduler()
	rules.Events.Lottery = Gate{}
	rng := newScriptRand()
	e := NewEngine(rules, rng)
	setSnake(e, DirRight, Cell{10, 10})
	placeFruit(e, Cell{11, 10})

	// Fruit respawn draws x and y, then the penalty gate opens.
	rng.push(0, 0, 1, 0)
	e.Tick()

	if n := len(e.Entities(KindPenalty)); n != 1 {
		t.Errorf("penalty cells = %d, want 1", n)
	}
	if n := len(e.Entities(KindBonus)) + len(e.Entities(KindShrink)); n != 0 {
		t.Errorf("other patches got %d cells", n)
	}
}

func TestSelfCollisionResets(t *testing.T) {
	e := NewEngine(quietRules(), newScriptRand())
	placeFruit(e, Cell{30, 20})
	setSnake(e, DirRight, Cell{5, 5}, Cell{5, 6}, Cell{6, 6}, Cell{7, 6}, Cell{7, 5}, Cell{7, 4})
	e.snake.length = 8

	e.Steer(DirDown)
	f := e.Tick()

	if !errors.Is(f.Reset, ErrSelfCollision) {
		t.Fatalf("reset cause = %v, want self collision", f.Reset)
	}
	assertFreshLife(t, e, 0)
}

func TestObstacleResets(t *testing.T) {
	rules := quietRules()
	rules.ObstacleCount = 3
	e := NewEngine(rules, newScriptRand())
	e.obstacles.Clear(e.occ)
	placeFruit(e, Cell{30, 20})
	setSnake(e, DirUp, Cell{4, 4})
	plantObstacle(e, Cell{4, 3})

	f := e.Tick()

	if !errors.Is(f.Reset, ErrObstacleCollision) {
		t.Fatalf("reset cause = %v, want obstacle collision", f.Reset)
	}
	assertFreshLife(t, e, 3)
}

func TestShrinkHazard(t *testing.T) {
	e := NewEngine(quietRules(), newScriptRand())
	placeFruit(e, Cell{30, 20})
	setSnake(e, DirRight, Cell{10, 10}, Cell{9, 10}, Cell{8, 10})
	plant(e, e.shrink, Cell{11, 10})

	f := e.Tick()

	if f.Reset != nil {
		t.Fatalf("unexpected reset: %v", f.Reset)
	}
	if e.Snake().Size() != 2 || e.Snake().Length() != 2 {
		t.Errorf("size/length = %d/%d, want 2/2", e.Snake().Size(), e.Snake().Length())
	}
	if e.Occupancy().Occupies(Cell{11, 10}) || len(e.Entities(KindShrink)) != 0 {
		t.Error("hazard not consumed")
	}
	if len(f.Vacated) != 2 {
		t.Errorf("vacated = %v, want the moved tail and the trimmed cell", f.Vacated)
	}
}

func TestShrinkHazardStarves(t *testing.T) {
	e := NewEngine(quietRules(), newScriptRand())
	placeFruit(e, Cell{30, 20})
	setSnake(e, DirRight, Cell{10, 10})
	plant(e, e.shrink, Cell{11, 10})
	plant(e, e.shrink, Cell{1, 1})

	f := e.Tick()

	if !errors.Is(f.Reset, ErrStarvationShrink) {
		t.Fatalf("reset cause = %v, want starvation", f.Reset)
	}
	assertFreshLife(t, e, 0)
}

func TestPenaltyHazard(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		wantReset bool
		wantSize  int
	}{
		{"three cells starve", 3, true, 1},
		{"four cells keep one", 4, false, 1},
		{"six cells keep three", 6, false, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(quietRules(), newScriptRand())
			placeFruit(e, Cell{30, 20})
			body := make([]Cell, tt.size)
			for i := range body {
				body[i] = Cell{X: 10 - i, Y: 2}
			}
			setSnake(e, DirRight, body...)
			plant(e, e.penalty, Cell{11, 2})

			f := e.Tick()

			if (f.Reset != nil) != tt.wantReset {
				t.Fatalf("reset = %v, want reset %v", f.Reset, tt.wantReset)
			}
			if e.Snake().Size() != tt.wantSize {
				t.Errorf("size = %d, want %d", e.Snake().Size(), tt.wantSize)
			}
			if len(e.Entities(KindPenalty)) != 0 {
				t.Error("penalty not consumed")
			}
		})
	}
}

func TestBonusGrowth(t *testing.T) {
	rng := newScriptRand()
	e := NewEngine(quietRules(), rng)
	placeFruit(e, Cell{30, 20})
	setSnake(e, DirDown, Cell{3, 3})
	plant(e, e.bonus, Cell{3, 4})

	rng.push(4)
	e.Tick()

	if e.Snake().Length() != 6 {
		t.Errorf("length = %d, want 6", e.Snake().Length())
	}
	if e.TickRate() != 7 {
		t.Errorf("tick rate = %d, want 7", e.TickRate())
	}
	if len(e.Entities(KindBonus)) != 0 {
		t.Error("bonus not consumed")
	}
}

func TestLotterySpawnsBonus(t *testing.T) {
	rules := quietRules()
	rules.Events.Lottery = Gate{N: 1}
	rules.BonusLimit = 2
	e := NewEngine(rules, newScriptRand())
	placeFruit(e, Cell{30, 20})
	setSnake(e, DirRight, Cell{10, 10})

	e.Tick()
	if n := len(e.Entities(KindBonus)); n != 1 {
		t.Fatalf("bonus cells after one tick = %d, want 1", n)
	}
	for range 20 {
		e.Tick()
		if n := len(e.Entities(KindBonus)); n > 2 {
			t.Fatalf("bonus cells = %d, limit is 2", n)
		}
	}
}

func TestResetClearsEverything(t *testing.T) {
	e := NewEngine(DefaultRules(), newScriptRand())
	setSnake(e, DirRight, Cell{1, 1}, Cell{0, 1}, Cell{31, 1}, Cell{30, 1}, Cell{29, 1})
	plant(e, e.shrink, Cell{20, 20})
	plant(e, e.penalty, Cell{21, 20})
	plant(e, e.bonus, Cell{22, 20})

	e.Reset(ErrSelfCollision)

	assertFreshLife(t, e, 3)
	if e.Resets() != 1 {
		t.Errorf("resets = %d, want 1", e.Resets())
	}
}

// assertFreshLife checks the state right after a full reset.
func assertFreshLife(t *testing.T, e *Engine, obstacles int) {
	t.Helper()
	s := e.Snake()
	if s.Size() != 1 || s.Length() != 1 || s.Head() != e.Grid().Center() {
		t.Errorf("snake after reset: size %d length %d head %v", s.Size(), s.Length(), s.Head())
	}
	for _, k := range []Kind{KindShrink, KindPenalty, KindBonus} {
		if n := len(e.Entities(k)); n != 0 {
			t.Errorf("%v cells after reset = %d", k, n)
		}
	}
	if n := len(e.Entities(KindObstacle)); n != obstacles {
		t.Errorf("obstacles after reset = %d, want %d", n, obstacles)
	}
	if _, ok := e.Fruit(); !ok {
		t.Error("no fruit after reset")
	}
	if e.Occupancy().Len() != obstacles+1 {
		t.Errorf("registry holds %d cells, want %d", e.Occupancy().Len(), obstacles+1)
	}
	if e.TickRate() != 5 {
		t.Errorf("tick rate after reset = %d, want 5", e.TickRate())
	}
}

// TestInvariantsUnderRandomPlay drives the engine with random steering and
// busy gates, checking structural invariants after every tick.
func TestInvariantsUnderRandomPlay(t *testing.T) {
	rules := DefaultRules()
	rules.Events = EventScheduler{
		Bonus:   Gate{N: 3},
		Penalty: Gate{N: 2},
		Shrink:  Gate{N: 2},
		Lottery: Gate{N: 20},
	}
	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		e := NewEngine(rules, rng)
		steer := rand.New(rand.NewSource(seed * 7))

		for tick := range 3000 {
			if steer.Intn(4) == 0 {
				e.Steer(Directions[steer.Intn(4)])
			}
			f := e.Tick()
			checkInvariants(t, e, f)
			if t.Failed() {
				t.Fatalf("seed %d tick %d", seed, tick)
			}
		}
	}
}

func checkInvariants(t *testing.T, e *Engine, f Frame) {
	t.Helper()
	s := e.Snake()
	if s.Length() < 1 || s.Size() < 1 || s.Size() > s.Length() {
		t.Errorf("size %d length %d", s.Size(), s.Length())
	}
	for _, c := range s.Body() {
		if !e.Grid().Contains(c) {
			t.Errorf("segment %v off the board", c)
		}
		if e.Occupancy().Occupies(c) {
			t.Errorf("segment %v shares a cell with %v", c, e.Occupancy().KindAt(c))
		}
	}

	total := 0
	for _, k := range []Kind{KindFruit, KindObstacle, KindShrink, KindPenalty, KindBonus} {
		cells := e.Entities(k)
		total += len(cells)
		for _, c := range cells {
			if e.Occupancy().KindAt(c) != k {
				t.Errorf("%v cell %v registered as %v", k, c, e.Occupancy().KindAt(c))
			}
		}
	}
	if total != e.Occupancy().Len() {
		t.Errorf("entities hold %d cells, registry %d", total, e.Occupancy().Len())
	}
	if len(e.Entities(KindFruit)) != 1 {
		t.Error("fruit missing")
	}
	if want := e.speed.RateFor(s.Length()); e.TickRate() != want {
		t.Errorf("tick rate %d, want %d for length %d", e.TickRate(), want, s.Length())
	}
	if f.Reset != nil && len(f.Vacated) != 0 {
		t.Error("reset frame reports vacated cells")
	}
}

func TestBonusGrowthChangesSkin(t *testing.T) {
	row := func(headX, n int) []Cell {
		body := make([]Cell, n)
		for i := range body {
			body[i] = Cell{headX - i, 5}
		}
		return body
	}

	tests := []struct {
		name      string
		body      int
		wantLen   int
		wantRate  int
		wantSkin  Skin
		wantColor func(Palette) core.Color
	}{
		{"into tier1", 17, 21, 22, SkinTier1, func(p Palette) core.Color { return p.SnakeTier1 }},
		{"into tier2", 27, 31, 25, SkinTier2, func(p Palette) core.Color { return p.SnakeTier2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := newScriptRand()
			e := NewEngine(quietRules(), rng)
			palette := e.rules.Palette
			placeFruit(e, Cell{30, 20})
			setSnake(e, DirRight, row(tt.body, tt.body)...)
			plant(e, e.bonus, Cell{tt.body + 1, 5})

			before := e.Frame()
			if before.Skin == tt.wantSkin || before.SnakeColor == tt.wantColor(palette) {
				t.Fatalf("skin %s already active at length %d", before.Skin, before.Length)
			}

			rng.push(tt.wantLen - tt.body - e.rules.BonusMin)
			f := e.Tick()

			if f.Length != tt.wantLen {
				t.Fatalf("length = %d, want %d", f.Length, tt.wantLen)
			}
			if f.TickRate != tt.wantRate {
				t.Errorf("tick rate = %d, want %d", f.TickRate, tt.wantRate)
			}
			if f.Skin != tt.wantSkin {
				t.Errorf("skin = %s, want %s", f.Skin, tt.wantSkin)
			}
			if f.SnakeColor != tt.wantColor(palette) {
				t.Errorf("snake color = %s, want %s", f.SnakeColor, tt.wantColor(palette))
			}
		})
	}
}
