package snake

// Snapshot captures the observable simulation state for determinism tests
// and replay verification.
type Snapshot struct {
	Tick      uint64
	Variant   string
	Length    int
	BodySize  int
	HeadX     int
	HeadY     int
	Dir       Direction
	FruitX    int
	FruitY    int
	TickRate  int
	Skin      Skin
	Obstacles int
	Hazards   int // shrink and penalty cells
	Bonuses   int
	Resets    int
	Paused    bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	e := g.engine
	head := e.Snake().Head()
	fruit, _ := e.Fruit()
	return Snapshot{
		Tick:      g.tick,
		Variant:   string(g.variant),
		Length:    e.Snake().Length(),
		BodySize:  e.Snake().Size(),
		HeadX:     head.X,
		HeadY:     head.Y,
		Dir:       e.Snake().Direction(),
		FruitX:    fruit.X,
		FruitY:    fruit.Y,
		TickRate:  e.TickRate(),
		Skin:      e.Skin(),
		Obstacles: len(e.Entities(KindObstacle)),
		Hazards:   len(e.Entities(KindShrink)) + len(e.Entities(KindPenalty)),
		Bonuses:   len(e.Entities(KindBonus)),
		Resets:    e.Resets(),
		Paused:    g.paused,
	}
}
