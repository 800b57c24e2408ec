package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// EntityView is one entity kind as the render sink sees it.
type EntityView struct {
	Kind  Kind       `json:"kind"`
	Cells []Cell     `json:"cells"`
	Color core.Color `json:"color"`
}

// Frame is everything a render sink needs after a tick.
//
// Reset is non-nil when a full reset happened during the tick; the sink
// decides how to clear. Vacated lists tail cells the snake left.
type Frame struct {
	Tick       uint64       `json:"tick"`
	Snake      []Cell       `json:"snake"`
	SnakeColor core.Color   `json:"snake_color"`
	Entities   []EntityView `json:"entities"`
	Vacated    []Cell       `json:"vacated,omitempty"`
	Reset      error        `json:"-"`
	TickRate   int          `json:"tick_rate"`
	Skin       Skin         `json:"skin"`
	Length     int          `json:"length"`
}

// renderOrder is the draw order of entities; later kinds draw on top.
var renderOrder = [...]Kind{KindObstacle, KindShrink, KindPenalty, KindBonus, KindFruit}

// Frame describes the current state without advancing it.
func (e *Engine) Frame() Frame {
	skin := e.speed.Skin()
	f := Frame{
		Tick:       e.tick,
		Snake:      e.snake.Body(),
		SnakeColor: e.rules.Palette.SnakeColor(skin),
		Reset:      e.cause,
		TickRate:   e.speed.Rate(),
		Skin:       skin,
		Length:     e.snake.Length(),
	}
	if e.cause == nil {
		f.Vacated = append([]Cell(nil), e.snake.Vacated()...)
	}
	for _, k := range renderOrder {
		cells := e.Entities(k)
		if len(cells) == 0 {
			continue
		}
		f.Entities = append(f.Entities, EntityView{Kind: k, Cells: cells, Color: e.rules.Palette.ColorOf(k)})
	}
	return f
}

// Cells returns the cells of kind in the frame.
func (f Frame) Cells(k Kind) []Cell {
	for _, ev := range f.Entities {
		if ev.Kind == k {
			return ev.Cells
		}
	}
	return nil
}
