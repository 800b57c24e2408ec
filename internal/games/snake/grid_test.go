package snake

import "testing"

func TestWrap(t *testing.T) {
	g := NewGrid(BoardWidth, BoardHeight, newScriptRand())

	tests := []struct {
		in, want Cell
	}{
		{Cell{0, 0}, Cell{0, 0}},
		{Cell{32, 0}, Cell{0, 0}},
		{Cell{-1, 0}, Cell{31, 0}},
		{Cell{0, -1}, Cell{0, 23}},
		{Cell{0, 24}, Cell{0, 0}},
		{Cell{-33, 49}, Cell{31, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			if got := g.Wrap(tt.in); got != tt.want {
				t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStepWrapsEveryEdge(t *testing.T) {
	g := NewGrid(BoardWidth, BoardHeight, newScriptRand())

	tests := []struct {
		name string
		from Cell
		dir  Direction
		want Cell
	}{
		{"right edge", Cell{31, 5}, DirRight, Cell{0, 5}},
		{"left edge", Cell{0, 5}, DirLeft, Cell{31, 5}},
		{"top edge", Cell{7, 0}, DirUp, Cell{7, 23}},
		{"bottom edge", Cell{7, 23}, DirDown, Cell{7, 0}},
		{"interior", Cell{10, 10}, DirDown, Cell{10, 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Step(tt.from, tt.dir)
			if got != tt.want {
				t.Errorf("Step(%v, %v) = %v, want %v", tt.from, tt.dir, got, tt.want)
			}
			if !g.Contains(got) {
				t.Errorf("Step result %v off the board", got)
			}
		})
	}
}

func TestCenterAndPixel(t *testing.T) {
	g := NewGrid(BoardWidth, BoardHeight, newScriptRand())
	if c := g.Center(); c != (Cell{16, 12}) {
		t.Errorf("Center() = %v, want (16,12)", c)
	}
	x, y := g.Pixel(Cell{3, 4})
	if x != 60 || y != 80 {
		t.Errorf("Pixel = (%d,%d), want (60,80)", x, y)
	}
}

func TestOpposite(t *testing.T) {
	pairs := map[Direction]Direction{
		DirUp:    DirDown,
		DirDown:  DirUp,
		DirLeft:  DirRight,
		DirRight: DirLeft,
	}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Errorf("%v.Opposite() = %v, want %v", d, got, want)
		}
	}
}

func TestRandomFreeCellResamples(t *testing.T) {
	rng := newScriptRand(0, 0, 5, 5, 2, 3)
	g := NewGrid(BoardWidth, BoardHeight, rng)
	taken := cellSet{{0, 0}: {}, {5, 5}: {}}

	got := g.RandomFreeCell(taken)
	if got != (Cell{2, 3}) {
		t.Errorf("RandomFreeCell = %v, want (2,3)", got)
	}
	if rng.draws != 6 {
		t.Errorf("draws = %d, want 6", rng.draws)
	}
}

func TestRandomFreeCellExcludesSnakeAndRegistry(t *testing.T) {
	rng := newScriptRand()
	g := NewGrid(BoardWidth, BoardHeight, rng)
	s := NewSnake(g.Center(), DirRight)
	occ := NewOccupancy()
	for x := range BoardWidth {
		occ.Claim(Cell{x, 0}, KindObstacle)
	}

	for range 500 {
		c := g.RandomFreeCell(s, occ)
		if s.Occupies(c) || occ.Occupies(c) {
			t.Fatalf("RandomFreeCell returned occupied cell %v", c)
		}
	}
}
