package snake

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

func TestDeterminism(t *testing.T) {
	cfg := core.RuntimeConfig{Seed: 12345, ScreenW: 80, ScreenH: 36}

	g1 := New()
	g1.Reset(cfg)
	g2 := New()
	g2.Reset(cfg)

	input := core.NewInputFrame()
	for i := range 2000 {
		input.Clear()
		switch i % 50 {
		case 10:
			input.Set(core.ActionDown)
		case 20:
			input.Set(core.ActionLeft)
		case 30:
			input.Set(core.ActionUp)
		case 40:
			input.Set(core.ActionRight)
		}
		g1.Step(input)
		g2.Step(input)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("snapshots diverged:\n%+v\n%+v", s1, s2)
	}
}

func TestQuitLeavesStateUntouched(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1})
	before := g.Snapshot()

	input := core.NewInputFrame()
	input.Set(core.ActionQuit)
	input.Set(core.ActionDown)
	res := g.Step(input)

	if !errors.Is(res.Err, core.ErrQuit) {
		t.Fatalf("Err = %v, want ErrQuit", res.Err)
	}
	if after := g.Snapshot(); after != before {
		t.Errorf("quit changed state:\n%+v\n%+v", before, after)
	}
}

func TestPause(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 2})

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	head := g.Snapshot()

	for range 5 {
		g.Step(core.NewInputFrame())
	}
	if s := g.Snapshot(); s.HeadX != head.HeadX || s.HeadY != head.HeadY || !s.Paused {
		t.Errorf("snake moved while paused: %+v", s)
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("still paused after second toggle")
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g := NewWithRules(quietRules())
	g.Reset(core.RuntimeConfig{Seed: 42})

	if d := g.Snapshot().Dir; d != DirRight {
		t.Fatalf("initial direction = %v, want right", d)
	}

	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	g.Step(input)
	if d := g.Snapshot().Dir; d != DirRight {
		t.Errorf("direction after reversal = %v, want right", d)
	}

	input.Clear()
	input.Set(core.ActionUp)
	g.Step(input)
	if d := g.Snapshot().Dir; d != DirUp {
		t.Errorf("direction = %v, want up", d)
	}
}

func TestClassicVariant(t *testing.T) {
	g := NewClassic()
	g.Reset(core.RuntimeConfig{Seed: 9})

	for range 500 {
		g.Step(core.NewInputFrame())
		s := g.Snapshot()
		if s.TickRate != 10 {
			t.Fatalf("classic tick rate = %d, want 10", s.TickRate)
		}
		if s.Obstacles+s.Hazards+s.Bonuses != 0 {
			t.Fatalf("classic board has extra entities: %+v", s)
		}
	}
}

func TestStepReportsEvents(t *testing.T) {
	g := NewWithRules(quietRules())
	g.Reset(core.RuntimeConfig{Seed: 3})
	e := g.Engine()
	setSnake(e, DirRight, Cell{4, 4})
	placeFruit(e, Cell{5, 4})

	res := g.Step(core.NewInputFrame())
	if len(res.Events) != 1 || res.Events[0].Kind != core.EventGrow {
		t.Fatalf("events = %+v, want one grow", res.Events)
	}
	if res.State.Score != 2 || res.State.TickRate != 5 {
		t.Errorf("state = %+v", res.State)
	}
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"snake", "snake_classic"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
		info, ok := registry.Lookup(id)
		if !ok || info.Title != g.Title() || info.Summary == "" {
			t.Errorf("Lookup(%q) = %+v, %v; title %q", id, info, ok, g.Title())
		}
	}
}

func TestSetConfig(t *testing.T) {
	t.Cleanup(func() {
		rulesMu.Lock()
		canonical = nil
		rulesMu.Unlock()
	})

	cfg := config.DefaultSnakeConfig()
	cfg.Obstacles.Count = 7
	if err := SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 5})
	if n := g.Snapshot().Obstacles; n != 7 {
		t.Errorf("obstacles = %d, want 7", n)
	}

	cfg.Obstacles.Count = BoardCells
	if err := SetConfig(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("oversized config err = %v, want ErrInvalid", err)
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 4})

	screen := core.NewScreen(80, 36)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(screen.Row(0), "Length: 1") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
	if !strings.Contains(out, "<>") {
		t.Error("fruit not drawn")
	}
	if !strings.Contains(out, "██") {
		t.Error("snake head not drawn")
	}
	if strings.Count(out, "##") < 3 {
		t.Error("obstacles not drawn")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 4})

	screen := core.NewScreen(40, 20)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("small screen message missing")
	}

	// Resizing only affects drawing; the simulation keeps its state.
	before := g.Snapshot()
	g.Render(core.NewScreen(120, 40))
	if g.Snapshot() != before {
		t.Error("render changed the simulation")
	}
}

func TestRenderFitsBoardExactly(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 4})

	tests := []struct {
		name  string
		w, h  int
		small bool
	}{
		{"exact fit", MinScreenW, MinScreenH, false},
		{"one column short", MinScreenW - 1, MinScreenH, true},
		{"one row short", MinScreenW, MinScreenH - 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := core.NewScreen(tt.w, tt.h)
			g.Render(screen)
			out := screen.String()
			if got := strings.Contains(out, "Window too small"); got != tt.small {
				t.Errorf("too-small overlay = %v, want %v", got, tt.small)
			}
			if !tt.small {
				// The bottom border sits on the last row.
				if r := screen.Get(0, tt.h-1); r == ' ' {
					t.Errorf("bottom-left corner missing, row %q", screen.Row(tt.h-1))
				}
			}
		})
	}
}
