package snake

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// Variant selects a rule set.
type Variant string

const (
	VariantCanonical Variant = "snake"
	VariantClassic   Variant = "snake_classic"
)

// Game adapts the engine to registry.Game. Each Game owns an independent
// simulation.
type Game struct {
	variant Variant
	rules   Rules
	engine  *Engine
	frame   Frame
	tick    uint64
	paused  bool
}

var (
	rulesMu   sync.RWMutex
	canonical *Rules // set by SetConfig; nil means defaults
)

// SetConfig installs the rule set used by canonical games created
// afterwards. The classic variant is not configurable.
func SetConfig(cfg config.SnakeConfig) error {
	rules, err := RulesFromConfig(cfg)
	if err != nil {
		return err
	}
	rulesMu.Lock()
	canonical = &rules
	rulesMu.Unlock()
	return nil
}

func canonicalRules() Rules {
	rulesMu.RLock()
	defer rulesMu.RUnlock()
	if canonical != nil {
		return *canonical
	}
	return DefaultRules()
}

// New creates a canonical game: obstacles, hazards, bonus and the speed curve.
func New() *Game {
	return &Game{variant: VariantCanonical, rules: canonicalRules()}
}

// NewClassic creates the fruit-only game at a constant speed.
func NewClassic() *Game {
	return &Game{variant: VariantClassic, rules: ClassicRules()}
}

// NewWithRules creates a canonical game with explicit rules.
func NewWithRules(rules Rules) *Game {
	return &Game{variant: VariantCanonical, rules: rules}
}

var variants = map[Variant]registry.GameInfo{
	VariantCanonical: {
		ID:      string(VariantCanonical),
		Title:   "Snake",
		Summary: "obstacles, hazards and bonuses; speeds up as it grows",
	},
	VariantClassic: {
		ID:      string(VariantClassic),
		Title:   "Snake (Classic)",
		Summary: "fruit only at a constant speed",
	},
}

func init() {
	registry.Register(variants[VariantCanonical], func() registry.Game {
		return New()
	})
	registry.Register(variants[VariantClassic], func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	return variants[g.variant].Title
}

// Rules returns the rule set of the game.
func (g *Game) Rules() Rules {
	return g.rules
}

// Reset starts a fresh simulation seeded from cfg. Screen size only
// affects rendering.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.engine = NewEngine(g.rules, rand.New(rand.NewSource(cfg.Seed)))
	g.frame = g.engine.Frame()
	g.tick = 0
	g.paused = false
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if input.Has(core.ActionQuit) {
		return core.StepResult{State: g.State(), Err: core.ErrQuit}
	}

	g.tick++
	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)
	g.frame = g.engine.Tick()

	var events []core.Event
	if evs := g.engine.Events(); len(evs) > 0 {
		events = append(events, evs...)
	}
	return core.StepResult{State: g.State(), Events: events}
}

// processInput forwards direction intents in a fixed order. A later intent
// in the same frame overrides an earlier one unless the snake rejects it.
func (g *Game) processInput(input core.InputFrame) {
	intents := [...]struct {
		action core.Action
		dir    Direction
	}{
		{core.ActionUp, DirUp},
		{core.ActionDown, DirDown},
		{core.ActionLeft, DirLeft},
		{core.ActionRight, DirRight},
	}
	for _, in := range intents {
		if input.Has(in.action) {
			g.engine.Steer(in.dir)
		}
	}
}

// Render draws the last frame.
func (g *Game) Render(dst *core.Screen) {
	RenderFrame(dst, g.frame, g.rules.Palette, g.Title())
	if g.paused && dst.Width() >= MinScreenW && dst.Height() >= MinScreenH {
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// State returns the current game state. Score is the snake length.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.frame.Length,
		Paused:   g.paused,
		TickRate: g.frame.TickRate,
	}
}

// Frame returns the last frame.
func (g *Game) Frame() Frame {
	return g.frame
}

// Engine exposes the simulation for tests and headless tools.
func (g *Game) Engine() *Engine {
	return g.engine
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	s := g.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Variant: %s, Resets: %d\n", s.Tick, s.Variant, s.Resets)
	fmt.Fprintf(&b, "Length: %d (body %d), Direction: %s\n", s.Length, s.BodySize, s.Dir)
	fmt.Fprintf(&b, "Head: (%d, %d), Fruit: (%d, %d)\n", s.HeadX, s.HeadY, s.FruitX, s.FruitY)
	fmt.Fprintf(&b, "Speed: %d, Skin: %s, Paused: %v\n", s.TickRate, s.Skin, s.Paused)
	return b.String()
}
