// Package registry maps variant IDs to game factories.
// Variants register themselves in init() functions, so the CLI, the menu
// and the replay journal can create any of them by ID.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Game is the interface every playable variant implements.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "snake", "snake_classic").
	// Used for CLI commands and as the variant of recorded replays.
	ID() string

	// Title returns a human-readable name for display (e.g., "Snake (Classic)").
	Title() string

	// Reset starts a fresh simulation.
	// The RuntimeConfig provides screen dimensions and RNG seed; the same
	// seed and the same inputs must produce the same run.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions (Up, Pause, Quit, etc.).
	// Returns the result of this tick including current game state.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, paused, tick rate).
	State() core.GameState
}

// GameInfo describes a registered variant for listings and the menu.
type GameInfo struct {
	ID      string
	Title   string
	Summary string // one line on what sets the variant apart
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

// ErrUnknown is returned by Create for an unregistered ID.
var ErrUnknown = errors.New("registry: unknown variant")

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a variant to the registry.
// Typically called from a game's init() function.
// Panics on an empty or already registered ID.
func Register(info GameInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		panic("registry: variant registered without an ID")
	}
	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns all registered variants, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the metadata of a variant.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a fresh game of the given variant.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, id)
	}
	return e.factory(), nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
