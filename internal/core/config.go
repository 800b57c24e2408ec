package core

import "errors"

// ErrQuit is returned in StepResult.Err when the player asked to leave.
// Drivers must stop the loop; it is never retried.
var ErrQuit = errors.New("core: quit requested")

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 36,
		Seed:    0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score (snake length for snake variants)
	Paused   bool // Whether the game is paused
	TickRate int  // Ticks per second the driver should use for the next wait
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
	Err    error // ErrQuit when the game must terminate
}
