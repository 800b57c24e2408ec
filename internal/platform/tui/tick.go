// Package tui provides the Bubble Tea integration for the snake simulation.
// It drives the variable-rate clock, maps keys to actions and renders frames.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// TickMsg is sent to trigger a game simulation tick. Clock identifies the
// model that scheduled it, so a tick still in flight when a session swaps
// games is dropped.
type TickMsg struct {
	Time  time.Time
	Clock string
}

// maxTickRate bounds the clock so a bad rule set cannot spin the loop.
const maxTickRate = 240

// tickInterval is the delay between steps at tickRate, clamped to
// [1, maxTickRate] steps per second.
func tickInterval(tickRate int) time.Duration {
	return time.Second / time.Duration(core.Clamp(tickRate, 1, maxTickRate))
}

// tickCmd returns a command that fires one TickMsg after 1/tickRate seconds.
// The game reports its rate after every step, so each tick schedules the next.
func tickCmd(clock string, tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Clock: clock}
	})
}
