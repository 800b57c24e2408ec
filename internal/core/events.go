package core

// EventKind classifies something that happened during a tick.
type EventKind int

const (
	EventGrow EventKind = iota + 1
	EventShrink
	EventSpawn
	EventReset
)

// String returns a lowercase name suitable for log keys.
func (k EventKind) String() string {
	switch k {
	case EventGrow:
		return "grow"
	case EventShrink:
		return "shrink"
	case EventSpawn:
		return "spawn"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is a notable state change reported by a game to its driver.
// Drivers log events; games never depend on a logger.
type Event struct {
	Kind   EventKind
	Source string // Entity that caused the event, e.g. "fruit" or "bonus"
	Amount int    // Length delta for grow/shrink, cells for spawn
	Cause  error  // Reset cause, nil otherwise
}
