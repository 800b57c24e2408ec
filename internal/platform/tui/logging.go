package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// OpenLogFile returns a logger writing to path. The TUI owns the terminal,
// so interactive commands log to a file or nowhere.
// An empty path yields a logger that discards everything.
func OpenLogFile(path string, level log.Level) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("tui: cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("tui: cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           level,
	})
	return logger, f, nil
}

// logEvents writes the events of one step. Resets are info, the rest debug.
func logEvents(l *log.Logger, game string, tick uint64, events []core.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case core.EventReset:
			l.Info("reset", "game", game, "tick", tick, "cause", ev.Cause)
		default:
			l.Debug(ev.Kind.String(), "game", game, "tick", tick, "source", ev.Source, "amount", ev.Amount)
		}
	}
}
