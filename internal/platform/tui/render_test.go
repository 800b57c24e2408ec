package tui

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestScreenRendererWithoutColor(t *testing.T) {
	// A renderer writing to a buffer detects no color support.
	sr := NewScreenRenderer(lipgloss.NewRenderer(&bytes.Buffer{}))

	s := core.NewScreen(6, 2)
	s.DrawColorText(0, 0, "ab", core.ColorGold)
	s.DrawColorText(2, 0, "cd", core.ColorSalmon)
	s.DrawText(0, 1, "xy")

	if got, want := sr.Render(s), s.String(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{10, 100 * time.Millisecond},
		{1, time.Second},
		{0, time.Second},
		{-5, time.Second},
		{maxTickRate * 10, time.Second / maxTickRate},
	}
	for _, tt := range tests {
		if got := tickInterval(tt.rate); got != tt.want {
			t.Errorf("tickInterval(%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}
