package core

import (
	"errors"
	"testing"
)

func TestInputFrameEncodeRoundTrip(t *testing.T) {
	frame := NewInputFrame()
	frame.Set(ActionRight)
	frame.Set(ActionUp)
	frame.Set(ActionPause)

	encoded := frame.Encode()
	if encoded != "Up,Right,Pause" {
		t.Errorf("Encode() = %q, expected sorted action names", encoded)
	}

	decoded, err := DecodeInputFrame(encoded)
	if err != nil {
		t.Fatalf("DecodeInputFrame() failed: %v", err)
	}
	for _, a := range []Action{ActionUp, ActionRight, ActionPause} {
		if !decoded.Has(a) {
			t.Errorf("decoded frame is missing %v", a)
		}
	}
	if decoded.Has(ActionLeft) {
		t.Error("decoded frame has an action that was never set")
	}
}

func TestInputFrameEmpty(t *testing.T) {
	frame := NewInputFrame()
	if !frame.Empty() || frame.Encode() != "" {
		t.Error("new frame should be empty")
	}

	frame.Set(ActionDown)
	if frame.Empty() {
		t.Error("frame with an action should not be empty")
	}

	frame.Clear()
	if !frame.Empty() {
		t.Error("cleared frame should be empty")
	}

	decoded, err := DecodeInputFrame("")
	if err != nil || !decoded.Empty() {
		t.Errorf("DecodeInputFrame(\"\") = %v, %v; expected empty frame", decoded, err)
	}
}

func TestDecodeInputFrameUnknownAction(t *testing.T) {
	if _, err := DecodeInputFrame("Up,Jump"); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		want    Color
		wantErr bool
	}{
		{"salmon", ColorSalmon, false},
		{"Bright-Green", ColorBrightGreen, false},
		{"bright green", ColorBrightGreen, false},
		{"", ColorDefault, false},
		{"ultraviolet", ColorDefault, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseColor(tc.name)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tc.name, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseColor(%q) = %v, expected %v", tc.name, got, tc.want)
			}
		})
	}

	for c := range colorNames {
		parsed, err := ParseColor(c.String())
		if err != nil || parsed != c {
			t.Errorf("ParseColor(%q) = %v, %v; expected %v", c.String(), parsed, err, c)
		}
	}
}

func TestErrQuitIsSentinel(t *testing.T) {
	res := StepResult{Err: ErrQuit}
	if !errors.Is(res.Err, ErrQuit) {
		t.Error("StepResult.Err should match ErrQuit")
	}
}

func TestInputFrameCloneIsIndependent(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)

	c := f.Clone()
	f.Clear()
	f.Set(ActionPause)

	if !c.Has(ActionLeft) || c.Has(ActionPause) {
		t.Errorf("clone = %q, want Left only", c.Encode())
	}
}
