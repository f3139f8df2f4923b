package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionLeft) {
		t.Error("zero frame should have no actions")
	}
	if !f.Empty() {
		t.Error("zero frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionLeft)
	f.Set(ActionRotate)
	if !f.Has(ActionLeft) || !f.Has(ActionRotate) || f.Has(ActionRight) {
		t.Errorf("unexpected actions: %v", f.Actions)
	}
	if len(f.Actions) != 2 {
		t.Errorf("repeated presses should collapse, got %d entries", len(f.Actions))
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
	if !clone.Has(ActionLeft) || !clone.Has(ActionRotate) {
		t.Error("Clone should not share storage with the original")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:    "None",
		ActionLeft:    "Left",
		ActionRight:   "Right",
		ActionRotate:  "Rotate",
		ActionPause:   "Pause",
		ActionRestart: "Restart",
		ActionQuit:    "Quit",
		Action(99):    "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", a, got, want)
		}
	}
}
