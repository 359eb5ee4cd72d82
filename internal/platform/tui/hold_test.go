package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-protolab/internal/core"
)

func TestHoldTrackerPressAndHold(t *testing.T) {
	h := newHoldTracker(HoldWindow)
	t0 := time.Unix(100, 0)

	h.press(core.ActionLeft, t0)

	f := h.frame(t0.Add(10 * time.Millisecond))
	if !f.Has(core.ActionLeft) || !f.Down(core.ActionLeft) {
		t.Error("first tick should see the press and the hold")
	}

	f = h.frame(t0.Add(100 * time.Millisecond))
	if f.Has(core.ActionLeft) {
		t.Error("press should be consumed by the first frame")
	}
	if !f.Down(core.ActionLeft) {
		t.Error("key should still be down inside the hold window")
	}

	f = h.frame(t0.Add(200 * time.Millisecond))
	if f.Down(core.ActionLeft) {
		t.Error("key should be released after the window")
	}
}

func TestHoldTrackerRepeatExtendsHold(t *testing.T) {
	h := newHoldTracker(HoldWindow)
	t0 := time.Unix(100, 0)

	h.press(core.ActionUp, t0)
	h.frame(t0)

	// auto-repeat while held only extends the hold
	h.press(core.ActionUp, t0.Add(100*time.Millisecond))
	f := h.frame(t0.Add(200 * time.Millisecond))
	if f.Has(core.ActionUp) {
		t.Error("auto-repeat should not count as a fresh press")
	}
	if !f.Down(core.ActionUp) {
		t.Error("auto-repeat should extend the hold")
	}

	// a press after release is fresh again
	h.press(core.ActionUp, t0.Add(time.Second))
	f = h.frame(t0.Add(time.Second))
	if !f.Has(core.ActionUp) {
		t.Error("press after release should be fresh")
	}
}

func TestHoldTrackerReset(t *testing.T) {
	h := newHoldTracker(HoldWindow)
	t0 := time.Unix(100, 0)

	h.press(core.ActionRight, t0)
	h.reset()

	if h.frame(t0).Down(core.ActionRight) {
		t.Error("reset should forget held keys")
	}
}
