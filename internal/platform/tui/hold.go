package tui

import (
	"time"

	"github.com/vovakirdan/tui-protolab/internal/core"
)

// HoldWindow is how long a key stays down after its last press or repeat.
// Terminals report presses only, never releases.
const HoldWindow = 150 * time.Millisecond

// holdTracker turns a stream of key presses into per-tick input frames.
type holdTracker struct {
	window  time.Duration
	last    map[core.Action]time.Time
	pressed map[core.Action]bool
}

func newHoldTracker(window time.Duration) *holdTracker {
	return &holdTracker{
		window:  window,
		last:    make(map[core.Action]time.Time),
		pressed: make(map[core.Action]bool),
	}
}

// press records a key event at now. A press while the key is still held
// is an auto-repeat and only extends the hold.
func (h *holdTracker) press(a core.Action, now time.Time) {
	if !h.down(a, now) {
		h.pressed[a] = true
	}
	h.last[a] = now
}

func (h *holdTracker) down(a core.Action, now time.Time) bool {
	t, ok := h.last[a]
	return ok && now.Sub(t) <= h.window
}

// frame builds the input for a tick at now and consumes pending presses.
func (h *holdTracker) frame(now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	for a := range h.pressed {
		f.Set(a)
		delete(h.pressed, a)
	}
	for a, t := range h.last {
		if now.Sub(t) <= h.window {
			f.Hold(a)
			continue
		}
		delete(h.last, a)
	}
	return f
}

// reset forgets every press and hold.
func (h *holdTracker) reset() {
	clear(h.last)
	clear(h.pressed)
}
