package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, Up arrow
	ActionDown              // S, Down arrow
	ActionLeft              // A, Left arrow
	ActionRight             // D, Right arrow
	ActionConfirm           // Enter, Space - confirm selection
	ActionBack              // B, Escape - go back / cancel a submenu
	ActionRestart           // R key - restart the prototype
	ActionQuit              // Q, Ctrl+C - exit
	ActionPause             // P - pause/unpause
	ActionSave              // F - save world snapshot
	ActionLoad              // L - load world snapshot
	ActionDebugReset        // Shift+K - debug world reset
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionSave:
		return "Save"
	case ActionLoad:
		return "Load"
	case ActionDebugReset:
		return "DebugReset"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
//
// Actions holds the actions pressed for the first time this tick; Held holds
// the actions whose key is currently down. A freshly pressed action is
// always held as well.
type InputFrame struct {
	Actions map[Action]bool
	Held    map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as pressed (and held) for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	f.Hold(a)
}

// Hold marks an action as held without a fresh press.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Has returns true if the given action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Down returns true if the action is held this frame.
func (f InputFrame) Down(a Action) bool {
	if f.Held != nil && f.Held[a] {
		return true
	}
	return f.Has(a)
}

// Axis returns the normalised movement direction from held directional
// actions. Up maps to -Y because world space is y-down.
func (f InputFrame) Axis() Vec2 {
	var v Vec2
	if f.Down(ActionUp) {
		v.Y--
	}
	if f.Down(ActionDown) {
		v.Y++
	}
	if f.Down(ActionLeft) {
		v.X--
	}
	if f.Down(ActionRight) {
		v.X++
	}
	return v.Normalize()
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	for k := range f.Held {
		delete(f.Held, k)
	}
}
