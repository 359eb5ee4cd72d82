package core

import "github.com/charmbracelet/log"

// RuntimeConfig contains configuration passed to prototypes at initialization.
// Prototypes use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the platform (default 60)
	Seed     int64 // RNG seed for deterministic gameplay

	// SnapshotPath is where save/load actions write the world snapshot.
	// Empty disables persistence.
	SnapshotPath string

	// Logger receives engine warnings. Nil means discard.
	Logger *log.Logger
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Outcome is the terminal result of a prototype session.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLose
)

// String returns the lowercase outcome name stored with runs.
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	default:
		return "none"
	}
}

// GameState represents the current state of a prototype.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Current score
	GameOver bool    // Whether the session has ended
	Paused   bool    // Whether the simulation is paused
	Outcome  Outcome // Win/lose once GameOver is set
	Elapsed  float64 // Simulated seconds
	Status   string  // Short status line for the HUD
}

// StepResult is returned by Game.Step() after each simulation frame.
type StepResult struct {
	State GameState

	// Messages are log-worthy events from this frame (save failures,
	// level ups) that the platform may surface.
	Messages []string
}
