// Package maze is the maze chase prototype: grab the sword hidden in a
// freshly carved maze, then catch the wandering monster.
package maze

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-protolab/internal/config"
	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/registry"
)

// ID is the registry identifier.
const ID = "maze"

// parTime is the win time that still scores; slower wins score less.
const parTime = 100.0

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

func init() {
	registry.Register(ID, func() registry.Game { return New() })
}

// Game adapts World to the registry interface.
type Game struct {
	runtime core.RuntimeConfig
	world   *World
}

// New creates a maze game. Call Reset before stepping.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Maze" }

// Reset loads the config and carves a new maze.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	cfg, err := config.LoadMaze(configPath)
	if err != nil {
		if runtime.Logger != nil {
			runtime.Logger.Warn("config load failed, using defaults", "game", ID, "error", err)
		}
		cfg = config.DefaultMazeConfig()
	}
	g.world = NewWorld(cfg, runtime.Seed, runtime.Logger)
	g.world.Setup()
}

// World exposes the simulation for tests and tools.
func (g *Game) World() *World { return g.world }

// Step advances the chase by dt seconds.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if in.Has(core.ActionRestart) || in.Has(core.ActionDebugReset) {
		g.world.Setup()
		return core.StepResult{State: g.State(), Messages: []string{"reset"}}
	}

	g.world.Tick(in, dt)
	msgs := append([]string(nil), g.world.messages...)
	if in.Has(core.ActionSave) {
		msgs = append(msgs, g.persist("save", g.world.Save))
	}
	if in.Has(core.ActionLoad) {
		msgs = append(msgs, g.persist("load", g.world.Load))
	}
	return core.StepResult{State: g.State(), Messages: msgs}
}

func (g *Game) persist(op string, fn func(string) error) string {
	path := g.runtime.SnapshotPath
	if path == "" {
		return "snapshots disabled"
	}
	if err := fn(path); err != nil {
		g.world.log.Warn("snapshot "+op+" failed", "path", path, "error", err)
		return fmt.Sprintf("%s failed: %v", op, err)
	}
	g.world.log.Info("snapshot "+op, "path", path)
	if op == "save" {
		return "saved"
	}
	return "loaded"
}

// Render submits the current frame into the draw list.
func (g *Game) Render(dl *core.DrawList) {
	g.world.Render(dl, g.runtime.ScreenW, g.runtime.ScreenH)
}

// State returns the current game state. A win scores ten points per second
// under par, and never less than one.
func (g *Game) State() core.GameState {
	w := g.world
	st := core.GameState{Elapsed: w.Elapsed, Status: w.UX.String()}
	switch w.UX {
	case UXWin:
		st.GameOver, st.Outcome = true, core.OutcomeWin
		st.Score = int(math.Max(1, math.Round((parTime-w.Elapsed)*10)))
	case UXLose:
		st.GameOver, st.Outcome = true, core.OutcomeLose
	}
	return st
}
