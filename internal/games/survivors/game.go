// Package survivors is the horde-survival prototype: a player with an
// always-on sword holds out against ever larger monster waves.
package survivors

import (
	"fmt"

	"github.com/vovakirdan/tui-protolab/internal/config"
	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/registry"
)

// ID is the registry identifier.
const ID = "survivors"

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	if p, ok := config.ParsePreset(preset); ok && preset != "" {
		difficultyPreset = p
		return
	}
	difficultyPreset = ""
}

func init() {
	registry.Register(ID, func() registry.Game { return New() })
}

// Game adapts World to the registry interface.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.SurvivorsConfig
	world   *World
}

// New creates a survivors game. Call Reset before stepping.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Survivors" }

// Reset loads the config and builds a fresh world.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadSurvivors(configPath)
	if err != nil {
		if runtime.Logger != nil {
			runtime.Logger.Warn("config load failed, using defaults", "game", ID, "error", err)
		}
		cfg = config.DefaultSurvivorsConfig()
	}
	if difficultyPreset != "" {
		config.ApplySurvivorsPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.world = NewWorld(cfg, runtime.Seed, runtime.Logger)
	g.world.Setup()
}

// World exposes the simulation for tests and tools.
func (g *Game) World() *World { return g.world }

// Step advances the simulation by dt seconds.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if in.Has(core.ActionRestart) || in.Has(core.ActionDebugReset) {
		g.world.Setup()
		return core.StepResult{State: g.State(), Messages: []string{"reset"}}
	}

	g.world.Tick(in, dt)
	msgs := append([]string(nil), g.world.messages...)

	// persistence runs after the tick so no update sees a half-loaded world
	if in.Has(core.ActionSave) {
		msgs = append(msgs, g.save())
	}
	if in.Has(core.ActionLoad) {
		msgs = append(msgs, g.load())
	}
	return core.StepResult{State: g.State(), Messages: msgs}
}

func (g *Game) save() string {
	path := g.runtime.SnapshotPath
	if path == "" {
		return "snapshots disabled"
	}
	if err := g.world.Save(path); err != nil {
		g.world.log.Error("snapshot save failed", "path", path, "error", err)
		return fmt.Sprintf("save failed: %v", err)
	}
	g.world.log.Info("snapshot saved", "path", path, "entities", g.world.Pool.Count())
	return "saved"
}

func (g *Game) load() string {
	path := g.runtime.SnapshotPath
	if path == "" {
		return "snapshots disabled"
	}
	if err := g.world.Load(path); err != nil {
		g.world.log.Warn("snapshot load failed, keeping current world", "path", path, "error", err)
		return fmt.Sprintf("load failed: %v", err)
	}
	g.world.log.Info("snapshot loaded", "path", path, "entities", g.world.Pool.Count())
	return "loaded"
}

// Render submits the current world into the draw list.
func (g *Game) Render(dl *core.DrawList) {
	g.world.Render(dl, g.runtime.ScreenW, g.runtime.ScreenH)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	w := g.world
	st := core.GameState{
		Score:   w.Kills,
		Elapsed: w.Elapsed,
		Status:  fmt.Sprintf("level %d, %d entities", w.Level, w.Pool.Count()),
	}
	switch w.UX {
	case UXWin:
		st.GameOver, st.Outcome = true, core.OutcomeWin
	case UXLose:
		st.GameOver, st.Outcome = true, core.OutcomeLose
	}
	return st
}
