// Package battle is the time-bar JRPG prototype: a small party picks
// commands from a menu while monsters attack whenever their bar fills.
package battle

import (
	"fmt"

	"github.com/vovakirdan/tui-protolab/internal/config"
	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/combat"
	"github.com/vovakirdan/tui-protolab/internal/registry"
)

// ID is the registry identifier.
const ID = "battle"

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
	world   *World
}

// New creates a battle game. Call Reset before stepping.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Battle" }

// Reset loads the config and starts a new battle. An invalid config falls
// back to the defaults.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	logger := runtime.Logger

	cfg, err := config.LoadBattle(configPath)
	if err != nil {
		if logger != nil {
			logger.Warn("config load failed, using defaults", "game", ID, "error", err)
		}
		cfg = config.DefaultBattleConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBattlePreset(&cfg, difficultyPreset)
	}

	w, err := NewWorld(cfg, runtime.Seed, logger)
	if err != nil {
		if logger != nil {
			logger.Warn("invalid battle config, using defaults", "error", err)
		}
		w, err = NewWorld(config.DefaultBattleConfig(), runtime.Seed, logger)
		if err != nil {
			panic(fmt.Sprintf("battle: default config invalid: %v", err))
		}
	}
	g.world = w
	g.world.Setup()
}

// World exposes the simulation for tests and tools.
func (g *Game) World() *World { return g.world }

// Step advances the battle by dt seconds.
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

// Render submits the battle screen into the draw list.
func (g *Game) Render(dl *core.DrawList) {
	g.world.Render(dl)
}

// State returns the current game state. The score is the party's
// remaining health after a victory.
func (g *Game) State() core.GameState {
	s := g.world.sched
	players, monsters := s.Living()
	st := core.GameState{
		Elapsed: g.world.Now,
		Status:  fmt.Sprintf("%s, %d vs %d", s.State(), players, monsters),
	}
	switch s.State() {
	case combat.UXWin:
		st.GameOver, st.Outcome = true, core.OutcomeWin
		st.Score = int(g.world.PartyHealth())
	case combat.UXLose:
		st.GameOver, st.Outcome = true, core.OutcomeLose
	}
	return st
}
