package battle

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-protolab/internal/config"
	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/combat"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
	"github.com/vovakirdan/tui-protolab/internal/platform/logging"
)

// MaxParty is the largest party the layout has rows for.
const MaxParty = 4

// poolCapacity covers both sides plus the cursor.
const poolCapacity = 64

// Layout in cells of an 80x24 stage. The view centres the stage on larger
// terminals.
const (
	stageW     = 80
	stageH     = 24
	monsterCol = 3
	partyCol   = 46
	firstRow   = 2
	rowStep    = 3
	panelRow   = 16
)

// World is one battle.
type World struct {
	cfg   config.BattleConfig
	Pool  *entity.Pool
	table entity.Table[*World]
	lib   *combat.Library
	sched *combat.Scheduler
	rng   *rand.Rand
	log   *log.Logger

	Now      float64
	last     combat.UXState
	messages []string
}

// NewWorld validates cfg and builds an empty battle. Call Setup to place
// the combatants.
func NewWorld(cfg config.BattleConfig, seed int64, logger *log.Logger) (*World, error) {
	lib, err := BuildLibrary(cfg.Actions)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg, lib); err != nil {
		return nil, err
	}
	w := &World{
		cfg:  cfg,
		Pool: entity.NewPool(poolCapacity),
		lib:  lib,
		rng:  rand.New(rand.NewSource(seed)),
		log:  logging.OrDiscard(logger),
	}
	w.table = newTable()
	return w, nil
}

// Setup places the party and the monsters, then starts a new scheduler.
func (w *World) Setup() {
	w.Pool.Reset()
	w.Now = 0
	w.messages = w.messages[:0]

	party := w.cfg.Party
	if len(party) > MaxParty {
		w.log.Warn("party too large, truncating", "size", len(party), "max", MaxParty)
		party = party[:MaxParty]
	}
	for i, c := range party {
		w.addCombatant(entity.ArchPlayer, c, core.V2(partyCol, float64(firstRow+i*rowStep)))
	}
	for i, c := range w.cfg.Monsters {
		w.addCombatant(entity.ArchMonster, c, core.V2(monsterCol, float64(firstRow+i*rowStep)))
	}
	w.table.Spawn(w, w.Pool, entity.ArchCursor)

	w.sched = combat.NewScheduler(w.Pool, w.lib, w.rng, combat.Options{
		Attack:        w.cfg.Commands.Attack,
		Defend:        w.cfg.Commands.Defend,
		MonsterAttack: w.cfg.Commands.MonsterAttack,
		Items:         w.cfg.Items,
		Logger:        w.log,
	})
	w.last = w.sched.State()
	w.log.Debug("battle setup", "party", len(party), "monsters", len(w.cfg.Monsters))
}

// addCombatant copies a configured combatant into a fresh slot. Blocks were
// validated by NewWorld.
func (w *World) addCombatant(arch entity.Archetype, c config.CombatantConfig, pos core.Vec2) *entity.Entity {
	e := w.table.Spawn(w, w.Pool, arch)
	e.Name = c.Name
	e.Pos = pos
	e.Health = entity.NewBar(c.Health, 0)
	e.Mana = entity.NewBar(c.Mana, 0)
	e.Time = entity.Bar{Max: c.TimeMax, Rate: c.TimeRate}
	e.Invincible = c.Invincible
	e.Stats, _ = statBlock(c.Stats)
	e.Resists, _ = resistBlock(c.Resists)
	return e
}

// Scheduler exposes the battle state machine.
func (w *World) Scheduler() *combat.Scheduler { return w.sched }

// Cursor returns the cursor entity.
func (w *World) Cursor() *entity.Entity {
	return w.Pool.First(entity.ArchCursor)
}

// PartyHealth sums the current health of the living party.
func (w *World) PartyHealth() float64 {
	var sum float64
	w.Pool.Each(func(e *entity.Entity) {
		if e.Arch == entity.ArchPlayer && e.Alive() {
			sum += e.Health.Current
		}
	})
	return sum
}

// Tick runs the scheduler, then the per-entity hooks.
func (w *World) Tick(in core.InputFrame, dt float64) {
	w.messages = w.messages[:0]
	w.sched.Tick(in, dt)
	w.table.Update(w, w.Pool, dt)
	w.Now += dt

	if st := w.sched.State(); st != w.last {
		if st.Terminal() {
			w.messages = append(w.messages, st.String())
			w.log.Info("battle over", "result", st, "seconds", fmt.Sprintf("%.1f", w.Now), "party_health", w.PartyHealth())
		}
		w.last = st
	}
}
