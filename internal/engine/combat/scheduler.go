package combat

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
)

// UXState is the battle input mode.
type UXState int

const (
	UXNil UXState = iota
	UXDefault
	UXCommand
	UXAttack
	UXMagic
	UXItems
	UXWin
	UXLose
)

var uxNames = []string{"nil", "default", "command", "attack", "magic", "items", "win", "lose"}

// String returns the state's name.
func (s UXState) String() string {
	if s < 0 || int(s) >= len(uxNames) {
		return "unknown"
	}
	return uxNames[s]
}

// ParseUXState is the inverse of String. Unknown names map to UXNil.
func ParseUXState(s string) UXState {
	for i, n := range uxNames {
		if n == s {
			return UXState(i)
		}
	}
	return UXNil
}

// Terminal reports whether the battle is over.
func (s UXState) Terminal() bool {
	return s == UXWin || s == UXLose
}

// Command is an entry of the player command menu.
type Command int

const (
	CommandAttack Command = iota
	CommandMagic
	CommandItems
	CommandDefend

	numCommands
)

var commandNames = [numCommands]string{"Attack", "Magic", "Items", "Defend"}

// String returns the menu label.
func (c Command) String() string {
	if c < 0 || c >= numCommands {
		return "?"
	}
	return commandNames[c]
}

// Commands lists the command menu in display order.
func Commands() []Command {
	return []Command{CommandAttack, CommandMagic, CommandItems, CommandDefend}
}

// StateDefending is set in Entity.State while a player is defending.
const StateDefending = 1

// MaxLogLines bounds the battle log.
const MaxLogLines = 8

// NoHandle marks an empty selection.
const NoHandle entity.Handle = -1

// Options configures a Scheduler.
type Options struct {
	Attack        string         // player basic attack action
	Defend        string         // player defend action
	MonsterAttack string         // action used by every monster
	Items         map[string]int // starting inventory per item action
	Logger        *log.Logger
}

// Scheduler runs the time-bar battle over the combatants in a pool.
//
// Every combatant's time bar fills at its rate. The first idle player with
// a full bar (ascending slot order, wrapping after the last actor) takes the
// command menu; monsters with a full bar act immediately on a random living
// player.
type Scheduler struct {
	pool *entity.Pool
	lib  *Library
	rng  *rand.Rand
	log  *log.Logger
	opts Options

	state     UXState
	menu      int
	sub       int
	selected  entity.Handle
	target    entity.Handle
	lastActor entity.Handle

	numPlayers  int
	numMonsters int

	items    map[string]int
	messages []string
}

// NewScheduler creates a scheduler over the players and monsters already
// placed in pool.
func NewScheduler(pool *entity.Pool, lib *Library, rng *rand.Rand, opts Options) *Scheduler {
	s := &Scheduler{
		pool:      pool,
		lib:       lib,
		rng:       rng,
		log:       opts.Logger,
		opts:      opts,
		state:     UXDefault,
		selected:  NoHandle,
		target:    NoHandle,
		lastActor: NoHandle,
		items:     make(map[string]int, len(opts.Items)),
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	for k, v := range opts.Items {
		s.items[k] = v
	}
	s.recount()
	return s
}

func (s *Scheduler) recount() {
	s.numPlayers, s.numMonsters = 0, 0
	s.pool.Each(func(e *entity.Entity) {
		switch e.Arch {
		case entity.ArchPlayer:
			s.numPlayers++
		case entity.ArchMonster:
			s.numMonsters++
		}
	})
}

// State returns the current UX state.
func (s *Scheduler) State() UXState { return s.state }

// Selected returns the acting player, or nil.
func (s *Scheduler) Selected() *entity.Entity { return s.pool.Get(s.selected) }

// Target returns the targeted entity, or nil.
func (s *Scheduler) Target() *entity.Entity { return s.pool.Get(s.target) }

// Menu returns the command cursor.
func (s *Scheduler) Menu() Command { return Command(s.menu) }

// SubIndex returns the cursor inside the magic or item submenu.
func (s *Scheduler) SubIndex() int { return s.sub }

// Living returns the number of living players and monsters.
func (s *Scheduler) Living() (players, monsters int) { return s.numPlayers, s.numMonsters }

// Items returns the remaining count of an item.
func (s *Scheduler) Items(name string) int { return s.items[name] }

// Stock returns a copy of the remaining inventory.
func (s *Scheduler) Stock() map[string]int {
	out := make(map[string]int, len(s.items))
	for k, v := range s.items {
		out[k] = v
	}
	return out
}

// Resume re-reads the pool after it was replaced wholesale, as on a
// snapshot load. The selection is dropped; a ready player takes the menu
// on the next tick.
func (s *Scheduler) Resume(state UXState, items map[string]int) {
	s.recount()
	s.items = make(map[string]int, len(items))
	for k, v := range items {
		s.items[k] = v
	}
	s.selected, s.target, s.lastActor = NoHandle, NoHandle, NoHandle
	s.menu, s.sub = 0, 0
	s.state = UXDefault
	if state.Terminal() {
		s.state = state
	}
}

// Log returns the battle log, oldest first.
func (s *Scheduler) Log() []string {
	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Scheduler) logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.messages = append(s.messages, msg)
	if len(s.messages) > MaxLogLines {
		s.messages = s.messages[len(s.messages)-MaxLogLines:]
	}
	s.log.Debug("battle", "msg", msg, "state", s.state)
}

// Spells lists the magic actions in submenu order.
func (s *Scheduler) Spells() []Action { return s.lib.ByKind(KindMagic) }

// Usable lists the item actions that are still in stock.
func (s *Scheduler) Usable() []Action {
	var out []Action
	for _, a := range s.lib.ByKind(KindItem) {
		if s.items[a.Name] > 0 {
			out = append(out, a)
		}
	}
	return out
}

// Tick advances the battle by dt and applies this frame's input.
func (s *Scheduler) Tick(in core.InputFrame, dt float64) {
	if s.state.Terminal() {
		return
	}

	s.pool.Each(func(e *entity.Entity) {
		if e.Arch == entity.ArchPlayer || e.Arch == entity.ArchMonster {
			e.Time.Fill(dt)
		}
	})

	s.monsterTurns()
	if s.checkEnd() {
		return
	}

	if s.state == UXDefault {
		if p := s.nextReadyPlayer(); p != nil {
			s.selected = p.Handle
			s.state = UXCommand
			s.menu = 0
			p.State &^= StateDefending
			s.logf("%s is ready", p.Name)
			return
		}
	}

	switch s.state {
	case UXCommand:
		s.handleCommand(in)
	case UXAttack:
		s.handleAttack(in)
	case UXMagic:
		s.handleMagic(in)
	case UXItems:
		s.handleItems(in)
	}

	if s.state != UXDefault && s.Selected() == nil {
		s.state = UXDefault
	}
	s.checkEnd()
}

// nextReadyPlayer scans round-robin from the slot after the last actor for
// a living player with a full time bar.
func (s *Scheduler) nextReadyPlayer() *entity.Entity {
	n := s.pool.Cap()
	start := int(s.lastActor) + 1
	for i := 0; i < n; i++ {
		e := s.pool.Get(entity.Handle((start + i) % n))
		if e != nil && e.Arch == entity.ArchPlayer && e.Alive() && e.Time.Full() {
			return e
		}
	}
	return nil
}

// cycle finds the next living entity of arch from h in direction dir.
// Returns NoHandle once a full pool scan finds nothing.
func (s *Scheduler) cycle(h entity.Handle, dir int, arch entity.Archetype) entity.Handle {
	n := s.pool.Cap()
	i := int(h)
	if i < 0 {
		i = -1
		if dir < 0 {
			i = n
		}
	}
	for steps := 0; steps < n; steps++ {
		i = ((i+dir)%n + n) % n
		if e := s.pool.Get(entity.Handle(i)); e != nil && e.Arch == arch && e.Alive() {
			return e.Handle
		}
	}
	return NoHandle
}

func menuDelta(in core.InputFrame) int {
	switch {
	case in.Has(core.ActionUp), in.Has(core.ActionLeft):
		return -1
	case in.Has(core.ActionDown), in.Has(core.ActionRight):
		return 1
	}
	return 0
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

func (s *Scheduler) handleCommand(in core.InputFrame) {
	s.menu = wrap(s.menu+menuDelta(in), int(numCommands))
	if !in.Has(core.ActionConfirm) {
		return
	}

	switch Command(s.menu) {
	case CommandAttack:
		s.target = s.cycle(NoHandle, 1, entity.ArchMonster)
		if s.target == NoHandle {
			s.state = UXDefault
			return
		}
		s.state = UXAttack
	case CommandMagic:
		if len(s.Spells()) == 0 {
			s.logf("no spells known")
			return
		}
		s.target = s.cycle(NoHandle, 1, entity.ArchMonster)
		if s.target == NoHandle {
			s.state = UXDefault
			return
		}
		s.sub = 0
		s.state = UXMagic
	case CommandItems:
		if len(s.Usable()) == 0 {
			s.logf("no items left")
			return
		}
		s.sub = 0
		s.state = UXItems
	case CommandDefend:
		actor := s.Selected()
		act, _ := s.lib.Get(s.opts.Defend)
		actor.State |= StateDefending
		s.logf("%s defends", actor.Name)
		s.finishTurn(actor, act)
	}
}

func (s *Scheduler) handleAttack(in core.InputFrame) {
	if in.Has(core.ActionBack) {
		s.state = UXCommand
		return
	}
	if d := menuDelta(in); d != 0 {
		s.target = s.cycle(s.target, d, entity.ArchMonster)
	}
	tgt := s.Target()
	if tgt == nil {
		s.state = UXDefault
		return
	}
	if !in.Has(core.ActionConfirm) {
		return
	}
	act, ok := s.lib.Get(s.opts.Attack)
	if !ok {
		s.logf("unknown attack %q", s.opts.Attack)
		s.state = UXDefault
		return
	}
	actor := s.Selected()
	s.strike(actor, tgt, act)
	s.finishTurn(actor, act)
}

func (s *Scheduler) handleMagic(in core.InputFrame) {
	if in.Has(core.ActionBack) {
		s.state = UXCommand
		return
	}
	spells := s.Spells()
	switch {
	case in.Has(core.ActionUp):
		s.sub = wrap(s.sub-1, len(spells))
	case in.Has(core.ActionDown):
		s.sub = wrap(s.sub+1, len(spells))
	case in.Has(core.ActionLeft):
		s.target = s.cycle(s.target, -1, entity.ArchMonster)
	case in.Has(core.ActionRight):
		s.target = s.cycle(s.target, 1, entity.ArchMonster)
	}
	tgt := s.Target()
	if tgt == nil {
		s.state = UXDefault
		return
	}
	if !in.Has(core.ActionConfirm) {
		return
	}

	spell := spells[wrap(s.sub, len(spells))]
	actor := s.Selected()
	if actor.Mana.Current < spell.ManaCost {
		s.logf("%s lacks mana for %s", actor.Name, spell.Name)
		return
	}
	actor.Mana.Add(-spell.ManaCost)
	s.strike(actor, tgt, spell)
	s.finishTurn(actor, spell)
}

func (s *Scheduler) handleItems(in core.InputFrame) {
	if in.Has(core.ActionBack) {
		s.state = UXCommand
		return
	}
	items := s.Usable()
	if len(items) == 0 {
		s.state = UXCommand
		return
	}
	s.sub = wrap(s.sub+menuDelta(in), len(items))
	if !in.Has(core.ActionConfirm) {
		return
	}

	item := items[s.sub]
	actor := s.Selected()
	s.items[item.Name]--
	actor.Health.Add(item.Heal)
	actor.Mana.Add(item.Mana)
	switch {
	case item.Mana > 0 && item.Heal > 0:
		s.logf("%s uses %s (+%.0f HP, +%.0f MP)", actor.Name, item.Name, item.Heal, item.Mana)
	case item.Mana > 0:
		s.logf("%s uses %s (+%.0f MP)", actor.Name, item.Name, item.Mana)
	default:
		s.logf("%s uses %s (+%.0f HP)", actor.Name, item.Name, item.Heal)
	}
	s.finishTurn(actor, item)
}

// Apply resolves an action from attacker onto target and returns the
// damage dealt. Target resist for the action's element is subtracted
// flat; defending targets take half.
func Apply(attacker, target *entity.Entity, a Action) float64 {
	d := Damage(attacker.Stats, target.Stats, a) - target.Resists[a.Element]
	if d < 0 {
		d = 0
	}
	if target.State&StateDefending != 0 {
		d /= 2
	}
	if !target.Invincible {
		target.Health.Add(-d)
	}
	attacker.Health.Add(-a.HealthCost)
	return d
}

func (s *Scheduler) strike(attacker, target *entity.Entity, a Action) {
	d := Apply(attacker, target, a)
	s.logf("%s uses %s on %s for %.0f", attacker.Name, a.Name, target.Name, d)
}

// finishTurn consumes the actor's time bar and returns to default.
// A used action costs its TimeCost; a zero cost empties the bar.
func (s *Scheduler) finishTurn(actor *entity.Entity, a Action) {
	ConsumeTime(&actor.Time, a.TimeCost)
	if actor.Arch == entity.ArchPlayer {
		s.lastActor = actor.Handle
		s.selected = NoHandle
		s.target = NoHandle
		s.state = UXDefault
	}
	s.reap()
}

// ConsumeTime applies the time cost rule to a bar.
func ConsumeTime(b *entity.Bar, cost float64) {
	if cost <= 0 {
		b.Current = 0
		return
	}
	b.Current -= cost
	if b.Current < 0 {
		b.Current = 0
	}
}

func (s *Scheduler) monsterTurns() {
	act, ok := s.lib.Get(s.opts.MonsterAttack)
	if !ok {
		return
	}
	s.pool.Each(func(m *entity.Entity) {
		if m.Arch != entity.ArchMonster || !m.Alive() || !m.Time.Full() {
			return
		}
		var living []*entity.Entity
		s.pool.Each(func(p *entity.Entity) {
			if p.Arch == entity.ArchPlayer && p.Alive() {
				living = append(living, p)
			}
		})
		if len(living) == 0 {
			return
		}
		tgt := living[s.rng.Intn(len(living))]
		s.strike(m, tgt, act)
		s.finishTurn(m, act)
	})
}

// reap frees dead combatants and updates the living counts.
func (s *Scheduler) reap() {
	s.pool.Each(func(e *entity.Entity) {
		if e.Arch != entity.ArchPlayer && e.Arch != entity.ArchMonster {
			return
		}
		if e.Invincible || !e.Health.Empty() {
			return
		}
		s.logf("%s falls", e.Name)
		if e.Arch == entity.ArchPlayer {
			s.numPlayers--
		} else {
			s.numMonsters--
		}
		if e.Handle == s.target {
			s.target = NoHandle
		}
		if e.Handle == s.selected {
			s.selected = NoHandle
			s.state = UXDefault
		}
		s.pool.Destroy(e)
	})
}

func (s *Scheduler) checkEnd() bool {
	switch {
	case s.numMonsters <= 0:
		s.state = UXWin
		s.logf("victory")
	case s.numPlayers <= 0:
		s.state = UXLose
		s.logf("defeat")
	default:
		return false
	}
	s.selected, s.target = NoHandle, NoHandle
	return true
}
