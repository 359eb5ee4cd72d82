package battle

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-protolab/internal/config"
	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/combat"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
)

const dt = 0.1

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func newWorld(t *testing.T, cfg config.BattleConfig) *World {
	t.Helper()
	w, err := NewWorld(cfg, 1, nil)
	require.NoError(t, err)
	w.Setup()
	return w
}

// tickUntil steps with in until the scheduler reaches want.
func tickUntil(t *testing.T, w *World, in core.InputFrame, want combat.UXState) {
	t.Helper()
	for i := 0; i < 2000; i++ {
		if w.sched.State() == want {
			return
		}
		w.Tick(in, dt)
	}
	t.Fatalf("state %s never reached, stuck in %s", want, w.sched.State())
}

func TestBuildLibraryFromDefaults(t *testing.T) {
	lib, err := BuildLibrary(config.DefaultBattleConfig().Actions)
	require.NoError(t, err)
	assert.Equal(t, 8, lib.Len())

	fire, ok := lib.Get("Fire")
	require.True(t, ok)
	assert.Equal(t, combat.KindMagic, fire.Kind)
	assert.Equal(t, entity.ElementFire, fire.Element)
	assert.Equal(t, entity.StatInt, fire.ScaleStat)
	assert.Equal(t, entity.StatWis, fire.TargetStat)
	assert.Equal(t, 8.0, fire.ManaCost)
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *config.BattleConfig)
	}{
		{"unknown kind", func(c *config.BattleConfig) { c.Actions[0].Kind = "dance" }},
		{"unknown element", func(c *config.BattleConfig) { c.Actions[0].Element = "wood" }},
		{"unknown stat", func(c *config.BattleConfig) { c.Actions[0].ScaleStat = "luck" }},
		{"duplicate action", func(c *config.BattleConfig) { c.Actions = append(c.Actions, c.Actions[0]) }},
		{"missing attack", func(c *config.BattleConfig) { c.Commands.Attack = "Punch" }},
		{"defend is not an attack", func(c *config.BattleConfig) { c.Commands.Attack = "Guard" }},
		{"item is not an item", func(c *config.BattleConfig) { c.Items["Fire"] = 1 }},
		{"bad resist", func(c *config.BattleConfig) { c.Party[0].Resists = map[string]float64{"wood": 1} }},
		{"no monsters", func(c *config.BattleConfig) { c.Monsters = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultBattleConfig()
			tt.modify(&cfg)
			_, err := NewWorld(cfg, 1, nil)
			assert.Error(t, err)
		})
	}
}

func TestSetup(t *testing.T) {
	w := newWorld(t, config.DefaultBattleConfig())

	assert.Equal(t, 3, w.Pool.CountArch(entity.ArchPlayer))
	assert.Equal(t, 3, w.Pool.CountArch(entity.ArchMonster))
	require.NotNil(t, w.Cursor())
	assert.False(t, w.Cursor().Tint.Visible())

	knight := w.Pool.First(entity.ArchPlayer)
	require.NotNil(t, knight)
	assert.Equal(t, "Knight", knight.Name)
	assert.Equal(t, 25.0, knight.Stats[entity.StatStr])
	assert.Equal(t, 2.0, knight.Resists[entity.ElementPhysical])
	assert.Equal(t, 120.0, knight.Health.Current)
	assert.Equal(t, 30.0, knight.Time.Rate)
	assert.Zero(t, knight.Time.Current)

	assert.Equal(t, 3, w.sched.Items("Potion"))
	assert.Equal(t, 2, w.sched.Items("Ether"))
}

func TestPartyCapped(t *testing.T) {
	cfg := config.DefaultBattleConfig()
	cfg.Party = append(cfg.Party, cfg.Party...)
	w := newWorld(t, cfg)
	assert.Equal(t, MaxParty, w.Pool.CountArch(entity.ArchPlayer))
}

func soloConfig() config.BattleConfig {
	cfg := config.DefaultBattleConfig()
	cfg.Party = cfg.Party[:1]       // Knight
	cfg.Monsters = cfg.Monsters[:1] // Goblin
	return cfg
}

func TestWinScoresPartyHealth(t *testing.T) {
	cfg := soloConfig()
	cfg.Party[0].Invincible = true
	g := &Game{world: newWorld(t, cfg)}

	confirm := press(core.ActionConfirm)
	for i := 0; i < 2000 && !g.State().GameOver; i++ {
		g.Step(confirm, dt)
	}

	st := g.State()
	require.True(t, st.GameOver)
	assert.Equal(t, core.OutcomeWin, st.Outcome)
	assert.Equal(t, 120, st.Score)
	assert.Equal(t, 0, g.world.Pool.CountArch(entity.ArchMonster), "dead monsters are freed")
	assert.Contains(t, g.world.sched.Log(), "victory")
}

func TestLoseWhenPartyFalls(t *testing.T) {
	cfg := config.DefaultBattleConfig()
	cfg.Party = []config.CombatantConfig{cfg.Party[1]} // Mage
	cfg.Party[0].Health = 10
	cfg.Monsters = []config.CombatantConfig{cfg.Monsters[1]} // Wolf
	cfg.Monsters[0].Invincible = true
	g := &Game{world: newWorld(t, cfg)}

	var msgs []string
	for i := 0; i < 2000 && !g.State().GameOver; i++ {
		res := g.Step(core.NewInputFrame(), dt)
		msgs = append(msgs, res.Messages...)
	}

	st := g.State()
	require.True(t, st.GameOver)
	assert.Equal(t, core.OutcomeLose, st.Outcome)
	assert.Zero(t, st.Score)
	assert.Contains(t, msgs, "lose")
	assert.Nil(t, g.world.sched.Selected())
}

func TestCursorPulses(t *testing.T) {
	// sin(6t) is positive just after 0 and negative just after pi/6
	assert.Equal(t, "▶", cursorGlyph(0.1))
	assert.Equal(t, "▷", cursorGlyph(0.7))
	assert.Equal(t, "▶", cursorGlyph(0.1+2*math.Pi/cursorPulse), "periodic")
}

func TestCursorFollowsSelection(t *testing.T) {
	w := newWorld(t, config.DefaultBattleConfig())
	tickUntil(t, w, core.NewInputFrame(), combat.UXCommand)

	sel := w.sched.Selected()
	require.NotNil(t, sel)
	cursor := w.Cursor()
	assert.True(t, cursor.Tint.Visible())
	assert.Equal(t, sel.Pos.Sub(core.V2(2, 0)), cursor.Pos)

	w.Tick(press(core.ActionConfirm), dt)
	require.Equal(t, combat.UXAttack, w.sched.State())
	tgt := w.sched.Target()
	require.NotNil(t, tgt)
	assert.Equal(t, entity.ArchMonster, tgt.Arch)
	assert.Equal(t, tgt.Pos.Sub(core.V2(2, 0)), cursor.Pos)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.plab")
	g := &Game{runtime: core.RuntimeConfig{SnapshotPath: path}, world: newWorld(t, config.DefaultBattleConfig())}
	tickUntil(t, g.world, core.NewInputFrame(), combat.UXCommand)

	res := g.Step(press(core.ActionSave), 0)
	require.Contains(t, res.Messages, "saved")
	goblin := g.world.Pool.First(entity.ArchMonster)
	hp := goblin.Health.Current

	goblin.Health.Current = 1
	g.world.Pool.Destroy(g.world.Cursor())

	res = g.Step(press(core.ActionLoad), 0)
	require.Contains(t, res.Messages, "loaded")
	assert.Equal(t, hp, g.world.Pool.First(entity.ArchMonster).Health.Current)
	assert.NotNil(t, g.world.Cursor())
	assert.Equal(t, 3, g.world.sched.Items("Potion"))
	_, monsters := g.world.sched.Living()
	assert.Equal(t, 3, monsters)
}

func TestRender(t *testing.T) {
	w := newWorld(t, config.DefaultBattleConfig())
	tickUntil(t, w, core.NewInputFrame(), combat.UXCommand)

	dl := core.NewDrawList()
	w.Render(dl)
	screen := core.NewScreen(80, 24)
	dl.Flush(screen)

	out := screen.String()
	for _, want := range []string{"Knight", "Mage", "Cleric", "Goblin", "Wolf", "Ogre", "> Attack", "Magic", "HP"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, cursorGlyph(w.Now))
}
