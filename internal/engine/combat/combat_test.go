package combat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
)

func testLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := NewLibrary(
		Action{Name: "slash", Kind: KindAttack, BaseDamage: 5, ScaleStat: entity.StatStr, TargetStat: entity.StatCon},
		Action{Name: "bite", Kind: KindAttack, BaseDamage: 3, ScaleStat: entity.StatStr, TargetStat: entity.StatCon},
		Action{Name: "guard", Kind: KindDefend, TimeCost: 50},
		Action{Name: "fire", Kind: KindMagic, Element: entity.ElementFire, BaseDamage: 30, ScaleStat: entity.StatInt, TargetStat: entity.StatWis, ManaCost: 10},
		Action{Name: "potion", Kind: KindItem, Heal: 40},
		Action{Name: "ether", Kind: KindItem, Mana: 10},
	)
	require.NoError(t, err)
	return lib
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func addCombatant(p *entity.Pool, arch entity.Archetype, name string, hp, rate float64) *entity.Entity {
	e := p.Create()
	e.Arch = arch
	e.Name = name
	e.Health = entity.NewBar(hp, 0)
	e.Mana = entity.NewBar(20, 0)
	e.Time = entity.Bar{Max: 100, Rate: rate}
	e.Stats[entity.StatStr] = 25
	e.Stats[entity.StatCon] = 10
	return e
}

func TestDamageFormula(t *testing.T) {
	var att, tgt entity.StatBlock
	att[entity.StatStr] = 25
	tgt[entity.StatCon] = 10
	a := Action{BaseDamage: 5, ScaleStat: entity.StatStr, TargetStat: entity.StatCon}

	assert.Equal(t, 20.0, Damage(att, tgt, a))
	assert.Equal(t, 20.0, Damage(att, tgt, a), "formula must be deterministic")

	tgt[entity.StatCon] = 100
	assert.Equal(t, 0.0, Damage(att, tgt, a), "damage never goes negative")
}

func TestApplyResistAndDefend(t *testing.T) {
	att := &entity.Entity{}
	att.Stats[entity.StatStr] = 25
	tgt := &entity.Entity{}
	tgt.Stats[entity.StatCon] = 10
	tgt.Health = entity.NewBar(100, 0)
	a := Action{BaseDamage: 5, Element: entity.ElementFire, ScaleStat: entity.StatDex, TargetStat: entity.StatDex}

	tgt.Resists[entity.ElementFire] = 5
	assert.Equal(t, 0.0, Apply(att, tgt, a), "5 base - 0 con - 5 resist")

	a.ScaleStat = entity.StatStr
	a.TargetStat = entity.StatCon
	tgt.State = StateDefending
	assert.Equal(t, 7.5, Apply(att, tgt, a))
	assert.Equal(t, 92.5, tgt.Health.Current)

	tgt.Invincible = true
	Apply(att, tgt, a)
	assert.Equal(t, 92.5, tgt.Health.Current)
}

func TestLibrary(t *testing.T) {
	lib := testLibrary(t)
	_, ok := lib.Get("slash")
	assert.True(t, ok)
	assert.Len(t, lib.ByKind(KindAttack), 2)
	assert.Len(t, lib.ByKind(KindItem), 2)
	assert.Equal(t, "bite", lib.ByKind(KindAttack)[0].Name)

	_, err := NewLibrary(Action{Name: "x"}, Action{Name: "x"})
	assert.Error(t, err)
}

func TestParseNames(t *testing.T) {
	a, err := ParseAbility("CON")
	require.NoError(t, err)
	assert.Equal(t, entity.StatCon, a)
	assert.Equal(t, "con", AbilityName(a))

	e, err := ParseElement("")
	require.NoError(t, err)
	assert.Equal(t, entity.ElementPhysical, e)

	_, err = ParseElement("plasma")
	assert.Error(t, err)

	k, err := ParseKind("magic")
	require.NoError(t, err)
	assert.Equal(t, KindMagic, k)
	assert.Equal(t, UXItems, ParseUXState("items"))
}

func TestConsumeTime(t *testing.T) {
	b := entity.Bar{Max: 100, Current: 100}
	ConsumeTime(&b, 30)
	assert.Equal(t, 70.0, b.Current)
	ConsumeTime(&b, 500)
	assert.Equal(t, 0.0, b.Current)

	b.Current = 100
	ConsumeTime(&b, 0)
	assert.Equal(t, 0.0, b.Current, "zero cost resets the bar")
}

func newBattle(t *testing.T) (*entity.Pool, *Scheduler, *entity.Entity, *entity.Entity, *entity.Entity) {
	t.Helper()
	p := entity.NewPool(16)
	hero := addCombatant(p, entity.ArchPlayer, "Hero", 100, 50)
	mage := addCombatant(p, entity.ArchPlayer, "Mage", 100, 50)
	slime := addCombatant(p, entity.ArchMonster, "Slime", 30, 0)
	s := NewScheduler(p, testLibrary(t), rand.New(rand.NewSource(1)), Options{
		Attack:        "slash",
		Defend:        "guard",
		MonsterAttack: "bite",
		Items:         map[string]int{"potion": 1},
	})
	return p, s, hero, mage, slime
}

func TestSchedulerSingleSelection(t *testing.T) {
	_, s, hero, mage, _ := newBattle(t)

	// both players fill on the same tick
	s.Tick(core.NewInputFrame(), 2)
	require.True(t, hero.Time.Full())
	require.True(t, mage.Time.Full())

	assert.Equal(t, UXCommand, s.State())
	require.NotNil(t, s.Selected())
	assert.Equal(t, hero.Handle, s.Selected().Handle, "lowest slot wins")

	// another tick keeps the same actor
	s.Tick(core.NewInputFrame(), 1)
	assert.Equal(t, hero.Handle, s.Selected().Handle)
}

func TestSchedulerAttackFlow(t *testing.T) {
	p, s, hero, mage, slime := newBattle(t)
	slimeH := slime.Handle
	s.Tick(core.NewInputFrame(), 2)

	s.Tick(press(core.ActionConfirm), 0)
	require.Equal(t, UXAttack, s.State())
	assert.Equal(t, slime.Handle, s.Target().Handle)

	s.Tick(press(core.ActionConfirm), 0)
	assert.Equal(t, 10.0, slime.Health.Current, "30 - (5 + 25 - 10)")
	assert.Equal(t, UXDefault, s.State())
	assert.Equal(t, 0.0, hero.Time.Current, "zero time cost resets the bar")

	// round robin: the mage is next even though it is a higher slot
	s.Tick(core.NewInputFrame(), 0)
	require.Equal(t, UXCommand, s.State())
	assert.Equal(t, mage.Handle, s.Selected().Handle)

	s.Tick(press(core.ActionConfirm), 0)
	s.Tick(press(core.ActionConfirm), 0)
	assert.Equal(t, UXWin, s.State())
	assert.Nil(t, p.Get(slimeH), "dead monster is freed")
	assert.Zero(t, *slime, "freed slot is zeroed")
	_, monsters := s.Living()
	assert.Equal(t, 0, monsters)
}

func TestSchedulerMenuCycling(t *testing.T) {
	_, s, _, _, _ := newBattle(t)
	s.Tick(core.NewInputFrame(), 2)

	s.Tick(press(core.ActionDown), 0)
	assert.Equal(t, CommandMagic, s.Menu())
	s.Tick(press(core.ActionUp), 0)
	s.Tick(press(core.ActionUp), 0)
	assert.Equal(t, CommandDefend, s.Menu(), "cursor wraps")
}

func TestSchedulerMagicNeedsMana(t *testing.T) {
	_, s, hero, _, slime := newBattle(t)
	hero.Mana.Current = 5
	hero.Stats[entity.StatInt] = 0
	s.Tick(core.NewInputFrame(), 2)

	s.Tick(press(core.ActionDown), 0)
	s.Tick(press(core.ActionConfirm), 0)
	require.Equal(t, UXMagic, s.State())

	s.Tick(press(core.ActionConfirm), 0)
	assert.Equal(t, UXMagic, s.State(), "not enough mana keeps the submenu open")
	assert.Equal(t, 30.0, slime.Health.Current)

	hero.Mana.Current = 20
	s.Tick(press(core.ActionConfirm), 0)
	assert.Equal(t, UXWin, s.State())
	assert.Equal(t, 10.0, hero.Mana.Current)
}

func TestSchedulerItemsAndBack(t *testing.T) {
	_, s, hero, _, _ := newBattle(t)
	hero.Health.Current = 50
	s.Tick(core.NewInputFrame(), 2)

	s.Tick(press(core.ActionDown), 0)
	s.Tick(press(core.ActionDown), 0)
	s.Tick(press(core.ActionConfirm), 0)
	require.Equal(t, UXItems, s.State())

	s.Tick(press(core.ActionBack), 0)
	require.Equal(t, UXCommand, s.State())

	s.Tick(press(core.ActionConfirm), 0)
	s.Tick(press(core.ActionConfirm), 0)
	assert.Equal(t, 90.0, hero.Health.Current)
	assert.Equal(t, 0, s.Items("potion"))
	assert.Equal(t, UXDefault, s.State())
}

func TestSchedulerItemRestoresMana(t *testing.T) {
	p := entity.NewPool(4)
	hero := addCombatant(p, entity.ArchPlayer, "Hero", 100, 50)
	addCombatant(p, entity.ArchMonster, "Slime", 30, 0)
	s := NewScheduler(p, testLibrary(t), rand.New(rand.NewSource(1)), Options{
		Attack: "slash",
		Items:  map[string]int{"ether": 1},
	})
	hero.Health.Current = 50
	hero.Mana.Current = 5
	s.Tick(core.NewInputFrame(), 2)

	s.Tick(press(core.ActionDown), 0)
	s.Tick(press(core.ActionDown), 0)
	s.Tick(press(core.ActionConfirm), 0)
	require.Equal(t, UXItems, s.State())
	s.Tick(press(core.ActionConfirm), 0)

	assert.Equal(t, 15.0, hero.Mana.Current)
	assert.Equal(t, 50.0, hero.Health.Current, "ether does not heal")
	assert.Zero(t, s.Items("ether"))
	assert.Contains(t, s.Log()[len(s.Log())-1], "+10 MP")
}

func TestSchedulerDefendHalvesMonsterDamage(t *testing.T) {
	_, s, hero, mage, slime := newBattle(t)
	mage.Time.Rate = 0
	s.Tick(core.NewInputFrame(), 2)

	s.Tick(press(core.ActionUp), 0)
	require.Equal(t, CommandDefend, s.Menu())
	s.Tick(press(core.ActionConfirm), 0)
	assert.Equal(t, UXDefault, s.State())
	assert.Equal(t, 50.0, hero.Time.Current, "defend costs 50 time")

	// only the hero is alive and targetable; make the slime act
	mage.Health.Current = 0
	mage.Invincible = false
	slime.Time.Rate = 1000
	hero.Time.Rate = 0
	s.Tick(core.NewInputFrame(), 1)
	// bite: 3 + 25 - 10 = 18, halved
	assert.Equal(t, 91.0, hero.Health.Current)
}

func TestSchedulerLose(t *testing.T) {
	p := entity.NewPool(4)
	hero := addCombatant(p, entity.ArchPlayer, "Hero", 10, 0)
	heroH := hero.Handle
	addCombatant(p, entity.ArchMonster, "Ogre", 100, 200)
	s := NewScheduler(p, testLibrary(t), rand.New(rand.NewSource(2)), Options{MonsterAttack: "bite"})

	s.Tick(core.NewInputFrame(), 1)
	assert.Equal(t, UXLose, s.State())
	assert.Nil(t, p.Get(heroH))
	assert.NotEmpty(t, s.Log())

	// terminal states ignore further ticks
	s.Tick(press(core.ActionConfirm), 1)
	assert.Equal(t, UXLose, s.State())
}

func TestSchedulerResume(t *testing.T) {
	pool, s, _, mage, _ := newBattle(t)
	stock := s.Stock()
	stock["potion"] = 0
	assert.Equal(t, 1, s.Items("potion"), "Stock returns a copy")

	pool.Destroy(mage)
	s.Resume(UXCommand, stock)
	assert.Equal(t, UXDefault, s.State(), "non-terminal states resume at default")
	assert.Nil(t, s.Selected())
	assert.Zero(t, s.Items("potion"))
	players, monsters := s.Living()
	assert.Equal(t, 1, players)
	assert.Equal(t, 1, monsters)

	s.Resume(UXWin, nil)
	assert.Equal(t, UXWin, s.State())
}
