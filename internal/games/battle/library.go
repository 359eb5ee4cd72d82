package battle

import (
	"fmt"

	"github.com/vovakirdan/tui-protolab/internal/config"
	"github.com/vovakirdan/tui-protolab/internal/engine/combat"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
)

// BuildLibrary converts configured actions into a combat library.
func BuildLibrary(cfgs []config.ActionConfig) (*combat.Library, error) {
	actions := make([]combat.Action, 0, len(cfgs))
	for _, c := range cfgs {
		a, err := toAction(c)
		if err != nil {
			return nil, fmt.Errorf("battle: action %q: %w", c.Name, err)
		}
		actions = append(actions, a)
	}
	return combat.NewLibrary(actions...)
}

func toAction(c config.ActionConfig) (combat.Action, error) {
	kind, err := combat.ParseKind(c.Kind)
	if err != nil {
		return combat.Action{}, err
	}
	elem, err := combat.ParseElement(c.Element)
	if err != nil {
		return combat.Action{}, err
	}
	scale, err := abilityOrStr(c.ScaleStat)
	if err != nil {
		return combat.Action{}, err
	}
	target, err := abilityOrStr(c.TargetStat)
	if err != nil {
		return combat.Action{}, err
	}
	return combat.Action{
		Name:       c.Name,
		Kind:       kind,
		Element:    elem,
		BaseDamage: c.BaseDamage,
		ScaleStat:  scale,
		TargetStat: target,
		TimeCost:   c.TimeCost,
		ManaCost:   c.ManaCost,
		HealthCost: c.HealthCost,
		Heal:       c.Heal,
		Mana:       c.Mana,
	}, nil
}

// abilityOrStr parses an ability name; empty falls back to str, which only
// matters for actions that deal damage.
func abilityOrStr(s string) (combat.AbilityScore, error) {
	if s == "" {
		return entity.StatStr, nil
	}
	return combat.ParseAbility(s)
}

func statBlock(m map[string]float64) (entity.StatBlock, error) {
	var b entity.StatBlock
	for k, v := range m {
		a, err := combat.ParseAbility(k)
		if err != nil {
			return b, err
		}
		b[a] = v
	}
	return b, nil
}

func resistBlock(m map[string]float64) (entity.ResistBlock, error) {
	var b entity.ResistBlock
	for k, v := range m {
		e, err := combat.ParseElement(k)
		if err != nil {
			return b, err
		}
		b[e] = v
	}
	return b, nil
}

// validate checks that every command names a library action of the right
// kind and that every combatant's blocks parse.
func validate(cfg config.BattleConfig, lib *combat.Library) error {
	commands := []struct {
		field, name string
		kind        combat.Kind
	}{
		{"attack", cfg.Commands.Attack, combat.KindAttack},
		{"defend", cfg.Commands.Defend, combat.KindDefend},
		{"monster_attack", cfg.Commands.MonsterAttack, combat.KindAttack},
	}
	for _, c := range commands {
		a, ok := lib.Get(c.name)
		if !ok {
			return fmt.Errorf("battle: commands.%s: unknown action %q", c.field, c.name)
		}
		if a.Kind != c.kind {
			return fmt.Errorf("battle: commands.%s: %q is %s, expected %s", c.field, c.name, a.Kind, c.kind)
		}
	}
	for name := range cfg.Items {
		if a, ok := lib.Get(name); !ok || a.Kind != combat.KindItem {
			return fmt.Errorf("battle: items: %q is not an item action", name)
		}
	}
	if len(cfg.Party) == 0 || len(cfg.Monsters) == 0 {
		return fmt.Errorf("battle: need at least one party member and one monster")
	}
	for _, c := range append(append([]config.CombatantConfig(nil), cfg.Party...), cfg.Monsters...) {
		if _, err := statBlock(c.Stats); err != nil {
			return fmt.Errorf("battle: %s stats: %w", c.Name, err)
		}
		if _, err := resistBlock(c.Resists); err != nil {
			return fmt.Errorf("battle: %s resists: %w", c.Name, err)
		}
	}
	return nil
}
