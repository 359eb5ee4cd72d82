// Package combat implements the time-bar battle scheduler: action
// definitions, the damage formula and the UX state machine that decides
// whose turn it is.
package combat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
)

// AbilityScore and Element are the keys of an entity's stat and resist
// blocks.
type (
	AbilityScore = entity.AbilityScore
	Element      = entity.Element
)

var abilityNames = [entity.NumAbilityScores]string{"str", "dex", "con", "int", "wis", "cha"}

var elementNames = [entity.NumElements]string{"physical", "fire", "ice", "lightning", "holy", "dark"}

// ParseAbility maps a short ability name ("str", "con", ...) to its score.
func ParseAbility(s string) (AbilityScore, error) {
	for i, n := range abilityNames {
		if strings.EqualFold(n, s) {
			return AbilityScore(i), nil
		}
	}
	return 0, fmt.Errorf("combat: unknown ability score %q", s)
}

// AbilityName is the inverse of ParseAbility.
func AbilityName(a AbilityScore) string {
	if a < 0 || a >= entity.NumAbilityScores {
		return "?"
	}
	return abilityNames[a]
}

// ParseElement maps an element name to its value. Empty means physical.
func ParseElement(s string) (Element, error) {
	if s == "" {
		return entity.ElementPhysical, nil
	}
	for i, n := range elementNames {
		if strings.EqualFold(n, s) {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("combat: unknown element %q", s)
}

// ElementName is the inverse of ParseElement.
func ElementName(e Element) string {
	if e < 0 || e >= entity.NumElements {
		return "?"
	}
	return elementNames[e]
}

// Kind classifies an action and picks the command menu it lives under.
type Kind int

const (
	KindAttack Kind = iota
	KindMagic
	KindItem
	KindDefend
)

var kindNames = []string{"attack", "magic", "item", "defend"}

// String returns the kind's config name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a config name to a Kind.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, s) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("combat: unknown action kind %q", s)
}

// Action is an immutable combat move.
type Action struct {
	Name       string
	Kind       Kind
	Element    Element
	BaseDamage float64
	ScaleStat  AbilityScore
	TargetStat AbilityScore
	TimeCost   float64
	ManaCost   float64
	HealthCost float64
	Heal       float64 // items and self-targeted magic
	Mana       float64 // mana restored by items
}

// Damage is the pure damage formula:
// base + attacker[scale] - target[target], floored at zero so a weak
// attack never heals.
func Damage(attacker, target entity.StatBlock, a Action) float64 {
	d := a.BaseDamage + attacker[a.ScaleStat] - target[a.TargetStat]
	if d < 0 {
		return 0
	}
	return d
}

// Library holds actions keyed by name.
type Library struct {
	actions map[string]Action
}

// NewLibrary builds a library from a list of actions. Duplicate names are
// rejected.
func NewLibrary(actions ...Action) (*Library, error) {
	l := &Library{actions: make(map[string]Action, len(actions))}
	for _, a := range actions {
		if a.Name == "" {
			return nil, fmt.Errorf("combat: action without a name")
		}
		if _, dup := l.actions[a.Name]; dup {
			return nil, fmt.Errorf("combat: duplicate action %q", a.Name)
		}
		l.actions[a.Name] = a
	}
	return l, nil
}

// Get looks up an action.
func (l *Library) Get(name string) (Action, bool) {
	a, ok := l.actions[name]
	return a, ok
}

// ByKind returns the actions of a kind sorted by name.
func (l *Library) ByKind(k Kind) []Action {
	var out []Action
	for _, a := range l.actions {
		if a.Kind == k {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of actions.
func (l *Library) Len() int {
	return len(l.actions)
}
