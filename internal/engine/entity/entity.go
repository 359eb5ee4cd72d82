// Package entity holds the fixed-capacity entity pool every prototype
// simulates on, plus the archetype dispatch table that drives per-entity
// setup, update and render.
package entity

import "github.com/vovakirdan/tui-protolab/internal/core"

// Archetype tags an entity's role and selects its behavior.
type Archetype int

const (
	ArchNil Archetype = iota
	ArchPlayer
	ArchMonster
	ArchTerrain
	ArchWeapon
	ArchPickup
	ArchCursor
	ArchTarget
	ArchText
	ArchCitizen
	ArchPowerup

	NumArchetypes
)

var archNames = [NumArchetypes]string{
	"nil", "player", "monster", "terrain", "weapon", "pickup",
	"cursor", "target", "text", "citizen", "powerup",
}

// String returns the archetype's lowercase name.
func (a Archetype) String() string {
	if a < 0 || a >= NumArchetypes {
		return "unknown"
	}
	return archNames[a]
}

// ParseArchetype is the inverse of String. Unknown names map to ArchNil.
func ParseArchetype(s string) Archetype {
	for i, n := range archNames {
		if n == s {
			return Archetype(i)
		}
	}
	return ArchNil
}

// Collider selects the collision shape.
type Collider int

const (
	ColliderNone Collider = iota
	ColliderPoint
	ColliderLine
	ColliderRect
)

// Handle is the slot index of an entity inside its pool.
type Handle int

// AbilityScore indexes a StatBlock.
type AbilityScore int

const (
	StatStr AbilityScore = iota
	StatDex
	StatCon
	StatInt
	StatWis
	StatCha

	NumAbilityScores
)

// Element indexes a ResistBlock.
type Element int

const (
	ElementPhysical Element = iota
	ElementFire
	ElementIce
	ElementLightning
	ElementHoly
	ElementDark

	NumElements
)

// StatBlock holds one value per ability score.
type StatBlock [NumAbilityScores]float64

// ResistBlock holds a flat damage reduction per element.
type ResistBlock [NumElements]float64

// Body is the spatial and collision state.
//
// Rect colliders occupy [Pos, Pos+Size). Line colliders start at Pos, run
// Size.X units along Angle (degrees) and are Size.Y thick.
type Body struct {
	Pos      core.Vec2
	Size     core.Vec2
	Angle    float64
	Move     core.Vec2 // unit direction
	Speed    float64   // units per second
	Collider Collider
	Static   bool
}

// Look is the visual state.
type Look struct {
	Tint     core.Tint
	Sprite   core.Sprite
	IsSprite bool
	IsLine   bool
	Glyph    rune // rect fill; zero shades by alpha
}

// Vitals is the combat state used by the battle and survivors prototypes.
type Vitals struct {
	Health     Bar
	Mana       Bar
	Time       Bar
	Experience Bar
	Stats      StatBlock
	Resists    ResistBlock
	Invincible bool
}

// Entity is the universal simulation unit. A slot whose Valid flag is false
// carries no meaning in any other field.
type Entity struct {
	Valid  bool
	Handle Handle
	Arch   Archetype
	Name   string

	Body
	Look
	Vitals

	AttachedToPlayer bool
	InputAxis        core.Vec2
	Power            float64 // damage per second, or experience granted
	EndTime          float64 // world time after which the entity expires; 0 = never
	State            int     // archetype-specific sub-state
}

// Mid returns the entity's midpoint.
func (e *Entity) Mid() core.Vec2 {
	switch e.Collider {
	case ColliderLine:
		return e.Pos.Add(core.LineEnd(e.Pos, e.Size.X, e.Angle)).Scale(0.5)
	case ColliderPoint:
		return e.Pos
	default:
		return e.Pos.Add(e.Size.Scale(0.5))
	}
}

// Velocity is Move scaled by Speed.
func (e *Entity) Velocity() core.Vec2 {
	return e.Move.Scale(e.Speed)
}

// Integrate advances Pos by the entity's velocity over dt.
func (e *Entity) Integrate(dt float64) {
	e.Pos = e.Pos.Add(e.Velocity().Scale(dt))
}

// Expired reports whether the entity has an end time that now has passed.
func (e *Entity) Expired(now float64) bool {
	return e.EndTime > 0 && now > e.EndTime
}

// Alive reports whether a combatant is valid with health left.
func (e *Entity) Alive() bool {
	return e.Valid && (e.Invincible || !e.Health.Empty())
}
