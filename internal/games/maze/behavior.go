package maze

import (
	"math"

	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/collide"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
)

// Sprite names.
const (
	SpritePlayer  core.Sprite = "player"
	SpriteMonster core.Sprite = "monster"
	SpriteSword   core.Sprite = "sword"
)

var sheet = core.NewSpriteSheet('?', map[core.Sprite]rune{
	SpritePlayer:  '@',
	SpriteMonster: 'M',
	SpriteSword:   '†',
})

func newTable() entity.Table[*World] {
	var t entity.Table[*World]
	t[entity.ArchPlayer] = entity.Behavior[*World]{Setup: setupPlayer, Update: updatePlayer, Render: renderSprite}
	t[entity.ArchMonster] = entity.Behavior[*World]{Setup: setupMonster, Update: updateMonster, Render: renderSprite}
	t[entity.ArchPowerup] = entity.Behavior[*World]{Setup: setupSword, Render: renderSprite}
	t[entity.ArchTerrain] = entity.Behavior[*World]{Setup: setupWall, Render: renderWall}
	return t
}

func setupPlayer(w *World, e *entity.Entity) {
	c := w.cfg.Player
	e.Name = "player"
	e.IsSprite = true
	e.Sprite = SpritePlayer
	e.Size = core.V2(c.Size, c.Size)
	e.Collider = entity.ColliderRect
	e.Speed = c.Speed
	e.Tint = core.Opaque(core.ColorBrightWhite)
}

func setupMonster(w *World, e *entity.Entity) {
	c := w.cfg.Monster
	e.Name = "monster"
	e.IsSprite = true
	e.Sprite = SpriteMonster
	e.Size = core.V2(c.Size, c.Size)
	e.Collider = entity.ColliderRect
	e.Speed = c.Speed
	e.Tint = core.Opaque(core.ColorBrightRed)
}

func setupSword(w *World, e *entity.Entity) {
	c := w.cfg.Sword
	e.Name = "sword"
	e.IsSprite = true
	e.Sprite = SpriteSword
	e.Size = core.V2(c.Size, c.Size)
	e.Collider = entity.ColliderRect
	e.Tint = core.Opaque(core.ColorBrightYellow)
}

func setupWall(w *World, e *entity.Entity) {
	e.Collider = entity.ColliderRect
	e.Static = true
	e.IsLine = true
	e.Tint = core.Opaque(core.ColorGray)
}

// updatePlayer slides along walls, moves, then resolves contact with the
// sword and the monster.
func updatePlayer(w *World, e *entity.Entity, dt float64) {
	w.slide(e, dt)
	e.Integrate(dt)

	if s := w.frame.sword; s != nil && w.UX == UXDefault && collide.Collides(e, s) {
		w.UX = UXSword
		s.Tint.Alpha = 0
		w.notef("sword found", "seconds", w.Elapsed)
	}
	m := w.frame.monster
	if m == nil || !collide.Collides(e, m) {
		return
	}
	switch w.UX {
	case UXSword:
		w.UX = UXWin
		m.Tint.Alpha = 0
		w.notef("monster slain", "seconds", w.Elapsed)
	case UXDefault:
		w.UX = UXLose
		w.notef("caught by the monster", "seconds", w.Elapsed)
	}
}

// quarter turns the monster may take when it has stopped.
var turns = [3]float64{math.Pi / 2, 3 * math.Pi / 2, 0}

// updateMonster wanders: a stopped monster faces +x and turns by a random
// quarter (or keeps heading). Probes along the four axes measure the open
// corridor; a pick that faces a wall closer than one tile is swapped for
// an open axis when one exists.
func updateMonster(w *World, e *entity.Entity, dt float64) {
	tile := w.cfg.Grid.Tile
	reach := tile * w.cfg.Monster.ProbeTiles
	for i := range w.Probes {
		ray := core.V2(reach, 0).Rotate(float64(i) * math.Pi / 2)
		w.Probes[i] = w.probe(e, ray)
	}

	if e.Move.IsZero() {
		dir := core.V2(1, 0).Rotate(turns[w.rng.Intn(len(turns))])
		if w.Probes[axisOf(dir)] < tile {
			for _, i := range w.rng.Perm(4) {
				if w.Probes[i] >= tile {
					dir = core.V2(1, 0).Rotate(float64(i) * math.Pi / 2)
					break
				}
			}
		}
		e.Move = snap(dir)
	}

	w.slide(e, dt)
	e.Integrate(dt)
}

// axisOf maps a unit axis vector to its probe index (+x, +y, -x, -y).
func axisOf(v core.Vec2) int {
	switch {
	case v.X > 0.5:
		return 0
	case v.Y > 0.5:
		return 1
	case v.X < -0.5:
		return 2
	default:
		return 3
	}
}

// snap removes rotation noise so axis moves stay exact.
func snap(v core.Vec2) core.Vec2 {
	return core.V2(math.Round(v.X), math.Round(v.Y)).Normalize()
}
