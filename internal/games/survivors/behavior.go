package survivors

import (
	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/collide"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
)

// Sprite names.
const (
	SpritePlayer     core.Sprite = "player"
	SpriteMonster    core.Sprite = "monster"
	SpriteExperience core.Sprite = "experience"
)

var sheet = core.NewSpriteSheet('?', map[core.Sprite]rune{
	SpritePlayer:     '@',
	SpriteMonster:    'M',
	SpriteExperience: '*',
})

func newTable() entity.Table[*World] {
	var t entity.Table[*World]
	t[entity.ArchPlayer] = entity.Behavior[*World]{Setup: setupPlayer, Update: updatePlayer, Render: renderPlayer}
	t[entity.ArchMonster] = entity.Behavior[*World]{Setup: setupMonster, Update: updateMonster, Render: renderSprite}
	t[entity.ArchWeapon] = entity.Behavior[*World]{Setup: setupSword, Update: updateWeapon, Render: renderLine}
	t[entity.ArchPickup] = entity.Behavior[*World]{Setup: setupPickup, Update: updatePickup, Render: renderSprite}
	t[entity.ArchTerrain] = entity.Behavior[*World]{Setup: setupRock, Render: renderRect}
	return t
}

func setupPlayer(w *World, e *entity.Entity) {
	c := w.cfg.Player
	e.Name = "player"
	e.IsSprite = true
	e.Sprite = SpritePlayer
	e.Size = core.V2(c.Size, c.Size)
	e.Collider = entity.ColliderRect
	e.Tint = core.Opaque(core.ColorBrightWhite)
	e.Speed = c.Speed
	e.Health = entity.NewBar(c.Health, 0)
	e.Experience = entity.Bar{Max: c.ExperienceMax}
}

func setupMonster(w *World, e *entity.Entity) {
	c := w.cfg.Monsters
	e.IsSprite = true
	e.Sprite = SpriteMonster
	e.Size = core.V2(c.Size, c.Size)
	e.Collider = entity.ColliderRect
	e.Tint = core.Opaque(core.ColorRed)
	e.Speed = w.difficulty.Speed(c.Speed, w.Kills, w.Elapsed)
	e.Health = entity.NewBar(w.difficulty.Health(c.Health, w.Kills, w.Elapsed), 0)
	e.Power = c.Power
}

func setupSword(w *World, e *entity.Entity) {
	c := w.cfg.Sword
	e.Name = "sword"
	e.IsLine = true
	e.AttachedToPlayer = true
	e.Collider = entity.ColliderLine
	e.Tint = core.Opaque(core.ColorBrightYellow)
	e.Size = core.V2(c.Length, c.Thickness)
	e.Power = c.Power
}

func setupPickup(w *World, e *entity.Entity) {
	c := w.cfg.Pickups
	e.IsSprite = true
	e.Sprite = SpriteExperience
	e.Collider = entity.ColliderRect
	e.Tint = core.Opaque(core.ColorBrightCyan)
	e.Size = core.V2(c.Size, c.Size)
	e.Power = c.Experience
}

func setupRock(w *World, e *entity.Entity) {
	e.Collider = entity.ColliderRect
	e.Static = true
	e.Tint = core.Opaque(core.ColorGray)
	e.Glyph = '▓'
}

// near visits every other valid entity that may touch e.
func (w *World) near(e *entity.Entity, fn func(o *entity.Entity)) {
	w.grid.Near(collide.ShapeOf(e), func(h entity.Handle) {
		if o := w.Pool.Get(h); o != nil && o != e {
			fn(o)
		}
	})
}

func updatePlayer(w *World, e *entity.Entity, dt float64) {
	w.near(e, func(o *entity.Entity) {
		if o.Arch == entity.ArchTerrain {
			collide.Resolve(e, o, dt)
		}
	})
	e.Integrate(dt)

	if e.Experience.Full() {
		w.levelUp(e)
	}
	if e.Health.Empty() {
		e.Tint.Alpha = 0
		if w.UX == UXDefault {
			w.UX = UXLose
			w.notef("player died", "seconds", w.Elapsed, "kills", w.Kills)
		}
	}
}

func updateMonster(w *World, e *entity.Entity, dt float64) {
	player := w.frame.player
	e.Move = player.Mid().Sub(e.Mid()).Normalize()

	w.near(e, func(o *entity.Entity) {
		switch o.Arch {
		case entity.ArchMonster, entity.ArchTerrain:
			collide.Resolve(e, o, dt)
		case entity.ArchPlayer:
			if collide.Collides(e, o) {
				o.Health.Current -= e.Power * dt
				w.camera.Shake.Add(w.cfg.Camera.HitShake)
			}
		}
	})
	e.Integrate(dt)

	if e.Health.Empty() {
		w.kill(e)
		return
	}
	if w.offscreen(e.Pos) {
		w.Pool.Destroy(e)
	}
}

// updateWeapon deals continuous damage to every overlapping monster, then
// follows the player or flies along its move vector.
func updateWeapon(w *World, e *entity.Entity, dt float64) {
	if e.Expired(w.Now) {
		w.Pool.Destroy(e)
		return
	}
	w.near(e, func(o *entity.Entity) {
		if o.Arch == entity.ArchMonster && collide.Collides(e, o) {
			o.Health.Current -= e.Power * dt
		}
	})

	if e.AttachedToPlayer {
		player := w.frame.player
		e.Pos = player.Mid()
		e.Angle = player.Angle
	} else {
		e.Integrate(dt)
	}
}

func updatePickup(w *World, e *entity.Entity, dt float64) {
	player := w.frame.player
	if collide.Collides(e, player) {
		player.Experience.Current += e.Power
		w.Pool.Destroy(e)
	}
}
