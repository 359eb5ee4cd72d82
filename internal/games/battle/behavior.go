package battle

import (
	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/combat"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
)

func newTable() entity.Table[*World] {
	var t entity.Table[*World]
	t[entity.ArchPlayer] = entity.Behavior[*World]{Setup: setupPlayer, Render: renderCombatant}
	t[entity.ArchMonster] = entity.Behavior[*World]{Setup: setupMonster, Render: renderCombatant}
	t[entity.ArchCursor] = entity.Behavior[*World]{Setup: setupCursor, Update: updateCursor, Render: renderCursor}
	return t
}

func setupPlayer(w *World, e *entity.Entity) {
	e.Tint = core.Opaque(core.ColorBrightWhite)
}

func setupMonster(w *World, e *entity.Entity) {
	e.Tint = core.Opaque(core.ColorBrightRed)
}

func setupCursor(w *World, e *entity.Entity) {
	e.Name = "cursor"
	e.Tint = core.Opaque(core.ColorBrightYellow)
	e.Tint.Alpha = 0
}

// updateCursor points at the target while one is being chosen, otherwise
// at the acting player. It hides when nobody is selected.
func updateCursor(w *World, e *entity.Entity, dt float64) {
	focus := w.sched.Target()
	switch w.sched.State() {
	case combat.UXCommand, combat.UXItems:
		focus = w.sched.Selected()
	}
	if focus == nil {
		e.Tint.Alpha = 0
		return
	}
	e.Tint.Alpha = 1
	e.Pos = focus.Pos.Sub(core.V2(2, 0))
}
