package maze

import (
	"math"

	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
)

func renderSprite(w *World, e *entity.Entity, dl *core.DrawList) {
	dl.PushLayer(core.LayerEntity)
	dl.Sprite(sheet, e.Sprite, e.Mid(), e.Tint)
	dl.PopLayer()
}

// renderWall draws a wall rect as a line along its long side.
func renderWall(w *World, e *entity.Entity, dl *core.DrawList) {
	dl.PushLayer(core.LayerStageFG)
	if e.Size.X >= e.Size.Y {
		dl.Line(e.Pos, e.Pos.Add(core.V2(e.Size.X, 0)), '─', e.Tint)
	} else {
		dl.Line(e.Pos, e.Pos.Add(core.V2(0, e.Size.Y)), '│', e.Tint)
	}
	dl.PopLayer()
}

// Render submits the whole frame.
func (w *World) Render(dl *core.DrawList, screenW, screenH int) {
	dl.SetView(w.camera.View(w.cfg.Camera.CellW, w.cfg.Camera.CellH))
	dl.SetSpace(core.SpaceWorld)
	w.table.Render(w, w.Pool, dl)

	dl.SetSpace(core.SpaceScreen)
	defer dl.SetSpace(core.SpaceWorld)
	dl.PushLayer(core.LayerText)
	defer dl.PopLayer()

	var hint string
	tint := core.Opaque(core.ColorGray)
	switch w.UX {
	case UXDefault:
		hint = "Find the sword"
	case UXSword:
		hint = "Sword in hand, catch the monster"
		tint = core.Opaque(core.ColorBrightYellow)
	}
	if hint != "" {
		dl.Text(core.V2(1, 0), hint, tint)
	}

	switch w.UX {
	case UXWin:
		dl.Text(quarter("You Win!", screenW, screenH), "You Win!", core.Opaque(core.ColorBrightYellow))
	case UXLose:
		dl.Text(quarter("You Lose!", screenW, screenH), "You Lose!", core.Opaque(core.ColorBrightRed))
	}
}

// quarter places end text a quarter of the way across, mid height.
func quarter(text string, screenW, screenH int) core.Vec2 {
	x := math.Max(0, float64(screenW)/4-float64(len([]rune(text)))/2)
	return core.V2(math.Floor(x), float64(screenH/2))
}
