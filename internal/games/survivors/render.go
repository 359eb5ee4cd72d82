package survivors

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/anim"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
)

func renderSprite(w *World, e *entity.Entity, dl *core.DrawList) {
	dl.PushLayer(core.LayerEntity)
	dl.Sprite(sheet, e.Sprite, e.Mid(), e.Tint)
	dl.PopLayer()
}

func renderPlayer(w *World, e *entity.Entity, dl *core.DrawList) {
	renderSprite(w, e, dl)
	if !e.Tint.Visible() {
		return
	}

	dl.PushLayer(core.LayerUIFG)
	bar := core.V2(e.Pos.X, e.Pos.Y-w.cfg.Camera.CellH)
	dl.Rect(bar, core.V2(10, 1), '░', core.Opaque(core.ColorRed))
	if r := e.Health.Ratio(); r > 0 {
		dl.Rect(bar, core.V2(10*r, 1), '█', core.Opaque(core.ColorGreen))
	}
	dl.PopLayer()
}

func renderRect(w *World, e *entity.Entity, dl *core.DrawList) {
	dl.PushLayer(core.LayerEntity)
	dl.Rect(e.Pos, e.Size, e.Glyph, e.Tint)
	dl.PopLayer()
}

// bulletFade is how long a bullet takes to fade out before it expires.
const bulletFade = 0.5

// weaponLook returns the tint and glyph of a weapon at now. Free bullets
// fade out over their last bulletFade seconds; a zero glyph lets the draw
// list shade by alpha.
func weaponLook(e *entity.Entity, now float64) (core.Tint, rune) {
	tint, glyph := e.Tint, LineGlyph(e.Angle)
	if e.AttachedToPlayer || e.EndTime <= 0 {
		return tint, glyph
	}
	tint = tint.Fade(1 - anim.AlphaFromEndTime(now, e.EndTime, bulletFade))
	if tint.Alpha < 1 {
		glyph = 0
	}
	return tint, glyph
}

// renderLine draws weapons one layer below sprites so the wielder stays
// visible.
func renderLine(w *World, e *entity.Entity, dl *core.DrawList) {
	tint, glyph := weaponLook(e, w.Now)
	if !tint.Visible() {
		return
	}
	dl.PushLayer(core.LayerWorld)
	end := core.LineEnd(e.Pos, e.Size.X, e.Angle)
	dl.Line(e.Pos, end, glyph, tint)
	dl.PopLayer()
}

// LineGlyph picks a box character for a line at deg degrees in y-down
// space.
func LineGlyph(deg float64) rune {
	a := math.Mod(deg, 180)
	if a < 0 {
		a += 180
	}
	switch {
	case a < 22.5 || a >= 157.5:
		return '─'
	case a < 67.5:
		return '╲'
	case a < 112.5:
		return '│'
	default:
		return '╱'
	}
}

// renderTiles draws the checkerboard floor under the visible area.
func (w *World) renderTiles(dl *core.DrawList, screenW, screenH int) {
	tile := w.cfg.World.Tile
	if tile <= 0 {
		return
	}
	ext := dl.View().Extent(screenW, screenH)
	cx := int(math.Round(w.camera.Pos.X / tile))
	cy := int(math.Round(w.camera.Pos.Y / tile))
	rx := int(ext.X/tile)/2 + 2
	ry := int(ext.Y/tile)/2 + 2

	dl.PushLayer(core.LayerStageFG)
	tint := core.Tint{Color: core.ColorDarkGray, Alpha: 0.1}
	for y := cy - ry; y <= cy+ry; y++ {
		for x := cx - rx; x <= cx+rx; x++ {
			odd := 0
			if y%2 == 0 {
				odd = 1
			}
			if (x+odd)%2 != 0 {
				continue
			}
			pos := core.V2(float64(x)*tile-tile/2, float64(y)*tile-tile/2)
			dl.Rect(pos, core.V2(tile, tile), '·', tint)
		}
	}
	dl.PopLayer()
}

// renderHUD draws the experience bar, stats line and end-of-run text in
// screen space.
func (w *World) renderHUD(dl *core.DrawList, screenW, screenH int) {
	player := w.Player()
	if player == nil {
		return
	}
	dl.SetSpace(core.SpaceScreen)
	defer dl.SetSpace(core.SpaceWorld)

	dl.PushLayer(core.LayerUIBG)
	row := core.V2(0, float64(screenH-1))
	dl.Rect(row, core.V2(float64(screenW), 1), '░', core.Opaque(core.ColorGray))
	dl.PopLayer()

	dl.PushLayer(core.LayerUIFG)
	if filled := player.Experience.Ratio() * float64(screenW); filled >= 1 {
		dl.Rect(row, core.V2(filled, 1), '█', core.Opaque(core.ColorRed))
	}
	dl.PopLayer()

	dl.PushLayer(core.LayerText)
	status := fmt.Sprintf("HP %.0f/%.0f  LV %d  KILLS %d  TIME %.1fs  [%d]",
		math.Max(0, player.Health.Current), player.Health.Max, w.Level, w.Kills, w.Elapsed, w.Pool.Count())
	dl.Text(core.V2(1, 0), status, core.Opaque(core.ColorBrightWhite))

	switch w.UX {
	case UXWin:
		dl.Text(centered("You Win!", screenW, screenH), "You Win!", core.Opaque(core.ColorBrightYellow))
	case UXLose:
		dl.Text(centered("You Lose!", screenW, screenH), "You Lose!", core.Opaque(core.ColorBrightRed))
		msg := "R to restart"
		p := centered(msg, screenW, screenH)
		dl.Text(core.V2(p.X, p.Y+2), msg, core.Opaque(core.ColorGray))
	}
	dl.PopLayer()
}

func centered(text string, screenW, screenH int) core.Vec2 {
	return core.V2(float64((screenW-len([]rune(text)))/2), float64(screenH/2))
}

// Render submits the whole frame.
func (w *World) Render(dl *core.DrawList, screenW, screenH int) {
	dl.SetView(w.camera.View(w.cfg.Camera.CellW, w.cfg.Camera.CellH))
	dl.SetSpace(core.SpaceWorld)
	w.renderTiles(dl, screenW, screenH)
	w.table.Render(w, w.Pool, dl)

	dl.PushLayer(core.LayerEntity)
	w.particles.Render(dl)
	dl.PopLayer()

	w.renderHUD(dl, screenW, screenH)
}
