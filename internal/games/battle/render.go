package battle

import (
	"fmt"

	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/anim"
	"github.com/vovakirdan/tui-protolab/internal/engine/combat"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
)

const barWidth = 12

// renderBar draws a labelled bar: background shade, filled part, value.
func renderBar(dl *core.DrawList, pos core.Vec2, label string, b entity.Bar, c core.Color) {
	dl.PushLayer(core.LayerUIBG)
	dl.Rect(pos.Add(core.V2(3, 0)), core.V2(barWidth, 1), '░', core.Opaque(core.ColorDarkGray))
	dl.PopLayer()

	dl.PushLayer(core.LayerUIFG)
	if filled := float64(barWidth) * b.Ratio(); filled >= 0.5 {
		dl.Rect(pos.Add(core.V2(3, 0)), core.V2(filled, 1), '█', core.Opaque(c))
	}
	dl.PopLayer()

	dl.PushLayer(core.LayerText)
	dl.Text(pos, label, core.Opaque(core.ColorGray))
	dl.Text(pos.Add(core.V2(4+barWidth, 0)), fmt.Sprintf("%.0f/%.0f", b.Current, b.Max), core.Opaque(core.ColorGray))
	dl.PopLayer()
}

func renderCombatant(w *World, e *entity.Entity, dl *core.DrawList) {
	name := e.Name
	if e.State&combat.StateDefending != 0 {
		name += " [guard]"
	}
	tint := e.Tint
	if sel := w.sched.Selected(); sel != nil && sel.Handle == e.Handle {
		tint = core.Opaque(core.ColorBrightYellow)
	}

	dl.PushLayer(core.LayerText)
	dl.Text(e.Pos, name, tint)
	dl.PopLayer()

	renderBar(dl, e.Pos.Add(core.V2(0, 1)), "HP", e.Health, core.ColorGreen)
	if e.Arch == entity.ArchPlayer {
		if e.Mana.Max > 0 {
			renderBar(dl, e.Pos.Add(core.V2(21, 0)), "MP", e.Mana, core.ColorBlue)
		}
		renderBar(dl, e.Pos.Add(core.V2(21, 1)), "AT", e.Time, core.ColorCyan)
	}
}

// cursorPulse is the breathing rate of the cursor in radians per second.
const cursorPulse = 6

// cursorGlyph fills the cursor on the upper half of its breath.
func cursorGlyph(now float64) string {
	if anim.SinBreathe(now, cursorPulse) >= 0.5 {
		return "▶"
	}
	return "▷"
}

func renderCursor(w *World, e *entity.Entity, dl *core.DrawList) {
	dl.PushLayer(core.LayerCursor)
	dl.Text(e.Pos, cursorGlyph(w.Now), e.Tint)
	dl.PopLayer()
}

// renderMenu draws the command list and, when open, the magic or item
// submenu beside it.
func (w *World) renderMenu(dl *core.DrawList) {
	s := w.sched
	state := s.State()
	if state == combat.UXDefault || state.Terminal() {
		return
	}
	pos := core.V2(partyCol, panelRow)

	dl.PushLayer(core.LayerText)
	defer dl.PopLayer()

	for i, c := range combat.Commands() {
		label := "  " + c.String()
		tint := core.Opaque(core.ColorGray)
		if c == s.Menu() {
			tint = core.Opaque(core.ColorBrightWhite)
			if state == combat.UXCommand {
				label = "> " + c.String()
			}
		}
		dl.Text(pos.Add(core.V2(0, float64(i))), label, tint)
	}

	var entries []string
	switch state {
	case combat.UXMagic:
		for _, a := range s.Spells() {
			entries = append(entries, fmt.Sprintf("%-7s %2.0f MP  %s/%s",
				a.Name, a.ManaCost, combat.ElementName(a.Element), combat.AbilityName(a.ScaleStat)))
		}
	case combat.UXItems:
		for _, a := range s.Usable() {
			entries = append(entries, fmt.Sprintf("%-7s x%d", a.Name, s.Items(a.Name)))
		}
	}
	for i, text := range entries {
		tint := core.Opaque(core.ColorGray)
		prefix := "  "
		if i == s.SubIndex() {
			tint, prefix = core.Opaque(core.ColorBrightWhite), "> "
		}
		dl.Text(pos.Add(core.V2(12, float64(i))), prefix+text, tint)
	}
}

// renderLog draws the newest battle log lines under the monsters.
func (w *World) renderLog(dl *core.DrawList) {
	lines := w.sched.Log()
	const shown = 6
	if len(lines) > shown {
		lines = lines[len(lines)-shown:]
	}
	dl.PushLayer(core.LayerText)
	for i, l := range lines {
		dl.Text(core.V2(monsterCol, float64(panelRow+i)), l, core.Opaque(core.ColorGray))
	}
	dl.PopLayer()
}

// Render submits the whole battle screen. The stage is laid out on an
// 80x24 grid and centred on the terminal.
func (w *World) Render(dl *core.DrawList) {
	dl.SetView(core.View{Center: core.V2(stageW/2, stageH/2), CellW: 1, CellH: 1})
	dl.SetSpace(core.SpaceWorld)

	dl.PushLayer(core.LayerStageFG)
	dl.Line(core.V2(0, panelRow-1), core.V2(stageW-1, panelRow-1), '─', core.Opaque(core.ColorDarkGray))
	dl.PopLayer()

	w.table.Render(w, w.Pool, dl)
	w.renderMenu(dl)
	w.renderLog(dl)

	var banner string
	switch w.sched.State() {
	case combat.UXWin:
		banner = "Victory!  R to fight again"
	case combat.UXLose:
		banner = "Defeat...  R to retry"
	}
	if banner != "" {
		dl.PushLayer(core.LayerText)
		x := float64((stageW - len([]rune(banner))) / 2)
		dl.Text(core.V2(x, panelRow-2), banner, core.Opaque(core.ColorBrightYellow))
		dl.PopLayer()
	}
}
