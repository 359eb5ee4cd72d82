package core

import (
	"fmt"
	"math"
	"sort"
)

// Layer orders draw commands; higher layers draw on top.
type Layer int

// Standard layers shared by every prototype.
const (
	LayerStageBG Layer = 0
	LayerStageFG Layer = 5
	LayerWorld   Layer = 10
	LayerView    Layer = 15
	LayerEntity  Layer = 20
	LayerUIBG    Layer = 30
	LayerUIFG    Layer = 35
	LayerText    Layer = 40
	LayerCursor  Layer = 50
)

// MaxLayerDepth bounds the layer stack.
const MaxLayerDepth = 16

// Space selects the coordinate system of a draw command.
type Space int

const (
	// SpaceWorld coordinates go through the view transform.
	SpaceWorld Space = iota
	// SpaceScreen coordinates are character cells.
	SpaceScreen
)

// View maps world units onto the character grid. Center is the world
// point shown in the middle of the screen; CellW/CellH are world units per
// cell; Offset is added to Center (camera shake).
type View struct {
	Center Vec2
	Offset Vec2
	CellW  float64
	CellH  float64
}

// DefaultView is one world unit per cell centred on the origin.
func DefaultView() View {
	return View{CellW: 1, CellH: 1}
}

func (v View) cellSize() (float64, float64) {
	w, h := v.CellW, v.CellH
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return w, h
}

// ToCell converts a world point to fractional cell coordinates on a screen
// of the given size.
func (v View) ToCell(p Vec2, screenW, screenH int) (float64, float64) {
	cw, ch := v.cellSize()
	c := v.Center.Add(v.Offset)
	return (p.X-c.X)/cw + float64(screenW)/2, (p.Y-c.Y)/ch + float64(screenH)/2
}

// Extent returns the world-space size covered by a screen.
func (v View) Extent(screenW, screenH int) Vec2 {
	cw, ch := v.cellSize()
	return Vec2{X: float64(screenW) * cw, Y: float64(screenH) * ch}
}

// Sprite names a glyph in a SpriteSheet.
type Sprite string

// SpriteNil is the empty sprite; it draws the sheet's fallback glyph.
const SpriteNil Sprite = ""

// SpriteSheet maps sprite names to glyphs.
type SpriteSheet struct {
	glyphs   map[Sprite]rune
	fallback rune
}

// NewSpriteSheet creates a sheet. fallback is drawn for SpriteNil.
func NewSpriteSheet(fallback rune, glyphs map[Sprite]rune) *SpriteSheet {
	s := &SpriteSheet{glyphs: make(map[Sprite]rune, len(glyphs)), fallback: fallback}
	for k, v := range glyphs {
		s.glyphs[k] = v
	}
	return s
}

// Glyph returns the rune for a sprite. Unknown sprites are a programmer
// error and panic.
func (s *SpriteSheet) Glyph(name Sprite) rune {
	if name == SpriteNil {
		return s.fallback
	}
	g, ok := s.glyphs[name]
	if !ok {
		panic(fmt.Sprintf("draw: unknown sprite %q", name))
	}
	return g
}

type commandKind int

const (
	cmdRect commandKind = iota
	cmdLine
	cmdText
)

type command struct {
	kind  commandKind
	layer Layer
	space Space
	pos   Vec2
	size  Vec2 // rect size; for lines the end point
	text  string
	glyph rune
	tint  Tint
}

// DrawList collects draw commands for one frame. Commands are recorded in
// submission order and flushed sorted by layer, keeping submission order
// within a layer.
type DrawList struct {
	cmds   []command
	layers []Layer
	space  Space
	view   View
}

// NewDrawList creates an empty draw list at LayerStageBG in world space.
func NewDrawList() *DrawList {
	return &DrawList{view: DefaultView()}
}

// SetView sets the world-to-screen transform used on flush.
func (d *DrawList) SetView(v View) {
	d.view = v
}

// View returns the current view.
func (d *DrawList) View() View {
	return d.view
}

// SetSpace selects the space for subsequent commands.
func (d *DrawList) SetSpace(s Space) {
	d.space = s
}

// PushLayer makes l the current layer. Exceeding MaxLayerDepth panics.
func (d *DrawList) PushLayer(l Layer) {
	if len(d.layers) >= MaxLayerDepth {
		panic("draw: layer stack overflow")
	}
	d.layers = append(d.layers, l)
}

// PopLayer restores the previous layer. Popping an empty stack panics.
func (d *DrawList) PopLayer() {
	if len(d.layers) == 0 {
		panic("draw: layer stack underflow")
	}
	d.layers = d.layers[:len(d.layers)-1]
}

// Layer returns the current layer.
func (d *DrawList) Layer() Layer {
	if len(d.layers) == 0 {
		return LayerStageBG
	}
	return d.layers[len(d.layers)-1]
}

// Len returns the number of pending commands.
func (d *DrawList) Len() int {
	return len(d.cmds)
}

func (d *DrawList) push(c command) {
	if !c.tint.Visible() {
		return
	}
	c.layer = d.Layer()
	c.space = d.space
	d.cmds = append(d.cmds, c)
}

// Rect submits a filled rectangle with its top-left corner at pos.
// A zero glyph picks a shade block from the tint's alpha.
func (d *DrawList) Rect(pos, size Vec2, glyph rune, t Tint) {
	d.push(command{kind: cmdRect, pos: pos, size: size, glyph: glyph, tint: t})
}

// Line submits a line segment from a to b.
func (d *DrawList) Line(a, b Vec2, glyph rune, t Tint) {
	d.push(command{kind: cmdLine, pos: a, size: b, glyph: glyph, tint: t})
}

// Text submits a string whose first character sits at pos.
func (d *DrawList) Text(pos Vec2, text string, t Tint) {
	d.push(command{kind: cmdText, pos: pos, text: text, tint: t})
}

// Sprite submits a single glyph from the sheet centred on pos.
func (d *DrawList) Sprite(sheet *SpriteSheet, name Sprite, pos Vec2, t Tint) {
	d.push(command{kind: cmdText, pos: pos, text: string(sheet.Glyph(name)), tint: t})
}

// Flush rasterises every command into dst and empties the list.
// An unbalanced layer stack panics.
func (d *DrawList) Flush(dst *Screen) {
	if len(d.layers) != 0 {
		panic(fmt.Sprintf("draw: %d unpopped layers at flush", len(d.layers)))
	}

	sort.SliceStable(d.cmds, func(i, j int) bool {
		return d.cmds[i].layer < d.cmds[j].layer
	})

	for _, c := range d.cmds {
		d.raster(dst, c)
	}
	d.cmds = d.cmds[:0]
	d.space = SpaceWorld
}

func (d *DrawList) cell(dst *Screen, space Space, p Vec2) (float64, float64) {
	if space == SpaceScreen {
		return p.X, p.Y
	}
	return d.view.ToCell(p, dst.Width(), dst.Height())
}

func (d *DrawList) raster(dst *Screen, c command) {
	switch c.kind {
	case cmdRect:
		x0, y0 := d.cell(dst, c.space, c.pos)
		x1, y1 := d.cell(dst, c.space, c.pos.Add(c.size))
		cx0, cy0 := int(math.Floor(x0)), int(math.Floor(y0))
		cx1, cy1 := int(math.Ceil(x1)), int(math.Ceil(y1))
		if cx1 <= cx0 {
			cx1 = cx0 + 1
		}
		if cy1 <= cy0 {
			cy1 = cy0 + 1
		}
		g := c.glyph
		if g == 0 {
			g = ShadeGlyph(c.tint.Alpha)
		}
		dst.DrawRect(NewRect(cx0, cy0, cx1-cx0, cy1-cy0), g, c.tint.Color)
	case cmdLine:
		x0, y0 := d.cell(dst, c.space, c.pos)
		x1, y1 := d.cell(dst, c.space, c.size)
		g := c.glyph
		if g == 0 {
			g = ShadeGlyph(c.tint.Alpha)
		}
		dst.DrawLine(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Floor(x1)), int(math.Floor(y1)), g, c.tint.Color)
	case cmdText:
		x, y := d.cell(dst, c.space, c.pos)
		dst.DrawText(int(math.Floor(x)), int(math.Floor(y)), c.text, c.tint.Color)
	}
}

// ShadeGlyph picks a block character whose density follows alpha.
func ShadeGlyph(alpha float64) rune {
	switch {
	case alpha >= 0.75:
		return '█'
	case alpha >= 0.5:
		return '▓'
	case alpha >= 0.25:
		return '▒'
	default:
		return '░'
	}
}
