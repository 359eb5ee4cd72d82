package entity

import "github.com/vovakirdan/tui-protolab/internal/core"

// Behavior bundles the per-archetype hooks. Any hook may be nil.
type Behavior[W any] struct {
	Setup  func(w W, e *Entity)
	Update func(w W, e *Entity, dt float64)
	Render func(w W, e *Entity, dl *core.DrawList)
}

// Table is a dispatch table indexed by archetype. W is the owning world
// type, passed explicitly to every hook.
type Table[W any] [NumArchetypes]Behavior[W]

// Spawn creates an entity of the given archetype and runs its setup hook.
func (t *Table[W]) Spawn(w W, p *Pool, arch Archetype) *Entity {
	e := p.Create()
	e.Arch = arch
	if fn := t[arch].Setup; fn != nil {
		fn(w, e)
	}
	return e
}

// Update runs the update hook of every valid entity in slot order.
func (t *Table[W]) Update(w W, p *Pool, dt float64) {
	p.Each(func(e *Entity) {
		if fn := t[e.Arch].Update; fn != nil {
			fn(w, e, dt)
		}
	})
}

// Render runs the render hook of every valid entity in slot order.
func (t *Table[W]) Render(w W, p *Pool, dl *core.DrawList) {
	p.Each(func(e *Entity) {
		if fn := t[e.Arch].Render; fn != nil {
			fn(w, e, dl)
		}
	})
}
