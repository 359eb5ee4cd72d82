package entity

import (
	"errors"
)

// DefaultCapacity is the pool size used by most prototypes.
const DefaultCapacity = 4096

// ErrPoolExhausted is the panic value raised when Create finds no free slot.
// Running out of entities means the pool was sized too small for the scene.
var ErrPoolExhausted = errors.New("entity: no more free entities")

// Pool is a bounded array of entity slots with linear-scan allocation.
// Freed slots are zeroed immediately and reused by the next Create.
type Pool struct {
	slots []Entity
	count int
}

// NewPool allocates a pool with the given capacity.
func NewPool(capacity int) *Pool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Pool{slots: make([]Entity, capacity)}
}

// Create claims the first free slot and returns it zeroed, valid and
// stamped with its handle. Panics with ErrPoolExhausted when full.
func (p *Pool) Create() *Entity {
	for i := range p.slots {
		if p.slots[i].Valid {
			continue
		}
		p.slots[i] = Entity{Valid: true, Handle: Handle(i)}
		p.count++
		return &p.slots[i]
	}
	panic(ErrPoolExhausted)
}

// Destroy zeroes the entity's slot. Any pointer to it now reads as invalid.
func (p *Pool) Destroy(e *Entity) {
	if e == nil || !e.Valid {
		return
	}
	h := e.Handle
	if h < 0 || int(h) >= len(p.slots) || &p.slots[h] != e {
		return
	}
	p.slots[h] = Entity{}
	p.count--
}

// Get returns the valid entity at h, or nil.
func (p *Pool) Get(h Handle) *Entity {
	if h < 0 || int(h) >= len(p.slots) {
		return nil
	}
	e := &p.slots[h]
	if !e.Valid {
		return nil
	}
	return e
}

// Each calls fn for every valid entity in ascending slot order. Validity is
// re-checked before each call, so entities destroyed by fn are skipped.
func (p *Pool) Each(fn func(e *Entity)) {
	for i := range p.slots {
		if p.slots[i].Valid {
			fn(&p.slots[i])
		}
	}
}

// First returns the lowest-slot valid entity of the archetype, or nil.
func (p *Pool) First(arch Archetype) *Entity {
	for i := range p.slots {
		if p.slots[i].Valid && p.slots[i].Arch == arch {
			return &p.slots[i]
		}
	}
	return nil
}

// CountArch counts valid entities of an archetype.
func (p *Pool) CountArch(arch Archetype) int {
	n := 0
	p.Each(func(e *Entity) {
		if e.Arch == arch {
			n++
		}
	})
	return n
}

// Count returns the number of valid entities.
func (p *Pool) Count() int {
	return p.count
}

// Cap returns the pool capacity.
func (p *Pool) Cap() int {
	return len(p.slots)
}

// Reset zeroes every slot.
func (p *Pool) Reset() {
	clear(p.slots)
	p.count = 0
}

// Restore places e verbatim into its handle's slot and keeps the count in
// step with slot validity. Used when loading snapshots.
func (p *Pool) Restore(e Entity) bool {
	if e.Handle < 0 || int(e.Handle) >= len(p.slots) {
		return false
	}
	switch was := p.slots[e.Handle].Valid; {
	case !was && e.Valid:
		p.count++
	case was && !e.Valid:
		p.count--
	}
	p.slots[e.Handle] = e
	return true
}
