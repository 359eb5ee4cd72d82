package collide

import (
	"math"

	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
)

// Bounds returns the axis-aligned box enclosing a shape.
func (s Shape) Bounds() (min, max core.Vec2) {
	switch s.Kind {
	case entity.ColliderLine:
		e := s.End()
		return core.V2(math.Min(s.Pos.X, e.X), math.Min(s.Pos.Y, e.Y)),
			core.V2(math.Max(s.Pos.X, e.X), math.Max(s.Pos.Y, e.Y))
	case entity.ColliderPoint:
		return s.Pos, s.Pos
	default:
		return s.Pos, s.Pos.Add(s.Size)
	}
}

type cellKey struct{ x, y int }

// Grid is a uniform-cell broadphase. Each entity is bucketed by the cell
// holding its midpoint; queries widen their box by the largest half
// extent inserted so far, so every entity that can overlap is visited
// exactly once.
//
// A grid is a snapshot: rebuild it each tick before querying.
type Grid struct {
	cell    float64
	reach   float64
	buckets map[cellKey][]entity.Handle
}

// NewGrid creates a grid with square cells of the given size.
func NewGrid(cell float64) *Grid {
	if cell <= 0 {
		cell = 32
	}
	return &Grid{cell: cell, buckets: make(map[cellKey][]entity.Handle)}
}

// Clear empties every bucket, keeping their storage.
func (g *Grid) Clear() {
	for k, b := range g.buckets {
		g.buckets[k] = b[:0]
	}
	g.reach = 0
}

func (g *Grid) key(p core.Vec2) cellKey {
	return cellKey{int(math.Floor(p.X / g.cell)), int(math.Floor(p.Y / g.cell))}
}

// Insert adds a valid entity with a collider.
func (g *Grid) Insert(e *entity.Entity) {
	if !e.Valid || e.Collider == entity.ColliderNone {
		return
	}
	s := ShapeOf(e)
	lo, hi := s.Bounds()
	if r := math.Max(hi.X-lo.X, hi.Y-lo.Y) / 2; r > g.reach {
		g.reach = r
	}
	k := g.key(s.Mid())
	g.buckets[k] = append(g.buckets[k], e.Handle)
}

// Build clears the grid and inserts every entity of p.
func (g *Grid) Build(p *entity.Pool) {
	g.Clear()
	p.Each(g.Insert)
}

// Near calls fn for every handle whose entity may overlap s, or come into
// contact within half a cell of motion. Cells are walked in row-major
// order, so the visit order is deterministic.
func (g *Grid) Near(s Shape, fn func(h entity.Handle)) {
	lo, hi := s.Bounds()
	r := g.reach + g.cell/2
	k0 := g.key(core.V2(lo.X-r, lo.Y-r))
	k1 := g.key(core.V2(hi.X+r, hi.Y+r))
	for y := k0.y; y <= k1.y; y++ {
		for x := k0.x; x <= k1.x; x++ {
			for _, h := range g.buckets[cellKey{x, y}] {
				fn(h)
			}
		}
	}
}
