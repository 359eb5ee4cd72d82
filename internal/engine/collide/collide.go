// Package collide implements the shape overlap tests, predictive probes and
// axis-decomposed sliding resolution shared by the prototypes.
//
// Every function here is pure: shapes and movers are passed by value and
// results are returned for the caller to write back.
package collide

import (
	"math"

	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
)

// Shape is the collision footprint of an entity.
type Shape struct {
	Kind  entity.Collider
	Pos   core.Vec2
	Size  core.Vec2
	Angle float64 // degrees, lines only
}

// ShapeOf builds the shape of an entity.
func ShapeOf(e *entity.Entity) Shape {
	return Shape{Kind: e.Collider, Pos: e.Pos, Size: e.Size, Angle: e.Angle}
}

// Rect is shorthand for a rect shape.
func Rect(pos, size core.Vec2) Shape {
	return Shape{Kind: entity.ColliderRect, Pos: pos, Size: size}
}

// Moved returns the shape translated by d.
func (s Shape) Moved(d core.Vec2) Shape {
	s.Pos = s.Pos.Add(d)
	return s
}

// End returns the far endpoint of a line shape.
func (s Shape) End() core.Vec2 {
	return core.LineEnd(s.Pos, s.Size.X, s.Angle)
}

// Mid returns the shape's midpoint.
func (s Shape) Mid() core.Vec2 {
	switch s.Kind {
	case entity.ColliderLine:
		return s.Pos.Add(s.End()).Scale(0.5)
	case entity.ColliderPoint:
		return s.Pos
	default:
		return s.Pos.Add(s.Size.Scale(0.5))
	}
}

// edges returns the four rect edges: top, left, right, bottom.
func (s Shape) edges() [4][2]core.Vec2 {
	p, q := s.Pos, s.Pos.Add(s.Size)
	return [4][2]core.Vec2{
		{p, core.V2(q.X, p.Y)},
		{p, core.V2(p.X, q.Y)},
		{core.V2(q.X, p.Y), q},
		{core.V2(p.X, q.Y), q},
	}
}

// Overlap reports whether two shapes intersect. It is symmetric.
//
// Rects overlap on strict intervals, so touching edges do not count.
// Points inside rects are tested inclusively. Lines use parametric segment
// intersection against each other or against the four rect edges; a line
// lying wholly inside a rect also counts.
func Overlap(a, b Shape) bool {
	switch {
	case a.Kind == entity.ColliderRect && b.Kind == entity.ColliderRect:
		return rectRect(a, b)
	case a.Kind == entity.ColliderLine && b.Kind == entity.ColliderLine:
		_, ok := SegmentIntersect(a.Pos, a.End(), b.Pos, b.End())
		return ok
	case a.Kind == entity.ColliderLine && b.Kind == entity.ColliderRect:
		return lineRect(a, b)
	case a.Kind == entity.ColliderRect && b.Kind == entity.ColliderLine:
		return lineRect(b, a)
	case a.Kind == entity.ColliderPoint && b.Kind == entity.ColliderRect:
		return pointRect(a.Pos, b)
	case a.Kind == entity.ColliderRect && b.Kind == entity.ColliderPoint:
		return pointRect(b.Pos, a)
	}
	return false
}

// Collides tests two live entities. Invalid entities never collide.
func Collides(a, b *entity.Entity) bool {
	if a == nil || b == nil || !a.Valid || !b.Valid {
		return false
	}
	return Overlap(ShapeOf(a), ShapeOf(b))
}

func rectRect(a, b Shape) bool {
	return a.Pos.X < b.Pos.X+b.Size.X &&
		a.Pos.X+a.Size.X > b.Pos.X &&
		a.Pos.Y < b.Pos.Y+b.Size.Y &&
		a.Pos.Y+a.Size.Y > b.Pos.Y
}

func pointRect(p core.Vec2, r Shape) bool {
	return p.X >= r.Pos.X && p.X <= r.Pos.X+r.Size.X &&
		p.Y >= r.Pos.Y && p.Y <= r.Pos.Y+r.Size.Y
}

func lineRect(l, r Shape) bool {
	start, end := l.Pos, l.End()
	for _, e := range r.edges() {
		if _, ok := SegmentIntersect(start, end, e[0], e[1]); ok {
			return true
		}
	}
	return pointRect(start, r) && pointRect(end, r)
}

// SegmentIntersect intersects segment a0-a1 with b0-b1. It solves for the
// two segment parameters and reports a hit when both lie in [0, 1].
// Parallel segments never intersect.
func SegmentIntersect(a0, a1, b0, b1 core.Vec2) (core.Vec2, bool) {
	denom := (b1.Y-b0.Y)*(a1.X-a0.X) - (b1.X-b0.X)*(a1.Y-a0.Y)
	if denom == 0 {
		return core.Vec2{}, false
	}
	uA := ((b1.X-b0.X)*(a0.Y-b0.Y) - (b1.Y-b0.Y)*(a0.X-b0.X)) / denom
	uB := ((a1.X-a0.X)*(a0.Y-b0.Y) - (a1.Y-a0.Y)*(a0.X-b0.X)) / denom
	if uA < 0 || uA > 1 || uB < 0 || uB > 1 {
		return core.Vec2{}, false
	}
	return core.V2(a0.X+uA*(a1.X-a0.X), a0.Y+uA*(a1.Y-a0.Y)), true
}

// Mover is a shape with the motion it intends to make this frame.
type Mover struct {
	Shape  Shape
	Move   core.Vec2
	Speed  float64
	Static bool
}

// MoverOf captures an entity's shape and motion by value.
func MoverOf(e *entity.Entity) Mover {
	return Mover{Shape: ShapeOf(e), Move: e.Move, Speed: e.Speed, Static: e.Static}
}

// Displacement is the distance the mover covers in dt.
func (m Mover) Displacement(dt float64) core.Vec2 {
	return m.Move.Scale(m.Speed * dt)
}

// WillCollide reports whether a and b overlap after both advance by one
// frame of their current motion.
func WillCollide(a, b Mover, dt float64) bool {
	return Overlap(a.Shape.Moved(a.Displacement(dt)), b.Shape.Moved(b.Displacement(dt)))
}

// Solid resolves dyn against other and returns dyn's corrected position and
// move vector:
//
//  1. while overlapping, a non-static dyn is nudged away from other along
//     the midpoint-to-midpoint direction, scaled by dt;
//  2. the X-only and Y-only parts of the move are probed independently and
//     a colliding axis is zeroed;
//  3. the result is renormalised.
//
// A diagonal push into a corner therefore degrades into a slide.
func Solid(dyn, other Mover, dt float64) (pos, move core.Vec2) {
	pos = dyn.Shape.Pos
	if !dyn.Static && Overlap(dyn.Shape, other.Shape) {
		away := dyn.Shape.Mid().Sub(other.Shape.Mid()).Normalize()
		pos = pos.Add(away.Scale(dt))
	}

	probe := dyn
	probe.Shape.Pos = pos
	move = dyn.Move

	probe.Move = core.V2(move.X, 0).Normalize()
	if WillCollide(probe, other, dt) {
		move.X = 0
	}

	probe.Move = core.V2(0, move.Y).Normalize()
	if WillCollide(probe, other, dt) {
		move.Y = 0
	}

	return pos, move.Normalize()
}

// Resolve runs Solid on two entities and writes the result back into dyn.
func Resolve(dyn, other *entity.Entity, dt float64) {
	pos, move := Solid(MoverOf(dyn), MoverOf(other), dt)
	dyn.Pos = pos
	dyn.Move = move
}

// SlideStatic is the simpler wall slide used by the maze: when the full
// next-frame move would enter the static rect, each axis whose solo move
// also enters it is zeroed. The move vector is not renormalised.
func SlideStatic(dyn Mover, static Shape, dt float64) core.Vec2 {
	move := dyn.Move
	body := Rect(dyn.Shape.Pos, dyn.Shape.Size)
	step := dyn.Speed * dt
	if !rectRect(body.Moved(move.Scale(step)), static) {
		return move
	}
	if rectRect(body.Moved(core.V2(move.X, 0).Scale(step)), static) {
		move.X = 0
	}
	if rectRect(body.Moved(core.V2(0, move.Y).Scale(step)), static) {
		move.Y = 0
	}
	return move
}

// RayHits reports whether the rect swept from dyn's position along ray
// touches static.
func RayHits(ray core.Vec2, dyn, static Shape) bool {
	minX := math.Min(dyn.Pos.X, dyn.Pos.X+ray.X)
	minY := math.Min(dyn.Pos.Y, dyn.Pos.Y+ray.Y)
	maxX := math.Max(dyn.Pos.X, dyn.Pos.X+ray.X) + dyn.Size.X
	maxY := math.Max(dyn.Pos.Y, dyn.Pos.Y+ray.Y) + dyn.Size.Y
	swept := Rect(core.V2(minX, minY), core.V2(maxX-minX, maxY-minY))
	return rectRect(swept, static)
}
