// Package anim holds frame-rate independent easing helpers, the trauma
// camera shake and the follow camera.
package anim

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-protolab/internal/core"
)

// Epsilon is the distance at which Approach snaps onto its target.
const Epsilon = 0.001

// Approach moves value toward target by the exponential-decay factor
// 1 - 2^(-rate*dt). It snaps once within Epsilon and reports arrival.
func Approach(value, target, rate, dt float64) (float64, bool) {
	value += (target - value) * (1 - math.Pow(2, -rate*dt))
	if core.AlmostEqual(value, target, Epsilon) {
		return target, true
	}
	return value, false
}

// ApproachVec applies Approach to each axis independently.
func ApproachVec(value, target core.Vec2, rate, dt float64) (core.Vec2, bool) {
	x, okX := Approach(value.X, target.X, rate, dt)
	y, okY := Approach(value.Y, target.Y, rate, dt)
	return core.V2(x, y), okX && okY
}

// SinBreathe oscillates in [0, 1] over time.
func SinBreathe(t, rate float64) float64 {
	return (math.Sin(t*rate) + 1) / 2
}

// AlphaFromEndTime ramps from 0 to 1 over the last length seconds before
// endTime.
func AlphaFromEndTime(now, endTime, length float64) float64 {
	return core.FloatAlpha(now, endTime-length, endTime)
}

// Shake is trauma-driven camera shake. Trauma drains linearly at one unit
// per second; the offset grows with Trauma^Power so it falls off quickly.
type Shake struct {
	Trauma    float64
	Power     float64 // exponent, 2 or 3
	MaxOffset float64 // world units at full trauma
}

// NewShake returns a shake using the squared curve.
func NewShake(maxOffset float64) Shake {
	return Shake{Power: 2, MaxOffset: maxOffset}
}

// Add bumps trauma, clamped to 1.
func (s *Shake) Add(amount float64) {
	s.Trauma = core.ClampF(s.Trauma+amount, 0, 1)
}

// Decay drains trauma by dt.
func (s *Shake) Decay(dt float64) {
	s.Trauma = core.ClampF(s.Trauma-dt, 0, 1)
}

// Amount is the current shake scale in [0, 1].
func (s Shake) Amount() float64 {
	p := s.Power
	if p <= 0 {
		p = 2
	}
	return math.Min(math.Pow(s.Trauma, p), 1)
}

// Offset draws a fresh random offset per axis.
func (s Shake) Offset(rng *rand.Rand) core.Vec2 {
	a := s.Amount() * s.MaxOffset
	return core.V2(a*(rng.Float64()*2-1), a*(rng.Float64()*2-1))
}

// Camera follows a target with exponential easing and carries a shake.
type Camera struct {
	Pos   core.Vec2
	Zoom  float64
	Shake Shake

	offset core.Vec2
}

// NewCamera returns a camera at the origin.
func NewCamera(maxShake float64) *Camera {
	return &Camera{Zoom: 1, Shake: NewShake(maxShake)}
}

// Follow eases toward target, decays trauma and rolls this frame's shake.
func (c *Camera) Follow(target core.Vec2, rate, dt float64, rng *rand.Rand) {
	c.Shake.Decay(dt)
	c.Pos, _ = ApproachVec(c.Pos, target, rate, dt)
	c.offset = c.Shake.Offset(rng)
}

// View builds the world-to-screen transform. cellW and cellH are world
// units per terminal cell at zoom 1.
func (c *Camera) View(cellW, cellH float64) core.View {
	z := c.Zoom
	if z <= 0 {
		z = 1
	}
	return core.View{Center: c.Pos, Offset: c.offset, CellW: cellW / z, CellH: cellH / z}
}
