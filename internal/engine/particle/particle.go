// Package particle is a ring-buffered pool of short-lived visual particles
// with optional physics, friction and fade-by-velocity.
package particle

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-protolab/internal/core"
)

// DefaultCapacity is the ring size.
const DefaultCapacity = 2048

// Flags compose particle behavior.
type Flags uint8

const (
	FlagValid Flags = 1 << iota
	FlagPhysics
	FlagFriction
	FlagFadeWithVelocity
)

// settleSpeed is the speed under which a fading particle is dropped.
const settleSpeed = 0.01

// Particle is a single visual mote.
type Particle struct {
	Flags     Flags
	Tint      core.Tint
	Pos       core.Vec2
	Vel       core.Vec2
	Accel     core.Vec2
	Friction  float64
	EndTime   float64 // 0 = no deadline
	FadeRange float64 // speed at which alpha reaches 1
}

// Valid reports whether the slot is live.
func (p *Particle) Valid() bool {
	return p.Flags&FlagValid != 0
}

// System owns the ring buffer.
type System struct {
	ring   []Particle
	cursor int
	log    *log.Logger
}

// New creates a particle system of the given capacity. A nil logger
// discards overwrite warnings.
func New(capacity int, logger *log.Logger) *System {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &System{ring: make([]Particle, capacity), log: logger}
}

// Spawn returns the slot at the cursor and advances it, wrapping at the end.
// Overwriting a live particle is logged, never fatal.
func (s *System) Spawn() *Particle {
	p := &s.ring[s.cursor]
	s.cursor++
	if s.cursor >= len(s.ring) {
		s.cursor = 0
	}
	if p.Valid() {
		s.log.Warn("too many particles, overwriting existing", "cap", len(s.ring))
	}
	*p = Particle{Flags: FlagValid}
	return p
}

// Update expires and integrates every live particle. now is world time.
func (s *System) Update(now, dt float64) {
	for i := range s.ring {
		p := &s.ring[i]
		if !p.Valid() {
			continue
		}
		if p.EndTime > 0 && now > p.EndTime {
			*p = Particle{}
			continue
		}
		if p.Flags&FlagFadeWithVelocity != 0 && p.Vel.Len() < settleSpeed {
			*p = Particle{}
			continue
		}
		if p.Flags&FlagPhysics != 0 {
			if p.Flags&FlagFriction != 0 {
				// capped so a long frame stops the particle instead of reversing it
				p.Accel = p.Accel.Sub(p.Vel.Scale(math.Min(p.Friction, 1/dt)))
			}
			p.Vel = p.Vel.Add(p.Accel.Scale(dt))
			p.Pos = p.Pos.Add(p.Vel.Scale(dt))
			p.Accel = core.Vec2{}
		}
	}
}

// Alpha returns the particle's render alpha.
func Alpha(p *Particle) float64 {
	a := p.Tint.Alpha
	if p.Flags&FlagFadeWithVelocity != 0 {
		a *= core.FloatAlpha(p.Vel.Len(), 0, p.FadeRange)
	}
	return a
}

// Render submits every live particle as a 1x1 world rect.
func (s *System) Render(dl *core.DrawList) {
	for i := range s.ring {
		p := &s.ring[i]
		if !p.Valid() {
			continue
		}
		dl.Rect(p.Pos, core.V2(1, 1), 0, core.Tint{Color: p.Tint.Color, Alpha: Alpha(p)})
	}
}

// Live counts valid particles.
func (s *System) Live() int {
	n := 0
	for i := range s.ring {
		if s.ring[i].Valid() {
			n++
		}
	}
	return n
}

// Cap returns the ring size.
func (s *System) Cap() int {
	return len(s.ring)
}

// Clear drops every particle.
func (s *System) Clear() {
	clear(s.ring)
	s.cursor = 0
}

// Kind selects an emission preset.
type Kind int

const (
	KindFootstep Kind = iota
	KindHit
)

// Emit spawns the preset at pos.
func (s *System) Emit(kind Kind, pos core.Vec2, rng *rand.Rand, now float64) {
	switch kind {
	case KindHit:
		for i := 0; i < 4; i++ {
			p := s.Spawn()
			p.Flags |= FlagPhysics | FlagFriction | FlagFadeWithVelocity
			p.Pos = pos
			dir := core.V2(rng.Float64()*2-1, rng.Float64()*2-1).Normalize()
			if dir.IsZero() {
				dir = core.V2(1, 0)
			}
			p.Vel = dir.Scale(200)
			p.Tint = core.Opaque(core.ColorBrightWhite)
			p.Friction = 20
			p.FadeRange = 30
		}
	case KindFootstep:
		for i := 0; i < 2; i++ {
			p := s.Spawn()
			p.Flags |= FlagPhysics | FlagFriction
			p.Pos = pos.Add(core.V2(rng.Float64()*4-2, 0))
			p.Vel = core.V2(rng.Float64()*20-10, -rng.Float64()*10)
			p.Tint = core.Tint{Color: core.ColorGray, Alpha: 0.4}
			p.Friction = 8
			p.EndTime = now + 0.25
		}
	}
}
