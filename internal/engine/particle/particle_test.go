package particle

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-protolab/internal/core"
)

func TestSpawnWrapsAndWarns(t *testing.T) {
	var buf bytes.Buffer
	s := New(4, log.New(&buf))

	for i := 0; i < 4; i++ {
		s.Spawn()
	}
	assert.Equal(t, 4, s.Live())
	assert.Empty(t, buf.String(), "no warning before the ring is full")

	p := s.Spawn()
	assert.Same(t, &s.ring[0], p, "cursor wraps to the first slot")
	assert.Contains(t, buf.String(), "too many particles")
	assert.Equal(t, 4, s.Live())
}

func TestEndTimeExpiry(t *testing.T) {
	s := New(8, nil)
	t0 := 10.0
	p := s.Spawn()
	p.EndTime = t0 + 2.0
	p.Tint = core.Opaque(core.ColorWhite)

	s.Update(t0+2.0, 0.016)
	require.True(t, p.Valid(), "still live exactly at end time")

	s.Update(t0+2.0001, 0.016)
	assert.False(t, p.Valid(), "expired after end time")
	assert.Equal(t, Particle{}, *p, "expired slot is zeroed")

	dl := core.NewDrawList()
	s.Render(dl)
	assert.Equal(t, 0, dl.Len())
}

func TestPhysicsIntegration(t *testing.T) {
	s := New(2, nil)
	p := s.Spawn()
	p.Flags |= FlagPhysics | FlagFriction
	p.Vel = core.V2(100, 0)
	p.Friction = 10

	s.Update(0, 0.1)
	// accel = -v*f = -1000; v += a*dt = 0; pos += 0
	assert.InDelta(t, 0, p.Vel.X, 1e-9)
	assert.InDelta(t, 0, p.Pos.X, 1e-9)
	assert.Equal(t, core.Vec2{}, p.Accel, "acceleration resets each tick")

	q := s.Spawn()
	q.Flags |= FlagPhysics
	q.Vel = core.V2(10, -5)
	s.Update(0, 0.5)
	assert.Equal(t, core.V2(5, -2.5), q.Pos)
}

func TestFrictionNeverReverses(t *testing.T) {
	s := New(1, nil)
	p := s.Spawn()
	p.Flags |= FlagPhysics | FlagFriction
	p.Vel = core.V2(200, 0)
	p.Friction = 20

	s.Update(0, 0.25)
	assert.InDelta(t, 0, p.Vel.X, 1e-9)
}

func TestFadeWithVelocity(t *testing.T) {
	s := New(4, nil)
	s.Emit(KindHit, core.V2(0, 0), rand.New(rand.NewSource(1)), 0)
	require.Equal(t, 4, s.Live())

	for i := range s.ring[:4] {
		p := &s.ring[i]
		assert.InDelta(t, 200, p.Vel.Len(), 1e-9)
		assert.Equal(t, 1.0, Alpha(p), "fast sparks render at full alpha")
	}

	// friction 20 bleeds speed until the sparks settle and vanish
	for i := 0; i < 400 && s.Live() > 0; i++ {
		s.Update(0, 1.0/60)
	}
	assert.Equal(t, 0, s.Live())
}

func TestAlphaScalesWithSpeed(t *testing.T) {
	p := &Particle{Flags: FlagValid | FlagFadeWithVelocity, Tint: core.Opaque(core.ColorWhite), Vel: core.V2(15, 0), FadeRange: 30}
	assert.InDelta(t, 0.5, Alpha(p), 1e-9)
}

func TestFootstep(t *testing.T) {
	s := New(8, nil)
	s.Emit(KindFootstep, core.V2(5, 5), rand.New(rand.NewSource(3)), 1)
	assert.Equal(t, 2, s.Live())
	s.Update(1.3, 0.016)
	assert.Equal(t, 0, s.Live())

	s.Emit(KindHit, core.V2(0, 0), rand.New(rand.NewSource(3)), 0)
	s.Clear()
	assert.Equal(t, 0, s.Live())
}
