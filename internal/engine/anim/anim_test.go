package anim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-protolab/internal/core"
)

func TestApproach(t *testing.T) {
	// rate 1 for one second halves the distance
	v, done := Approach(0, 10, 1, 1)
	assert.InDelta(t, 5, v, 1e-9)
	assert.False(t, done)

	v, done = Approach(9.9995, 10, 1, 1)
	assert.Equal(t, 10.0, v, "snaps within epsilon")
	assert.True(t, done)

	val := 0.0
	arrived := false
	for i := 0; i < 1000 && !arrived; i++ {
		val, arrived = Approach(val, 1, 30, 1.0/60)
	}
	assert.True(t, arrived, "approach must terminate")
	assert.Equal(t, 1.0, val)
}

func TestApproachVec(t *testing.T) {
	v, done := ApproachVec(core.V2(0, 0), core.V2(8, -8), 2, 0.5)
	assert.InDelta(t, 4, v.X, 1e-9)
	assert.InDelta(t, -4, v.Y, 1e-9)
	assert.False(t, done)
}

func TestShake(t *testing.T) {
	s := NewShake(3)
	assert.Equal(t, core.Vec2{}, s.Offset(rand.New(rand.NewSource(1))), "no trauma, no shake")

	s.Add(0.5)
	s.Add(0.8)
	assert.Equal(t, 1.0, s.Trauma, "trauma clamps at 1")

	s.Decay(0.5)
	assert.InDelta(t, 0.5, s.Trauma, 1e-9)
	assert.InDelta(t, 0.25, s.Amount(), 1e-9)

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 100; i++ {
		o := s.Offset(rng)
		require.LessOrEqual(t, math.Abs(o.X), 0.75)
		require.LessOrEqual(t, math.Abs(o.Y), 0.75)
	}

	s.Decay(5)
	assert.Equal(t, 0.0, s.Trauma)

	cubic := Shake{Trauma: 0.5, Power: 3, MaxOffset: 1}
	assert.InDelta(t, 0.125, cubic.Amount(), 1e-9)
}

func TestCameraFollow(t *testing.T) {
	c := NewCamera(3)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 600; i++ {
		c.Follow(core.V2(100, 50), 30, 1.0/60, rng)
	}
	assert.Equal(t, core.V2(100, 50), c.Pos)

	v := c.View(3, 6)
	x, y := v.ToCell(core.V2(100, 50), 80, 24)
	assert.InDelta(t, 40, x, 1e-9, "followed target sits mid screen")
	assert.InDelta(t, 12, y, 1e-9)
}

func TestHelpers(t *testing.T) {
	assert.InDelta(t, 0.5, SinBreathe(0, 1), 1e-9)
	assert.InDelta(t, 1, SinBreathe(math.Pi/2, 1), 1e-9)
	assert.InDelta(t, 0.5, AlphaFromEndTime(9, 10, 2), 1e-9)
	assert.Equal(t, 1.0, AlphaFromEndTime(11, 10, 2))
}
