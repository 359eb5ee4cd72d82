package survivors

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-protolab/internal/config"
	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/collide"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
	"github.com/vovakirdan/tui-protolab/internal/registry"
)

const dt = 1.0 / 60

// quietConfig is the default config with every random spawn source off.
func quietConfig() config.SurvivorsConfig {
	cfg := config.DefaultSurvivorsConfig()
	cfg.Monsters.Initial = 0
	cfg.Monsters.DropChance = 0
	cfg.Waves.Enabled = false
	cfg.Rocks.Enabled = false
	cfg.World.WinAfter = 0
	return cfg
}

func newWorld(t *testing.T, cfg config.SurvivorsConfig) *World {
	t.Helper()
	w := NewWorld(cfg, 42, nil)
	w.Setup()
	return w
}

func newTestGame(cfg config.SurvivorsConfig, snapshotPath string) *Game {
	rt := core.DefaultConfig()
	rt.Seed = 7
	rt.SnapshotPath = snapshotPath
	g := &Game{runtime: rt, cfg: cfg, world: NewWorld(cfg, rt.Seed, nil)}
	g.world.Setup()
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	assert.True(t, registry.Exists(ID))
}

func TestSetup(t *testing.T) {
	w := newWorld(t, config.DefaultSurvivorsConfig())

	player := w.Player()
	require.NotNil(t, player)
	assert.Equal(t, core.V2(0, 0), player.Pos)
	assert.Equal(t, 100.0, player.Health.Current)
	assert.Equal(t, 10, w.Pool.CountArch(entity.ArchMonster))
	assert.Equal(t, 1, w.Pool.CountArch(entity.ArchWeapon))
	assert.Positive(t, w.Pool.CountArch(entity.ArchTerrain), "perlin rocks")

	w.Pool.Each(func(e *entity.Entity) {
		switch e.Arch {
		case entity.ArchMonster:
			d := e.Pos.Len()
			assert.GreaterOrEqual(t, d, 5*16.0-1e-6)
			assert.LessOrEqual(t, d, 15*16.0+1e-6)
		case entity.ArchTerrain:
			assert.True(t, e.Static)
			clear := float64(w.cfg.Rocks.ClearZone) * w.cfg.World.Tile
			assert.False(t, abs(e.Mid().X) <= clear && abs(e.Mid().Y) <= clear, "spawn area stays clear")
		}
	})
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// A monster walking into the attached sword dies within
// health/power seconds of first contact and is freed at once.
func TestSwordKillsApproachingMonster(t *testing.T) {
	w := newWorld(t, quietConfig())
	sword := w.frame.sword
	require.NotNil(t, sword)

	m := w.spawn(entity.ArchMonster)
	m.Pos = core.V2(160, 0)
	require.Equal(t, 25.0, m.Speed)
	require.Equal(t, 50.0, m.Health.Max)
	h := m.Handle

	contactTicks := -1
	for i := 0; i < 600; i++ {
		w.Tick(core.NewInputFrame(), dt)
		e := w.Pool.Get(h)
		if e == nil {
			break
		}
		if contactTicks < 0 && collide.Collides(sword, e) {
			contactTicks = 0
		}
		if contactTicks >= 0 {
			contactTicks++
		}
	}

	require.Nil(t, w.Pool.Get(h), "monster freed")
	require.GreaterOrEqual(t, contactTicks, 0, "monster reached the sword")
	limit := int(50.0/500.0/dt) + 2
	assert.LessOrEqual(t, contactTicks, limit)
	assert.Equal(t, 1, w.Kills)
	assert.Equal(t, 0, w.Pool.CountArch(entity.ArchMonster))
	assert.Positive(t, w.particles.Live(), "hit sparks")
	assert.Equal(t, UXDefault, w.UX)
}

func TestContactDamageAndLose(t *testing.T) {
	w := newWorld(t, quietConfig())
	player := w.Player()
	player.Health.Current = 1

	m := w.spawn(entity.ArchMonster)
	m.Pos = core.V2(-6, -2) // behind the sword, overlapping the player
	m.Health = entity.NewBar(1e9, 0)

	w.Tick(core.NewInputFrame(), dt)
	w.Tick(core.NewInputFrame(), dt)

	assert.Equal(t, UXLose, w.UX)
	assert.True(t, player.Valid, "player hidden, not freed")
	assert.Equal(t, 0.0, player.Tint.Alpha)
	assert.Positive(t, w.camera.Shake.Trauma)

	// input is ignored once the run is over
	before := player.Pos
	w.Tick(press(core.ActionRight), dt)
	assert.Equal(t, before, player.Pos)

	elapsed := w.Elapsed
	w.Tick(core.NewInputFrame(), dt)
	assert.Equal(t, elapsed, w.Elapsed, "survived time freezes")
}

func TestPlayerMovesAndFaces(t *testing.T) {
	w := newWorld(t, quietConfig())
	in := core.NewInputFrame()
	in.Hold(core.ActionUp)
	w.Tick(in, 0.5)

	p := w.Player()
	assert.InDelta(t, -75, p.Pos.Y, 1e-9, "up is -y")
	assert.InDelta(t, -90, p.Angle, 1e-9)

	w.Tick(core.NewInputFrame(), dt)
	assert.InDelta(t, -90, w.frame.sword.Angle, 1e-9, "sword follows facing")
}

func TestLevelUp(t *testing.T) {
	w := newWorld(t, quietConfig())
	p := w.Player()
	p.Experience.Current = p.Experience.Max
	p.Health.Current = 10

	w.Tick(core.NewInputFrame(), dt)

	assert.Equal(t, 2, w.Level)
	assert.Equal(t, 0.0, p.Experience.Current)
	assert.InDelta(t, 110, p.Experience.Max, 1e-9)
	assert.InDelta(t, 105, p.Health.Max, 1e-9)
	assert.InDelta(t, 105, p.Health.Current, 1e-9)
	assert.InDelta(t, 35.35, w.frame.sword.Size.X, 1e-9)
}

func TestPickupGrantsExperience(t *testing.T) {
	w := newWorld(t, quietConfig())
	pk := w.spawn(entity.ArchPickup)
	pk.Pos = core.V2(2, 2)
	h := pk.Handle

	w.Tick(core.NewInputFrame(), dt)
	assert.Nil(t, w.Pool.Get(h))
	assert.Equal(t, 50.0, w.Player().Experience.Current)
}

func TestMonsterDropsExperience(t *testing.T) {
	cfg := quietConfig()
	cfg.Monsters.DropChance = 1
	w := newWorld(t, cfg)

	m := w.spawn(entity.ArchMonster)
	m.Pos = core.V2(100, 100)
	m.Health.Current = 0
	w.Tick(core.NewInputFrame(), dt)

	assert.Equal(t, 1, w.Pool.CountArch(entity.ArchPickup))
}

func TestOffscreenMonsterDespawns(t *testing.T) {
	w := newWorld(t, quietConfig())
	m := w.spawn(entity.ArchMonster)
	m.Pos = core.V2(10000, 0)
	h := m.Handle

	w.Tick(core.NewInputFrame(), dt)
	assert.Nil(t, w.Pool.Get(h))
	assert.Zero(t, w.Kills, "despawn is not a kill")
}

func TestBulletFadesBeforeExpiry(t *testing.T) {
	w := newWorld(t, quietConfig())
	b := w.spawnBullet()
	b.EndTime = 10

	tint, glyph := weaponLook(b, 5)
	assert.Equal(t, 1.0, tint.Alpha)
	assert.Equal(t, LineGlyph(b.Angle), glyph)

	tint, glyph = weaponLook(b, 10-bulletFade/2)
	assert.InDelta(t, 0.5, tint.Alpha, 1e-9)
	assert.Zero(t, glyph, "fading bullets shade by alpha")

	tint, _ = weaponLook(b, 10)
	assert.False(t, tint.Visible())

	sword := w.frame.sword
	require.NotNil(t, sword)
	tint, _ = weaponLook(sword, 1e6)
	assert.Equal(t, sword.Tint, tint, "attached weapons never fade")
}

func TestBulletsExpire(t *testing.T) {
	w := newWorld(t, quietConfig())
	b := w.spawnBullet()
	h := b.Handle
	require.Equal(t, w.Now+2, b.EndTime)

	for i := 0; i < 60; i++ {
		w.Tick(core.NewInputFrame(), dt)
	}
	require.NotNil(t, w.Pool.Get(h))
	assert.InDelta(t, 250, b.Pos.Sub(core.V2(4, 4)).Len(), 1, "flies at bullet speed")

	for i := 0; i < 70; i++ {
		w.Tick(core.NewInputFrame(), dt)
	}
	assert.Nil(t, w.Pool.Get(h))
}

func TestWaveSpawns(t *testing.T) {
	cfg := quietConfig()
	cfg.Waves.Enabled = true
	cfg.Difficulty.Enabled = false
	w := newWorld(t, cfg)

	w.Tick(core.NewInputFrame(), 1.0)
	assert.Equal(t, 40, w.Pool.CountArch(entity.ArchMonster))
	assert.Equal(t, 1+15, w.Pool.CountArch(entity.ArchWeapon))
}

func TestWaveRespectsPopulationCap(t *testing.T) {
	cfg := quietConfig()
	cfg.Waves.Enabled = true
	cfg.Waves.MaxPopulated = 20
	w := newWorld(t, cfg)

	w.Tick(core.NewInputFrame(), 1.0)
	assert.LessOrEqual(t, w.Pool.Count(), 20)
}

func TestWinAfterSurviving(t *testing.T) {
	cfg := quietConfig()
	cfg.World.WinAfter = 1
	w := newWorld(t, cfg)

	for i := 0; i < 61; i++ {
		w.Tick(core.NewInputFrame(), dt)
	}
	assert.Equal(t, UXWin, w.UX)
}

func TestDeterminism(t *testing.T) {
	cfg := config.DefaultSurvivorsConfig()
	run := func() *World {
		w := NewWorld(cfg, 99, nil)
		w.Setup()
		for i := 0; i < 240; i++ {
			in := core.NewInputFrame()
			if i%40 < 20 {
				in.Hold(core.ActionRight)
			} else {
				in.Hold(core.ActionDown)
			}
			w.Tick(in, dt)
		}
		return w
	}
	a, b := run(), run()
	assert.Equal(t, a.Capture().Entities, b.Capture().Entities)
	assert.Equal(t, a.Kills, b.Kills)
}

func TestSaveLoadThroughStep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survivors.plab")
	g := newTestGame(quietConfig(), path)
	m := g.world.spawn(entity.ArchMonster)
	m.Pos = core.V2(100, 0)
	g.world.Kills = 4

	res := g.Step(press(core.ActionSave), dt)
	assert.Contains(t, res.Messages, "saved")
	saved := g.world.Capture().Entities

	g.world.Kills = 0
	g.world.Pool.Destroy(g.world.Pool.Get(m.Handle))

	res = g.Step(press(core.ActionLoad), dt)
	assert.Contains(t, res.Messages, "loaded")
	assert.Equal(t, 4, g.world.Kills)
	assert.Equal(t, len(saved), g.world.Pool.Count())
	assert.NotNil(t, g.world.frame.sword)
}

func TestLoadFailureKeepsWorld(t *testing.T) {
	g := newTestGame(quietConfig(), filepath.Join(t.TempDir(), "missing.plab"))
	before := g.world.Pool.Count()

	res := g.Step(press(core.ActionLoad), dt)
	require.Len(t, res.Messages, 1)
	assert.True(t, strings.HasPrefix(res.Messages[0], "load failed"))
	assert.Equal(t, before, g.world.Pool.Count())
}

func TestSnapshotsDisabledWithoutPath(t *testing.T) {
	g := newTestGame(quietConfig(), "")
	res := g.Step(press(core.ActionSave), dt)
	assert.Contains(t, res.Messages, "snapshots disabled")
}

func TestRestart(t *testing.T) {
	g := newTestGame(quietConfig(), "")
	g.world.Player().Health.Current = 0
	g.Step(core.NewInputFrame(), dt)
	require.True(t, g.State().GameOver)
	assert.Equal(t, core.OutcomeLose, g.State().Outcome)

	g.Step(press(core.ActionRestart), dt)
	assert.False(t, g.State().GameOver)
	assert.Equal(t, 100.0, g.world.Player().Health.Current)
}

func TestRender(t *testing.T) {
	g := newTestGame(config.DefaultSurvivorsConfig(), "")
	g.Step(core.NewInputFrame(), dt)

	dl := core.NewDrawList()
	g.Render(dl)
	screen := core.NewScreen(80, 24)
	dl.Flush(screen)

	out := screen.String()
	assert.Contains(t, out, "@")
	assert.Contains(t, out, "HP 100/100")
}

func TestLineGlyph(t *testing.T) {
	tests := []struct {
		deg  float64
		want rune
	}{
		{0, '─'}, {180, '─'}, {-90, '│'}, {90, '│'}, {45, '╲'}, {-45, '╱'}, {135, '╱'},
	}
	for _, tt := range tests {
		if got := LineGlyph(tt.deg); got != tt.want {
			t.Errorf("LineGlyph(%v) = %q, expected %q", tt.deg, got, tt.want)
		}
	}
}
