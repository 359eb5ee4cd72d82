package survivors

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-protolab/internal/config"
	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/anim"
	"github.com/vovakirdan/tui-protolab/internal/engine/collide"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
	"github.com/vovakirdan/tui-protolab/internal/engine/particle"
	"github.com/vovakirdan/tui-protolab/internal/platform/logging"
)

// UX is the run state.
type UX int

const (
	UXDefault UX = iota
	UXWin
	UXLose
)

var uxNames = []string{"default", "win", "lose"}

func (u UX) String() string {
	if u < 0 || int(u) >= len(uxNames) {
		return "default"
	}
	return uxNames[u]
}

func parseUX(s string) UX {
	for i, n := range uxNames {
		if n == s {
			return UX(i)
		}
	}
	return UXDefault
}

// Live reports whether the run has not ended.
func (u UX) Live() bool {
	return u == UXDefault
}

// gridCell is the broadphase cell size in world units.
const gridCell = 32

// footstepEvery is the dust interval while the player walks.
const footstepEvery = 0.2

// frame caches per-tick lookups. It is rebuilt at the top of every tick
// and never persisted.
type frame struct {
	player *entity.Entity
	sword  *entity.Entity
}

// World is the complete survivors simulation.
type World struct {
	cfg   config.SurvivorsConfig
	Pool  *entity.Pool
	table entity.Table[*World]

	grid       *collide.Grid
	rng        *rand.Rand
	log        *log.Logger
	camera     *anim.Camera
	particles  *particle.System
	difficulty *config.DifficultyManager
	noise      *perlin.Perlin

	UX        UX
	Elapsed   float64 // survived time; frozen once the run ends
	Now       float64 // simulation clock for expiry; always advances
	Kills     int
	Level     int
	waveTimer float64
	stepTimer float64

	frame    frame
	messages []string
}

// NewWorld builds an empty world. Call Setup to populate it.
func NewWorld(cfg config.SurvivorsConfig, seed int64, logger *log.Logger) *World {
	capacity := cfg.World.PoolCapacity
	if capacity <= 0 {
		capacity = entity.DefaultCapacity
	}
	w := &World{
		cfg:        cfg,
		Pool:       entity.NewPool(capacity),
		grid:       collide.NewGrid(gridCell),
		rng:        rand.New(rand.NewSource(seed)),
		log:        logging.OrDiscard(logger),
		camera:     anim.NewCamera(cfg.Camera.MaxShake),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		noise:      perlin.NewPerlin(cfg.Rocks.Alpha, cfg.Rocks.Beta, cfg.Rocks.Octaves, seed),
	}
	w.particles = particle.New(particle.DefaultCapacity, w.log)
	w.table = newTable()
	return w
}

// Setup resets the pool and places the player, the sword, the first
// monsters and the rock field.
func (w *World) Setup() {
	w.Pool.Reset()
	w.particles.Clear()
	w.UX = UXDefault
	w.Elapsed, w.Now = 0, 0
	w.Kills, w.Level = 0, 1
	w.waveTimer, w.stepTimer = 0, 0
	w.camera.Pos = core.Vec2{}
	w.camera.Shake.Trauma = 0

	player := w.spawn(entity.ArchPlayer)
	player.Pos = core.V2(0, 0)
	w.frame.player = player
	w.frame.sword = w.spawn(entity.ArchWeapon)

	for i := 0; i < w.cfg.Monsters.Initial; i++ {
		w.spawnMonster()
	}
	if w.cfg.Rocks.Enabled {
		w.scatterRocks()
	}
}

// spawn creates an entity through the archetype table.
func (w *World) spawn(arch entity.Archetype) *entity.Entity {
	return w.table.Spawn(w, w.Pool, arch)
}

// Player returns the player entity, or nil before Setup.
func (w *World) Player() *entity.Entity {
	return w.Pool.First(entity.ArchPlayer)
}

func (w *World) refreshFrame() {
	w.frame = frame{player: w.Player()}
	w.Pool.Each(func(e *entity.Entity) {
		if w.frame.sword == nil && e.Arch == entity.ArchWeapon && e.AttachedToPlayer {
			w.frame.sword = e
		}
	})
}

func (w *World) notef(msg string, kv ...any) {
	w.log.Info(msg, kv...)
	w.messages = append(w.messages, msg)
}

// ringPos picks a point on the spawn ring around the player.
func (w *World) ringPos() core.Vec2 {
	lo, hi := w.cfg.Monsters.SpawnMinTile, w.cfg.Monsters.SpawnMaxTile
	if hi < lo {
		hi = lo
	}
	dist := float64(lo+w.rng.Intn(hi-lo+1)) * w.cfg.World.Tile
	pos := core.V2(dist, 0).Rotate(w.rng.Float64() * 2 * math.Pi)
	if p := w.frame.player; p != nil {
		pos = pos.Add(p.Pos)
	}
	return pos
}

func (w *World) spawnMonster() *entity.Entity {
	m := w.spawn(entity.ArchMonster)
	m.Pos = w.ringPos()
	return m
}

func (w *World) spawnBullet() *entity.Entity {
	b := w.spawn(entity.ArchWeapon)
	b.AttachedToPlayer = false
	b.IsLine = true
	b.Collider = entity.ColliderPoint
	b.Size = core.V2(w.cfg.Waves.BulletSize, w.cfg.Waves.BulletSize)
	b.Power = w.cfg.Waves.BulletPower
	b.Speed = w.cfg.Waves.BulletSpeed
	b.Move = core.V2(1, 0).Rotate(w.rng.Float64() * 2 * math.Pi)
	b.Angle = core.Angle(core.V2(1, 0), b.Move)
	b.EndTime = w.Now + w.cfg.Waves.BulletLife
	if p := w.frame.player; p != nil {
		b.Pos = p.Mid()
	}
	return b
}

// room reports whether another entity fits under the population cap.
func (w *World) room() bool {
	limit := w.cfg.Waves.MaxPopulated
	if limit <= 0 || limit > w.Pool.Cap() {
		limit = w.Pool.Cap()
	}
	return w.Pool.Count() < limit
}

// spawnWave is the once-per-interval burst of monsters and bullets.
func (w *World) spawnWave() {
	n := w.difficulty.WaveSize(w.cfg.Waves.Monsters, w.Kills, w.Elapsed)
	spawned := 0
	for i := 0; i < n && w.room(); i++ {
		w.spawnMonster()
		spawned++
	}
	for i := 0; i < w.cfg.Waves.Bullets && w.room(); i++ {
		w.spawnBullet()
	}
	if spawned < n {
		w.log.Debug("wave capped", "wanted", n, "spawned", spawned, "population", w.Pool.Count())
	}
}

// scatterRocks places static terrain where 2D perlin noise peaks, leaving
// a clear zone around the spawn point.
func (w *World) scatterRocks() {
	r, clearZone := w.cfg.Rocks.Radius, w.cfg.Rocks.ClearZone
	tile := w.cfg.World.Tile
	placed := 0
	for ty := -r; ty <= r; ty++ {
		for tx := -r; tx <= r; tx++ {
			if core.Abs(tx) <= clearZone && core.Abs(ty) <= clearZone {
				continue
			}
			if w.noise.Noise2D(float64(tx)*0.15, float64(ty)*0.15) <= w.cfg.Rocks.Threshold {
				continue
			}
			if !w.room() {
				return
			}
			rock := w.spawn(entity.ArchTerrain)
			rock.Pos = core.V2(float64(tx)*tile-tile/2, float64(ty)*tile-tile/2)
			rock.Size = core.V2(tile, tile)
			placed++
		}
	}
	w.log.Debug("rocks scattered", "count", placed)
}

// kill frees a dead monster, sometimes leaving experience behind.
func (w *World) kill(m *entity.Entity) {
	w.Kills++
	w.particles.Emit(particle.KindHit, m.Mid(), w.rng, w.Now)
	pos := m.Pos
	w.Pool.Destroy(m)
	if w.rng.Float64() < w.cfg.Monsters.DropChance {
		pickup := w.spawn(entity.ArchPickup)
		pickup.Pos = pos
	}
}

// offscreen reports whether p is further from the camera than the
// despawn extents.
func (w *World) offscreen(p core.Vec2) bool {
	d := p.Sub(w.camera.Pos)
	sx := w.cfg.World.ScreenW * w.cfg.World.DespawnScale
	sy := w.cfg.World.ScreenH * w.cfg.World.DespawnScale
	return d.X < -sx || d.X > sx || d.Y < -sy || d.Y > sy
}

// levelUp grows the player and the sword once experience is full.
func (w *World) levelUp(p *entity.Entity) {
	lu := w.cfg.LevelUp
	p.Experience.Current = 0
	p.Experience.Max *= lu.ExperienceGrowth
	p.Health.Max *= lu.HealthGrowth
	p.Health.Refill()
	if s := w.frame.sword; s != nil {
		s.Size.X *= lu.SwordGrowth
	}
	w.Level++
	w.notef("level up", "level", w.Level)
}

// Tick advances the world by dt.
func (w *World) Tick(in core.InputFrame, dt float64) {
	w.messages = w.messages[:0]
	w.refreshFrame()
	player := w.frame.player
	if player == nil {
		return
	}

	var axis core.Vec2
	if w.UX.Live() {
		axis = in.Axis()
	}
	player.InputAxis = axis
	player.Move = axis
	if !axis.IsZero() {
		player.Angle = core.Angle(core.V2(1, 0), axis)
	}

	w.camera.Follow(player.Mid(), w.cfg.Camera.FollowRate, dt, w.rng)

	w.grid.Build(w.Pool)
	w.table.Update(w, w.Pool, dt)

	w.Now += dt
	if w.UX.Live() {
		w.Elapsed += dt
		if win := w.cfg.World.WinAfter; win > 0 && w.Elapsed >= win {
			w.UX = UXWin
			w.notef("survived", "seconds", w.Elapsed, "kills", w.Kills)
		}
	}

	if w.cfg.Waves.Enabled && w.cfg.Waves.Interval > 0 {
		w.waveTimer += dt
		for w.waveTimer >= w.cfg.Waves.Interval {
			w.waveTimer -= w.cfg.Waves.Interval
			if w.UX != UXLose {
				w.spawnWave()
			}
		}
	}

	if !axis.IsZero() {
		w.stepTimer += dt
		if w.stepTimer >= footstepEvery {
			w.stepTimer = 0
			w.particles.Emit(particle.KindFootstep, player.Mid().Add(core.V2(0, player.Size.Y/2)), w.rng, w.Now)
		}
	}
	w.particles.Update(w.Now, dt)
}
