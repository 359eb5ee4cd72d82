package maze

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-protolab/internal/config"
	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/anim"
	"github.com/vovakirdan/tui-protolab/internal/engine/collide"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
	mz "github.com/vovakirdan/tui-protolab/internal/engine/maze"
	"github.com/vovakirdan/tui-protolab/internal/platform/logging"
)

// UX is the chase state.
type UX int

const (
	UXDefault UX = iota
	UXSword
	UXWin
	UXLose
)

var uxNames = []string{"default", "sword", "win", "lose"}

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

// Over reports whether the chase has ended.
func (u UX) Over() bool {
	return u == UXWin || u == UXLose
}

// inset keeps actors off the walls they spawn next to.
const inset = 2

type frame struct {
	player  *entity.Entity
	monster *entity.Entity
	sword   *entity.Entity
}

// World is the maze chase.
type World struct {
	cfg    config.MazeConfig
	Pool   *entity.Pool
	table  entity.Table[*World]
	Maze   *mz.Grid
	walls  *collide.Grid
	rng    *rand.Rand
	log    *log.Logger
	camera *anim.Camera

	UX      UX
	Elapsed float64
	// Probes holds the distance to the nearest wall along each of the
	// monster's four axes, or +Inf when a probe hits nothing.
	Probes [4]float64
	// Reachable counts the tiles walkable from the player tile at Setup.
	Reachable int

	frame    frame
	messages []string
}

// NewWorld builds an empty maze world. Call Setup to carve and populate it.
func NewWorld(cfg config.MazeConfig, seed int64, logger *log.Logger) *World {
	capacity := cfg.Grid.PoolCapacity
	if capacity <= 0 {
		capacity = entity.DefaultCapacity
	}
	w := &World{
		cfg:    cfg,
		Pool:   entity.NewPool(capacity),
		walls:  collide.NewGrid(cfg.Grid.Tile * 2),
		rng:    rand.New(rand.NewSource(seed)),
		log:    logging.OrDiscard(logger),
		camera: anim.NewCamera(cfg.Camera.MaxShake),
	}
	w.table = newTable()
	return w
}

// tilePos is the spawn point inside tile (tx, ty).
func (w *World) tilePos(tx, ty int) core.Vec2 {
	t := w.cfg.Grid.Tile
	return core.V2(inset+float64(tx)*t, inset+float64(ty)*t)
}

// Setup carves a new maze, turns its walls into static terrain and places
// the player, the monster and the sword.
func (w *World) Setup() {
	w.Pool.Reset()
	w.UX = UXDefault
	w.Elapsed = 0
	w.camera.Pos = core.Vec2{}

	c := w.cfg
	w.Maze = mz.NewGrid(c.Grid.Width, c.Grid.Height)
	w.Maze.Carve(w.rng)

	player := w.spawn(entity.ArchPlayer)
	player.Pos = w.tilePos(c.Player.TileX, c.Player.TileY)
	monster := w.spawn(entity.ArchMonster)
	monster.Pos = w.tilePos(c.Monster.TileX, c.Monster.TileY)
	sword := w.spawn(entity.ArchPowerup)
	sword.Pos = w.tilePos(c.Sword.TileX, c.Sword.TileY)

	segs := w.Maze.WallSegments(c.Grid.Tile, c.Grid.Wall)
	for _, s := range segs {
		wall := w.spawn(entity.ArchTerrain)
		wall.Pos, wall.Size = s.Pos, s.Size
	}
	w.indexWalls()
	w.refreshFrame()
	w.camera.Pos = player.Mid()
	w.Reachable = w.Maze.Reachable(c.Player.TileX, c.Player.TileY)
	if tiles := c.Grid.Width * c.Grid.Height; w.Reachable != tiles {
		w.log.Warn("maze not fully reachable from the player tile",
			"reachable", w.Reachable, "tiles", tiles, "tile_x", c.Player.TileX, "tile_y", c.Player.TileY)
	}
	w.log.Debug("maze carved", "walls", len(segs), "removed", w.Maze.Removed())
}

// indexWalls rebuilds the static broadphase. Walls never move, so this
// runs only after setup or a load.
func (w *World) indexWalls() {
	w.walls.Clear()
	w.Pool.Each(func(e *entity.Entity) {
		if e.Arch == entity.ArchTerrain {
			w.walls.Insert(e)
		}
	})
}

func (w *World) spawn(arch entity.Archetype) *entity.Entity {
	return w.table.Spawn(w, w.Pool, arch)
}

func (w *World) refreshFrame() {
	w.frame = frame{
		player:  w.Pool.First(entity.ArchPlayer),
		monster: w.Pool.First(entity.ArchMonster),
		sword:   w.Pool.First(entity.ArchPowerup),
	}
}

// Player returns the player entity.
func (w *World) Player() *entity.Entity { return w.frame.player }

// Monster returns the monster entity.
func (w *World) Monster() *entity.Entity { return w.frame.monster }

// Sword returns the sword powerup.
func (w *World) Sword() *entity.Entity { return w.frame.sword }

// nearWalls visits every wall that may touch s.
func (w *World) nearWalls(s collide.Shape, fn func(wall *entity.Entity)) {
	w.walls.Near(s, func(h entity.Handle) {
		if e := w.Pool.Get(h); e != nil && e.Arch == entity.ArchTerrain {
			fn(e)
		}
	})
}

// slide clips e's move against every nearby wall.
func (w *World) slide(e *entity.Entity, dt float64) {
	step := e.Speed * dt
	reach := collide.Rect(e.Pos.Sub(core.V2(step, step)), e.Size.Add(core.V2(2*step, 2*step)))
	w.nearWalls(reach, func(wall *entity.Entity) {
		e.Move = collide.SlideStatic(collide.MoverOf(e), collide.ShapeOf(wall), dt)
	})
}

// probe measures the distance to the closest wall the monster would sweep
// into along ray. Distance is taken to the nearest of the wall's corner,
// midpoint and far corner.
func (w *World) probe(m *entity.Entity, ray core.Vec2) float64 {
	body := collide.ShapeOf(m)
	lo := core.V2(math.Min(0, ray.X), math.Min(0, ray.Y))
	hi := core.V2(math.Max(0, ray.X), math.Max(0, ray.Y))
	swept := collide.Rect(m.Pos.Add(lo), m.Size.Add(hi.Sub(lo)))

	best := math.Inf(1)
	w.nearWalls(swept, func(wall *entity.Entity) {
		if !collide.RayHits(ray, body, collide.ShapeOf(wall)) {
			return
		}
		for _, p := range []core.Vec2{wall.Pos, wall.Mid(), wall.Pos.Add(wall.Size)} {
			best = math.Min(best, p.Dist(m.Pos))
		}
	})
	return best
}

// Tick advances the chase by dt.
func (w *World) Tick(in core.InputFrame, dt float64) {
	w.messages = w.messages[:0]
	w.refreshFrame()
	player := w.frame.player
	if player == nil || w.frame.monster == nil {
		return
	}

	var axis core.Vec2
	if !w.UX.Over() {
		axis = in.Axis()
	}
	player.InputAxis = axis
	player.Move = axis

	w.table.Update(w, w.Pool, dt)
	if !w.UX.Over() {
		w.Elapsed += dt
	}
	w.camera.Follow(player.Mid(), w.cfg.Camera.FollowRate, dt, w.rng)
}

func (w *World) notef(msg string, kv ...any) {
	w.log.Info(msg, kv...)
	w.messages = append(w.messages, msg)
}
