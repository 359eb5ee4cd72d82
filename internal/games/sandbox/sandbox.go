// Package sandbox is the movement sandbox: a player walking over a
// checkerboard among tile-snapped citizens, with an fps readout.
package sandbox

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-protolab/internal/config"
	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/anim"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
	"github.com/vovakirdan/tui-protolab/internal/engine/snapshot"
	"github.com/vovakirdan/tui-protolab/internal/platform/logging"
	"github.com/vovakirdan/tui-protolab/internal/registry"
)

// ID is the registry identifier.
const ID = "sandbox"

const poolCapacity = 64

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

func init() {
	registry.Register(ID, func() registry.Game { return New() })
}

// Sprite names.
const (
	SpritePlayer  core.Sprite = "player"
	SpriteCitizen core.Sprite = "citizen"
)

var sheet = core.NewSpriteSheet('?', map[core.Sprite]rune{
	SpritePlayer:  '@',
	SpriteCitizen: '&',
})

// TileOf converts a world coordinate to the nearest tile index.
func TileOf(pos, tile float64) int {
	return int(math.Round(pos / tile))
}

// SnapToTile moves a world coordinate onto the nearest tile centre.
func SnapToTile(pos, tile float64) float64 {
	return float64(TileOf(pos, tile)) * tile
}

// World is the sandbox simulation.
type World struct {
	cfg    config.SandboxConfig
	Pool   *entity.Pool
	table  entity.Table[*World]
	rng    *rand.Rand
	log    *log.Logger
	camera *anim.Camera

	Now      float64
	counter  float64
	frames   int
	LastFPS  int
	text     entity.Handle
	messages []string
}

// NewWorld builds an empty sandbox. Call Setup to populate it.
func NewWorld(cfg config.SandboxConfig, seed int64, logger *log.Logger) *World {
	w := &World{
		cfg:    cfg,
		Pool:   entity.NewPool(poolCapacity),
		rng:    rand.New(rand.NewSource(seed)),
		log:    logging.OrDiscard(logger),
		camera: anim.NewCamera(cfg.Camera.MaxShake),
	}
	w.table[entity.ArchPlayer] = entity.Behavior[*World]{Setup: setupPlayer, Update: updatePlayer, Render: renderSprite}
	w.table[entity.ArchCitizen] = entity.Behavior[*World]{Setup: setupCitizen, Update: updateCitizen, Render: renderSprite}
	w.table[entity.ArchText] = entity.Behavior[*World]{Setup: setupText, Render: renderText}
	return w
}

// Setup places the player at the origin, the citizens on a descending
// diagonal and the fps readout.
func (w *World) Setup() {
	w.Pool.Reset()
	w.Now, w.counter, w.frames, w.LastFPS = 0, 0, 0, 0
	w.camera.Pos = core.Vec2{}

	w.table.Spawn(w, w.Pool, entity.ArchPlayer)
	tile := w.cfg.Tile
	for i := 0; i < w.cfg.Citizens; i++ {
		c := w.table.Spawn(w, w.Pool, entity.ArchCitizen)
		c.Pos = core.V2(-2*float64(i)*tile, -float64(i)*tile+tile)
	}
	w.text = w.table.Spawn(w, w.Pool, entity.ArchText).Handle
}

func setupPlayer(w *World, e *entity.Entity) {
	e.Name = "player"
	e.IsSprite = true
	e.Sprite = SpritePlayer
	e.Speed = w.cfg.PlayerSpeed
	e.Collider = entity.ColliderPoint
	e.Tint = core.Opaque(core.ColorBrightWhite)
}

func setupCitizen(w *World, e *entity.Entity) {
	e.Name = fmt.Sprintf("citizen %d", w.Pool.CountArch(entity.ArchCitizen))
	e.IsSprite = true
	e.Sprite = SpriteCitizen
	e.Collider = entity.ColliderPoint
	e.Tint = core.Opaque(core.ColorBrightCyan)
}

func setupText(w *World, e *entity.Entity) {
	e.Name = "fps: 0"
	e.Tint = core.Opaque(core.ColorBrightWhite)
}

func updatePlayer(w *World, e *entity.Entity, dt float64) {
	e.Move = e.InputAxis
	e.Integrate(dt)
}

// updateCitizen keeps citizens on tile centres.
func updateCitizen(w *World, e *entity.Entity, dt float64) {
	e.Pos = core.V2(SnapToTile(e.Pos.X, w.cfg.Tile), SnapToTile(e.Pos.Y, w.cfg.Tile))
}

// Player returns the player entity.
func (w *World) Player() *entity.Entity {
	return w.Pool.First(entity.ArchPlayer)
}

// Text returns the fps readout entity.
func (w *World) Text() *entity.Entity {
	return w.Pool.Get(w.text)
}

// Tick moves the player and refreshes the fps readout once a second.
func (w *World) Tick(in core.InputFrame, dt float64) {
	w.messages = w.messages[:0]
	player := w.Player()
	if player == nil {
		return
	}
	player.InputAxis = in.Axis()
	w.table.Update(w, w.Pool, dt)
	w.camera.Follow(player.Pos, w.cfg.Camera.FollowRate, dt, w.rng)
	w.Now += dt

	w.counter += dt
	w.frames++
	if w.counter > 1.0 {
		w.LastFPS = w.frames
		w.frames, w.counter = 0, 0
		if t := w.Text(); t != nil {
			t.Name = fmt.Sprintf("fps: %d", w.LastFPS)
		}
	}
}

func renderSprite(w *World, e *entity.Entity, dl *core.DrawList) {
	dl.PushLayer(core.LayerWorld)
	dl.Sprite(sheet, e.Sprite, e.Pos, e.Tint)
	dl.PopLayer()
}

// renderText draws the readout on the bottom row, in screen space.
func renderText(w *World, e *entity.Entity, dl *core.DrawList) {
	dl.SetSpace(core.SpaceScreen)
	dl.PushLayer(core.LayerText)
	dl.Text(e.Pos, e.Name, e.Tint)
	dl.PopLayer()
	dl.SetSpace(core.SpaceWorld)
}

// Render submits the checkerboard and every entity.
func (w *World) Render(dl *core.DrawList, screenW, screenH int) {
	dl.SetView(w.camera.View(w.cfg.Camera.CellW, w.cfg.Camera.CellH))
	dl.SetSpace(core.SpaceWorld)

	if t := w.Text(); t != nil {
		t.Pos = core.V2(0, float64(screenH-1))
	}

	tile := w.cfg.Tile
	px, py := 0, 0
	if p := w.Player(); p != nil {
		px, py = TileOf(p.Pos.X, tile), TileOf(p.Pos.Y, tile)
	}
	dl.PushLayer(core.LayerStageFG)
	tint := core.Tint{Color: core.ColorDarkGray, Alpha: 0.1}
	for x := px - w.cfg.TileRadiusX; x < px+w.cfg.TileRadiusX; x++ {
		for y := py - w.cfg.TileRadiusY; y < py+w.cfg.TileRadiusY; y++ {
			odd := 0
			if y%2 == 0 {
				odd = 1
			}
			if (x+odd)%2 != 0 {
				continue
			}
			dl.Rect(core.V2(float64(x)*tile-tile/2, float64(y)*tile-tile/2), core.V2(tile, tile), '·', tint)
		}
	}
	dl.PopLayer()

	w.table.Render(w, w.Pool, dl)
}

// Capture builds a snapshot of the sandbox.
func (w *World) Capture() *snapshot.Document {
	doc := snapshot.Capture(ID, w.Pool, w.Now, "default")
	doc.Values = map[string]float64{"camera_x": w.camera.Pos.X, "camera_y": w.camera.Pos.Y}
	return doc
}

// Restore replaces the sandbox with a loaded document.
func (w *World) Restore(doc *snapshot.Document) error {
	if err := doc.Apply(w.Pool); err != nil {
		return err
	}
	w.Now = doc.Time
	w.camera.Pos = core.V2(doc.Values["camera_x"], doc.Values["camera_y"])
	w.text = entity.Handle(-1)
	if t := w.Pool.First(entity.ArchText); t != nil {
		w.text = t.Handle
	}
	return nil
}

// Game adapts World to the registry interface.
type Game struct {
	runtime core.RuntimeConfig
	world   *World
}

// New creates a sandbox game. Call Reset before stepping.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Sandbox" }

// Reset loads the config and rebuilds the sandbox.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	cfg, err := config.LoadSandbox(configPath)
	if err != nil {
		if runtime.Logger != nil {
			runtime.Logger.Warn("config load failed, using defaults", "game", ID, "error", err)
		}
		cfg = config.DefaultSandboxConfig()
	}
	g.world = NewWorld(cfg, runtime.Seed, runtime.Logger)
	g.world.Setup()
}

// World exposes the simulation for tests and tools.
func (g *Game) World() *World { return g.world }

// Step advances the sandbox by dt seconds.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if in.Has(core.ActionRestart) || in.Has(core.ActionDebugReset) {
		g.world.Setup()
		return core.StepResult{State: g.State(), Messages: []string{"reset"}}
	}
	g.world.Tick(in, dt)

	var msgs []string
	path := g.runtime.SnapshotPath
	switch {
	case !in.Has(core.ActionSave) && !in.Has(core.ActionLoad):
	case path == "":
		msgs = append(msgs, "snapshots disabled")
	case in.Has(core.ActionSave):
		if err := snapshot.Save(path, g.world.Capture()); err != nil {
			g.world.log.Error("snapshot save failed", "path", path, "error", err)
			msgs = append(msgs, fmt.Sprintf("save failed: %v", err))
		} else {
			msgs = append(msgs, "saved")
		}
	default:
		doc, err := snapshot.Load(path, ID)
		if err == nil {
			err = g.world.Restore(doc)
		}
		if err != nil {
			g.world.log.Warn("snapshot load failed", "path", path, "error", err)
			msgs = append(msgs, fmt.Sprintf("load failed: %v", err))
		} else {
			msgs = append(msgs, "loaded")
		}
	}
	return core.StepResult{State: g.State(), Messages: msgs}
}

// Render submits the current frame into the draw list.
func (g *Game) Render(dl *core.DrawList) {
	g.world.Render(dl, g.runtime.ScreenW, g.runtime.ScreenH)
}

// State returns the current game state. The sandbox never ends.
func (g *Game) State() core.GameState {
	w := g.world
	return core.GameState{
		Elapsed: w.Now,
		Status:  fmt.Sprintf("fps %d", w.LastFPS),
	}
}
