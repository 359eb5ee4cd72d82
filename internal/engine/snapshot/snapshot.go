// Package snapshot persists a prototype world to disk.
//
// A snapshot file is the four byte magic "PLAB", a big-endian uint16 format
// version, then a zstd-compressed YAML document. Loading never touches the
// caller's world: on any error the caller keeps what it has.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
)

// Version is the current on-disk format version.
const Version = 1

var magic = []byte("PLAB")

const headerLen = 6

var (
	ErrNoSnapshot = errors.New("snapshot: no snapshot file")
	ErrCorrupt    = errors.New("snapshot: corrupt file")
	ErrVersion    = errors.New("snapshot: unsupported format version")
	ErrWrongGame  = errors.New("snapshot: saved by a different prototype")
)

// Document is the persisted world.
type Document struct {
	Version  int                `yaml:"version"`
	Game     string             `yaml:"game"`
	ID       string             `yaml:"id"`
	SavedAt  time.Time          `yaml:"saved_at"`
	Time     float64            `yaml:"time"`
	UXState  string             `yaml:"ux_state"`
	Values   map[string]float64 `yaml:"values,omitempty"`
	Entities []Record           `yaml:"entities"`
}

// Vec is a YAML-friendly vector.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func vec(v core.Vec2) Vec { return Vec{X: v.X, Y: v.Y} }

func (v Vec) core() core.Vec2 { return core.V2(v.X, v.Y) }

// Record is one valid pool slot.
type Record struct {
	Handle int    `yaml:"handle"`
	Arch   string `yaml:"arch"`
	Name   string `yaml:"name,omitempty"`

	Pos      Vec     `yaml:"pos"`
	Size     Vec     `yaml:"size"`
	Angle    float64 `yaml:"angle,omitempty"`
	Move     Vec     `yaml:"move"`
	Speed    float64 `yaml:"speed,omitempty"`
	Collider int     `yaml:"collider"`
	Static   bool    `yaml:"static,omitempty"`

	Color    int     `yaml:"color"`
	Alpha    float64 `yaml:"alpha"`
	Sprite   string  `yaml:"sprite,omitempty"`
	IsSprite bool    `yaml:"is_sprite,omitempty"`
	IsLine   bool    `yaml:"is_line,omitempty"`
	Glyph    string  `yaml:"glyph,omitempty"`

	Health     entity.Bar `yaml:"health"`
	Mana       entity.Bar `yaml:"mana"`
	TimeBar    entity.Bar `yaml:"time"`
	Experience entity.Bar `yaml:"experience"`
	Stats      []float64  `yaml:"stats,flow"`
	Resists    []float64  `yaml:"resists,flow"`
	Invincible bool       `yaml:"invincible,omitempty"`

	AttachedToPlayer bool    `yaml:"attached,omitempty"`
	InputAxis        Vec     `yaml:"input_axis"`
	Power            float64 `yaml:"power,omitempty"`
	EndTime          float64 `yaml:"end_time,omitempty"`
	State            int     `yaml:"state,omitempty"`
}

// FromEntity captures an entity.
func FromEntity(e *entity.Entity) Record {
	r := Record{
		Handle:           int(e.Handle),
		Arch:             e.Arch.String(),
		Name:             e.Name,
		Pos:              vec(e.Pos),
		Size:             vec(e.Size),
		Angle:            e.Angle,
		Move:             vec(e.Move),
		Speed:            e.Speed,
		Collider:         int(e.Collider),
		Static:           e.Static,
		Color:            int(e.Tint.Color),
		Alpha:            e.Tint.Alpha,
		Sprite:           string(e.Sprite),
		IsSprite:         e.IsSprite,
		IsLine:           e.IsLine,
		Health:           e.Health,
		Mana:             e.Mana,
		TimeBar:          e.Time,
		Experience:       e.Experience,
		Stats:            append([]float64(nil), e.Stats[:]...),
		Resists:          append([]float64(nil), e.Resists[:]...),
		Invincible:       e.Invincible,
		AttachedToPlayer: e.AttachedToPlayer,
		InputAxis:        vec(e.InputAxis),
		Power:            e.Power,
		EndTime:          e.EndTime,
		State:            e.State,
	}
	if e.Glyph != 0 {
		r.Glyph = string(e.Glyph)
	}
	return r
}

// Entity rebuilds a valid entity from the record.
func (r Record) Entity() entity.Entity {
	e := entity.Entity{
		Valid:  true,
		Handle: entity.Handle(r.Handle),
		Arch:   entity.ParseArchetype(r.Arch),
		Name:   r.Name,
	}
	e.Body = entity.Body{
		Pos:      r.Pos.core(),
		Size:     r.Size.core(),
		Angle:    r.Angle,
		Move:     r.Move.core(),
		Speed:    r.Speed,
		Collider: entity.Collider(r.Collider),
		Static:   r.Static,
	}
	e.Look = entity.Look{
		Tint:     core.Tint{Color: core.Color(r.Color), Alpha: r.Alpha},
		Sprite:   core.Sprite(r.Sprite),
		IsSprite: r.IsSprite,
		IsLine:   r.IsLine,
	}
	for _, g := range r.Glyph {
		e.Glyph = g
		break
	}
	e.Health, e.Mana, e.Time, e.Experience = r.Health, r.Mana, r.TimeBar, r.Experience
	copy(e.Stats[:], r.Stats)
	copy(e.Resists[:], r.Resists)
	e.Invincible = r.Invincible
	e.AttachedToPlayer = r.AttachedToPlayer
	e.InputAxis = r.InputAxis.core()
	e.Power = r.Power
	e.EndTime = r.EndTime
	e.State = r.State
	return e
}

// Capture builds a document holding every valid entity of p.
func Capture(game string, p *entity.Pool, now float64, ux string) *Document {
	doc := &Document{
		Version: Version,
		Game:    game,
		ID:      uuid.NewString(),
		SavedAt: time.Now().UTC(),
		Time:    now,
		UXState: ux,
	}
	p.Each(func(e *entity.Entity) {
		doc.Entities = append(doc.Entities, FromEntity(e))
	})
	return doc
}

// Apply resets p and restores every record into its original slot.
func (d *Document) Apply(p *entity.Pool) error {
	for _, r := range d.Entities {
		if r.Handle < 0 || r.Handle >= p.Cap() {
			return fmt.Errorf("snapshot: handle %d outside pool of %d: %w", r.Handle, p.Cap(), ErrCorrupt)
		}
	}
	p.Reset()
	for _, r := range d.Entities {
		p.Restore(r.Entity())
	}
	return nil
}

// Encode serialises the document with its header.
func Encode(d *Document) ([]byte, error) {
	body, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("snapshot: cannot marshal document: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot: cannot create encoder: %w", err)
	}
	defer enc.Close()

	out := make([]byte, headerLen, headerLen+len(body)/2)
	copy(out, magic)
	binary.BigEndian.PutUint16(out[4:], uint16(d.Version))
	return enc.EncodeAll(body, out), nil
}

// Decode parses a snapshot and checks it belongs to game. An empty game
// accepts any prototype.
func Decode(data []byte, game string) (*Document, error) {
	if len(data) < headerLen || !bytes.Equal(data[:4], magic) {
		return nil, ErrCorrupt
	}
	if v := int(binary.BigEndian.Uint16(data[4:headerLen])); v != Version {
		return nil, fmt.Errorf("snapshot: file is format %d, this build reads %d: %w", v, Version, ErrVersion)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot: cannot create decoder: %w", err)
	}
	defer dec.Close()

	body, err := dec.DecodeAll(data[headerLen:], nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %v: %w", err, ErrCorrupt)
	}
	var doc Document
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("snapshot: %v: %w", err, ErrCorrupt)
	}
	if doc.Version != Version {
		return nil, fmt.Errorf("snapshot: document is format %d, this build reads %d: %w", doc.Version, Version, ErrVersion)
	}
	if game != "" && doc.Game != game {
		return nil, fmt.Errorf("snapshot: file belongs to %q, not %q: %w", doc.Game, game, ErrWrongGame)
	}
	return &doc, nil
}

// Save writes d to path atomically.
func Save(path string, d *Document) error {
	data, err := Encode(d)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("snapshot: cannot create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("snapshot: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: cannot write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: cannot write: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("snapshot: cannot replace %s: %w", path, err)
	}
	return nil
}

// Load reads the snapshot at path for game.
func Load(path, game string) (*Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: cannot read %s: %w", path, err)
	}
	return Decode(data, game)
}

// DefaultPath returns ~/.protolab/snapshots/<game>.plab.
func DefaultPath(game string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("snapshot: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, ".protolab", "snapshots", game+".plab"), nil
}
