package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-protolab/internal/core"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
)

func samplePool() *entity.Pool {
	p := entity.NewPool(32)
	pl := p.Create()
	pl.Arch = entity.ArchPlayer
	pl.Pos = core.V2(3, -4)
	pl.Size = core.V2(10, 10)
	pl.Collider = entity.ColliderRect
	pl.Tint = core.Opaque(core.ColorYellow)
	pl.Glyph = '@'
	pl.Health = entity.NewBar(100, 0)
	pl.Stats[entity.StatStr] = 7

	gap := p.Create()
	m := p.Create()
	m.Arch = entity.ArchMonster
	m.Speed = 50
	m.Move = core.V2(1, 0)
	m.Resists[entity.ElementFire] = 2
	p.Destroy(gap)
	return p
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p := samplePool()
	path := filepath.Join(t.TempDir(), "nested", "survivors.plab")

	doc := Capture("survivors", p, 12.5, "default")
	doc.Values = map[string]float64{"kills": 3}
	require.NoError(t, Save(path, doc))

	got, err := Load(path, "survivors")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, 12.5, got.Time)
	assert.Equal(t, "default", got.UXState)
	assert.Equal(t, 3.0, got.Values["kills"])
	require.Len(t, got.Entities, 2)

	restored := entity.NewPool(32)
	require.NoError(t, got.Apply(restored))
	assert.Equal(t, 2, restored.Count())
	assert.Nil(t, restored.Get(1), "freed slot stays free")

	pl := restored.Get(0)
	require.NotNil(t, pl)
	assert.Equal(t, *p.Get(0), *pl)
	assert.Equal(t, *p.Get(2), *restored.Get(2))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.plab"), "maze")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestDecodeErrors(t *testing.T) {
	data, err := Encode(Capture("maze", samplePool(), 0, "default"))
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
		game string
		want error
	}{
		{"short", []byte("PL"), "maze", ErrCorrupt},
		{"bad magic", append([]byte("NOPE"), data[4:]...), "maze", ErrCorrupt},
		{"version", append([]byte{'P', 'L', 'A', 'B', 0, 9}, data[headerLen:]...), "maze", ErrVersion},
		{"truncated body", data[:headerLen+3], "maze", ErrCorrupt},
		{"other game", data, "battle", ErrWrongGame},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data, tt.game)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = Decode(data, "")
	assert.NoError(t, err, "empty game accepts any prototype")
}

func TestSaveIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sandbox.plab")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, Save(path, Capture("sandbox", samplePool(), 1, "default")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file cleaned up")

	_, err = Load(path, "sandbox")
	assert.NoError(t, err)
}

func TestApplyRejectsOutOfRangeHandle(t *testing.T) {
	p := entity.NewPool(4)
	keep := p.Create()
	keep.Arch = entity.ArchPlayer

	doc := &Document{Version: Version, Game: "x", Entities: []Record{{Handle: 10, Arch: "monster"}}}
	assert.ErrorIs(t, doc.Apply(p), ErrCorrupt)
	assert.Equal(t, 1, p.Count(), "pool untouched on error")
}
