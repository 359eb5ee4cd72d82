package battle

import (
	"strings"

	"github.com/vovakirdan/tui-protolab/internal/engine/combat"
	"github.com/vovakirdan/tui-protolab/internal/engine/entity"
	"github.com/vovakirdan/tui-protolab/internal/engine/snapshot"
)

const itemPrefix = "item."

// Capture builds a snapshot of the battle. Inventory counts ride along as
// "item.<name>" values.
func (w *World) Capture() *snapshot.Document {
	doc := snapshot.Capture(ID, w.Pool, w.Now, w.sched.State().String())
	doc.Values = make(map[string]float64)
	for name, n := range w.sched.Stock() {
		doc.Values[itemPrefix+name] = float64(n)
	}
	return doc
}

// Restore replaces the battle with a loaded document. Selection restarts
// from the next ready player.
func (w *World) Restore(doc *snapshot.Document) error {
	if err := doc.Apply(w.Pool); err != nil {
		return err
	}
	items := make(map[string]int)
	for k, v := range doc.Values {
		if name, ok := strings.CutPrefix(k, itemPrefix); ok {
			items[name] = int(v)
		}
	}
	if w.Cursor() == nil {
		w.table.Spawn(w, w.Pool, entity.ArchCursor)
	}
	w.Now = doc.Time
	w.sched.Resume(combat.ParseUXState(doc.UXState), items)
	w.last = w.sched.State()
	return nil
}

// Save writes the battle to path.
func (w *World) Save(path string) error {
	return snapshot.Save(path, w.Capture())
}

// Load restores the battle from path, leaving it untouched on error.
func (w *World) Load(path string) error {
	doc, err := snapshot.Load(path, ID)
	if err != nil {
		return err
	}
	return w.Restore(doc)
}
