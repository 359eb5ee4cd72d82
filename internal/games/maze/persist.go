package maze

import (
	"github.com/vovakirdan/tui-protolab/internal/engine/snapshot"
)

// Capture builds a snapshot document of the chase. Walls are entities, so
// the carved layout round-trips with them.
func (w *World) Capture() *snapshot.Document {
	doc := snapshot.Capture(ID, w.Pool, w.Elapsed, w.UX.String())
	doc.Values = map[string]float64{
		"camera_x": w.camera.Pos.X,
		"camera_y": w.camera.Pos.Y,
	}
	return doc
}

// Restore replaces the chase with a loaded document.
func (w *World) Restore(doc *snapshot.Document) error {
	if err := doc.Apply(w.Pool); err != nil {
		return err
	}
	w.Elapsed = doc.Time
	w.UX = parseUX(doc.UXState)
	w.camera.Pos.X = doc.Values["camera_x"]
	w.camera.Pos.Y = doc.Values["camera_y"]
	w.indexWalls()
	w.refreshFrame()
	return nil
}

// Save writes the chase to path.
func (w *World) Save(path string) error {
	return snapshot.Save(path, w.Capture())
}

// Load restores the chase from path, leaving it untouched on error.
func (w *World) Load(path string) error {
	doc, err := snapshot.Load(path, ID)
	if err != nil {
		return err
	}
	return w.Restore(doc)
}
