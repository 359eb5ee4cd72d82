package survivors

import (
	"github.com/vovakirdan/tui-protolab/internal/engine/snapshot"
)

// Capture builds a snapshot document of the world.
func (w *World) Capture() *snapshot.Document {
	doc := snapshot.Capture(ID, w.Pool, w.Now, w.UX.String())
	doc.Values = map[string]float64{
		"elapsed":    w.Elapsed,
		"kills":      float64(w.Kills),
		"level":      float64(w.Level),
		"wave_timer": w.waveTimer,
		"camera_x":   w.camera.Pos.X,
		"camera_y":   w.camera.Pos.Y,
	}
	return doc
}

// Restore replaces the world with a loaded document. On error the world is
// unchanged.
func (w *World) Restore(doc *snapshot.Document) error {
	if err := doc.Apply(w.Pool); err != nil {
		return err
	}
	w.Now = doc.Time
	w.UX = parseUX(doc.UXState)
	w.Elapsed = doc.Values["elapsed"]
	w.Kills = int(doc.Values["kills"])
	w.Level = int(doc.Values["level"])
	w.waveTimer = doc.Values["wave_timer"]
	w.camera.Pos.X = doc.Values["camera_x"]
	w.camera.Pos.Y = doc.Values["camera_y"]
	w.particles.Clear()
	w.refreshFrame()
	return nil
}

// Save writes the world to path.
func (w *World) Save(path string) error {
	return snapshot.Save(path, w.Capture())
}

// Load restores the world from path. Missing, corrupt or foreign files
// leave the world untouched.
func (w *World) Load(path string) error {
	doc, err := snapshot.Load(path, ID)
	if err != nil {
		return err
	}
	return w.Restore(doc)
}
