package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-protolab/internal/platform/logging"
	"github.com/vovakirdan/tui-protolab/internal/registry"
)

func TestSimulateIsDeterministic(t *testing.T) {
	for _, info := range registry.List() {
		t.Run(info.ID, func(t *testing.T) {
			a, err := simulate(context.Background(), info.ID, 42, logging.Discard())
			if err != nil {
				t.Fatalf("simulate() failed: %v", err)
			}
			b, err := simulate(context.Background(), info.ID, 42, logging.Discard())
			if err != nil {
				t.Fatalf("simulate() failed: %v", err)
			}

			if a.Hash != b.Hash {
				t.Errorf("Hash = %x then %x, expected equal runs", a.Hash, b.Hash)
			}
			if a.State != b.State {
				t.Errorf("State = %+v then %+v", a.State, b.State)
			}
			if a.Ticks <= 0 {
				t.Errorf("Ticks = %d, expected at least one", a.Ticks)
			}
		})
	}
}

func TestSimulateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := simulate(ctx, "sandbox", 1, logging.Discard()); !errors.Is(err, context.Canceled) {
		t.Errorf("simulate() error = %v, expected %v", err, context.Canceled)
	}
}

func TestSnapshotPathFlag(t *testing.T) {
	t.Cleanup(func() { flagSnapshot = "" })

	flagSnapshot = snapshotOff
	if got := snapshotPath("maze"); got != "" {
		t.Errorf("snapshotPath() = %q with snapshots off, expected empty", got)
	}

	flagSnapshot = "/tmp/x.plab"
	if got := snapshotPath("maze"); got != "/tmp/x.plab" {
		t.Errorf("snapshotPath() = %q, expected /tmp/x.plab", got)
	}

	flagSnapshot = ""
	if got := snapshotPath("maze"); !strings.Contains(got, "maze.plab") {
		t.Errorf("snapshotPath() = %q, expected the default maze.plab path", got)
	}
}

func TestPrototypesRegistered(t *testing.T) {
	for _, id := range []string{"battle", "maze", "sandbox", "survivors"} {
		if !registry.Exists(id) {
			t.Errorf("prototype %q is not registered", id)
		}
	}
}
