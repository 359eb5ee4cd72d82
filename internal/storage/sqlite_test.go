package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

// saveScore records a finished run carrying score.
func saveScore(t *testing.T, store *Store, gameID string, score int) {
	t.Helper()
	if _, err := store.SaveRun(Run{GameID: gameID, Outcome: "lose", Score: score}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	saveScore(t, store, "survivors", 100)

	saveScore(t, store, "survivors", 50)

	saveScore(t, store, "survivors", 200)

	// Different game
	saveScore(t, store, "maze", 500)

	// Retrieve top scores for survivors
	scores, err := store.TopScores("survivors", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for maze
	mazeScores, err := store.TopScores("maze", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(mazeScores) != 1 {
		t.Errorf("Expected 1 maze score, got %d", len(mazeScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		saveScore(t, store, "test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("survivors")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	saveScore(t, store, "survivors", 100)
	saveScore(t, store, "survivors", 300)
	saveScore(t, store, "survivors", 200)

	high, err = store.HighScore("survivors")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	saveScore(t, store, "survivors", 100)
	saveScore(t, store, "survivors", 200)
	saveScore(t, store, "maze", 300)

	// Clear only survivors scores
	err = store.ClearScores("survivors")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Survivors should be empty
	survivorsScores, _ := store.TopScores("survivors", 10)
	if len(survivorsScores) != 0 {
		t.Errorf("Expected 0 survivors scores after clear, got %d", len(survivorsScores))
	}

	// Maze should still have scores
	mazeScores, _ := store.TopScores("maze", 10)
	if len(mazeScores) != 1 {
		t.Errorf("Maze scores should not be affected by clearing survivors")
	}

	runs, _ := store.RecentRuns("survivors", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 survivors runs after clear, got %d", len(runs))
	}
	runs, _ = store.RecentRuns("maze", 10)
	if len(runs) != 1 {
		t.Errorf("Expected 1 maze run after clearing survivors, got %d", len(runs))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveRun(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	id, err := store.SaveRun(Run{GameID: "battle", Outcome: "win", Score: 210, Duration: 95500 * time.Millisecond, Seed: 7})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() returned %q, expected a UUID: %v", id, err)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	if run.GameID != "battle" || run.Outcome != "win" || run.Score != 210 || run.Seed != 7 {
		t.Errorf("unexpected run: %+v", run)
	}
	if run.Duration != 95500*time.Millisecond {
		t.Errorf("Duration = %v, expected 1m35.5s", run.Duration)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}

	// the score is recorded alongside
	high, err := store.HighScore("battle")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 210 {
		t.Errorf("Expected high score 210, got %d", high)
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	run, err := store.RunByID(uuid.NewString())
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run != nil {
		t.Errorf("Expected nil for unknown run, got %+v", run)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(Run{GameID: "maze", Outcome: "lose", Score: i}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(Run{GameID: "survivors", Outcome: "lose", Score: 99}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	tests := []struct {
		name   string
		gameID string
		limit  int
		want   int
	}{
		{"one game", "maze", 10, 5},
		{"limited", "maze", 2, 2},
		{"every game", "", 0, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := store.RecentRuns(tt.gameID, tt.limit)
			if err != nil {
				t.Fatalf("RecentRuns() failed: %v", err)
			}
			if len(runs) != tt.want {
				t.Errorf("Expected %d runs, got %d", tt.want, len(runs))
			}
		})
	}

	runs, _ := store.RecentRuns("maze", 1)
	if len(runs) == 1 && runs[0].Score != 4 {
		t.Errorf("Expected the newest run first, got score %d", runs[0].Score)
	}
}

func TestStoreRunByIDPrefix(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	ids := []string{
		"aaaa1111-0000-4000-8000-000000000001",
		"aaaa2222-0000-4000-8000-000000000002",
	}
	for _, id := range ids {
		if _, err := store.SaveRun(Run{ID: id, GameID: "maze", Outcome: "win", Score: 5}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	run, err := store.RunByID("aaaa2222")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil || run.ID != ids[1] {
		t.Errorf("RunByID(%q) = %+v, expected %s", "aaaa2222", run, ids[1])
	}

	if _, err := store.RunByID("aaaa"); !errors.Is(err, ErrAmbiguousRun) {
		t.Errorf("RunByID(%q) error = %v, expected %v", "aaaa", err, ErrAmbiguousRun)
	}

	run, err = store.RunByID("")
	if err != nil || run != nil {
		t.Errorf("RunByID(\"\") = %+v, %v, expected nil, nil", run, err)
	}
}
