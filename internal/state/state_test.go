package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nmoran/gamedrop/pkg/game"
)

func TestLoad_MissingFileIsEmptyState(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "last_games.json"))

	st, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(st.Games) != 0 || st.TotalGames != 0 {
		t.Errorf("expected empty state, got %+v", st)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_games.json")
	store := NewFileStore(path)

	saved := &State{Games: []game.FreeGame{
		{Title: "Hollow Depths", Namespace: "hd", ID: "hd-1"},
		{Title: "Space Quest"},
	}}
	if err := store.Save(saved); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if saved.TotalGames != 2 || saved.LastUpdate.IsZero() {
		t.Errorf("Save must stamp totals and timestamp: %+v", saved)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Games) != 2 {
		t.Fatalf("got %d games, want 2", len(loaded.Games))
	}
	if loaded.Games[0].Title != "Hollow Depths" || loaded.Games[1].Title != "Space Quest" {
		t.Errorf("games out of order or renamed: %+v", loaded.Games)
	}

	// No temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away after save")
	}
}

func TestLoad_CorruptFileIsEmptyStateWithError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_games.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	st, err := NewFileStore(path).Load()
	if err == nil {
		t.Error("expected an error for corrupt state")
	}
	if st == nil || len(st.Games) != 0 {
		t.Errorf("corrupt state must still yield an empty state, got %+v", st)
	}
}

func TestLoad_AppliesUntitledSentinel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_games.json")
	data := `{"last_update":"2026-09-01T00:00:00Z","games":[{"title":"  "}],"total_games":1}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	st, err := NewFileStore(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.Games[0].Title != game.UntitledTitle {
		t.Errorf("Title = %q, want sentinel %q", st.Games[0].Title, game.UntitledTitle)
	}
}
