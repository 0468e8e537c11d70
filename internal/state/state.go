package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/nmoran/gamedrop/pkg/game"
)

// State is the persisted record of the last notified free-game set.
type State struct {
	LastUpdate time.Time       `json:"last_update"`
	Games      []game.FreeGame `json:"games"`
	TotalGames int             `json:"total_games"`
}

// FileStore persists State as a single JSON file, rewritten wholesale.
// The file is written via a temp file plus rename so a crashed run never
// leaves a partial state behind.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed state store.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = "last_games.json"
	}
	return &FileStore{path: path}
}

// Load reads the last persisted state. A missing file is a normal empty
// state; any other read or parse failure also yields an empty state along
// with the error, so callers can log and treat it as "no previous state".
func (f *FileStore) Load() (*State, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &State{}, nil
		}
		return &State{}, fmt.Errorf("read state %s: %w", f.path, err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return &State{}, fmt.Errorf("parse state %s: %w", f.path, err)
	}

	for i := range st.Games {
		if strings.TrimSpace(st.Games[i].Title) == "" {
			st.Games[i].Title = game.UntitledTitle
		}
	}

	return &st, nil
}

// Save overwrites the state file atomically. LastUpdate and TotalGames are
// stamped here so callers only supply the game set.
func (f *FileStore) Save(st *State) error {
	st.LastUpdate = time.Now().UTC()
	st.TotalGames = len(st.Games)

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace state %s: %w", f.path, err)
	}
	return nil
}
