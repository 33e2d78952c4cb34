package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	tuiStateFileName = "tui_state.json"
	tuiStateVersion  = 1
)

// TUIState is the board view position saved when the TUI exits. Ids that no longer resolve are
// ignored by the TUI on restore.
type TUIState struct {
	Version int `json:"version"`

	BoardID string `json:"boardId,omitempty"`
	ListID  string `json:"listId,omitempty"`
	TaskID  string `json:"taskId,omitempty"`
}

func (s Store) tuiStatePath() string {
	return filepath.Join(s.Dir, tuiStateFileName)
}

// decodeTUIState never fails: unreadable state is replaced by an empty one.
func decodeTUIState(b []byte) *TUIState {
	st := &TUIState{}
	if err := json.Unmarshal(b, st); err != nil {
		return &TUIState{Version: tuiStateVersion}
	}
	if st.Version == 0 {
		st.Version = tuiStateVersion
	}
	return st
}

// LoadTUIState reads the saved position. A workspace without one (or with no dir at all) yields an
// empty state and no error.
func (s Store) LoadTUIState() (*TUIState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &TUIState{Version: tuiStateVersion}, nil
	}
	b, err := os.ReadFile(s.tuiStatePath())
	switch {
	case errors.Is(err, os.ErrNotExist):
		return &TUIState{Version: tuiStateVersion}, nil
	case err != nil:
		return nil, err
	}
	return decodeTUIState(b), nil
}

func (s Store) SaveTUIState(st *TUIState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = tuiStateVersion
	}
	return writeJSONFile(s.tuiStatePath(), st, 0o644)
}
