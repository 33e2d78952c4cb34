package store

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"kanban-cli/internal/model"
)

const (
	PrefixBoard = "board"
	PrefixList  = "list"
	PrefixTask  = "task"
)

// NewID returns prefix-<suffix> where suffix is the first 8 hex chars of a random UUID.
// exists (optional) rejects ids already in use; collisions are retried.
func NewID(prefix string, exists func(id string) bool) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errors.New("missing id prefix")
	}
	for i := 0; i < 32; i++ {
		u, err := uuid.NewRandom()
		if err != nil {
			return "", err
		}
		id := prefix + "-" + strings.ReplaceAll(u.String(), "-", "")[:8]
		if exists == nil || !exists(id) {
			return id, nil
		}
	}
	return "", errors.New("unable to generate unique id")
}

// IDExists reports whether id is used by any board, list or task in st.
func IDExists(st model.State, id string) bool {
	for _, b := range st.Boards {
		if b.BoardID == id {
			return true
		}
		for _, l := range b.Lists {
			if l.ListID == id {
				return true
			}
			for _, t := range l.Tasks {
				if t.TaskID == id {
					return true
				}
			}
		}
	}
	return false
}

// NewIDFor generates an id that does not collide with anything in st.
func NewIDFor(st model.State, prefix string) (string, error) {
	return NewID(prefix, func(id string) bool { return IDExists(st, id) })
}
