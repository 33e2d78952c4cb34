// Package hierarchy owns the live board/list/task snapshot and routes every mutation through the
// operations in package mutate.
package hierarchy

import (
	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
)

// Store holds the current snapshot. It has a single logical writer: callers serialize Dispatch
// themselves (the TUI update loop does this naturally; the HTTP server uses a mutex).
type Store struct {
	cur     model.State
	version uint64
}

func New(initial model.State) *Store {
	return &Store{cur: initial.Clone()}
}

// Dispatch applies a and returns a private copy of the resulting snapshot. On error the current
// snapshot is unchanged and a copy of it is returned alongside the error.
func (s *Store) Dispatch(a mutate.Action) (model.State, error) {
	next, err := mutate.Apply(s.cur, a)
	if err != nil {
		return s.cur.Clone(), err
	}
	if !sameSnapshot(next, s.cur) {
		s.cur = next
		s.version++
	}
	return s.cur.Clone(), nil
}

// Snapshot returns a deep copy of the current state. Callers may modify it freely.
func (s *Store) Snapshot() model.State {
	return s.cur.Clone()
}

// Current returns the shared snapshot for identity-based change detection.
// It must be treated as read-only.
func (s *Store) Current() model.State {
	return s.cur
}

// Version increments on every dispatch that produced a different snapshot.
func (s *Store) Version() uint64 {
	return s.version
}

// Replace swaps in a snapshot loaded from persistence.
func (s *Store) Replace(st model.State) {
	s.cur = st.Clone()
	s.version++
}

// SetModalActive is shorthand for dispatching mutate.SetModalActiveAction.
func (s *Store) SetModalActive(active bool) model.State {
	st, _ := s.Dispatch(mutate.SetModalActiveAction{Active: active})
	return st
}

func sameSnapshot(a, b model.State) bool {
	if a.ModalActive != b.ModalActive || len(a.Boards) != len(b.Boards) {
		return false
	}
	for i := range a.Boards {
		if a.Boards[i] != b.Boards[i] {
			return false
		}
	}
	return true
}
