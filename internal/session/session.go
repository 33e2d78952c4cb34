// Package session ties the hierarchy owner to a persistence backend: every successful dispatch is
// saved and recorded in the activity log.
package session

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"kanban-cli/internal/hierarchy"
	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/store"
)

// DefaultAuthor is recorded on activity entries when Session.Author is blank.
const DefaultAuthor = "User"

type Session struct {
	Hier    *hierarchy.Store
	Backend store.Backend
	Log     *log.Logger
	// Author is stamped on every activity entry this session records.
	Author  string
}

// Open loads the stored snapshot from b.
func Open(ctx context.Context, b store.Backend, logger *log.Logger) (*Session, error) {
	st, err := b.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Session{Hier: hierarchy.New(st), Backend: b, Log: logger}, nil
}

// Reload replaces the live snapshot with the stored one.
func (s *Session) Reload(ctx context.Context) (model.State, error) {
	st, err := s.Backend.Load(ctx)
	if err != nil {
		return s.Hier.Snapshot(), fmt.Errorf("load snapshot: %w", err)
	}
	s.Hier.Replace(st)
	return s.Hier.Snapshot(), nil
}

// Dispatch fills in missing ids, applies a, then persists the result and records an activity
// entry (modal toggles are saved but not recorded). Core errors and save failures leave both the
// live and stored snapshot untouched. The returned action is the one actually applied.
func (s *Session) Dispatch(ctx context.Context, a mutate.Action) (model.State, mutate.Action, error) {
	a, err := FillIDs(s.Hier.Current(), a)
	if err != nil {
		return s.Hier.Snapshot(), a, err
	}
	before, prev := s.Hier.Version(), s.Hier.Current()
	st, err := s.Hier.Dispatch(a)
	if err != nil {
		s.Log.WithFields(log.Fields{"type": a.Type(), "err": err}).Debug("action rejected")
		return st, a, err
	}
	if s.Hier.Version() == before {
		return st, a, nil
	}
	if err := s.Backend.Save(ctx, s.Hier.Current()); err != nil {
		s.Hier.Replace(prev)
		s.Log.WithFields(log.Fields{"type": a.Type(), "err": err}).Warn("save failed; change rolled back")
		return s.Hier.Snapshot(), a, fmt.Errorf("save snapshot: %w", err)
	}
	if _, ok := a.(mutate.SetModalActiveAction); ok {
		return st, a, nil
	}
	entityID, summary := Describe(a)
	act, err := store.NewActivity(a.Type(), entityID, summary, a)
	if err != nil {
		return st, a, err
	}
	act.Author = s.author()
	if err := s.Backend.AppendActivity(ctx, act); err != nil {
		return st, a, fmt.Errorf("record activity: %w", err)
	}
	s.Log.WithFields(log.Fields{"type": a.Type(), "entity": entityID}).Info(summary)
	return st, a, nil
}

func (s *Session) author() string {
	if a := strings.TrimSpace(s.Author); a != "" {
		return a
	}
	return DefaultAuthor
}

// FillIDs generates ids for add actions whose entity id is blank. Other actions pass through.
func FillIDs(st model.State, a mutate.Action) (mutate.Action, error) {
	gen := func(cur, prefix string) (string, error) {
		if strings.TrimSpace(cur) != "" {
			return cur, nil
		}
		return store.NewIDFor(st, prefix)
	}
	var err error
	switch x := a.(type) {
	case mutate.AddBoardAction:
		x.Board.BoardID, err = gen(x.Board.BoardID, store.PrefixBoard)
		return x, err
	case mutate.AddListAction:
		x.List.ListID, err = gen(x.List.ListID, store.PrefixList)
		return x, err
	case mutate.AddTaskAction:
		x.Task.TaskID, err = gen(x.Task.TaskID, store.PrefixTask)
		return x, err
	default:
		return a, nil
	}
}

// Describe returns the primary entity id of a and a one-line summary for the activity log.
func Describe(a mutate.Action) (entityID, summary string) {
	switch x := a.(type) {
	case mutate.AddBoardAction:
		return x.Board.BoardID, fmt.Sprintf("added board %q", x.Board.BoardName)
	case mutate.DeleteBoardAction:
		return x.BoardID, "deleted board " + x.BoardID
	case mutate.RenameBoardAction:
		return x.BoardID, fmt.Sprintf("renamed board %s to %q", x.BoardID, x.BoardName)
	case mutate.AddListAction:
		return x.List.ListID, fmt.Sprintf("added list %q to %s", x.List.ListName, x.BoardID)
	case mutate.DeleteListAction:
		return x.ListID, fmt.Sprintf("deleted list %s from %s", x.ListID, x.BoardID)
	case mutate.RenameListAction:
		return x.ListID, fmt.Sprintf("renamed list %s to %q", x.ListID, x.ListName)
	case mutate.AddTaskAction:
		return x.Task.TaskID, fmt.Sprintf("added task %q to %s", x.Task.TaskName, x.ListID)
	case mutate.UpdateTaskAction:
		return x.Task.TaskID, fmt.Sprintf("updated task %s", x.Task.TaskID)
	case mutate.DeleteTaskAction:
		return x.TaskID, fmt.Sprintf("deleted task %s from %s", x.TaskID, x.ListID)
	case mutate.SetModalActiveAction:
		return "", fmt.Sprintf("modal active: %v", x.Active)
	case mutate.SortAction:
		return x.DraggableID, fmt.Sprintf("moved %s from %s[%d] to %s[%d]",
			x.DraggableID, x.DroppableIDStart, x.DroppableIndexStart, x.DroppableIDEnd, x.DroppableIndexEnd)
	case mutate.SortListsAction:
		return "", fmt.Sprintf("moved list %d to %d on board %d", x.DroppableIndexStart, x.DroppableIndexEnd, x.BoardIndex)
	case nil:
		return "", ""
	default:
		return "", a.Type()
	}
}

// ActivityLimit normalizes a requested activity page size.
func ActivityLimit(n int) int {
	if n <= 0 {
		return store.DefaultActivityLimit
	}
	return n
}
