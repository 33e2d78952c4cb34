package mutate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kanban-cli/internal/model"
)

// Action is one named request against the hierarchy. Apply returns the new snapshot, or st and an
// error when the request cannot be honored.
type Action interface {
	Type() string
	Apply(st model.State) (model.State, error)
}

type AddBoardAction struct {
	Board model.Board `json:"board"`
}

type DeleteBoardAction struct {
	BoardID string `json:"boardId"`
}

type RenameBoardAction struct {
	BoardID   string `json:"boardId"`
	BoardName string `json:"boardName"`
}

type AddListAction struct {
	BoardID string     `json:"boardId"`
	List    model.List `json:"list"`
}

type DeleteListAction struct {
	BoardID string `json:"boardId"`
	ListID  string `json:"listId"`
}

type RenameListAction struct {
	BoardID  string `json:"boardId"`
	ListID   string `json:"listId"`
	ListName string `json:"listName"`
}

type AddTaskAction struct {
	BoardID string     `json:"boardId"`
	ListID  string     `json:"listId"`
	Task    model.Task `json:"task"`
}

type UpdateTaskAction struct {
	BoardID string     `json:"boardId"`
	ListID  string     `json:"listId"`
	Task    model.Task `json:"task"`
}

type DeleteTaskAction struct {
	BoardID string `json:"boardId"`
	ListID  string `json:"listId"`
	TaskID  string `json:"taskId"`
}

type SetModalActiveAction struct {
	Active bool `json:"modalActive"`
}

// UnmarshalJSON accepts either {"modalActive":true} or a bare true/false.
func (a *SetModalActiveAction) UnmarshalJSON(b []byte) error {
	var active bool
	if err := json.Unmarshal(b, &active); err == nil {
		a.Active = active
		return nil
	}
	var obj struct {
		Active bool `json:"modalActive"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	a.Active = obj.Active
	return nil
}

type SortAction struct {
	SortRequest
}

type SortListsAction struct {
	BoardIndex          int `json:"boardIndex"`
	DroppableIndexStart int `json:"droppableIndexStart"`
	DroppableIndexEnd   int `json:"droppableIndexEnd"`
}

const (
	TypeAddBoard       = "addBoard"
	TypeDeleteBoard    = "deleteBoard"
	TypeRenameBoard    = "renameBoard"
	TypeAddList        = "addList"
	TypeDeleteList     = "deleteList"
	TypeRenameList     = "renameList"
	TypeAddTask        = "addTask"
	TypeUpdateTask     = "updateTask"
	TypeDeleteTask     = "deleteTask"
	TypeSetModalActive = "setModalActive"
	TypeSort           = "sort"
	TypeSortLists      = "sortLists"
)

func (AddBoardAction) Type() string       { return TypeAddBoard }
func (DeleteBoardAction) Type() string    { return TypeDeleteBoard }
func (RenameBoardAction) Type() string    { return TypeRenameBoard }
func (AddListAction) Type() string        { return TypeAddList }
func (DeleteListAction) Type() string     { return TypeDeleteList }
func (RenameListAction) Type() string     { return TypeRenameList }
func (AddTaskAction) Type() string        { return TypeAddTask }
func (UpdateTaskAction) Type() string     { return TypeUpdateTask }
func (DeleteTaskAction) Type() string     { return TypeDeleteTask }
func (SetModalActiveAction) Type() string { return TypeSetModalActive }
func (SortAction) Type() string           { return TypeSort }
func (SortListsAction) Type() string      { return TypeSortLists }

func (a AddBoardAction) Apply(st model.State) (model.State, error) {
	return AddBoard(st, a.Board), nil
}

func (a DeleteBoardAction) Apply(st model.State) (model.State, error) {
	return DeleteBoard(st, a.BoardID)
}

func (a RenameBoardAction) Apply(st model.State) (model.State, error) {
	return RenameBoard(st, a.BoardID, a.BoardName)
}

func (a AddListAction) Apply(st model.State) (model.State, error) {
	return AddList(st, a.BoardID, a.List)
}

func (a DeleteListAction) Apply(st model.State) (model.State, error) {
	return DeleteList(st, a.BoardID, a.ListID)
}

func (a RenameListAction) Apply(st model.State) (model.State, error) {
	return RenameList(st, a.BoardID, a.ListID, a.ListName)
}

func (a AddTaskAction) Apply(st model.State) (model.State, error) {
	return AddTask(st, a.BoardID, a.ListID, a.Task)
}

func (a UpdateTaskAction) Apply(st model.State) (model.State, error) {
	return UpdateTask(st, a.BoardID, a.ListID, a.Task)
}

func (a DeleteTaskAction) Apply(st model.State) (model.State, error) {
	return DeleteTask(st, a.BoardID, a.ListID, a.TaskID)
}

func (a SetModalActiveAction) Apply(st model.State) (model.State, error) {
	return SetModalActive(st, a.Active), nil
}

func (a SortAction) Apply(st model.State) (model.State, error) {
	return Sort(st, a.SortRequest)
}

func (a SortListsAction) Apply(st model.State) (model.State, error) {
	return SortLists(st, a.BoardIndex, a.DroppableIndexStart, a.DroppableIndexEnd)
}

// Apply dispatches a single action. A nil action is a no-op.
func Apply(st model.State, a Action) (model.State, error) {
	if a == nil {
		return st, nil
	}
	return a.Apply(st)
}

// Envelope is the wire shape of an action: {"type": "...", "payload": {...}}.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DecodeAction parses an action envelope.
func DecodeAction(raw []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode action envelope: %w", err)
	}
	typ := strings.TrimSpace(env.Type)
	if typ == "" {
		return nil, errors.New("missing action type")
	}
	a, err := newAction(typ)
	if err != nil {
		return nil, err
	}
	if len(env.Payload) == 0 || string(env.Payload) == "null" {
		return nil, fmt.Errorf("missing payload for %s", typ)
	}
	if err := json.Unmarshal(env.Payload, a); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", typ, err)
	}
	return derefAction(a), nil
}

// EncodeAction is the inverse of DecodeAction.
func EncodeAction(a Action) ([]byte, error) {
	if a == nil {
		return nil, errors.New("nil action")
	}
	p, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: a.Type(), Payload: p})
}

func newAction(typ string) (any, error) {
	switch typ {
	case TypeAddBoard:
		return &AddBoardAction{}, nil
	case TypeDeleteBoard:
		return &DeleteBoardAction{}, nil
	case TypeRenameBoard:
		return &RenameBoardAction{}, nil
	case TypeAddList:
		return &AddListAction{}, nil
	case TypeDeleteList:
		return &DeleteListAction{}, nil
	case TypeRenameList:
		return &RenameListAction{}, nil
	case TypeAddTask:
		return &AddTaskAction{}, nil
	case TypeUpdateTask:
		return &UpdateTaskAction{}, nil
	case TypeDeleteTask:
		return &DeleteTaskAction{}, nil
	case TypeSetModalActive:
		return &SetModalActiveAction{}, nil
	case TypeSort:
		return &SortAction{}, nil
	case TypeSortLists:
		return &SortListsAction{}, nil
	default:
		return nil, UnknownActionError{Type: typ}
	}
}

func derefAction(a any) Action {
	switch x := a.(type) {
	case *AddBoardAction:
		return *x
	case *DeleteBoardAction:
		return *x
	case *RenameBoardAction:
		return *x
	case *AddListAction:
		return *x
	case *DeleteListAction:
		return *x
	case *RenameListAction:
		return *x
	case *AddTaskAction:
		return *x
	case *UpdateTaskAction:
		return *x
	case *DeleteTaskAction:
		return *x
	case *SetModalActiveAction:
		return *x
	case *SortAction:
		return *x
	case *SortListsAction:
		return *x
	default:
		return nil
	}
}
