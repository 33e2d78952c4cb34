package mutate

import (
	"kanban-cli/internal/model"
)

// Every operation returns a new snapshot that shares all untouched nodes with st.
// On error the returned snapshot is st itself.

// AddBoard appends a copy of b as the last board.
func AddBoard(st model.State, b model.Board) model.State {
	nb := b.Clone()
	if nb.Lists == nil {
		nb.Lists = []*model.List{}
	}
	return model.State{ModalActive: st.ModalActive, Boards: appendCopy(st.Boards, nb)}
}

// DeleteBoard removes the board with boardID together with its lists and tasks.
func DeleteBoard(st model.State, boardID string) (model.State, error) {
	_, bi, ok := model.FindBoard(st, boardID)
	if !ok {
		return st, errBoard(boardID)
	}
	return model.State{ModalActive: st.ModalActive, Boards: removeAt(st.Boards, bi)}, nil
}

// RenameBoard sets the name of the board with boardID.
func RenameBoard(st model.State, boardID, name string) (model.State, error) {
	b, bi, ok := model.FindBoard(st, boardID)
	if !ok {
		return st, errBoard(boardID)
	}
	nb := &model.Board{BoardID: b.BoardID, BoardName: name, Lists: b.Lists}
	return withBoard(st, bi, nb), nil
}

// AddList appends a copy of l to the board with boardID.
func AddList(st model.State, boardID string, l model.List) (model.State, error) {
	b, bi, ok := model.FindBoard(st, boardID)
	if !ok {
		return st, errBoard(boardID)
	}
	nl := l.Clone()
	nb := &model.Board{BoardID: b.BoardID, BoardName: b.BoardName, Lists: appendCopy(b.Lists, nl)}
	return withBoard(st, bi, nb), nil
}

// DeleteList removes listID and its tasks from the board with boardID.
func DeleteList(st model.State, boardID, listID string) (model.State, error) {
	b, bi, ok := model.FindBoard(st, boardID)
	if !ok {
		return st, errBoard(boardID)
	}
	_, li, ok := model.FindList(b, listID)
	if !ok {
		return st, errList(listID)
	}
	nb := &model.Board{BoardID: b.BoardID, BoardName: b.BoardName, Lists: removeAt(b.Lists, li)}
	return withBoard(st, bi, nb), nil
}

// RenameList sets the name of listID on the board with boardID.
func RenameList(st model.State, boardID, listID, name string) (model.State, error) {
	return editList(st, boardID, listID, func(l *model.List) (*model.List, error) {
		return &model.List{ListID: l.ListID, ListName: name, Tasks: l.Tasks}, nil
	})
}

// AddTask appends a copy of t to listID.
func AddTask(st model.State, boardID, listID string, t model.Task) (model.State, error) {
	return editList(st, boardID, listID, func(l *model.List) (*model.List, error) {
		return &model.List{ListID: l.ListID, ListName: l.ListName, Tasks: appendCopy(l.Tasks, t.Clone())}, nil
	})
}

// UpdateTask replaces the task whose id equals t.TaskID, keeping its position.
func UpdateTask(st model.State, boardID, listID string, t model.Task) (model.State, error) {
	return editList(st, boardID, listID, func(l *model.List) (*model.List, error) {
		_, ti, ok := model.FindTask(l, t.TaskID)
		if !ok {
			return nil, errTask(t.TaskID)
		}
		return &model.List{ListID: l.ListID, ListName: l.ListName, Tasks: replaceAt(l.Tasks, ti, t.Clone())}, nil
	})
}

// DeleteTask removes taskID from listID.
func DeleteTask(st model.State, boardID, listID, taskID string) (model.State, error) {
	return editList(st, boardID, listID, func(l *model.List) (*model.List, error) {
		_, ti, ok := model.FindTask(l, taskID)
		if !ok {
			return nil, errTask(taskID)
		}
		return &model.List{ListID: l.ListID, ListName: l.ListName, Tasks: removeAt(l.Tasks, ti)}, nil
	})
}

// SetModalActive sets the modal flag; boards are shared unchanged.
func SetModalActive(st model.State, active bool) model.State {
	return model.State{ModalActive: active, Boards: st.Boards}
}

func editList(st model.State, boardID, listID string, fn func(*model.List) (*model.List, error)) (model.State, error) {
	b, bi, ok := model.FindBoard(st, boardID)
	if !ok {
		return st, errBoard(boardID)
	}
	l, li, ok := model.FindList(b, listID)
	if !ok {
		return st, errList(listID)
	}
	nl, err := fn(l)
	if err != nil {
		return st, err
	}
	nb := &model.Board{BoardID: b.BoardID, BoardName: b.BoardName, Lists: replaceAt(b.Lists, li, nl)}
	return withBoard(st, bi, nb), nil
}

func withBoard(st model.State, bi int, nb *model.Board) model.State {
	return model.State{ModalActive: st.ModalActive, Boards: replaceAt(st.Boards, bi, nb)}
}
