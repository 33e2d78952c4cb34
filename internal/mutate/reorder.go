package mutate

import (
	"kanban-cli/internal/model"
)

// SortRequest describes a single drag-and-drop relocation of one task.
//
// DroppableIndexEnd is a position in the destination list *after* the moved task has been removed
// from the source list. For a same-list move this means "the index the task will occupy in the
// final sequence", so moving the first of three tasks to the end is 0 -> 2, not 0 -> 3.
//
// DraggableID names the moved task for display and activity records only; the task is located by
// DroppableIndexStart.
type SortRequest struct {
	BoardIndex          int    `json:"boardIndex"`
	DroppableIDStart    string `json:"droppableIdStart"`
	DroppableIDEnd      string `json:"droppableIdEnd"`
	DroppableIndexStart int    `json:"droppableIndexStart"`
	DroppableIndexEnd   int    `json:"droppableIndexEnd"`
	DraggableID         string `json:"draggableId"`
}

// SameList reports whether the request reorders within a single list.
func (r SortRequest) SameList() bool {
	return r.DroppableIDStart == r.DroppableIDEnd
}

// Sort moves one task within a list or across lists of the board at req.BoardIndex.
//
// All indexes are validated before anything is built, so a rejected request returns st unchanged.
func Sort(st model.State, req SortRequest) (model.State, error) {
	b, ok := model.BoardAt(st, req.BoardIndex)
	if !ok {
		return st, InvalidIndexError{Kind: "board", Index: req.BoardIndex, Len: len(st.Boards)}
	}
	src, si, ok := model.FindList(b, req.DroppableIDStart)
	if !ok {
		return st, errList(req.DroppableIDStart)
	}
	dst, di, ok := model.FindList(b, req.DroppableIDEnd)
	if !ok {
		return st, errList(req.DroppableIDEnd)
	}

	from := req.DroppableIndexStart
	if from < 0 || from >= len(src.Tasks) {
		return st, InvalidIndexError{Kind: "source", Index: from, Len: len(src.Tasks)}
	}
	moved := src.Tasks[from]
	rest := removeAt(src.Tasks, from)

	to := req.DroppableIndexEnd
	if si == di {
		if to < 0 || to > len(rest) {
			return st, InvalidIndexError{Kind: "destination", Index: to, Len: len(rest)}
		}
		if to == from {
			return st, nil
		}
		nl := &model.List{ListID: src.ListID, ListName: src.ListName, Tasks: insertAt(rest, to, moved)}
		nb := &model.Board{BoardID: b.BoardID, BoardName: b.BoardName, Lists: replaceAt(b.Lists, si, nl)}
		return withBoard(st, req.BoardIndex, nb), nil
	}

	if to < 0 || to > len(dst.Tasks) {
		return st, InvalidIndexError{Kind: "destination", Index: to, Len: len(dst.Tasks)}
	}
	ns := &model.List{ListID: src.ListID, ListName: src.ListName, Tasks: rest}
	nd := &model.List{ListID: dst.ListID, ListName: dst.ListName, Tasks: insertAt(dst.Tasks, to, moved)}
	lists := replaceAt(b.Lists, si, ns)
	lists[di] = nd
	nb := &model.Board{BoardID: b.BoardID, BoardName: b.BoardName, Lists: lists}
	return withBoard(st, req.BoardIndex, nb), nil
}

// SortLists moves a whole list within its board using the same remove-then-insert rule as Sort.
func SortLists(st model.State, boardIndex, from, to int) (model.State, error) {
	b, ok := model.BoardAt(st, boardIndex)
	if !ok {
		return st, InvalidIndexError{Kind: "board", Index: boardIndex, Len: len(st.Boards)}
	}
	if from < 0 || from >= len(b.Lists) {
		return st, InvalidIndexError{Kind: "source", Index: from, Len: len(b.Lists)}
	}
	rest := removeAt(b.Lists, from)
	if to < 0 || to > len(rest) {
		return st, InvalidIndexError{Kind: "destination", Index: to, Len: len(rest)}
	}
	if to == from {
		return st, nil
	}
	nb := &model.Board{BoardID: b.BoardID, BoardName: b.BoardName, Lists: insertAt(rest, to, b.Lists[from])}
	return withBoard(st, boardIndex, nb), nil
}
