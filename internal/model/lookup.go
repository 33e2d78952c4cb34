package model

// FindBoard returns the board with the given id and its index in st.Boards. Ids compare exactly.
func FindBoard(st State, boardID string) (*Board, int, bool) {
	if boardID == "" {
		return nil, -1, false
	}
	for i, b := range st.Boards {
		if b != nil && b.BoardID == boardID {
			return b, i, true
		}
	}
	return nil, -1, false
}

// BoardAt returns the board at index i, or false when i is out of range.
func BoardAt(st State, i int) (*Board, bool) {
	if i < 0 || i >= len(st.Boards) || st.Boards[i] == nil {
		return nil, false
	}
	return st.Boards[i], true
}

// FindList returns the list of b with the given id and its index in b.Lists.
func FindList(b *Board, listID string) (*List, int, bool) {
	if b == nil || listID == "" {
		return nil, -1, false
	}
	for i, l := range b.Lists {
		if l != nil && l.ListID == listID {
			return l, i, true
		}
	}
	return nil, -1, false
}

// FindTask returns the task of l with the given id and its index in l.Tasks.
func FindTask(l *List, taskID string) (*Task, int, bool) {
	if l == nil || taskID == "" {
		return nil, -1, false
	}
	for i, t := range l.Tasks {
		if t != nil && t.TaskID == taskID {
			return t, i, true
		}
	}
	return nil, -1, false
}

// LocateTask finds which list of b currently holds taskID.
func LocateTask(b *Board, taskID string) (*List, int, bool) {
	if b == nil {
		return nil, -1, false
	}
	for _, l := range b.Lists {
		if _, idx, ok := FindTask(l, taskID); ok {
			return l, idx, true
		}
	}
	return nil, -1, false
}
