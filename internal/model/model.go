package model

// Task is a single work item. It is owned by exactly one List at a time.
type Task struct {
	TaskID          string `json:"taskId"`
	TaskName        string `json:"taskName"`
	TaskDescription string `json:"taskDescription"`
	TaskOwner       string `json:"taskOwner"`
}

// List is an ordered column of tasks. Sequence order is display order.
type List struct {
	ListID   string  `json:"listId"`
	ListName string  `json:"listName"`
	Tasks    []*Task `json:"tasks"`
}

// Board is a named, ordered collection of lists.
type Board struct {
	BoardID   string  `json:"boardId"`
	BoardName string  `json:"boardName"`
	Lists     []*List `json:"lists"`
}

// State is one whole-tree snapshot.
//
// Snapshots are immutable once published: operations in package mutate allocate new nodes along
// the path they touch and share every other node by pointer. Code outside the core that wants to
// modify a snapshot must Clone it first.
type State struct {
	ModalActive bool     `json:"modalActive"`
	Boards      []*Board `json:"boardArray"`
}

func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func (l *List) Clone() *List {
	if l == nil {
		return nil
	}
	c := &List{ListID: l.ListID, ListName: l.ListName, Tasks: make([]*Task, 0, len(l.Tasks))}
	for _, t := range l.Tasks {
		if t == nil {
			continue
		}
		c.Tasks = append(c.Tasks, t.Clone())
	}
	return c
}

func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	c := &Board{BoardID: b.BoardID, BoardName: b.BoardName, Lists: make([]*List, 0, len(b.Lists))}
	for _, l := range b.Lists {
		if l == nil {
			continue
		}
		c.Lists = append(c.Lists, l.Clone())
	}
	return c
}

// Clone returns a deep copy that shares nothing with s.
func (s State) Clone() State {
	c := State{ModalActive: s.ModalActive, Boards: make([]*Board, 0, len(s.Boards))}
	for _, b := range s.Boards {
		if b == nil {
			continue
		}
		c.Boards = append(c.Boards, b.Clone())
	}
	return c
}

// TaskIDs returns every task id reachable from b, in list then task order.
func (b *Board) TaskIDs() []string {
	if b == nil {
		return nil
	}
	var out []string
	for _, l := range b.Lists {
		for _, t := range l.Tasks {
			out = append(out, t.TaskID)
		}
	}
	return out
}

// TaskCount is the total number of tasks across all lists of b.
func (b *Board) TaskCount() int {
	if b == nil {
		return 0
	}
	n := 0
	for _, l := range b.Lists {
		n += len(l.Tasks)
	}
	return n
}
