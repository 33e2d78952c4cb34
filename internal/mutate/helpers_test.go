package mutate

import (
	"testing"

	"kanban-cli/internal/model"
)

func task(id string) *model.Task {
	return &model.Task{TaskID: id, TaskName: "Task " + id, TaskOwner: "ann"}
}

func list(id string, taskIDs ...string) *model.List {
	l := &model.List{ListID: id, ListName: "List " + id, Tasks: []*model.Task{}}
	for _, t := range taskIDs {
		l.Tasks = append(l.Tasks, task(t))
	}
	return l
}

func board(id string, lists ...*model.List) *model.Board {
	return &model.Board{BoardID: id, BoardName: "Board " + id, Lists: lists}
}

func state(boards ...*model.Board) model.State {
	return model.State{Boards: boards}
}

func taskIDs(l *model.List) []string {
	out := make([]string, 0, len(l.Tasks))
	for _, t := range l.Tasks {
		out = append(out, t.TaskID)
	}
	return out
}

func mustList(t *testing.T, st model.State, boardID, listID string) *model.List {
	t.Helper()
	b, _, ok := model.FindBoard(st, boardID)
	if !ok {
		t.Fatalf("board %q not found", boardID)
	}
	l, _, ok := model.FindList(b, listID)
	if !ok {
		t.Fatalf("list %q not found in board %q", listID, boardID)
	}
	return l
}

func assertIDs(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("ids: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("ids: got %v, want %v", got, want)
		}
	}
}
