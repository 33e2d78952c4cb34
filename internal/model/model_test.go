package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func fixture() State {
	return State{Boards: []*Board{
		{BoardID: "b1", BoardName: "One", Lists: []*List{
			{ListID: "l1", ListName: "Todo", Tasks: []*Task{{TaskID: "t1", TaskName: "a"}, {TaskID: "t2", TaskName: "b"}}},
			{ListID: "l2", ListName: "Done", Tasks: []*Task{{TaskID: "t3"}}},
		}},
		{BoardID: "b2", BoardName: "Two", Lists: []*List{}},
	}}
}

func TestLookups(t *testing.T) {
	st := fixture()

	b, bi, ok := FindBoard(st, "b2")
	if !ok || bi != 1 || b.BoardName != "Two" {
		t.Fatalf("FindBoard b2: ok=%v idx=%d", ok, bi)
	}
	if _, _, ok := FindBoard(st, "zz"); ok {
		t.Fatalf("FindBoard found a missing board")
	}
	if _, _, ok := FindBoard(st, " "); ok {
		t.Fatalf("FindBoard matched a blank id")
	}

	l, li, ok := FindList(st.Boards[0], "l2")
	if !ok || li != 1 || l.ListName != "Done" {
		t.Fatalf("FindList l2: ok=%v idx=%d", ok, li)
	}
	if _, _, ok := FindList(nil, "l2"); ok {
		t.Fatalf("FindList on nil board should fail")
	}

	tk, ti, ok := FindTask(st.Boards[0].Lists[0], "t2")
	if !ok || ti != 1 || tk.TaskName != "b" {
		t.Fatalf("FindTask t2: ok=%v idx=%d", ok, ti)
	}
	if _, _, ok := FindTask(nil, "t2"); ok {
		t.Fatalf("FindTask on nil list should fail")
	}

	holder, idx, ok := LocateTask(st.Boards[0], "t3")
	if !ok || holder.ListID != "l2" || idx != 0 {
		t.Fatalf("LocateTask t3: ok=%v list=%v idx=%d", ok, holder, idx)
	}

	if _, ok := BoardAt(st, 2); ok {
		t.Fatalf("BoardAt out of range should fail")
	}
}

func TestCloneSharesNothing(t *testing.T) {
	st := fixture()
	c := st.Clone()

	if !reflect.DeepEqual(st, c) {
		t.Fatalf("clone differs from source")
	}
	if c.Boards[0] == st.Boards[0] || c.Boards[0].Lists[0] == st.Boards[0].Lists[0] || c.Boards[0].Lists[0].Tasks[0] == st.Boards[0].Lists[0].Tasks[0] {
		t.Fatalf("clone shares nodes with source")
	}
	c.Boards[0].Lists[0].Tasks[0].TaskName = "changed"
	if st.Boards[0].Lists[0].Tasks[0].TaskName != "a" {
		t.Fatalf("mutating clone leaked into source")
	}
}

func TestStateJSONFieldNames(t *testing.T) {
	b, err := json.Marshal(State{ModalActive: true, Boards: []*Board{{BoardID: "b", Lists: []*List{{ListID: "l", Tasks: []*Task{{TaskID: "t", TaskOwner: "o"}}}}}}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"modalActive":true,"boardArray":[{"boardId":"b","boardName":"","lists":[{"listId":"l","listName":"","tasks":[{"taskId":"t","taskName":"","taskDescription":"","taskOwner":"o"}]}]}]}`
	if string(b) != want {
		t.Fatalf("json:\n got: %s\nwant: %s", b, want)
	}
}

func TestBoardTaskHelpers(t *testing.T) {
	st := fixture()
	if got := st.Boards[0].TaskCount(); got != 3 {
		t.Fatalf("TaskCount: %d", got)
	}
	if got := st.Boards[0].TaskIDs(); !reflect.DeepEqual(got, []string{"t1", "t2", "t3"}) {
		t.Fatalf("TaskIDs: %v", got)
	}
}
