package store

import (
	"testing"

	"kanban-cli/internal/model"
)

func TestIDExists_SearchesAllKinds(t *testing.T) {
	st := model.State{Boards: []*model.Board{{BoardID: "b1", Lists: []*model.List{
		{ListID: "l1", Tasks: []*model.Task{{TaskID: "t1"}}},
	}}}}
	for _, id := range []string{"b1", "l1", "t1"} {
		if !IDExists(st, id) {
			t.Fatalf("IDExists(%q) = false", id)
		}
	}
	if IDExists(st, "t2") {
		t.Fatalf("IDExists(t2) = true")
	}
}

func TestNewID_Errors(t *testing.T) {
	if _, err := NewID("  ", nil); err == nil {
		t.Fatalf("expected missing prefix error")
	}
	if _, err := NewID(PrefixList, func(string) bool { return true }); err == nil {
		t.Fatalf("expected error when every candidate collides")
	}
}
