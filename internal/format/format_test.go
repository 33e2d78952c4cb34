package format

import (
	"bytes"
	"strings"
	"testing"

	"kanban-cli/internal/model"
)

func sample() map[string]any {
	return map[string]any{"data": model.State{Boards: []*model.Board{{
		BoardID: "b1", BoardName: "Main",
		Lists: []*model.List{{ListID: "l1", ListName: "Todo", Tasks: []*model.Task{{TaskID: "t1", TaskName: "Ship it", TaskOwner: "ann"}}}},
	}}}}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample(), "json", false); err != nil {
		t.Fatalf("Write json: %v", err)
	}
	if !strings.Contains(buf.String(), `"boardArray":[{"boardId":"b1"`) {
		t.Fatalf("unexpected json: %s", buf.String())
	}
}

func TestWriteEDN(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample(), "edn", false); err != nil {
		t.Fatalf("Write edn: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`:board-array [`, `:board-id "b1"`, `:modal-active false`, `:task-owner "ann"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in edn output:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := WriteEDN(&buf, map[string]any{"xs": []any{}, "n": 1.5}, true); err != nil {
		t.Fatalf("WriteEDN pretty: %v", err)
	}
	if got, want := buf.String(), "{\n  :n 1.5\n  :xs []\n}\n"; got != want {
		t.Fatalf("pretty edn:\n got: %q\nwant: %q", got, want)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample(), "text", false); err != nil {
		t.Fatalf("Write text: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"boardArray (1)", "    Main\n", "      boardId: b1", "          Ship it\n", "taskOwner: ann"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in text output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "taskDescription") {
		t.Fatalf("expected empty strings to be omitted:\n%s", out)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "yaml", false); err == nil {
		t.Fatalf("expected error")
	}
}

func TestEDNKeyword(t *testing.T) {
	for in, want := range map[string]string{"boardId": "board-id", "data": "data", "modal_active": "modal-active", "a b": "a-b"} {
		if got := ednKeyword(in); got != want {
			t.Fatalf("ednKeyword(%q) = %q, want %q", in, got, want)
		}
	}
}
