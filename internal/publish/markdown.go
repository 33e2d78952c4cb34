package publish

import (
	"bytes"
	"fmt"
	"strings"

	"kanban-cli/internal/model"
)

// RenderBoardMarkdown renders the board index: one section per list with a checklist-style
// line per task, linking to the task pages written next to it.
func RenderBoardMarkdown(b *model.Board) (string, error) {
	if b == nil {
		return "", fmt.Errorf("missing board")
	}
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + titleOr(b.BoardName, b.BoardID))
	writeLn("")
	writeLn(fmt.Sprintf("- ID: %s", b.BoardID))
	writeLn(fmt.Sprintf("- Lists: %d", len(b.Lists)))
	writeLn(fmt.Sprintf("- Tasks: %d", b.TaskCount()))

	for _, l := range b.Lists {
		if l == nil {
			continue
		}
		writeLn("")
		writeLn(fmt.Sprintf("## %s (%d)", titleOr(l.ListName, l.ListID), len(l.Tasks)))
		writeLn("")
		if len(l.Tasks) == 0 {
			writeLn("_No tasks._")
			continue
		}
		for _, t := range l.Tasks {
			if t == nil {
				continue
			}
			line := fmt.Sprintf("- [%s](tasks/%s.md)", escapeLinkText(titleOr(t.TaskName, t.TaskID)), t.TaskID)
			if owner := strings.TrimSpace(t.TaskOwner); owner != "" {
				line += " @" + owner
			}
			writeLn(line)
		}
	}
	return buf.String(), nil
}

// RenderTaskMarkdown renders one task page. l is the list holding t.
func RenderTaskMarkdown(b *model.Board, l *model.List, t *model.Task) (string, error) {
	if b == nil || l == nil || t == nil {
		return "", fmt.Errorf("missing board, list or task")
	}
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + titleOr(t.TaskName, t.TaskID))
	writeLn("")
	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + t.TaskID)
	writeLn("- Board: " + titleOr(b.BoardName, b.BoardID) + " (" + b.BoardID + ")")
	writeLn("- List: " + titleOr(l.ListName, l.ListID) + " (" + l.ListID + ")")
	if owner := strings.TrimSpace(t.TaskOwner); owner != "" {
		writeLn("- Owner: " + owner)
	}

	if desc := strings.TrimSpace(t.TaskDescription); desc != "" {
		writeLn("")
		writeLn("## Description")
		writeLn("")
		writeLn(desc)
	}
	writeLn("")
	writeLn("[Back to board](../index.md)")
	return buf.String(), nil
}

func titleOr(name, id string) string {
	if s := strings.TrimSpace(name); s != "" {
		return s
	}
	return id
}

func escapeLinkText(s string) string {
	return strings.NewReplacer("[", `\[`, "]", `\]`).Replace(s)
}
