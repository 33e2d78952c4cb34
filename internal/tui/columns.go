package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kanban-cli/internal/model"
)

// selection is the focused list (col) and task (row) on the current board. row is -1 when the
// focused list is empty.
type selection struct {
	col int
	row int
}

func (s selection) clamp(b *model.Board) selection {
	if b == nil || len(b.Lists) == 0 {
		return selection{col: 0, row: -1}
	}
	if s.col < 0 {
		s.col = 0
	}
	if s.col >= len(b.Lists) {
		s.col = len(b.Lists) - 1
	}
	n := len(b.Lists[s.col].Tasks)
	switch {
	case n == 0:
		s.row = -1
	case s.row < 0:
		s.row = 0
	case s.row >= n:
		s.row = n - 1
	}
	return s
}

func selectedTask(b *model.Board, sel selection) (*model.List, *model.Task, bool) {
	sel = sel.clamp(b)
	if b == nil || len(b.Lists) == 0 || sel.row < 0 {
		return nil, nil, false
	}
	l := b.Lists[sel.col]
	return l, l.Tasks[sel.row], true
}

// renderColumns draws every list of b side by side. Columns shrink to fit; the widest a column
// gets is 40 cells.
func renderColumns(b *model.Board, sel selection, gs glyphSet, width, height int) string {
	if b == nil {
		return normalizePane(styleMuted().Render("No boards yet. Press b to add one."), width, height, gs.ellipsis())
	}
	if len(b.Lists) == 0 {
		return normalizePane(styleMuted().Render("This board has no lists. Press n to add one."), width, height, gs.ellipsis())
	}
	sel = sel.clamp(b)

	n := len(b.Lists)
	gap := 1
	colW := (width - gap*(n-1)) / n
	if colW > 40 {
		colW = 40
	}
	if colW < 12 {
		colW = 12
	}

	cols := make([]string, 0, n)
	for ci, l := range b.Lists {
		cols = append(cols, renderColumn(l, ci == sel.col, sel.row, gs, colW, height))
	}
	sep := styleMuted().Render(strings.Repeat(gs.separator()+"\n", max(height-1, 0)) + gs.separator())
	parts := make([]string, 0, 2*n-1)
	for i, c := range cols {
		if i > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, c)
	}
	return normalizePane(lipgloss.JoinHorizontal(lipgloss.Top, parts...), width, height, gs.ellipsis())
}

func renderColumn(l *model.List, focused bool, row int, gs glyphSet, width, height int) string {
	title := fmt.Sprintf("%s (%d)", l.ListName, len(l.Tasks))
	lines := []string{styleHeader(focused).Width(width).Render(truncate(title, width-2, gs.ellipsis())), ""}

	inner := width - 2
	for ti, t := range l.Tasks {
		selected := focused && ti == row
		prefix := "  "
		if selected {
			prefix = gs.cursor() + " "
		}
		name := strings.TrimSpace(t.TaskName)
		if name == "" {
			name = t.TaskID
		}
		lines = append(lines, styleTask(selected).Width(width).Render(prefix+truncate(name, inner-2, gs.ellipsis())))
		if owner := strings.TrimSpace(t.TaskOwner); owner != "" {
			lines = append(lines, styleMuted().Width(width).Render("    "+truncate(gs.owner()+" "+owner, inner-4, gs.ellipsis())))
		}
	}
	if len(l.Tasks) == 0 {
		lines = append(lines, styleMuted().Padding(0, 1).Render("(empty)"))
	}
	return normalizePane(strings.Join(lines, "\n"), width, height, gs.ellipsis())
}

func renderBoardTabs(st model.State, current int, gs glyphSet, width int) string {
	if len(st.Boards) == 0 {
		return ""
	}
	tabs := make([]string, 0, len(st.Boards))
	for i, b := range st.Boards {
		tabs = append(tabs, styleHeader(i == current).Render(b.BoardName))
	}
	return normalizePane(strings.Join(tabs, " "), width, 1, gs.ellipsis())
}
