package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/session"
	"kanban-cli/internal/store"
)

type appModel struct {
	ctx       context.Context
	sess      *session.Session
	workspace string
	glyphs    glyphSet

	width  int
	height int

	boardIdx int
	sel      selection

	modal   modalKind
	form    taskForm
	detail  bool
	status  string
	isError bool
}

func newAppModel(ctx context.Context, sess *session.Session, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	return appModel{
		ctx:       ctx,
		sess:      sess,
		workspace: opts.Workspace,
		glyphs:    parseGlyphSet(opts.Glyphs),
		width:     80,
		height:    24,
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) state() model.State { return m.sess.Hier.Current() }

func (m appModel) board() *model.Board {
	b, ok := model.BoardAt(m.state(), m.boardIdx)
	if !ok {
		return nil
	}
	return b
}

// dispatch applies a through the session. Failures surface in the status line and leave the
// board as it was.
func (m *appModel) dispatch(a mutate.Action) bool {
	_, applied, err := m.sess.Dispatch(m.ctx, a)
	if err != nil {
		m.status = err.Error()
		m.isError = true
		return false
	}
	_, summary := session.Describe(applied)
	m.status = summary
	m.isError = false
	return true
}

func (m *appModel) openModal(k modalKind, f taskForm) {
	m.modal = k
	m.form = f
	if _, _, err := m.sess.Dispatch(m.ctx, mutate.SetModalActiveAction{Active: true}); err != nil {
		m.status, m.isError = err.Error(), true
	}
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	if _, _, err := m.sess.Dispatch(m.ctx, mutate.SetModalActiveAction{Active: false}); err != nil {
		m.status, m.isError = err.Error(), true
	}
}

func (m *appModel) clampSelection() {
	st := m.state()
	if m.boardIdx >= len(st.Boards) {
		m.boardIdx = len(st.Boards) - 1
	}
	if m.boardIdx < 0 {
		m.boardIdx = 0
	}
	m.sel = m.sel.clamp(m.board())
}

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	st := m.state()
	header := m.renderHeader(st)
	footer := m.renderFooter()
	bodyH := m.height - 3
	if bodyH < 1 {
		bodyH = 1
	}

	var body string
	switch {
	case m.detail:
		body = m.renderDetail(bodyH)
	default:
		body = renderColumns(m.board(), m.sel, m.glyphs, m.width, bodyH)
	}

	if m.modal != modalNone {
		var box string
		switch m.modal {
		case modalConfirmDelete:
			_, t, _ := selectedTask(m.board(), m.sel)
			name := ""
			if t != nil {
				name = t.TaskName
			}
			box = renderConfirm(m.width, m.modal.title(), fmt.Sprintf("Delete %q?", name))
		case modalConfirmDeleteBoard:
			name := ""
			if b := m.board(); b != nil {
				name = b.BoardName
			}
			box = renderConfirm(m.width, m.modal.title(), fmt.Sprintf("Delete board %q and all its lists?", name))
		default:
			box = m.form.view(m.width)
		}
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, box)
	}

	return strings.Join([]string{header, "", body, footer}, "\n")
}

func (m appModel) renderHeader(st model.State) string {
	left := "kanban"
	if m.workspace != "" {
		left += " " + m.glyphs.separator() + " " + m.workspace
	}
	title := lipgloss.NewStyle().Bold(true).Render(left)
	tabs := renderBoardTabs(st, m.boardIdx, m.glyphs, m.width-lipgloss.Width(title)-2)
	return normalizePane(title+"  "+tabs, m.width, 1, m.glyphs.ellipsis())
}

func (m appModel) renderFooter() string {
	if m.status != "" {
		st := styleMuted()
		if m.isError {
			st = lipgloss.NewStyle().Foreground(colorError)
		}
		return normalizePane(st.Render(m.status), m.width, 1, m.glyphs.ellipsis())
	}
	help := "h/l list  j/k task  H/L move  J/K reorder  a add  e edit  d delete  enter open  n list  b board  D delete board  [/] boards  q quit"
	return normalizePane(styleMuted().Render(help), m.width, 1, m.glyphs.ellipsis())
}

func (m appModel) renderDetail(height int) string {
	l, t, ok := selectedTask(m.board(), m.sel)
	if !ok {
		return normalizePane(styleMuted().Render("No task selected."), m.width, height, m.glyphs.ellipsis())
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(t.TaskName),
		styleMuted().Render(fmt.Sprintf("%s  %s %s", t.TaskID, m.glyphs.separator(), l.ListName)),
	}
	if owner := strings.TrimSpace(t.TaskOwner); owner != "" {
		lines = append(lines, m.glyphs.owner()+" "+owner)
	}
	lines = append(lines, "")
	if md := renderMarkdown(t.TaskDescription, m.width-4); md != "" {
		lines = append(lines, md)
	} else {
		lines = append(lines, styleMuted().Render("(no description)"))
	}
	lines = append(lines, "", styleMuted().Render("esc: back   e: edit"))
	return normalizePane(strings.Join(lines, "\n"), m.width, height, m.glyphs.ellipsis())
}

// restore moves the selection to the board, list and task recorded in ts. Ids that no longer
// exist fall back to the first board or list.
func (m *appModel) restore(ts *store.TUIState) {
	if ts == nil {
		return
	}
	st := m.state()
	b, bi, ok := model.FindBoard(st, ts.BoardID)
	if !ok {
		return
	}
	m.boardIdx = bi
	m.sel = selection{}
	if l, li, ok := model.FindList(b, ts.ListID); ok {
		m.sel.col = li
		if _, ti, ok := model.FindTask(l, ts.TaskID); ok {
			m.sel.row = ti
		}
	}
	m.sel = m.sel.clamp(b)
}

func (m appModel) snapshot() *store.TUIState {
	ts := &store.TUIState{Version: 1}
	b := m.board()
	if b == nil {
		return ts
	}
	ts.BoardID = b.BoardID
	sel := m.sel.clamp(b)
	if len(b.Lists) > 0 {
		ts.ListID = b.Lists[sel.col].ListID
	}
	if _, t, ok := selectedTask(b, sel); ok {
		ts.TaskID = t.TaskID
	}
	return ts
}
