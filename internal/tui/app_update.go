package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.modal.isConfirm():
			return m.updateConfirm(msg)
		case m.modal != modalNone:
			return m.updateForm(msg)
		case m.detail:
			return m.updateDetail(msg)
		default:
			return m.updateBoard(msg)
		}
	}

	if m.modal != modalNone && !m.modal.isConfirm() {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.clampSelection()
	b := m.board()
	m.status = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "h", "left":
		m.sel.col--
		m.sel = m.sel.clamp(b)
	case "l", "right":
		m.sel.col++
		m.sel = m.sel.clamp(b)
	case "k", "up":
		m.sel.row--
		m.sel = m.sel.clamp(b)
	case "j", "down":
		m.sel.row++
		m.sel = m.sel.clamp(b)
	case "K":
		m.moveWithin(-1)
	case "J":
		m.moveWithin(1)
	case "H":
		m.moveAcross(-1)
	case "L":
		m.moveAcross(1)
	case "]", "tab":
		m.switchBoard(1)
	case "[", "shift+tab":
		m.switchBoard(-1)
	case "r":
		if _, err := m.sess.Reload(m.ctx); err != nil {
			m.status, m.isError = err.Error(), true
		} else {
			m.status, m.isError = "reloaded", false
		}
		m.clampSelection()
	case "enter":
		if _, _, ok := selectedTask(b, m.sel); ok {
			m.detail = true
		}
	case "a":
		if b != nil && len(b.Lists) > 0 {
			m.openModal(modalAddTask, newTaskForm(modalAddTask, "", "", ""))
			return m, textinput.Blink
		}
	case "e":
		return m.openEdit()
	case "d":
		if _, _, ok := selectedTask(b, m.sel); ok {
			m.openModal(modalConfirmDelete, taskForm{})
		}
	case "n":
		if b != nil {
			m.openModal(modalNewList, newTaskForm(modalNewList, "", "", ""))
			return m, textinput.Blink
		}
	case "b":
		m.openModal(modalNewBoard, newTaskForm(modalNewBoard, "", "", ""))
		return m, textinput.Blink
	case "D":
		switch {
		case b == nil:
		case len(m.state().Boards) <= 1:
			m.status, m.isError = "a workspace keeps at least one board", true
		default:
			m.openModal(modalConfirmDeleteBoard, taskForm{})
		}
	}
	return m, nil
}

func (m appModel) openEdit() (tea.Model, tea.Cmd) {
	_, t, ok := selectedTask(m.board(), m.sel)
	if !ok {
		return m, nil
	}
	m.openModal(modalEditTask, newTaskForm(modalEditTask, t.TaskName, t.TaskOwner, t.TaskDescription))
	return m, textinput.Blink
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.detail = false
	case "e":
		m.detail = false
		return m.openEdit()
	}
	return m, nil
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if m.modal == modalConfirmDeleteBoard {
			m.closeModal()
			m.deleteBoard()
			return m, nil
		}
		b := m.board()
		if l, t, ok := selectedTask(b, m.sel); ok {
			m.closeModal()
			m.dispatch(mutate.DeleteTaskAction{BoardID: b.BoardID, ListID: l.ListID, TaskID: t.TaskID})
			m.clampSelection()
			return m, nil
		}
		m.closeModal()
	case "n", "esc":
		m.closeModal()
	}
	return m, nil
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case key == "esc":
		m.closeModal()
		return m, nil
	case key == "tab":
		m.form.cycleFocus(1)
		return m, nil
	case key == "shift+tab":
		m.form.cycleFocus(-1)
		return m, nil
	case m.form.wantsSubmit(key):
		m.submitForm()
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m *appModel) submitForm() {
	name, owner, description := m.form.values()
	if name == "" {
		m.status, m.isError = "name is required", true
		return
	}
	kind := m.form.kind
	m.closeModal()

	b := m.board()
	switch kind {
	case modalNewBoard:
		if m.dispatch(mutate.AddBoardAction{Board: model.Board{BoardName: name}}) {
			m.boardIdx = len(m.state().Boards) - 1
			m.sel = selection{}
		}
	case modalNewList:
		if b != nil && m.dispatch(mutate.AddListAction{BoardID: b.BoardID, List: model.List{ListName: name}}) {
			m.sel = selection{col: len(m.board().Lists) - 1}
		}
	case modalAddTask:
		if b == nil || len(b.Lists) == 0 {
			return
		}
		l := b.Lists[m.sel.clamp(b).col]
		t := model.Task{TaskName: name, TaskOwner: owner, TaskDescription: description}
		if m.dispatch(mutate.AddTaskAction{BoardID: b.BoardID, ListID: l.ListID, Task: t}) {
			m.sel.row = len(l.Tasks)
		}
	case modalEditTask:
		l, t, ok := selectedTask(b, m.sel)
		if !ok {
			return
		}
		nt := *t
		nt.TaskName, nt.TaskOwner, nt.TaskDescription = name, owner, description
		m.dispatch(mutate.UpdateTaskAction{BoardID: b.BoardID, ListID: l.ListID, Task: nt})
	}
	m.clampSelection()
}

// moveWithin reorders the selected task one slot up (-1) or down (+1) in its list.
func (m *appModel) moveWithin(delta int) {
	b := m.board()
	l, t, ok := selectedTask(b, m.sel)
	if !ok {
		return
	}
	to := m.sel.row + delta
	if to < 0 || to >= len(l.Tasks) {
		return
	}
	req := mutate.SortRequest{
		BoardIndex:          m.boardIdx,
		DroppableIDStart:    l.ListID,
		DroppableIDEnd:      l.ListID,
		DroppableIndexStart: m.sel.row,
		DroppableIndexEnd:   to,
		DraggableID:         t.TaskID,
	}
	if m.dispatch(mutate.SortAction{SortRequest: req}) {
		m.sel.row = to
	}
}

// moveAcross moves the selected task to the end of the previous (-1) or next (+1) list.
func (m *appModel) moveAcross(delta int) {
	b := m.board()
	src, t, ok := selectedTask(b, m.sel)
	if !ok {
		return
	}
	dc := m.sel.col + delta
	if dc < 0 || dc >= len(b.Lists) {
		return
	}
	dst := b.Lists[dc]
	req := mutate.SortRequest{
		BoardIndex:          m.boardIdx,
		DroppableIDStart:    src.ListID,
		DroppableIDEnd:      dst.ListID,
		DroppableIndexStart: m.sel.row,
		DroppableIndexEnd:   len(dst.Tasks),
		DraggableID:         t.TaskID,
	}
	if m.dispatch(mutate.SortAction{SortRequest: req}) {
		m.sel = selection{col: dc, row: len(dst.Tasks)}
	}
}

// deleteBoard removes the current board and selects its neighbour: the next board when the first
// one was deleted, the previous one otherwise. The last board is never deleted.
func (m *appModel) deleteBoard() {
	b := m.board()
	if b == nil || len(m.state().Boards) <= 1 {
		return
	}
	idx := m.boardIdx
	if !m.dispatch(mutate.DeleteBoardAction{BoardID: b.BoardID}) {
		return
	}
	if idx > 0 {
		m.boardIdx = idx - 1
	} else {
		m.boardIdx = 0
	}
	m.sel = selection{}
	m.clampSelection()
}

func (m *appModel) switchBoard(delta int) {
	n := len(m.state().Boards)
	if n == 0 {
		return
	}
	m.boardIdx = (m.boardIdx + delta + n) % n
	m.sel = selection{}
	m.clampSelection()
}
