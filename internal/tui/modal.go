package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalAddTask
	modalEditTask
	modalNewList
	modalNewBoard
	modalConfirmDelete
	modalConfirmDeleteBoard
)

func (k modalKind) title() string {
	switch k {
	case modalAddTask:
		return "New task"
	case modalEditTask:
		return "Edit task"
	case modalNewList:
		return "New list"
	case modalNewBoard:
		return "New board"
	case modalConfirmDelete:
		return "Delete task"
	case modalConfirmDeleteBoard:
		return "Delete board"
	default:
		return ""
	}
}

func (k modalKind) isConfirm() bool {
	return k == modalConfirmDelete || k == modalConfirmDeleteBoard
}

// hasTaskFields reports whether the modal edits owner and description besides the name.
func (k modalKind) hasTaskFields() bool {
	return k == modalAddTask || k == modalEditTask
}

const (
	focusName = iota
	focusOwner
	focusDescription
)

// taskForm is the input state of the add/edit/new-list modals.
type taskForm struct {
	kind        modalKind
	name        textinput.Model
	owner       textinput.Model
	description textarea.Model
	focus       int
}

func newTaskForm(kind modalKind, name, owner, description string) taskForm {
	f := taskForm{kind: kind}

	f.name = textinput.New()
	f.name.Placeholder = "Name"
	f.name.CharLimit = 200
	f.name.Width = 40
	f.name.SetValue(name)

	f.owner = textinput.New()
	f.owner.Placeholder = "Owner"
	f.owner.CharLimit = 80
	f.owner.Width = 40
	f.owner.SetValue(owner)

	f.description = textarea.New()
	f.description.Placeholder = "Description (markdown)"
	f.description.ShowLineNumbers = false
	f.description.SetWidth(44)
	f.description.SetHeight(6)
	f.description.SetValue(description)

	f.setFocus(focusName)
	return f
}

func (f *taskForm) setFocus(i int) {
	f.focus = i
	f.name.Blur()
	f.owner.Blur()
	f.description.Blur()
	switch i {
	case focusOwner:
		f.owner.Focus()
	case focusDescription:
		f.description.Focus()
	default:
		f.name.Focus()
	}
}

func (f *taskForm) cycleFocus(delta int) {
	if !f.kind.hasTaskFields() {
		return
	}
	f.setFocus((f.focus + delta + 3) % 3)
}

// wantsSubmit reports whether key submits the form in its current focus. enter inserts a newline
// in the description, so ctrl+s always submits.
func (f taskForm) wantsSubmit(key string) bool {
	if key == "ctrl+s" {
		return true
	}
	return key == "enter" && f.focus != focusDescription
}

func (f taskForm) update(msg tea.Msg) (taskForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case focusOwner:
		f.owner, cmd = f.owner.Update(msg)
	case focusDescription:
		f.description, cmd = f.description.Update(msg)
	default:
		f.name, cmd = f.name.Update(msg)
	}
	return f, cmd
}

func (f taskForm) values() (name, owner, description string) {
	return strings.TrimSpace(f.name.Value()), strings.TrimSpace(f.owner.Value()), f.description.Value()
}

func (f taskForm) view(width int) string {
	rows := []string{f.name.View()}
	help := "enter: save   esc: cancel"
	if f.kind.hasTaskFields() {
		rows = append(rows, f.owner.View(), "", f.description.View())
		help = "tab: next field   enter/ctrl+s: save   esc: cancel"
	}
	rows = append(rows, "", styleMuted().Render(help))
	return renderModalBox(width, f.kind.title(), strings.Join(rows, "\n"))
}

func renderConfirm(width int, title, body string) string {
	help := styleMuted().Render("y/enter: delete   n/esc: cancel")
	return renderModalBox(width, title, body+"\n\n"+help)
}

func modalBodyWidth(width int) int {
	w := width - 8
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderModalBox(width int, title, content string) string {
	bodyW := modalBodyWidth(width)
	header := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorModalBorder).
		Padding(0, 1).
		Width(bodyW)
	return box.Render(header + "\n\n" + content)
}
