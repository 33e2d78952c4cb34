package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"kanban-cli/internal/session"
	"kanban-cli/internal/store"
)

type Options struct {
	Workspace string
	// Glyphs is "unicode" (default) or "ascii".
	Glyphs string
	// StateDir holds tui_state.json; empty disables restoring the last selection.
	StateDir string
}

func Run(ctx context.Context, sess *session.Session, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()

	ui := store.Store{Dir: opts.StateDir, Log: sess.Log}
	m := newAppModel(ctx, sess, opts)
	if ts, err := ui.LoadTUIState(); err == nil {
		m.restore(ts)
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if fm, ok := final.(appModel); ok {
		if serr := ui.SaveTUIState(fm.snapshot()); serr != nil && err == nil {
			sess.Log.WithError(serr).Warn("save tui state")
		}
	}
	return err
}
