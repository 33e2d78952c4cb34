package cli

import (
	"github.com/spf13/cobra"

	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/store"
)

// DefaultListNames are the lists created on the first board of a new workspace.
var DefaultListNames = []string{"To Do", "Doing", "Done"}

func newInitCmd(app *App) *cobra.Command {
	var boardName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the workspace with a default board",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			st := sess.Hier.Current()
			created := false
			if len(st.Boards) == 0 {
				b, err := defaultBoard(st, boardName)
				if err != nil {
					return writeErr(cmd, err)
				}
				if _, _, err := sess.Dispatch(cmd.Context(), mutate.AddBoardAction{Board: b}); err != nil {
					return writeErr(cmd, err)
				}
				created = true
			} else if err := sess.Backend.Save(cmd.Context(), st); err != nil {
				return writeErr(cmd, err)
			}

			// If we're in workspace mode but no current workspace is set, set it.
			if app.Workspace != "" && app.cfg != nil && app.cfg.CurrentWorkspace == "" {
				app.cfg.CurrentWorkspace = app.Workspace
				_ = store.SaveConfig(app.cfg)
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":       app.Dir,
					"workspace": app.Workspace,
					"backend":   backendName(app),
					"created":   created,
					"state":     sess.Hier.Current(),
				},
			})
		},
	}
	cmd.Flags().StringVar(&boardName, "board", "Main", "Name of the default board")
	return cmd
}

func defaultBoard(st model.State, name string) (model.Board, error) {
	id, err := store.NewIDFor(st, store.PrefixBoard)
	if err != nil {
		return model.Board{}, err
	}
	b := model.Board{BoardID: id, BoardName: name, Lists: []*model.List{}}
	taken := map[string]bool{id: true}
	for _, n := range DefaultListNames {
		lid, err := store.NewID(store.PrefixList, func(x string) bool { return taken[x] || store.IDExists(st, x) })
		if err != nil {
			return model.Board{}, err
		}
		taken[lid] = true
		b.Lists = append(b.Lists, &model.List{ListID: lid, ListName: n, Tasks: []*model.Task{}})
	}
	return b, nil
}
