package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lists",
		Aliases: []string{"list"},
		Short:   "Lists (columns) on a board",
	}
	cmd.AddCommand(newListsAddCmd(app))
	cmd.AddCommand(newListsRemoveCmd(app))
	cmd.AddCommand(newListsRenameCmd(app))
	cmd.AddCommand(newListsMoveCmd(app))
	return cmd
}

func newListsAddCmd(app *App) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "add <board>",
		Short: "Append a list to a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name = strings.TrimSpace(name)
			if name == "" {
				return writeErr(cmd, errors.New("missing --name"))
			}
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			b, _, err := resolveBoard(sess.Hier.Current(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			_, applied, err := sess.Dispatch(cmd.Context(), mutate.AddListAction{BoardID: b.BoardID, List: model.List{ListName: name}})
			if err != nil {
				return writeErr(cmd, err)
			}
			nb, _, _ := model.FindBoard(sess.Hier.Current(), b.BoardID)
			l, _, _ := model.FindList(nb, applied.(mutate.AddListAction).List.ListID)
			return writeOut(cmd, app, map[string]any{"data": l})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "List name (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newListsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <board> <list>",
		Aliases: []string{"delete"},
		Short:   "Delete a list and its tasks",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			b, _, err := resolveBoard(sess.Hier.Current(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			l, _, err := resolveList(b, args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, _, err := sess.Dispatch(cmd.Context(), mutate.DeleteListAction{BoardID: b.BoardID, ListID: l.ListID}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": l.ListID}})
		},
	}
}

func newListsRenameCmd(app *App) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "rename <board> <list>",
		Short: "Rename a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			b, _, err := resolveBoard(sess.Hier.Current(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			l, _, err := resolveList(b, args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, _, err := sess.Dispatch(cmd.Context(), mutate.RenameListAction{BoardID: b.BoardID, ListID: l.ListID, ListName: strings.TrimSpace(name)}); err != nil {
				return writeErr(cmd, err)
			}
			nb, _, _ := model.FindBoard(sess.Hier.Current(), b.BoardID)
			nl, _, _ := model.FindList(nb, l.ListID)
			return writeOut(cmd, app, map[string]any{"data": nl})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New list name (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newListsMoveCmd(app *App) *cobra.Command {
	var from, to int
	cmd := &cobra.Command{
		Use:   "move <board>",
		Short: "Move a list to another position on its board",
		Example: strings.TrimSpace(`
  # Make the third list the first one
  kanban lists move Main --from 2 --to 0
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			b, bi, err := resolveBoard(sess.Hier.Current(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			a := mutate.SortListsAction{BoardIndex: bi, DroppableIndexStart: from, DroppableIndexEnd: to}
			if _, _, err := sess.Dispatch(cmd.Context(), a); err != nil {
				return writeErr(cmd, err)
			}
			nb, _, _ := model.FindBoard(sess.Hier.Current(), b.BoardID)
			return writeOut(cmd, app, map[string]any{"data": nb})
		},
	}
	cmd.Flags().IntVar(&from, "from", 0, "Current list position (0-based)")
	cmd.Flags().IntVar(&to, "to", 0, "Target list position (0-based)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
