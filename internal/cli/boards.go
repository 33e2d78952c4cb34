package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"kanban-cli/internal/model"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/publish"
)

type boardSummary struct {
	BoardID   string `json:"boardId"`
	BoardName string `json:"boardName"`
	Lists     int    `json:"lists"`
	Tasks     int    `json:"tasks"`
}

func newBoardsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "boards",
		Aliases: []string{"board"},
		Short:   "Boards",
	}
	cmd.AddCommand(newBoardsListCmd(app))
	cmd.AddCommand(newBoardsShowCmd(app))
	cmd.AddCommand(newBoardsAddCmd(app))
	cmd.AddCommand(newBoardsRenameCmd(app))
	cmd.AddCommand(newBoardsRemoveCmd(app))
	cmd.AddCommand(newBoardsPublishCmd(app))
	return cmd
}

func newBoardsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List boards",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			out := []boardSummary{}
			for _, b := range sess.Hier.Current().Boards {
				out = append(out, boardSummary{BoardID: b.BoardID, BoardName: b.BoardName, Lists: len(b.Lists), Tasks: b.TaskCount()})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newBoardsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <board>",
		Short: "Show a board with its lists and tasks",
		Args:  cobra.ExactArgs(1),
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
			return writeOut(cmd, app, map[string]any{"data": b})
		},
	}
}

func newBoardsAddCmd(app *App) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a board",
		Args:  cobra.NoArgs,
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

			_, applied, err := sess.Dispatch(cmd.Context(), mutate.AddBoardAction{Board: model.Board{BoardName: name}})
			if err != nil {
				return writeErr(cmd, err)
			}
			id := applied.(mutate.AddBoardAction).Board.BoardID
			b, _, _ := model.FindBoard(sess.Hier.Current(), id)
			return writeOut(cmd, app, map[string]any{"data": b})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Board name (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newBoardsRenameCmd(app *App) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "rename <board>",
		Short: "Rename a board",
		Args:  cobra.ExactArgs(1),
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
			if _, _, err := sess.Dispatch(cmd.Context(), mutate.RenameBoardAction{BoardID: b.BoardID, BoardName: strings.TrimSpace(name)}); err != nil {
				return writeErr(cmd, err)
			}
			nb, _, _ := model.FindBoard(sess.Hier.Current(), b.BoardID)
			return writeOut(cmd, app, map[string]any{"data": nb})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New board name (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newBoardsRemoveCmd(app *App) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "rm <board>",
		Aliases: []string{"delete"},
		Short:   "Delete a board with all its lists and tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			st := sess.Hier.Current()
			b, _, err := resolveBoard(st, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(st.Boards) <= 1 && !force {
				return writeErr(cmd, errors.New("refusing to delete the last board (use --force)"))
			}
			if _, _, err := sess.Dispatch(cmd.Context(), mutate.DeleteBoardAction{BoardID: b.BoardID}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": b.BoardID}})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Allow deleting the last remaining board")
	return cmd
}

func newBoardsPublishCmd(app *App) *cobra.Command {
	var to string
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "publish <board>",
		Short: "Write a board as static markdown (index plus one page per task)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			st := sess.Hier.Current()
			b, _, err := resolveBoard(st, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := publish.WriteBoard(st, b.BoardID, to, publish.WriteOptions{Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Output directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
