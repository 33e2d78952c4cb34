package cli

import (
	"github.com/spf13/cobra"

	"kanban-cli/internal/session"
)

func newActivityCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent changes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			acts, err := sess.Backend.ListActivity(cmd.Context(), session.ActivityLimit(limit))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": acts})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max entries (default 50)")
	return cmd
}
