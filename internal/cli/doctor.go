package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"kanban-cli/internal/store"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the workspace for duplicate ids and other damage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			report := store.Doctor(sess.Hier.Current())
			for _, it := range report.Issues {
				app.logger().WithField("code", it.Code).Debug(it.Message)
			}
			if err := writeOut(cmd, app, map[string]any{"data": report}); err != nil {
				return err
			}
			if fail && report.HasErrors() {
				return writeErr(cmd, errors.New("doctor found errors"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fail, "fail", false, "Exit non-zero when any error-level issue is found")
	return cmd
}
