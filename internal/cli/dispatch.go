package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"kanban-cli/internal/mutate"
)

func newDispatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dispatch [file|-]",
		Short: "Apply one JSON action envelope ({\"type\":...,\"payload\":...})",
		Example: strings.TrimSpace(`
  echo '{"type":"renameBoard","payload":{"boardId":"board-1a2b3c4d","boardName":"Roadmap"}}' | kanban dispatch
  kanban dispatch action.json
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				r = f
			}
			raw, err := io.ReadAll(r)
			if err != nil {
				return writeErr(cmd, err)
			}
			a, err := mutate.DecodeAction(raw)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("decode action: %w", err))
			}

			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			st, _, err := sess.Dispatch(cmd.Context(), a)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": st})
		},
	}
}
