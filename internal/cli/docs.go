package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/spf13/cobra"

	"kanban-cli/internal/docs"
)

func newDocsCmd(app *App) *cobra.Command {
	var render bool
	var width int
	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"data": docs.Topics()})
			}
			md, ok := docs.Get(args[0])
			if !ok {
				return writeErr(cmd, fmt.Errorf("unknown topic: %s (topics: %s)", args[0], strings.Join(docs.Names(), ", ")))
			}
			if !render {
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"topic": strings.ToLower(strings.TrimSpace(args[0])), "markdown": md}})
			}
			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(styles.NoTTYStyle),
				glamour.WithWordWrap(width),
			)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := r.Render(md)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, "Print rendered markdown instead of the JSON envelope")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for --render")
	return cmd
}
