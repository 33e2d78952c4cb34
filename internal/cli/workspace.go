package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kanban-cli/internal/model"
	"kanban-cli/internal/store"
)

func newWorkspaceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Workspace management",
	}
	cmd.AddCommand(newWorkspaceListCmd(app))
	cmd.AddCommand(newWorkspaceUseCmd(app))
	cmd.AddCommand(newWorkspaceCurrentCmd(app))
	cmd.AddCommand(newWorkspaceExportCmd(app))
	cmd.AddCommand(newWorkspaceImportCmd(app))
	return cmd
}

func newWorkspaceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List workspaces under ~/.kanban/workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := store.ListWorkspaces()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": names})
		},
	}
}

func newWorkspaceUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Set the current workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.SetConfigValue(app.cfg, "currentWorkspace", args[0]); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(app.cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"workspace": app.cfg.CurrentWorkspace}})
		},
	}
}

func newWorkspaceCurrentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the resolved workspace and store dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDir(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"workspace": app.Workspace,
				"dir":       dir,
				"backend":   backendName(app),
			}})
		},
	}
}

func newWorkspaceExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the whole snapshot as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			b, err := json.MarshalIndent(sess.Hier.Current(), "", "  ")
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := os.WriteFile(args[0], append(b, '\n'), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": args[0], "boards": len(sess.Hier.Current().Boards)}})
		},
	}
}

func newWorkspaceImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole snapshot with a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			var st model.State
			if err := json.Unmarshal(raw, &st); err != nil {
				return writeErr(cmd, fmt.Errorf("parse %s: %w", args[0], err))
			}

			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			sess.Hier.Replace(st)
			if err := sess.Backend.Save(cmd.Context(), sess.Hier.Current()); err != nil {
				return writeErr(cmd, err)
			}
			act, err := store.NewActivity("import", "", fmt.Sprintf("imported %d boards from %s", len(st.Boards), args[0]), nil)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := sess.Backend.AppendActivity(cmd.Context(), act); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": sess.Hier.Current()})
		},
	}
}
