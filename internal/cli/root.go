package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"kanban-cli/internal/format"
	"kanban-cli/internal/logging"
	"kanban-cli/internal/session"
	"kanban-cli/internal/store"
	"kanban-cli/internal/tui"
)

type App struct {
	Dir        string
	Workspace  string
	PrettyJSON bool
	Format     string
	LogLevel   string
	Backend    string

	cfg *store.GlobalConfig
	log *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "kanban",
		Short:        "Kanban boards from the terminal (CLI + TUI + HTTP API)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  kanban

  # Create the default board and print it
  kanban init
  kanban boards show Main --format text

  # Move a task to the top of another list
  kanban tasks move Main --task task-1a2b3c4d --to-list Done --to-index 0
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := store.LoadConfig()
		if err != nil {
			return writeErr(cmd, err)
		}
		app.cfg = cfg
		level := app.LogLevel
		if level == "" {
			level = cfg.LogLevel
		}
		app.log = logging.New(level, cmd.ErrOrStderr())
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("KANBAN_DIR", ""), "Path to store dir (overrides workspace resolution)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("KANBAN_WORKSPACE", ""), "Workspace name (default: config currentWorkspace, then 'default')")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("KANBAN_FORMAT", "json"), "Output format (json|edn|text)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error; default from config, then warn)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", "", "Snapshot backend (sqlite|redis; default from config)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newBoardsCmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newDispatchCmd(app))
	cmd.AddCommand(newActivityCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newWorkspaceCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	sess, closeFn, err := openSession(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer closeFn()
	// The TUI owns the terminal; keep log lines off it.
	sess.Log = logging.Discard()
	glyphs := ""
	if app.cfg != nil {
		glyphs = app.cfg.TUI.Glyphs
	}
	return tui.Run(cmd.Context(), sess, tui.Options{Workspace: app.Workspace, Glyphs: glyphs, StateDir: app.Dir})
}

// resolveDir picks the workspace dir:
// 1) --dir
// 2) --workspace
// 3) ~/.kanban/config.json currentWorkspace
// 4) the implicit "default" workspace
func resolveDir(app *App) (string, error) {
	if app.Dir != "" {
		return app.Dir, nil
	}
	name := app.Workspace
	if name == "" && app.cfg != nil && app.cfg.CurrentWorkspace != "" {
		name = app.cfg.CurrentWorkspace
	}
	if name == "" {
		name = "default"
	}
	d, err := store.WorkspaceDir(name)
	if err != nil {
		return "", err
	}
	app.Workspace = name
	app.Dir = d
	return d, nil
}

func backendName(app *App) string {
	if app.Backend != "" {
		return app.Backend
	}
	if app.cfg != nil {
		return app.cfg.Backend
	}
	return store.BackendSQLite
}

func openSession(ctx context.Context, app *App) (*session.Session, func() error, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	dir, err := resolveDir(app)
	if err != nil {
		return nil, nil, err
	}
	b, closeFn, err := store.Open(backendName(app), dir, app.cfg, app.logger())
	if err != nil {
		return nil, nil, err
	}
	sess, err := session.Open(ctx, b, app.logger())
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	if app.cfg != nil {
		sess.Author = app.cfg.Author
	}
	return sess, closeFn, nil
}

func (app *App) logger() *log.Logger {
	if app.log != nil {
		return app.log
	}
	return logging.Discard()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
