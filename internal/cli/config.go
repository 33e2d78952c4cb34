package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"kanban-cli/internal/store"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Global settings (~/.kanban/config.json)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective config (file plus KANBAN_* overrides)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":   path,
				"config": app.cfg,
				"keys":   store.ConfigKeys(),
			}})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one config key",
		Example: strings.TrimSpace(`
  kanban config set backend redis
  kanban config set redis.addr localhost:6379
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg
			if cfg == nil {
				cfg = &store.GlobalConfig{}
			}
			if err := store.SetConfigValue(cfg, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	})
	return cmd
}
