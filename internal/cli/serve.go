package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"kanban-cli/internal/server"
	"kanban-cli/internal/store"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workspace over an HTTP JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeFn, err := openSession(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer closeFn()

			if addr == "" && app.cfg != nil {
				addr = app.cfg.Server.Addr
			}
			if addr == "" {
				addr = store.DefaultServerAddr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(sess, app.logger())
			app.logger().WithField("addr", addr).Warn("serving kanban API")
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config server.addr)")
	return cmd
}
