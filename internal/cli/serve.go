package cli

import (
	"github.com/spf13/cobra"

	"github.com/algexeno/cistercian/internal/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve renders over HTTP. The listen address, timeouts, cache backend and
rendering defaults come from the configuration file.

Routes:
  GET  /healthz
  GET  /v1/strokes?expr=...
  GET  /v1/render.{svg,png,gif,pdf,json}?expr=...
  GET  /v1/tree?expr=...&format=dot|svg
  POST /v1/renders
  GET  /v1/renders/{id}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			cfg := c.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}
			srv := server.New(runner,
				server.WithLogger(loggerFromContext(ctx)),
				server.WithDefaults(c.Config.Options("")))
			printInfo(cmd.OutOrStdout(), "Listening on %s", StyleHighlight.Render(cfg.Addr))
			return srv.ListenAndServe(ctx, cfg.Addr, cfg.ReadTimeout.Duration, cfg.WriteTimeout.Duration)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")

	return cmd
}
