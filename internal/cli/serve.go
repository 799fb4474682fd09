package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/quadart/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		maxBodyMB int
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes the render pipeline over HTTP:

  POST /v1/render    image bytes in the body, or ?url=
  GET  /v1/history   recent runs
  GET  /healthz      liveness

Render options are query parameters (max_depth, color_threshold,
size_threshold, max_leaves, metric, format, outline, no_outline) and default
to the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config.ServerOptions()
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("max-body-mb") {
				cfg.MaxBodyBytes = int64(maxBodyMB) << 20
			}
			return c.runServe(cmd.Context(), cfg, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&maxBodyMB, "max-body-mb", server.DefaultMaxBodyBytes>>20, "largest accepted upload in MiB")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg server.Config, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := server.New(runner, c.Logger, cfg)
	printInfo("Serving on %s", StyleHighlight.Render(srv.Addr()))
	return srv.ListenAndServe(ctx)
}
