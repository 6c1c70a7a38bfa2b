package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/panelview/pkg/server"
)

// serveCommand creates the serve command, which exposes the pipeline over
// HTTP until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve previews over HTTP",
		Long: `Serve starts the preview service.

  POST /v1/preview?format=svg|png|json|pdf|dxf   render a state payload
  POST /v1/preview/legacy                        SVG only, error document on bad input
  GET  /healthz                                  liveness
  GET  /version                                  build information`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(cmd.Context(), cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			// Fail at startup on a bad [render] section. The server gets an
			// unvalidated copy so per-request overrides are still checked.
			defaults := pipelineDefaults(cfg)
			if err := defaults.ValidateAndSetDefaults(); err != nil {
				return err
			}

			srv := server.New(runner, c.Logger, server.Options{
				Defaults:     pipelineDefaults(cfg),
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			})

			c.Logger.Info("starting server", "addr", cfg.Server.Addr, "cache", cfg.Cache.Backend)
			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
