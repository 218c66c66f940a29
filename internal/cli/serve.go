package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jverhoef/cardrail/internal/server"
)

// serveCommand creates the serve command for the HTTP layout API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve [manifest]",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Endpoints:
  POST /v1/layout                  lay out ad-hoc cards from the request body
  GET  /v1/layout/{viewportWidth}  lay out the configured content source
  GET  /v1/state                   visual state at ?progress= and ?viewport=
  GET  /v1/jump/{category}         navigation target for a category
  GET  /healthz                    liveness probe

The server shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest := ""
			if len(args) > 0 {
				manifest = args[0]
			}
			return c.runServe(cmd.Context(), manifest, addr, noCache)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default: configured addr)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, manifest, addr string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	source, closeSource, err := c.newSource(ctx, cfg, manifest)
	if err != nil {
		return err
	}
	defer closeSource()

	runner, err := c.newRunner(cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	printInfo("Serving layout API on %s", cfg.Server.Addr)
	return server.New(runner, source, cfg, c.Logger).Start(ctx)
}
