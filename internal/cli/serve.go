package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/crossflow/pkg/cache"
	"github.com/matzehuels/crossflow/pkg/config"
	"github.com/matzehuels/crossflow/pkg/server"
)

// shutdownGrace bounds how long in-flight requests may run after a signal.
const shutdownGrace = 10 * time.Second

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the option builder over HTTP",
		Long: `Serve the option builder over HTTP.

Settings come from the application config (server.* and cache.*) and the
CROSSFLOW_* environment; --addr overrides server.addr. Stored layouts need a
cache backend and are lost with it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg := c.config.Server
			if addr != "" {
				cfg.Addr = addr
			}

			runner := c.newRunner(ctx, noCache)
			defer runner.Close()
			if _, ok := runner.Cache.(*cache.NullCache); ok {
				printWarning("Caching disabled: stored layouts are unavailable")
			}

			srv := server.New(serverConfig(cfg, c.config), runner, logger)
			printInfo("Listening on %s", StyleLink.Render(listenURL(cfg.Addr)))
			printDetail("Cache backend: %s", cacheBackendName(c.config, noCache))
			return srv.Run(ctx, shutdownGrace)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// serverConfig maps the application config onto the server's settings.
func serverConfig(sc config.ServerConfig, cfg *config.Config) server.Config {
	return server.Config{
		Addr:           sc.Addr,
		AllowAll:       sc.CORSAllowAll,
		RequestTimeout: sc.RequestTimeout,
		LayoutTTL:      cfg.Cache.LayoutTTL,
		Style:          cfg.Style,
	}
}

func cacheBackendName(cfg *config.Config, noCache bool) string {
	if noCache {
		return config.BackendNone
	}
	return cfg.Cache.Backend
}

// listenURL turns a listen address like ":8080" into a clickable URL.
func listenURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
