package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/cargo/internal/config"
	"github.com/vango-dev/cargo/internal/errors"
	"github.com/vango-dev/cargo/pkg/server"
)

type serveOptions struct {
	host    string
	port    int
	metrics bool
	level   string
}

func serveCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve [pages-dir]",
		Short: "Serve a directory of HTML pages",
		Long: `Serve every .html file under pages-dir (default "pages") as a
server-rendered page.

index.html maps to its directory and [name].html to a {name} path
parameter. cargo.json is read from the working directory or its parents
when present; flags override it.

Examples:
  cargo serve
  cargo serve site --port 8080
  cargo serve --metrics --log-level debug`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "pages"
			if len(args) > 0 {
				dir = args[0]
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = opts.host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = opts.port
			}
			if cmd.Flags().Changed("metrics") {
				cfg.Metrics.Enabled = opts.metrics
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = opts.level
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := cfg.NewLogger(cmd.ErrOrStderr())
			pages, err := loadPages(dir, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("serving pages", "dir", dir, "url", cfg.URL())
			return server.New(cfg, pages, server.WithLogger(logger)).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", config.DefaultHost, "Host to bind to")
	cmd.Flags().IntVarP(&opts.port, "port", "p", config.DefaultPort, "Port to listen on")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Expose Prometheus metrics")
	cmd.Flags().StringVar(&opts.level, "log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}

// loadConfig reads cargo.json from the working directory or its parents,
// falling back to defaults when there is none.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromWorkingDir()
	if errors.HasCode(err, "E120") {
		return config.New(), nil
	}
	return cfg, err
}
