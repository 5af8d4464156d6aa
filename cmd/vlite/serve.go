package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vlite/internal/preview"
	"github.com/vango-dev/vlite/pkg/telemetry"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live preview server",
		Long: `Start an HTTP server running the todo app. Connected browsers
receive the reconciled HTML after every render pass.

Examples:
  vlite serve
  vlite serve --port=8080
  curl -d title=milk localhost:4000/todos`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Dev.Port = port
			}
			if host != "" {
				cfg.Dev.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := newLogger(cfg, cmd.ErrOrStderr())

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			session, err := preview.NewSession(cfg, preview.SessionOptions{
				Logger:  logger,
				Metrics: telemetry.NewMetrics(telemetry.WithRegistry(reg)),
				Tracer:  telemetry.NewTracer(""),
			})
			if err != nil {
				return err
			}

			opts := []preview.Option{
				preview.WithAddr(cfg.Address()),
				preview.WithTitle(cfg.Title),
				preview.WithLogger(logger),
				preview.WithMetrics("", nil),
			}
			if cfg.Dev.Metrics {
				opts = append(opts, preview.WithMetrics(cfg.Dev.MetricsPath, reg))
			}
			srv := preview.New(session.App, session.Model, session.Router, opts...)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success(cmd.ErrOrStderr(), "Preview at %s", cfg.URL())
			if cfg.Dev.Metrics {
				info(cmd.ErrOrStderr(), "Metrics at %s%s", cfg.URL(), cfg.Dev.MetricsPath)
			}
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}
