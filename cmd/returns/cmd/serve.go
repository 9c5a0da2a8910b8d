package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpgo/returns-calculator/internal/server"
	"github.com/rpgo/returns-calculator/internal/tracing"
	"github.com/spf13/cobra"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var (
		addr       string
		rateLimit  int
		rateWindow time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Long: `Serve the calculator over HTTP.

Endpoints:
  GET|POST /api/projection      projection as JSON
  GET      /api/projection.csv  year-wise projection as CSV
  GET      /                    HTML report
  GET      /healthz             health check
  GET      /metrics             Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := root.load(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = s.env.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			tracer, shutdown, err := tracing.InitTracing(ctx, s.env.OTELServiceName, s.env.OTELEndpoint)
			if err != nil {
				return err
			}
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					s.logger.Warnf("tracer shutdown: %v", err)
				}
			}()
			if s.env.OTELEndpoint != "" {
				s.logger.Infof("exporting traces to %s", s.env.OTELEndpoint)
			}

			srv := server.New(server.Options{
				Configuration: s.config,
				Engine:        s.engine,
				Tracer:        tracer,
				Logger:        s.logger,
				NoLimits:      root.noLimits,
				RateLimit:     rateLimit,
				RateWindow:    rateWindow,
			})
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (default from RETURNS_ADDR)")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", 0, "API requests allowed per client and window, 0 disables")
	cmd.Flags().DurationVar(&rateWindow, "rate-window", time.Minute, "rate limit window")
	return cmd
}
