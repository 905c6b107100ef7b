package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/ojimaabraham/chronos"
	"github.com/ojimaabraham/chronos/internal/metrics"
)

// newMetricsCommand starts a Manager with a live Prometheus registry and
// serves it over HTTP until interrupted. Intended for embedding chronos as
// a long-lived sidecar rather than the one-shot CLI usage the other
// subcommands assume.
func newMetricsCommand(baseLogger pslog.Logger) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve-metrics",
		Short: "Run a long-lived process exposing Prometheus metrics for admissions and releases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reg := prometheus.NewRegistry()
			registry := metrics.New(reg)

			mgr, err := newManagerWithMetrics(ctx, baseLogger, registry)
			if err != nil {
				return err
			}
			defer mgr.Close(ctx)

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("metrics listen: %w", err)
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			srv := &http.Server{Handler: mux}

			logger := baseLogger.With("component", "cli.serve-metrics")
			logger.Info("serve_metrics.listening", "addr", ln.Addr().String())

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
					return
				}
				errCh <- nil
			}()

			select {
			case <-ctx.Done():
				srv.Close()
				<-errCh
				return nil
			case err := <-errCh:
				return err
			}
		},
	}
	cmd.Flags().StringVar(&addr, "listen", ":9190", "address to serve /metrics on")
	return cmd
}

func newManagerWithMetrics(ctx context.Context, baseLogger pslog.Logger, registry *metrics.Registry) (*chronos.Manager, error) {
	cfg := chronosConfigFromViper(baseLogger)
	cfg.Metrics = registry
	return chronos.NewManager(ctx, cfg)
}
