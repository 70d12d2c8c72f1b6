package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zachdehooge/distbuilder/internal/config"
	"github.com/Zachdehooge/distbuilder/internal/logfields"
	"github.com/Zachdehooge/distbuilder/internal/metrics"
	"github.com/Zachdehooge/distbuilder/internal/pipeline"
	"github.com/Zachdehooge/distbuilder/internal/watch"
)

// WatchCmd implements the 'watch' command: it rebuilds whenever the project
// sources change, with an optional Prometheus endpoint for long-running use.
type WatchCmd struct {
	Strict bool `help:"Abort a rebuild on the first failed stage"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if w.Strict {
		cfg.Build.FailureMode = config.FailureStrict
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var opts []pipeline.Option

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
		opts = append(opts, pipeline.WithHistory(store))
	}

	if cfg.Monitoring != nil && cfg.Monitoring.Enabled {
		recorder := metrics.NewPrometheusRecorder(nil)
		opts = append(opts, pipeline.WithRecorder(recorder))

		srv := startMetricsServer(cfg.Monitoring.ListenAddr, recorder)
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer stopCancel()
			if err := srv.Shutdown(stopCtx); err != nil {
				slog.Warn("Metrics server shutdown failed", logfields.Error(err))
			}
		}()
	}

	builder := pipeline.NewBuilder(cfg, opts...)
	watcher, err := watch.New(builder, cfg, ".")
	if err != nil {
		return err
	}

	fmt.Printf("Watching %s for changes; press Ctrl-C to stop\n", cfg.Project.Name)
	return watcher.Run(ctx)
}

func startMetricsServer(addr string, recorder *metrics.PrometheusRecorder) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(recorder.Registry()))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("Serving Prometheus metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()
	return srv
}
