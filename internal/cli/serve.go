package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"time"

	"github.com/aretw0/markov/internal/adapters/http"
	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions are the per-invocation settings of the serve command.
type ServeOptions struct {
	Version string
	// Listener overrides cfg.Server.Addr, mainly for tests.
	Listener net.Listener
	// Ready, if set, receives the bound address once the server accepts requests.
	Ready chan<- string
}

// NewServerHandler builds the model and store from cfg and returns the full
// HTTP handler, metrics included, plus a function releasing the store.
func NewServerHandler(ctx context.Context, cfg *config.Config, version string) (nethttp.Handler, func() error, error) {
	logger := createLogger(cfg.Log.Level)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	hooks := observability.Chain(metrics.Hooks(), createDebugHooks(logger))
	model, err := createModel(ctx, cfg, logger, hooks)
	if err != nil {
		return nil, nil, err
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	router := http.NewRouter(model,
		http.WithStore(store),
		http.WithLogger(logger),
		http.WithVersion(version),
	)
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return router, closeStore, nil
}

// RunServe serves the model until ctx is cancelled, then shuts down gracefully.
func RunServe(ctx context.Context, cfg *config.Config, opts ServeOptions) error {
	logger := createLogger(cfg.Log.Level)

	handler, closeStore, err := NewServerHandler(ctx, cfg, opts.Version)
	if err != nil {
		return err
	}
	defer closeStore()

	ln := opts.Listener
	if ln == nil {
		ln, err = net.Listen("tcp", cfg.Server.Addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Addr, err)
		}
	}

	srv := &nethttp.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", ln.Addr().String())
		serverErrors <- srv.Serve(ln)
	}()
	if opts.Ready != nil {
		opts.Ready <- ln.Addr().String()
	}

	select {
	case err := <-serverErrors:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		logger.Info("server stopped gracefully")
		return nil
	}
}
