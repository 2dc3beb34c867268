package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/orbit/internal/adapters/cache"
	"github.com/okian/orbit/internal/adapters/http/api"
	"github.com/okian/orbit/internal/adapters/xapi"
	app "github.com/okian/orbit/internal/app"
	"github.com/okian/orbit/internal/config"
	"github.com/okian/orbit/pkg/logger"
	"github.com/okian/orbit/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 60 * time.Second // orbit computation waits on upstream fetches
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if cfg.BearerToken == "" {
		log.Warn(ctx, "no bearer token configured; upstream requests will be unauthenticated")
	}

	fetcher := xapi.NewClient(cfg.APIBaseURL, cfg.BearerToken,
		xapi.WithRateLimit(cfg.RequestsPerSecond, cfg.Burst),
		xapi.WithMaxAttempts(cfg.MaxAttempts),
		xapi.WithFetchLimit(cfg.FetchLimit),
		xapi.WithFollowerLimit(cfg.FollowerLimit),
	)

	opts := []app.Option{
		app.WithLogger(log.Named("app")),
		app.WithFetcher(fetcher),
		app.WithDefaultLayers(cfg.DefaultLayers),
	}
	if cfg.CacheEnabled {
		opts = append(opts, app.WithCache(cache.New(
			cache.WithTTL(time.Duration(cfg.CacheTTLSeconds)*time.Second),
			cache.WithMaxEntries(cfg.CacheMaxEntries),
		)))
	}
	svc := app.New(opts...)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	api.NewServer(svc, svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(context.Background(), "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "graceful shutdown failed", logger.Error(err))
	}
}
