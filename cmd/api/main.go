// Package main starts the drivescope HTTP API: snapshot analysis, stored run
// artifacts, health checks and Prometheus metrics.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/drivescope/core/cmd/api/middleware"
	"github.com/drivescope/core/internal/analysis"
	"github.com/drivescope/core/internal/config"
	"github.com/drivescope/core/internal/handlers"
	"github.com/drivescope/core/internal/logging"
	"github.com/drivescope/core/internal/metrics"
	"github.com/drivescope/core/internal/report"
	"github.com/drivescope/core/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Sync()
	logger := logging.L()

	analysisCfg, err := cfg.Analysis()
	if err != nil {
		logger.Fatal("load analysis config", logging.Err(err))
	}
	analyzer, err := analysis.New(analysisCfg, analysis.WithLogger(logger.Named("analysis")))
	if err != nil {
		logger.Fatal("create analyzer", logging.Err(err))
	}

	store, err := cfg.Store()
	if err != nil {
		logger.Fatal("open storage", logging.String("backend", cfg.StorageBackend), logging.Err(err))
	}

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           newRouter(cfg, analyzer, store, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", logging.String("addr", cfg.ListenAddr), logging.String("storage", cfg.StorageBackend))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", logging.Err(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", logging.Err(err))
	}
}

func newRouter(cfg *config.Config, analyzer *analysis.Analyzer, store storage.Store, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", handlers.HealthHandler)
	mux.Handle("/analyze", handlers.NewAnalyzeHandler(analyzer,
		handlers.WithWriter(report.NewWriter(store, logger.Named("report"))),
		handlers.WithMaxBody(cfg.MaxSnapshotBytes),
	))

	runs := handlers.NewRunsHandler(store)
	mux.HandleFunc("GET /runs/{runID}", runs.List)
	mux.HandleFunc("GET /runs/{runID}/{file}", runs.File)

	mux.Handle("GET /metrics", metrics.Handler())

	// Outermost first: CORS, metrics, request logging, recovery.
	var handler http.Handler = mux
	handler = middleware.Recovery(handler)
	handler = logging.Middleware(handler)
	handler = metrics.Middleware(handler)
	handler = middleware.Cors(cfg.CORSOrigins)(handler)
	return handler
}
