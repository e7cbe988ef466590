package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/terra-clan/career-assessment/internal/api"
	"github.com/terra-clan/career-assessment/internal/catalog"
	"github.com/terra-clan/career-assessment/internal/cleanup"
	"github.com/terra-clan/career-assessment/internal/config"
	"github.com/terra-clan/career-assessment/internal/monitoring"
	"github.com/terra-clan/career-assessment/internal/recommend"
)

func main() {
	// A missing .env is fine; real environment variables take precedence
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	level, _ := config.ParseLogLevel(cfg.Log.Level)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	slog.Info("starting career-assessment",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"model", cfg.AI.Model,
	)

	// Build the shared catalog
	cat := catalog.New()
	if cfg.Catalog.SeedFile != "" {
		if err := cat.LoadFromFile(cfg.Catalog.SeedFile); err != nil {
			slog.Error("failed to load catalog seed", "file", cfg.Catalog.SeedFile, "error", err)
			os.Exit(1)
		}
		slog.Info("catalog seeded", "file", cfg.Catalog.SeedFile)
	}

	var metrics *monitoring.Metrics
	opts := []recommend.Option{
		recommend.WithModel(cfg.AI.Model),
		recommend.WithAPIKeyEnv(cfg.AI.APIKeyEnv),
	}
	if cfg.Metrics.Enabled {
		metrics = monitoring.New()
		opts = append(opts, recommend.WithObserver(metrics.ObserveRecommendation))
	}

	generator := recommend.NewGeminiGenerator(cfg.AI.BaseURL, cfg.AI.Timeout)
	recommender := recommend.NewClient(generator, opts...)
	if err := recommender.Ready(); err != nil {
		slog.Warn("recommendations unavailable until the key is set", "env", cfg.AI.APIKeyEnv, "error", err)
	}

	// Setup HTTP server
	server := api.NewServer(cfg.Server, cat, recommender, metrics)
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.Router(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start idle session cleanup
	cleaner := cleanup.NewCleaner(server, cfg.Cleanup.Interval, cfg.Cleanup.IdleTTL)
	cleaner.Start(ctx)

	// Start server in goroutine
	go func() {
		slog.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Close watch feeds
	server.Close()

	slog.Info("career-assessment stopped")
}
