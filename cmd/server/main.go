package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rickgao/polymarket-data/internal/analytics"
	"github.com/rickgao/polymarket-data/internal/clob"
	"github.com/rickgao/polymarket-data/internal/collector"
	"github.com/rickgao/polymarket-data/internal/config"
	"github.com/rickgao/polymarket-data/internal/gamma"
	"github.com/rickgao/polymarket-data/internal/sampler"
	"github.com/rickgao/polymarket-data/internal/server"
	"github.com/rickgao/polymarket-data/internal/store"
	"github.com/rickgao/polymarket-data/internal/tags"
	"github.com/rickgao/polymarket-data/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	flag.Parse()

	// Optional .env for ${VAR} expansion in the config file
	_ = godotenv.Load()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting server",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"gamma_url", cfg.Gamma.BaseURL,
		"clob_url", cfg.Clob.BaseURL,
		"category", cfg.Collector.Category,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Upstream clients
	gammaClient := gamma.NewClient(
		cfg.Gamma.BaseURL,
		gamma.WithLogger(logger),
		gamma.WithTimeout(cfg.Gamma.Timeout),
		gamma.WithRetries(cfg.Gamma.MaxRetries, time.Second),
	)
	clobClient := clob.NewClient(
		cfg.Clob.BaseURL,
		clob.WithTimeout(cfg.Clob.Timeout),
	)

	// Pipeline
	st := store.New()
	resolver := tags.NewResolver(gammaClient, logger)
	col := collector.New(
		collector.Config{BroadCategory: cfg.Collector.BroadCategory},
		gammaClient,
		resolver,
		st.Events,
		logger,
	)
	agg := analytics.New(st, logger)

	smp := sampler.New(
		sampler.Config{
			Interval:    cfg.Sampler.Interval,
			Concurrency: cfg.Sampler.Concurrency,
			Timeout:     cfg.Sampler.Timeout,
		},
		clobClient,
		gammaClient,
		st,
		logger,
	)
	if err := smp.Start(ctx); err != nil {
		logger.Error("failed to start sampler", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg, col, smp, agg, gammaClient, st, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	// Wait for shutdown
	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	if err := smp.Stop(shutdownCtx); err != nil {
		logger.Error("sampler shutdown error", "error", err)
	}

	logger.Info("server stopped")
}

// loadConfig loads and validates the config file, or falls back to
// pure defaults when no path is given.
func loadConfig(path string) (*config.ServiceConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadAndValidate(path)
}
