package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rickgao/polymarket-data/internal/collector"
	"github.com/rickgao/polymarket-data/internal/config"
	"github.com/rickgao/polymarket-data/internal/gamma"
	"github.com/rickgao/polymarket-data/internal/store"
	"github.com/rickgao/polymarket-data/internal/tags"
	"github.com/rickgao/polymarket-data/internal/version"
)

// One-shot collection run: fetch, normalize, filter, and print the
// surviving events as JSON. Useful for checking what a category or tag
// yields before pointing the server at it.
func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	category := flag.String("category", "", "category filter (defaults to the configured broad category)")
	eventID := flag.String("event-id", "", "keep only this event")
	days := flag.Int("days", 0, "keep only events starting or ending within the last N days")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall run timeout")
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting collection run", "version", version.Version)

	var cfg *config.ServiceConfig
	var err error
	if *configPath == "" {
		cfg = config.Default()
	} else {
		cfg, err = config.LoadAndValidate(*configPath)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	gammaClient := gamma.NewClient(
		cfg.Gamma.BaseURL,
		gamma.WithLogger(logger),
		gamma.WithTimeout(cfg.Gamma.Timeout),
		gamma.WithRetries(cfg.Gamma.MaxRetries, time.Second),
	)

	events := store.NewEventStore()
	resolver := tags.NewResolver(gammaClient, logger)
	col := collector.New(
		collector.Config{BroadCategory: cfg.Collector.BroadCategory},
		gammaClient,
		resolver,
		events,
		logger,
	)

	collected, err := col.Collect(ctx, collector.Options{
		Category: *category,
		EventID:  *eventID,
		Days:     *days,
	})
	if err != nil {
		logger.Error("collection failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(collected); err != nil {
		logger.Error("failed to encode output", "error", err)
		os.Exit(1)
	}
}
