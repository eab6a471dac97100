package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"lakeshore_hotel/internal/adapters/contentstore"
	"lakeshore_hotel/internal/adapters/observability"
	"lakeshore_hotel/internal/app"
	"lakeshore_hotel/internal/domain"
	"lakeshore_hotel/internal/shared"
)

func main() {
	cfg, err := shared.Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if !check(cfg) {
		os.Exit(1)
	}
}

// check reads every collection once and reports whether all of them decoded.
func check(cfg shared.Config) bool {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("backend", cfg.Backend).
		Int("workers", cfg.CheckWorkers).
		Int("collections", len(domain.Collections)).
		Msg("content check starting")

	store, closeStore, err := contentstore.Open(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to open content store")
		return false
	}
	defer func() { _ = closeStore() }()

	checker := app.NewCheckService(app.NewClient(store), cfg.CheckWorkers)
	results, err := checker.CheckAll(ctx, domain.Collections)

	total, failed := 0, 0
	for _, r := range results {
		total += r.Count
		if r.Err != nil {
			failed++
		}
	}
	log.Info().Int("records", total).Int("failed", failed).Msg("content check completed")
	return err == nil
}
