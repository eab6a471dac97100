package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"lakeshore_hotel/internal/adapters/contentstore"
	server "lakeshore_hotel/internal/adapters/http_server"
	"lakeshore_hotel/internal/adapters/observability"
	"lakeshore_hotel/internal/adapters/render"
	"lakeshore_hotel/internal/app"
	"lakeshore_hotel/internal/shared"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("web server failed")
	}
}

func run() error {
	cfg, err := shared.Load(os.Args[1:])
	if err != nil {
		return err
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	site, err := shared.LoadSite(cfg.SiteProfile)
	if err != nil {
		return err
	}
	site.MediaBase = cfg.MediaBase

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// content store
	store, closeStore, err := contentstore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn().Err(err).Msg("closing content store")
		}
	}()

	// deps
	client := app.NewClient(store)
	policy := app.DefaultRetryPolicy()
	policy.MaxRetries = cfg.FetchRetries
	pages := app.NewPageService(client, site, policy)
	view, err := render.New(cfg.MediaBase)
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	// http
	srv := server.New(cfg.RateLimitPerMin)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Pages: pages, Client: client, View: view})
	observability.Serve(cfg.MetricsAddr, reg)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.FetchTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.HTTPAddr).
			Str("backend", store.Name()).
			Str("site", site.FullName()).
			Msg("web listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("server shut down cleanly")
	return nil
}
