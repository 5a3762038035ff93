// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

// Package main is the entry point for the Discograph server.
//
// Discograph is a music catalog analytics service over a MongoDB catalog
// of artists, albums, tracks, and users. It serves per-user
// recommendation feeds, an artist collaboration graph, and catalog-wide
// label and release analytics.
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered sources (defaults, config.yaml,
//     DISCOGRAPH_* environment variables)
//  2. Logging: zerolog structured logging
//  3. Catalog store: MongoDB connection with startup ping
//  4. Services: recommendation engine, collaboration graph builder,
//     analytics service
//  5. HTTP server: Chi router with graceful shutdown on SIGINT/SIGTERM
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/discograph/discograph/internal/analytics"
	"github.com/discograph/discograph/internal/api"
	"github.com/discograph/discograph/internal/catalog"
	"github.com/discograph/discograph/internal/collab"
	"github.com/discograph/discograph/internal/config"
	"github.com/discograph/discograph/internal/logging"
	"github.com/discograph/discograph/internal/recommend"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logger := logging.Logger()

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("database", cfg.Mongo.Database).
		Msg("starting discograph")

	connectCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()

	store, err := catalog.Connect(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return fmt.Errorf("connect to catalog: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("catalog store close failed")
		}
	}()

	router := api.NewRouter(
		cfg,
		store,
		recommend.NewEngine(store, cfg.Recommend, logger),
		collab.NewBuilder(store, cfg.Collab, logger),
		analytics.NewService(store, cfg.Analytics, logger),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info().Msg("shutdown complete")
	return nil
}
