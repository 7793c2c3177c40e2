// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

package main

import (
	"context"
	"fmt"

	"github.com/zerovault/zerovault/internal/config"
	"github.com/zerovault/zerovault/internal/handler"
	"github.com/zerovault/zerovault/internal/logger"
	"github.com/zerovault/zerovault/internal/server"
	"github.com/zerovault/zerovault/internal/service"
	"github.com/zerovault/zerovault/internal/session"
	"github.com/zerovault/zerovault/internal/store"
	"github.com/zerovault/zerovault/internal/workers"
	"github.com/zerovault/zerovault/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("zerovault-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos, err := store.NewRepositories(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating repositories")
	}
	defer repos.Close()

	if err = migrations.Migrate(repos.DB().DB, repos.DB().Dialect()); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	sessions, background, err := newSessionManager(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating session manager")
	}
	background.Run()

	services := service.NewServices(repos, sessions, log)

	handlers, err := handler.NewHandlers(services, sessions, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newSessionManager builds the configured session backend plus any background
// workers it needs. The in-memory backend gets a janitor that sweeps expired
// sessions; the stateless JWT backend needs none.
func newSessionManager(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (session.Manager, *workers.Workers, error) {
	switch cfg.App.SessionBackend {
	case config.SessionBackendJWT:
		return session.NewJWTManager(cfg.App.TokenSignKey, cfg.App.TokenIssuer, cfg.App.TokenDuration), workers.NewWorkers(), nil
	case config.SessionBackendMemory:
		manager := session.NewMemoryManager(cfg.App.SessionTTL)
		janitor := workers.NewSessionJanitor(ctx, manager, cfg.Workers.PruneInterval, log)
		return manager, workers.NewWorkers(janitor), nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend: %q", cfg.App.SessionBackend)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
