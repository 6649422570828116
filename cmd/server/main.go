package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SistemasCRMC/credenciales/internal/config"
	"github.com/SistemasCRMC/credenciales/internal/infra"
	"github.com/SistemasCRMC/credenciales/internal/router"
	"github.com/SistemasCRMC/credenciales/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	fotos, err := infra.NewFotoStore(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare photo storage")
	}

	// Worker pool for async notification emails. Handlers are wired here
	// (composition root) so the pool has full access to infrastructure.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	mailCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	resolver := infra.NewImageResolver(cfg.AssetsPath, cfg.StoragePath)

	handlers := map[string]worker.Handler{
		"notificacion": worker.NewNotificacionWorker(mailer, mailCB, resolver),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)
	worker.StartRetryCron(ctx, worker.RetryCronConfig{CB: mailCB, RDB: rdb})

	r := router.New(cfg, db, rdb, fotos, mailCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("credenciales backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
