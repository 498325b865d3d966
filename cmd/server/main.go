package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"supplyease/internal/config"
	"supplyease/internal/infra"
	"supplyease/internal/repository"
	"supplyease/internal/router"
	"supplyease/internal/service"
	"supplyease/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: dev pretty, prod JSON
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	// Redis is optional: without it keys rely on the unique index alone and
	// notifications are dropped.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, running without cache, key reservation and notifications")
			rdb = nil
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	authSvc := service.NewAuthService(repository.NewUserRepository(db), cfg)
	if err := authSvc.EnsureAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure admin account")
	}

	// Mail goes through a circuit breaker so a dead SMTP relay fails fast and
	// jobs land in the DLQ instead of blocking workers.
	mailCB := infra.NewCircuitBreaker(5, time.Minute)
	var sender worker.Sender
	if cfg.SMTPEnabled() {
		sender = infra.NewGuardedMailer(infra.NewMailer(cfg), mailCB)
	}

	var workers *sync.WaitGroup
	if rdb != nil {
		workers = worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, map[string]worker.Handler{
			worker.JobNotification: worker.NewNotificationWorker(sender, cfg.NotifyEmail),
		})
	}

	r := router.New(cfg, db, rdb, mailCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("SupplyEase API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
		log.Error().Err(err).Msg("forced shutdown")
	}

	cancel()
	if workers != nil {
		workers.Wait()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server exited")
}
