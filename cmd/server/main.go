package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Clark-Hu/catalog-engine/internal/config"
	httpserver "github.com/Clark-Hu/catalog-engine/internal/http"
	"github.com/Clark-Hu/catalog-engine/internal/logging"
	"github.com/Clark-Hu/catalog-engine/internal/repository"
	"github.com/Clark-Hu/catalog-engine/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New(logging.Config{}, "catalog-server")
		bootLogger.Fatal().Err(err).Msg("config error")
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stdout}, "catalog-server")

	var (
		health  httpserver.HealthChecker
		batches httpserver.BatchStore
	)
	if cfg.Stateless() {
		logger.Warn().Msg("DB_URL not set, batch store routes disabled")
	} else {
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		st, err := store.New(dbCtx, cfg.DBURL, store.Options{
			MaxConns:               int32(cfg.DBMaxConns),
			MinConns:               int32(cfg.DBMinConns),
			MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
			MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
			ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
			StatementCacheCapacity: cfg.DBStatementCache,
			Logger:                 logger,
		})
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("connect database")
		}
		defer st.Close()

		health = st
		batches = repository.New(st).Batches
	}

	server := httpserver.New(cfg, health, batches, logger)
	logger.Info().Str("port", cfg.Port).Msg("listening")

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("server error")
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
}
