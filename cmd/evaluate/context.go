package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Clark-Hu/catalog-engine/internal/config"
	"github.com/Clark-Hu/catalog-engine/internal/logging"
	"github.com/Clark-Hu/catalog-engine/internal/repository"
	"github.com/Clark-Hu/catalog-engine/internal/store"
)

var errStoreDisabled = errors.New("DB_URL is not set; the batch store is unavailable")

type commandContext struct {
	logLevel *string

	configOnce sync.Once
	config     config.Config
	configErr  error
}

func newCommandContext(logLevel *string) *commandContext {
	return &commandContext{logLevel: logLevel}
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		c.config, c.configErr = config.Load()
	})
	return c.config, c.configErr
}

// runLogger returns a logger writing to out and tagged with a fresh run id.
func (c *commandContext) runLogger(out io.Writer) (zerolog.Logger, string) {
	cfg, _ := c.ensureConfig()
	level := cfg.LogLevel
	if c.logLevel != nil && strings.TrimSpace(*c.logLevel) != "" {
		level = *c.logLevel
	}
	runID := uuid.NewString()
	logger := logging.New(logging.Config{Level: level, Format: cfg.LogFormat, Output: out}, "catalog-evaluate").
		With().Str("run_id", runID).Logger()
	return logger, runID
}

// withRepository opens the fixture store for the duration of fn.
func (c *commandContext) withRepository(ctx context.Context, logger zerolog.Logger, fn func(*repository.Repository) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if cfg.Stateless() {
		return errStoreDisabled
	}

	st, err := store.New(ctx, cfg.DBURL, store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Logger:                 logger,
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return fn(repository.New(st))
}
