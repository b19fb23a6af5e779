// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// Pool defaults.
const (
	DefaultMaxConns        = 100
	DefaultConnectAttempts = 5
	DefaultConnectBackoff  = 500 * time.Millisecond
	maxConnectBackoff      = 5 * time.Second
)

// PoolConfig configures Open.
type PoolConfig struct {
	URL             string
	MaxConns        int32
	ConnectAttempts uint64
	ConnectBackoff  time.Duration
}

// pinger is satisfied by *pgxpool.Pool.
type pinger interface {
	Ping(ctx context.Context) error
}

// Open creates a connection pool and waits until the database answers a ping.
func Open(ctx context.Context, cfg PoolConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, oops.Code("DATABASE_CONFIG_INVALID").Errorf("database url is required")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, oops.Code("DATABASE_CONFIG_INVALID").With("operation", "parse database url").Wrap(err)
	}
	poolCfg.MaxConns = DefaultMaxConns
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, oops.Code("DATABASE_CONNECT_FAILED").With("operation", "create pool").Wrap(err)
	}

	if err := waitReady(ctx, pool, cfg.ConnectAttempts, cfg.ConnectBackoff, logger); err != nil {
		pool.Close()
		return nil, err
	}

	logger.InfoContext(ctx, "database pool ready",
		"host", poolCfg.ConnConfig.Host,
		"database", poolCfg.ConnConfig.Database,
		"max_conns", poolCfg.MaxConns,
	)
	return pool, nil
}

// waitReady pings p with exponential backoff until it answers or attempts run out.
func waitReady(ctx context.Context, p pinger, attempts uint64, base time.Duration, logger *slog.Logger) error {
	if attempts == 0 {
		attempts = DefaultConnectAttempts
	}
	if base <= 0 {
		base = DefaultConnectBackoff
	}
	backoff := retry.WithMaxRetries(attempts-1,
		retry.WithCappedDuration(maxConnectBackoff, retry.NewExponential(base)))

	var attempt uint64
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := p.Ping(ctx); err != nil {
			logger.WarnContext(ctx, "database not ready",
				"attempt", attempt,
				"max_attempts", attempts,
				"error", err,
			)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return oops.Code("DATABASE_CONNECT_FAILED").
			With("attempts", attempt).
			Wrap(err)
	}
	return nil
}
