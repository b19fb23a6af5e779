package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/authd/authd/internal/auth/postgres"
	"github.com/authd/authd/internal/observability"
	"github.com/authd/authd/internal/store"
	"github.com/authd/authd/internal/web"
)

// ServeDeps contains injectable dependencies for the serve command.
// All fields with nil values will use their default implementations.
type ServeDeps struct {
	// PoolFactory opens the database pool.
	// Default: store.Open
	PoolFactory func(ctx context.Context, cfg store.PoolConfig, logger *slog.Logger) (Pool, error)

	// MigratorFactory creates a schema migrator for --auto-migrate.
	// Default: store.NewMigrator
	MigratorFactory func(databaseURL string) (Migrator, error)

	// ObservabilityServerFactory creates the metrics and health server.
	// Default: observability.NewServer
	ObservabilityServerFactory func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer

	// HTTPServerFactory creates the public API server.
	// Default: web.NewServer
	HTTPServerFactory func(cfg web.ServerConfig, handler http.Handler, logger *slog.Logger) HTTPServer

	// LogWriter receives log output.
	// Default: os.Stderr
	LogWriter io.Writer
}

// MigrateDeps contains injectable dependencies for the migrate commands.
type MigrateDeps struct {
	// MigratorFactory creates a schema migrator.
	// Default: store.NewMigrator
	MigratorFactory func(databaseURL string) (Migrator, error)
}

// Pool wraps the methods used from *pgxpool.Pool.
type Pool interface {
	postgres.DB
	Ping(ctx context.Context) error
	Close()
}

// Migrator wraps the methods used from store.Migrator.
type Migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Force(version int) error
	Status() (store.Status, error)
	Close() error
}

// ObservabilityServer wraps the methods used from observability.Server.
type ObservabilityServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
	Metrics() *observability.Metrics
}

// HTTPServer wraps the methods used from web.Server.
type HTTPServer interface {
	Start() (<-chan error, error)
	Stop(ctx context.Context) error
	Addr() string
}

func defaultMigratorFactory(databaseURL string) (Migrator, error) {
	m, err := store.NewMigrator(databaseURL)
	if err != nil {
		return nil, err
	}
	return m, nil
}
