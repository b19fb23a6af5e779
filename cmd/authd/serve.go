// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/authd/authd/internal/auth"
	"github.com/authd/authd/internal/auth/postgres"
	"github.com/authd/authd/internal/config"
	"github.com/authd/authd/internal/logging"
	"github.com/authd/authd/internal/observability"
	"github.com/authd/authd/internal/store"
	"github.com/authd/authd/internal/web"
)

const serviceName = "authd"

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the authentication HTTP server",
		Long: `Start the HTTP API for sign-in, registration and password change,
plus the metrics and health server when metrics.addr is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runServeWithDeps(cmd.Context(), cfg, cmd, nil)
		},
	}
}

// runServeWithDeps runs the server until a signal arrives, ctx is cancelled
// or a listener fails. If deps is nil, default implementations are used.
func runServeWithDeps(ctx context.Context, cfg *config.Config, cmd *cobra.Command, deps *ServeDeps) error {
	if deps == nil {
		deps = &ServeDeps{}
	}

	if deps.PoolFactory == nil {
		deps.PoolFactory = func(ctx context.Context, cfg store.PoolConfig, logger *slog.Logger) (Pool, error) {
			pool, err := store.Open(ctx, cfg, logger)
			if err != nil {
				return nil, err
			}
			return pool, nil
		}
	}
	if deps.MigratorFactory == nil {
		deps.MigratorFactory = defaultMigratorFactory
	}
	if deps.ObservabilityServerFactory == nil {
		deps.ObservabilityServerFactory = func(addr string, readinessChecker observability.ReadinessChecker) ObservabilityServer {
			return observability.NewServer(addr, readinessChecker)
		}
	}
	if deps.HTTPServerFactory == nil {
		deps.HTTPServerFactory = func(cfg web.ServerConfig, handler http.Handler, logger *slog.Logger) HTTPServer {
			return web.NewServer(cfg, handler, logger)
		}
	}

	if err := requireDatabaseURL(cfg); err != nil {
		return err
	}
	if cfg.Auth.TokenSecret == "" {
		return oops.Code("CONFIG_INVALID").
			With("key", "auth.token_secret").
			Errorf("token secret is required (AUTHD_AUTH__TOKEN_SECRET or config file)")
	}

	logger := logging.Setup(serviceName, version, cfg.Log.Format, cfg.Log.Level, deps.LogWriter)
	slog.SetDefault(logger)

	logger.Info("starting authd",
		"addr", cfg.Server.Addr,
		"metrics_addr", cfg.Metrics.Addr,
		"hasher", cfg.Auth.Hasher,
	)

	if cfg.Database.AutoMigrate {
		if err := autoMigrate(cfg.Database.URL, deps.MigratorFactory, logger); err != nil {
			return err
		}
	}

	pool, err := deps.PoolFactory(ctx, store.PoolConfig{
		URL:             cfg.Database.URL,
		MaxConns:        cfg.Database.MaxConns,
		ConnectAttempts: cfg.Database.ConnectAttempts,
	}, logger)
	if err != nil {
		return oops.With("operation", "open database pool").Wrap(err)
	}
	defer pool.Close()

	service, err := newAuthService(cfg, pool, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		obsServer ObservabilityServer
		metrics   *observability.Metrics
	)
	if cfg.Metrics.Addr != "" {
		obsServer = deps.ObservabilityServerFactory(cfg.Metrics.Addr, pool.Ping)
		obsErrChan, err := obsServer.Start()
		if err != nil {
			return oops.Code("OBSERVABILITY_START_FAILED").With("addr", cfg.Metrics.Addr).Wrap(err)
		}
		go monitorServerErrors(ctx, cancel, obsErrChan, "observability")
		metrics = obsServer.Metrics()
	}

	schemas, err := web.NewSchemas()
	if err != nil {
		stopServers(cfg.Server.ShutdownTimeout, nil, obsServer)
		return err
	}
	router, err := web.NewRouter(web.RouterDeps{
		Auth:    service,
		Schemas: schemas,
		Metrics: metrics,
		Logger:  logger,
		CORS: web.CORSConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			MaxAge:         cfg.CORS.MaxAge,
		},
		Info: web.Info{
			Name:          serviceName,
			Version:       version,
			Documentation: "/v1/docs",
			About:         "User authentication service: sign-in, registration and password change",
		},
	})
	if err != nil {
		stopServers(cfg.Server.ShutdownTimeout, nil, obsServer)
		return err
	}

	httpServer := deps.HTTPServerFactory(web.ServerConfig{
		Addr:              cfg.Server.Addr,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}, router, logger)
	httpErrChan, err := httpServer.Start()
	if err != nil {
		stopServers(cfg.Server.ShutdownTimeout, nil, obsServer)
		return oops.Code("HTTP_START_FAILED").With("addr", cfg.Server.Addr).Wrap(err)
	}
	go monitorServerErrors(ctx, cancel, httpErrChan, "http")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	cmd.Println("authd listening on " + httpServer.Addr())
	logger.Info("authd ready", "addr", httpServer.Addr())

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	stopServers(cfg.Server.ShutdownTimeout, httpServer, obsServer)
	logger.Info("shutdown complete")
	return nil
}

// newAuthService wires the capabilities behind the use-case service.
func newAuthService(cfg *config.Config, pool Pool, logger *slog.Logger) (*auth.Service, error) {
	hasher, err := auth.NewHasher(cfg.Auth.Hasher, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewJWTService(cfg.Auth.TokenIssuer, []byte(cfg.Auth.TokenSecret))
	if err != nil {
		return nil, err
	}
	users := postgres.NewUserRepository(pool, postgres.WithAcquireTimeout(cfg.Database.AcquireTimeout))

	return auth.NewService(users, hasher, auth.NewUUIDGenerator(), tokens, auth.WithLogger(logger))
}

// autoMigrate applies pending migrations before the pool is opened.
func autoMigrate(databaseURL string, factory func(string) (Migrator, error), logger *slog.Logger) error {
	m, err := factory(databaseURL)
	if err != nil {
		return oops.With("operation", "auto-migrate").Wrap(err)
	}
	defer func() {
		if closeErr := m.Close(); closeErr != nil {
			logger.Warn("failed to close migrator", "error", closeErr)
		}
	}()

	if err := m.Up(); err != nil {
		return oops.With("operation", "auto-migrate").Wrap(err)
	}
	st, err := m.Status()
	if err != nil {
		return oops.With("operation", "auto-migrate").Wrap(err)
	}
	logger.Info("database schema up to date", "version", st.Version, "name", st.Name)
	return nil
}

// stopServers shuts down whichever servers are non-nil within timeout.
func stopServers(timeout time.Duration, httpServer HTTPServer, obsServer ObservabilityServer) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if httpServer != nil {
		if err := httpServer.Stop(shutdownCtx); err != nil {
			slog.Warn("error stopping http server", "error", err)
		}
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			slog.Warn("error stopping observability server", "error", err)
		}
	}
}

// monitorServerErrors cancels ctx when a server reports a serve failure.
// It exits when an error arrives, the channel closes or ctx is done.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
