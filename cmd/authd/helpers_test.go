package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/authd/authd/internal/config"
	"github.com/authd/authd/internal/store"
)

// testConfig returns a valid configuration that serves on an ephemeral port
// with the metrics server disabled.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Addr:              "127.0.0.1:0",
			ReadHeaderTimeout: time.Second,
			ShutdownTimeout:   time.Second,
		},
		Log:      config.LogConfig{Format: "json", Level: "error"},
		Database: config.DatabaseConfig{URL: "postgres://authd@localhost/authd", MaxConns: 4, AcquireTimeout: time.Second, ConnectAttempts: 1},
		Auth: config.AuthConfig{
			TokenSecret: "token_key",
			TokenIssuer: config.DefaultTokenIssuer,
			Hasher:      config.DefaultHasher,
			BcryptCost:  config.DefaultBcryptCost,
		},
		CORS: config.CORSConfig{AllowedOrigins: config.DefaultAllowedOrigins, MaxAge: config.DefaultCORSMaxAge},
	}
}

// newTestRoot mounts sub under a root command carrying the persistent
// configuration flags, and captures its output.
func newTestRoot(t *testing.T, sub *cobra.Command, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Cleanup(func() { configFile = "" })

	root := &cobra.Command{Use: "authd", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	config.RegisterFlags(root.PersistentFlags())
	root.AddCommand(sub)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	return root, &out
}

// fakeMigrator records the calls it receives.
type fakeMigrator struct {
	status   store.Status
	upErr    error
	stepsErr error
	calls    []string
	steps    int
	forced   int
	closed   bool
}

func (m *fakeMigrator) Up() error {
	m.calls = append(m.calls, "up")
	return m.upErr
}

func (m *fakeMigrator) Down() error {
	m.calls = append(m.calls, "down")
	return nil
}

func (m *fakeMigrator) Steps(n int) error {
	m.calls = append(m.calls, "steps")
	m.steps = n
	return m.stepsErr
}

func (m *fakeMigrator) Force(version int) error {
	m.calls = append(m.calls, "force")
	m.forced = version
	return nil
}

func (m *fakeMigrator) Status() (store.Status, error) {
	m.calls = append(m.calls, "status")
	return m.status, nil
}

func (m *fakeMigrator) Close() error {
	m.closed = true
	return nil
}

func (m *fakeMigrator) factory(string) (Migrator, error) {
	return m, nil
}
