// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 authd Contributors

// Package config loads authd configuration from a YAML file, AUTHD_
// environment variables and command-line flags, in that order of precedence
// (flags that were not set on the command line only fill in defaults).
package config

import (
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "AUTHD_"

// Config is the effective authd configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server" yaml:"server"`
	Metrics  MetricsConfig  `koanf:"metrics" yaml:"metrics"`
	Log      LogConfig      `koanf:"log" yaml:"log"`
	Database DatabaseConfig `koanf:"database" yaml:"database"`
	Auth     AuthConfig     `koanf:"auth" yaml:"auth"`
	CORS     CORSConfig     `koanf:"cors" yaml:"cors"`
}

// ServerConfig configures the public HTTP listener.
type ServerConfig struct {
	Addr              string        `koanf:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// MetricsConfig configures the metrics and health listener. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `koanf:"addr" yaml:"addr"`
}

// LogConfig configures slog output.
type LogConfig struct {
	Format string `koanf:"format" yaml:"format"`
	Level  string `koanf:"level" yaml:"level"`
}

// DatabaseConfig configures the PostgreSQL pool.
type DatabaseConfig struct {
	URL             string        `koanf:"url" yaml:"url"`
	MaxConns        int32         `koanf:"max_conns" yaml:"max_conns"`
	AcquireTimeout  time.Duration `koanf:"acquire_timeout" yaml:"acquire_timeout"`
	ConnectAttempts uint64        `koanf:"connect_attempts" yaml:"connect_attempts"`
	AutoMigrate     bool          `koanf:"auto_migrate" yaml:"auto_migrate"`
}

// AuthConfig configures token signing and password hashing.
type AuthConfig struct {
	TokenSecret string `koanf:"token_secret" yaml:"token_secret"`
	TokenIssuer string `koanf:"token_issuer" yaml:"token_issuer"`
	Hasher      string `koanf:"hasher" yaml:"hasher"`
	BcryptCost  int    `koanf:"bcrypt_cost" yaml:"bcrypt_cost"`
}

// CORSConfig configures cross-origin access. AllowedOrigins are glob patterns.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins" yaml:"allowed_origins"`
	MaxAge         int      `koanf:"max_age" yaml:"max_age"`
}

// Default values.
const (
	DefaultServerAddr        = "0.0.0.0:8080"
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 5 * time.Second
	DefaultMetricsAddr       = "127.0.0.1:9100"
	DefaultLogFormat         = "json"
	DefaultLogLevel          = "info"
	DefaultMaxConns          = 100
	DefaultAcquireTimeout    = 30 * time.Second
	DefaultConnectAttempts   = 5
	DefaultTokenIssuer       = "authd"
	DefaultHasher            = "bcrypt"
	DefaultBcryptCost        = 8
	DefaultCORSMaxAge        = 3600
)

// DefaultAllowedOrigins is the CORS origin list used when none is configured.
var DefaultAllowedOrigins = []string{"http://localhost:8080"}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"addr":                "server.addr",
	"read-header-timeout": "server.read_header_timeout",
	"shutdown-timeout":    "server.shutdown_timeout",
	"metrics-addr":        "metrics.addr",
	"log-format":          "log.format",
	"log-level":           "log.level",
	"database-url":        "database.url",
	"max-conns":           "database.max_conns",
	"acquire-timeout":     "database.acquire_timeout",
	"connect-attempts":    "database.connect_attempts",
	"auto-migrate":        "database.auto_migrate",
	"token-issuer":        "auth.token_issuer",
	"hasher":              "auth.hasher",
	"bcrypt-cost":         "auth.bcrypt_cost",
	"allowed-origins":     "cors.allowed_origins",
	"cors-max-age":        "cors.max_age",
}

// RegisterFlags adds one flag per configuration key, carrying its default.
// The token secret has no flag so it never shows up in process listings.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("addr", DefaultServerAddr, "HTTP listen address")
	fs.Duration("read-header-timeout", DefaultReadHeaderTimeout, "HTTP read header timeout")
	fs.Duration("shutdown-timeout", DefaultShutdownTimeout, "graceful shutdown timeout")
	fs.String("metrics-addr", DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	fs.String("log-format", DefaultLogFormat, "log format (json or text)")
	fs.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
	fs.String("database-url", "", "PostgreSQL connection URL (falls back to DATABASE_URL)")
	fs.Int32("max-conns", DefaultMaxConns, "maximum pool connections")
	fs.Duration("acquire-timeout", DefaultAcquireTimeout, "upper bound for each database call")
	fs.Uint64("connect-attempts", DefaultConnectAttempts, "database connection attempts at startup")
	fs.Bool("auto-migrate", false, "apply pending migrations before serving")
	fs.String("token-issuer", DefaultTokenIssuer, "issuer claim of issued tokens")
	fs.String("hasher", DefaultHasher, "password hasher (bcrypt or argon2id)")
	fs.Int("bcrypt-cost", DefaultBcryptCost, "bcrypt cost factor")
	fs.StringSlice("allowed-origins", DefaultAllowedOrigins, "CORS allowed origin glob patterns")
	fs.Int("cors-max-age", DefaultCORSMaxAge, "CORS preflight max age in seconds")
}

// Load reads configuration from path (optional), the environment and fs.
// fs must have been populated by RegisterFlags.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_INVALID").
				With("operation", "load config file").
				With("path", path).
				Wrap(err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, oops.Code("CONFIG_INVALID").With("operation", "load environment").Wrap(err)
	}

	if fs != nil {
		if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(fs, f)
		}), nil); err != nil {
			return nil, oops.Code("CONFIG_INVALID").With("operation", "load flags").Wrap(err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, oops.Code("CONFIG_INVALID").With("operation", "decode config").Wrap(err)
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DATABASE_URL")
	}
	return &cfg, nil
}

// envKey turns AUTHD_DATABASE__MAX_CONNS into database.max_conns.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if !slices.Contains([]string{"json", "text"}, c.Log.Format) {
		return invalid("log.format", "must be 'json' or 'text', got %q", c.Log.Format)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return invalid("log.level", "must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if c.Server.Addr == "" {
		return invalid("server.addr", "is required")
	}
	if c.Database.MaxConns <= 0 {
		return invalid("database.max_conns", "must be positive, got %d", c.Database.MaxConns)
	}
	switch c.Auth.Hasher {
	case "bcrypt":
		if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
			return invalid("auth.bcrypt_cost", "must be between %d and %d, got %d",
				bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
		}
	case "argon2id":
	default:
		return invalid("auth.hasher", "must be 'bcrypt' or 'argon2id', got %q", c.Auth.Hasher)
	}
	return nil
}

func invalid(key, format string, args ...any) error {
	return oops.Code("CONFIG_INVALID").With("key", key).Errorf(key+" "+format, args...)
}

// Redacted returns a copy safe to print: the token secret and the database
// password are masked.
func (c Config) Redacted() Config {
	if c.Auth.TokenSecret != "" {
		c.Auth.TokenSecret = "xxxxx"
	}
	if c.Database.URL != "" {
		if u, err := url.Parse(c.Database.URL); err == nil {
			c.Database.URL = u.Redacted()
		} else {
			c.Database.URL = "xxxxx"
		}
	}
	c.CORS.AllowedOrigins = slices.Clone(c.CORS.AllowedOrigins)
	return c
}
