// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env`
// file when present), loads them into structured Go types and
// validates that required values are present so they can be
// reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Fill defaults for the optional server and observability blocks.
//   - Validate the result so the app fails fast on bad config.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into
	// the process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix every configuration variable carries.
	EnvPrefix = "COREROUTE_"

	// nestingSeparator splits an env var name into koanf key levels:
	// COREROUTE_SERVER__READ_TIMEOUT -> server.read_timeout
	nestingSeparator = "__"
)

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string          `koanf:"port" validate:"required"`
	ReadTimeout        int             `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout       int             `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout        int             `koanf:"idle_timeout" validate:"min=1"`
	ShutdownTimeout    int             `koanf:"shutdown_timeout" validate:"min=1"`
	CORSAllowedOrigins []string        `koanf:"cors_allowed_origins" validate:"required,min=1"`
	RateLimit          RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig configures the per-client request limiter.
// RequestsPerSecond == 0 disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"min=0"`
	Burst             int     `koanf:"burst" validate:"min=0"`
}

// Enabled reports whether requests should be rate limited at all.
func (r RateLimitConfig) Enabled() bool {
	return r.RequestsPerSecond > 0
}

// DefaultServerConfig returns the server settings used for any value
// the environment leaves unset.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:               "8080",
		ReadTimeout:        30,
		WriteTimeout:       30,
		IdleTimeout:        60,
		ShutdownTimeout:    10,
		CORSAllowedOrigins: []string{"*"},
	}
}

// EnvKey converts a raw environment variable name into a koanf key path.
//
// Example:
//
//	COREROUTE_SERVER__RATE_LIMIT__BURST -> server.rate_limit.burst
func EnvKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, nestingSeparator, ".")
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults, validates it and returns the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", EnvKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	// Service name and environment are forced so logs and traces
	// always agree with the primary config.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	def := DefaultServerConfig()

	if c.Server.Port == "" {
		c.Server.Port = def.Port
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = def.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = def.WriteTimeout
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = def.IdleTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = def.ShutdownTimeout
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = def.CORSAllowedOrigins
	}
	if c.Server.RateLimit.Enabled() && c.Server.RateLimit.Burst == 0 {
		c.Server.RateLimit.Burst = int(c.Server.RateLimit.RequestsPerSecond) + 1
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
		return
	}

	obsDef := DefaultObservabilityConfig()
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = obsDef.Logging.Level
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = obsDef.Logging.Format
	}
	if c.Observability.Logging.SlowRequestThreshold == 0 {
		c.Observability.Logging.SlowRequestThreshold = obsDef.Logging.SlowRequestThreshold
	}
}
