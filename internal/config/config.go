package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the service configuration.
// Environment variables are parsed from the KINDRED_ prefix,
// e.g. KINDRED_HTTP_PORT, KINDRED_DB_DRIVER.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage. DB_DRIVER selects the backend: "sqlite" or "postgres".
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:""`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Health probing
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"5"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`

	// Background maintenance
	SessionPurgeIntervalMinutes int `envconfig:"SESSION_PURGE_INTERVAL_MINUTES" default:"60"`
	GoalSweepIntervalMinutes    int `envconfig:"GOAL_SWEEP_INTERVAL_MINUTES" default:"1"`
}

// ResolveDefaults validates the driver selection and fills in derived values.
func (c *Config) ResolveDefaults() error {
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			c.SQLitePath = "kindred.db"
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("KINDRED_POSTGRES_DSN is required when DB_DRIVER is postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	return nil
}

// New creates a Config by parsing KINDRED_-prefixed environment variables.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("KINDRED", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Str("postgres_dsn_present", func() string {
			if cfg.PostgresDSN != "" {
				return "true"
			}
			return "false"
		}()).
		Str("sqlite_path", cfg.SQLitePath).
		Msg("Configuration loaded")

	return &cfg, nil
}

// GetHTTPAddr returns the HTTP server listen address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
