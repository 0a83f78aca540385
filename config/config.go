// Package config loads the service configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/clearwater-cup/matchplay/internal/observability"
)

// Config holds the configuration settings.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// ObservabilityConfig holds configuration for observability components.
type ObservabilityConfig struct {
	// MetricsAddress is where the ops HTTP server listens; empty disables it.
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	LogJSON        bool   `yaml:"log_json"`
}

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is missing; env vars always win.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config

	cfg.Postgres.DSN = os.Getenv("DATABASE_URL")
	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	cfg.NATS.URL = os.Getenv("NATS_URL")
	if cfg.NATS.URL == "" {
		return nil, fmt.Errorf("NATS_URL environment variable not set")
	}

	cfg.Observability.MetricsAddress = os.Getenv("METRICS_ADDRESS") // optional; empty disables the ops server
	cfg.Observability.Environment = os.Getenv("ENV")
	cfg.Observability.LogJSON = os.Getenv("LOG_JSON") == "true"

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_JSON"); v != "" {
		cfg.Observability.LogJSON = v == "true"
	}
}

// ToObsConfig maps the app configuration onto the observability bootstrap.
func ToObsConfig(appCfg *Config) observability.Config {
	return observability.Config{
		ServiceName: "matchplay",
		Environment: appCfg.Observability.Environment,
		Version:     "1.0.0",
		LogJSON:     appCfg.Observability.LogJSON,
	}
}
