package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MigrationsPath  string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type UtmifyConfig struct {
	BaseURL string
	Token   string
}

type Config struct {
	App struct {
		Port     string
		Platform string
	}
	Utmify   UtmifyConfig
	Postgres PostgresConfig
}

// NewConfig loads configuration from the environment, optionally seeded from
// a .env file. The Utmify token is read here exactly once; everything
// downstream receives it by injection.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}

	cfg.App.Port = os.Getenv("APP_PORT")
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	cfg.App.Platform = os.Getenv("PLATFORM")
	if cfg.App.Platform == "" {
		cfg.App.Platform = "shopcore"
	}

	cfg.Utmify.BaseURL = os.Getenv("UTMIFY_API_URL")
	cfg.Utmify.Token = os.Getenv("UTMIFY_API_TOKEN")
	if cfg.Utmify.Token == "" {
		// An empty token is allowed: sends will fail with the provider's
		// authorization error rather than a local one.
		log.Warn().Msg("UTMIFY_API_TOKEN is not set, tracking sends will be rejected by the provider")
	}

	cfg.Postgres.Host = os.Getenv("DB_HOST")
	if cfg.Postgres.Host == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Postgres.Port = os.Getenv("DB_PORT")
	if cfg.Postgres.Port == "" {
		return nil, fmt.Errorf("DB_PORT is required")
	}
	cfg.Postgres.User = os.Getenv("DB_USER")
	if cfg.Postgres.User == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Postgres.Password = os.Getenv("DB_PASSWORD")
	if cfg.Postgres.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Postgres.DBName = os.Getenv("DB_NAME")
	if cfg.Postgres.DBName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Postgres.SSLMode = os.Getenv("DB_SSLMODE")
	if cfg.Postgres.SSLMode == "" {
		cfg.Postgres.SSLMode = "disable"
	}
	cfg.Postgres.MigrationsPath = os.Getenv("DB_MIGRATIONS_PATH")
	if cfg.Postgres.MigrationsPath == "" {
		cfg.Postgres.MigrationsPath = "migrations"
	}

	cfg.Postgres.MaxConns = 10
	cfg.Postgres.MinConns = 2
	cfg.Postgres.MaxConnLifetime = 30 * time.Minute

	return cfg, nil
}
