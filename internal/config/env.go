package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
)

type AppConfig struct {
	Env           string `env:"APP_ENV" envDefault:"development"`
	Port          string `env:"PORT" envDefault:"8080"`
	DatabaseDSN   string `env:"DATABASE_DSN"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	BadgerPath    string `env:"BADGER_PATH"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	CryptoKey     string `env:"CRYPTO_KEY"`

	// DirectorySeedFile is a YAML roster loaded into the embedded directory at startup.
	DirectorySeedFile string `env:"DIRECTORY_SEED_FILE"`

	// AllowedOrigins is a comma separated CORS allow list. Empty allows any
	// origin without credentials, so cookie auth needs an explicit list.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// Load reads an optional .env file, parses the process environment and
// validates the result.
func Load() (*AppConfig, error) {
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse is Load without validation, for callers that override fields first.
func Parse() (*AppConfig, error) {
	_ = godotenv.Load()

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

func (c *AppConfig) Validate() error {
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for the %s driver", DriverPostgres)
		}
	case DriverBadger:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
