package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// SettingsEnvVar names the environment variable that points at an optional
// dotenv-format settings file.
const SettingsEnvVar = "MINITWIT_SETTINGS"

// Config holds all configuration for the application.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	Env             string        `env:"ENV" envDefault:"development"`
	DatabaseURL     string        `env:"DATABASE_URL" envDefault:"minitwit.db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	PerPage         int           `env:"PER_PAGE" envDefault:"30"`
	SessionSecret   string        `env:"SESSION_SECRET"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	generatedSecret bool
}

// Load reads configuration. Values already present in the process environment
// win over the file named by MINITWIT_SETTINGS, which wins over ./.env, which
// wins over the defaults.
func Load() (*Config, error) {
	if path := os.Getenv(SettingsEnvVar); path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load settings file %s: %w", path, err)
		}
	}
	// .env is optional
	_ = godotenv.Load()

	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) finish() error {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.PerPage <= 0 {
		return fmt.Errorf("PER_PAGE must be positive, got %d", c.PerPage)
	}
	if c.MaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.MaxOpenConns)
	}
	if c.SessionSecret == "" {
		if c.IsProduction() {
			return errors.New("SESSION_SECRET is required in production")
		}
		secret, err := randomSecret()
		if err != nil {
			return err
		}
		c.SessionSecret = secret
		c.generatedSecret = true
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// GeneratedSecret reports whether the session secret was generated for this
// process because none was configured. Sessions do not survive a restart then.
func (c *Config) GeneratedSecret() bool {
	return c.generatedSecret
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
