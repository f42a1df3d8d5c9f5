package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

// DefaultSecret is the development signing key used when none is configured.
const DefaultSecret = "dev-key-123"

type Config struct {
	Port     string `yaml:"port" env:"PORT"`
	DBDriver string `yaml:"db_driver" env:"DB_DRIVER"`
	DBDSN    string `yaml:"db_dsn" env:"DB_DSN"`
	Secret   string `yaml:"secret" env:"SECRET_KEY"`

	// DatabaseURL takes precedence over DBDriver and DBDSN when set.
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`

	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFile  string `yaml:"log_file" env:"LOG_FILE"`

	SessionMaxAge      time.Duration `yaml:"session_max_age" env:"SESSION_MAX_AGE"`
	SecureCookies      bool          `yaml:"secure_cookies" env:"SECURE_COOKIES"`
	LoginRatePerMinute int           `yaml:"login_rate_per_minute" env:"LOGIN_RATE_PER_MINUTE"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Port:               "8080",
		DBDriver:           "sqlite3",
		DBDSN:              "starborg.db",
		Secret:             DefaultSecret,
		LogLevel:           "INFO",
		SessionMaxAge:      7 * 24 * time.Hour,
		LoginRatePerMinute: 10,
	}
}

// Load reads filename over the defaults and then applies environment overrides.
// A missing file is not an error.
func Load(filename string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filename)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", filename, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", filename, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DatabaseURL != "" {
		driver, dsn, err := ParseDatabaseURL(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		cfg.DBDriver, cfg.DBDSN = driver, dsn
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if c.DBDriver != "sqlite3" && c.DBDriver != "postgres" {
		return fmt.Errorf("unsupported db_driver %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("db_dsn must not be empty")
	}
	if c.Secret == "" {
		return fmt.Errorf("secret must not be empty")
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("session_max_age must be positive")
	}
	return nil
}

// ParseDatabaseURL maps a DATABASE_URL to a database/sql driver and DSN.
// postgres:// and postgresql:// URLs select lib/pq, sqlite:///path selects SQLite.
func ParseDatabaseURL(url string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "postgres", url, nil
	case strings.HasPrefix(url, "sqlite:///"):
		path := strings.TrimPrefix(url, "sqlite:///")
		if path == "" {
			return "", "", fmt.Errorf("database url %q has no path", url)
		}
		return "sqlite3", path, nil
	default:
		return "", "", fmt.Errorf("unsupported database url scheme in %q", url)
	}
}

// UsesDefaultSecret reports whether sessions are signed with the development key.
func (c *Config) UsesDefaultSecret() bool {
	return c.Secret == DefaultSecret
}
