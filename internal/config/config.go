// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devSessionSecret = "your-super-secret-key-change-in-production"

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Logging  LoggingConfig
	Admin    AdminConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port          string
	MaxUploadSize int // bytes
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver     string // postgres or sqlite
	URL        string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SQLitePath string
}

// SessionConfig holds session cookie settings
type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieSecure bool
	// DevSecret is set when no secret was configured and the built-in one is used
	DevSecret bool
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// AdminConfig describes the administrator seeded at start-up. Empty email disables seeding.
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

// Load reads configuration from environment variables, loading .env first when present
func Load() (*Config, error) {
	godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{}
	cfg.Server.Port = get("PORT", "3000")

	maxMB, err := strconv.Atoi(get("MAX_UPLOAD_MB", "10"))
	if err != nil || maxMB <= 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: %q", getenv("MAX_UPLOAD_MB"))
	}
	cfg.Server.MaxUploadSize = maxMB * 1024 * 1024

	cfg.Database.Driver = strings.ToLower(get("DB_DRIVER", "postgres"))
	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %q", cfg.Database.Driver)
	}
	cfg.Database.URL = get("DATABASE_URL", "")
	cfg.Database.Host = get("DB_HOST", "localhost")
	cfg.Database.Port = get("DB_PORT", "5432")
	cfg.Database.User = get("DB_USER", "")
	cfg.Database.Password = getenv("DB_PASSWORD")
	cfg.Database.Name = get("DB_NAME", "")
	cfg.Database.SQLitePath = get("SQLITE_PATH", "users.db")

	cfg.Session.Secret = get("SESSION_SECRET", get("JWT_SECRET", ""))
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = devSessionSecret
		cfg.Session.DevSecret = true
	}
	cfg.Session.TTL, err = time.ParseDuration(get("SESSION_TTL", "24h"))
	if err != nil || cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL: %q", getenv("SESSION_TTL"))
	}
	cfg.Session.CookieSecure, err = strconv.ParseBool(get("COOKIE_SECURE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
	}

	cfg.Logging.Level = get("LOG_LEVEL", "info")

	cfg.Admin.Email = get("ADMIN_EMAIL", "")
	cfg.Admin.Password = getenv("ADMIN_PASSWORD")
	cfg.Admin.Name = get("ADMIN_NAME", "Administrator")
	if cfg.Admin.Email != "" && cfg.Admin.Password == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is required when ADMIN_EMAIL is set")
	}

	return cfg, nil
}

// DSN returns the postgres connection string
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		d.Host, d.User, d.Password, d.Name, d.Port,
	)
}
