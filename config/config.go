package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"ruedo-cms/logging"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "ruedo-dev-secret-change-this-in-production"

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Env         string `env:"APP_ENV" envDefault:"development"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"ruedo.db"`

	JWTSecret             string `env:"JWT_SECRET" envDefault:"ruedo-dev-secret-change-this-in-production"`
	AccessTokenLifetimeM  int    `env:"ACCESS_TOKEN_LIFETIME_MINUTES" envDefault:"60"`
	RefreshTokenLifetimeD int    `env:"REFRESH_TOKEN_LIFETIME_DAYS" envDefault:"7"`
	// TokenStorePath is the badger directory for revoked refresh tokens; empty keeps it in memory.
	TokenStorePath string `env:"TOKEN_STORE_PATH"`

	CORSAllowedOrigins       []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000"`
	CORSAllowedOriginPattern string   `env:"CORS_ALLOWED_ORIGIN_PATTERNS" envDefault:"^https://.*\\.onrender\\.com$"`

	PageSize int `env:"PAGE_SIZE" envDefault:"20"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	LoginRateLimit float64 `env:"LOGIN_RATE_LIMIT" envDefault:"0.5"`
	LoginRateBurst int     `env:"LOGIN_RATE_BURST" envDefault:"5"`
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) AccessTokenLifetime() time.Duration {
	return time.Duration(c.AccessTokenLifetimeM) * time.Minute
}

func (c Config) RefreshTokenLifetime() time.Duration {
	return time.Duration(c.RefreshTokenLifetimeD) * 24 * time.Hour
}

// Load reads .env when present and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logging.Debug().Msg("no .env file found")
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == DefaultJWTSecret) {
		return errors.New("JWT_SECRET must be set to a non-default value in production")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.AccessTokenLifetimeM < 1 || c.RefreshTokenLifetimeD < 1 {
		return errors.New("token lifetimes must be positive")
	}
	return nil
}
