// Package config loads the application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// AppConfig is the configuration shared by the API server and the worker.
// Every field is read from the environment; a .env file, when present, is
// loaded first without overriding variables that are already set.
type AppConfig struct {
	Env      string `env:"APP_ENV" env-default:"local"`
	Version  string `env:"VERSION" env-default:"dev"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	HTTP   HTTPConfig
	DB     DBConfig
	Auth   AuthConfig
	Ingest IngestConfig
	CORS   CORSConfig
}

// HTTPConfig holds API server settings.
type HTTPConfig struct {
	Addr              string        `env:"HTTP_ADDR" env-default:":8080"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	MaxBodyBytes      int64         `env:"HTTP_MAX_BODY_BYTES" env-default:"1048576"`
	CSPReportOnly     bool          `env:"CSP_REPORT_ONLY" env-default:"false"`
}

// DBConfig holds the PostgreSQL DSN and pool limits.
type DBConfig struct {
	URL             string        `env:"DATABASE_URL" env-required:"true"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds the shared secret of the external identity service.
type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET" env-required:"true"`
}

// IngestConfig tunes feed fetching and the ingestion endpoint limiter.
type IngestConfig struct {
	FetchTimeout   time.Duration `env:"FEED_FETCH_TIMEOUT" env-default:"30s"`
	MaxFeedBytes   int64         `env:"FEED_MAX_BYTES" env-default:"10485760"`
	UserAgent      string        `env:"FEED_USER_AGENT" env-default:"newsdesk-fetcher/1.0"`
	RatePerMinute  int           `env:"INGEST_RATE_PER_MINUTE" env-default:"6"`
	RateBurst      int           `env:"INGEST_RATE_BURST" env-default:"3"`
	RequestTimeout time.Duration `env:"INGEST_REQUEST_TIMEOUT" env-default:"2m"`
}

// CORSConfig lists origins allowed on the reader and admin API.
// The ingestion endpoint always answers with a wildcard origin.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

const minJWTSecretLength = 32

// weakSecrets are rejected even when long enough after repetition.
var weakSecrets = []string{"secret", "password", "changeme", "default", "test"}

// Load reads an optional .env file and then the environment.
// envFile may be empty, in which case ENV_FILE or ".env" is tried.
func Load(envFile string) (*AppConfig, error) {
	if err := loadDotEnv(envFile); err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad(envFile string) *AppConfig {
	cfg, err := Load(envFile)
	if err != nil {
		panic(err)
	}
	return cfg
}

func loadDotEnv(path string) error {
	if path == "" {
		path = os.Getenv("ENV_FILE")
	}
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil {
		slog.Debug("loaded environment file", slog.String("path", path))
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// Validate checks cross-field constraints cleanenv cannot express.
func (c *AppConfig) Validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if len(c.Auth.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	lower := strings.ToLower(c.Auth.JWTSecret)
	for _, weak := range weakSecrets {
		if strings.ReplaceAll(lower, weak, "") == "" {
			return fmt.Errorf("JWT_SECRET must not be a repetition of a common weak value")
		}
	}
	if c.DB.MaxOpenConns <= 0 || c.DB.MaxIdleConns < 0 {
		return fmt.Errorf("db pool sizes must be positive")
	}
	if c.DB.MaxIdleConns > c.DB.MaxOpenConns {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must be <= DB_MAX_OPEN_CONNS")
	}
	if c.Ingest.FetchTimeout <= 0 {
		return fmt.Errorf("FEED_FETCH_TIMEOUT must be positive")
	}
	if c.Ingest.MaxFeedBytes <= 0 {
		return fmt.Errorf("FEED_MAX_BYTES must be positive")
	}
	if c.Ingest.RatePerMinute <= 0 || c.Ingest.RateBurst <= 0 {
		return fmt.Errorf("INGEST_RATE_PER_MINUTE and INGEST_RATE_BURST must be positive")
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must not be empty")
	}
	return nil
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values mean info.
func (c *AppConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
