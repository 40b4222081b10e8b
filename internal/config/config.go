package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config captures all runtime configuration derived from environment variables.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	TMDBBaseURL     string `env:"TMDB_BASE_URL" envDefault:"https://api.themoviedb.org/3"`
	// TMDBAPIKey is the default credential. No key ships in source, so an
	// unset value leaves the dashboard in setup until the user supplies one.
	TMDBAPIKey      string `env:"TMDB_API_KEY"`
	TMDBLanguage    string `env:"TMDB_LANGUAGE" envDefault:"en-US"`
	TMDBTimeoutSecs int    `env:"TMDB_TIMEOUT_SECS" envDefault:"10"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	DBURL         string `env:"DB_URL"`
	RedisURL      string `env:"REDIS_URL"`

	ReadTimeoutSecs  int `env:"SERVER_READ_TIMEOUT" envDefault:"15"`
	WriteTimeoutSecs int `env:"SERVER_WRITE_TIMEOUT" envDefault:"15"`
	IdleTimeoutSecs  int `env:"SERVER_IDLE_TIMEOUT" envDefault:"60"`

	DBMaxConns        int `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMinConns        int `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxIdleSecs     int `env:"DB_MAX_CONN_IDLE_SECS" envDefault:"300"`
	DBMaxLifeSecs     int `env:"DB_MAX_CONN_LIFETIME_SECS" envDefault:"3600"`
	DBConnTimeoutSecs int `env:"DB_CONN_TIMEOUT_SECS" envDefault:"10"`
	DBStatementCache  int `env:"DB_STATEMENT_CACHE_CAPACITY" envDefault:"256"`

	SearchDebounceMS int `env:"SEARCH_DEBOUNCE_MS" envDefault:"500"`

	LimiterEnabled bool    `env:"LIMITER_ENABLED" envDefault:"true"`
	LimiterRPS     float64 `env:"LIMITER_RPS" envDefault:"20"`
	LimiterBurst   int     `env:"LIMITER_BURST" envDefault:"40"`
}

// Load reads configuration from environment variables, applying defaults and validation.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.StorageDriver {
	case DriverMemory:
	case DriverPostgres:
		if cfg.DBURL == "" {
			return Config{}, fmt.Errorf("DB_URL is required when STORAGE_DRIVER=postgres")
		}
	case DriverRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL is required when STORAGE_DRIVER=redis")
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be one of memory, postgres, redis (got %q)", cfg.StorageDriver)
	}
	if cfg.TMDBBaseURL == "" {
		return Config{}, fmt.Errorf("TMDB_BASE_URL must not be empty")
	}
	if cfg.TMDBTimeoutSecs <= 0 {
		return Config{}, fmt.Errorf("TMDB_TIMEOUT_SECS must be positive")
	}
	if cfg.SearchDebounceMS <= 0 {
		return Config{}, fmt.Errorf("SEARCH_DEBOUNCE_MS must be positive")
	}
	if cfg.DBMaxConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if cfg.DBMinConns < 0 {
		return Config{}, fmt.Errorf("DB_MIN_CONNS must be non-negative")
	}
	if cfg.DBMinConns > cfg.DBMaxConns {
		return Config{}, fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}
	if cfg.DBStatementCache < 0 {
		return Config{}, fmt.Errorf("DB_STATEMENT_CACHE_CAPACITY must be non-negative")
	}
	if cfg.LimiterEnabled && (cfg.LimiterRPS <= 0 || cfg.LimiterBurst <= 0) {
		return Config{}, fmt.Errorf("LIMITER_RPS and LIMITER_BURST must be positive when LIMITER_ENABLED")
	}

	return cfg, nil
}

// TMDBTimeout is the upstream request timeout.
func (c Config) TMDBTimeout() time.Duration {
	return time.Duration(c.TMDBTimeoutSecs) * time.Second
}

// SearchDebounce is the quiet period before typed input triggers a search.
func (c Config) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}
