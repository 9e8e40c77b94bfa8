// Package config loads the janrain service configuration from the environment.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/janrain/pkg/db"
	"github.com/dmitrymomot/janrain/pkg/janrain"
	"github.com/dmitrymomot/janrain/pkg/logger"
	"github.com/dmitrymomot/janrain/pkg/redis"
	"github.com/dmitrymomot/janrain/pkg/widget"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

var ErrInvalidStore = errors.New("config: USER_STORE must be memory, postgres or redis")

// HTTP configures the web server.
type HTTP struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Session configures the sign-in cookie.
type Session struct {
	Secret string        `env:"COOKIE_SECRET"`
	Name   string        `env:"COOKIE_NAME" envDefault:"janrain_session"`
	Domain string        `env:"COOKIE_DOMAIN"`
	Secure bool          `env:"COOKIE_SECURE" envDefault:"true"`
	TTL    time.Duration `env:"COOKIE_TTL" envDefault:"336h"`
}

// Config is the complete service configuration. Database and Redis are
// nil unless USER_STORE selects them.
type Config struct {
	Janrain janrain.Config
	Widget  widget.Config
	Logger  logger.Config
	HTTP    HTTP
	Session Session
	Store   string `env:"USER_STORE" envDefault:"memory"`

	Database *db.Config
	Redis    *redis.Config
}

// LoadDotenv loads files into the environment without overriding variables
// that are already set. Missing files are skipped.
func LoadDotenv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return err
		}
	}
	return nil
}

// Load parses the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	switch cfg.Store {
	case StoreMemory:
	case StorePostgres:
		cfg.Database = &db.Config{}
		if err := env.Parse(cfg.Database); err != nil {
			return nil, err
		}
	case StoreRedis:
		cfg.Redis = &redis.Config{}
		if err := env.Parse(cfg.Redis); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidStore
	}

	return &cfg, nil
}

// LoadJanrain parses only the API client settings, for CLI commands.
func LoadJanrain() (janrain.Config, error) {
	var cfg janrain.Config
	err := env.Parse(&cfg)
	return cfg, err
}
