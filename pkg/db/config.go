package db

import "time"

// Config holds the PostgreSQL pool settings of the user store.
type Config struct {
	URL             string        `env:"DATABASE_URL,required"`
	MigrationsTable string        `env:"DATABASE_MIGRATIONS_TABLE" envDefault:"janrain_migrations"`
	MaxConns        int32         `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	MinConns        int32         `env:"DATABASE_MIN_CONNS" envDefault:"2"`
	MaxConnIdleTime time.Duration `env:"DATABASE_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime time.Duration `env:"DATABASE_MAX_CONN_LIFETIME" envDefault:"30m"`
	RetryAttempts   int           `env:"DATABASE_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval   time.Duration `env:"DATABASE_RETRY_INTERVAL" envDefault:"2s"`
}
