package redis

import "time"

// Config holds the Redis connection settings of the user store.
type Config struct {
	URL           string        `env:"REDIS_URL,required"`
	KeyPrefix     string        `env:"REDIS_KEY_PREFIX" envDefault:"janrain:"`
	PoolSize      int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	DialTimeout   time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout   time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout  time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	RetryAttempts int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
}
