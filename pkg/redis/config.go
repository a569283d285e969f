package redis

import "time"

// Config describes the Redis connection and the defaults the cache loader
// applies to values read from it. Fields are populated from the environment
// via github.com/caarlos0/env.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // redis://:password@host:6379/0
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`

	KeyPrefix            string        `env:"REDIS_KEY_PREFIX"`
	DefaultMaxAge        time.Duration `env:"REDIS_DEFAULT_MAX_AGE" envDefault:"30s"` // used for keys without a TTL
	StaleWhileRevalidate time.Duration `env:"REDIS_STALE_WHILE_REVALIDATE" envDefault:"1m"`
}

// LoaderOptions translates the loader part of cfg into options for NewLoader.
func (cfg Config) LoaderOptions() []LoaderOption {
	return []LoaderOption{
		WithKeyPrefix(cfg.KeyPrefix),
		WithDefaultMaxAge(cfg.DefaultMaxAge),
		WithStaleWhileRevalidate(cfg.StaleWhileRevalidate),
	}
}
