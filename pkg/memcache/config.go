package memcache

import "time"

// Config describes the memcached servers and the freshness policy applied to
// values read from them.
type Config struct {
	Addrs        []string      `env:"MEMCACHE_ADDRS" envSeparator:"," envDefault:"localhost:11211"`
	Timeout      time.Duration `env:"MEMCACHE_TIMEOUT" envDefault:"500ms"`
	MaxIdleConns int           `env:"MEMCACHE_MAX_IDLE_CONNS" envDefault:"10"`

	KeyPrefix            string        `env:"MEMCACHE_KEY_PREFIX"`
	MaxAge               time.Duration `env:"MEMCACHE_MAX_AGE" envDefault:"30s"`
	StaleWhileRevalidate time.Duration `env:"MEMCACHE_STALE_WHILE_REVALIDATE" envDefault:"1m"`
}

// LoaderOptions translates the loader part of cfg into options for NewLoader.
func (cfg Config) LoaderOptions() []LoaderOption {
	return []LoaderOption{
		WithKeyPrefix(cfg.KeyPrefix),
		WithCacheControl(cfg.MaxAge, cfg.StaleWhileRevalidate),
	}
}
