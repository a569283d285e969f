package pg

import "time"

// Config describes the connection pool and the key-value table the loader reads.
type Config struct {
	ConnectionString  string        `env:"PG_CONN_URL,required"`
	MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"` // grows linearly per attempt

	MigrationsTable string `env:"PG_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
	AutoMigrate     bool   `env:"PG_AUTO_MIGRATE" envDefault:"false"`

	// Used for rows that carry no freshness columns.
	DefaultMaxAge        time.Duration `env:"PG_DEFAULT_MAX_AGE" envDefault:"30s"`
	StaleWhileRevalidate time.Duration `env:"PG_STALE_WHILE_REVALIDATE" envDefault:"1m"`
}

// LoaderOptions translates the loader part of cfg into options for NewLoader.
func (cfg Config) LoaderOptions() []LoaderOption {
	return []LoaderOption{
		WithDefaultCacheControl(cfg.DefaultMaxAge, cfg.StaleWhileRevalidate),
	}
}
