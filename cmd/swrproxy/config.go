package main

import (
	"time"

	"github.com/dmitrymomot/swrcache/pkg/httpserver"
)

// Config is the proxy configuration. Key-value source settings are loaded
// separately, only for the source selected by KVSource.
type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"swrproxy"`
	LogLevel    string `env:"LOG_LEVEL"` // overrides the environment default

	OriginURL                  string        `env:"ORIGIN_URL,required"`
	OriginTimeout              time.Duration `env:"ORIGIN_TIMEOUT" envDefault:"10s"`
	OriginMaxBodySize          int64         `env:"ORIGIN_MAX_BODY_SIZE" envDefault:"10485760"`
	OriginMaxAge               time.Duration `env:"ORIGIN_DEFAULT_MAX_AGE" envDefault:"0s"`
	OriginStaleWhileRevalidate time.Duration `env:"ORIGIN_DEFAULT_STALE_WHILE_REVALIDATE" envDefault:"0s"`
	BreakerThreshold           int           `env:"ORIGIN_BREAKER_THRESHOLD" envDefault:"5"`
	BreakerRecovery            time.Duration `env:"ORIGIN_BREAKER_RECOVERY" envDefault:"30s"`

	PolicyFile string `env:"POLICY_FILE"`

	// One of "", "redis", "memcache", "postgres" or "s3".
	KVSource        string   `env:"KV_SOURCE"`
	WarmKeys        []string `env:"WARM_KEYS" envSeparator:","`
	WarmConcurrency int      `env:"WARM_CONCURRENCY" envDefault:"4"`

	HealthTimeout time.Duration `env:"HEALTH_TIMEOUT" envDefault:"2s"`

	HTTP httpserver.Config
}
