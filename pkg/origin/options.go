package origin

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/swrcache/pkg/swr"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxBodySize = 10 << 20
	defaultUserAgent   = "swrcache-origin/1.0"
)

// Option configures an Origin.
type Option func(*Origin)

// WithHTTPClient replaces the default HTTP client, e.g. to use a custom transport.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Origin) {
		if client != nil {
			o.client = client
		}
	}
}

// WithTimeout bounds every upstream request. Default is 10 seconds.
func WithTimeout(d time.Duration) Option {
	return func(o *Origin) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithMaxBodySize limits how many bytes of a response body are buffered.
// Larger responses fail with ErrBodyTooLarge. Default is 10 MiB.
func WithMaxBodySize(n int64) Option {
	return func(o *Origin) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// WithDefaultCacheControl is used for responses that carry no Cache-Control header.
func WithDefaultCacheControl(cc swr.CacheControl) Option {
	return func(o *Origin) {
		o.defaultCC = cc
	}
}

// WithHeader sets a header on every upstream request.
func WithHeader(key, value string) Option {
	return func(o *Origin) {
		if key != "" {
			o.headers.Set(key, value)
		}
	}
}

// WithUserAgent overrides the User-Agent sent upstream.
func WithUserAgent(ua string) Option {
	return func(o *Origin) {
		if ua != "" {
			o.headers.Set("User-Agent", ua)
		}
	}
}

// WithCircuitBreaker makes Load fail fast with ErrCircuitOpen after
// failureThreshold consecutive upstream failures, until recoveryTimeout has
// passed. Client errors (4xx) do not count as failures.
func WithCircuitBreaker(failureThreshold int, recoveryTimeout time.Duration) Option {
	return func(o *Origin) {
		o.breaker = newBreaker(failureThreshold, recoveryTimeout)
	}
}
