package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/swrcache/pkg/swr"
)

// Loader reads raw values from Redis for an swr.Handle[string, []byte].
//
// The remaining TTL of a key becomes the MaxAge of the loaded value, so the
// cache never treats a value as fresh for longer than Redis keeps it. Keys
// without a TTL use the default MaxAge.
type Loader struct {
	client               redis.UniversalClient
	prefix               string
	defaultMaxAge        time.Duration
	staleWhileRevalidate time.Duration
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithKeyPrefix prepends prefix to every key before reading it.
func WithKeyPrefix(prefix string) LoaderOption {
	return func(l *Loader) {
		l.prefix = prefix
	}
}

// WithDefaultMaxAge sets the MaxAge for keys that have no TTL.
func WithDefaultMaxAge(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d >= 0 {
			l.defaultMaxAge = d
		}
	}
}

// WithStaleWhileRevalidate sets the stale window of every loaded value.
func WithStaleWhileRevalidate(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d >= 0 {
			l.staleWhileRevalidate = d
		}
	}
}

// NewLoader creates a Loader reading through client.
func NewLoader(client redis.UniversalClient, opts ...LoaderOption) *Loader {
	l := &Loader{client: client}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the value and its remaining TTL in a single round trip.
func (l *Loader) Load(ctx context.Context, key string) (swr.Result[[]byte], error) {
	rkey := l.prefix + key

	pipe := l.client.Pipeline()
	get := pipe.Get(ctx, rkey)
	ttl := pipe.PTTL(ctx, rkey)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return swr.Result[[]byte]{}, errors.Join(ErrLoadFailed, err)
	}

	val, err := get.Bytes()
	if errors.Is(err, redis.Nil) {
		return swr.Result[[]byte]{}, ErrKeyNotFound
	}
	if err != nil {
		return swr.Result[[]byte]{}, errors.Join(ErrLoadFailed, err)
	}

	// PTTL reports -1 (no expiry) and -2 (missing) as negative durations.
	maxAge := l.defaultMaxAge
	if d, err := ttl.Result(); err == nil && d > 0 {
		maxAge = d
	}

	return swr.Result[[]byte]{
		Value: val,
		CacheControl: swr.CacheControl{
			MaxAge:               maxAge,
			StaleWhileRevalidate: l.staleWhileRevalidate,
		},
	}, nil
}
