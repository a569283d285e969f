package memcache

import (
	"context"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/dmitrymomot/swrcache/pkg/swr"
)

// Getter is the subset of *memcache.Client used by Loader.
type Getter interface {
	Get(key string) (*memcache.Item, error)
}

// Loader reads raw values from memcached. Memcached does not expose the
// remaining lifetime of an item, so every value gets the same CacheControl.
type Loader struct {
	client Getter
	prefix string
	cc     swr.CacheControl
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithKeyPrefix prepends prefix to every key before reading it.
func WithKeyPrefix(prefix string) LoaderOption {
	return func(l *Loader) {
		l.prefix = prefix
	}
}

// WithCacheControl sets the freshness policy of loaded values.
func WithCacheControl(maxAge, staleWhileRevalidate time.Duration) LoaderOption {
	return func(l *Loader) {
		l.cc = swr.CacheControl{MaxAge: maxAge, StaleWhileRevalidate: staleWhileRevalidate}
	}
}

// NewLoader creates a Loader reading through client.
func NewLoader(client Getter, opts ...LoaderOption) *Loader {
	l := &Loader{client: client}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches key. The memcache client has no context support, so a
// cancelled ctx is only checked before the request.
func (l *Loader) Load(ctx context.Context, key string) (swr.Result[[]byte], error) {
	if err := ctx.Err(); err != nil {
		return swr.Result[[]byte]{}, err
	}

	item, err := l.client.Get(l.prefix + key)
	switch {
	case err == nil:
	case errors.Is(err, memcache.ErrCacheMiss):
		return swr.Result[[]byte]{}, ErrKeyNotFound
	case errors.Is(err, memcache.ErrMalformedKey):
		return swr.Result[[]byte]{}, errors.Join(ErrInvalidKey, err)
	default:
		return swr.Result[[]byte]{}, errors.Join(ErrLoadFailed, err)
	}

	return swr.Result[[]byte]{Value: item.Value, CacheControl: l.cc}, nil
}
