package swr

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/swrcache/pkg/logger"
)

// KeyFunc converts a caller key into the string the store is indexed by.
// It must be deterministic: equal keys must normalize to equal strings.
type KeyFunc[K any] func(K) (string, error)

// Loader fetches the value for key. It is always called with the caller's
// original key, never the normalized one. The context passed to a Loader is
// not cancelled when the caller that triggered the load goes away; loaders
// that need a deadline must apply one themselves.
type Loader[K, V any] func(ctx context.Context, key K) (Result[V], error)

// StringKey is the identity KeyFunc for string-like keys.
func StringKey[K ~string](k K) (string, error) {
	return string(k), nil
}

// SprintKey normalizes any key with fmt.Sprint.
func SprintKey[K any](k K) (string, error) {
	return fmt.Sprint(k), nil
}

// Handle is a stale-while-revalidate cache. It owns the store and the
// eviction timer; all lookups on the same Handle share them.
// A Handle is safe for concurrent use.
type Handle[K, V any] struct {
	keyFunc KeyFunc[K]
	loader  Loader[K, V]
	clock   Clock
	log     *slog.Logger

	mu      sync.Mutex
	entries map[string]entry[V]
	evictor evictor[V]
}

// New returns a Handle with an empty store and no scheduled eviction.
// The functions are not validated here: a nil keyFunc surfaces as
// ErrNoKeyFunc and a nil loader as a load failure.
func New[K, V any](keyFunc KeyFunc[K], loader Loader[K, V], opts ...Option) *Handle[K, V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Handle[K, V]{
		keyFunc: keyFunc,
		loader:  loader,
		clock:   o.clock,
		log:     o.log.With(logger.Component("swr")),
		entries: make(map[string]entry[V]),
	}
}

// now returns the coarse store timestamp in unix seconds.
func (h *Handle[K, V]) now() int64 {
	return h.clock.Now().Unix()
}
