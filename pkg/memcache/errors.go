package memcache

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/swrcache/pkg/swr"
)

var (
	ErrNoServers         = errors.New("memcache: no server addresses configured")
	ErrNotReady          = errors.New("memcache: servers are not reachable")
	ErrHealthcheckFailed = errors.New("memcache healthcheck failed")
	ErrInvalidKey        = errors.New("memcache: invalid key")
	ErrLoadFailed        = errors.New("memcache: failed to load key")

	// ErrKeyNotFound is returned by Loader.Load on a cache miss.
	ErrKeyNotFound = fmt.Errorf("memcache: %w", swr.ErrNotFound)
)
