package redis

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/swrcache/pkg/swr"
)

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
	ErrLoadFailed                   = errors.New("redis: failed to load key")

	// ErrKeyNotFound is returned by Loader.Load for keys that do not exist.
	ErrKeyNotFound = fmt.Errorf("redis: %w", swr.ErrNotFound)
)
