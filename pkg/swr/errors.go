package swr

import "errors"

var (
	// ErrNoKeyFunc is returned by lookups on a Handle built without a key function.
	ErrNoKeyFunc = errors.New("swr: no key normalization function configured")

	// ErrNotFound is the error loaders wrap to report that the source has no
	// value for a key. Like any load failure it is not cached.
	ErrNotFound = errors.New("swr: key not found")
)
