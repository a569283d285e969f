package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// CacheKey records a normalized cache key under the key "cache_key".
func CacheKey(key string) slog.Attr {
	return slog.String("cache_key", key)
}

// Freshness records the freshness a lookup observed under the key "freshness".
// Accepts anything with a String method so the logger does not depend on the cache.
func Freshness(f interface{ String() string }) slog.Attr {
	if f == nil {
		return slog.Attr{}
	}
	return slog.String("freshness", f.String())
}

// Source records the backend a loader reads from under the key "source".
func Source(name string) slog.Attr {
	return slog.String("source", name)
}

// RequestID records the request identifier under the key "request_id".
// If id is empty, it returns an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
