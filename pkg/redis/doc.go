// Package redis connects to Redis and exposes it as a source for the
// stale-while-revalidate cache.
//
// Connect parses a redis:// URL and pings the server with retries;
// Healthcheck wraps a ping for liveness probes. Config is populated from the
// environment via github.com/caarlos0/env.
//
// Loader reads raw bytes with a pipelined GET and PTTL, so every load is one
// round trip:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	loader := redis.NewLoader(client, cfg.LoaderOptions()...)
//	blobs := swr.New(swr.StringKey[string], loader.Load)
//
// A key's remaining TTL becomes the MaxAge of the cached value; keys without
// a TTL use WithDefaultMaxAge. Missing keys fail with ErrKeyNotFound, which
// matches swr.ErrNotFound.
//
// Errors from go-redis are wrapped with errors.Join behind the package's
// sentinel errors (ErrRedisNotReady, ErrLoadFailed, ...).
package redis
