// Package swrhttp serves cache handles over HTTP.
//
// OriginHandler turns an origin-backed handle into a caching reverse proxy;
// BlobHandler exposes a key-value handle (Redis, memcached, Postgres, S3) under
// a chi route. Both add an X-Cache header (fresh, stale or expired) and an Age
// header in seconds. Keys the source does not know (swr.ErrNotFound) become
// 404; any other load failure becomes 502. Stale serves are logged at debug
// level. Handles built with a custom swr.Clock should pass it with WithClock
// so Age is measured on the same clock.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//	r.Handle("/kv/{key}", swrhttp.BlobHandler(blobs, log))
//	r.Handle("/*", swrhttp.OriginHandler(pages, log))
package swrhttp
