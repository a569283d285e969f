// Package origin loads resources from an upstream HTTP server for use as an
// swr.Loader.
//
// Each Load issues a GET relative to the configured base URL, buffers the body
// (bounded by WithMaxBodySize) and derives the freshness policy from the
// response's Cache-Control header via package cachecontrol. Responses without
// the header use the policy given to WithDefaultCacheControl, which is zero
// (do not reuse) unless set.
//
//	o, err := origin.New("https://api.example.com", origin.WithTimeout(5*time.Second))
//	if err != nil {
//	    return err
//	}
//	pages := swr.New(swr.StringKey[string], o.Load)
//	entry, freshness, err := pages.Lookup(ctx, "/v1/catalog?page=2")
//
// Non-2xx responses fail with ErrUpstreamStatus, so they are never cached;
// 404 and 410 additionally match ErrKeyNotFound (and swr.ErrNotFound).
//
// WithCircuitBreaker protects a failing upstream: after a run of transport
// errors or 5xx responses Load returns ErrCircuitOpen without a request, which
// lets the cache keep serving stale values cheaply until the upstream recovers.
package origin
