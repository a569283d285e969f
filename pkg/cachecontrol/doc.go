// Package cachecontrol converts between HTTP Cache-Control header values and
// swr.CacheControl.
//
// Parse reads the directives relevant to a shared cache:
//
//   - s-maxage wins over max-age when both are present
//   - stale-while-revalidate sets the stale window
//   - no-store, no-cache and private make the value uncacheable (zero policy)
//
// Unknown directives and malformed values are ignored, so a broken header
// degrades to "do not cache" instead of an error.
//
//	cc := cachecontrol.Parse(resp.Header.Get("Cache-Control"))
//	return swr.Result[*Page]{Value: page, CacheControl: cc}, nil
//
// Uncacheable tells a forbidding header apart from a missing one, which both
// parse to the zero policy.
//
// Format renders a policy back into a header value, e.g. for responses served
// from the cache.
package cachecontrol
