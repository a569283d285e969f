// Package swr implements a process-local stale-while-revalidate cache.
//
// Once a value has been loaded, reads never wait on a fetch again while the
// value is servable: fresh values are returned as is, stale values are
// returned immediately while a single background refresh runs, and values
// past their stale window are reloaded. Expired entries are reclaimed by an
// evictor that keeps exactly one timer for the whole cache.
//
// # Freshness
//
// Every load returns a Result carrying a CacheControl, so the loader decides
// per value how long it lives (for example from upstream HTTP headers).
// With createdAt the load time in unix seconds:
//
//   - Fresh:   now <= createdAt + MaxAge
//   - Stale:   now <= createdAt + MaxAge + StaleWhileRevalidate
//   - Expired: otherwise
//
// Timestamps have one second granularity. A value loaded with an empty
// CacheControl is therefore fresh for the rest of the second it was loaded in
// and expired afterwards.
//
// # Entry states
//
// A stored entry is Loading (no value, load in flight), Present (value, nothing
// in flight) or Revalidating (value, refresh in flight). Lookup drives the
// transitions:
//
//	Loading           any       wait for the in-flight load
//	Present/Reval.    Fresh     return it
//	Present           Stale     start a refresh, return the stale value
//	Revalidating      Stale     return the stale value
//	Revalidating      Expired   drop the value, wait for the in-flight refresh
//	Present / missing Expired   start a load and wait for it
//
// Concurrent lookups of one key share a single load through an async.Future,
// so a key never has more than one initial load or more than one refresh in
// flight. A failed initial load is returned to every waiter and removes the
// entry. A failed refresh is only logged: the stale value stays in place (and
// is retried on the next lookup) unless it has expired meanwhile.
//
// # Eviction
//
// The evictor schedules one timer for the Present entry that expires first.
// When it fires it removes that entry if it is still the stored Present
// value, then rescans the store for the next one. Between the expiry boundary
// and the timer firing an expired entry may still be stored; a lookup in that
// window reloads it rather than serving it.
//
// # Usage
//
//	h := swr.New(swr.StringKey[string], func(ctx context.Context, id string) (swr.Result[*User], error) {
//	    u, err := repo.User(ctx, id)
//	    if err != nil {
//	        return swr.Result[*User]{}, err
//	    }
//	    return swr.Result[*User]{
//	        Value:        u,
//	        CacheControl: swr.CacheControl{MaxAge: time.Minute, StaleWhileRevalidate: 10 * time.Minute},
//	    }, nil
//	}, swr.WithLogger(log))
//
//	user, err := h.LookupValue(ctx, "42")
//
// Loads run detached from the caller's context: a caller whose context ends
// stops waiting, but the load completes and updates the cache. Loaders that
// need a deadline must set one themselves.
package swr
