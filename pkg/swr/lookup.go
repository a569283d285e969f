package swr

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/swrcache/pkg/async"
	"github.com/dmitrymomot/swrcache/pkg/logger"
)

// Lookup returns the cached entry for key together with its freshness.
//
// A fresh or stale value is returned immediately; a stale one also starts a
// background refresh unless one is already running. When there is no usable
// value, Lookup waits for a load, sharing it with every concurrent caller of
// the same key. It fails only when that load fails, with the loader's error,
// or when ctx is done before the load completes. The load itself is never
// cancelled.
func (h *Handle[K, V]) Lookup(ctx context.Context, key K) (Entry[V], Freshness, error) {
	if h.keyFunc == nil {
		return Entry[V]{}, 0, ErrNoKeyFunc
	}
	skey, err := h.keyFunc(key)
	if err != nil {
		return Entry[V]{}, 0, err
	}

	h.mu.Lock()
	now := h.now()

	var pending *async.Future[*presentEntry[V]]
	switch e := h.entries[skey].(type) {
	case nil:
		pending = h.loadLocked(ctx, key, skey)

	case *loadingEntry[V]:
		pending = e.pending

	case *presentEntry[V]:
		switch fr := e.freshness(now); fr {
		case Fresh:
			h.mu.Unlock()
			return e.snapshot(KindPresent), fr, nil
		case Stale:
			h.revalidateLocked(ctx, key, e)
			h.mu.Unlock()
			return e.snapshot(KindPresent), fr, nil
		default:
			pending = h.loadLocked(ctx, key, skey)
		}

	case *revalidatingEntry[V]:
		switch fr := e.freshness(now); fr {
		case Fresh, Stale:
			h.mu.Unlock()
			return e.snapshot(KindRevalidating), fr, nil
		default:
			// The refresh result is still wanted, the old value is not.
			h.entries[skey] = &loadingEntry[V]{key: skey, pending: e.pending}
			pending = e.pending
		}

	default:
		h.mu.Unlock()
		panic(unknownEntry(e))
	}
	h.mu.Unlock()

	p, err := pending.AwaitContext(ctx)
	if err != nil {
		return Entry[V]{}, 0, err
	}
	return p.snapshot(KindPresent), p.freshness(h.now()), nil
}

// LookupValue is Lookup without the entry metadata.
func (h *Handle[K, V]) LookupValue(ctx context.Context, key K) (V, error) {
	e, _, err := h.Lookup(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}
	return e.Value, nil
}

// loadLocked starts a load that replaces whatever is stored under skey.
func (h *Handle[K, V]) loadLocked(ctx context.Context, key K, skey string) *async.Future[*presentEntry[V]] {
	var pending *async.Future[*presentEntry[V]]
	// pending is assigned before h.mu is released and the callback reads it
	// only while holding h.mu.
	pending = async.Async(context.WithoutCancel(ctx), key, func(ctx context.Context, key K) (*presentEntry[V], error) {
		res, err := h.callLoader(ctx, key)

		h.mu.Lock()
		defer h.mu.Unlock()

		if err != nil {
			if cur, ok := h.entries[skey].(*loadingEntry[V]); ok && cur.pending == pending {
				delete(h.entries, skey)
			}
			return nil, err
		}
		return h.storeLocked(skey, res), nil
	})

	h.entries[skey] = &loadingEntry[V]{key: skey, pending: pending}
	return pending
}

// revalidateLocked refreshes prev in the background while it keeps being served.
func (h *Handle[K, V]) revalidateLocked(ctx context.Context, key K, prev *presentEntry[V]) {
	var pending *async.Future[*presentEntry[V]]
	pending = async.Async(context.WithoutCancel(ctx), key, func(ctx context.Context, key K) (*presentEntry[V], error) {
		res, err := h.callLoader(ctx, key)

		h.mu.Lock()
		defer h.mu.Unlock()

		if err != nil {
			h.revalidationFailedLocked(ctx, prev, pending, err)
			return nil, err
		}
		return h.storeLocked(prev.key, res), nil
	})

	h.entries[prev.key] = &revalidatingEntry[V]{presentEntry: prev, pending: pending}
	h.log.DebugContext(ctx, "revalidating stale entry", logger.CacheKey(prev.key))
}

func (h *Handle[K, V]) revalidationFailedLocked(ctx context.Context, prev *presentEntry[V], pending *async.Future[*presentEntry[V]], err error) {
	switch cur := h.entries[prev.key].(type) {
	case *revalidatingEntry[V]:
		if cur.pending != pending {
			return
		}
		if prev.freshness(h.now()) == Expired {
			delete(h.entries, prev.key)
		} else {
			h.entries[prev.key] = prev
			h.notifyLocked(prev)
		}
	case *loadingEntry[V]:
		// Downgraded by a lookup that found the stale value expired; its
		// waiters receive err, and the next lookup starts over.
		if cur.pending == pending {
			delete(h.entries, prev.key)
		}
	case *presentEntry[V], nil:
		// superseded
	default:
		panic(unknownEntry(cur))
	}

	h.log.WarnContext(ctx, "revalidation failed",
		logger.CacheKey(prev.key),
		logger.Error(err),
	)
}

// storeLocked makes res the current value for skey.
func (h *Handle[K, V]) storeLocked(skey string, res Result[V]) *presentEntry[V] {
	p := &presentEntry[V]{key: skey, result: res, createdAt: h.now()}
	h.entries[skey] = p
	h.notifyLocked(p)
	return p
}

func (h *Handle[K, V]) callLoader(ctx context.Context, key K) (res Result[V], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", async.ErrPanic, r)
		}
	}()
	return h.loader(ctx, key)
}
