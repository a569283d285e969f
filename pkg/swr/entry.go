package swr

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/swrcache/pkg/async"
)

// CacheControl carries the per-load freshness policy, in the spirit of the
// HTTP max-age and stale-while-revalidate directives.
// Only whole seconds are significant; zero or negative values mean 0.
type CacheControl struct {
	// MaxAge is how long a loaded value is served without any background work.
	MaxAge time.Duration
	// StaleWhileRevalidate is how long after MaxAge the value may still be
	// served while a refresh runs in the background.
	StaleWhileRevalidate time.Duration
}

func (cc CacheControl) seconds() (maxAge, staleWhileRevalidate int64) {
	return wholeSeconds(cc.MaxAge), wholeSeconds(cc.StaleWhileRevalidate)
}

// IsZero reports whether neither directive is set.
func (cc CacheControl) IsZero() bool {
	return cc.MaxAge <= 0 && cc.StaleWhileRevalidate <= 0
}

func wholeSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}

// Result is what a Loader produces: the value and how long it may be used.
type Result[V any] struct {
	Value        V
	CacheControl CacheControl
}

// Kind is the state of a cache entry.
type Kind uint8

const (
	// KindLoading means no usable value exists yet; a load is in flight.
	KindLoading Kind = iota + 1
	// KindPresent means a usable value exists and nothing is in flight.
	KindPresent
	// KindRevalidating means a possibly stale value exists and a refresh is in flight.
	KindRevalidating
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindPresent:
		return "present"
	case KindRevalidating:
		return "revalidating"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Entry is a point-in-time snapshot of a cache entry handed to callers.
type Entry[V any] struct {
	Key          string
	Value        V
	CacheControl CacheControl
	CreatedAt    time.Time
	Kind         Kind
}

// entry is the stored cache entry. It is implemented by exactly three types:
// *loadingEntry, *presentEntry and *revalidatingEntry.
type entry[V any] interface {
	kind() Kind
}

type loadingEntry[V any] struct {
	key     string
	pending *async.Future[*presentEntry[V]]
}

type presentEntry[V any] struct {
	key       string
	result    Result[V]
	createdAt int64 // unix seconds
}

type revalidatingEntry[V any] struct {
	*presentEntry[V]
	pending *async.Future[*presentEntry[V]]
}

func (*loadingEntry[V]) kind() Kind      { return KindLoading }
func (*presentEntry[V]) kind() Kind      { return KindPresent }
func (*revalidatingEntry[V]) kind() Kind { return KindRevalidating }

// expiresAt is the last second in which the entry is still servable.
func (p *presentEntry[V]) expiresAt() int64 {
	maxAge, swr := p.result.CacheControl.seconds()
	return p.createdAt + maxAge + swr
}

func (p *presentEntry[V]) freshness(now int64) Freshness {
	return Classify(now, p.createdAt, p.result.CacheControl)
}

func (p *presentEntry[V]) snapshot(k Kind) Entry[V] {
	return Entry[V]{
		Key:          p.key,
		Value:        p.result.Value,
		CacheControl: p.result.CacheControl,
		CreatedAt:    time.Unix(p.createdAt, 0),
		Kind:         k,
	}
}

func unknownEntry(e any) string {
	return fmt.Sprintf("swr: unknown cache entry type %T", e)
}
