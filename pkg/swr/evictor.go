package swr

import (
	"time"

	"github.com/dmitrymomot/swrcache/pkg/logger"
)

// evictor tracks the single pending wake-up of a Handle: the Present entry
// that expires first. All fields are guarded by Handle.mu.
type evictor[V any] struct {
	timer Timer
	runAt int64
	entry *presentEntry[V]
	gen   uint64 // discards callbacks of stopped timers that already fired
}

// notifyLocked is called whenever p becomes the Present entry of its key.
func (h *Handle[K, V]) notifyLocked(p *presentEntry[V]) {
	runAt := p.expiresAt()
	if h.evictor.timer != nil && h.evictor.runAt <= runAt {
		return
	}
	h.scheduleLocked(p, runAt)
}

func (h *Handle[K, V]) scheduleLocked(p *presentEntry[V], runAt int64) {
	ev := &h.evictor
	if ev.timer != nil {
		ev.timer.Stop()
	}
	ev.gen++
	gen := ev.gen
	ev.runAt = runAt
	ev.entry = p

	// runAt is the last servable second; the entry is Expired from runAt+1.
	delay := time.Unix(runAt+1, 0).Sub(h.clock.Now())
	ev.timer = h.clock.AfterFunc(delay, func() { h.evict(gen) })
}

func (h *Handle[K, V]) evict(gen uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ev := &h.evictor
	if gen != ev.gen {
		return
	}
	p := ev.entry
	ev.timer = nil
	ev.entry = nil

	// Entries that moved on to Loading, Revalidating or a newer Present stay.
	if cur, ok := h.entries[p.key].(*presentEntry[V]); ok && cur == p {
		delete(h.entries, p.key)
		h.log.Debug("evicted expired entry", logger.CacheKey(p.key))
	}

	h.rescheduleLocked()
}

// rescheduleLocked arms the timer for the earliest expiring Present entry, if any.
func (h *Handle[K, V]) rescheduleLocked() {
	var next *presentEntry[V]
	for _, e := range h.entries {
		p, ok := e.(*presentEntry[V])
		if !ok {
			continue
		}
		if next == nil || p.expiresAt() < next.expiresAt() {
			next = p
		}
	}
	if next != nil {
		h.scheduleLocked(next, next.expiresAt())
	}
}
