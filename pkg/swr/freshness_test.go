package swr_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/swrcache/pkg/swr"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	const created = int64(1_000)
	cc := swr.CacheControl{MaxAge: 10 * time.Second, StaleWhileRevalidate: 5 * time.Second}

	tests := []struct {
		name string
		now  int64
		cc   swr.CacheControl
		want swr.Freshness
	}{
		{"at creation", created, cc, swr.Fresh},
		{"at max-age boundary", created + 10, cc, swr.Fresh},
		{"just past max-age", created + 11, cc, swr.Stale},
		{"at stale boundary", created + 15, cc, swr.Stale},
		{"past stale boundary", created + 16, cc, swr.Expired},
		{"no cache control, same second", created, swr.CacheControl{}, swr.Fresh},
		{"no cache control, next second", created + 1, swr.CacheControl{}, swr.Expired},
		{"stale window only", created + 3, swr.CacheControl{StaleWhileRevalidate: 5 * time.Second}, swr.Stale},
		{"sub-second values are truncated", created + 1, swr.CacheControl{MaxAge: 900 * time.Millisecond}, swr.Expired},
		{"negative values count as zero", created + 1, swr.CacheControl{MaxAge: -time.Hour, StaleWhileRevalidate: 2 * time.Second}, swr.Stale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, swr.Classify(tt.now, created, tt.cc))
		})
	}
}

func TestFreshness_String(t *testing.T) {
	assert.Equal(t, "fresh", swr.Fresh.String())
	assert.Equal(t, "stale", swr.Stale.String())
	assert.Equal(t, "expired", swr.Expired.String())
	assert.Equal(t, "revalidating", swr.KindRevalidating.String())
}
