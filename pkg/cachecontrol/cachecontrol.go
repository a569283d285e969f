package cachecontrol

import (
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/swrcache/pkg/swr"
)

// Header is the canonical header name.
const Header = "Cache-Control"

const (
	directiveMaxAge               = "max-age"
	directiveSharedMaxAge         = "s-maxage"
	directiveStaleWhileRevalidate = "stale-while-revalidate"
	directiveNoStore              = "no-store"
	directiveNoCache              = "no-cache"
	directivePrivate              = "private"
)

// Parse extracts the shared-cache freshness policy from a Cache-Control value.
func Parse(header string) swr.CacheControl {
	cc, _ := parse(header)
	return cc
}

// Uncacheable reports whether header forbids storing the response in a
// shared cache (no-store, no-cache or private). An empty header does not.
func Uncacheable(header string) bool {
	_, forbidden := parse(header)
	return forbidden
}

func parse(header string) (swr.CacheControl, bool) {
	var (
		cc        swr.CacheControl
		sharedAge = time.Duration(-1)
	)

	for part := range strings.SplitSeq(header, ",") {
		name, value, _ := strings.Cut(strings.TrimSpace(part), "=")
		name = strings.ToLower(strings.TrimSpace(name))

		switch name {
		case directiveNoStore, directiveNoCache, directivePrivate:
			return swr.CacheControl{}, true
		case directiveMaxAge:
			if d, ok := parseSeconds(value); ok {
				cc.MaxAge = d
			}
		case directiveSharedMaxAge:
			if d, ok := parseSeconds(value); ok {
				sharedAge = d
			}
		case directiveStaleWhileRevalidate:
			if d, ok := parseSeconds(value); ok {
				cc.StaleWhileRevalidate = d
			}
		}
	}

	if sharedAge >= 0 {
		cc.MaxAge = sharedAge
	}
	return cc, false
}

// Format renders cc as a Cache-Control value. A zero policy renders as "no-cache".
func Format(cc swr.CacheControl) string {
	if cc.IsZero() {
		return directiveNoCache
	}

	var b strings.Builder
	b.WriteString(directiveMaxAge)
	b.WriteByte('=')
	b.WriteString(strconv.FormatInt(seconds(cc.MaxAge), 10))
	if swrSec := seconds(cc.StaleWhileRevalidate); swrSec > 0 {
		b.WriteString(", ")
		b.WriteString(directiveStaleWhileRevalidate)
		b.WriteByte('=')
		b.WriteString(strconv.FormatInt(swrSec, 10))
	}
	return b.String()
}

// parseSeconds accepts a non-negative delta-seconds value, optionally quoted.
func parseSeconds(v string) (time.Duration, bool) {
	v = strings.Trim(strings.TrimSpace(v), `"`)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	// Clamp to avoid Duration overflow on absurd values.
	const maxSeconds = int64(1<<63-1) / int64(time.Second)
	if n > maxSeconds {
		n = maxSeconds
	}
	return time.Duration(n) * time.Second, true
}

func seconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}
