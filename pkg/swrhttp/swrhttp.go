package swrhttp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/swrcache/pkg/cachecontrol"
	"github.com/dmitrymomot/swrcache/pkg/logger"
	"github.com/dmitrymomot/swrcache/pkg/origin"
	"github.com/dmitrymomot/swrcache/pkg/swr"
)

const (
	// HeaderCache reports the freshness of the served entry: fresh, stale or expired.
	HeaderCache = "X-Cache"
	headerAge   = "Age"
)

// Response headers that describe a single upstream connection and must not be replayed.
var hopByHop = map[string]struct{}{
	"Connection":          {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
	"Content-Length":      {},
}

// Option configures a handler.
type Option func(*handler)

// WithClock sets the clock used for the Age header. Pass the clock the
// Handle was built with when it is not the system clock.
func WithClock(c swr.Clock) Option {
	return func(h *handler) {
		if c != nil {
			h.clock = c
		}
	}
}

type handler struct {
	log   *slog.Logger
	clock swr.Clock
}

func newHandler(log *slog.Logger, component string, opts []Option) *handler {
	if log == nil {
		log = logger.Discard()
	}
	h := &handler{
		log:   log.With(logger.Component(component)),
		clock: swr.SystemClock(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// OriginHandler serves GET and HEAD requests through an origin-backed cache,
// keyed by path and query. Upstream status and headers are replayed.
func OriginHandler(c *swr.Handle[string, *origin.Response], log *slog.Logger, opts ...Option) http.Handler {
	h := newHandler(log, "swrhttp.origin", opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r) {
			return
		}

		key := r.URL.EscapedPath()
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}

		e, freshness, err := c.Lookup(r.Context(), key)
		if err != nil {
			h.writeError(w, r, key, err)
			return
		}

		resp := e.Value
		for k, vv := range resp.Header {
			if _, skip := hopByHop[k]; skip {
				continue
			}
			w.Header()[k] = append([]string(nil), vv...)
		}
		h.writeEntry(w, r, key, e.CreatedAt, freshness, resp.StatusCode, resp.Body)
	})
}

// BlobHandler serves raw values from a key-value cache. The key is the chi
// URL parameter "key", or the wildcard when the route uses "/*".
func BlobHandler(c *swr.Handle[string, []byte], log *slog.Logger, opts ...Option) http.Handler {
	h := newHandler(log, "swrhttp.blob", opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r) {
			return
		}

		key := chi.URLParam(r, "key")
		if key == "" {
			key = chi.URLParam(r, "*")
		}
		if key == "" {
			http.Error(w, "missing key", http.StatusBadRequest)
			return
		}

		e, freshness, err := c.Lookup(r.Context(), key)
		if err != nil {
			h.writeError(w, r, key, err)
			return
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set(cachecontrol.Header, cachecontrol.Format(e.CacheControl))
		h.writeEntry(w, r, key, e.CreatedAt, freshness, http.StatusOK, e.Value)
	})
}

func (h *handler) writeEntry(w http.ResponseWriter, r *http.Request, key string, createdAt time.Time, freshness swr.Freshness, status int, body []byte) {
	if freshness == swr.Stale {
		h.log.DebugContext(r.Context(), "serving stale entry",
			logger.CacheKey(key),
			logger.Freshness(freshness),
		)
	}

	age := max(h.clock.Now().Sub(createdAt)/time.Second, 0)
	w.Header().Set(HeaderCache, freshness.String())
	w.Header().Set(headerAge, strconv.FormatInt(int64(age), 10))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}

// writeError maps load failures: missing keys are 404, callers that went away
// get nothing, everything else is a 502 since the source failed.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, key string, err error) {
	switch {
	case errors.Is(err, swr.ErrNotFound):
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	case errors.Is(err, context.Canceled) && r.Context().Err() != nil:
		h.log.DebugContext(r.Context(), "client went away", logger.CacheKey(key))
	case errors.Is(err, context.DeadlineExceeded) && r.Context().Err() != nil:
		http.Error(w, http.StatusText(http.StatusGatewayTimeout), http.StatusGatewayTimeout)
	default:
		h.log.WarnContext(r.Context(), "cache lookup failed", logger.CacheKey(key), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
	}
}

func allowMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set("Allow", "GET, HEAD")
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}
