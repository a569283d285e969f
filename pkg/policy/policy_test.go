package policy_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/swrcache/pkg/origin"
	"github.com/dmitrymomot/swrcache/pkg/policy"
	"github.com/dmitrymomot/swrcache/pkg/swr"
)

const sample = `
default:
  max_age: 30s
  stale_while_revalidate: 5m
rules:
  - prefix: /static/
    max_age: 1h
    stale_while_revalidate: 24h
    override: true
  - prefix: /static/fonts/
    max_age: 168h
  - prefix: /api/
    max_age: 5s
`

func TestParse(t *testing.T) {
	t.Parallel()

	p, err := policy.Parse([]byte(sample))
	require.NoError(t, err)

	tests := []struct {
		key      string
		want     swr.CacheControl
		override bool
	}{
		{key: "/index.html", want: swr.CacheControl{MaxAge: 30 * time.Second, StaleWhileRevalidate: 5 * time.Minute}},
		{key: "/static/app.js", want: swr.CacheControl{MaxAge: time.Hour, StaleWhileRevalidate: 24 * time.Hour}, override: true},
		{key: "/static/fonts/inter.woff2", want: swr.CacheControl{MaxAge: 168 * time.Hour}},
		{key: "/api/users", want: swr.CacheControl{MaxAge: 5 * time.Second}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			cc, override := p.Resolve(tt.key)
			assert.Equal(t, tt.want, cc)
			assert.Equal(t, tt.override, override)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	p, err := policy.Parse(nil)
	require.NoError(t, err)

	cc, override := p.Resolve("anything")
	assert.True(t, cc.IsZero())
	assert.False(t, override)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
		want error
	}{
		{name: "malformed", yaml: "default: [", want: policy.ErrFailedToParseYAML},
		{name: "unknown field", yaml: "default:\n  maxage: 1s\n", want: policy.ErrFailedToParseYAML},
		{name: "integer duration", yaml: "default:\n  max_age: 30\n", want: policy.ErrFailedToParseYAML},
		{name: "negative duration", yaml: "default:\n  max_age: -1s\n", want: policy.ErrInvalidPolicy},
		{name: "missing prefix", yaml: "rules:\n  - max_age: 1s\n", want: policy.ErrInvalidPolicy},
		{name: "duplicate prefix", yaml: "rules:\n  - prefix: /a\n  - prefix: /a\n", want: policy.ErrInvalidPolicy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := policy.Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	p, err := policy.Load(path)
	require.NoError(t, err)
	assert.Len(t, p.Rules, 3)

	_, err = policy.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, policy.ErrFailedToReadFile)
}

func TestApply(t *testing.T) {
	t.Parallel()

	p, err := policy.Parse([]byte(sample))
	require.NoError(t, err)

	own := swr.CacheControl{MaxAge: 2 * time.Second}

	assert.Equal(t, own, p.Apply("/api/users", own), "loader policy is kept without override")
	assert.Equal(t, swr.CacheControl{MaxAge: 5 * time.Second}, p.Apply("/api/users", swr.CacheControl{}), "empty policy is filled in")
	assert.Equal(t, swr.CacheControl{MaxAge: time.Hour, StaleWhileRevalidate: 24 * time.Hour}, p.Apply("/static/x.css", own), "override wins")
}

func TestWrap(t *testing.T) {
	t.Parallel()

	p, err := policy.Parse([]byte(sample))
	require.NoError(t, err)

	boom := errors.New("boom")
	loader := policy.Wrap(p, func(_ context.Context, key string) (swr.Result[string], error) {
		if key == "/fail" {
			return swr.Result[string]{}, boom
		}
		return swr.Result[string]{Value: "v:" + key}, nil
	})

	res, err := loader(context.Background(), "/api/items")
	require.NoError(t, err)
	assert.Equal(t, "v:/api/items", res.Value)
	assert.Equal(t, swr.CacheControl{MaxAge: 5 * time.Second}, res.CacheControl)

	_, err = loader(context.Background(), "/fail")
	assert.ErrorIs(t, err, boom)
}

func TestWrap_UncacheableOriginResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/public" {
			w.Header().Set("Cache-Control", "private, no-store")
		}
		_, _ = w.Write([]byte("hello"))
	}))
	defer server.Close()

	o, err := origin.New(server.URL)
	require.NoError(t, err)

	p, err := policy.Parse([]byte(`
default:
  max_age: 5m
rules:
  - prefix: /forced/
    max_age: 1m
    override: true
`))
	require.NoError(t, err)

	loader := policy.Wrap(p, o.Load)

	t.Run("private response stays uncacheable", func(t *testing.T) {
		res, err := loader(context.Background(), "/account")
		require.NoError(t, err)
		assert.True(t, res.CacheControl.IsZero(), "got %+v", res.CacheControl)
	})

	t.Run("response without header gets the default", func(t *testing.T) {
		res, err := loader(context.Background(), "/public")
		require.NoError(t, err)
		assert.Equal(t, swr.CacheControl{MaxAge: 5 * time.Minute}, res.CacheControl)
	})

	t.Run("override still applies", func(t *testing.T) {
		res, err := loader(context.Background(), "/forced/account")
		require.NoError(t, err)
		assert.Equal(t, swr.CacheControl{MaxAge: time.Minute}, res.CacheControl)
	})
}
