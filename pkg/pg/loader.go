package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/swrcache/pkg/swr"
)

// KVQuery reads one row of the table created by Migrate.
const KVQuery = `SELECT value, max_age_seconds, stale_while_revalidate_seconds FROM swr_kv WHERE key = $1`

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ScanFunc decodes a row into a value and, optionally, its freshness policy.
// A zero CacheControl means "use the loader default".
type ScanFunc[T any] func(row pgx.Row) (T, swr.CacheControl, error)

// Loader runs a single-row query with the cache key as its only argument.
type Loader[T any] struct {
	db    Querier
	query string
	scan  ScanFunc[T]
	cc    swr.CacheControl
}

// LoaderOption configures the loader defaults.
type LoaderOption func(*swr.CacheControl)

// WithDefaultCacheControl sets the policy for rows whose ScanFunc returns none.
func WithDefaultCacheControl(maxAge, staleWhileRevalidate time.Duration) LoaderOption {
	return func(cc *swr.CacheControl) {
		*cc = swr.CacheControl{MaxAge: maxAge, StaleWhileRevalidate: staleWhileRevalidate}
	}
}

// NewLoader creates a Loader for query, which must take the key as $1.
func NewLoader[T any](db Querier, query string, scan ScanFunc[T], opts ...LoaderOption) *Loader[T] {
	l := &Loader[T]{db: db, query: query, scan: scan}
	for _, opt := range opts {
		opt(&l.cc)
	}
	return l
}

// NewKVLoader reads raw values from the swr_kv table.
func NewKVLoader(db Querier, opts ...LoaderOption) *Loader[[]byte] {
	return NewLoader(db, KVQuery, ScanKV, opts...)
}

// Load runs the query for key.
func (l *Loader[T]) Load(ctx context.Context, key string) (swr.Result[T], error) {
	v, cc, err := l.scan(l.db.QueryRow(ctx, l.query, key))
	if err != nil {
		if IsNotFoundError(err) {
			return swr.Result[T]{}, ErrKeyNotFound
		}
		return swr.Result[T]{}, errors.Join(ErrLoadFailed, err)
	}
	if cc.IsZero() {
		cc = l.cc
	}
	return swr.Result[T]{Value: v, CacheControl: cc}, nil
}

// ScanKV scans (value, max_age_seconds, stale_while_revalidate_seconds) with
// nullable freshness columns.
func ScanKV(row pgx.Row) ([]byte, swr.CacheControl, error) {
	var (
		value       []byte
		maxAge, swv *int32
	)
	if err := row.Scan(&value, &maxAge, &swv); err != nil {
		return nil, swr.CacheControl{}, err
	}

	var cc swr.CacheControl
	if maxAge != nil {
		cc.MaxAge = time.Duration(*maxAge) * time.Second
	}
	if swv != nil {
		cc.StaleWhileRevalidate = time.Duration(*swv) * time.Second
	}
	return value, cc, nil
}
