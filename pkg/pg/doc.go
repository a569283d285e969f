// Package pg exposes PostgreSQL as a source for the stale-while-revalidate
// cache, built on github.com/jackc/pgx/v5.
//
// Connect opens a pgxpool with linear back-off retries and Healthcheck wraps
// a ping for probes. Migrate applies the embedded goose migrations that create
// the swr_kv table.
//
// Loader runs any single-row query keyed by $1 and decodes it with a ScanFunc,
// which may also report a per-row freshness policy:
//
//	loader := pg.NewLoader(pool,
//	    `SELECT name, email FROM users WHERE id = $1`,
//	    func(row pgx.Row) (User, swr.CacheControl, error) {
//	        var u User
//	        err := row.Scan(&u.Name, &u.Email)
//	        return u, swr.CacheControl{}, err
//	    },
//	    pg.WithDefaultCacheControl(time.Minute, 5*time.Minute),
//	)
//	users := swr.New(swr.StringKey[string], loader.Load)
//
// NewKVLoader is the ready-made loader for swr_kv, whose nullable
// max_age_seconds and stale_while_revalidate_seconds columns override the
// defaults per row. No rows yields ErrKeyNotFound (matching swr.ErrNotFound).
package pg
