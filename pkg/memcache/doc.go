// Package memcache exposes memcached as a source for the stale-while-revalidate
// cache, using github.com/bradfitz/gomemcache.
//
//	client, err := memcache.Connect(cfg)
//	if err != nil {
//	    return err
//	}
//	loader := memcache.NewLoader(client, cfg.LoaderOptions()...)
//	blobs := swr.New(swr.StringKey[string], loader.Load)
//
// Misses fail with ErrKeyNotFound (matching swr.ErrNotFound) and are not cached.
package memcache
