package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/swrcache/pkg/config"
	"github.com/dmitrymomot/swrcache/pkg/httpserver"
	"github.com/dmitrymomot/swrcache/pkg/logger"
	"github.com/dmitrymomot/swrcache/pkg/memcache"
	"github.com/dmitrymomot/swrcache/pkg/pg"
	"github.com/dmitrymomot/swrcache/pkg/redis"
	"github.com/dmitrymomot/swrcache/pkg/s3"
	"github.com/dmitrymomot/swrcache/pkg/swr"
)

var errUnknownSource = errors.New("unknown key-value source")

// kvSource is a connected key-value backend ready to be cached.
type kvSource struct {
	load   swr.Loader[string, []byte]
	checks []httpserver.Check
	close  func()
}

// openKV connects to the backend named by source. An empty source yields a
// nil kvSource and disables the /kv routes.
func openKV(ctx context.Context, source string, log *slog.Logger) (*kvSource, error) {
	kv, err := connectKV(ctx, source, log)
	if err != nil || kv == nil {
		return nil, err
	}
	log.InfoContext(ctx, "connected key-value source", logger.Source(source))
	return kv, nil
}

func connectKV(ctx context.Context, source string, log *slog.Logger) (*kvSource, error) {
	switch source {
	case "":
		return nil, nil
	case "redis":
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &kvSource{
			load:   redis.NewLoader(client, cfg.LoaderOptions()...).Load,
			checks: []httpserver.Check{{Name: "redis", Fn: redis.Healthcheck(client)}},
			close:  func() { _ = client.Close() },
		}, nil
	case "memcache":
		var cfg memcache.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := memcache.Connect(cfg)
		if err != nil {
			return nil, err
		}
		ping := memcache.Healthcheck(client)
		return &kvSource{
			load:   memcache.NewLoader(client, cfg.LoaderOptions()...).Load,
			checks: []httpserver.Check{{Name: "memcache", Fn: func(context.Context) error { return ping() }}},
			close:  func() {},
		}, nil
	case "postgres":
		var cfg pg.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &kvSource{
			load:   pg.NewKVLoader(pool, cfg.LoaderOptions()...).Load,
			checks: []httpserver.Check{{Name: "postgres", Fn: pg.Healthcheck(pool)}},
			close:  pool.Close,
		}, nil
	case "s3":
		var cfg s3.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		loader, err := s3.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &kvSource{
			load:  objectBody(loader.Load),
			close: func() {},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownSource, source)
	}
}

// objectBody narrows an S3 object loader to its body.
func objectBody(next swr.Loader[string, *s3.Object]) swr.Loader[string, []byte] {
	return func(ctx context.Context, key string) (swr.Result[[]byte], error) {
		res, err := next(ctx, key)
		if err != nil {
			return swr.Result[[]byte]{}, err
		}
		return swr.Result[[]byte]{Value: res.Value.Body, CacheControl: res.CacheControl}, nil
	}
}
