// Command swrproxy is a caching reverse proxy that serves upstream responses
// and key-value blobs with stale-while-revalidate semantics.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/swrcache/pkg/config"
	"github.com/dmitrymomot/swrcache/pkg/httpserver"
	"github.com/dmitrymomot/swrcache/pkg/logger"
	"github.com/dmitrymomot/swrcache/pkg/origin"
	"github.com/dmitrymomot/swrcache/pkg/policy"
	"github.com/dmitrymomot/swrcache/pkg/requestid"
	"github.com/dmitrymomot/swrcache/pkg/swr"
	"github.com/dmitrymomot/swrcache/pkg/swrhttp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		logOpts = append(logOpts, logger.WithLevel(level))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pages, err := newOriginHandle(cfg, log)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	kv, err := openKV(ctx, cfg.KVSource, log)
	if err != nil {
		return err
	}
	var checks []httpserver.Check
	if kv != nil {
		defer kv.close()
		checks = kv.checks

		blobs := swr.New(swr.StringKey[string], kv.load,
			swr.WithLogger(log.With(logger.Source(cfg.KVSource))),
		)
		if len(cfg.WarmKeys) > 0 {
			start := time.Now()
			if err := blobs.Warm(ctx, cfg.WarmKeys, cfg.WarmConcurrency); err != nil {
				log.WarnContext(ctx, "cache warm-up incomplete", logger.Source(cfg.KVSource), logger.Error(err))
			} else {
				log.InfoContext(ctx, "cache warmed",
					logger.Source(cfg.KVSource),
					slog.Int("keys", len(cfg.WarmKeys)),
					logger.Duration(time.Since(start)),
				)
			}
		}
		r.Method("GET", "/kv/{key}", swrhttp.BlobHandler(blobs, log))
		r.Method("HEAD", "/kv/{key}", swrhttp.BlobHandler(blobs, log))
	}

	r.Get("/healthz", httpserver.HealthCheckHandler(log, cfg.HealthTimeout, checks...))
	r.Handle("/*", swrhttp.OriginHandler(pages, log))

	log.InfoContext(ctx, "starting swrproxy",
		slog.String("origin", cfg.OriginURL),
		slog.String("kv_source", cfg.KVSource),
	)

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, r)
}

func newOriginHandle(cfg Config, log *slog.Logger) (*swr.Handle[string, *origin.Response], error) {
	o, err := origin.New(cfg.OriginURL,
		origin.WithTimeout(cfg.OriginTimeout),
		origin.WithMaxBodySize(cfg.OriginMaxBodySize),
		origin.WithDefaultCacheControl(swr.CacheControl{
			MaxAge:               cfg.OriginMaxAge,
			StaleWhileRevalidate: cfg.OriginStaleWhileRevalidate,
		}),
		origin.WithCircuitBreaker(cfg.BreakerThreshold, cfg.BreakerRecovery),
	)
	if err != nil {
		return nil, err
	}

	load := swr.Loader[string, *origin.Response](o.Load)
	if cfg.PolicyFile != "" {
		p, err := policy.Load(cfg.PolicyFile)
		if err != nil {
			return nil, err
		}
		load = policy.Wrap(p, load)
	}

	return swr.New(swr.StringKey[string], load, swr.WithLogger(log.With(logger.Source("origin")))), nil
}
