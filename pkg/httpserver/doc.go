// Package httpserver runs an http.Server with graceful shutdown and
// liveness/readiness probes.
//
// Run binds the listener first, so a bad address fails immediately with
// ErrStart, then serves until the context is cancelled or the process gets
// SIGINT/SIGTERM. Shutdown waits up to the configured timeout for in-flight
// requests and may be called any number of times.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.HealthCheckHandler(log, 2*time.Second,
//	    httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)},
//	))
//
//	if err := srv.Run(ctx, r); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
package httpserver
