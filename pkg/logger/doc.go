// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// New creates a *slog.Logger configured by Option functions:
//
//   - WithEnvironment – development (text, debug) or staging/production (JSON, info) defaults.
//   - WithFormat / WithTextFormatter / WithJSONFormatter – override output format.
//   - WithLevel – set a custom slog.Level; ParseLevel turns config strings into levels.
//   - WithAttr – attach static attributes.
//   - WithContextExtractors / WithContextValue – inject attributes from context,
//     for example the request id set by the requestid middleware.
//
// Attribute helpers keep key names consistent across packages: Error,
// Component, Duration, RequestID, and the cache-specific CacheKey,
// Freshness and Source.
//
// Discard returns a logger that drops everything; packages such as swr and
// httpserver use it until a real logger is supplied.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "swrproxy"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.WarnContext(ctx, "revalidation failed",
//	    logger.CacheKey(key),
//	    logger.Error(err),
//	)
//
// Error returns an empty attribute for a nil error, so it can be passed
// unconditionally.
package logger
