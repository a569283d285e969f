// Package requestid correlates log records and upstream calls with the HTTP
// request that caused them.
//
// Middleware assigns every request an ID (reusing a valid incoming
// X-Request-ID header, otherwise a fresh UUID) and stores it in the request
// context. Cache loads keep the values of the context that triggered them, so
// the origin loader forwards the ID upstream and LoggerExtractor attaches it
// to log records written with the *Context slog methods.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
package requestid
