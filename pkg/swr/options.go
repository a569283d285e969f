package swr

import (
	"log/slog"

	"github.com/dmitrymomot/swrcache/pkg/logger"
)

type options struct {
	clock Clock
	log   *slog.Logger
}

func defaultOptions() *options {
	return &options{
		clock: SystemClock(),
		log:   logger.Discard(),
	}
}

// Option configures a Handle.
type Option func(*options)

// WithClock replaces the system clock. Nil clocks are ignored.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger used for background events such as failed
// revalidations and evictions. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}
