package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// entry memoizes the parse result of one configuration type.
type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	mu      sync.Mutex
	entries = map[reflect.Type]*entry{}

	dotenvOnce sync.Once
)

// LoadEnv loads variables from the given .env files (".env" when none are
// given) without overriding variables already set in the process.
// Missing files are an error here; Load ignores a missing default file.
func LoadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Load parses the environment into v using `env` struct tags.
//
// Each configuration type is parsed once per process; later calls copy the
// cached value. A failed parse is cached as well, so a broken environment
// fails the same way everywhere. The default .env file is loaded before the
// first parse if it exists.
//
//	type Config struct {
//		Addr  string        `env:"HTTP_ADDR" envDefault:":8080"`
//		TTL   time.Duration `env:"CACHE_TTL" envDefault:"30s"`
//		Redis redis.Config
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		// The default .env is optional.
		_ = godotenv.Load()
	})

	e := lookup(reflect.TypeFor[T]())
	e.once.Do(func() {
		var cfg T
		if err := env.Parse(&cfg); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = cfg
	})
	if e.err != nil {
		return e.err
	}

	*v = e.value.(T)
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset forgets every cached configuration, so the next Load parses the
// environment again. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	entries = map[reflect.Type]*entry{}
}

func lookup(t reflect.Type) *entry {
	mu.Lock()
	defer mu.Unlock()

	e, ok := entries[t]
	if !ok {
		e = &entry{}
		entries[t] = e
	}
	return e
}
