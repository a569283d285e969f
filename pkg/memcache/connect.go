package memcache

import (
	"errors"

	"github.com/bradfitz/gomemcache/memcache"
)

// Connect creates a client for cfg.Addrs and verifies every server answers.
func Connect(cfg Config) (*memcache.Client, error) {
	if len(cfg.Addrs) == 0 {
		return nil, ErrNoServers
	}

	client := memcache.New(cfg.Addrs...)
	if cfg.Timeout > 0 {
		client.Timeout = cfg.Timeout
	}
	if cfg.MaxIdleConns > 0 {
		client.MaxIdleConns = cfg.MaxIdleConns
	}

	if err := client.Ping(); err != nil {
		return nil, errors.Join(ErrNotReady, err)
	}
	return client, nil
}

// Pinger is satisfied by *memcache.Client.
type Pinger interface {
	Ping() error
}

// Healthcheck returns a probe that pings every configured server.
func Healthcheck(client Pinger) func() error {
	return func() error {
		if err := client.Ping(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
