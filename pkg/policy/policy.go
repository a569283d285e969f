package policy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/swrcache/pkg/swr"
)

// Directives is a freshness policy as written in the file. Durations use
// time.ParseDuration syntax ("30s", "5m", "1h").
type Directives struct {
	MaxAge               time.Duration `yaml:"max_age"`
	StaleWhileRevalidate time.Duration `yaml:"stale_while_revalidate"`
}

func (d Directives) cacheControl() swr.CacheControl {
	return swr.CacheControl{MaxAge: d.MaxAge, StaleWhileRevalidate: d.StaleWhileRevalidate}
}

// Rule applies to keys starting with Prefix. Without Override the rule only
// fills in loads that came back without a policy of their own.
type Rule struct {
	Prefix     string `yaml:"prefix"`
	Directives `yaml:",inline"`
	Override   bool `yaml:"override"`
}

// Policy maps cache keys to freshness policies. It is immutable once parsed.
type Policy struct {
	Default Directives `yaml:"default"`
	Rules   []Rule     `yaml:"rules"`
}

// Load reads and parses a policy file.
func Load(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	return Parse(data)
}

// Parse decodes a YAML policy. Unknown fields are rejected so that typos do
// not silently fall back to the default.
func Parse(data []byte) (*Policy, error) {
	p := &Policy{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	// Longest prefix first, so Resolve can stop at the first match.
	sort.SliceStable(p.Rules, func(i, j int) bool {
		return len(p.Rules[i].Prefix) > len(p.Rules[j].Prefix)
	})
	return p, nil
}

func (p *Policy) validate() error {
	if err := validateDirectives(p.Default); err != nil {
		return fmt.Errorf("%w: default: %w", ErrInvalidPolicy, err)
	}
	seen := make(map[string]struct{}, len(p.Rules))
	for i, r := range p.Rules {
		if r.Prefix == "" {
			return fmt.Errorf("%w: rule %d: prefix is required", ErrInvalidPolicy, i)
		}
		if _, dup := seen[r.Prefix]; dup {
			return fmt.Errorf("%w: rule %d: duplicate prefix %q", ErrInvalidPolicy, i, r.Prefix)
		}
		seen[r.Prefix] = struct{}{}
		if err := validateDirectives(r.Directives); err != nil {
			return fmt.Errorf("%w: rule %q: %w", ErrInvalidPolicy, r.Prefix, err)
		}
	}
	return nil
}

func validateDirectives(d Directives) error {
	if d.MaxAge < 0 {
		return errors.New("max_age must not be negative")
	}
	if d.StaleWhileRevalidate < 0 {
		return errors.New("stale_while_revalidate must not be negative")
	}
	return nil
}

// Resolve returns the policy for key and whether it overrides the policy a
// loader reports. Keys matching no rule get the default, which never overrides.
func (p *Policy) Resolve(key string) (swr.CacheControl, bool) {
	for _, r := range p.Rules {
		if strings.HasPrefix(key, r.Prefix) {
			return r.cacheControl(), r.Override
		}
	}
	return p.Default.cacheControl(), false
}

// Uncacheable is implemented by loaded values whose source forbids shared
// caching, such as *origin.Response for private or no-store responses.
type Uncacheable interface {
	Uncacheable() bool
}

// Apply returns the policy a load of key with loader-reported cc should be cached under.
func (p *Policy) Apply(key string, cc swr.CacheControl) swr.CacheControl {
	return p.apply(key, cc, false)
}

// apply keeps the zero policy of a forbidden value unless the rule overrides.
func (p *Policy) apply(key string, cc swr.CacheControl, forbidden bool) swr.CacheControl {
	resolved, override := p.Resolve(key)
	switch {
	case override:
		return resolved
	case forbidden:
		return cc
	case cc.IsZero():
		return resolved
	}
	return cc
}

// Wrap returns a loader that passes its results through p.Apply. Values
// reporting Uncacheable keep the policy their loader gave them unless a rule
// with override matches.
func Wrap[V any](p *Policy, next swr.Loader[string, V]) swr.Loader[string, V] {
	return func(ctx context.Context, key string) (swr.Result[V], error) {
		res, err := next(ctx, key)
		if err != nil {
			return res, err
		}
		u, ok := any(res.Value).(Uncacheable)
		res.CacheControl = p.apply(key, res.CacheControl, ok && u.Uncacheable())
		return res, nil
	}
}
