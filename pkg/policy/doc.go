// Package policy assigns freshness policies to cache keys from a YAML file.
//
// Loaders usually know how long their values stay valid (HTTP headers, Redis
// TTLs). A policy fills the gap for loads that report nothing, and can force
// a policy for key prefixes where the source cannot be trusted:
//
//	default:
//	  max_age: 30s
//	  stale_while_revalidate: 5m
//	rules:
//	  - prefix: /static/
//	    max_age: 24h
//	    stale_while_revalidate: 168h
//	    override: true
//	  - prefix: /api/
//	    max_age: 5s
//
// The longest matching prefix wins. Values implementing Uncacheable (an
// upstream response marked private or no-store) are never given the default;
// only an override rule can make them cacheable.
// Wrap applies the policy to any string-keyed loader:
//
//	p, err := policy.Load("policy.yaml")
//	if err != nil {
//	    return err
//	}
//	pages := swr.New(swr.StringKey[string], policy.Wrap(p, upstream.Load))
package policy
