package origin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrymomot/swrcache/pkg/cachecontrol"
	"github.com/dmitrymomot/swrcache/pkg/requestid"
	"github.com/dmitrymomot/swrcache/pkg/swr"
)

// Response is a buffered upstream response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	uncacheable bool
}

// Uncacheable reports whether the upstream marked the response private,
// no-store or no-cache.
func (r *Response) Uncacheable() bool {
	return r != nil && r.uncacheable
}

// Origin fetches resources from a single upstream HTTP server. Its Load method
// is an swr.Loader keyed by request path.
type Origin struct {
	base        *url.URL
	client      *http.Client
	timeout     time.Duration
	maxBodySize int64
	defaultCC   swr.CacheControl
	headers     http.Header
	breaker     *breaker
}

// New creates an Origin for baseURL, which must be an absolute http or https URL.
func New(baseURL string, opts ...Option) (*Origin, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidBaseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidBaseURL)
	}

	o := &Origin{
		base: u,
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		timeout:     defaultTimeout,
		maxBodySize: defaultMaxBodySize,
		headers:     http.Header{"User-Agent": []string{defaultUserAgent}},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// BreakerState reports the circuit breaker state. Without a breaker it is always closed.
func (o *Origin) BreakerState() BreakerState {
	if o.breaker == nil {
		return BreakerClosed
	}
	return o.breaker.current()
}

// Load performs a GET for target (a path with an optional query) relative to
// the base URL. 2xx responses are returned with the freshness policy from
// their Cache-Control header; everything else is an error.
func (o *Origin) Load(ctx context.Context, target string) (swr.Result[*Response], error) {
	u, err := o.resolve(target)
	if err != nil {
		return swr.Result[*Response]{}, err
	}

	if o.breaker != nil && !o.breaker.allow() {
		return swr.Result[*Response]{}, ErrCircuitOpen
	}

	resp, err := o.fetch(ctx, u)
	if o.breaker != nil {
		if countsAsFailure(resp, err) {
			o.breaker.failure()
		} else {
			o.breaker.success()
		}
	}
	if err != nil {
		return swr.Result[*Response]{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
			return swr.Result[*Response]{}, errors.Join(ErrKeyNotFound,
				fmt.Errorf("%w: %d for %s", ErrUpstreamStatus, resp.StatusCode, target))
		}
		return swr.Result[*Response]{}, fmt.Errorf("%w: %d for %s", ErrUpstreamStatus, resp.StatusCode, target)
	}

	cc := o.defaultCC
	if h := resp.Header.Get(cachecontrol.Header); h != "" {
		cc = cachecontrol.Parse(h)
		resp.uncacheable = cachecontrol.Uncacheable(h)
	}
	return swr.Result[*Response]{Value: resp, CacheControl: cc}, nil
}

func (o *Origin) resolve(target string) (*url.URL, error) {
	ref, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	if ref.IsAbs() || ref.Host != "" {
		return nil, fmt.Errorf("%w: %q must be relative to the origin", ErrInvalidPath, target)
	}

	u := o.base.JoinPath(ref.Path)
	u.RawQuery = ref.RawQuery
	return u, nil
}

func (o *Origin) fetch(ctx context.Context, u *url.URL) (*Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	for k, v := range o.headers {
		req.Header[k] = v
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, o.maxBodySize+1))
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: reading body: %w", ErrRequestFailed, err)
	}
	if int64(len(body)) > o.maxBodySize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, o.maxBodySize)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
	}, nil
}

// countsAsFailure treats transport errors and 5xx responses as upstream
// failures. 408 and 429 count too, as they signal an overloaded upstream.
func countsAsFailure(resp *Response, err error) bool {
	if err != nil {
		return !errors.Is(err, ErrBodyTooLarge) && !errors.Is(err, context.Canceled)
	}
	switch {
	case resp.StatusCode >= 500:
		return true
	case resp.StatusCode == http.StatusRequestTimeout, resp.StatusCode == http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}
