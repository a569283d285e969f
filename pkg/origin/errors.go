package origin

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/swrcache/pkg/swr"
)

// Errors returned by Load. Details are wrapped with fmt.Errorf("%w") so the
// identities below stay matchable with errors.Is.
var (
	ErrInvalidBaseURL = errors.New("origin: invalid base URL")
	ErrInvalidPath    = errors.New("origin: invalid request path")
	ErrUpstreamStatus = errors.New("origin: unexpected upstream status")
	ErrRequestFailed  = errors.New("origin: request failed")
	ErrTimeout        = errors.New("origin: request timeout")
	ErrBodyTooLarge   = errors.New("origin: response body too large")
	ErrCircuitOpen    = errors.New("origin: circuit breaker is open")

	// ErrKeyNotFound is returned together with ErrUpstreamStatus for 404 and 410 responses.
	ErrKeyNotFound = fmt.Errorf("origin: %w", swr.ErrNotFound)
)
