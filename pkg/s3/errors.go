package s3

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/swrcache/pkg/swr"
)

var (
	ErrInvalidConfig      = errors.New("s3: invalid configuration")
	ErrFailedToLoadConfig = errors.New("s3: failed to load AWS config")
	ErrInvalidKey         = errors.New("s3: invalid object key")
	ErrObjectTooLarge     = errors.New("s3: object exceeds maximum size")

	ErrBucketNotFound     = errors.New("s3: bucket not found")
	ErrAccessDenied       = errors.New("s3: access denied")
	ErrRequestTimeout     = errors.New("s3: request timed out")
	ErrServiceUnavailable = errors.New("s3: service temporarily unavailable")
	ErrInvalidObjectState = errors.New("s3: invalid object state")
	ErrOperationTimeout   = errors.New("s3: operation timed out")
	ErrOperationCanceled  = errors.New("s3: operation canceled")

	// ErrKeyNotFound is returned by Loader.Load for missing objects.
	ErrKeyNotFound = fmt.Errorf("s3: %w", swr.ErrNotFound)
)
