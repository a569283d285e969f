package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/swrcache/pkg/cachecontrol"
	"github.com/dmitrymomot/swrcache/pkg/swr"
)

// Client is the subset of *s3.Client used by Loader.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Object is a buffered S3 object.
type Object struct {
	Key          string
	Body         []byte
	ContentType  string
	ETag         string
	LastModified time.Time
}

// Loader reads objects from one bucket. It is safe for concurrent use.
type Loader struct {
	client         Client
	bucket         string
	prefix         string
	defaultCC      swr.CacheControl
	maxObjectSize  int64
	requestTimeout time.Duration
}

// New creates a Loader for cfg.Bucket.
func New(ctx context.Context, cfg Config, opts ...Option) (*Loader, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		if o.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(o.httpClient))
		}
		awsOptions = append(awsOptions, o.configOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}

		client = s3.NewFromConfig(awsConfig, func(so *s3.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
			for _, opt := range o.clientOptions {
				opt(so)
			}
		})
	}

	return &Loader{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.KeyPrefix,
		defaultCC: swr.CacheControl{
			MaxAge:               cfg.DefaultMaxAge,
			StaleWhileRevalidate: cfg.StaleWhileRevalidate,
		},
		maxObjectSize:  cfg.MaxObjectSize,
		requestTimeout: cfg.RequestTimeout,
	}, nil
}

// Load downloads the object stored under key. The freshness policy comes from
// the object's Cache-Control metadata, or the configured default when absent.
func (l *Loader) Load(ctx context.Context, key string) (swr.Result[*Object], error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "..") {
		return swr.Result[*Object]{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	if l.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.requestTimeout)
		defer cancel()
	}

	objectKey := l.prefix + key
	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return swr.Result[*Object]{}, classifyError(err, objectKey)
	}
	defer func() { _ = out.Body.Close() }()

	if l.maxObjectSize > 0 && aws.ToInt64(out.ContentLength) > l.maxObjectSize {
		return swr.Result[*Object]{}, fmt.Errorf("%w: %s is %d bytes", ErrObjectTooLarge, objectKey, aws.ToInt64(out.ContentLength))
	}

	var r io.Reader = out.Body
	if l.maxObjectSize > 0 {
		r = io.LimitReader(out.Body, l.maxObjectSize+1)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return swr.Result[*Object]{}, classifyError(err, objectKey)
	}
	if l.maxObjectSize > 0 && int64(len(body)) > l.maxObjectSize {
		return swr.Result[*Object]{}, fmt.Errorf("%w: %s", ErrObjectTooLarge, objectKey)
	}

	cc := l.defaultCC
	if h := aws.ToString(out.CacheControl); h != "" {
		cc = cachecontrol.Parse(h)
	}

	return swr.Result[*Object]{
		Value: &Object{
			Key:          key,
			Body:         body,
			ContentType:  aws.ToString(out.ContentType),
			ETag:         aws.ToString(out.ETag),
			LastModified: aws.ToTime(out.LastModified),
		},
		CacheControl: cc,
	}, nil
}

// classifyError maps SDK errors to the package's sentinel errors.
func classifyError(err error, key string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: get %s", ErrOperationTimeout, key)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: get %s", ErrOperationCanceled, key)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.ErrorCode(); code {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		case "NoSuchBucket":
			return ErrBucketNotFound
		case "AccessDenied":
			return fmt.Errorf("%w: get %s", ErrAccessDenied, key)
		case "RequestTimeout":
			return fmt.Errorf("%w: get %s", ErrRequestTimeout, key)
		case "SlowDown", "ServiceUnavailable":
			return fmt.Errorf("%w: get %s", ErrServiceUnavailable, key)
		case "InvalidObjectState":
			return fmt.Errorf("%w: get %s", ErrInvalidObjectState, key)
		default:
			return fmt.Errorf("get %s failed (code: %s): %w", key, code, err)
		}
	}

	return fmt.Errorf("get %s failed: %w", key, err)
}
