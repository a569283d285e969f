package s3_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/swrcache/pkg/s3"
	"github.com/dmitrymomot/swrcache/pkg/swr"
)

// MockClient is a mock implementation of the Client interface
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*awss3.GetObjectOutput), args.Error(1)
}

func newLoader(t *testing.T, client s3.Client, mutate ...func(*s3.Config)) *s3.Loader {
	t.Helper()

	cfg := s3.Config{
		Bucket:               "assets",
		Region:               "us-east-1",
		KeyPrefix:            "cache/",
		DefaultMaxAge:        time.Minute,
		StaleWhileRevalidate: 5 * time.Minute,
		MaxObjectSize:        1024,
	}
	for _, m := range mutate {
		m(&cfg)
	}

	loader, err := s3.New(context.Background(), cfg, s3.WithClient(client))
	require.NoError(t, err)
	return loader
}

func objectOutput(body string) *awss3.GetObjectOutput {
	return &awss3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("text/plain"),
		ETag:          aws.String(`"abc"`),
		LastModified:  aws.Time(time.Unix(1_700_000_000, 0)),
	}
}

func matchKey(key string) any {
	return mock.MatchedBy(func(in *awss3.GetObjectInput) bool {
		return aws.ToString(in.Bucket) == "assets" && aws.ToString(in.Key) == key
	})
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := s3.New(context.Background(), s3.Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, s3.ErrInvalidConfig)

	_, err = s3.New(context.Background(), s3.Config{Bucket: "b"})
	assert.ErrorIs(t, err, s3.ErrInvalidConfig)
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("object with cache-control metadata", func(t *testing.T) {
		t.Parallel()
		client := new(MockClient)
		out := objectOutput("hello")
		out.CacheControl = aws.String("max-age=30, stale-while-revalidate=60")
		client.On("GetObject", mock.Anything, matchKey("cache/docs/a.txt"), mock.Anything).Return(out, nil).Once()

		res, err := newLoader(t, client).Load(context.Background(), "/docs/a.txt")
		require.NoError(t, err)
		assert.Equal(t, "docs/a.txt", res.Value.Key)
		assert.Equal(t, "hello", string(res.Value.Body))
		assert.Equal(t, "text/plain", res.Value.ContentType)
		assert.Equal(t, `"abc"`, res.Value.ETag)
		assert.Equal(t, time.Unix(1_700_000_000, 0), res.Value.LastModified)
		assert.Equal(t, swr.CacheControl{MaxAge: 30 * time.Second, StaleWhileRevalidate: time.Minute}, res.CacheControl)
		client.AssertExpectations(t)
	})

	t.Run("object without metadata uses defaults", func(t *testing.T) {
		t.Parallel()
		client := new(MockClient)
		client.On("GetObject", mock.Anything, matchKey("cache/b"), mock.Anything).Return(objectOutput("b"), nil)

		res, err := newLoader(t, client).Load(context.Background(), "b")
		require.NoError(t, err)
		assert.Equal(t, swr.CacheControl{MaxAge: time.Minute, StaleWhileRevalidate: 5 * time.Minute}, res.CacheControl)
	})

	t.Run("invalid keys never reach S3", func(t *testing.T) {
		t.Parallel()
		client := new(MockClient)
		loader := newLoader(t, client)

		for _, key := range []string{"", "/", "../secret", "a/../../b"} {
			_, err := loader.Load(context.Background(), key)
			assert.ErrorIs(t, err, s3.ErrInvalidKey, key)
		}
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("object too large", func(t *testing.T) {
		t.Parallel()
		client := new(MockClient)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(objectOutput(strings.Repeat("x", 2048)), nil)

		_, err := newLoader(t, client).Load(context.Background(), "big")
		assert.ErrorIs(t, err, s3.ErrObjectTooLarge)
	})

	t.Run("unknown content length is still bounded", func(t *testing.T) {
		t.Parallel()
		client := new(MockClient)
		out := objectOutput(strings.Repeat("x", 2048))
		out.ContentLength = nil
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(out, nil)

		_, err := newLoader(t, client).Load(context.Background(), "big")
		assert.ErrorIs(t, err, s3.ErrObjectTooLarge)
	})
}

func TestLoader_Load_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		want     error
		notFound bool
	}{
		{name: "typed no such key", err: &types.NoSuchKey{}, want: s3.ErrKeyNotFound, notFound: true},
		{name: "api no such key", err: &smithy.GenericAPIError{Code: "NoSuchKey"}, want: s3.ErrKeyNotFound, notFound: true},
		{name: "typed no such bucket", err: &types.NoSuchBucket{}, want: s3.ErrBucketNotFound},
		{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDenied"}, want: s3.ErrAccessDenied},
		{name: "throttled", err: &smithy.GenericAPIError{Code: "SlowDown"}, want: s3.ErrServiceUnavailable},
		{name: "request timeout", err: &smithy.GenericAPIError{Code: "RequestTimeout"}, want: s3.ErrRequestTimeout},
		{name: "archived object", err: &smithy.GenericAPIError{Code: "InvalidObjectState"}, want: s3.ErrInvalidObjectState},
		{name: "deadline", err: context.DeadlineExceeded, want: s3.ErrOperationTimeout},
		{name: "canceled", err: context.Canceled, want: s3.ErrOperationCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := new(MockClient)
			client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			_, err := newLoader(t, client).Load(context.Background(), "k")
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.notFound, errors.Is(err, swr.ErrNotFound))
		})
	}

	t.Run("unknown api error keeps the cause", func(t *testing.T) {
		t.Parallel()
		cause := &smithy.GenericAPIError{Code: "Weird"}
		client := new(MockClient)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, cause)

		_, err := newLoader(t, client).Load(context.Background(), "k")
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "Weird")
	})
}
