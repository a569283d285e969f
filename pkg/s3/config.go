package s3

import "time"

// Config describes the bucket objects are loaded from.
type Config struct {
	Bucket         string `env:"S3_BUCKET"`
	Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`         // for S3-compatible services
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE"` // MinIO and friends
	KeyPrefix      string `env:"S3_KEY_PREFIX"`

	// Used for objects stored without Cache-Control metadata.
	DefaultMaxAge        time.Duration `env:"S3_DEFAULT_MAX_AGE" envDefault:"1m"`
	StaleWhileRevalidate time.Duration `env:"S3_STALE_WHILE_REVALIDATE" envDefault:"5m"`
	MaxObjectSize        int64         `env:"S3_MAX_OBJECT_SIZE" envDefault:"10485760"`
	RequestTimeout       time.Duration `env:"S3_REQUEST_TIMEOUT" envDefault:"30s"`
}
