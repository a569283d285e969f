// Package s3 exposes an S3 (or S3-compatible) bucket as a source for the
// stale-while-revalidate cache, built on aws-sdk-go-v2.
//
//	loader, err := s3.New(ctx, s3.Config{Bucket: "assets", Region: "eu-west-1"})
//	if err != nil {
//	    return err
//	}
//	objects := swr.New(swr.StringKey[string], loader.Load)
//
// The Cache-Control metadata stored with each object decides how long it is
// served without a refresh; objects without it use Config.DefaultMaxAge and
// Config.StaleWhileRevalidate. SDK errors are classified into the package's
// sentinel errors; missing objects yield ErrKeyNotFound, which matches
// swr.ErrNotFound.
package s3
