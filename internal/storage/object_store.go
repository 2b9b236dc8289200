package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by GetObject when the key does not exist in
// the bucket.
var ErrObjectNotFound = errors.New("object not found")

type ObjectStore interface {
	CreateBucket(ctx context.Context, bucket string) error

	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)

	PutObject(ctx context.Context, bucket, key string, data io.Reader) error
}
