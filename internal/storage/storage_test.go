package storage

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseS3Location(t *testing.T) {
	bucket, key, err := ParseS3Location("s3://my-bucket/path/to/data.csv")
	require.NoError(t, err)
	assert.Equal(t, "my-bucket", bucket)
	assert.Equal(t, "path/to/data.csv", key)
}

func TestParseS3LocationErrors(t *testing.T) {
	for _, location := range []string{
		"https://my-bucket/key",
		"s3://",
		"s3://bucket-only",
		"s3:///missing-bucket",
	} {
		_, _, err := ParseS3Location(location)
		assert.Error(t, err, "location %q", location)
	}
}

func TestLocalObjectStoreRoundTrip(t *testing.T) {
	store, err := NewLocalObjectStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	content := []byte("feature,target\n1,2\n")

	require.NoError(t, store.PutObject(ctx, "bucket", "nested/key.csv", bytes.NewReader(content)))

	body, err := store.GetObject(ctx, "bucket", "nested/key.csv")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestLocalObjectStoreNotFound(t *testing.T) {
	store, err := NewLocalObjectStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.GetObject(context.Background(), "bucket", "missing")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalObjectStoreOverwrite(t *testing.T) {
	store, err := NewLocalObjectStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.PutObject(ctx, "bucket", "key", bytes.NewReader([]byte("first"))))
	require.NoError(t, store.PutObject(ctx, "bucket", "key", bytes.NewReader([]byte("second"))))

	body, err := store.GetObject(ctx, "bucket", "key")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}
