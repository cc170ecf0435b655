package minio

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/hupe1980/hvec/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelName(t *testing.T) {
	assert.Equal(t, "a.ppm", relName("frames/a.ppm", "frames/"))
	assert.Equal(t, "a.ppm", relName("frames/a.ppm", "frames"))
	assert.Equal(t, "x/a.ppm", relName("x/a.ppm", ""))
	assert.Equal(t, "", relName("frames-old/a.ppm", "frames"))
	assert.Equal(t, "", relName("framesa.ppm", "frames/"))
}

func TestStore_Key(t *testing.T) {
	for _, root := range []string{"frames", "frames/", "frames//"} {
		s := NewStore(nil, "bucket", root)
		assert.Equal(t, "frames/a.ppm", s.key("a.ppm"), root)
		assert.Equal(t, "frames/a/", s.key("a/"), root)
		assert.Equal(t, "frames/", s.key(""), root)
	}
	assert.Equal(t, "a.ppm", NewStore(nil, "bucket", "").key("a.ppm"))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("boom")))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/x-portable-pixmap", contentType("a.ppm"))
	assert.Equal(t, "application/zstd", contentType("a.ppm.zst"))
	assert.Equal(t, "application/x-lz4", contentType("a.ppm.lz4"))
	assert.Equal(t, "application/octet-stream", contentType("a.bin"))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}

	client, err := Dial(endpoint, "minioadmin", "minioadmin", false)
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	store := NewStore(client, "test-hvec", "test-prefix/")
	require.NoError(t, store.EnsureBucket(ctx))

	data := []byte("P6\n1 1\n255\n\x01\x02\x03")
	require.NoError(t, store.Put(ctx, "v.ppm", data))

	blob, err := store.Open(ctx, "v.ppm")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 2)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	assert.Equal(t, "P6", string(buf))

	rc, err := blob.ReadRange(ctx, 3, 3)
	require.NoError(t, err)
	part, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "1 1", string(part))
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "v.ppm")

	require.NoError(t, store.Delete(ctx, "v.ppm"))
	_, err = store.Open(ctx, "v.ppm")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	wb, err := store.Create(ctx, "stream.ppm")
	require.NoError(t, err)
	_, err = wb.Write(data)
	require.NoError(t, err)
	require.NoError(t, wb.Close())

	blob, err = store.Open(ctx, "stream.ppm")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), blob.Size())
	require.NoError(t, blob.Close())

	_ = store.Delete(ctx, "stream.ppm")
}
