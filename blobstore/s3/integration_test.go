package s3

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zone42/glyphs/blobstore"
)

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()
	store, err := New(ctx, bucket, WithPrefix(fmt.Sprintf("test-glyphs-%d/", time.Now().UnixNano())))
	require.NoError(t, err)

	data := make([]byte, 64*1024)
	_, _ = rand.Read(data)

	require.NoError(t, store.Put(ctx, "shard.bin", data))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "shard.bin")

	got, err := blobstore.ReadAll(ctx, store, "shard.bin")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Delete(ctx, "shard.bin"))
	_, err = store.Open(ctx, "shard.bin")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
