package blobstore

import (
	"bytes"
	"context"
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore counts the bytes read from its blobs.
type countingStore struct {
	*MemoryStore
	reads     atomic.Int64
	readBytes atomic.Int64
}

type countingBlob struct {
	Blob
	s *countingStore
}

func (s *countingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.MemoryStore.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &countingBlob{Blob: b, s: s}, nil
}

func (b *countingBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	n, err := b.Blob.ReadAt(ctx, p, off)
	b.s.reads.Add(1)
	b.s.readBytes.Add(int64(n))
	return n, err
}

func TestCachingStore_ConcurrentBlockFetch(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{MemoryStore: NewMemoryStore()}
	data := bytes.Repeat([]byte("abcdefgh"), 128)
	require.NoError(t, inner.Put(ctx, "shard", data))

	s := NewCachingStore(inner, 1<<20, 16, nil)
	b, err := s.Open(ctx, "shard")
	require.NoError(t, err)

	buf := make([]byte, len(data))
	n, err := b.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, data, buf)
	assert.Equal(t, int64(len(data)/16), inner.reads.Load())
	assert.Equal(t, int64(len(data)), inner.readBytes.Load())

	_, err = b.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)/16), inner.reads.Load())
}

func TestCachingStore_ReadAt(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{MemoryStore: NewMemoryStore()}
	data := bytes.Repeat([]byte("0123456789"), 10)
	require.NoError(t, inner.Put(ctx, "shard", data))

	s := NewCachingStore(inner, 1024, 16, nil)

	b, err := s.Open(ctx, "shard")
	require.NoError(t, err)
	assert.Equal(t, int64(100), b.Size())

	buf := make([]byte, 20)
	n, err := b.ReadAt(ctx, buf, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
	assert.Equal(t, data[10:30], buf)
	assert.Equal(t, int64(2), inner.reads.Load()) // blocks 0 and 1

	n, err = b.ReadAt(ctx, buf, 12)
	require.NoError(t, err)
	assert.Equal(t, data[12:32], buf[:n])
	assert.Equal(t, int64(2), inner.reads.Load())

	// Tail read crosses the end of the blob.
	n, err = b.ReadAt(ctx, buf, 90)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 10, n)
	assert.Equal(t, data[90:], buf[:n])

	_, err = b.ReadAt(ctx, buf, 100)
	assert.ErrorIs(t, err, io.EOF)

	hits, misses := s.Stats()
	assert.Positive(t, hits)
	assert.Positive(t, misses)
}

func TestCachingStore_ReadAll(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	data := bytes.Repeat([]byte("glyph"), 1000)
	require.NoError(t, inner.Put(ctx, "shard", data))

	s := NewCachingStore(inner, 1<<20, 256, nil)
	got, err := ReadAll(ctx, s, "shard")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestCachingStore_PutInvalidates(t *testing.T) {
	ctx := context.Background()
	s := NewCachingStore(NewMemoryStore(), 1024, 16, nil)

	require.NoError(t, s.Put(ctx, "a", []byte("first")))
	got, err := ReadAll(ctx, s, "a")
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	require.NoError(t, s.Put(ctx, "a", []byte("second")))
	got, err = ReadAll(ctx, s, "a")
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Open(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachingStore_MutableBypassesCache(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	s := NewCachingStore(inner, 1024, 16, nil, "CURRENT")

	require.NoError(t, s.Put(ctx, "CURRENT", []byte("MANIFEST-000001.json")))
	_, err := ReadAll(ctx, s, "CURRENT")
	require.NoError(t, err)

	// A write that bypasses the CachingStore is still visible.
	require.NoError(t, inner.Put(ctx, "CURRENT", []byte("MANIFEST-000002.json")))
	got, err := ReadAll(ctx, s, "CURRENT")
	require.NoError(t, err)
	assert.Equal(t, "MANIFEST-000002.json", string(got))

	_, misses := s.Stats()
	assert.Zero(t, misses)
}

func TestCachingStore_Conformance(t *testing.T) {
	testStore(t, NewCachingStore(NewMemoryStore(), 1<<20, 8, nil))
}
