package blobstore

import (
	"context"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/zone42/glyphs/internal/cache"
	"github.com/zone42/glyphs/internal/resource"
)

// DefaultBlockSize is the cache granularity used when none is given.
const DefaultBlockSize = 64 << 10

// CachingStore adds an in-memory block cache in front of another Store.
//
// Blobs are assumed immutable once written, except the names passed as
// mutable, which always bypass the cache. Put and Delete through the
// CachingStore invalidate the affected blob.
type CachingStore struct {
	inner     Store
	cache     *cache.LRU
	blockSize int64
	mutable   map[string]struct{}
}

// NewCachingStore caches up to capacity bytes of inner in blocks of
// blockSize bytes (DefaultBlockSize if <= 0). rc may be nil.
func NewCachingStore(inner Store, capacity, blockSize int64, rc *resource.Controller, mutable ...string) *CachingStore {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	s := &CachingStore{
		inner:     inner,
		cache:     cache.NewLRU(capacity, rc),
		blockSize: blockSize,
		mutable:   make(map[string]struct{}, len(mutable)),
	}
	for _, name := range mutable {
		s.mutable[name] = struct{}{}
	}
	return s
}

// Stats returns the block cache hit and miss counts.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}

func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	if _, ok := s.mutable[name]; ok {
		return b, nil
	}
	return &cachingBlob{inner: b, cache: s.cache, name: name, blockSize: s.blockSize}, nil
}

func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.cache.InvalidatePath(name)
	return s.inner.Put(ctx, name, data)
}

func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.cache.InvalidatePath(name)
	return s.inner.Delete(ctx, name)
}

func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

type cachingBlob struct {
	inner     Blob
	cache     *cache.LRU
	name      string
	blockSize int64
}

func (b *cachingBlob) Close() error {
	return b.inner.Close()
}

func (b *cachingBlob) Size() int64 {
	return b.inner.Size()
}

func (b *cachingBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	size := b.Size()
	if off >= size {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	end := min(off+int64(len(p)), size)
	first := off / b.blockSize
	last := (end - 1) / b.blockSize

	blocks := make([][]byte, last-first+1)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(16)
	for blk := first; blk <= last; blk++ {
		key := cache.Key{Path: b.name, Block: blk}
		if data, ok := b.cache.Get(key); ok {
			blocks[blk-first] = data
			continue
		}
		g.Go(func() error {
			data, err := b.fetch(gctx, blk)
			if err != nil {
				return err
			}
			b.cache.Set(key, data)
			blocks[blk-first] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	n := 0
	for i, data := range blocks {
		blkStart := (first + int64(i)) * b.blockSize
		src := max(off-blkStart, 0)
		if src >= int64(len(data)) {
			break
		}
		n += copy(p[n:], data[src:])
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *cachingBlob) fetch(ctx context.Context, blk int64) ([]byte, error) {
	start := blk * b.blockSize
	buf := make([]byte, min(b.blockSize, b.Size()-start))

	n, err := b.inner.ReadAt(ctx, buf, start)
	if err != nil && !(errors.Is(err, io.EOF) && n == len(buf)) {
		return nil, err
	}
	return buf[:n], nil
}
