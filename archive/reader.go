package archive

import (
	"bufio"
	"bytes"
	"context"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/zone42/glyphs/blobstore"
	"github.com/zone42/glyphs/codec"
	"github.com/zone42/glyphs/internal/compress"
	"github.com/zone42/glyphs/zone"
)

// Reader reads the generation that was live when it was opened.
type Reader struct {
	store    blobstore.Store
	manifest *Manifest
	codec    codec.Codec
}

// Open reads the live manifest of the archive in store.
// An archive that was never flushed opens as empty.
func Open(ctx context.Context, store blobstore.Store) (*Reader, error) {
	m, err := loadManifest(ctx, store, codec.Default)
	if err != nil {
		return nil, err
	}

	c, ok := codec.ByName(m.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, m.Codec)
	}
	return &Reader{store: store, manifest: m, codec: c}, nil
}

// Manifest returns the manifest the reader was opened on.
func (r *Reader) Manifest() *Manifest {
	return r.manifest
}

// Shard returns all entries of zone z in insertion order.
func (r *Reader) Shard(ctx context.Context, z int) ([]Entry, error) {
	info, err := r.shardInfo(z)
	if err != nil {
		return nil, err
	}
	return readShard(ctx, r.store, r.codec, info)
}

// Contains reports whether zone z holds an entry with the given godel
// number. Only the shard index is read.
func (r *Reader) Contains(ctx context.Context, z int, godel uint64) (bool, error) {
	ids, err := r.Index(ctx, z)
	if err != nil {
		return false, err
	}
	return ids.Contains(godel), nil
}

// Index returns the godel bitmap of zone z.
func (r *Reader) Index(ctx context.Context, z int) (*roaring64.Bitmap, error) {
	info, err := r.shardInfo(z)
	if err != nil {
		return nil, err
	}

	data, err := blobstore.ReadAll(ctx, r.store, info.Index)
	if err != nil {
		return nil, fmt.Errorf("read index %s: %w", info.Index, err)
	}

	ids := roaring64.New()
	if err := ids.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("decode index %s: %w", info.Index, err)
	}
	return ids, nil
}

func (r *Reader) shardInfo(z int) (ShardInfo, error) {
	if _, err := zone.Range(z); err != nil {
		return ShardInfo{}, err
	}
	info, ok := r.manifest.Shard(z)
	if !ok {
		return ShardInfo{}, fmt.Errorf("%w: zone %d", ErrEmptyShard, z)
	}
	return info, nil
}

func readShard(ctx context.Context, store blobstore.Store, c codec.Codec, info ShardInfo) ([]Entry, error) {
	t, err := parseCompression(info.Compression)
	if err != nil {
		return nil, err
	}

	block, err := blobstore.ReadAll(ctx, store, info.Path)
	if err != nil {
		return nil, fmt.Errorf("read shard %s: %w", info.Path, err)
	}

	payload, err := compress.Decode(block, t)
	if err != nil {
		return nil, fmt.Errorf("decompress shard %s: %w", info.Path, err)
	}

	entries := make([]Entry, 0, info.Entries)
	sc := bufio.NewScanner(bytes.NewReader(payload))
	sc.Buffer(make([]byte, 0, 64*1024), len(payload)+1)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := c.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("decode shard %s entry %d: %w", info.Path, len(entries), err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan shard %s: %w", info.Path, err)
	}
	return entries, nil
}
