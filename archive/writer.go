package archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"golang.org/x/sync/errgroup"

	"github.com/zone42/glyphs"
	"github.com/zone42/glyphs/blobstore"
	"github.com/zone42/glyphs/internal/compress"
	"github.com/zone42/glyphs/internal/resource"
	"github.com/zone42/glyphs/zone"
)

// Writer buffers entries per zone and flushes them as a new generation.
// It is safe for concurrent use.
type Writer struct {
	store  blobstore.Store
	opts   Options
	rc     *resource.Controller
	logger *slog.Logger

	mu      sync.Mutex
	pending map[int][]Entry

	flushMu sync.Mutex
}

// NewWriter creates a Writer on store.
func NewWriter(store blobstore.Store, optFns ...func(o *Options)) *Writer {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = DefaultOptions.Codec
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Writer{
		store:  store,
		opts:   opts,
		logger: logger,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:   opts.MemoryLimitBytes,
			MaxUploads:         opts.MaxConcurrentUploads,
			IOLimitBytesPerSec: opts.IOLimitBytesPerSec,
		}),
		pending: make(map[int][]Entry),
	}
}

// Add buffers an encoded record.
func (w *Writer) Add(r glyphs.Record) {
	w.AddEntry(NewEntry(r, w.opts.Vocabulary))
}

// AddEntry buffers e under its zone. The zone is derived from the curve.
func (w *Writer) AddEntry(e Entry) {
	e.Zone = zone.Of(e.Curve)

	w.mu.Lock()
	w.pending[e.Zone] = append(w.pending[e.Zone], e)
	w.mu.Unlock()
}

// Pending returns the number of buffered entries.
func (w *Writer) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := 0
	for _, es := range w.pending {
		n += len(es)
	}
	return n
}

// Flush writes all buffered entries as a new generation and returns its
// manifest. With nothing buffered it returns the live manifest unchanged.
// On failure the entries stay buffered.
func (w *Writer) Flush(ctx context.Context) (*Manifest, error) {
	w.flushMu.Lock()
	defer w.flushMu.Unlock()

	w.mu.Lock()
	pending := w.pending
	w.pending = make(map[int][]Entry)
	w.mu.Unlock()

	prev, err := loadManifest(ctx, w.store, w.opts.Codec)
	if err != nil {
		w.restore(pending)
		return nil, err
	}
	if len(pending) == 0 {
		return prev, nil
	}

	start := time.Now()
	next := &Manifest{
		Version:    FormatVersion,
		Generation: prev.Generation + 1,
		Codec:      w.opts.Codec.Name(),
		CreatedAt:  start.UTC(),
	}

	zones := make([]int, 0, len(pending))
	for z := range pending {
		zones = append(zones, z)
	}
	sort.Ints(zones)

	shards := make([]ShardInfo, len(zones))

	g, gctx := errgroup.WithContext(ctx)
	for i, z := range zones {
		g.Go(func() error {
			info, err := w.flushZone(gctx, prev, next.Generation, z, pending[z])
			if err != nil {
				return fmt.Errorf("flush zone %d: %w", z, err)
			}
			shards[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		w.restore(pending)
		return nil, err
	}

	for _, s := range prev.Shards {
		if _, touched := pending[s.Zone]; !touched {
			next.Shards = append(next.Shards, s)
		}
	}
	next.Shards = append(next.Shards, shards...)

	if err := commitManifest(ctx, w.store, w.opts.Codec, next); err != nil {
		w.restore(pending)
		return nil, err
	}

	w.logger.Info("archive flushed",
		"generation", next.Generation,
		"shards", len(shards),
		"entries", next.Entries(),
		"duration", time.Since(start))
	return next, nil
}

func (w *Writer) restore(pending map[int][]Entry) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for z, es := range pending {
		w.pending[z] = append(es, w.pending[z]...)
	}
}

func (w *Writer) flushZone(ctx context.Context, prev *Manifest, gen uint64, z int, entries []Entry) (ShardInfo, error) {
	if old, ok := prev.Shard(z); ok {
		existing, err := readShard(ctx, w.store, w.opts.Codec, old)
		if err != nil {
			return ShardInfo{}, err
		}
		entries = append(existing, entries...)
	}

	var buf bytes.Buffer
	ids := roaring64.New()
	for _, e := range entries {
		line, err := w.opts.Codec.Marshal(e)
		if err != nil {
			return ShardInfo{}, fmt.Errorf("encode entry %d: %w", e.Godel, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
		ids.Add(e.Godel)
	}
	payload := buf.Bytes()

	if err := w.rc.AcquireMemory(ctx, int64(len(payload))); err != nil {
		return ShardInfo{}, err
	}
	defer w.rc.ReleaseMemory(int64(len(payload)))

	block, err := compress.Encode(payload, w.opts.Compression)
	if err != nil {
		return ShardInfo{}, fmt.Errorf("compress: %w", err)
	}

	ids.RunOptimize()
	index, err := ids.MarshalBinary()
	if err != nil {
		return ShardInfo{}, fmt.Errorf("encode index: %w", err)
	}

	suffix := fmt.Sprintf("-%06d", gen)
	info := ShardInfo{
		Zone:        z,
		Path:        zone.ShardName(z, suffix+".jsonl"),
		Index:       zone.ShardName(z, suffix+".idx"),
		Compression: w.opts.Compression.String(),
		Entries:     len(entries),
		RawSize:     int64(len(payload)),
		StoredSize:  int64(len(block)),
	}

	if err := w.upload(ctx, info.Path, block); err != nil {
		return ShardInfo{}, err
	}
	if err := w.upload(ctx, info.Index, index); err != nil {
		return ShardInfo{}, err
	}

	w.logger.Debug("shard written",
		"zone", z,
		"path", info.Path,
		"entries", info.Entries,
		"raw_size", info.RawSize,
		"stored_size", info.StoredSize)
	return info, nil
}

func (w *Writer) upload(ctx context.Context, name string, data []byte) error {
	if err := w.rc.AcquireUpload(ctx); err != nil {
		return err
	}
	defer w.rc.ReleaseUpload()

	if err := w.rc.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	if err := w.store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}
