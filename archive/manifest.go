package archive

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/zone42/glyphs/blobstore"
	"github.com/zone42/glyphs/codec"
	"github.com/zone42/glyphs/internal/compress"
)

const (
	// CurrentName is the blob naming the live manifest.
	CurrentName = "CURRENT"
	// ManifestPrefix starts every manifest blob name.
	ManifestPrefix = "MANIFEST"
	// FormatVersion is the manifest layout written by this package.
	FormatVersion = 1
)

// Manifest describes one generation of an archive.
type Manifest struct {
	Version    int         `json:"version"`
	Generation uint64      `json:"generation"`
	Codec      string      `json:"codec"`
	CreatedAt  time.Time   `json:"created_at"`
	Shards     []ShardInfo `json:"shards"`
}

// ShardInfo describes a single zone shard.
type ShardInfo struct {
	Zone        int    `json:"zone"`
	Path        string `json:"path"`
	Index       string `json:"index"`
	Compression string `json:"compression"`
	Entries     int    `json:"entries"`
	RawSize     int64  `json:"raw_size"`
	StoredSize  int64  `json:"stored_size"`
}

// Shard returns the shard of zone z.
func (m *Manifest) Shard(z int) (ShardInfo, bool) {
	for _, s := range m.Shards {
		if s.Zone == z {
			return s, true
		}
	}
	return ShardInfo{}, false
}

// Entries returns the total number of entries across all shards.
func (m *Manifest) Entries() int {
	n := 0
	for _, s := range m.Shards {
		n += s.Entries
	}
	return n
}

func manifestName(gen uint64) string {
	return fmt.Sprintf("%s-%06d.json", ManifestPrefix, gen)
}

// loadManifest reads the manifest CURRENT points at. An archive without
// CURRENT yields an empty generation-0 manifest.
func loadManifest(ctx context.Context, store blobstore.Store, c codec.Codec) (*Manifest, error) {
	current, err := blobstore.ReadAll(ctx, store, CurrentName)
	if errors.Is(err, blobstore.ErrNotFound) {
		return &Manifest{Version: FormatVersion, Codec: c.Name()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", CurrentName, err)
	}

	data, err := blobstore.ReadAll(ctx, store, string(current))
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", current, err)
	}

	var m Manifest
	if err := c.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", current, err)
	}
	if m.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported manifest version: %d (expected %d)", m.Version, FormatVersion)
	}
	return &m, nil
}

// commitManifest writes m and then points CURRENT at it.
func commitManifest(ctx context.Context, store blobstore.Store, c codec.Codec, m *Manifest) error {
	sort.Slice(m.Shards, func(i, j int) bool { return m.Shards[i].Zone < m.Shards[j].Zone })

	data, err := c.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	name := manifestName(m.Generation)
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("write manifest %s: %w", name, err)
	}
	if err := store.Put(ctx, CurrentName, []byte(name)); err != nil {
		return fmt.Errorf("write %s: %w", CurrentName, err)
	}
	return nil
}

func parseCompression(name string) (compress.Type, error) {
	t, err := compress.Parse(name)
	if err != nil {
		return compress.None, fmt.Errorf("%w: %w", ErrUnknownCompression, err)
	}
	return t, nil
}
