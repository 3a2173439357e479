package archive

import (
	"errors"
	"log/slog"

	"github.com/zone42/glyphs"
	"github.com/zone42/glyphs/annotation"
	"github.com/zone42/glyphs/codec"
	"github.com/zone42/glyphs/internal/compress"
)

var (
	// ErrEmptyShard is returned when a zone has no shard in the archive.
	ErrEmptyShard = errors.New("archive: empty shard")
	// ErrUnknownCompression is returned when a manifest names a compression
	// this build cannot decode.
	ErrUnknownCompression = errors.New("archive: unknown compression")
	// ErrUnknownCodec is returned when a manifest names an unknown codec.
	ErrUnknownCodec = errors.New("archive: unknown codec")
)

// Entry is the stored form of an encoded record.
type Entry struct {
	Godel      uint64         `json:"godel"`
	Curve      uint64         `json:"curve"`
	Band       uint64         `json:"band"`
	Zone       int            `json:"zone"`
	Glyphs     string         `json:"glyphs"`
	Mixed      bool           `json:"mixed,omitempty"`
	Annotation map[string]any `json:"annotation,omitempty"`
}

// Triple returns the identifying triple of e.
func (e Entry) Triple() glyphs.Triple {
	return glyphs.Triple{Godel: e.Godel, Curve: e.Curve, Band: e.Band}
}

// NewEntry flattens r, annotating it with vocab.
func NewEntry(r glyphs.Record, vocab annotation.Vocabulary) Entry {
	return Entry{
		Godel:      r.Godel,
		Curve:      r.Curve,
		Band:       r.Band,
		Zone:       r.Zone,
		Glyphs:     r.Glyphs,
		Mixed:      r.Mixed,
		Annotation: vocab.Annotate(r.Shadow, r.Glyphs).Map(),
	}
}

// Options configures a Writer.
type Options struct {
	// Compression is applied to every shard payload.
	Compression compress.Type

	// Codec encodes entries and manifests.
	Codec codec.Codec

	// Vocabulary names the annotation terms of entries built by Add.
	Vocabulary annotation.Vocabulary

	// MaxConcurrentUploads bounds the shards uploaded at once.
	MaxConcurrentUploads int64

	// MemoryLimitBytes bounds the shard payload bytes held in flight.
	// 0 disables the limit.
	MemoryLimitBytes int64

	// IOLimitBytesPerSec throttles uploads. 0 disables throttling.
	IOLimitBytesPerSec int64

	// Logger receives shard flush events. nil discards them.
	Logger *slog.Logger
}

// DefaultOptions is the configuration used by NewWriter before optFns apply.
var DefaultOptions = Options{
	Compression:          compress.ZSTD,
	Codec:                codec.Default,
	Vocabulary:           annotation.DefaultVocabulary,
	MaxConcurrentUploads: 4,
}
