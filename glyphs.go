package glyphs

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/bits-and-blooms/bitset"

	"github.com/zone42/glyphs/annotation"
	"github.com/zone42/glyphs/extract"
	"github.com/zone42/glyphs/internal/primes"
	"github.com/zone42/glyphs/lattice"
	"github.com/zone42/glyphs/mixing"
	"github.com/zone42/glyphs/spectral"
	"github.com/zone42/glyphs/zone"
)

// DecodeModulus bounds the reconstructed godel number.
const DecodeModulus = 1_000_000

// Triple is the (identifier, curve index, frequency band) input of the
// forward transform.
type Triple struct {
	Godel uint64 `json:"godel"`
	Curve uint64 `json:"curve"`
	Band  uint64 `json:"band"`
}

// Record is the result of a forward transform.
type Record struct {
	Triple
	Shadow     spectral.Shadow
	Sequence   lattice.Sequence
	Glyphs     string
	DisplayURL string
	CatalogURL string
	Zone       int
	// Mixed is set when Sequence came from the mixing function.
	Mixed bool
}

// Decoded is the result of a reverse transform.
type Decoded struct {
	Triple
	// Indices holds the lattice index recovered for every position.
	Indices []uint64
	// Missing marks positions whose symbol is not in the alphabet.
	Missing *bitset.BitSet
}

// MissingCount returns the number of unknown symbols.
func (d Decoded) MissingCount() int {
	if d.Missing == nil {
		return 0
	}
	return int(d.Missing.Count())
}

// ForwardVector builds the eight values the canonical forward transform
// feeds into the lattice.
func ForwardVector(s spectral.Shadow) [8]uint64 {
	return [8]uint64{
		s.Godel,
		s.Curve,
		s.Band,
		s.ScaledEigenvalue(),
		s.ScaledSpectralParameter(),
		s.Fourier[0],
		s.Fourier[1],
		s.Fourier[2],
	}
}

// Reverse recovers an approximate triple from a symbol sequence. It never
// fails: unknown symbols count as 0 and are flagged in Missing. Positions
// past the prime table cycle through it again.
func Reverse(seq lattice.Sequence) Decoded {
	d := Decoded{
		Indices: make([]uint64, len(seq)),
		Missing: bitset.New(uint(len(seq))),
	}

	var sum uint64
	for i, sym := range seq {
		idx, ok := lattice.Index(sym)
		if !ok {
			d.Missing.Set(uint(i))
		}
		d.Indices[i] = idx
		sum = (sum + idx*primes.Cyclic(i)) % DecodeModulus
	}

	d.Godel = sum
	d.Curve = sum % zone.TotalCurves
	d.Band = d.Curve / zone.BandWidth
	return d
}

// Encoder runs the forward and reverse transforms with logging, metrics
// and URL annotation. It is safe for concurrent use.
type Encoder struct {
	opts      options
	display   *url.URL
	catalog   *url.URL
	extractor *extract.Extractor
}

// New creates an Encoder.
func New(optFns ...Option) (*Encoder, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	display, err := url.Parse(opts.urls.DisplayBase)
	if err != nil {
		return nil, &ErrInvalidURLConfig{Field: "DisplayBase", Value: opts.urls.DisplayBase, cause: err}
	}
	catalog, err := url.Parse(opts.urls.CatalogBase)
	if err != nil {
		return nil, &ErrInvalidURLConfig{Field: "CatalogBase", Value: opts.urls.CatalogBase, cause: err}
	}

	return &Encoder{
		opts:      opts,
		display:   display,
		catalog:   catalog,
		extractor: extract.New(opts.vocabulary.Prefix),
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(optFns ...Option) *Encoder {
	e, err := New(optFns...)
	if err != nil {
		panic(err)
	}
	return e
}

// Encode runs the canonical forward transform. It is deterministic: the same
// triple always yields the same Record.
func (e *Encoder) Encode(ctx context.Context, t Triple) Record {
	start := time.Now()

	s := spectral.Derive(t.Godel, t.Curve, t.Band)
	v := ForwardVector(s)
	r := e.record(t, s, lattice.Encode(v[:]))

	e.opts.metricsCollector.RecordEncode(time.Since(start))
	e.opts.logger.LogEncode(ctx, t, r.Glyphs)
	return r
}

// EncodeMixed runs the auxiliary forward transform, feeding the mixing
// function's vector into the lattice instead of the derived attributes.
func (e *Encoder) EncodeMixed(ctx context.Context, t Triple) Record {
	start := time.Now()

	s := spectral.Derive(t.Godel, t.Curve, t.Band)
	v := mixing.Mix(t.Godel, t.Curve, t.Band)
	r := e.record(t, s, lattice.Encode(v[:]))
	r.Mixed = true

	e.opts.metricsCollector.RecordEncode(time.Since(start))
	e.opts.logger.LogEncode(ctx, t, r.Glyphs)
	return r
}

func (e *Encoder) record(t Triple, s spectral.Shadow, seq lattice.Sequence) Record {
	glyphs := seq.String()
	return Record{
		Triple:     t,
		Shadow:     s,
		Sequence:   seq,
		Glyphs:     glyphs,
		DisplayURL: e.displayURL(glyphs),
		CatalogURL: e.catalogURL(t.Curve),
		Zone:       zone.Of(t.Curve),
	}
}

func (e *Encoder) displayURL(glyphs string) string {
	u := *e.display
	q := u.Query()
	q.Set(e.opts.urls.DisplayParam, glyphs)
	u.RawQuery = q.Encode()
	return u.String()
}

func (e *Encoder) catalogURL(curve uint64) string {
	return e.catalog.JoinPath(strconv.FormatUint(curve, 10)).String()
}

// Decode runs the reverse transform. See Reverse.
func (e *Encoder) Decode(ctx context.Context, seq lattice.Sequence) Decoded {
	start := time.Now()

	d := Reverse(seq)
	missing := d.MissingCount()

	e.opts.metricsCollector.RecordDecode(len(seq), missing, time.Since(start))
	e.opts.logger.LogDecode(ctx, len(seq), missing, d.Triple)
	return d
}

// DecodeString splits a concatenated glyph string and decodes it.
func (e *Encoder) DecodeString(ctx context.Context, s string) Decoded {
	return e.Decode(ctx, lattice.Split(s))
}

// Extract reads a triple out of text using the encoder's vocabulary prefix.
func (e *Encoder) Extract(ctx context.Context, text string) (Triple, error) {
	start := time.Now()

	res, err := e.extractor.Extract(text)
	t := Triple{Godel: res.Godel, Curve: res.Curve, Band: res.Band}

	e.opts.metricsCollector.RecordExtract(time.Since(start), err)
	e.opts.logger.LogExtract(ctx, t, err)
	if err != nil {
		return Triple{}, err
	}
	return t, nil
}

// EncodeText extracts a triple from text and encodes it. Extraction
// failures wrap ErrMalformedInput.
func (e *Encoder) EncodeText(ctx context.Context, text string) (Record, error) {
	t, err := e.Extract(ctx, text)
	if err != nil {
		return Record{}, fmt.Errorf("encode text: %w", err)
	}
	return e.Encode(ctx, t), nil
}

// Annotate builds the annotation block of a record.
func (e *Encoder) Annotate(r Record) annotation.Block {
	return e.opts.vocabulary.Annotate(r.Shadow, r.Glyphs)
}

// MarshalAnnotation serializes the annotation block of a record with the
// configured codec.
func (e *Encoder) MarshalAnnotation(r Record) ([]byte, error) {
	return annotation.Marshal(e.opts.codec, e.Annotate(r))
}

// Logger returns the configured logger.
func (e *Encoder) Logger() *Logger {
	return e.opts.logger
}
