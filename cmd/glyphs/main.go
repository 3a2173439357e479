// Command glyphs encodes spectral triples into glyph strings and back.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/zone42/glyphs"
	"github.com/zone42/glyphs/archive"
	"github.com/zone42/glyphs/blobstore"
	"github.com/zone42/glyphs/blobstore/minio"
	"github.com/zone42/glyphs/blobstore/s3"
	"github.com/zone42/glyphs/codec"
	"github.com/zone42/glyphs/internal/compress"
	"github.com/zone42/glyphs/zone"
)

const version = "0.1.0"

const usage = `glyphs: spectral triples as lattice glyph strings

Usage:
  glyphs encode  -godel N -curve N -band N [-mixed] [-format json|text|rdfa]
  glyphs decode  <glyph-string>
  glyphs extract [-format json|text|rdfa] <file|->
  glyphs archive -from C0 -to C1 [-dir D | -s3 BUCKET [-ddb-table T] | -minio HOST:PORT] [-compression zstd]
  glyphs shard   -zone Z [-godel N] [-dir D | -s3 BUCKET | -minio HOST:PORT]
  glyphs version

Global flags (before the command):
  -v    debug logging

Environment:
  MINIO_ACCESS_KEY, MINIO_SECRET_KEY    credentials for -minio
`

func main() {
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := glyphs.NewTextLogger(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	enc, err := glyphs.New(glyphs.WithLogger(logger))
	if err != nil {
		fatalf("init: %v", err)
	}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "encode":
		err = runEncode(ctx, enc, args, os.Stdout)
	case "decode":
		err = runDecode(ctx, enc, args, os.Stdout)
	case "extract":
		err = runExtract(ctx, enc, args, os.Stdin, os.Stdout)
	case "archive":
		err = runArchive(ctx, enc, logger, args, os.Stdout)
	case "shard":
		err = runShard(ctx, args, os.Stdout)
	case "version":
		fmt.Printf("glyphs %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmd)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fatalf("%s: %v", cmd, err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// recordView is the JSON shape printed for an encoded record.
type recordView struct {
	glyphs.Triple
	Glyphs     string         `json:"glyphs"`
	Zone       int            `json:"zone"`
	Mixed      bool           `json:"mixed,omitempty"`
	DisplayURL string         `json:"display_url"`
	CatalogURL string         `json:"catalog_url"`
	Annotation map[string]any `json:"annotation"`
}

func printRecord(w io.Writer, enc *glyphs.Encoder, r glyphs.Record, format string) error {
	switch format {
	case "text":
		_, err := fmt.Fprintln(w, r.Glyphs)
		return err
	case "rdfa":
		_, err := fmt.Fprintln(w, enc.Annotate(r).RDFa())
		return err
	case "json", "":
		data, err := codec.Default.Marshal(recordView{
			Triple:     r.Triple,
			Glyphs:     r.Glyphs,
			Zone:       r.Zone,
			Mixed:      r.Mixed,
			DisplayURL: r.DisplayURL,
			CatalogURL: r.CatalogURL,
			Annotation: enc.Annotate(r).Map(),
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func runEncode(ctx context.Context, enc *glyphs.Encoder, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	godel := fs.Uint64("godel", 0, "identifier")
	curve := fs.Uint64("curve", 0, "curve index")
	band := fs.Uint64("band", 0, "frequency band")
	mixed := fs.Bool("mixed", false, "use the mixing function instead of the derived attributes")
	format := fs.String("format", "json", "output format: json, text, rdfa")
	if err := fs.Parse(args); err != nil {
		return err
	}

	t := glyphs.Triple{Godel: *godel, Curve: *curve, Band: *band}
	var r glyphs.Record
	if *mixed {
		r = enc.EncodeMixed(ctx, t)
	} else {
		r = enc.Encode(ctx, t)
	}
	return printRecord(w, enc, r, *format)
}

type decodeView struct {
	glyphs.Triple
	Indices []uint64 `json:"indices"`
	Missing []uint   `json:"missing,omitempty"`
}

func runDecode(ctx context.Context, enc *glyphs.Encoder, args []string, w io.Writer) error {
	if len(args) == 0 {
		return errors.New("missing glyph string")
	}

	d := enc.DecodeString(ctx, strings.Join(args, ""))
	view := decodeView{Triple: d.Triple, Indices: d.Indices}
	if d.Missing != nil {
		for i, ok := d.Missing.NextSet(0); ok; i, ok = d.Missing.NextSet(i + 1) {
			view.Missing = append(view.Missing, i)
		}
	}

	data, err := codec.Default.Marshal(view)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func runExtract(ctx context.Context, enc *glyphs.Encoder, args []string, stdin io.Reader, w io.Writer) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	format := fs.String("format", "json", "output format: json, text, rdfa")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("expected exactly one input file")
	}

	var (
		text []byte
		err  error
	)
	if name := fs.Arg(0); name == "-" {
		text, err = io.ReadAll(stdin)
	} else {
		text, err = os.ReadFile(name)
	}
	if err != nil {
		return err
	}

	r, err := enc.EncodeText(ctx, string(text))
	if err != nil {
		return err
	}
	return printRecord(w, enc, r, *format)
}

func runArchive(ctx context.Context, enc *glyphs.Encoder, logger *glyphs.Logger, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("archive", flag.ContinueOnError)
	sf := addStoreFlags(fs)
	from := fs.Uint64("from", 0, "first curve index")
	to := fs.Uint64("to", zone.TotalCurves, "curve index to stop before")
	compression := fs.String("compression", "zstd", "shard compression: none, lz4, zstd")
	uploads := fs.Int64("uploads", 4, "concurrent uploads")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *from >= *to {
		return fmt.Errorf("empty curve range [%d, %d)", *from, *to)
	}

	ct, err := compress.Parse(*compression)
	if err != nil {
		return err
	}

	store, err := sf.open(ctx)
	if err != nil {
		return err
	}

	triples := make([]glyphs.Triple, 0, *to-*from)
	for c := *from; c < *to; c++ {
		godel, curve, band := zone.TripleForCurve(c)
		triples = append(triples, glyphs.Triple{Godel: godel, Curve: curve, Band: band})
	}

	records, err := enc.EncodeBatch(ctx, triples)
	if err != nil {
		return err
	}

	aw := archive.NewWriter(store, func(o *archive.Options) {
		o.Compression = ct
		o.MaxConcurrentUploads = *uploads
		o.Logger = logger.Logger
	})
	for _, r := range records {
		aw.Add(r)
	}

	m, err := aw.Flush(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "generation %d: %d shards, %d entries\n", m.Generation, len(m.Shards), m.Entries())
	return err
}

// storeFlags selects the archive backend.
type storeFlags struct {
	dir, bucket, prefix, table, endpoint *string
}

func addStoreFlags(fs *flag.FlagSet) storeFlags {
	return storeFlags{
		dir:      fs.String("dir", "", "local archive directory"),
		bucket:   fs.String("s3", "", "S3 bucket (bucket name with -minio)"),
		prefix:   fs.String("prefix", "", "key prefix inside the bucket"),
		table:    fs.String("ddb-table", "", "DynamoDB table for the CURRENT pointer (with -s3)"),
		endpoint: fs.String("minio", "", "MinIO endpoint host:port"),
	}
}

func (f storeFlags) open(ctx context.Context) (blobstore.Store, error) {
	dir, bucket, prefix, endpoint := *f.dir, *f.bucket, *f.prefix, *f.endpoint
	switch {
	case dir != "":
		return blobstore.NewLocalStore(dir), nil
	case bucket != "" && endpoint == "":
		store, err := s3.New(ctx, bucket, s3.WithPrefix(prefix))
		if err != nil {
			return nil, err
		}
		if *f.table == "" {
			return store, nil
		}
		ddb, err := s3.NewDynamoDBClient(ctx)
		if err != nil {
			return nil, err
		}
		return s3.NewCommitStore(store, ddb, *f.table, "s3://"+bucket+"/"+prefix), nil
	case endpoint != "":
		if bucket == "" {
			bucket = "glyphs"
		}
		return minio.Dial(ctx, minio.Config{
			Endpoint:     endpoint,
			AccessKey:    os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey:    os.Getenv("MINIO_SECRET_KEY"),
			Bucket:       bucket,
			Prefix:       prefix,
			CreateBucket: true,
		})
	default:
		return nil, errors.New("a backend is required: -dir, -s3 or -minio")
	}
}

func runShard(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("shard", flag.ContinueOnError)
	sf := addStoreFlags(fs)
	z := fs.Int("zone", 0, "zone to read")
	godel := fs.Uint64("godel", 0, "only report whether this godel number is present")
	cacheBytes := fs.Int64("cache", 64<<20, "block cache size in bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := sf.open(ctx)
	if err != nil {
		return err
	}
	cached := blobstore.NewCachingStore(store, *cacheBytes, 0, nil, archive.CurrentName)

	r, err := archive.Open(ctx, cached)
	if err != nil {
		return err
	}

	godelSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "godel" {
			godelSet = true
		}
	})

	if godelSet {
		ok, err := r.Contains(ctx, *z, *godel)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, ok)
		return err
	}

	entries, err := r.Shard(ctx, *z)
	if err != nil {
		return err
	}
	for _, e := range entries {
		line, err := codec.Default.Marshal(e)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, string(line)); err != nil {
			return err
		}
	}
	return nil
}
