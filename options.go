package glyphs

import (
	"log/slog"

	"github.com/zone42/glyphs/annotation"
	"github.com/zone42/glyphs/codec"
)

// URLConfig holds the endpoints annotated onto every Record.
type URLConfig struct {
	// DisplayBase is the endpoint that renders a glyph string.
	DisplayBase string
	// DisplayParam is the query parameter carrying the glyph string.
	DisplayParam string
	// CatalogBase is the catalog endpoint; the curve index is appended as a
	// path segment.
	CatalogBase string
}

// DefaultURLConfig is used unless WithURLConfig is given.
var DefaultURLConfig = URLConfig{
	DisplayBase:  "https://zone42.dev/glyphs",
	DisplayParam: "seq",
	CatalogBase:  "https://www.lmfdb.org/EllipticCurve/Q",
}

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	urls             URLConfig
	vocabulary       annotation.Vocabulary
	codec            codec.Codec
	workers          int
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		urls:             DefaultURLConfig,
		vocabulary:       annotation.DefaultVocabulary,
		codec:            codec.Default,
		workers:          4,
	}
}

// Option configures an Encoder.
type Option func(*options)

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := glyphs.NewJSONLogger(slog.LevelDebug)
//	enc, _ := glyphs.New(glyphs.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &glyphs.BasicMetricsCollector{}
//	enc, _ := glyphs.New(glyphs.WithMetricsCollector(metrics))
//	// ... use enc ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithURLConfig overrides the display and catalog endpoints.
// Empty fields keep their defaults.
func WithURLConfig(cfg URLConfig) Option {
	return func(o *options) {
		if cfg.DisplayBase != "" {
			o.urls.DisplayBase = cfg.DisplayBase
		}
		if cfg.DisplayParam != "" {
			o.urls.DisplayParam = cfg.DisplayParam
		}
		if cfg.CatalogBase != "" {
			o.urls.CatalogBase = cfg.CatalogBase
		}
	}
}

// WithVocabulary sets the annotation vocabulary. Its prefix is also the
// prefix EncodeText extracts fields under.
func WithVocabulary(v annotation.Vocabulary) Option {
	return func(o *options) {
		o.vocabulary = v
	}
}

// WithCodec configures the codec used by MarshalAnnotation.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithWorkers bounds the number of goroutines EncodeBatch uses.
// Values below 1 select 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}
