package glyphs

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see examples/observability).
type MetricsCollector interface {
	// RecordEncode is called after each forward transform.
	RecordEncode(duration time.Duration)

	// RecordDecode is called after each reverse transform.
	// length is the sequence length, missing the number of symbols that were
	// not part of the alphabet.
	RecordDecode(length, missing int, duration time.Duration)

	// RecordExtract is called after each field extraction.
	// err is nil if successful.
	RecordExtract(duration time.Duration, err error)

	// RecordBatch is called after each batch encode.
	RecordBatch(count int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEncode(time.Duration)            {}
func (NoopMetricsCollector) RecordDecode(int, int, time.Duration)  {}
func (NoopMetricsCollector) RecordExtract(time.Duration, error)    {}
func (NoopMetricsCollector) RecordBatch(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EncodeCount      atomic.Int64
	EncodeTotalNanos atomic.Int64
	DecodeCount      atomic.Int64
	DecodeSymbols    atomic.Int64
	DecodeMissing    atomic.Int64
	DecodeTotalNanos atomic.Int64
	ExtractCount     atomic.Int64
	ExtractErrors    atomic.Int64
	BatchCount       atomic.Int64
	BatchItems       atomic.Int64
	BatchErrors      atomic.Int64
}

// RecordEncode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEncode(duration time.Duration) {
	b.EncodeCount.Add(1)
	b.EncodeTotalNanos.Add(duration.Nanoseconds())
}

// RecordDecode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecode(length, missing int, duration time.Duration) {
	b.DecodeCount.Add(1)
	b.DecodeSymbols.Add(int64(length))
	b.DecodeMissing.Add(int64(missing))
	b.DecodeTotalNanos.Add(duration.Nanoseconds())
}

// RecordExtract implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExtract(_ time.Duration, err error) {
	b.ExtractCount.Add(1)
	if err != nil {
		b.ExtractErrors.Add(1)
	}
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(count int, _ time.Duration, err error) {
	b.BatchCount.Add(1)
	b.BatchItems.Add(int64(count))
	if err != nil {
		b.BatchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EncodeCount:    b.EncodeCount.Load(),
		EncodeAvgNanos: avg(b.EncodeTotalNanos.Load(), b.EncodeCount.Load()),
		DecodeCount:    b.DecodeCount.Load(),
		DecodeSymbols:  b.DecodeSymbols.Load(),
		DecodeMissing:  b.DecodeMissing.Load(),
		DecodeAvgNanos: avg(b.DecodeTotalNanos.Load(), b.DecodeCount.Load()),
		ExtractCount:   b.ExtractCount.Load(),
		ExtractErrors:  b.ExtractErrors.Load(),
		BatchCount:     b.BatchCount.Load(),
		BatchItems:     b.BatchItems.Load(),
		BatchErrors:    b.BatchErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EncodeCount    int64
	EncodeAvgNanos int64
	DecodeCount    int64
	DecodeSymbols  int64
	DecodeMissing  int64
	DecodeAvgNanos int64
	ExtractCount   int64
	ExtractErrors  int64
	BatchCount     int64
	BatchItems     int64
	BatchErrors    int64
}
