package glyphs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zone42/glyphs/lattice"
)

type mockCollector struct {
	mock.Mock
}

func (m *mockCollector) RecordEncode(d time.Duration) { m.Called(d) }

func (m *mockCollector) RecordDecode(length, missing int, d time.Duration) {
	m.Called(length, missing, d)
}

func (m *mockCollector) RecordExtract(d time.Duration, err error) { m.Called(d, err) }

func (m *mockCollector) RecordBatch(count int, d time.Duration, err error) {
	m.Called(count, d, err)
}

func TestMetrics_MockCollector(t *testing.T) {
	mc := &mockCollector{}
	mc.On("RecordEncode", mock.AnythingOfType("time.Duration")).Return()
	mc.On("RecordDecode", 3, 1, mock.AnythingOfType("time.Duration")).Return()
	mc.On("RecordExtract", mock.AnythingOfType("time.Duration"), mock.MatchedBy(func(err error) bool {
		return errors.Is(err, ErrMalformedInput)
	})).Return()

	enc, err := New(WithMetricsCollector(mc))
	require.NoError(t, err)
	ctx := context.Background()

	enc.Encode(ctx, Triple{Godel: 1})
	enc.Decode(ctx, lattice.Sequence{"🌑", "?", "🌒"})
	_, err = enc.EncodeText(ctx, "nothing here")
	require.Error(t, err)

	mc.AssertExpectations(t)
	mc.AssertNumberOfCalls(t, "RecordEncode", 1)
}

func TestMetrics_BasicCollector(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	enc, err := New(WithMetricsCollector(metrics))
	require.NoError(t, err)
	ctx := context.Background()

	for i := range 5 {
		enc.Encode(ctx, Triple{Godel: uint64(i)})
	}
	enc.DecodeString(ctx, "🌑x🌒y")
	_, _ = enc.EncodeText(ctx, `zone42:godelNumber "1" zone42:curveIndex "2" zone42:frequencyBand "3"`)
	_, _ = enc.EncodeText(ctx, `zone42:godelNumber "1"`)
	_, err = enc.EncodeBatch(ctx, []Triple{{Godel: 1}, {Godel: 2}})
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(5+1+2), stats.EncodeCount)
	assert.Equal(t, int64(1), stats.DecodeCount)
	assert.Equal(t, int64(4), stats.DecodeSymbols)
	assert.Equal(t, int64(2), stats.DecodeMissing)
	assert.Equal(t, int64(2), stats.ExtractCount)
	assert.Equal(t, int64(1), stats.ExtractErrors)
	assert.Equal(t, int64(1), stats.BatchCount)
	assert.Equal(t, int64(2), stats.BatchItems)
	assert.Equal(t, int64(0), stats.BatchErrors)
	assert.GreaterOrEqual(t, stats.EncodeAvgNanos, int64(0))
}

func TestMetrics_EmptyStats(t *testing.T) {
	stats := (&BasicMetricsCollector{}).GetStats()
	assert.Equal(t, BasicMetricsStats{}, stats)
}

func TestWithMetricsCollector_Nil(t *testing.T) {
	enc, err := New(WithMetricsCollector(nil))
	require.NoError(t, err)
	assert.NotPanics(t, func() { enc.Encode(context.Background(), Triple{}) })
}
