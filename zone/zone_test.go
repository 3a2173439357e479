package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf(t *testing.T) {
	assert.Equal(t, 0, Of(0))
	assert.Equal(t, 4, Of(100))
	assert.Equal(t, 23, Of(4967))
	assert.Equal(t, 0, Of(24))
}

func TestRange(t *testing.T) {
	s, err := Range(1)
	require.NoError(t, err)
	assert.Equal(t, Span{Start: 207, End: 414, Count: 207}, s)

	last, err := Range(Count - 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(TotalCurves), last.End)

	for _, z := range []int{-1, Count, 100} {
		_, err := Range(z)
		assert.ErrorIs(t, err, ErrInvalidZone, "z=%d", z)
	}
}

func TestTripleForCurve(t *testing.T) {
	g, c, b := TripleForCurve(100)
	assert.Equal(t, uint64(1100), g)
	assert.Equal(t, uint64(100), c)
	assert.Equal(t, uint64(0), b)

	_, _, b = TripleForCurve(4967)
	assert.Equal(t, uint64(5), b)

	_, _, b = TripleForCurve(828)
	assert.Equal(t, uint64(1), b)
}

func TestShardName(t *testing.T) {
	assert.Equal(t, "ec_lattice_shard_7.jsonl", ShardName(7, ".jsonl"))
}
