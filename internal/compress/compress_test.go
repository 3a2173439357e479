package compress

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte(`{"godel":12345,"glyphs":"🌠🌱🌑🌱🔥🌠🌀💎"}`+"\n"), 200)
	random := make([]byte, 4096)
	_, _ = rand.Read(random)

	inputs := map[string][]byte{
		"compressible": compressible,
		"random":       random,
		"empty":        {},
	}

	for _, typ := range []Type{None, LZ4, ZSTD} {
		for name, data := range inputs {
			t.Run(typ.String()+"/"+name, func(t *testing.T) {
				block, err := Encode(data, typ)
				require.NoError(t, err)

				out, err := Decode(block, typ)
				require.NoError(t, err)
				assert.Equal(t, len(data), len(out))
				assert.True(t, bytes.Equal(data, out))
			})
		}
	}
}

func TestEncode_Shrinks(t *testing.T) {
	data := bytes.Repeat([]byte("🌑🌒🌓🌔"), 1000)
	for _, typ := range []Type{LZ4, ZSTD} {
		block, err := Encode(data, typ)
		require.NoError(t, err)
		assert.Less(t, len(block), len(data)/2, typ.String())
	}
}

func TestDecode_Corrupt(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3}, ZSTD)
	assert.ErrorIs(t, err, ErrCorrupt)

	block, err := Encode(bytes.Repeat([]byte("a"), 1000), ZSTD)
	require.NoError(t, err)
	_, err = Decode(block[:12], ZSTD)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestParse(t *testing.T) {
	for _, typ := range []Type{None, LZ4, ZSTD} {
		got, err := Parse(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	got, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, None, got)

	_, err = Parse("brotli")
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = Encode(nil, Type(9))
	assert.ErrorIs(t, err, ErrUnknownType)
	assert.Equal(t, "compress.Type(9)", Type(9).String())
}
