package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Godel   uint64            `json:"godel"`
	Glyphs  string            `json:"glyphs"`
	Fourier []uint64          `json:"fourier"`
	Hecke   map[string]uint64 `json:"hecke"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecsAgree(t *testing.T) {
	v := sample{
		Godel:   12345,
		Glyphs:  "🌑🌟💧",
		Fourier: []uint64{345, 690, 35},
		Hecke:   map[string]uint64{"2": 690, "3": 35},
	}

	std := MustMarshal(JSON{}, v)
	fast := MustMarshal(GoJSON{}, v)
	assert.JSONEq(t, string(std), string(fast))

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		var got sample
		require.NoError(t, c.Unmarshal(std, &got), c.Name())
		assert.Equal(t, v, got, c.Name())
	}
}

func TestGoJSONAppend(t *testing.T) {
	out, err := GoJSON{}.Append([]byte("x"), map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, `x{"a":1}`, string(out))
}

func TestMustMarshal_DefaultsAndPanics(t *testing.T) {
	assert.Equal(t, `[1,2]`, string(MustMarshal(nil, []int{1, 2})))
	assert.Panics(t, func() { MustMarshal(JSON{}, make(chan int)) })
}
