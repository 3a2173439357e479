package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zone42/glyphs"
	"github.com/zone42/glyphs/archive"
	"github.com/zone42/glyphs/blobstore"
	"github.com/zone42/glyphs/extract"
)

func newEncoder(t *testing.T) *glyphs.Encoder {
	t.Helper()
	return glyphs.MustNew(glyphs.WithLogger(glyphs.NoopLogger()))
}

func TestRunEncode(t *testing.T) {
	var out bytes.Buffer
	err := runEncode(context.Background(), newEncoder(t), []string{"-godel", "12345", "-curve", "100", "-band", "0", "-format", "text"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "🌠🌱🌑🌱🔥🌠🌀💎\n", out.String())
}

func TestRunEncode_JSON(t *testing.T) {
	var out bytes.Buffer
	err := runEncode(context.Background(), newEncoder(t), []string{"-godel", "42", "-curve", "11"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"glyphs":"💧🔮🌑💧🌱💧🍀🔻"`)
	assert.Contains(t, out.String(), `"zone":11`)
}

func TestRunEncode_UnknownFormat(t *testing.T) {
	err := runEncode(context.Background(), newEncoder(t), []string{"-format", "yaml"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown format")
}

func TestRunDecode(t *testing.T) {
	var out bytes.Buffer
	err := runDecode(context.Background(), newEncoder(t), []string{"🌠🌱🌑🌱🔥🌠🌀💎"}, &out)
	require.NoError(t, err)
	assert.Equal(t, `{"godel":800,"curve":800,"band":0,"indices":[25,4,0,4,2,25,18,3]}`+"\n", out.String())

	assert.Error(t, runDecode(context.Background(), newEncoder(t), nil, &out))
}

func TestRunExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shadow.ttl")
	text := `zone42:godelNumber "42" ; zone42:curveIndex "11" ; zone42:frequencyBand "0" .`
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	var out bytes.Buffer
	require.NoError(t, runExtract(context.Background(), newEncoder(t), []string{"-format", "text", path}, nil, &out))
	assert.Equal(t, "💧🔮🌑💧🌱💧🍀🔻\n", out.String())

	out.Reset()
	err := runExtract(context.Background(), newEncoder(t), []string{"-"}, strings.NewReader(`zone42:godelNumber "42"`), &out)
	assert.ErrorIs(t, err, extract.ErrMalformedInput)
}

func TestRunArchive(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	err := runArchive(context.Background(), newEncoder(t), glyphs.NoopLogger(),
		[]string{"-dir", dir, "-from", "0", "-to", "48", "-compression", "lz4"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "generation 1: 24 shards, 48 entries\n", out.String())

	r, err := archive.Open(context.Background(), blobstore.NewLocalStore(dir))
	require.NoError(t, err)
	ok, err := r.Contains(context.Background(), 5, 1029)
	require.NoError(t, err)
	assert.True(t, ok)

	out.Reset()
	require.NoError(t, runShard(context.Background(), []string{"-dir", dir, "-zone", "5", "-godel", "1029"}, &out))
	assert.Equal(t, "true\n", out.String())

	out.Reset()
	require.NoError(t, runShard(context.Background(), []string{"-dir", dir, "-zone", "5", "-godel", "0"}, &out))
	assert.Equal(t, "false\n", out.String())

	out.Reset()
	require.NoError(t, runShard(context.Background(), []string{"-dir", dir, "-zone", "5"}, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"godel":1005`)
	assert.Contains(t, lines[1], `"godel":1029`)
}

func TestRunArchive_Errors(t *testing.T) {
	enc := newEncoder(t)
	logger := glyphs.NoopLogger()

	assert.ErrorContains(t, runArchive(context.Background(), enc, logger, []string{"-from", "0", "-to", "1"}, &bytes.Buffer{}), "backend is required")
	assert.ErrorContains(t, runArchive(context.Background(), enc, logger, []string{"-dir", t.TempDir(), "-from", "5", "-to", "5"}, &bytes.Buffer{}), "empty curve range")
	assert.Error(t, runArchive(context.Background(), enc, logger, []string{"-dir", t.TempDir(), "-to", "1", "-compression", "brotli"}, &bytes.Buffer{}))
}
