package fnt

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var glyphs = []GlyphMeta{
	{Label: "A", Advance: 9},
	{Label: "B", Advance: 8},
	{Label: "space", Advance: 4},
}

func TestSerializeLayout(t *testing.T) {
	out := Serialize(Model{Width: 8, Height: 13, Glyphs: glyphs})
	assert.Equal(t, "width=8\nheight=13\n\nA\t\t9\nB\t\t8\nspace\t\t4", string(out))
}

func TestSerializeIsDeterministic(t *testing.T) {
	m := Model{Width: 3, Height: 4, Glyphs: glyphs}
	assert.True(t, bytes.Equal(Serialize(m), Serialize(m)))
}

func TestSerializeEmbedded(t *testing.T) {
	data := []byte("\x89PNG\r\n\x1a\nnot really a png")
	out := string(Serialize(Model{Width: 8, Height: 13, Embedded: true, Data: data, Glyphs: glyphs[:1]}))
	enc := base64.StdEncoding.EncodeToString(data)
	assert.Equal(t, "width=8\nheight=13\n\ndatalen="+strconv.Itoa(len(enc))+"\ndata="+enc+"\n\nA\t\t9", out)
	lines := strings.Split(out, "\n")
	n, err := strconv.Atoi(strings.TrimPrefix(lines[3], "datalen="))
	require.NoError(t, err)
	assert.Equal(t, n, len(strings.TrimPrefix(lines[4], "data=")))
}

func TestSerializeEmbeddedWithoutData(t *testing.T) {
	out := Serialize(Model{Width: 1, Height: 2, Embedded: true, Glyphs: glyphs[2:]})
	assert.Equal(t, "width=1\nheight=2\n\n\nspace\t\t4", string(out))
}

func TestSerializeNoGlyphs(t *testing.T) {
	assert.Equal(t, "width=0\nheight=0\n", string(Serialize(Model{})))
}

func TestParseReadsSerializedModel(t *testing.T) {
	in := Model{Width: 8, Height: 13, Embedded: true, Data: []byte{1, 2, 3, 4, 5}, Glyphs: append([]GlyphMeta{
		{Label: "=", Advance: 5},
	}, glyphs...)}
	m, err := Parse(Serialize(in))
	require.NoError(t, err)
	assert.Equal(t, in, m)
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse([]byte("width=x\nheight=1\n\nA\t\t1"))
	assert.Error(t, err)
	_, err = Parse([]byte("width=1\nheight=1\n\nA\t1"))
	assert.Error(t, err)
	_, err = Parse([]byte("width=1\nheight=1\n\ndatalen=99\ndata=AAAA\n\nA\t\t1"))
	assert.Error(t, err)
	_, err = Parse([]byte("colour=red\n"))
	assert.Error(t, err)
}

func TestWriteFileReplacesExisting(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsheet")
	defer teardown()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "x.fnt")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("old content\n"), 100), 0644))
	require.NoError(t, WriteFile(path, Model{Width: 2, Height: 3, Glyphs: glyphs[:1]}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "width=2\nheight=3\n\nA\t\t9", string(data))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestWriteFileFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsheet")
	defer teardown()
	//
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "x.fnt"), Model{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[133]")
}
