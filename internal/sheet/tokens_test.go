package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekle/fontsheet/internal/core"
)

func TestParseTokensKeepsEmptyTokens(t *testing.T) {
	tokens := ParseTokens("A B  C\n")
	require.Len(t, tokens, 5)
	assert.Equal(t, Renderable("A"), tokens[0])
	assert.Equal(t, Renderable("B"), tokens[1])
	assert.False(t, tokens[2].IsRenderable(), "double space yields a placeholder")
	assert.Equal(t, Renderable("C"), tokens[3])
	assert.False(t, tokens[4].IsRenderable(), "trailing newline yields a placeholder")
}

func TestParseTokensPreservesOrderAndDuplicates(t *testing.T) {
	tokens := ParseTokens("b\ta\nb\r\na")
	var got []string
	for _, tok := range tokens {
		got = append(got, tok.String())
	}
	assert.Equal(t, []string{"b", "a", "b", "<space>", "a"}, got)
}

func TestNewTokenClassification(t *testing.T) {
	assert.True(t, NewToken("A").IsRenderable())
	assert.True(t, NewToken("ß").IsRenderable())
	assert.True(t, NewToken("e\u0301").IsRenderable(), "base letter with combining accent is one character")
	assert.True(t, NewToken("🇩🇪").IsRenderable(), "flag is one character")
	assert.False(t, NewToken("").IsRenderable())
	assert.False(t, NewToken("AB").IsRenderable())
	assert.False(t, NewToken("\t").IsRenderable())
	assert.False(t, NewToken("\u0001").IsRenderable(), "control characters have no ink")
	assert.False(t, NewToken("space").IsRenderable())
	assert.Equal(t, "AB", NewToken("AB").Glyph())
}

func TestLoadTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsheet")
	defer teardown()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "glyphs.txt")
	require.NoError(t, os.WriteFile(path, []byte("A B C"), 0644))
	tokens, err := LoadTokens(path)
	require.NoError(t, err)
	assert.Equal(t, "ABC", Glyphs(tokens))
}

func TestLoadTokensFailures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsheet")
	defer teardown()
	//
	dir := t.TempDir()
	_, err := LoadTokens(filepath.Join(dir, "missing.txt"))
	assert.Equal(t, core.ESOURCE, core.Code(err))
	//
	path := filepath.Join(dir, "latin1.txt")
	require.NoError(t, os.WriteFile(path, []byte{'A', ' ', 0xe9}, 0644))
	_, err = LoadTokens(path)
	assert.Equal(t, core.ESOURCE, core.Code(err))
}
