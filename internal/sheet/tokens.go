package sheet

import (
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/ekle/fontsheet/internal/core"
)

// Token is one entry of a glyph list. It is either renderable, i.e. exactly
// one user-perceived character, or a placeholder occupying a cell without
// being drawn.
type Token struct {
	raw        string
	renderable bool
}

// Renderable creates a token for a single character.
func Renderable(glyph string) Token {
	return Token{raw: glyph, renderable: true}
}

// Placeholder creates a token which is never drawn.
func Placeholder(raw string) Token {
	return Token{raw: raw}
}

// NewToken classifies a raw token by counting its grapheme clusters.
// A single whitespace or control character has no ink and is a placeholder.
func NewToken(raw string) Token {
	if uniseg.GraphemeClusterCount(raw) != 1 {
		return Placeholder(raw)
	}
	r, _ := utf8.DecodeRuneInString(raw)
	if unicode.IsSpace(r) || unicode.IsControl(r) {
		return Placeholder(raw)
	}
	return Renderable(raw)
}

// IsRenderable is true for single-character tokens.
func (t Token) IsRenderable() bool {
	return t.renderable
}

// Glyph returns the character of a renderable token. For placeholders it
// returns the raw input text.
func (t Token) Glyph() string {
	return t.raw
}

func (t Token) String() string {
	if t.renderable {
		return t.raw
	}
	return "<" + PlaceholderLabel + ">"
}

// ParseTokens splits text at every whitespace or newline character.
// Consecutive separators produce empty tokens, which become placeholders;
// a glyph file expresses the space glyph this way. A trailing newline
// yields a trailing placeholder.
func ParseTokens(text string) []Token {
	var tokens []Token
	start := 0
	for i, r := range text {
		if unicode.IsSpace(r) {
			tokens = append(tokens, NewToken(text[start:i]))
			start = i + utf8.RuneLen(r)
		}
	}
	tokens = append(tokens, NewToken(text[start:]))
	return tokens
}

// LoadTokens reads a glyph list from a UTF-8 text file.
func LoadTokens(path string) ([]Token, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.ESOURCE, "cannot read glyph file %s", path)
	}
	if !utf8.Valid(content) {
		return nil, core.Error(core.ESOURCE, "glyph file %s is not valid UTF-8", path)
	}
	tokens := ParseTokens(string(content))
	tracer().Debugf("glyph file %s holds %d tokens", path, len(tokens))
	return tokens, nil
}

// Glyphs returns the characters of all renderable tokens, joined in order.
func Glyphs(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.renderable {
			b.WriteString(t.raw)
		}
	}
	return b.String()
}
