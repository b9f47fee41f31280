/*
Package fnt reads and writes .fnt glyph sheet descriptions.

A .fnt file is UTF-8 text. It starts with the cell size, optionally carries
the sheet PNG as base64, and lists every glyph with its advance width,
separated by two tabs:

	width=9
	height=15

	datalen=1234
	data=iVBORw0KGgo...

	A		8
	B		8
	space		4

The final line has no line terminator.
*/
package fnt

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/ekle/fontsheet/internal/core"
)

// tracer traces with key 'fontsheet'.
func tracer() tracing.Trace {
	return tracing.Select("fontsheet")
}

// GlyphMeta describes one grid cell of a sheet.
type GlyphMeta struct {
	Label   string
	Advance int // advance width in pixels
}

// Model is the complete content of a .fnt file.
type Model struct {
	Width, Height int // cell size
	Embedded      bool
	Data          []byte // PNG image of the sheet, if Embedded
	Glyphs        []GlyphMeta
}

// Serialize renders m in .fnt format.
//
// The data section is written when m.Embedded is set; a blank line follows
// it even if no image data is present.
func Serialize(m Model) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "width=%d\n", m.Width)
	fmt.Fprintf(&b, "height=%d\n", m.Height)
	b.WriteString("\n")
	if m.Embedded {
		if len(m.Data) > 0 {
			enc := base64.StdEncoding.EncodeToString(m.Data)
			fmt.Fprintf(&b, "datalen=%d\n", len(enc))
			fmt.Fprintf(&b, "data=%s\n", enc)
		}
		b.WriteString("\n")
	}
	for _, g := range m.Glyphs {
		fmt.Fprintf(&b, "%s\t\t%d\n", g.Label, g.Advance)
	}
	out := b.Bytes()
	return out[:len(out)-1]
}

// WriteFile serializes m to path, replacing an existing file.
func WriteFile(path string, m Model) error {
	if err := writeAtomic(path, Serialize(m)); err != nil {
		return core.WrapError(err, core.EWRITE, "cannot write font file %s", path)
	}
	tracer().Infof("%d glyphs written to %s", len(m.Glyphs), path)
	return nil
}

// writeAtomic writes data to a temporary file next to path and renames it.
func writeAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Parse reads a .fnt file. It accepts everything Serialize produces.
func Parse(data []byte) (Model, error) {
	var m Model
	var datalen = -1
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	header := true
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if header && !strings.Contains(text, "\t\t") {
			if text == "" {
				continue
			}
			key, value, ok := strings.Cut(text, "=")
			if !ok {
				return m, fmt.Errorf("line %d: malformed header %q", line, text)
			}
			if err := m.setHeader(key, value, &datalen); err != nil {
				return m, fmt.Errorf("line %d: %w", line, err)
			}
			continue
		}
		header = false
		label, adv, ok := strings.Cut(text, "\t\t")
		if !ok {
			return m, fmt.Errorf("line %d: missing glyph separator", line)
		}
		n, err := strconv.Atoi(adv)
		if err != nil {
			return m, fmt.Errorf("line %d: %w", line, err)
		}
		m.Glyphs = append(m.Glyphs, GlyphMeta{Label: label, Advance: n})
	}
	if err := sc.Err(); err != nil {
		return m, err
	}
	if m.Embedded && datalen >= 0 && datalen != base64.StdEncoding.EncodedLen(len(m.Data)) {
		return m, fmt.Errorf("datalen %d does not match data", datalen)
	}
	return m, nil
}

func (m *Model) setHeader(key, value string, datalen *int) error {
	var err error
	switch key {
	case "width":
		m.Width, err = strconv.Atoi(value)
	case "height":
		m.Height, err = strconv.Atoi(value)
	case "datalen":
		m.Embedded = true
		*datalen, err = strconv.Atoi(value)
	case "data":
		m.Embedded = true
		m.Data, err = base64.StdEncoding.DecodeString(value)
	default:
		err = fmt.Errorf("unknown key %q", key)
	}
	return err
}
