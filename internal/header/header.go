/*
Package header exports a binarized glyph sheet as a C table.

Every glyph cell becomes a block of rows; each row is packed one bit per
pixel, most significant bit first, padded to whole bytes. Ink is 1. The
table is followed by an sFONT descriptor as used by the Waveshare e-paper
display drivers.
*/
package header

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/icza/bitio"
)

// Glyph is one cell of the sheet.
type Glyph struct {
	Label string
	Cell  image.Rectangle
}

// Table describes the C table to emit.
type Table struct {
	Name   string // sheet name, turned into a C identifier
	Source string // font the sheet is based on
	Width  int    // cell width in pixels
	Height int    // cell height in pixels
	Glyphs []Glyph
}

// Write emits t as C source, reading pixels from img.
func Write(w io.Writer, t Table, img image.Image) error {
	ident := Identifier(t.Name)
	b := &bytes.Buffer{}
	fmt.Fprintf(b, `#include "fonts.h"
#if defined(__AVR__) || defined(ARDUINO_ARCH_SAMD)
#include <avr/pgmspace.h>
#elif defined(ESP8266) || defined(ESP32)
#include <pgmspace.h>
#endif

const uint8_t %s_Table [] PROGMEM =
{
`, ident)
	for _, g := range t.Glyphs {
		if r, size := utf8.DecodeRuneInString(g.Label); size == len(g.Label) && size > 0 {
			fmt.Fprintf(b, "  // %s %d\n", g.Label, r)
		} else {
			fmt.Fprintf(b, "  // %s\n", g.Label)
		}
		for y := 0; y < t.Height; y++ {
			row, preview, err := packRow(img, g.Cell.Min.X, g.Cell.Min.Y+y, t.Width)
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "  ")
			for _, o := range row {
				fmt.Fprintf(b, "0x%.2X, ", o)
			}
			fmt.Fprintf(b, " // %s\n", preview)
		}
	}
	fmt.Fprintf(b, `};`)
	fmt.Fprintf(b, "\n\n/* Based on font %s */\n", t.Source)
	fmt.Fprintf(b, `sFONT %s = {
  %s_Table,
  %d, /* Width */
  %d, /* Height */
};
`, ident, ident, t.Width, t.Height)
	_, err := w.Write(b.Bytes())
	return err
}

// packRow packs width pixels starting at (x0, y). Pixels outside img are
// blank.
func packRow(img image.Image, x0, y, width int) ([]byte, string, error) {
	b := &bytes.Buffer{}
	w := bitio.NewWriter(b)
	var preview strings.Builder
	bounds := img.Bounds()
	for x := x0; x < x0+width; x++ {
		ink := image.Pt(x, y).In(bounds) && isInk(img.At(x, y))
		if ink {
			if err := w.WriteBits(1, 1); err != nil {
				return nil, "", err
			}
			preview.WriteByte('#')
		} else {
			if err := w.WriteBits(0, 1); err != nil {
				return nil, "", err
			}
			preview.WriteByte('.')
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return b.Bytes(), preview.String(), nil
}

func isInk(c color.Color) bool {
	return color.NRGBAModel.Convert(c).(color.NRGBA).A >= 128
}

// Identifier turns a sheet name into a C identifier.
func Identifier(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	id := b.String()
	if id == "" || unicode.IsDigit(rune(id[0])) {
		id = "Font" + id
	}
	return id
}
