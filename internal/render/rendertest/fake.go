// Package rendertest provides a synthetic rendering backend for tests.
package rendertest

import (
	"image"
	"image/color"
	"image/draw"
)

// Size is the measured size of a glyph.
type Size struct {
	W, H float64
}

// Call records one Draw request.
type Call struct {
	Glyph string
	X, Y  float64
}

// Face measures glyphs from a table and draws every glyph as a solid box
// whose top left corner is the requested origin.
type Face struct {
	Sizes    map[string]Size // per-glyph sizes
	Default  Size            // size of glyphs not in Sizes
	Alpha    uint8           // ink alpha; 0 means opaque
	Measured []string
	Drawn    []Call
}

// Measure returns the table size of glyph and records the call.
func (f *Face) Measure(glyph string) (w, h float64) {
	f.Measured = append(f.Measured, glyph)
	s := f.size(glyph)
	return s.W, s.H
}

// Draw fills the glyph's box, rounded to whole pixels, into dst.
func (f *Face) Draw(dst draw.Image, glyph string, x, y float64) {
	f.Drawn = append(f.Drawn, Call{Glyph: glyph, X: x, Y: y})
	s := f.size(glyph)
	r := image.Rect(int(x), int(y), int(x+s.W+0.5), int(y+s.H+0.5))
	a := f.Alpha
	if a == 0 {
		a = 255
	}
	ink := image.NewUniform(color.NRGBA{A: a})
	draw.Draw(dst, r.Intersect(dst.Bounds()), ink, image.Point{}, draw.Over)
}

func (f *Face) size(glyph string) Size {
	if s, ok := f.Sizes[glyph]; ok {
		return s
	}
	return f.Default
}
