/*
Package render measures and draws glyphs of an OpenType or TrueType font.

Outlines are loaded with golang.org/x/image/font/sfnt and filled with the
anti-aliasing rasterizer of golang.org/x/image/vector. Glyphs are positioned
by their line box: the point handed to Draw is the top left corner, the
baseline lies one ascent below it.
*/
package render

import (
	"image"
	"image/draw"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// tracer traces with key 'fontsheet'.
func tracer() tracing.Trace {
	return tracing.Select("fontsheet")
}

// Face is a font scaled to a pixel size.
type Face struct {
	Name    string
	font    *sfnt.Font
	ppem    fixed.Int26_6
	metrics font.Metrics
	buf     sfnt.Buffer
}

// NewFace scales f to size points at the given resolution.
func NewFace(f *sfnt.Font, name string, size, dpi float64) (*Face, error) {
	face := &Face{
		Name: name,
		font: f,
		ppem: fixed.Int26_6(math.Round(size * dpi / 72 * 64)),
	}
	var err error
	face.metrics, err = f.Metrics(&face.buf, face.ppem, font.HintingNone)
	if err != nil {
		return nil, err
	}
	return face, nil
}

// Metrics returns the vertical metrics of the scaled font.
func (face *Face) Metrics() font.Metrics {
	return face.metrics
}

// PPEM is the scaled size in pixels per em.
func (face *Face) PPEM() fixed.Int26_6 {
	return face.ppem
}

// Measure returns the advance width of glyph and the line height of the
// face, in pixels.
func (face *Face) Measure(glyph string) (w, h float64) {
	var adv fixed.Int26_6
	for _, r := range glyph {
		x := face.index(r)
		a, err := face.font.GlyphAdvance(&face.buf, x, face.ppem, font.HintingNone)
		if err != nil {
			tracer().Errorf("GlyphAdvance %q: %v", r, err)
			continue
		}
		adv += a
	}
	return toFloat(adv), toFloat(face.metrics.Height)
}

// Draw fills glyph in black into dst. (x, y) is the top left corner of the
// glyph's line box.
func (face *Face) Draw(dst draw.Image, glyph string, x, y float64) {
	baseline := y + toFloat(face.metrics.Ascent)
	for _, r := range glyph {
		idx := face.index(r)
		segments, err := face.font.LoadGlyph(&face.buf, idx, face.ppem, nil)
		if err != nil {
			tracer().Errorf("LoadGlyph %q: %v", r, err)
			continue
		}
		face.fill(dst, segments, x, baseline)
		if a, err := face.font.GlyphAdvance(&face.buf, idx, face.ppem, font.HintingNone); err == nil {
			x += toFloat(a)
		}
	}
}

func (face *Face) index(r rune) sfnt.GlyphIndex {
	x, err := face.font.GlyphIndex(&face.buf, r)
	if err != nil {
		tracer().Errorf("GlyphIndex %q: %v", r, err)
		return 0
	}
	if x == 0 {
		tracer().Infof("no glyph index found for the rune %q, using .notdef", r)
	}
	return x
}

// fill rasterizes segments with their origin at (originX, originY) into a
// mask covering the glyph's control box, and composites the mask onto dst.
func (face *Face) fill(dst draw.Image, segments sfnt.Segments, originX, originY float64) {
	if len(segments) == 0 {
		return
	}
	box := controlBox(segments, originX, originY)
	clip := box.Intersect(dst.Bounds())
	if clip.Empty() {
		return
	}
	ox := float32(originX) - float32(box.Min.X)
	oy := float32(originY) - float32(box.Min.Y)
	r := vector.NewRasterizer(box.Dx(), box.Dy())
	r.DrawOp = draw.Src
	for _, seg := range segments {
		// The divisions by 64 below is because the seg.Args values have type
		// fixed.Int26_6, a 26.6 fixed point number, and 1<<6 == 64.
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			r.MoveTo(
				ox+float32(seg.Args[0].X)/64,
				oy+float32(seg.Args[0].Y)/64,
			)
		case sfnt.SegmentOpLineTo:
			r.LineTo(
				ox+float32(seg.Args[0].X)/64,
				oy+float32(seg.Args[0].Y)/64,
			)
		case sfnt.SegmentOpQuadTo:
			r.QuadTo(
				ox+float32(seg.Args[0].X)/64,
				oy+float32(seg.Args[0].Y)/64,
				ox+float32(seg.Args[1].X)/64,
				oy+float32(seg.Args[1].Y)/64,
			)
		case sfnt.SegmentOpCubeTo:
			r.CubeTo(
				ox+float32(seg.Args[0].X)/64,
				oy+float32(seg.Args[0].Y)/64,
				ox+float32(seg.Args[1].X)/64,
				oy+float32(seg.Args[1].Y)/64,
				ox+float32(seg.Args[2].X)/64,
				oy+float32(seg.Args[2].Y)/64,
			)
		default:
			tracer().Errorf("unknown segment op %d", seg.Op)
			return
		}
	}
	mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(dst, clip, image.Black, image.Point{}, mask, clip.Min.Sub(box.Min), draw.Over)
}

// controlBox is the pixel rectangle enclosing all points of segments,
// translated to (originX, originY). Curves never leave the hull of their
// control points.
func controlBox(segments sfnt.Segments, originX, originY float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, seg := range segments {
		n := 1
		switch seg.Op {
		case sfnt.SegmentOpQuadTo:
			n = 2
		case sfnt.SegmentOpCubeTo:
			n = 3
		}
		for _, p := range seg.Args[:n] {
			px, py := toFloat(p.X), toFloat(p.Y)
			minX, maxX = math.Min(minX, px), math.Max(maxX, px)
			minY, maxY = math.Min(minY, py), math.Max(maxY, py)
		}
	}
	return image.Rect(
		int(math.Floor(originX+minX)), int(math.Floor(originY+minY)),
		int(math.Ceil(originX+maxX)), int(math.Ceil(originY+maxY)),
	)
}

func toFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

// LogMetrics traces the vertical metrics of the face.
func (face *Face) LogMetrics() {
	m := face.metrics
	tracer().Debugf("font metrics of %s at %s ppem:", face.Name, face.ppem)
	tracer().Debugf("  Height:     %s", m.Height)
	tracer().Debugf("  CapHeight:  %s", m.CapHeight)
	tracer().Debugf("  Ascent:     %s", m.Ascent)
	tracer().Debugf("  CaretSlope: %s", m.CaretSlope)
	tracer().Debugf("  Descent:    %s", m.Descent)
	tracer().Debugf("  XHeight:    %s", m.XHeight)
}
