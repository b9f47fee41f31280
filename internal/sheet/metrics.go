package sheet

import (
	"math"

	"github.com/ekle/fontsheet/internal/fnt"
)

// Margin is the horizontal space in pixels added to every glyph advance and
// to the left edge of every sheet row.
const Margin = 1.0

// Placeholder glyphs are written with a fixed label and advance.
const (
	PlaceholderLabel   = "space"
	PlaceholderAdvance = 4
)

// Measurer reports the rendered size of a single glyph in pixels.
type Measurer interface {
	Measure(glyph string) (w, h float64)
}

// CellSize is the bounding box shared by every cell of a sheet.
type CellSize struct {
	W, H int
}

// Metrics is the result of measuring a glyph list.
type Metrics struct {
	Cell   CellSize
	Glyphs []fnt.GlyphMeta // one per token, in token order
}

// ComputeMetrics measures every renderable token and derives the cell size
// from the widest and tallest glyph. Placeholders are not measured and do
// not influence the cell size.
func ComputeMetrics(tokens []Token, m Measurer) Metrics {
	var tallest, widest float64
	metrics := Metrics{Glyphs: make([]fnt.GlyphMeta, 0, len(tokens))}
	for _, t := range tokens {
		if !t.IsRenderable() {
			metrics.Glyphs = append(metrics.Glyphs, fnt.GlyphMeta{
				Label:   PlaceholderLabel,
				Advance: PlaceholderAdvance,
			})
			continue
		}
		w, h := m.Measure(t.Glyph())
		tallest = math.Max(tallest, h)
		widest = math.Max(widest, w)
		metrics.Glyphs = append(metrics.Glyphs, fnt.GlyphMeta{
			Label:   t.Glyph(),
			Advance: int(math.Ceil(w + Margin)),
		})
	}
	metrics.Cell = CellSize{
		W: int(math.Ceil(widest)),
		H: int(math.Ceil(tallest)),
	}
	tracer().Debugf("cell size %dx%d for %d tokens", metrics.Cell.W, metrics.Cell.H, len(tokens))
	return metrics
}
