/*
Package sheet builds monochrome glyph sheets.

A glyph sheet is a single bitmap holding every requested glyph, drawn into a
grid of uniform cells, 16 cells per row. Building a sheet is a fixed
sequence of steps:

	tokens → ComputeMetrics → Layout.Render → Binarize → files

Measuring and drawing glyphs is delegated to a Face (see package render);
everything else in this package is independent of any font technology and
can be driven with a synthetic backend.

Strict mode reproduces the cell arithmetic of existing .fnt consumers,
including the row wrap that is off by the left margin. Clean mode wraps
after exactly 16 cells.
*/
package sheet

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontsheet'.
func tracer() tracing.Trace {
	return tracing.Select("fontsheet")
}
