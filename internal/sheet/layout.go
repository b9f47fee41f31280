package sheet

import (
	"image"
	"image/color"
	"image/draw"
)

// Columns is the fixed number of cells per sheet row.
const Columns = 16

// Mode selects between bit-compatible and simplified arithmetic.
type Mode int

const (
	// ModeStrict reproduces the layout of existing sheets: the row wrap is
	// tested against the sheet width with x starting at the margin.
	ModeStrict Mode = iota
	// ModeClean places token k in column k mod 16 and row k div 16.
	ModeClean
)

func (m Mode) String() string {
	if m == ModeClean {
		return "clean"
	}
	return "strict"
}

// Drawer draws a single glyph into dst with its line box's top left corner
// at (x, y).
type Drawer interface {
	Draw(dst draw.Image, glyph string, x, y float64)
}

// Transparent is the background of a sheet, Black is the ink.
var (
	Transparent = color.NRGBA{R: 255, G: 255, B: 255, A: 0}
	Black       = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
)

// Layout is the grid arrangement of a token list.
type Layout struct {
	Cell  CellSize
	Rows  int
	cells []image.Point // top left corner of each token's cell
}

// NewLayout arranges count tokens into a 16 column grid of the given cell size.
func NewLayout(count int, cell CellSize, mode Mode) *Layout {
	l := &Layout{
		Cell:  cell,
		Rows:  (count + Columns - 1) / Columns,
		cells: make([]image.Point, count),
	}
	width := l.Dimensions().X
	x, y := int(Margin), 0
	for k := 0; k < count; k++ {
		if mode == ModeClean {
			l.cells[k] = image.Pt(int(Margin)+(k%Columns)*cell.W, (k/Columns)*cell.H)
			continue
		}
		l.cells[k] = image.Pt(x, y)
		x += cell.W
		if x > width {
			x = int(Margin)
			y += cell.H
		}
	}
	return l
}

// Dimensions returns the sheet size in pixels.
func (l *Layout) Dimensions() image.Point {
	return image.Pt(l.Cell.W*Columns, l.Cell.H*l.Rows)
}

// Bounds returns the sheet rectangle.
func (l *Layout) Bounds() image.Rectangle {
	return image.Rectangle{Max: l.Dimensions()}
}

// Len is the number of cells, placeholders included.
func (l *Layout) Len() int {
	return len(l.cells)
}

// Origin is the point token k is drawn at. It lies one pixel above the
// cell's top edge, matching the line box convention of the backend.
func (l *Layout) Origin(k int) image.Point {
	return l.cells[k].Sub(image.Pt(0, 1))
}

// CellRect is the cell occupied by token k. Cells may reach beyond the
// right edge of the sheet.
func (l *Layout) CellRect(k int) image.Rectangle {
	p := l.cells[k]
	return image.Rect(p.X, p.Y, p.X+l.Cell.W, p.Y+l.Cell.H)
}

// Render creates the unbinarized sheet: a transparent white canvas with
// every renderable token drawn in black. Placeholders leave their cell blank.
func (l *Layout) Render(tokens []Token, d Drawer) *image.NRGBA {
	dst := image.NewNRGBA(l.Bounds())
	fill(dst, Transparent)
	for k, t := range tokens {
		if k >= len(l.cells) {
			break
		}
		if !t.IsRenderable() {
			continue
		}
		o := l.Origin(k)
		d.Draw(dst, t.Glyph(), float64(o.X), float64(o.Y))
	}
	return dst
}

// fill sets every pixel of dst to c. draw.Draw would go through
// premultiplied color and lose the white of a zero alpha pixel.
func fill(dst *image.NRGBA, c color.NRGBA) {
	for i := 0; i+3 < len(dst.Pix); i += 4 {
		dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}
