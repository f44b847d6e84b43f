// Package glyph renders bitmap glyphs and strings onto a monochrome pixel
// surface.
//
// A Glyph carries its bitmap in one of two encodings. ColumnMajor glyphs
// store one integer per pixel column, bit j of column i lighting pixel
// (i, j). RowPacked glyphs store a flat bit stream, most significant bit
// first, rows outer and columns inner, and are positioned against a
// baseline, like Adafruit GFX fonts.
//
// Rendering writes both lit and dark pixels under the glyph box, so text
// redrawn at the same place replaces the previous text without a clear.
package glyph

// Encoding identifies the bitmap layout of a Glyph.
type Encoding uint8

const (
	ColumnMajor Encoding = iota
	RowPacked
)

func (e Encoding) String() string {
	switch e {
	case ColumnMajor:
		return "ColumnMajor"
	case RowPacked:
		return "RowPacked"
	default:
		return "Encoding(?)"
	}
}

// Glyph describes one character bitmap.
type Glyph struct {
	Rune     rune
	Width    int
	Height   int
	XOffset  int
	YOffset  int
	Advance  int
	Encoding Encoding

	// Columns holds ColumnMajor bitmaps, one entry per column.
	// Height must not exceed 64.
	Columns []uint64

	// Bitmap holds RowPacked bitmaps.
	Bitmap []byte
}

// Empty reports whether g has nothing to draw.
func (g *Glyph) Empty() bool {
	return g == nil || g.Width <= 0 || g.Height <= 0
}

// Font looks up glyphs by character.
type Font interface {
	// Glyph returns the glyph for r and whether the font has one.
	Glyph(r rune) (Glyph, bool)

	// LineSpacing is the vertical distance between two text lines.
	LineSpacing() int
}

// Table is a Font backed by a list of glyphs.
type Table struct {
	Glyphs  []Glyph
	Spacing int
}

// Glyph implements Font.
func (t *Table) Glyph(r rune) (Glyph, bool) {
	for i := range t.Glyphs {
		if t.Glyphs[i].Rune == r {
			return t.Glyphs[i], true
		}
	}
	return Glyph{}, false
}

// LineSpacing implements Font.
func (t *Table) LineSpacing() int {
	return t.Spacing
}
