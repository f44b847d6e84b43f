package glyph

// Plotter is a pixel surface. SetPixel must ignore out of range coordinates.
type Plotter interface {
	SetPixel(x, y int, on bool)
}

// Draw renders g at (x, y).
//
// ColumnMajor glyphs have their top-left corner at (x, y). For RowPacked
// glyphs (x, y) is the pen position on the baseline. Both are shifted by the
// glyph offsets. Empty glyphs draw nothing.
func Draw(p Plotter, g *Glyph, x, y int) {
	if g.Empty() {
		return
	}
	x += g.XOffset
	y += g.YOffset

	switch g.Encoding {
	case RowPacked:
		drawRows(p, g, x, y)
	default:
		drawColumns(p, g, x, y)
	}
}

func drawColumns(p Plotter, g *Glyph, x, y int) {
	for i := 0; i < g.Width && i < len(g.Columns); i++ {
		line := g.Columns[i]
		for j := 0; j < g.Height; j++ {
			p.SetPixel(x+i, y+j, line&1 != 0)
			line >>= 1
		}
	}
}

func drawRows(p Plotter, g *Glyph, x, y int) {
	var bits byte
	n := 0
	for j := 0; j < g.Height; j++ {
		for i := 0; i < g.Width; i++ {
			if n&7 == 0 {
				bits = 0
				if k := n >> 3; k < len(g.Bitmap) {
					bits = g.Bitmap[k]
				}
			}
			n++
			p.SetPixel(x+i, y+j, bits&0x80 != 0)
			bits <<= 1
		}
	}
}

// DrawChar renders the glyph for r from f with the top of the text line at
// (x, y) and returns its advance. It returns 0 if f has no glyph for r.
func DrawChar(p Plotter, f Font, r rune, x, y int) int {
	if f == nil {
		return 0
	}
	g, ok := f.Glyph(r)
	if !ok || g.Empty() {
		return 0
	}
	if g.Encoding == RowPacked {
		y += f.LineSpacing()
	}
	Draw(p, &g, x, y)
	return g.Advance
}

// DrawString renders s from f with the top of the first line at (x, y).
// A newline returns the pen to x and moves it down by the font line
// spacing. Characters missing from f are skipped without advancing.
func DrawString(p Plotter, f Font, s string, x, y int) {
	if f == nil || s == "" {
		return
	}
	dx, dy := 0, 0
	for _, r := range s {
		if r == '\n' {
			dx = 0
			dy += f.LineSpacing()
			continue
		}
		dx += DrawChar(p, f, r, x+dx, y+dy)
	}
}

// Measure returns the size of the box DrawString would advance over.
func Measure(f Font, s string) (w, h int) {
	if f == nil || s == "" {
		return 0, 0
	}
	line := 0
	h = f.LineSpacing()
	for _, r := range s {
		if r == '\n' {
			line = 0
			h += f.LineSpacing()
			continue
		}
		if g, ok := f.Glyph(r); ok && !g.Empty() {
			line += g.Advance
		}
		w = max(w, line)
	}
	return w, h
}
