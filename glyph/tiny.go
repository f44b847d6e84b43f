package glyph

import (
	"image/color"
	"sort"
	"unicode"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Tiny adapts a tinyfont font to a RowPacked Font.
//
// Each glyph is drawn once into a capture surface and packed MSB first, rows
// outer, columns inner. Glyphs without pixels but with an advance, like the
// space, become blank cells covering the text line so they erase what is
// under them. Runes the font does not hold are missing, although tinyfont
// hands back a zero sized placeholder for them. Other Fonters only get blank
// cells for white space. Tiny is not safe for concurrent use.
type Tiny struct {
	font  tinyfont.Fonter
	cache map[rune]Glyph
}

// NewTiny returns a Font drawing glyphs from f, e.g. &proggy.TinySZ8pt7b.
func NewTiny(f tinyfont.Fonter) *Tiny {
	return &Tiny{font: f, cache: make(map[rune]Glyph)}
}

// Glyph implements Font.
func (t *Tiny) Glyph(r rune) (Glyph, bool) {
	if g, ok := t.cache[r]; ok {
		return g, true
	}
	if t.font == nil {
		return Glyph{}, false
	}
	f, concrete := t.font.(*tinyfont.Font)
	if concrete && !holds(f, r) {
		return Glyph{}, false
	}
	tg := t.font.GetGlyph(r)
	info := tg.Info()
	if info.Rune != r {
		return Glyph{}, false
	}
	if !concrete && (info.Width == 0 || info.Height == 0) && !unicode.IsSpace(r) {
		return Glyph{}, false
	}

	g := Glyph{
		Rune:     r,
		Width:    int(info.Width),
		Height:   int(info.Height),
		XOffset:  int(info.XOffset),
		YOffset:  int(info.YOffset),
		Advance:  int(info.XAdvance),
		Encoding: RowPacked,
	}
	if g.Empty() {
		if g.Advance == 0 {
			return Glyph{}, false
		}
		line := t.LineSpacing()
		g.Width, g.Height = g.Advance, line
		g.XOffset, g.YOffset = 0, -line
		g.Bitmap = make([]byte, (g.Width*g.Height+7)/8)
	} else {
		c := newCapture(g.Width, g.Height)
		tg.Draw(c, int16(-g.XOffset), int16(-g.YOffset), color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
		g.Bitmap = c.pack()
	}
	t.cache[r] = g
	return g, true
}

// holds reports whether f has a glyph for r. Glyphs are sorted by rune.
func holds(f *tinyfont.Font, r rune) bool {
	i := sort.Search(len(f.Glyphs), func(i int) bool { return f.Glyphs[i].Rune >= r })
	return i < len(f.Glyphs) && f.Glyphs[i].Rune == r
}

// LineSpacing implements Font.
func (t *Tiny) LineSpacing() int {
	if t.font == nil {
		return 0
	}
	return int(t.font.GetYAdvance())
}

var _ drivers.Displayer = (*capture)(nil)

// capture is a drivers.Displayer recording a single glyph box.
type capture struct {
	w, h int
	pix  []bool
}

func newCapture(w, h int) *capture {
	return &capture{w: w, h: h, pix: make([]bool, w*h)}
}

func (c *capture) Size() (x, y int16) {
	return int16(c.w), int16(c.h)
}

func (c *capture) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || int(x) >= c.w || y < 0 || int(y) >= c.h {
		return
	}
	c.pix[int(y)*c.w+int(x)] = col.A != 0
}

func (c *capture) Display() error {
	return nil
}

// pack returns the box as a RowPacked bitmap.
func (c *capture) pack() []byte {
	out := make([]byte, (len(c.pix)+7)/8)
	for i, on := range c.pix {
		if on {
			out[i>>3] |= 0x80 >> uint(i&7)
		}
	}
	return out
}
