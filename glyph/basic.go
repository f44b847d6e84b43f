package glyph

import (
	"golang.org/x/image/font/basicfont"
)

// Basic adapts a fixed-width basicfont face to a ColumnMajor Font.
//
// Glyphs are converted from the face mask on first use and cached. Basic is
// not safe for concurrent use.
type Basic struct {
	face  *basicfont.Face
	cache map[rune]Glyph
}

// NewBasic returns a Font drawing glyphs from face, e.g. basicfont.Face7x13.
func NewBasic(face *basicfont.Face) *Basic {
	return &Basic{face: face, cache: make(map[rune]Glyph)}
}

// Glyph implements Font. Faces taller than 64 pixels have no glyphs.
func (b *Basic) Glyph(r rune) (Glyph, bool) {
	if g, ok := b.cache[r]; ok {
		return g, true
	}
	f := b.face
	if f == nil || f.Mask == nil || f.Height > 64 {
		return Glyph{}, false
	}
	for _, rr := range f.Ranges {
		if r < rr.Low || r >= rr.High {
			continue
		}
		top := (int(r-rr.Low) + rr.Offset) * f.Height
		g := Glyph{
			Rune:     r,
			Width:    f.Width,
			Height:   f.Height,
			XOffset:  f.Left,
			Advance:  f.Advance,
			Encoding: ColumnMajor,
			Columns:  make([]uint64, f.Width),
		}
		origin := f.Mask.Bounds().Min
		for i := 0; i < f.Width; i++ {
			var col uint64
			for j := 0; j < f.Height; j++ {
				if _, _, _, a := f.Mask.At(origin.X+i, origin.Y+top+j).RGBA(); a >= 0x8000 {
					col |= 1 << uint(j)
				}
			}
			g.Columns[i] = col
		}
		b.cache[r] = g
		return g, true
	}
	return Glyph{}, false
}

// LineSpacing implements Font.
func (b *Basic) LineSpacing() int {
	if b.face == nil {
		return 0
	}
	return b.face.Height
}
