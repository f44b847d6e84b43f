package glyph

// columns builds a ColumnMajor glyph advancing one pixel past its width.
func columns(r rune, w, h int, cols ...uint64) Glyph {
	return Glyph{
		Rune:     r,
		Width:    w,
		Height:   h,
		Advance:  w + 1,
		Encoding: ColumnMajor,
		Columns:  cols,
	}
}

// Symbols holds a few unit symbols sized to sit next to Digits.
var Symbols = &Table{
	Spacing: 13,
	Glyphs: []Glyph{
		columns('°', 4, 4, 0x06, 0x09, 0x09, 0x06),
		columns('%', 7, 12, 0x0006, 0x0089, 0x00c9, 0x0666, 0x0930, 0x0910, 0x0600),
		columns('/', 3, 6, 0x30, 0x0c, 0x03),
	},
}

// Digits is a bold 8x10 numeric font.
var Digits = &Table{
	Spacing: 12,
	Glyphs: []Glyph{
		columns('_', 8, 10, 0x0200, 0x0200, 0x0200, 0x0200, 0x0200, 0x0200, 0x0200, 0x0200),
		columns('0', 8, 10, 0x00fc, 0x01fe, 0x0387, 0x0303, 0x0303, 0x03c7, 0x01fe, 0x00fc),
		columns('1', 8, 10, 0x0300, 0x0306, 0x0306, 0x03ff, 0x03ff, 0x0300, 0x0300, 0x0300),
		columns('2', 8, 10, 0x0304, 0x0306, 0x0387, 0x03c3, 0x0363, 0x033f, 0x031e, 0x030c),
		columns('3', 8, 10, 0x0186, 0x0186, 0x0303, 0x0333, 0x0333, 0x0333, 0x01fe, 0x01ce),
		columns('4', 8, 10, 0x0070, 0x0078, 0x006c, 0x0066, 0x03ff, 0x03ff, 0x0060, 0x0060),
		columns('5', 8, 10, 0x018e, 0x039f, 0x031b, 0x031b, 0x031b, 0x033b, 0x03f3, 0x01e0),
		columns('6', 8, 10, 0x00fc, 0x01fe, 0x0337, 0x0333, 0x0333, 0x0333, 0x01e3, 0x00c0),
		columns('7', 8, 10, 0x0000, 0x0003, 0x0003, 0x0383, 0x03f3, 0x007f, 0x000f, 0x0003),
		columns('8', 8, 10, 0x00cc, 0x01ce, 0x03ff, 0x0333, 0x0333, 0x03ff, 0x01ce, 0x00cc),
		columns('9', 8, 10, 0x000c, 0x031e, 0x0333, 0x0333, 0x0333, 0x03b3, 0x01fe, 0x00fc),
	},
}
