package ssd1306

import (
	"github.com/flavioheleno/ssd1306/glyph"
	"github.com/flavioheleno/ssd1306/raster"
)

// The drawing surface below only touches the framebuffer. Shapes light
// pixels and clip at the panel edge; call Update to show the result.

// SetPixel sets the pixel at (x, y).
func (d *Dev) SetPixel(x, y int, on bool) {
	d.fb.SetPixel(x, y, on)
}

// Pixel returns the pixel at (x, y).
func (d *Dev) Pixel(x, y int) bool {
	return d.fb.Pixel(x, y)
}

// Line draws a line from (x0, y0) to (x1, y1), both ends included.
func (d *Dev) Line(x0, y0, x1, y1 int) {
	raster.Line(d.fb, x0, y0, x1, y1)
}

// HLine draws a horizontal line of w pixels starting at (x, y).
func (d *Dev) HLine(x, y, w int) {
	raster.HLine(d.fb, x, y, w)
}

// VLine draws a vertical line of h pixels starting at (x, y).
func (d *Dev) VLine(x, y, h int) {
	raster.VLine(d.fb, x, y, h)
}

// Rect draws the outline of a w by h rectangle with its top left at (x, y).
func (d *Dev) Rect(x, y, w, h int) {
	raster.Rect(d.fb, x, y, w, h)
}

// FillRect draws a filled w by h rectangle with its top left at (x, y).
func (d *Dev) FillRect(x, y, w, h int) {
	raster.FillRect(d.fb, x, y, w, h)
}

// RoundRect draws a rectangle outline with corners of radius r.
func (d *Dev) RoundRect(x, y, w, h, r int) {
	raster.RoundRect(d.fb, x, y, w, h, r)
}

// FillRoundRect draws a filled rectangle with corners of radius r.
func (d *Dev) FillRoundRect(x, y, w, h, r int) {
	raster.FillRoundRect(d.fb, x, y, w, h, r)
}

// Circle draws a circle outline of radius r centred on (x0, y0).
func (d *Dev) Circle(x0, y0, r int) {
	raster.Circle(d.fb, x0, y0, r)
}

// FillCircle draws a filled circle of radius r centred on (x0, y0).
func (d *Dev) FillCircle(x0, y0, r int) {
	raster.FillCircle(d.fb, x0, y0, r)
}

// Triangle draws the outline of the triangle with the given corners.
func (d *Dev) Triangle(x0, y0, x1, y1, x2, y2 int) {
	raster.Triangle(d.fb, x0, y0, x1, y1, x2, y2)
}

// FillTriangle draws a filled triangle with the given corners.
func (d *Dev) FillTriangle(x0, y0, x1, y1, x2, y2 int) {
	raster.FillTriangle(d.fb, x0, y0, x1, y1, x2, y2)
}

// FillScreen lights every pixel.
func (d *Dev) FillScreen() {
	d.fb.Fill(true)
}

// Clear turns every pixel off.
func (d *Dev) Clear() {
	d.fb.Clear()
}

// DrawGlyph renders g at (x, y). See glyph.Draw for the positioning rules.
func (d *Dev) DrawGlyph(g *glyph.Glyph, x, y int) {
	glyph.Draw(d.fb, g, x, y)
}

// DrawChar renders r from f with the top of the text line at (x, y) and
// returns the horizontal advance, 0 when f has no glyph for r.
func (d *Dev) DrawChar(f glyph.Font, r rune, x, y int) int {
	return glyph.DrawChar(d.fb, f, r, x, y)
}

// DrawString renders s from f with the top of the first line at (x, y).
func (d *Dev) DrawString(f glyph.Font, s string, x, y int) {
	glyph.DrawString(d.fb, f, s, x, y)
}
