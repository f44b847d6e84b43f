package image1bit

import (
	"image"
	"image/color"
)

// Panel geometry.
const (
	Width      = 128
	Height     = 64
	PageHeight = 8
	Pages      = Height / PageHeight
)

// Bit represents a monochrome pixel: true is lit, false is dark.
type Bit bool

const (
	On  Bit = true
	Off Bit = false
)

// RGBA converts the Bit to standard RGBA. A lit pixel is white.
func (b Bit) RGBA() (r, g, bl, a uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

// String returns "On" or "Off".
func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Off
	}
	// Standard grayscale conversion: 0.299R + 0.587G + 0.114B
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit using a 50% luminance threshold.
var BitModel = color.ModelFunc(toBit)

// Framebuffer is the 128x64 pixel grid mirrored to the display RAM.
//
// Dirty reports whether any pixel changed since the last ClearDirty.
// The zero value is an all-dark, clean framebuffer.
type Framebuffer struct {
	pix   [Width][Height]bool
	dirty bool
}

// NewFramebuffer returns an all-dark framebuffer.
func NewFramebuffer() *Framebuffer {
	return &Framebuffer{}
}

// SetPixel sets the pixel at (x, y). Out of range coordinates are ignored.
func (f *Framebuffer) SetPixel(x, y int, on bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	if f.pix[x][y] != on {
		f.pix[x][y] = on
		f.dirty = true
	}
}

// Pixel returns the pixel at (x, y). Out of range coordinates read as dark.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f.pix[x][y]
}

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	f.Fill(false)
}

// Fill sets every pixel to on.
func (f *Framebuffer) Fill(on bool) {
	for x := range f.pix {
		for y := range f.pix[x] {
			if f.pix[x][y] != on {
				f.pix[x][y] = on
				f.dirty = true
			}
		}
	}
}

// Dirty reports whether the framebuffer changed since the last ClearDirty.
func (f *Framebuffer) Dirty() bool {
	return f.dirty
}

// MarkDirty forces the next update to resend the frame.
func (f *Framebuffer) MarkDirty() {
	f.dirty = true
}

// ClearDirty marks the current content as transmitted.
func (f *Framebuffer) ClearDirty() {
	f.dirty = false
}

// ColorModel returns the color model of the image.
func (f *Framebuffer) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (f *Framebuffer) At(x, y int) color.Color {
	return f.BitAt(x, y)
}

// BitAt returns the Bit of the pixel at (x, y).
func (f *Framebuffer) BitAt(x, y int) Bit {
	return Bit(f.Pixel(x, y))
}

// Set sets the color of the pixel at (x, y).
// It implements the draw.Image interface.
func (f *Framebuffer) Set(x, y int, c color.Color) {
	f.SetPixel(x, y, bool(BitModel.Convert(c).(Bit)))
}

// SetBit sets the Bit of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (f *Framebuffer) SetBit(x, y int, b Bit) {
	f.SetPixel(x, y, bool(b))
}
