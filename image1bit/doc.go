// Package image1bit provides the 1-bit framebuffer and page buffer for the SSD1306 display controller.
//
// The SSD1306 drives a 128x64 monochrome panel. Its display RAM is split into 8 horizontal pages of
// 8 pixel rows each. A page byte holds one column of 8 vertically consecutive pixels, the top row of
// the page in bit 0.
//
// Memory layout example for column 3 of page 1 (pixel rows 8-15):
//
//	Row:    8  9  10 11 12 13 14 15
//	Pixel:  1  0  0  0  0  0  0  1
//	Byte:   PageBuffer[1*128+3] = 0x81
//
// This package provides:
//
// - Bit: a color type representing a lit or dark pixel
// - BitModel: a color model converting standard Go colors to Bit
// - Framebuffer: the 128x64 pixel grid with change tracking, usable as a draw.Image
// - PageBuffer: the 1024-byte wire image of a Framebuffer
//
// Example usage:
//
//	fb := image1bit.NewFramebuffer()
//	fb.SetPixel(10, 20, true)
//
//	var pages image1bit.PageBuffer
//	if fb.Dirty() {
//		pages.Serialize(fb)
//	}
//
//	// Use with standard Go image operations
//	draw.Draw(fb, fb.Bounds(), image.NewUniform(image1bit.On), image.Point{}, draw.Src)
package image1bit
