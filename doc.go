// Package ssd1306 controls a 128×64 SSD1306 monochrome OLED display.
//
// The driver keeps a framebuffer in memory. All drawing happens there and
// never fails; Update serializes the framebuffer into the controller's page
// layout and sends it as one data write when something changed.
//
// # Display Characteristics
//
// - 1 bit per pixel, 128 columns by 64 rows
// - Display RAM organised in 8 pages of 8 rows, one byte per page column
// - Horizontal addressing mode, so one 1024 byte write refreshes the panel
// - Hardware horizontal scrolling, contrast and inversion
//
// # Hardware Connection
//
// Connect the SSD1306 module via I²C:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL         → I²C Clock (SCL)
//	SDA         → I²C Data (SDA)
//
// 4-wire SPI modules are supported too, with an extra GPIO for D/C.
//
// # Session Lifecycle
//
// A Dev starts Uninitialized. Initialize acquires the bus through an
// Opener and sends the init sequence:
//
//	Uninitialized → Initializing → Ready
//	                             → Absent         (no device, final)
//	                             → Uninitialized  (transient, retry later)
//
// Failures are logged and available from Err; Present reports Ready.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"context"
//
//		"github.com/flavioheleno/ssd1306"
//		"github.com/flavioheleno/ssd1306/glyph"
//		"golang.org/x/image/font/basicfont"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		dev := ssd1306.New(ssd1306.I2COpener("", nil), nil)
//		dev.Initialize(context.Background())
//		if !dev.Present() {
//			return
//		}
//		defer dev.Close()
//
//		dev.Rect(0, 0, 128, 64)
//		dev.FillCircle(64, 32, 10)
//		dev.DrawString(glyph.NewBasic(basicfont.Face7x13), "Hello", 4, 4)
//		dev.Update()
//	}
//
// NewI2C and NewSPI cover the case where the bus is already open and return
// a Ready Dev or an error.
//
// # Fonts
//
// Text is drawn from a glyph.Font. glyph.Table holds explicit glyph lists,
// glyph.NewBasic adapts x/image basicfont faces and glyph.NewTiny adapts
// tinyfont fonts. Glyphs overwrite every pixel of their box, so redrawing
// text in place needs no clear.
//
// # Image Interop
//
// The framebuffer is a draw.Image with the image1bit.BitModel color model,
// and Dev.Draw accepts any image.Image:
//
//	dev.Draw(dev.Bounds(), img, image.Point{})
//
// # Hardware Scrolling
//
//	dev.ScrollHorizontal(0, 7, ssd1306.Speed5Frames, false)
//	time.Sleep(5 * time.Second)
//	dev.StopScroll()
//
// # Debugging
//
// With DISPLAY_DEBUG set in the environment every command and data write is
// logged at debug level as a hex dump.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package ssd1306
