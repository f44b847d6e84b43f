// Package termview emulates an SSD1306 in a terminal.
//
// A View is a conn.Conn accepting the same control-byte framed writes the
// controller accepts on I²C. It keeps its own display RAM and follows the
// addressing window and display mode commands. The whole panel is redrawn
// with half block characters after every data write.
package termview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/flavioheleno/ssd1306"
	"github.com/flavioheleno/ssd1306/image1bit"
	"golang.org/x/term"
	"periph.io/x/conn/v3"
)

var errRead = errors.New("termview: reads are not supported")

// argc is the number of argument bytes following each multi-byte command.
var argc = map[byte]int{
	0x20: 1, // Memory addressing mode
	0x21: 2, // Column address
	0x22: 2, // Page address
	0x26: 6, // Right horizontal scroll setup
	0x27: 6, // Left horizontal scroll setup
	0x29: 5, // Vertical and right scroll setup
	0x2A: 5, // Vertical and left scroll setup
	0x81: 1, // Contrast
	0x8D: 1, // Charge pump
	0xA3: 2, // Vertical scroll area
	0xA8: 1, // Multiplex ratio
	0xD3: 1, // Display offset
	0xD5: 1, // Clock divide
	0xD9: 1, // Pre-charge period
	0xDA: 1, // COM pins
	0xDB: 1, // VCOMH level
}

// View is an emulated panel rendering to a writer.
//
// A View is not safe for concurrent use.
type View struct {
	w    io.Writer
	ansi bool
	cols int

	ram image1bit.PageBuffer

	on       bool
	inverted bool
	contrast byte
	colLo    int
	colHi    int
	pageLo   int
	pageHi   int
	col      int
	page     int

	// Partial command carried over to the next write.
	pending []byte
	frames  int
}

var _ conn.Conn = (*View)(nil)

// New returns a View drawing on w.
//
// When w is a terminal the cursor is homed before every frame and panels
// wider than the terminal are drawn at half width.
func New(w io.Writer) *View {
	v := &View{w: w, contrast: 0x7F, colHi: image1bit.Width - 1, pageHi: image1bit.Pages - 1}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			v.ansi = true
			if cols, _, err := term.GetSize(fd); err == nil {
				v.cols = cols
			}
		}
	}
	return v
}

// Tx implements conn.Conn. w starts with the control byte, 0x00 for
// commands or 0x40 for display data.
func (v *View) Tx(w, r []byte) error {
	if len(r) != 0 {
		return errRead
	}
	if len(w) == 0 {
		return nil
	}
	switch w[0] {
	case 0x00:
		v.command(w[1:])
		return nil
	case 0x40:
		v.data(w[1:])
		return v.render()
	default:
		return fmt.Errorf("termview: unknown control byte %#x", w[0])
	}
}

// Duplex implements conn.Conn.
func (v *View) Duplex() conn.Duplex {
	return conn.Half
}

func (v *View) String() string {
	return "termview"
}

func (v *View) command(p []byte) {
	p = append(v.pending, p...)
	v.pending = nil
	for len(p) > 0 {
		n := 1 + argc[p[0]]
		if n > len(p) {
			v.pending = append([]byte(nil), p...)
			return
		}
		v.exec(p[0], p[1:n])
		p = p[n:]
	}
}

func (v *View) exec(cmd byte, args []byte) {
	switch cmd {
	case 0xAE:
		v.on = false
	case 0xAF:
		v.on = true
	case 0xA6:
		v.inverted = false
	case 0xA7:
		v.inverted = true
	case 0x81:
		v.contrast = args[0]
	case 0x21:
		v.colLo = int(args[0]) & 0x7F
		v.colHi = int(args[1]) & 0x7F
		v.col = v.colLo
	case 0x22:
		v.pageLo = int(args[0]) & 0x07
		v.pageHi = int(args[1]) & 0x07
		v.page = v.pageLo
	}
}

// data writes p at the RAM pointer, wrapping inside the address window like
// horizontal addressing mode.
func (v *View) data(p []byte) {
	for _, b := range p {
		v.ram[v.page*image1bit.Width+v.col] = b
		if v.col < v.colHi {
			v.col++
			continue
		}
		v.col = v.colLo
		if v.page < v.pageHi {
			v.page++
		} else {
			v.page = v.pageLo
		}
	}
	v.frames++
}

// Pixel reports whether the pixel at (x, y) is lit on the emulated panel.
func (v *View) Pixel(x, y int) bool {
	if !v.on {
		return false
	}
	return v.ram.Pixel(x, y) != v.inverted
}

// On reports whether the panel is switched on.
func (v *View) On() bool {
	return v.on
}

// Inverted reports whether the panel shows inverted colors.
func (v *View) Inverted() bool {
	return v.inverted
}

// Contrast returns the last contrast level set.
func (v *View) Contrast() byte {
	return v.contrast
}

// Frames returns the number of data writes received.
func (v *View) Frames() int {
	return v.frames
}

// blocks is indexed by top pixel and bottom pixel.
var blocks = [2][2]rune{{' ', '▄'}, {'▀', '█'}}

func (v *View) render() error {
	step := 1
	if v.cols > 0 && v.cols < image1bit.Width {
		step = 2
	}
	var b strings.Builder
	if v.ansi {
		b.WriteString("\x1b[H")
	}
	for y := 0; y < image1bit.Height; y += 2 {
		for x := 0; x < image1bit.Width; x += step {
			b.WriteRune(blocks[v.cell(x, y, step)][v.cell(x, y+1, step)])
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(v.w, b.String())
	return err
}

// cell is 1 if any of the step pixels starting at (x, y) is lit.
func (v *View) cell(x, y, step int) int {
	for i := 0; i < step; i++ {
		if v.Pixel(x+i, y) {
			return 1
		}
	}
	return 0
}

// Opener returns an ssd1306.Opener rendering to w. It never fails.
func Opener(w io.Writer) ssd1306.Opener {
	return ssd1306.OpenerFunc(func(ctx context.Context) (ssd1306.Transport, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return ssd1306.NewFramed(New(w)), nil
	})
}
