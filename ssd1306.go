package ssd1306

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"log/slog"
	"os"

	"github.com/flavioheleno/ssd1306/image1bit"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Errors
var (
	// ErrNotFound is wrapped by an Opener when there is no display to open.
	// It moves the session to Absent for good.
	ErrNotFound = errors.New("ssd1306: device not found")

	// ErrNotReady is returned by controller operations before the session
	// reached Ready.
	ErrNotReady = errors.New("ssd1306: not ready")
)

// DefaultAddr is the usual I²C address of SSD1306 modules.
const DefaultAddr = 0x3C

var debug bool

func init() {
	debug = os.Getenv("DISPLAY_DEBUG") != ""
}

// State is the lifecycle state of a Dev.
type State uint8

const (
	// Uninitialized sessions have no transport. Initialize may be called.
	Uninitialized State = iota
	// Initializing is held while the bus is acquired.
	Initializing
	// Ready sessions have a transport and an initialized controller.
	Ready
	// Absent sessions found no device. They never retry.
	Absent
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Initializing:
		return "Initializing"
	case Ready:
		return "Ready"
	case Absent:
		return "Absent"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Opts is the configuration for the SSD1306 display.
type Opts struct {
	// Addr is the I²C address (default: 0x3C).
	Addr uint16
	// Speed is the bus clock (default: 400kHz I²C fast mode).
	Speed physic.Frequency
	// Rotated turns the picture by 180°.
	Rotated bool
	// Logger receives the failures the session swallows (default: slog.Default()).
	Logger *slog.Logger
}

func (o *Opts) withDefaults() Opts {
	var r Opts
	if o != nil {
		r = *o
	}
	if r.Addr == 0 {
		r.Addr = DefaultAddr
	}
	if r.Speed == 0 {
		r.Speed = 400 * physic.KiloHertz
	}
	if r.Logger == nil {
		r.Logger = slog.Default()
	}
	return r
}

// Dev is a display session for a 128x64 SSD1306 panel.
//
// Drawing happens in memory and never fails. Update sends the frame when
// something changed and the session is Ready. A Dev is not safe for
// concurrent use.
type Dev struct {
	open  Opener
	t     Transport
	state State
	opts  Opts
	log   *slog.Logger

	fb    *image1bit.Framebuffer
	pages image1bit.PageBuffer

	err error
}

// New returns an Uninitialized session acquiring its transport from o.
//
// opts can be nil to use defaults.
func New(o Opener, opts *Opts) *Dev {
	op := opts.withDefaults()
	return &Dev{
		open: o,
		opts: op,
		log:  op.Logger,
		fb:   image1bit.NewFramebuffer(),
	}
}

// NewI2C returns a Ready session for the display at opts.Addr on b.
//
// The bus speed is left to the caller.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	o := opts.withDefaults()
	return newReady(BusOpener(b, o.Addr), opts)
}

// NewSPI returns a Ready session for a display wired to p with its D/C line
// on dc. opts.Speed is the SPI clock, 10MHz when unset.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	var f physic.Frequency
	if opts != nil {
		f = opts.Speed
	}
	return newReady(OpenerFunc(func(ctx context.Context) (Transport, error) {
		return NewSPITransport(p, dc, f)
	}), opts)
}

func newReady(o Opener, opts *Opts) (*Dev, error) {
	d := New(o, opts)
	d.Initialize(context.Background())
	if d.state != Ready {
		return nil, d.err
	}
	return d, nil
}

// initSequence is sent one command at a time, in order.
func initSequence(rotated bool) [][]byte {
	remap, scan := byte(0xA1), byte(0xC8)
	if rotated {
		remap, scan = 0xA0, 0xC0
	}
	return [][]byte{
		{0x8D, 0x14},       // Charge pump on
		{0x20, 0x00},       // Horizontal addressing mode
		{remap},            // Segment remap
		{scan},             // COM scan direction
		{0xAF},             // Display ON
		{0x21, 0x00, 0x7F}, // Column address 0-127
		{0x22, 0x00, 0x07}, // Page address 0-7
	}
}

// Initialize acquires the transport and configures the controller.
//
// It does nothing unless the session is Uninitialized. When the Opener
// reports ErrNotFound the session becomes Absent and stays so. Any other
// failure returns it to Uninitialized so Initialize can be called again.
// Failures are only logged and kept for Err.
func (d *Dev) Initialize(ctx context.Context) {
	if d.state != Uninitialized {
		return
	}
	d.state = Initializing

	t, err := d.acquire(ctx)
	if err != nil {
		d.err = err
		if errors.Is(err, ErrNotFound) {
			d.state = Absent
			d.log.Warn("ssd1306: display absent", "err", err)
			return
		}
		d.state = Uninitialized
		d.log.Warn("ssd1306: initialization failed", "err", err)
		return
	}

	d.t = t
	d.err = nil
	d.state = Ready
	// Controller RAM content is undefined until the first frame.
	d.fb.MarkDirty()
}

func (d *Dev) acquire(ctx context.Context) (Transport, error) {
	if d.open == nil {
		return nil, fmt.Errorf("ssd1306: no opener: %w", ErrNotFound)
	}
	t, err := d.open.Open(ctx)
	if err != nil {
		return nil, err
	}
	if debug {
		t = &debugTransport{Transport: t, log: d.log}
	}
	for _, cmd := range initSequence(d.opts.Rotated) {
		if err := t.SendCommand(cmd); err != nil {
			closeTransport(t)
			return nil, fmt.Errorf("ssd1306: init: %w", err)
		}
	}
	return t, nil
}

func closeTransport(t Transport) error {
	if c, ok := t.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Update sends the framebuffer to the display if it changed since the last
// frame sent. It reports whether a frame was sent.
//
// Without a transport the frame is serialized but the framebuffer stays
// dirty, so the first Update after Initialize succeeds sends it.
func (d *Dev) Update() bool {
	sent, _ := d.flush()
	return sent
}

func (d *Dev) flush() (bool, error) {
	if !d.fb.Dirty() {
		return false, nil
	}
	d.pages.Serialize(d.fb)
	if d.state != Ready || d.t == nil {
		return false, nil
	}
	if err := d.t.SendData(d.pages[:]); err != nil {
		d.err = fmt.Errorf("ssd1306: update: %w", err)
		d.log.Error("ssd1306: frame not sent", "err", err)
		return false, d.err
	}
	d.fb.ClearDirty()
	return true, nil
}

// Present reports whether the session is Ready.
func (d *Dev) Present() bool {
	return d.state == Ready
}

// State returns the lifecycle state.
func (d *Dev) State() State {
	return d.state
}

// Err returns the last error swallowed by Initialize or Update, nil after a
// successful Initialize.
func (d *Dev) Err() error {
	return d.err
}

// Framebuffer returns the in-memory frame the drawing methods write to.
func (d *Dev) Framebuffer() *image1bit.Framebuffer {
	return d.fb
}

// Frame returns the last serialized frame.
func (d *Dev) Frame() *image1bit.PageBuffer {
	return &d.pages
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.fb.Bounds()
}

// Draw draws src onto the framebuffer and updates the display.
// The src image is positioned at src point sp within the destination.
//
// It returns the transmit error, if any. A session that is not Ready
// only draws in memory and returns nil.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	dst = dst.Intersect(d.fb.Bounds())
	if dst.Empty() {
		return nil
	}
	draw.Draw(d.fb, dst, src, sp, draw.Src)
	_, err := d.flush()
	return err
}

// SetContrast sets the display contrast (0-255).
func (d *Dev) SetContrast(level byte) error {
	return d.command(0x81, level)
}

// Invert inverts the display colors (black becomes white and vice versa).
func (d *Dev) Invert(invert bool) error {
	mode := byte(0xA6) // Normal display
	if invert {
		mode = 0xA7 // Inverted display
	}
	return d.command(mode)
}

// ScrollSpeed is the horizontal scroll step interval.
type ScrollSpeed byte

const (
	// Scroll step intervals (in frames)
	Speed2Frames   ScrollSpeed = 0x07
	Speed3Frames   ScrollSpeed = 0x04
	Speed4Frames   ScrollSpeed = 0x05
	Speed5Frames   ScrollSpeed = 0x00
	Speed25Frames  ScrollSpeed = 0x06
	Speed64Frames  ScrollSpeed = 0x01
	Speed128Frames ScrollSpeed = 0x02
	Speed256Frames ScrollSpeed = 0x03
)

var errScrollRange = errors.New("ssd1306: scroll page out of range")

// ScrollHorizontal starts horizontal scrolling of pages startPage to
// endPage. If right is true, scrolls right; otherwise scrolls left.
func (d *Dev) ScrollHorizontal(startPage, endPage byte, speed ScrollSpeed, right bool) error {
	if startPage >= image1bit.Pages || endPage >= image1bit.Pages || startPage > endPage {
		return errScrollRange
	}
	cmd := byte(0x27) // Left
	if right {
		cmd = 0x26 // Right
	}
	return d.command(
		0x2E, // Scroll must be off while it is set up
		cmd,
		0x00, // Dummy byte
		startPage,
		byte(speed)&0x07,
		endPage,
		0x00, 0xFF, // Dummy bytes
		0x2F, // Activate scroll
	)
}

// StopScroll stops scrolling. The picture must be redrawn afterwards.
func (d *Dev) StopScroll() error {
	if err := d.command(0x2E); err != nil {
		return err
	}
	d.fb.MarkDirty()
	return nil
}

// Halt turns the display off. Drawing continues in memory.
func (d *Dev) Halt() error {
	return d.command(0xAE)
}

// Close turns the display off and releases the transport. The session
// returns to Uninitialized.
func (d *Dev) Close() error {
	if d.state != Ready {
		return nil
	}
	err := d.t.SendCommand([]byte{0xAE})
	if cerr := closeTransport(d.t); err == nil {
		err = cerr
	}
	d.t = nil
	d.state = Uninitialized
	return err
}

func (d *Dev) command(cmds ...byte) error {
	if d.state != Ready {
		return ErrNotReady
	}
	return d.t.SendCommand(cmds)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1306.Dev{%dx%d, %s}", image1bit.Width, image1bit.Height, d.state)
}
