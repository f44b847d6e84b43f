package ssd1306

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/flavioheleno/ssd1306/image1bit"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
)

// fakeTransport records every write.
type fakeTransport struct {
	cmds    [][]byte
	data    [][]byte
	cmdErr  error
	dataErr error
	closed  bool
}

func (f *fakeTransport) SendCommand(cmds []byte) error {
	if f.cmdErr != nil {
		return f.cmdErr
	}
	f.cmds = append(f.cmds, append([]byte(nil), cmds...))
	return nil
}

func (f *fakeTransport) SendData(data []byte) error {
	if f.dataErr != nil {
		return f.dataErr
	}
	f.data = append(f.data, append([]byte(nil), data...))
	return nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

// fakeOpener hands out a transport or fails with err, counting calls.
type fakeOpener struct {
	t     *fakeTransport
	err   error
	calls int
}

func (o *fakeOpener) Open(ctx context.Context) (Transport, error) {
	o.calls++
	if o.err != nil {
		return nil, o.err
	}
	return o.t, nil
}

func quietOpts() *Opts {
	return &Opts{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func readyDev(t *testing.T) (*Dev, *fakeTransport) {
	t.Helper()
	ft := &fakeTransport{}
	d := New(&fakeOpener{t: ft}, quietOpts())
	d.Initialize(context.Background())
	if d.State() != Ready {
		t.Fatalf("State() = %v, want Ready (err %v)", d.State(), d.Err())
	}
	return d, ft
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Uninitialized, "Uninitialized"},
		{Initializing, "Initializing"},
		{Ready, "Ready"},
		{Absent, "Absent"},
		{State(9), "State(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", uint8(tt.s), got, tt.want)
		}
	}
}

func TestOptsDefaults(t *testing.T) {
	o := (*Opts)(nil).withDefaults()
	if o.Addr != 0x3C {
		t.Errorf("Addr = %#x, want 0x3c", o.Addr)
	}
	if o.Speed != 400*physic.KiloHertz {
		t.Errorf("Speed = %s, want 400kHz", o.Speed)
	}
	if o.Logger == nil {
		t.Error("Logger is nil")
	}

	o = (&Opts{Addr: 0x3D, Rotated: true}).withDefaults()
	if o.Addr != 0x3D || !o.Rotated {
		t.Errorf("withDefaults() = %+v, overrides lost", o)
	}
}

func TestInitializeSequence(t *testing.T) {
	tests := []struct {
		name    string
		rotated bool
		remap   byte
		scan    byte
	}{
		{"normal", false, 0xA1, 0xC8},
		{"rotated", true, 0xA0, 0xC0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := &fakeTransport{}
			opts := quietOpts()
			opts.Rotated = tt.rotated
			d := New(&fakeOpener{t: ft}, opts)
			d.Initialize(context.Background())

			want := [][]byte{
				{0x8D, 0x14},
				{0x20, 0x00},
				{tt.remap},
				{tt.scan},
				{0xAF},
				{0x21, 0x00, 0x7F},
				{0x22, 0x00, 0x07},
			}
			if len(ft.cmds) != len(want) {
				t.Fatalf("sent %d commands, want %d", len(ft.cmds), len(want))
			}
			for i := range want {
				if !bytes.Equal(ft.cmds[i], want[i]) {
					t.Errorf("command %d = % x, want % x", i, ft.cmds[i], want[i])
				}
			}
			if !d.Present() || d.Err() != nil {
				t.Errorf("Present() = %v, Err() = %v", d.Present(), d.Err())
			}
		})
	}
}

func TestInitializeAbsentIsPermanent(t *testing.T) {
	o := &fakeOpener{err: ErrNotFound}
	d := New(o, quietOpts())

	for i := 0; i < 3; i++ {
		d.Initialize(context.Background())
		if d.State() != Absent || d.Present() {
			t.Fatalf("attempt %d: State() = %v, Present() = %v", i, d.State(), d.Present())
		}
	}
	if o.calls != 1 {
		t.Errorf("opener called %d times, want 1", o.calls)
	}
	if !errors.Is(d.Err(), ErrNotFound) {
		t.Errorf("Err() = %v, want ErrNotFound", d.Err())
	}
}

func TestInitializeTransientRetries(t *testing.T) {
	o := &fakeOpener{err: errors.New("bus busy")}
	d := New(o, quietOpts())

	d.Initialize(context.Background())
	if d.State() != Uninitialized || d.Present() {
		t.Fatalf("State() = %v, want Uninitialized", d.State())
	}
	if d.Err() == nil {
		t.Error("Err() = nil after a failed attempt")
	}

	o.err = nil
	o.t = &fakeTransport{}
	d.Initialize(context.Background())
	if d.State() != Ready {
		t.Fatalf("State() = %v, want Ready", d.State())
	}
	if o.calls != 2 {
		t.Errorf("opener called %d times, want 2", o.calls)
	}
	if d.Err() != nil {
		t.Errorf("Err() = %v after success", d.Err())
	}
}

func TestInitializeCommandFailure(t *testing.T) {
	ft := &fakeTransport{cmdErr: errors.New("nack")}
	d := New(&fakeOpener{t: ft}, quietOpts())
	d.Initialize(context.Background())

	if d.State() != Uninitialized {
		t.Errorf("State() = %v, want Uninitialized", d.State())
	}
	if !ft.closed {
		t.Error("transport not released after a failed init sequence")
	}
}

func TestInitializeWrappedNotFound(t *testing.T) {
	d := New(&fakeOpener{err: errors.Join(errors.New("enumerate"), ErrNotFound)}, quietOpts())
	d.Initialize(context.Background())
	if d.State() != Absent {
		t.Errorf("State() = %v, want Absent", d.State())
	}

	d = New(nil, quietOpts())
	d.Initialize(context.Background())
	if d.State() != Absent {
		t.Errorf("nil opener: State() = %v, want Absent", d.State())
	}
}

func TestInitializeNoopWhenReady(t *testing.T) {
	o := &fakeOpener{t: &fakeTransport{}}
	d := New(o, quietOpts())
	d.Initialize(context.Background())
	d.Initialize(context.Background())
	if o.calls != 1 {
		t.Errorf("opener called %d times, want 1", o.calls)
	}
}

func TestInitializeNoopWhileInitializing(t *testing.T) {
	var d *Dev
	inner := 0
	o := OpenerFunc(func(ctx context.Context) (Transport, error) {
		inner++
		d.Initialize(ctx)
		return &fakeTransport{}, nil
	})
	d = New(o, quietOpts())
	d.Initialize(context.Background())
	if inner != 1 {
		t.Errorf("opener entered %d times, want 1", inner)
	}
	if d.State() != Ready {
		t.Errorf("State() = %v, want Ready", d.State())
	}
}

func TestUpdate(t *testing.T) {
	d, ft := readyDev(t)

	// Reaching Ready forces the first frame out.
	if !d.Update() {
		t.Fatal("first Update() sent nothing")
	}
	if len(ft.data) != 1 || len(ft.data[0]) != image1bit.BufferSize {
		t.Fatalf("sent %d frames, want one of %d bytes", len(ft.data), image1bit.BufferSize)
	}

	if d.Update() {
		t.Error("Update() without changes sent a frame")
	}
	if len(ft.data) != 1 {
		t.Errorf("transport called %d times, want 1", len(ft.data))
	}

	d.SetPixel(3, 9, true)
	if !d.Update() {
		t.Fatal("Update() after a change sent nothing")
	}
	if got := ft.data[1][128+3]; got != 0x02 {
		t.Errorf("byte 131 = %#x, want 0x02", got)
	}
}

func TestUpdateUnchangedPixelIsNotDirty(t *testing.T) {
	d, ft := readyDev(t)
	d.Update()
	d.SetPixel(0, 0, false)
	d.SetPixel(200, 5, true)
	if d.Update() {
		t.Error("Update() sent a frame though nothing changed")
	}
	if len(ft.data) != 1 {
		t.Errorf("transport called %d times, want 1", len(ft.data))
	}
}

func TestUpdateWithoutTransport(t *testing.T) {
	ft := &fakeTransport{}
	d := New(&fakeOpener{t: ft}, quietOpts())
	d.FillRect(0, 0, 8, 8)

	if d.Update() {
		t.Fatal("Update() reported a frame before Initialize")
	}
	if d.Frame()[0] != 0xFF || d.Frame()[8] != 0x00 {
		t.Errorf("frame not serialized: [0]=%#x [8]=%#x", d.Frame()[0], d.Frame()[8])
	}
	if !d.Framebuffer().Dirty() {
		t.Error("dirty flag cleared without a transport")
	}

	d.Initialize(context.Background())
	if !d.Update() {
		t.Fatal("Update() after Initialize sent nothing")
	}
	if ft.data[0][0] != 0xFF {
		t.Errorf("first byte = %#x, want 0xff", ft.data[0][0])
	}
}

func TestUpdateTransmitError(t *testing.T) {
	d, ft := readyDev(t)
	ft.dataErr = errors.New("bus error")

	if d.Update() {
		t.Fatal("Update() reported success")
	}
	if d.Err() == nil {
		t.Error("Err() = nil after a failed transmit")
	}
	if !d.Framebuffer().Dirty() {
		t.Error("dirty flag cleared after a failed transmit")
	}

	ft.dataErr = nil
	if !d.Update() {
		t.Error("Update() did not resend after the bus recovered")
	}
}

func TestDraw(t *testing.T) {
	d, ft := readyDev(t)
	src := image.NewUniform(image1bit.On)

	if err := d.Draw(image.Rect(0, 0, 2, 8), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if len(ft.data) != 1 {
		t.Fatalf("Draw() sent %d frames, want 1", len(ft.data))
	}
	if ft.data[0][0] != 0xFF || ft.data[0][1] != 0xFF || ft.data[0][2] != 0 {
		t.Errorf("frame starts % x, want ff ff 00", ft.data[0][:3])
	}

	ft.dataErr = errors.New("bus error")
	d.Clear()
	if err := d.Draw(d.Bounds(), src, image.Point{}); err == nil {
		t.Error("Draw() did not report the transmit error")
	}

	if err := d.Draw(image.Rect(200, 200, 300, 300), src, image.Point{}); err != nil {
		t.Errorf("Draw() outside the panel = %v", err)
	}
}

func TestDrawNotReady(t *testing.T) {
	d := New(nil, quietOpts())
	if err := d.Draw(d.Bounds(), image.NewUniform(image1bit.On), image.Point{}); err != nil {
		t.Errorf("Draw() = %v, want nil before Initialize", err)
	}
	if !d.Pixel(127, 63) {
		t.Error("Draw() did not reach the framebuffer")
	}
}

func TestControllerCommands(t *testing.T) {
	tests := []struct {
		name string
		fn   func(d *Dev) error
		want []byte
	}{
		{"contrast", func(d *Dev) error { return d.SetContrast(0x7F) }, []byte{0x81, 0x7F}},
		{"invert", func(d *Dev) error { return d.Invert(true) }, []byte{0xA7}},
		{"normal", func(d *Dev) error { return d.Invert(false) }, []byte{0xA6}},
		{"halt", func(d *Dev) error { return d.Halt() }, []byte{0xAE}},
		{"stop scroll", func(d *Dev) error { return d.StopScroll() }, []byte{0x2E}},
		{
			"scroll left",
			func(d *Dev) error { return d.ScrollHorizontal(0, 7, Speed5Frames, false) },
			[]byte{0x2E, 0x27, 0x00, 0x00, 0x00, 0x07, 0x00, 0xFF, 0x2F},
		},
		{
			"scroll right",
			func(d *Dev) error { return d.ScrollHorizontal(2, 3, Speed2Frames, true) },
			[]byte{0x2E, 0x26, 0x00, 0x02, 0x07, 0x03, 0x00, 0xFF, 0x2F},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ft := readyDev(t)
			n := len(ft.cmds)
			if err := tt.fn(d); err != nil {
				t.Fatal(err)
			}
			if len(ft.cmds) != n+1 || !bytes.Equal(ft.cmds[n], tt.want) {
				t.Errorf("sent % x, want % x", ft.cmds[n:], tt.want)
			}

			nd := New(nil, quietOpts())
			if err := tt.fn(nd); !errors.Is(err, ErrNotReady) {
				t.Errorf("before Initialize: err = %v, want ErrNotReady", err)
			}
		})
	}
}

func TestScrollRange(t *testing.T) {
	d, ft := readyDev(t)
	n := len(ft.cmds)
	for _, r := range [][2]byte{{0, 8}, {8, 8}, {5, 2}} {
		if err := d.ScrollHorizontal(r[0], r[1], Speed5Frames, false); err == nil {
			t.Errorf("ScrollHorizontal(%d, %d) accepted", r[0], r[1])
		}
	}
	if len(ft.cmds) != n {
		t.Error("invalid scroll reached the controller")
	}
}

func TestClose(t *testing.T) {
	d, ft := readyDev(t)
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if !ft.closed {
		t.Error("transport not closed")
	}
	if !bytes.Equal(ft.cmds[len(ft.cmds)-1], []byte{0xAE}) {
		t.Errorf("last command % x, want ae", ft.cmds[len(ft.cmds)-1])
	}
	if d.State() != Uninitialized {
		t.Errorf("State() = %v, want Uninitialized", d.State())
	}
	if err := d.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestDevBounds(t *testing.T) {
	d := New(nil, nil)
	want := image.Rect(0, 0, 128, 64)
	if got := d.Bounds(); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if d.ColorModel() != image1bit.BitModel {
		t.Error("ColorModel() did not return BitModel")
	}
}

func TestDevString(t *testing.T) {
	d := New(nil, nil)
	want := "ssd1306.Dev{128x64, Uninitialized}"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNewI2C(t *testing.T) {
	bus := &i2ctest.Record{}
	opts := quietOpts()
	opts.Addr = 0x3D
	d, err := NewI2C(bus, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(bus.Ops) != 7 {
		t.Fatalf("init wrote %d transactions, want 7", len(bus.Ops))
	}
	for i, op := range bus.Ops {
		if op.Addr != 0x3D {
			t.Errorf("op %d addressed %#x, want 0x3d", i, op.Addr)
		}
		if op.W[0] != 0x00 {
			t.Errorf("op %d control byte %#x, want 0x00", i, op.W[0])
		}
	}
	if !bytes.Equal(bus.Ops[0].W, []byte{0x00, 0x8D, 0x14}) {
		t.Errorf("first write % x, want 00 8d 14", bus.Ops[0].W)
	}

	d.SetPixel(0, 0, true)
	d.Update()
	last := bus.Ops[len(bus.Ops)-1].W
	if len(last) != 1+image1bit.BufferSize || last[0] != 0x40 || last[1] != 0x01 {
		t.Errorf("frame write: len %d, starts % x", len(last), last[:2])
	}
}

func TestNewSPI(t *testing.T) {
	port := &spitest.Record{}
	dc := &gpiotest.Pin{N: "DC"}
	d, err := NewSPI(port, dc, quietOpts())
	if err != nil {
		t.Fatal(err)
	}
	if dc.L != gpio.Low {
		t.Error("D/C not low after commands")
	}
	if len(port.Ops) != 7 || !bytes.Equal(port.Ops[0].W, []byte{0x8D, 0x14}) {
		t.Fatalf("init ops = %v", port.Ops)
	}

	d.Update()
	if dc.L != gpio.High {
		t.Error("D/C not high after data")
	}
	if last := port.Ops[len(port.Ops)-1].W; len(last) != image1bit.BufferSize {
		t.Errorf("frame write is %d bytes, want %d", len(last), image1bit.BufferSize)
	}
}

func TestNewSPIMissingPin(t *testing.T) {
	if _, err := NewSPI(&spitest.Record{}, nil, quietOpts()); !errors.Is(err, ErrNotFound) {
		t.Errorf("NewSPI(nil pin) = %v, want ErrNotFound", err)
	}
}
