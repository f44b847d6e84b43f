package ssd1306

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// Control bytes prefixed to every I²C write.
const (
	ctrlCommand byte = 0x00
	ctrlData    byte = 0x40
)

// Transport carries controller commands and frame data to the display.
type Transport interface {
	// SendCommand writes a command sequence.
	SendCommand(cmds []byte) error
	// SendData writes display RAM bytes.
	SendData(data []byte) error
}

// Opener acquires a Transport. Open may block while the bus is enumerated.
//
// An Opener returns an error wrapping ErrNotFound when there is no device to
// talk to. Every other error is considered transient.
type Opener interface {
	Open(ctx context.Context) (Transport, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(ctx context.Context) (Transport, error)

// Open implements Opener.
func (f OpenerFunc) Open(ctx context.Context) (Transport, error) {
	return f(ctx)
}

// Framed is a Transport writing each payload as a single bus transaction
// prefixed with the command or data control byte, as the controller expects
// on I²C.
//
// A nil Framed, or one without a connection, silently drops every write.
type Framed struct {
	c      conn.Conn
	closer io.Closer
	buf    []byte
}

// NewFramed returns a Framed transport writing to c. If c implements
// io.Closer it is closed by Close.
func NewFramed(c conn.Conn) *Framed {
	t := &Framed{c: c, buf: make([]byte, 0, 1+1024)}
	if cl, ok := c.(io.Closer); ok {
		t.closer = cl
	}
	return t
}

// SendCommand implements Transport.
func (t *Framed) SendCommand(cmds []byte) error {
	return t.send(ctrlCommand, cmds)
}

// SendData implements Transport.
func (t *Framed) SendData(data []byte) error {
	return t.send(ctrlData, data)
}

func (t *Framed) send(ctrl byte, p []byte) error {
	if t == nil || t.c == nil {
		return nil
	}
	t.buf = append(t.buf[:0], ctrl)
	t.buf = append(t.buf, p...)
	return t.c.Tx(t.buf, nil)
}

// Close releases the underlying connection, if it owns one.
func (t *Framed) Close() error {
	if t == nil || t.closer == nil {
		return nil
	}
	return t.closer.Close()
}

func (t *Framed) String() string {
	if t == nil || t.c == nil {
		return "ssd1306.Framed{}"
	}
	return fmt.Sprintf("ssd1306.Framed{%s}", t.c)
}

// SPI is a 4-wire SPI Transport selecting command or data with a D/C pin.
type SPI struct {
	c  conn.Conn
	dc gpio.PinOut
}

// NewSPITransport connects to p in Mode0 with 8-bit words at f, 10MHz when f
// is zero. dc must be configured as an output.
func NewSPITransport(p spi.Port, dc gpio.PinOut, f physic.Frequency) (*SPI, error) {
	if dc == nil {
		return nil, fmt.Errorf("ssd1306: D/C pin: %w", ErrNotFound)
	}
	if f == 0 {
		f = 10 * physic.MegaHertz
	}
	c, err := p.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1306: spi connect: %w", err)
	}
	return &SPI{c: c, dc: dc}, nil
}

// SendCommand implements Transport.
func (t *SPI) SendCommand(cmds []byte) error {
	if err := t.dc.Out(gpio.Low); err != nil {
		return err
	}
	return t.c.Tx(cmds, nil)
}

// SendData implements Transport.
func (t *SPI) SendData(data []byte) error {
	if err := t.dc.Out(gpio.High); err != nil {
		return err
	}
	return t.c.Tx(data, nil)
}

// BusOpener returns an Opener talking to the device at addr on an already
// opened bus. It never reports the device as absent.
func BusOpener(b i2c.Bus, addr uint16) Opener {
	return OpenerFunc(func(ctx context.Context) (Transport, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return NewFramed(&i2c.Dev{Bus: b, Addr: addr}), nil
	})
}

// I2COpener returns an Opener acquiring the named bus from the i2creg
// registry, the first one when name is empty. host.Init must have run.
//
// The device is reported absent when the registry holds no matching bus.
// Open sets the bus speed from opts, defaulting to 400kHz fast mode.
func I2COpener(name string, opts *Opts) Opener {
	o := opts.withDefaults()
	return OpenerFunc(func(ctx context.Context) (Transport, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !i2cBusExists(name) {
			if name == "" {
				return nil, fmt.Errorf("ssd1306: no I²C bus: %w", ErrNotFound)
			}
			return nil, fmt.Errorf("ssd1306: I²C bus %q: %w", name, ErrNotFound)
		}
		b, err := i2creg.Open(name)
		if err != nil {
			return nil, fmt.Errorf("ssd1306: open I²C bus: %w", err)
		}
		if err := b.SetSpeed(o.Speed); err != nil {
			o.Logger.Debug("ssd1306: bus speed unchanged", "bus", b.String(), "err", err)
		}
		return &busTransport{Framed: NewFramed(&i2c.Dev{Bus: b, Addr: o.Addr}), bus: b}, nil
	})
}

func i2cBusExists(name string) bool {
	refs := i2creg.All()
	if name == "" {
		return len(refs) > 0
	}
	for _, r := range refs {
		if r.Name == name || fmt.Sprint(r.Number) == name {
			return true
		}
		for _, a := range r.Aliases {
			if a == name {
				return true
			}
		}
	}
	return false
}

// busTransport is a Framed transport owning the bus it was opened on.
type busTransport struct {
	*Framed
	bus i2c.BusCloser
}

func (t *busTransport) Close() error {
	return t.bus.Close()
}

// SPIOpener returns an Opener acquiring the named SPI port from the spireg
// registry and the D/C pin by name from gpioreg. host.Init must have run.
//
// The device is reported absent when the port or the pin does not exist.
func SPIOpener(port, dc string, f physic.Frequency) Opener {
	return OpenerFunc(func(ctx context.Context) (Transport, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(spireg.All()) == 0 {
			return nil, fmt.Errorf("ssd1306: no SPI port: %w", ErrNotFound)
		}
		pin := gpioreg.ByName(dc)
		if pin == nil {
			return nil, fmt.Errorf("ssd1306: D/C pin %q: %w", dc, ErrNotFound)
		}
		p, err := spireg.Open(port)
		if err != nil {
			return nil, fmt.Errorf("ssd1306: open SPI port: %w", err)
		}
		t, err := NewSPITransport(p, pin, f)
		if err != nil {
			p.Close()
			return nil, err
		}
		return &portTransport{SPI: t, port: p}, nil
	})
}

// portTransport is a SPI transport owning the port it was opened on.
type portTransport struct {
	*SPI
	port spi.PortCloser
}

func (t *portTransport) Close() error {
	return t.port.Close()
}

// debugTransport logs every frame before forwarding it.
type debugTransport struct {
	Transport
	log *slog.Logger
}

func (t *debugTransport) SendCommand(cmds []byte) error {
	t.log.Debug("ssd1306: command", "bytes", fmt.Sprintf("% x", cmds))
	return t.Transport.SendCommand(cmds)
}

func (t *debugTransport) SendData(data []byte) error {
	t.log.Debug("ssd1306: data", "len", len(data), "bytes", fmt.Sprintf("% x", data))
	return t.Transport.SendData(data)
}

func (t *debugTransport) Close() error {
	if c, ok := t.Transport.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
