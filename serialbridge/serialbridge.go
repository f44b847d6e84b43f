// Package serialbridge talks to an SSD1306 behind a USB or UART serial to
// I²C bridge.
//
// Every bus write is sent to the bridge as one frame:
//
//	'W' | addr | len (big endian uint16) | payload
//
// The bridge replays the payload as a single I²C write to addr. Reads are
// not supported, the display never needs them.
package serialbridge

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/flavioheleno/ssd1306"
	"go.bug.st/serial"
	"periph.io/x/conn/v3"
)

// DefaultBaud is the bridge line speed when none is given.
const DefaultBaud = 115200

const frameWrite = 'W'

// maxPayload is the largest payload a frame can carry.
const maxPayload = 0xFFFF

var errRead = errors.New("serialbridge: reads are not supported")

// Conn is a conn.Conn writing bridge frames to a serial port.
type Conn struct {
	name string
	port io.WriteCloser
	addr uint16
	buf  []byte
}

var _ conn.Conn = (*Conn)(nil)

// New returns a Conn addressing the I²C device addr through port. name is
// only used by String.
func New(name string, port io.WriteCloser, addr uint16) *Conn {
	return &Conn{name: name, port: port, addr: addr, buf: make([]byte, 0, 4+1+1024)}
}

// Tx implements conn.Conn.
func (c *Conn) Tx(w, r []byte) error {
	if len(r) != 0 {
		return errRead
	}
	if len(w) > maxPayload {
		return fmt.Errorf("serialbridge: %d bytes exceed a frame", len(w))
	}
	c.buf = append(c.buf[:0], frameWrite, byte(c.addr))
	c.buf = binary.BigEndian.AppendUint16(c.buf, uint16(len(w)))
	c.buf = append(c.buf, w...)

	n, err := c.port.Write(c.buf)
	if err != nil {
		return fmt.Errorf("serialbridge: write: %w", err)
	}
	if n < len(c.buf) {
		return fmt.Errorf("serialbridge: wrote only %d of %d bytes", n, len(c.buf))
	}
	if d, ok := c.port.(interface{ Drain() error }); ok {
		return d.Drain()
	}
	return nil
}

// Duplex implements conn.Conn.
func (c *Conn) Duplex() conn.Duplex {
	return conn.Half
}

// Close closes the serial port.
func (c *Conn) Close() error {
	return c.port.Close()
}

func (c *Conn) String() string {
	return fmt.Sprintf("serialbridge(%s)@%#x", c.name, c.addr)
}

// Opener returns an ssd1306.Opener opening the serial port name at baud
// (DefaultBaud when zero) and addressing the display at addr.
//
// A port missing from the system is reported as ssd1306.ErrNotFound.
func Opener(name string, baud int, addr uint16) ssd1306.Opener {
	if baud == 0 {
		baud = DefaultBaud
	}
	return ssd1306.OpenerFunc(func(ctx context.Context) (ssd1306.Transport, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if ports, err := serial.GetPortsList(); err == nil && !slices.Contains(ports, name) {
			return nil, fmt.Errorf("serialbridge: port %q: %w", name, ssd1306.ErrNotFound)
		}
		p, err := serial.Open(name, &serial.Mode{
			BaudRate: baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		})
		if err != nil {
			return nil, classify(name, err)
		}
		return ssd1306.NewFramed(New(name, p, addr)), nil
	})
}

// classify maps a missing port to ssd1306.ErrNotFound.
func classify(name string, err error) error {
	var pe *serial.PortError
	if errors.As(err, &pe) && pe.Code() == serial.PortNotFound {
		return fmt.Errorf("serialbridge: port %q: %w", name, ssd1306.ErrNotFound)
	}
	return fmt.Errorf("serialbridge: open %q: %w", name, err)
}
