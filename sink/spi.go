package sink

import (
	"errors"
	"fmt"

	"github.com/flavioheleno/slmsim/grayframe"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Panel command bytes.
const (
	cmdColumnAddr = 0x15 // Column window, 16-bit start and end
	cmdRowAddr    = 0x75 // Row window, 16-bit start and end
	cmdWriteRAM   = 0x5C // Following data bytes go to RAM
	cmdDisplayOff = 0xAE
	cmdDisplayOn  = 0xAF
)

// DefaultMaxTxSize is the largest single SPI transfer when the connection
// does not report a limit. It matches the default Linux spidev buffer.
const DefaultMaxTxSize = 4096

// SPIOpts is the configuration for the SPI panel sink.
type SPIOpts struct {
	// Maximum bus speed (default: 10MHz)
	Speed physic.Frequency
	// Largest single transfer in bytes (default: conn limit or 4096)
	MaxTxSize int
}

// SPI streams frames to an 8-bit grayscale panel over SPI.
//
// Commands are sent with the DC pin low and pixel data with DC high. Each
// frame sets the full column/row window and then writes every sample.
type SPI struct {
	c         conn.Conn
	dc        gpio.PinOut
	maxTxSize int
	halted    bool
}

// NewSPI connects to the panel on p.
//
// The SPI port is configured for Mode0 (CPOL=0, CPHA=0), 8-bit transfers.
// The dc (Data/Command) GPIO pin must be provided and configured as an output.
//
// opts can be nil to use defaults.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *SPIOpts) (*SPI, error) {
	if dc == nil {
		return nil, errors.New("sink: spi: dc pin is required")
	}
	if opts == nil {
		opts = &SPIOpts{}
	}
	speed := opts.Speed
	if speed == 0 {
		speed = 10 * physic.MegaHertz
	}

	c, err := p.Connect(speed, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("sink: spi: connect: %w", err)
	}

	maxTx := opts.MaxTxSize
	if maxTx <= 0 {
		if l, ok := c.(conn.Limits); ok && l.MaxTxSize() > 0 {
			maxTx = l.MaxTxSize()
		} else {
			maxTx = DefaultMaxTxSize
		}
	}

	s := &SPI{c: c, dc: dc, maxTxSize: maxTx}
	if err := s.sendCommands([]byte{cmdDisplayOn}); err != nil {
		return nil, err
	}
	return s, nil
}

// Render implements Sink.
func (s *SPI) Render(f *grayframe.Frame) error {
	if s.halted {
		return errors.New("sink: spi: halted")
	}
	w, h := f.Width(), f.Height()
	if w <= 0 || h <= 0 {
		return nil
	}
	if w > 0x10000 || h > 0x10000 {
		return fmt.Errorf("sink: spi: frame %dx%d exceeds panel addressing", w, h)
	}

	// Set addressing window and enable RAM write
	colEnd, rowEnd := w-1, h-1
	commands := []byte{
		cmdColumnAddr, 0, 0, byte(colEnd >> 8), byte(colEnd),
		cmdRowAddr, 0, 0, byte(rowEnd >> 8), byte(rowEnd),
		cmdWriteRAM,
	}
	if err := s.sendCommands(commands); err != nil {
		return err
	}
	return s.sendData(rows(f))
}

// Halt turns the panel off. Further renders fail.
func (s *SPI) Halt() error {
	s.halted = true
	return s.sendCommands([]byte{cmdDisplayOff})
}

func (s *SPI) String() string {
	return fmt.Sprintf("spi(%s)", s.c)
}

// sendCommands sends a slice of command bytes.
func (s *SPI) sendCommands(cmds []byte) error {
	if err := s.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("sink: spi: dc low: %w", err)
	}
	return s.tx(cmds)
}

// sendData sends a slice of data bytes.
func (s *SPI) sendData(data []byte) error {
	if err := s.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("sink: spi: dc high: %w", err)
	}
	return s.tx(data)
}

func (s *SPI) tx(b []byte) error {
	for len(b) > 0 {
		n := min(len(b), s.maxTxSize)
		if err := s.c.Tx(b[:n], nil); err != nil {
			return fmt.Errorf("sink: spi: tx: %w", err)
		}
		b = b[n:]
	}
	return nil
}

// rows returns the frame samples without stride padding.
func rows(f *grayframe.Frame) []byte {
	w, h := f.Width(), f.Height()
	if f.Stride == w {
		return f.Pix[:w*h]
	}
	out := make([]byte, 0, w*h)
	for y := 0; y < h; y++ {
		out = append(out, f.Pix[y*f.Stride:y*f.Stride+w]...)
	}
	return out
}
