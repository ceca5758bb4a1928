package sink

import (
	"bytes"
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi/spitest"

	"github.com/flavioheleno/slmsim/grayframe"
)

func TestNewSPIRequiresDC(t *testing.T) {
	if _, err := NewSPI(&spitest.Record{}, nil, nil); err == nil {
		t.Error("NewSPI should fail without a dc pin")
	}
}

func TestNewSPITurnsDisplayOn(t *testing.T) {
	port := &spitest.Record{}
	dc := &gpiotest.Pin{N: "DC"}

	if _, err := NewSPI(port, dc, nil); err != nil {
		t.Fatalf("NewSPI() error = %v", err)
	}
	want := []conntest.IO{{W: []byte{cmdDisplayOn}}}
	if diff := cmp.Diff(want, port.Ops); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
	if dc.L != gpio.Low {
		t.Errorf("dc = %v, want Low after a command", dc.L)
	}
}

func TestSPIRender(t *testing.T) {
	port := &spitest.Record{}
	dc := &gpiotest.Pin{N: "DC"}
	s, err := NewSPI(port, dc, nil)
	if err != nil {
		t.Fatalf("NewSPI() error = %v", err)
	}

	f := grayframe.New(image.Rect(0, 0, 3, 2))
	copy(f.Pix, []byte{1, 2, 3, 4, 5, 6})
	if err := s.Render(f); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := []conntest.IO{
		{W: []byte{cmdDisplayOn}},
		{W: []byte{
			cmdColumnAddr, 0, 0, 0, 2,
			cmdRowAddr, 0, 0, 0, 1,
			cmdWriteRAM,
		}},
		{W: []byte{1, 2, 3, 4, 5, 6}},
	}
	if diff := cmp.Diff(want, port.Ops); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
	if dc.L != gpio.High {
		t.Errorf("dc = %v, want High after data", dc.L)
	}
}

func TestSPIRenderWideFrameAddressing(t *testing.T) {
	port := &spitest.Record{}
	s, err := NewSPI(port, &gpiotest.Pin{N: "DC"}, nil)
	if err != nil {
		t.Fatalf("NewSPI() error = %v", err)
	}
	if err := s.Render(grayframe.Filled(512, 2, 9)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	// 511 = 0x01FF
	want := []byte{cmdColumnAddr, 0, 0, 0x01, 0xFF, cmdRowAddr, 0, 0, 0, 1, cmdWriteRAM}
	if got := port.Ops[1].W; !bytes.Equal(got, want) {
		t.Errorf("window = % X, want % X", got, want)
	}
}

func TestSPIRenderChunks(t *testing.T) {
	port := &spitest.Record{}
	s, err := NewSPI(port, &gpiotest.Pin{N: "DC"}, &SPIOpts{MaxTxSize: 4})
	if err != nil {
		t.Fatalf("NewSPI() error = %v", err)
	}
	if err := s.Render(grayframe.Filled(5, 2, 200)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// 1 display on, 11 command bytes in 3 chunks, 10 data bytes in 3 chunks.
	if len(port.Ops) != 7 {
		t.Fatalf("len(Ops) = %d, want 7", len(port.Ops))
	}
	var data []byte
	for _, op := range port.Ops[4:] {
		if len(op.W) > 4 {
			t.Errorf("transfer of %d bytes exceeds MaxTxSize", len(op.W))
		}
		data = append(data, op.W...)
	}
	if !bytes.Equal(data, bytes.Repeat([]byte{200}, 10)) {
		t.Errorf("data = %v, want 10 x 200", data)
	}
}

func TestSPIHalt(t *testing.T) {
	port := &spitest.Record{}
	s, err := NewSPI(port, &gpiotest.Pin{N: "DC"}, nil)
	if err != nil {
		t.Fatalf("NewSPI() error = %v", err)
	}
	if err := s.Halt(); err != nil {
		t.Fatalf("Halt() error = %v", err)
	}
	if last := port.Ops[len(port.Ops)-1].W; !bytes.Equal(last, []byte{cmdDisplayOff}) {
		t.Errorf("last op = % X, want AE", last)
	}
	if err := s.Render(grayframe.Filled(1, 1, 0)); err == nil {
		t.Error("Render should fail when halted")
	}
}

func TestRowsDropsStridePadding(t *testing.T) {
	f := &grayframe.Frame{
		Pix:    []byte{1, 2, 0xFF, 3, 4, 0xFF},
		Stride: 3,
		Rect:   image.Rect(0, 0, 2, 2),
	}
	if got, want := rows(f), []byte{1, 2, 3, 4}; !bytes.Equal(got, want) {
		t.Errorf("rows() = %v, want %v", got, want)
	}
}
