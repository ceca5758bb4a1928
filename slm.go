// Package slmsim implements a simulated Spatial Light Modulator (SLM).
//
// The device holds an 8-bit grayscale frame buffer and renders it to a
// pluggable sink. It exposes the property/operation contract a device
// control host expects from an SLM and implements the display.Drawer
// interface from periph.io.
//
// See the examples for how to use this package.
package slmsim

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"os"

	"github.com/flavioheleno/slmsim/grayframe"
	"github.com/flavioheleno/slmsim/sink"
	"periph.io/x/conn/v3/display"
)

var _ display.Drawer = (*Dev)(nil)

var (
	// ErrShapeMismatch is returned when an image buffer does not hold exactly
	// Width()*Height() samples.
	ErrShapeMismatch = grayframe.ErrShapeMismatch
	// ErrUnsupported is returned by operations the device does not implement
	// or that are disabled in its profile.
	ErrUnsupported = errors.New("slmsim: unsupported operation")
	// ErrHalted is returned by every mutating operation after Halt.
	ErrHalted = errors.New("slmsim: halted")
	// ErrInvalidValue is returned when a property value is out of range.
	ErrInvalidValue = errors.New("slmsim: invalid value")
)

// IOError reports a failure of the rendering sink.
type IOError struct {
	Sink string // Sink description
	Err  error  // Underlying error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("slmsim: display to %s: %v", e.Sink, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// maxPixels bounds the frame buffer allocation.
const maxPixels = 1 << 26

// Opts is the configuration for the simulated SLM.
type Opts struct {
	// Frame dimensions in pixels
	W int // Width (default: 512)
	H int // Height (default: 512)

	// Initial exposure, stored as is (default: 1)
	Exposure float64
	// ExposureScale multiplies every value passed to SetExposure (0 means 1)
	ExposureScale float64

	// Optional operations
	PixelFill    bool // Enables SetPixelsTo
	TestProperty bool // Enables the Test property

	// Rendering sink (default: PNG file under the temp directory)
	Sink sink.Sink
	// Logger used by side-effecting setters (default: stderr)
	Logger *log.Logger
}

// Dev is the device handle for the simulated SLM.
type Dev struct {
	// Rendering
	sink   sink.Sink
	logger *log.Logger

	// Geometry and pixels
	rect  image.Rectangle
	frame *grayframe.Frame

	// Properties
	exposure      float64
	exposureScale float64
	test          int

	// Profile gates
	pixelFill    bool
	testProperty bool

	// State
	halted bool
}

// New creates a simulated SLM with a zero-filled frame buffer.
//
// opts can be nil to use the basic profile (512x512, exposure written as is,
// no SetPixelsTo and no Test property).
func New(opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = ProfileBasic.Opts()
	}
	if err := validateSize(opts.W, opts.H); err != nil {
		return nil, err
	}
	if opts.Exposure < 0 || math.IsNaN(opts.Exposure) {
		return nil, fmt.Errorf("%w: exposure %v", ErrInvalidValue, opts.Exposure)
	}
	if opts.ExposureScale < 0 || math.IsNaN(opts.ExposureScale) {
		return nil, fmt.Errorf("%w: exposure scale %v", ErrInvalidValue, opts.ExposureScale)
	}

	d := &Dev{
		sink:          opts.Sink,
		logger:        opts.Logger,
		rect:          image.Rect(0, 0, opts.W, opts.H),
		exposure:      opts.Exposure,
		exposureScale: opts.ExposureScale,
		pixelFill:     opts.PixelFill,
		testProperty:  opts.TestProperty,
	}
	if d.sink == nil {
		d.sink = sink.NewPNGFile("")
	}
	if d.logger == nil {
		d.logger = log.New(os.Stderr, "slmsim: ", log.LstdFlags|log.Lmsgprefix)
	}
	if d.exposureScale == 0 {
		d.exposureScale = 1
	}
	d.frame = grayframe.New(d.rect)
	return d, nil
}

func validateSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidValue, w, h)
	}
	if w > maxPixels/h {
		return fmt.Errorf("%w: size %dx%d exceeds %d pixels", ErrInvalidValue, w, h, maxPixels)
	}
	return nil
}

// SetImage replaces the frame buffer with raw, read row-major.
//
// raw must hold exactly Width()*Height() samples; otherwise an error wrapping
// ErrShapeMismatch is returned and the current frame is left untouched.
func (d *Dev) SetImage(raw []byte) error {
	if d.halted {
		return ErrHalted
	}
	f, err := grayframe.Reshape(raw, d.rect.Dx(), d.rect.Dy())
	if err != nil {
		return fmt.Errorf("slmsim: set image: %w", err)
	}
	d.frame = f
	return nil
}

// DisplayImage renders the current frame to the sink.
// Sink failures are returned as *IOError and are not retried.
func (d *Dev) DisplayImage() error {
	if d.halted {
		return ErrHalted
	}
	if err := d.sink.Render(d.frame); err != nil {
		return &IOError{Sink: sinkName(d.sink), Err: err}
	}
	return nil
}

// SetPixelsTo replaces the frame buffer with one where every sample equals v.
// Returns ErrUnsupported unless the PixelFill option is set.
func (d *Dev) SetPixelsTo(v uint8) error {
	if d.halted {
		return ErrHalted
	}
	if !d.pixelFill {
		return fmt.Errorf("%w: SetPixelsTo", ErrUnsupported)
	}
	d.frame = grayframe.Filled(d.rect.Dx(), d.rect.Dy(), v)
	return nil
}

// Frame returns a copy of the current frame buffer.
func (d *Dev) Frame() *grayframe.Frame {
	return d.frame.Clone()
}

// Width returns the frame width in pixels.
func (d *Dev) Width() int {
	return d.rect.Dx()
}

// Height returns the frame height in pixels.
func (d *Dev) Height() int {
	return d.rect.Dy()
}

// SetWidth always fails: the frame is never resized implicitly. Use
// Reallocate.
func (d *Dev) SetWidth(w int) error {
	return fmt.Errorf("%w: SetWidth, use Reallocate", ErrUnsupported)
}

// SetHeight always fails: the frame is never resized implicitly. Use
// Reallocate.
func (d *Dev) SetHeight(h int) error {
	return fmt.Errorf("%w: SetHeight, use Reallocate", ErrUnsupported)
}

// Reallocate changes the frame dimensions and installs a zero-filled frame
// buffer. The previous frame contents are discarded.
func (d *Dev) Reallocate(w, h int) error {
	if d.halted {
		return ErrHalted
	}
	if err := validateSize(w, h); err != nil {
		return err
	}
	d.rect = image.Rect(0, 0, w, h)
	d.frame = grayframe.New(d.rect)
	return nil
}

// Exposure returns the stored exposure.
func (d *Dev) Exposure() float64 {
	return d.exposure
}

// SetExposure stores v multiplied by the configured exposure scale.
// v must be non-negative.
func (d *Dev) SetExposure(v float64) error {
	if d.halted {
		return ErrHalted
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: exposure %v", ErrInvalidValue, v)
	}
	d.exposure = v * d.exposureScale
	return nil
}

// NumberOfComponents returns 1: the device is grayscale.
func (d *Dev) NumberOfComponents() int {
	return 1
}

// BytesPerPixel returns 1: samples are 8-bit.
func (d *Dev) BytesPerPixel() int {
	return 1
}

// Test returns the diagnostic test value.
func (d *Dev) Test() (int, error) {
	if !d.testProperty {
		return 0, fmt.Errorf("%w: Test", ErrUnsupported)
	}
	return d.test, nil
}

// SetTest logs the change through the device logger, then stores v.
// Returns ErrUnsupported unless the TestProperty option is set.
func (d *Dev) SetTest(v int) error {
	if d.halted {
		return ErrHalted
	}
	if !d.testProperty {
		return fmt.Errorf("%w: SetTest", ErrUnsupported)
	}
	d.logger.Printf("changing test value to %d", v)
	d.test = v
	return nil
}

// Supports reports whether an optional operation is enabled: "SetPixelsTo"
// or "Test".
func (d *Dev) Supports(op string) bool {
	switch op {
	case "SetPixelsTo":
		return d.pixelFill
	case "Test":
		return d.testProperty
	}
	return false
}

// ColorModel returns the color model of the device.
func (d *Dev) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds returns the image bounds of the device.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw composes src into the frame buffer and displays the result.
// The dst rectangle specifies the destination region on the device.
// The src image is positioned at src point sp within the destination.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return ErrHalted
	}

	// Clip to device bounds
	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	next := d.frame.Clone()
	draw.Draw(next, dst, src, sp, draw.Src)
	d.frame = next
	return d.DisplayImage()
}

// Halt stops the device and halts the sink when it supports it.
// After calling Halt, the device rejects every mutating operation.
func (d *Dev) Halt() error {
	d.halted = true
	if h, ok := d.sink.(sink.Halter); ok {
		return h.Halt()
	}
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("slmsim.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

func sinkName(s sink.Sink) string {
	if st, ok := s.(fmt.Stringer); ok {
		return st.String()
	}
	return fmt.Sprintf("%T", s)
}
