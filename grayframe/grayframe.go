// Package grayframe provides the 8-bit grayscale frame buffer held by the
// simulated SLM.
//
// Samples are stored row-major, one byte per pixel. Row r, column c lives at
// Pix[r*Stride+c].
package grayframe

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrShapeMismatch is returned when a flat sample buffer does not hold
// exactly width*height samples.
var ErrShapeMismatch = errors.New("grayframe: shape mismatch")

// Frame is an 8-bit grayscale image with a row/column sample view.
type Frame struct {
	Pix    []byte          // Samples, 1 byte per pixel
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// New creates a zero-filled frame with the specified bounds.
func New(r image.Rectangle) *Frame {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &Frame{Rect: r}
	}
	return &Frame{
		Pix:    make([]byte, w*h),
		Stride: w,
		Rect:   r,
	}
}

// Reshape copies raw into a new width×height frame.
//
// raw must hold exactly width*height samples, otherwise an error wrapping
// ErrShapeMismatch is returned.
func Reshape(raw []byte, width, height int) (*Frame, error) {
	if width <= 0 || height <= 0 || len(raw) != width*height {
		return nil, fmt.Errorf("%w: got %d samples, want %d (%dx%d)", ErrShapeMismatch, len(raw), width*height, width, height)
	}
	f := New(image.Rect(0, 0, width, height))
	copy(f.Pix, raw)
	return f, nil
}

// Filled creates a width×height frame where every sample equals v.
func Filled(width, height int, v uint8) *Frame {
	f := New(image.Rect(0, 0, width, height))
	f.Fill(v)
	return f
}

// Width returns the number of columns.
func (f *Frame) Width() int {
	return f.Rect.Dx()
}

// Height returns the number of rows.
func (f *Frame) Height() int {
	return f.Rect.Dy()
}

// Len returns the number of samples.
func (f *Frame) Len() int {
	return len(f.Pix)
}

// Sample returns the sample at row r, column c relative to the frame origin.
// Out of range coordinates read as 0.
func (f *Frame) Sample(r, c int) uint8 {
	if r < 0 || c < 0 || r >= f.Height() || c >= f.Width() {
		return 0
	}
	return f.Pix[r*f.Stride+c]
}

// Fill sets every sample to v.
func (f *Frame) Fill(v uint8) {
	for i := range f.Pix {
		f.Pix[i] = v
	}
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := &Frame{
		Pix:    make([]byte, len(f.Pix)),
		Stride: f.Stride,
		Rect:   f.Rect,
	}
	copy(c.Pix, f.Pix)
	return c
}

// Gray returns an *image.Gray sharing the frame's samples, suitable for the
// standard image encoders.
func (f *Frame) Gray() *image.Gray {
	return &image.Gray{Pix: f.Pix, Stride: f.Stride, Rect: f.Rect}
}

// ColorModel returns the color model of the frame.
func (f *Frame) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds returns the frame bounds.
func (f *Frame) Bounds() image.Rectangle {
	return f.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (f *Frame) At(x, y int) color.Color {
	return f.GrayAt(x, y)
}

// GrayAt returns the gray level of the pixel at (x, y).
func (f *Frame) GrayAt(x, y int) color.Gray {
	if !(image.Point{X: x, Y: y}.In(f.Rect)) {
		return color.Gray{}
	}
	return color.Gray{Y: f.Pix[f.pixOffset(x, y)]}
}

// Set sets the color of the pixel at (x, y).
func (f *Frame) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(f.Rect)) {
		return
	}
	f.Pix[f.pixOffset(x, y)] = color.GrayModel.Convert(c).(color.Gray).Y
}

// SetGray sets the gray level of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (f *Frame) SetGray(x, y int, c color.Gray) {
	if !(image.Point{X: x, Y: y}.In(f.Rect)) {
		return
	}
	f.Pix[f.pixOffset(x, y)] = c.Y
}

func (f *Frame) pixOffset(x, y int) int {
	return (y-f.Rect.Min.Y)*f.Stride + (x - f.Rect.Min.X)
}
