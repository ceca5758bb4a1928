// Package sink provides the rendering targets of the simulated SLM.
//
// A Sink receives the device's current frame each time it is displayed. The
// package provides a PNG file writer, an in-memory recorder for tests, an SPI
// panel streamer and an MQTT publisher.
package sink

import (
	"github.com/flavioheleno/slmsim/grayframe"
)

// Sink renders a frame.
//
// Render must not retain f after returning; the caller may reuse it.
type Sink interface {
	Render(f *grayframe.Frame) error
}

// Halter is implemented by sinks holding a resource that must be released
// when the device halts.
type Halter interface {
	Halt() error
}

// Recorder is a Sink that keeps a copy of every rendered frame.
type Recorder struct {
	Frames []*grayframe.Frame
	Err    error // Returned by Render when set; nothing is recorded
	Halted bool
}

// Render implements Sink.
func (r *Recorder) Render(f *grayframe.Frame) error {
	if r.Err != nil {
		return r.Err
	}
	r.Frames = append(r.Frames, f.Clone())
	return nil
}

// Last returns the most recently rendered frame, or nil.
func (r *Recorder) Last() *grayframe.Frame {
	if len(r.Frames) == 0 {
		return nil
	}
	return r.Frames[len(r.Frames)-1]
}

// Halt implements Halter.
func (r *Recorder) Halt() error {
	r.Halted = true
	return nil
}

func (r *Recorder) String() string {
	return "recorder"
}
