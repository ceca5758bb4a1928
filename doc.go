// Package slmsim implements a simulated Spatial Light Modulator (SLM).
//
// The device keeps an 8-bit grayscale frame buffer and renders it to a sink.
// It is meant to be loaded by a device control host that drives SLMs through
// a small property/operation contract. This driver also implements the
// display.Drawer interface from periph.io.
//
// # Device Characteristics
//
// - 8-bit grayscale, 1 component, 1 byte per pixel
// - Configurable resolution (default 512×512)
// - Whole-frame updates only, no partial windows
// - Exposure stored as a unit-less value
// - No frame sequences, no RGB input
//
// # Basic Usage
//
// Example of creating and using the device:
//
//	package main
//
//	import (
//		"github.com/flavioheleno/slmsim"
//	)
//
//	func main() {
//		// Basic profile, frames written to $TMPDIR/SLM/SLM_image.png
//		dev, _ := slmsim.New(nil)
//		defer dev.Halt()
//
//		// One bright pixel in the middle of the frame
//		raw := make([]byte, dev.Width()*dev.Height())
//		raw[256*512+256] = 255
//		dev.SetImage(raw)
//
//		// Render the frame
//		dev.DisplayImage()
//	}
//
// SetImage rejects a buffer whose length is not Width()*Height() with an
// error wrapping ErrShapeMismatch and keeps the previous frame. Rendering
// failures are returned as *IOError.
//
// # Profiles
//
// Two preset profiles cover the supported device variants:
//
//	slmsim.ProfileBasic.Opts()    // exposure written as is
//	slmsim.ProfileExtended.Opts() // exposure ×3, SetPixelsTo, Test property
//
// Operations disabled by the profile return ErrUnsupported.
//
// # Resolution
//
// Width and height are fixed once the device is created; SetWidth and
// SetHeight return ErrUnsupported. Use Reallocate to change the resolution,
// which installs a zero-filled frame.
//
// # Sinks
//
// The sink package provides the rendering targets:
//
//	sink.NewPNGFile("")        // 8-bit grayscale PNG in $TMPDIR/SLM
//	&sink.Recorder{}           // in-memory, for tests
//	sink.NewSPI(port, dc, nil) // stream to an SPI panel
//	sink.NewMQTT(client, "t")  // publish base64 PNGs
//
// # Host Integration
//
// The adapter package wraps devices for a control host. The registry is
// built explicitly at startup:
//
//	reg := adapter.NewRegistry()
//	reg.Register("slm", dev)
//	devices, _ := adapter.Discover(reg, "demo")
//	devices[0].DeviceType() // "SLM"
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// Draw composes the source image into the frame buffer and displays it.
package slmsim
