// Package adapter exposes devices to a device control host.
//
// Devices are collected in a Registry built at startup and handed to
// Discover, which wraps each one in a Device. A Device reports its type,
// a composed identifier and a table of named properties the host can read
// and write.
package adapter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Device types reported by DeviceType.
const (
	TypeSLM = "SLM"
)

var (
	// ErrUnknownProperty is returned for a property name the device lacks.
	ErrUnknownProperty = errors.New("adapter: unknown property")
	// ErrReadOnly is returned when writing a read-only property.
	ErrReadOnly = errors.New("adapter: read-only property")
	// ErrUnknownDevice is returned when a registered object matches no
	// supported device contract.
	ErrUnknownDevice = errors.New("adapter: unknown device type")
)

// SLM is the contract a spatial light modulator must satisfy.
type SLM interface {
	SetImage(raw []byte) error
	DisplayImage() error
	Width() int
	Height() int
	Exposure() float64
	SetExposure(v float64) error
	NumberOfComponents() int
	BytesPerPixel() int
}

// Tester is implemented by devices carrying the diagnostic Test property.
type Tester interface {
	Test() (int, error)
	SetTest(v int) error
}

// FeatureReporter is implemented by devices whose optional operations can
// be disabled.
type FeatureReporter interface {
	Supports(op string) bool
}

// Registry maps device names to device objects.
//
// The zero value is not usable; call NewRegistry.
type Registry struct {
	devices map[string]any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{devices: map[string]any{}}
}

// Register adds dev under name. Names must be non-empty, without ':' and
// unique.
func (r *Registry) Register(name string, dev any) error {
	if name == "" || strings.Contains(name, ":") {
		return fmt.Errorf("adapter: invalid device name %q", name)
	}
	if dev == nil {
		return fmt.Errorf("adapter: nil device %q", name)
	}
	if _, ok := r.devices[name]; ok {
		return fmt.Errorf("adapter: device %q already registered", name)
	}
	r.devices[name] = dev
	return nil
}

// Lookup returns the device registered under name.
func (r *Registry) Lookup(name string) (any, bool) {
	dev, ok := r.devices[name]
	return dev, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.devices))
	for name := range r.devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered devices.
func (r *Registry) Len() int {
	return len(r.devices)
}

// Discover wraps every device in r, in name order. hub identifies the
// process or script that owns the registry and becomes part of each ID.
func Discover(r *Registry, hub string) ([]*Device, error) {
	out := make([]*Device, 0, r.Len())
	for _, name := range r.Names() {
		d, err := Wrap(hub, name, r.devices[name])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Device is a host-facing wrapper around a registered device object.
type Device struct {
	name  string
	id    string
	dtype string
	dev   any
	props map[string]property
}

// Wrap detects the device type of dev and builds its property table.
func Wrap(hub, name string, dev any) (*Device, error) {
	s, ok := dev.(SLM)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T", ErrUnknownDevice, name, dev)
	}
	d := &Device{
		name:  name,
		id:    ComposeID(TypeSLM, hub, name),
		dtype: TypeSLM,
		dev:   dev,
		props: slmProperties(s),
	}
	return d, nil
}

// ComposeID joins device type, hub and name as "type:hub:name".
func ComposeID(dtype, hub, name string) string {
	return dtype + ":" + hub + ":" + name
}

// Name returns the registry name.
func (d *Device) Name() string {
	return d.name
}

// ID returns the composed "type:hub:name" identifier.
func (d *Device) ID() string {
	return d.id
}

// DeviceType returns the detected device type, e.g. "SLM".
func (d *Device) DeviceType() string {
	return d.dtype
}

// SLM returns the wrapped device as an SLM, or nil if it is not one.
func (d *Device) SLM() SLM {
	s, _ := d.dev.(SLM)
	return s
}

func (d *Device) String() string {
	return d.id
}
