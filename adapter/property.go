package adapter

import (
	"fmt"
	"math"
	"sort"
)

// Property keywords.
const (
	PropWidth              = "Width"
	PropHeight             = "Height"
	PropExposure           = "Exposure"
	PropNumberOfComponents = "NumberOfComponents"
	PropBytesPerPixel      = "BytesPerPixel"
	PropTest               = "Test"
)

type property struct {
	get func() (float64, error)
	set func(float64) error // nil when read-only
}

func readOnly(f func() int) property {
	return property{get: func() (float64, error) { return float64(f()), nil }}
}

func slmProperties(s SLM) map[string]property {
	props := map[string]property{
		PropWidth:              readOnly(s.Width),
		PropHeight:             readOnly(s.Height),
		PropNumberOfComponents: readOnly(s.NumberOfComponents),
		PropBytesPerPixel:      readOnly(s.BytesPerPixel),
		PropExposure: {
			get: func() (float64, error) { return s.Exposure(), nil },
			set: s.SetExposure,
		},
	}

	t, ok := s.(Tester)
	if fr, reports := s.(FeatureReporter); reports && !fr.Supports(PropTest) {
		ok = false
	}
	if ok {
		props[PropTest] = property{
			get: func() (float64, error) {
				v, err := t.Test()
				return float64(v), err
			},
			set: func(v float64) error {
				if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
					return fmt.Errorf("adapter: %s must be an integer, got %v", PropTest, v)
				}
				return t.SetTest(int(v))
			},
		}
	}
	return props
}

// PropertyNames returns the device's property names in sorted order.
func (d *Device) PropertyNames() []string {
	names := make([]string, 0, len(d.props))
	for name := range d.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasProperty reports whether the device has the named property.
func (d *Device) HasProperty(name string) bool {
	_, ok := d.props[name]
	return ok
}

// IsReadOnly reports whether the named property rejects writes.
func (d *Device) IsReadOnly(name string) (bool, error) {
	p, ok := d.props[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	return p.set == nil, nil
}

// Property returns the value of the named property.
func (d *Device) Property(name string) (float64, error) {
	p, ok := d.props[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	return p.get()
}

// SetProperty writes the named property.
func (d *Device) SetProperty(name string, v float64) error {
	p, ok := d.props[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	if p.set == nil {
		return fmt.Errorf("%w: %q", ErrReadOnly, name)
	}
	return p.set(v)
}
