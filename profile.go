package slmsim

import "fmt"

// Profile names a preset device configuration.
type Profile string

const (
	// ProfileBasic is a 512x512 device with a pass-through exposure setter.
	ProfileBasic Profile = "basic"
	// ProfileExtended is a 512x512 device that triples written exposures and
	// enables SetPixelsTo and the Test property.
	ProfileExtended Profile = "extended"
)

// ParseProfile returns the profile called name.
func ParseProfile(name string) (Profile, error) {
	switch p := Profile(name); p {
	case ProfileBasic, ProfileExtended:
		return p, nil
	}
	return "", fmt.Errorf("slmsim: unknown profile %q", name)
}

// Opts returns a fresh copy of the profile's options. The sink and logger
// are left nil so New applies its defaults.
func (p Profile) Opts() *Opts {
	o := &Opts{W: 512, H: 512, Exposure: 1, ExposureScale: 1}
	if p == ProfileExtended {
		o.ExposureScale = 3
		o.PixelFill = true
		o.TestProperty = true
	}
	return o
}
