// Package config loads device configuration files for the demo command.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/flavioheleno/slmsim"
)

// Sink kinds.
const (
	SinkPNG  = "png"
	SinkSPI  = "spi"
	SinkMQTT = "mqtt"
)

// maxFileSize bounds the size of a configuration file.
const maxFileSize = 1 * 1024 * 1024

// DeviceConfig describes one simulated SLM and where it renders.
//
// Omitted fields keep the defaults of the selected profile.
type DeviceConfig struct {
	Name          string   `json:"name,omitempty"`
	Profile       *string  `json:"profile,omitempty"`
	Width         *int     `json:"width,omitempty"`
	Height        *int     `json:"height,omitempty"`
	Exposure      *float64 `json:"exposure,omitempty"`
	ExposureScale *float64 `json:"exposure_scale,omitempty"`
	PixelFill     *bool    `json:"pixel_fill,omitempty"`
	TestProperty  *bool    `json:"test_property,omitempty"`

	Sink SinkConfig `json:"sink"`
}

// SinkConfig selects and configures the rendering sink.
type SinkConfig struct {
	Kind string `json:"kind,omitempty"` // png (default), spi or mqtt

	// png
	Dir string `json:"dir,omitempty"`

	// spi
	Bus   string `json:"bus,omitempty"`
	DCPin string `json:"dc_pin,omitempty"`

	// mqtt
	Broker  string `json:"broker,omitempty"`
	Topic   string `json:"topic,omitempty"`
	Timeout string `json:"timeout,omitempty"` // duration string like "5s"
}

// Default returns the configuration of the device called "slm" using the
// basic profile and the PNG sink.
func Default() *DeviceConfig {
	return &DeviceConfig{Name: "slm"}
}

// Load reads a DeviceConfig from a JSON file.
// The file must have a .json extension and be at most 1MB.
func Load(path string) (*DeviceConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config: file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("config: failed to stat file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config: file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *DeviceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if c.Profile != nil {
		if _, err := slmsim.ParseProfile(*c.Profile); err != nil {
			return err
		}
	}
	if c.Width != nil && *c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %d", *c.Width)
	}
	if c.Height != nil && *c.Height <= 0 {
		return fmt.Errorf("height must be positive, got %d", *c.Height)
	}
	if c.Exposure != nil && (*c.Exposure < 0 || math.IsNaN(*c.Exposure)) {
		return fmt.Errorf("exposure must be non-negative, got %v", *c.Exposure)
	}
	if c.ExposureScale != nil && *c.ExposureScale <= 0 {
		return fmt.Errorf("exposure_scale must be positive, got %v", *c.ExposureScale)
	}

	switch c.Sink.Kind {
	case "", SinkPNG:
	case SinkSPI:
		if c.Sink.DCPin == "" {
			return fmt.Errorf("sink.dc_pin is required for the spi sink")
		}
	case SinkMQTT:
		if c.Sink.Broker == "" || c.Sink.Topic == "" {
			return fmt.Errorf("sink.broker and sink.topic are required for the mqtt sink")
		}
	default:
		return fmt.Errorf("unknown sink kind %q", c.Sink.Kind)
	}
	if c.Sink.Timeout != "" {
		if _, err := time.ParseDuration(c.Sink.Timeout); err != nil {
			return fmt.Errorf("invalid sink.timeout '%s': %w", c.Sink.Timeout, err)
		}
	}
	return nil
}

// GetProfile returns the selected profile or the basic profile.
func (c *DeviceConfig) GetProfile() slmsim.Profile {
	if c.Profile == nil {
		return slmsim.ProfileBasic
	}
	p, err := slmsim.ParseProfile(*c.Profile)
	if err != nil {
		return slmsim.ProfileBasic
	}
	return p
}

// GetSinkKind returns the sink kind, defaulting to png.
func (c *DeviceConfig) GetSinkKind() string {
	if c.Sink.Kind == "" {
		return SinkPNG
	}
	return c.Sink.Kind
}

// GetSinkTimeout parses and returns the MQTT publish timeout.
func (c *DeviceConfig) GetSinkTimeout() time.Duration {
	if c.Sink.Timeout == "" {
		return 5 * time.Second // default
	}
	d, err := time.ParseDuration(c.Sink.Timeout)
	if err != nil {
		return 5 * time.Second // default on parse error
	}
	return d
}

// Opts returns the device options: the profile defaults overridden by every
// field set in the configuration. Sink and Logger are left nil.
func (c *DeviceConfig) Opts() *slmsim.Opts {
	o := c.GetProfile().Opts()
	if c.Width != nil {
		o.W = *c.Width
	}
	if c.Height != nil {
		o.H = *c.Height
	}
	if c.Exposure != nil {
		o.Exposure = *c.Exposure
	}
	if c.ExposureScale != nil {
		o.ExposureScale = *c.ExposureScale
	}
	if c.PixelFill != nil {
		o.PixelFill = *c.PixelFill
	}
	if c.TestProperty != nil {
		o.TestProperty = *c.TestProperty
	}
	return o
}
