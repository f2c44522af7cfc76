// Package config provides YAML-based sketch configuration loading and presets
// shared by the synthesizer and the Go hosts.
package config

import (
	"fmt"
	"time"
)

// Config describes how a sketch is hosted: surface, frame rate, resize policy,
// required host-library capabilities and the scripts an HTML shell loads.
type Config struct {
	Canvas       CanvasConfig  `yaml:"canvas"`
	FrameRate    int           `yaml:"frame_rate"`
	Resize       ResizePolicy  `yaml:"resize"`
	Capabilities []Capability  `yaml:"capabilities"`
	Libraries    []string      `yaml:"libraries"`
	Input        InputConfig   `yaml:"input"`
	FrameBudget  time.Duration `yaml:"frame_budget"`
}

// CanvasConfig defines the drawing surface.
type CanvasConfig struct {
	Mode   CanvasMode `yaml:"mode"`
	Width  int        `yaml:"width"`  // Used in fixed mode
	Height int        `yaml:"height"` // Used in fixed mode
}

// CanvasMode selects between a fixed-size and a viewport-sized surface.
type CanvasMode string

const (
	CanvasFixed      CanvasMode = "fixed"
	CanvasResponsive CanvasMode = "responsive"
)

// ResizePolicy decides what a host resize does to a running sketch.
type ResizePolicy string

const (
	// ResizeInPlace resizes the surface and keeps the live state.
	ResizeInPlace ResizePolicy = "resize"
	// ResizeRestart resizes the surface and re-runs the bootstrapper.
	ResizeRestart ResizePolicy = "restart"
)

// Capability is a property that must exist on the api handle, provided by
// the named library (e.g. Sprite from p5play).
type Capability struct {
	Property string `yaml:"property"`
	Library  string `yaml:"library"`
}

// InputConfig controls how host input is reported to sketches.
type InputConfig struct {
	TouchEmulation bool `yaml:"touch_emulation"`
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Canvas.Mode {
	case CanvasResponsive:
	case CanvasFixed:
		if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
			return fmt.Errorf("config: fixed canvas needs a positive size, got %dx%d", c.Canvas.Width, c.Canvas.Height)
		}
	default:
		return fmt.Errorf("config: unknown canvas mode %q", c.Canvas.Mode)
	}

	switch c.Resize {
	case ResizeInPlace, ResizeRestart:
	default:
		return fmt.Errorf("config: unknown resize policy %q", c.Resize)
	}

	if c.FrameRate <= 0 {
		return fmt.Errorf("config: frame_rate must be positive, got %d", c.FrameRate)
	}
	if c.FrameBudget < 0 {
		return fmt.Errorf("config: frame_budget must not be negative")
	}

	for i, capability := range c.Capabilities {
		if capability.Property == "" {
			return fmt.Errorf("config: capability %d has no property", i)
		}
	}
	return nil
}

// LibraryName returns the library providing a capability, falling back to
// the property name.
func (c Capability) LibraryName() string {
	if c.Library != "" {
		return c.Library
	}
	return c.Property
}
