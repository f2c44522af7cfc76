package config

import (
	_ "embed"
)

//go:embed defaults/sketch.yaml
var defaultSketchYAML []byte

// p5URL is the drawing library every HTML shell loads first.
const p5URL = "https://cdnjs.cloudflare.com/ajax/libs/p5.js/1.9.0/p5.js"

// DefaultConfig returns the built-in configuration. It mirrors
// defaults/sketch.yaml and is used when the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Canvas: CanvasConfig{
			Mode:   CanvasResponsive,
			Width:  640,
			Height: 480,
		},
		FrameRate: 60,
		Resize:    ResizeInPlace,
		Capabilities: []Capability{
			{Property: "Sprite", Library: "p5play"},
		},
		Libraries: []string{
			p5URL,
			"https://p5play.org/v3/planck.min.js",
			"https://p5play.org/v3/p5play.js",
		},
	}
}
