package config

import "fmt"

// Preset represents a named hosting profile applied on top of a loaded config.
type Preset string

const (
	// PresetBrowser targets p5 + p5play in a browser viewport.
	PresetBrowser Preset = "browser"
	// PresetTerminal targets the Go terminal host, which provides plain p5 only.
	PresetTerminal Preset = "terminal"
	// PresetClassic is a fixed 640x480 surface that restarts on resize.
	PresetClassic Preset = "classic"
)

// ParsePreset validates a preset name. The empty string means "no preset".
func ParsePreset(name string) (Preset, error) {
	switch p := Preset(name); p {
	case "", PresetBrowser, PresetTerminal, PresetClassic:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown preset %q (want browser, terminal or classic)", name)
	}
}

// ApplyPreset modifies the config based on a hosting preset.
func ApplyPreset(cfg *Config, preset Preset) {
	switch preset {
	case PresetBrowser:
		cfg.Canvas.Mode = CanvasResponsive
		cfg.Resize = ResizeInPlace
		if len(cfg.Capabilities) == 0 {
			cfg.Capabilities = DefaultConfig().Capabilities
		}
		if len(cfg.Libraries) == 0 {
			cfg.Libraries = DefaultConfig().Libraries
		}
	case PresetTerminal:
		// The terminal host has no p5play; requiring it would fault every sketch
		cfg.Canvas.Mode = CanvasResponsive
		cfg.Capabilities = nil
		cfg.Libraries = []string{p5URL}
	case PresetClassic:
		cfg.Canvas = CanvasConfig{Mode: CanvasFixed, Width: 640, Height: 480}
		cfg.Resize = ResizeRestart
	}
}
