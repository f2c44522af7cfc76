package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/gamespec"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

// loadSpec resolves a command argument to a GameSpec: a bundled example id,
// "-" for stdin, or a file path.
func loadSpec(arg string) (*gamespec.GameSpec, error) {
	if registry.Exists(arg) {
		return registry.Create(arg)
	}
	spec, err := gamespec.Load(arg)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unknown sketch %q: not a file or bundled example (run 'arcade list')", arg)
	}
	return spec, err
}

// loadConfig loads the sketch config and applies --preset, or fallback when
// no preset was given, and --fps.
func loadConfig(fallback config.Preset) (config.Config, error) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return config.Config{}, err
	}

	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return config.Config{}, err
	}
	if preset == "" {
		preset = fallback
	}
	config.ApplyPreset(&cfg, preset)

	if flagFPS > 0 {
		cfg.FrameRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, nil
}

// openStore opens the history database. History is optional, so failure
// only warns.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sketch database: %v\n", err)
		return nil
	}
	return store
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (width, height int) {
	width, height = 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// fail prints err and exits with status 1.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
