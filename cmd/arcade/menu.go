package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a sketch picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a sketch and Tab to see the
run history. Ctrl+B leaves a sketch and returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play sketch
  Tab          - Run history
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./sketches.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig(config.PresetTerminal)
	if err != nil {
		fail(err)
	}
	logger, err := newLogger(io.Discard, "sketch")
	if err != nil {
		fail(err)
	}

	// Open history storage
	store := openStore()

	width, height := terminalSize()
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.FrameRate,
		Seed:     flagSeed,
	}

	runErr := tui.RunSession(store, cfg, rc, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
