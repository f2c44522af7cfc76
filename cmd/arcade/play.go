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

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play <spec|example>",
	Short: "Play a sketch in the terminal",
	Long: `Run a sketch in the terminal. The terminal preset is used unless
--preset says otherwise.

Keys other than the ones below are forwarded to the sketch's keyPressed
handler. The left mouse button drives mousePressed, or touchStarted and
touchEnded when input.touch_emulation is set in the config.

Controls:
  Ctrl+R     - Restart the sketch from its initial state
  Ctrl+B     - Quit (back to menu in 'arcade menu')
  Ctrl+C     - Quit

Sketch console output and faults go to --log, if given.

Examples:
  arcade play catcher
  arcade play ./my-sketch.json --fps 30
  arcade play bounce --preset classic --log ./sketch.log`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write sketch logs to this file")
}

func runPlay(_ *cobra.Command, args []string) {
	spec, err := loadSpec(args[0])
	if err != nil {
		fail(err)
	}

	cfg, err := loadConfig(config.PresetTerminal)
	if err != nil {
		fail(err)
	}

	// The alt screen owns stdout, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail(fmt.Errorf("cannot open log file: %w", err))
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "sketch")
	if err != nil {
		fail(err)
	}

	width, height := terminalSize()
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.FrameRate,
		Seed:     flagSeed,
	}

	// Open history storage
	store := openStore()

	runErr := tui.Run(spec, tui.PlayerConfig{
		Sketch:  cfg,
		Runtime: rc,
		Store:   store,
		Logger:  logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail(fmt.Errorf("running sketch: %w", runErr))
	}
}
