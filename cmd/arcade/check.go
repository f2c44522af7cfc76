package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sketch-arcade/internal/canvas"
	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/gamespec"
	"github.com/vovakirdan/sketch-arcade/internal/runner"
)

var (
	flagFrames     int
	flagEvents     []string
	flagShowScreen bool
	flagWidth      int
	flagHeight     int
)

var checkCmd = &cobra.Command{
	Use:   "check <spec|example>",
	Short: "Run a sketch headlessly and report its state",
	Long: `Run a sketch without a terminal for a number of frames on a
simulated clock and print the final phase, frame count, live state and
fault. The exit status is 1 if the sketch faulted.

Events are injected with --event <frame>:<kind>[=<arg>], delivered after
<frame> frames have run (0 = right after bootstrap):

  10:mousePressed=4,3   press at screen cell (4,3)
  20:keyPressed=left    press a key (terminal key names)
  30:touchStarted       touch at the current pointer position
  31:touchEnded

Examples:
  arcade check bounce --frames 120
  arcade check catcher --event 5:keyPressed=left --screen
  arcade check ./my-sketch.json --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&flagFrames, "frames", 60, "Number of frames to run")
	checkCmd.Flags().StringArrayVar(&flagEvents, "event", nil, "Event to inject: <frame>:<kind>[=<arg>] (repeatable)")
	checkCmd.Flags().BoolVar(&flagShowScreen, "screen", false, "Print the final screen")
	checkCmd.Flags().IntVar(&flagWidth, "width", 80, "Screen width in cells")
	checkCmd.Flags().IntVar(&flagHeight, "height", 24, "Screen height in cells")
}

// scriptedEvent is an input event delivered after a given number of frames.
type scriptedEvent struct {
	after int
	kind  core.EventKind
	arg   string
}

// parseEvent parses "<frame>:<kind>[=<arg>]".
func parseEvent(s string) (scriptedEvent, error) {
	frame, rest, ok := strings.Cut(s, ":")
	if !ok {
		return scriptedEvent{}, fmt.Errorf("event %q: want <frame>:<kind>[=<arg>]", s)
	}
	after, err := strconv.Atoi(frame)
	if err != nil || after < 0 {
		return scriptedEvent{}, fmt.Errorf("event %q: bad frame number %q", s, frame)
	}
	name, arg, _ := strings.Cut(rest, "=")
	for _, kind := range core.EventKinds {
		if kind.String() == name {
			return scriptedEvent{after: after, kind: kind, arg: arg}, nil
		}
	}
	return scriptedEvent{}, fmt.Errorf("event %q: unknown kind %q", s, name)
}

// checkReport is the outcome of a headless run.
type checkReport struct {
	Phase  runner.Phase
	Frames int
	State  string
	Fault  *runner.Fault
	Screen string
}

// dryRun bootstraps spec on a terminal canvas with a simulated clock and runs
// frames frames, delivering events along the way.
func dryRun(spec *gamespec.GameSpec, cfg config.Config, rc core.RuntimeConfig, frames int, events []scriptedEvent, logger *log.Logger) (checkReport, error) {
	// Simulated clock: every frame takes exactly 1/frameRate seconds
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	step := time.Second / time.Duration(max(cfg.FrameRate, 1))
	clock := func() time.Time { return now }

	cv := canvas.New(cfg, canvas.WithClock(clock), canvas.WithLogger(logger))
	inst := runner.New(spec, cv, cfg, runner.WithLogger(logger))
	inst.Bootstrap(rc)

	deliver := func(frame int) error {
		for _, ev := range events {
			if ev.after != frame {
				continue
			}
			if err := dispatch(cv, inst, ev); err != nil {
				return err
			}
		}
		return nil
	}

	if err := deliver(0); err != nil {
		return checkReport{}, err
	}
	for frame := 1; frame <= frames; frame++ {
		now = now.Add(step)
		if cv.Looping() {
			inst.Frame()
		}
		if err := deliver(frame); err != nil {
			return checkReport{}, err
		}
	}

	state, err := inst.StateJSON()
	if err != nil {
		return checkReport{}, err
	}
	return checkReport{
		Phase:  inst.Phase(),
		Frames: inst.Frames(),
		State:  state,
		Fault:  inst.Fault(),
		Screen: cv.Screen().String(),
	}, nil
}

// dispatch feeds one scripted event through the canvas input state.
func dispatch(cv *canvas.Canvas, inst *runner.Instance, ev scriptedEvent) error {
	switch ev.kind {
	case core.EventKeyPressed:
		key, code, ok := canvas.TranslateKey(ev.arg)
		if !ok {
			return fmt.Errorf("event %s: unknown key %q", ev.kind, ev.arg)
		}
		cv.PressKey(key, code)
		inst.Dispatch(ev.kind)
		cv.ReleaseKeys()
		return nil

	case core.EventMousePressed, core.EventTouchStarted:
		if ev.arg != "" {
			col, row, err := parseCell(ev.arg)
			if err != nil {
				return fmt.Errorf("event %s: %w", ev.kind, err)
			}
			cv.MoveMouse(col, row)
		}
		cv.SetMousePressed(true)
		inst.Dispatch(ev.kind)
		cv.SetMousePressed(false)
		return nil

	default:
		inst.Dispatch(ev.kind)
		return nil
	}
}

// parseCell parses "col,row".
func parseCell(s string) (col, row int, err error) {
	c, r, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("want <col>,<row>, got %q", s)
	}
	if col, err = strconv.Atoi(strings.TrimSpace(c)); err != nil {
		return 0, 0, fmt.Errorf("bad column %q", c)
	}
	if row, err = strconv.Atoi(strings.TrimSpace(r)); err != nil {
		return 0, 0, fmt.Errorf("bad row %q", r)
	}
	return col, row, nil
}

// printReport writes a human-readable report.
func printReport(w io.Writer, title string, r checkReport, withScreen bool) {
	fmt.Fprintf(w, "Sketch: %s\n", title)
	fmt.Fprintf(w, "Phase:  %s\n", r.Phase)
	fmt.Fprintf(w, "Frames: %d\n", r.Frames)
	fmt.Fprintf(w, "State:  %s\n", r.State)
	if r.Fault != nil {
		fmt.Fprintf(w, "Fault:  %s in %s: %s\n", r.Fault.Kind, r.Fault.Stage, r.Fault.Message)
	} else {
		fmt.Fprintln(w, "Fault:  none")
	}
	if withScreen {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.Screen)
	}
}

func runCheck(_ *cobra.Command, args []string) {
	spec, err := loadSpec(args[0])
	if err != nil {
		fail(err)
	}

	cfg, err := loadConfig(config.PresetTerminal)
	if err != nil {
		fail(err)
	}

	events := make([]scriptedEvent, 0, len(flagEvents))
	for _, s := range flagEvents {
		ev, err := parseEvent(s)
		if err != nil {
			fail(err)
		}
		events = append(events, ev)
	}

	logger, err := newLogger(os.Stderr, "check")
	if err != nil {
		fail(err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = 1 // Headless runs are reproducible by default
	}
	rc := core.RuntimeConfig{
		ScreenW:  flagWidth,
		ScreenH:  flagHeight,
		TickRate: cfg.FrameRate,
		Seed:     seed,
	}

	report, err := dryRun(spec, cfg, rc, flagFrames, events, logger)
	if err != nil {
		fail(err)
	}

	printReport(os.Stdout, spec.DisplayTitle(), report, flagShowScreen)
	if report.Fault != nil {
		os.Exit(1)
	}
}
