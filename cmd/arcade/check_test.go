package main

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/gamespec"
	"github.com/vovakirdan/sketch-arcade/internal/runner"
)

func checkConfig() config.Config {
	cfg := config.DefaultConfig()
	config.ApplyPreset(&cfg, config.PresetTerminal)
	return cfg
}

func checkRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func TestParseEvent(t *testing.T) {
	tests := []struct {
		in      string
		want    scriptedEvent
		wantErr bool
	}{
		{in: "10:mousePressed", want: scriptedEvent{after: 10, kind: core.EventMousePressed}},
		{in: "0:keyPressed=left", want: scriptedEvent{after: 0, kind: core.EventKeyPressed, arg: "left"}},
		{in: "3:mousePressed=4,3", want: scriptedEvent{after: 3, kind: core.EventMousePressed, arg: "4,3"}},
		{in: "7:touchEnded", want: scriptedEvent{after: 7, kind: core.EventTouchEnded}},
		{in: "mousePressed", wantErr: true},
		{in: "x:mousePressed", wantErr: true},
		{in: "-1:mousePressed", wantErr: true},
		{in: "1:doubleClicked", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseEvent(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseCell(t *testing.T) {
	col, row, err := parseCell("4, 3")
	require.NoError(t, err)
	require.Equal(t, 4, col)
	require.Equal(t, 3, row)

	_, _, err = parseCell("4")
	require.Error(t, err)
	_, _, err = parseCell("a,3")
	require.Error(t, err)
}

func TestDryRunDeliversEvents(t *testing.T) {
	spec := &gamespec.GameSpec{
		InitialState: map[string]any{"n": 0},
		Update:       "state.n++;",
		Draw:         "p.background(0);",
		KeyPressed:   "state.k = p.key;",
		MousePressed: "state.mx = p.mouseX; state.down = p.mouseIsPressed;",
	}
	events := []scriptedEvent{
		{after: 0, kind: core.EventKeyPressed, arg: "left"},
		{after: 3, kind: core.EventMousePressed, arg: "4,3"},
	}

	report, err := dryRun(spec, checkConfig(), checkRuntime(), 5, events, log.New(io.Discard))
	require.NoError(t, err)
	require.Equal(t, runner.PhaseRunning, report.Phase)
	require.Equal(t, 5, report.Frames)
	require.Nil(t, report.Fault)

	var state map[string]any
	require.NoError(t, json.Unmarshal([]byte(report.State), &state))
	require.EqualValues(t, 5, state["n"])
	require.Equal(t, "ArrowLeft", state["k"])
	require.InDelta(t, 36, state["mx"], 0.001)
	require.Equal(t, true, state["down"])
}

func TestDryRunUnknownKey(t *testing.T) {
	spec := &gamespec.GameSpec{InitialState: map[string]any{}, Update: "", Draw: ""}
	events := []scriptedEvent{{after: 1, kind: core.EventKeyPressed, arg: "ctrl+x"}}

	_, err := dryRun(spec, checkConfig(), checkRuntime(), 2, events, log.New(io.Discard))
	require.Error(t, err)
}

func TestDryRunUsesSimulatedClock(t *testing.T) {
	spec := &gamespec.GameSpec{
		InitialState: map[string]any{"ms": 0},
		Update:       "state.ms = p.millis();",
		Draw:         "",
	}

	report, err := dryRun(spec, checkConfig(), checkRuntime(), 60, nil, log.New(io.Discard))
	require.NoError(t, err)

	var state map[string]float64
	require.NoError(t, json.Unmarshal([]byte(report.State), &state))
	require.InDelta(t, 1000, state["ms"], 0.01)
}

func TestDryRunReportsFault(t *testing.T) {
	spec, err := loadSpec("broken")
	require.NoError(t, err)

	report, err := dryRun(spec, checkConfig(), checkRuntime(), 130, nil, log.New(io.Discard))
	require.NoError(t, err)
	require.Equal(t, runner.PhaseFaulted, report.Phase)
	require.NotNil(t, report.Fault)
	require.Equal(t, runner.FaultRuntime, report.Fault.Kind)
	require.Equal(t, "update", report.Fault.Stage)
	require.Equal(t, 121, report.Frames)
	require.Contains(t, report.Screen, "Runtime Error:")

	var out bytes.Buffer
	printReport(&out, spec.DisplayTitle(), report, false)
	require.Contains(t, out.String(), "Phase:  faulted")
	require.Contains(t, out.String(), "Fault:  runtime in update:")
}

func TestLoadSpecUnknown(t *testing.T) {
	_, err := loadSpec("definitely-not-a-sketch")
	require.ErrorContains(t, err, "not a file or bundled example")
}
