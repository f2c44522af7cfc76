package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/gamespec"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
	"github.com/vovakirdan/sketch-arcade/internal/runner"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

func init() {
	registry.Register("tui-counter", func() (*gamespec.GameSpec, error) {
		return counterSpec(), nil
	})
}

func counterSpec() *gamespec.GameSpec {
	return &gamespec.GameSpec{
		Title:        "Counter",
		InitialState: map[string]any{"n": 0, "clicks": 0},
		Update:       "state.n++;",
		Draw:         "p.background(0); p.text('n=' + state.n, 10, 20);",
		MousePressed: "state.clicks++; state.mx = p.mouseX;",
		KeyPressed:   "state.key = p.key; state.code = p.keyCode;",
		TouchEnded:   "state.ended = true;",
	}
}

func terminalConfig() config.Config {
	cfg := config.DefaultConfig()
	config.ApplyPreset(&cfg, config.PresetTerminal)
	return cfg
}

func newTestModel(t *testing.T, spec *gamespec.GameSpec, mutate func(*PlayerConfig)) Model {
	t.Helper()
	pc := PlayerConfig{
		Sketch:  terminalConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 40, ScreenH: 13, Seed: 1},
	}
	if mutate != nil {
		mutate(&pc)
	}
	m := NewModel(spec, pc)
	require.NotNil(t, m.Init())
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := send(t, m, TickMsg{Instance: m.Instance().ID()})
	require.NotNil(t, cmd, "tick chain must continue")
	return m
}

func TestInitBootstrapsWithFooterReserved(t *testing.T) {
	m := newTestModel(t, counterSpec(), nil)

	require.Equal(t, runner.PhaseRunning, m.Instance().Phase())
	require.Equal(t, 40, m.Canvas().Screen().Width())
	require.Equal(t, 12, m.Canvas().Screen().Height())
}

func TestTickRunsFrames(t *testing.T) {
	m := newTestModel(t, counterSpec(), nil)

	m = tick(t, m)
	m = tick(t, m)

	require.EqualValues(t, 2, m.Instance().State()["n"])
	require.Contains(t, m.View(), "n=2")
}

func TestStaleTickIsDropped(t *testing.T) {
	m := newTestModel(t, counterSpec(), nil)

	m, cmd := send(t, m, TickMsg{Instance: "previous-sketch"})

	require.Nil(t, cmd)
	require.Equal(t, 0, m.Instance().Frames())
}

func TestKeysReachSketch(t *testing.T) {
	m := newTestModel(t, counterSpec(), nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	state := m.Instance().State()
	require.Equal(t, "a", state["key"])
	require.EqualValues(t, 65, state["code"])

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	state = m.Instance().State()
	require.Equal(t, "ArrowLeft", state["key"])
	require.EqualValues(t, 37, state["code"])
	require.False(t, m.Canvas().Input().KeyPressed)
}

func TestRestartKey(t *testing.T) {
	m := newTestModel(t, counterSpec(), nil)
	m = tick(t, m)
	m = tick(t, m)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})

	require.Nil(t, cmd)
	require.EqualValues(t, 0, m.Instance().State()["n"])
	require.Nil(t, m.Instance().State()["key"], "ctrl+r is not forwarded")
}

func TestMousePressDispatches(t *testing.T) {
	m := newTestModel(t, counterSpec(), nil)

	m, _ = send(t, m, tea.MouseMsg{X: 3, Y: 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	state := m.Instance().State()
	require.EqualValues(t, 1, state["clicks"])
	require.InDelta(t, 28, state["mx"], 0.001)
	require.True(t, m.Canvas().Input().MousePressed)

	m, _ = send(t, m, tea.MouseMsg{X: 3, Y: 2, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.EqualValues(t, 1, m.Instance().State()["clicks"])
	require.Nil(t, m.Instance().State()["ended"], "touchEnded needs touch emulation")

	// The footer row is not part of the canvas
	m, _ = send(t, m, tea.MouseMsg{X: 3, Y: 12, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	require.EqualValues(t, 1, m.Instance().State()["clicks"])
}

func TestTouchEmulation(t *testing.T) {
	m := newTestModel(t, counterSpec(), func(pc *PlayerConfig) {
		pc.Sketch.Input.TouchEmulation = true
	})

	m, _ = send(t, m, tea.MouseMsg{X: 1, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	require.EqualValues(t, 1, m.Instance().State()["clicks"], "touchStarted falls back to mousePressed once")

	m, _ = send(t, m, tea.MouseMsg{X: 1, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	require.Equal(t, true, m.Instance().State()["ended"])
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t, counterSpec(), nil)
	m = tick(t, m)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 30, Height: 11})

	require.Equal(t, 30, m.Canvas().Screen().Width())
	require.Equal(t, 10, m.Canvas().Screen().Height())
	require.EqualValues(t, 1, m.Instance().State()["n"], "resize policy keeps state")
}

func TestWindowResizeRestartPolicy(t *testing.T) {
	m := newTestModel(t, counterSpec(), func(pc *PlayerConfig) {
		pc.Sketch.Resize = config.ResizeRestart
	})
	m = tick(t, m)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 30, Height: 11})

	require.EqualValues(t, 0, m.Instance().State()["n"])
}

func TestFaultIsShown(t *testing.T) {
	spec := &gamespec.GameSpec{
		Title:        "Broken",
		InitialState: map[string]any{},
		Update:       "throw new Error('boom');",
		Draw:         "",
	}
	m := newTestModel(t, spec, nil)

	m = tick(t, m)

	view := m.View()
	require.Contains(t, view, "Runtime Error:")
	require.Contains(t, view, "boom")
	require.Contains(t, view, "runtime fault")
	require.False(t, m.Canvas().Looping())

	// Further ticks keep the chain alive but run nothing
	m = tick(t, m)
	require.Equal(t, 1, m.Instance().Frames())
}

func TestQuitRecordsRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	m := newTestModel(t, counterSpec(), func(pc *PlayerConfig) {
		pc.Store = store
		pc.Logger = log.New(io.Discard)
	})
	m = tick(t, m)
	m = tick(t, m)
	m = tick(t, m)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.True(t, m.IsQuitting())
	require.Empty(t, m.View())

	sketches, err := store.RecentSketches(10)
	require.NoError(t, err)
	require.Len(t, sketches, 1)
	require.Equal(t, "Counter", sketches[0].Title)

	runs, err := store.Runs(sketches[0].ID, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, 3, runs[0].Frames)
	require.Empty(t, runs[0].FaultKind)
}

func TestBackKey(t *testing.T) {
	standalone := newTestModel(t, counterSpec(), nil)
	standalone, cmd := send(t, standalone, tea.KeyMsg{Type: tea.KeyCtrlB})
	require.NotNil(t, cmd)
	require.True(t, standalone.IsQuitting())

	embedded := newTestModel(t, counterSpec(), func(pc *PlayerConfig) { pc.Embedded = true })
	embedded, cmd = send(t, embedded, tea.KeyMsg{Type: tea.KeyCtrlB})
	require.Nil(t, cmd)
	require.True(t, embedded.BackToMenu())
	require.False(t, embedded.IsQuitting())
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.Paint(core.ColorNavy)
	s.DrawTextColor(1, 0, "hi", core.ColorBrightYellow)
	s.DrawText(0, 1, "ok")

	out := RenderScreen(s)

	require.Equal(t, 1, strings.Count(out, "\n"))
	require.Contains(t, out, "hi")
	require.Contains(t, out, "ok")
}

func TestMenuSelectsSketch(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 60, ScreenH: 20})
	require.Contains(t, m.View(), "Counter")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	require.NotNil(t, cmd)
	require.NotNil(t, m.Selected())
	require.Equal(t, "tui-counter", m.Selected().SketchID)
}

func TestMenuHistoryAndQuit(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 60, ScreenH: 20})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.True(t, next.(MenuModel).WantsHistory())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.True(t, next.(MenuModel).IsQuitting())
}

func TestHistoryView(t *testing.T) {
	empty := NewHistoryModel(nil, 100, 30)
	require.Contains(t, empty.View(), "No sketches recorded yet.")

	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	id, err := store.SaveSketch("Counter", []byte(`{}`), "sha")
	require.NoError(t, err)
	_, err = store.RecordRun(storage.Run{SketchID: id, Frames: 42, FaultKind: "runtime", FaultMessage: "boom"})
	require.NoError(t, err)

	h := NewHistoryModel(store, 100, 30)
	view := h.View()
	require.Contains(t, view, "Counter (1 runs, 1 faults)")
	require.Contains(t, view, "boom")

	next, _ := h.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, next.(HistoryModel).IsGoingBack())
}

func TestSessionFlow(t *testing.T) {
	rc := core.RuntimeConfig{ScreenW: 40, ScreenH: 13, Seed: 1}
	s := NewSessionModel(nil, terminalConfig(), rc, log.New(io.Discard))

	update := func(msg tea.Msg) tea.Cmd {
		next, cmd := s.Update(msg)
		s = next.(SessionModel)
		return cmd
	}

	require.NotNil(t, update(tea.KeyMsg{Type: tea.KeyEnter}), "starting a sketch starts the tick chain")
	require.Equal(t, viewSketch, s.view)
	require.Equal(t, runner.PhaseRunning, s.player.Instance().Phase())

	update(tea.KeyMsg{Type: tea.KeyCtrlB})
	require.Equal(t, viewMenu, s.view)
	require.Nil(t, s.player)

	update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, viewHistory, s.view)
	require.Contains(t, s.View(), "No sketches recorded yet.")

	update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, viewMenu, s.view)

	require.NotNil(t, update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}))
	require.True(t, s.quitting)
}
