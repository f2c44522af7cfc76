package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sketch-arcade/internal/canvas"
	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/gamespec"
	"github.com/vovakirdan/sketch-arcade/internal/runner"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
	"github.com/vovakirdan/sketch-arcade/internal/synth"
)

// footerRows is the number of screen rows kept for the status line.
const footerRows = 1

// PlayerConfig holds everything a Model needs besides the GameSpec.
type PlayerConfig struct {
	// Sketch is the loaded sketch configuration.
	Sketch config.Config

	// Runtime is the initial surface size and seed. ScreenH includes the
	// footer row.
	Runtime core.RuntimeConfig

	// Store records each run. Nil disables history.
	Store *storage.Store

	// SketchID is the storage id of the sketch. If empty and Store is set,
	// the sketch is saved on first start.
	SketchID string

	// Logger receives runner and console output. Nil discards.
	Logger *log.Logger

	// Embedded makes the back key return to a menu instead of quitting.
	Embedded bool
}

// Model is the Bubble Tea model for running one sketch.
type Model struct {
	inst       *runner.Instance
	canvas     *canvas.Canvas
	cfg        PlayerConfig
	keys       SketchKeyMap
	help       help.Model
	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for the given sketch.
func NewModel(spec *gamespec.GameSpec, cfg PlayerConfig) Model {
	// Use time-based seed if not specified
	if cfg.Runtime.Seed == 0 {
		cfg.Runtime.Seed = time.Now().UnixNano()
	}
	if cfg.Runtime.TickRate <= 0 {
		cfg.Runtime.TickRate = cfg.Sketch.FrameRate
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Store != nil && cfg.SketchID == "" {
		cfg.SketchID = rememberSketch(cfg.Store, spec, cfg.Sketch, cfg.Logger)
	}

	cv := canvas.New(cfg.Sketch, canvas.WithLogger(cfg.Logger))
	inst := runner.New(spec, cv, cfg.Sketch, runner.WithLogger(cfg.Logger))

	return Model{
		inst:   inst,
		canvas: cv,
		cfg:    cfg,
		keys:   DefaultSketchKeyMap(),
		help:   help.New(),
		width:  cfg.Runtime.ScreenW,
		height: cfg.Runtime.ScreenH,
	}
}

// Init bootstraps the sketch and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.inst.Bootstrap(m.surface())
	return tickCmd(m.inst.ID(), m.canvas.FrameRate())
}

// surface returns the runtime config for the drawable area.
func (m Model) surface() core.RuntimeConfig {
	rc := m.cfg.Runtime
	rc.ScreenW = m.width
	rc.ScreenH = core.Max(m.height-footerRows, 1)
	return rc
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Instance != m.inst.ID() {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.recordRun()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.recordRun()
		if !m.cfg.Embedded {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.recordRun()
		m.inst.Restart()
		return m, nil
	}

	name, code, ok := canvas.TranslateKey(msg.String())
	if !ok {
		return m, nil
	}
	m.canvas.PressKey(name, code)
	m.inst.Dispatch(core.EventKeyPressed)
	m.canvas.ReleaseKeys()
	return m, nil
}

// handleMouse maps the primary button onto pointer or touch events.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// The footer and anything past the canvas are not part of the sketch
	if !m.canvas.Screen().Bounds().Contains(msg.X, msg.Y) {
		return m, nil
	}
	m.canvas.MoveMouse(msg.X, msg.Y)
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	touch := m.cfg.Sketch.Input.TouchEmulation
	switch msg.Action {
	case tea.MouseActionPress:
		m.canvas.SetMousePressed(true)
		if touch {
			m.inst.Dispatch(core.EventTouchStarted)
		} else {
			m.inst.Dispatch(core.EventMousePressed)
		}
	case tea.MouseActionRelease:
		m.canvas.SetMousePressed(false)
		if touch {
			m.inst.Dispatch(core.EventTouchEnded)
		}
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	rc := m.surface()
	m.inst.Resize(rc.ScreenW, rc.ScreenH)
	return m, nil
}

// handleTick runs one frame while the sketch is looping. Ticks continue
// after noLoop so a handler can call loop again.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	if m.canvas.Looping() {
		m.inst.Frame()
	}
	return m, tickCmd(m.inst.ID(), m.canvas.FrameRate())
}

// recordRun stores the outcome of the current activation, best effort.
func (m Model) recordRun() {
	if m.cfg.Store == nil || m.cfg.SketchID == "" {
		return
	}
	run := storage.Run{SketchID: m.cfg.SketchID, Frames: m.inst.Frames()}
	if f := m.inst.Fault(); f != nil {
		run.FaultKind = f.Kind.String()
		run.FaultMessage = f.Message
	}
	if _, err := m.cfg.Store.RecordRun(run); err != nil {
		m.cfg.Logger.Warn("could not record run", "err", err)
	}
}

var (
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	faultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.canvas.Screen()))
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

// footer renders the status line below the canvas.
func (m Model) footer() string {
	status := fmt.Sprintf("%s  frame %d  ", m.inst.Spec().DisplayTitle(), m.inst.Frames())
	if f := m.inst.Fault(); f != nil {
		status = faultStyle.Render(fmt.Sprintf("%s  %s fault  ", m.inst.Spec().DisplayTitle(), f.Kind))
	} else {
		status = footerStyle.Render(status)
	}
	return status + footerStyle.Render(m.help.View(m.keys))
}

// Instance returns the runner driven by this model.
func (m Model) Instance() *runner.Instance {
	return m.inst
}

// Canvas returns the host the sketch draws into.
func (m Model) Canvas() *canvas.Canvas {
	return m.canvas
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// rememberSketch saves the sketch and returns its id, or "" on failure.
func rememberSketch(store *storage.Store, spec *gamespec.GameSpec, cfg config.Config, logger *log.Logger) string {
	bundle, err := synth.Build(spec, cfg)
	if err != nil {
		logger.Warn("could not synthesize sketch for history", "err", err)
		return ""
	}
	id, err := store.SaveSketch(bundle.Title, bundle.ConfigJSON, bundle.Digest())
	if err != nil {
		logger.Warn("could not save sketch", "err", err)
		return ""
	}
	return id
}

// Run starts the Bubble Tea program for one sketch.
func Run(spec *gamespec.GameSpec, cfg PlayerConfig) error {
	model := NewModel(spec, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Pointer events for mousePressed/touch
	)

	_, err := p.Run()
	return err
}
