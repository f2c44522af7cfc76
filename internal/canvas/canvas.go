// Package canvas is a terminal host for sketches: it implements runner.Host
// with a subset of the p5 api that draws into a core.Screen.
//
// Sketch code works in logical pixels. The logical surface is scaled onto
// the character grid, one cell standing for cellWidth x cellHeight pixels in
// responsive mode. Colours are snapped to the terminal palette. Filled
// shapes are drawn solid and ignore the stroke; stroke-only shapes, lines and
// points use the stroke colour.
package canvas

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// Nominal pixel size of one terminal cell.
const (
	cellWidth  = 8
	cellHeight = 16
)

// keyHold is how long a key counts as held after its last press. Terminals
// report presses and auto-repeat, never releases.
const keyHold = 150 * time.Millisecond

// style is the drawing state p5's push/pop save and restore.
type style struct {
	fill      core.Color
	hasFill   bool
	stroke    core.Color
	hasStroke bool
	textSize  float64
	alignH    string
	alignV    string
	tx, ty    float64
}

func defaultStyle() style {
	return style{
		fill:      core.ColorBrightWhite,
		hasFill:   true,
		stroke:    core.ColorBlack,
		hasStroke: true,
		textSize:  12,
		alignH:    alignLeft,
		alignV:    alignBaseline,
	}
}

// Canvas draws sketch output into a character screen. It is not safe for
// concurrent use; the goroutine driving the runner owns it.
type Canvas struct {
	cfg    config.Config
	now    func() time.Time
	logger *log.Logger
	screen *core.Screen

	vm *goja.Runtime
	p  *goja.Object

	// Logical surface size in pixels
	width, height float64

	style  style
	stack  []style
	frames []frameMark

	input   core.InputState
	held    map[int]time.Time
	rng     *rand.Rand
	started time.Time
	last    time.Time
	count   int
	delta   float64
	looping bool
	fps     int
	faulted bool
	seed    int64
}

// frameMark is what Save records for Restore.
type frameMark struct {
	style style
	depth int
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithLogger sets the logger for host-side problems. The default discards.
func WithLogger(logger *log.Logger) Option {
	return func(c *Canvas) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock replaces time.Now, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(c *Canvas) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a Canvas for the given sketch configuration.
func New(cfg config.Config, opts ...Option) *Canvas {
	c := &Canvas{
		cfg:     cfg,
		now:     time.Now,
		logger:  log.New(io.Discard),
		screen:  core.NewScreen(0, 0),
		style:   defaultStyle(),
		held:    make(map[int]time.Time),
		looping: true,
		fps:     cfg.FrameRate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Install implements runner.Host. It resets every per-activation value and
// builds the p handle in vm.
func (c *Canvas) Install(vm *goja.Runtime, rc core.RuntimeConfig) (*goja.Object, error) {
	c.vm = vm
	c.screen = core.NewScreen(rc.ScreenW, rc.ScreenH)
	c.screen.Paint(core.ColorBlack)
	c.style = defaultStyle()
	c.stack = nil
	c.frames = nil
	c.count = 0
	c.delta = 0
	c.looping = true
	c.faulted = false
	c.input = core.InputState{}
	c.held = make(map[int]time.Time)
	c.fps = c.cfg.FrameRate
	if rc.TickRate > 0 && c.fps <= 0 {
		c.fps = rc.TickRate
	}
	c.started = c.now()
	c.last = c.started

	c.seed = rc.Seed
	if c.seed == 0 {
		c.seed = time.Now().UnixNano()
	}
	c.rng = rand.New(rand.NewSource(c.seed))

	c.fitSurface()

	p := vm.NewObject()
	c.p = p
	if err := c.bind(p); err != nil {
		return nil, err
	}
	c.publish()
	return p, nil
}

// fitSurface sets the logical size from the canvas mode.
func (c *Canvas) fitSurface() {
	if c.cfg.Canvas.Mode == config.CanvasFixed && c.cfg.Canvas.Width > 0 && c.cfg.Canvas.Height > 0 {
		c.width = float64(c.cfg.Canvas.Width)
		c.height = float64(c.cfg.Canvas.Height)
		return
	}
	c.width = float64(c.windowWidth())
	c.height = float64(c.windowHeight())
}

func (c *Canvas) windowWidth() int  { return c.screen.Width() * cellWidth }
func (c *Canvas) windowHeight() int { return c.screen.Height() * cellHeight }

// Resize implements runner.Host. A responsive surface follows the terminal;
// a fixed one keeps its logical size and is rescaled.
func (c *Canvas) Resize(width, height int) {
	c.screen.Resize(width, height)
	if c.cfg.Canvas.Mode != config.CanvasFixed {
		c.width = float64(c.windowWidth())
		c.height = float64(c.windowHeight())
	}
	c.publish()
}

// BeginFrame implements runner.Host.
func (c *Canvas) BeginFrame() {
	now := c.now()
	c.count++
	c.delta = float64(now.Sub(c.last)) / float64(time.Millisecond)
	c.last = now
	c.publish()
}

// Sync implements runner.Host.
func (c *Canvas) Sync() {
	c.publish()
}

// Save implements runner.Host.
func (c *Canvas) Save() {
	c.frames = append(c.frames, frameMark{style: c.style, depth: len(c.stack)})
}

// Restore implements runner.Host. Styles pushed and never popped by the
// sketch are dropped too.
func (c *Canvas) Restore() {
	if len(c.frames) == 0 {
		return
	}
	mark := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	c.style = mark.style
	if mark.depth <= len(c.stack) {
		c.stack = c.stack[:mark.depth]
	}
}

// Diagnostic implements runner.Host: dark red surface, white message, and
// the loop stops like p5's noLoop.
func (c *Canvas) Diagnostic(text string) {
	c.screen.Paint(core.ColorDarkRed)
	row := 1
	for _, line := range splitLines(text) {
		for _, chunk := range wrap(line, c.screen.Width()-4) {
			c.screen.DrawTextColor(2, row, chunk, core.ColorBrightWhite)
			row++
		}
	}
	c.looping = false
	c.faulted = true
}

// Screen returns the buffer the sketch draws into.
func (c *Canvas) Screen() *core.Screen { return c.screen }

// Looping reports whether the sketch wants frames (p5 loop/noLoop).
func (c *Canvas) Looping() bool { return c.looping }

// Faulted reports whether the diagnostic view is showing.
func (c *Canvas) Faulted() bool { return c.faulted }

// FrameRate returns the frame rate the sketch asked for.
func (c *Canvas) FrameRate() int { return c.fps }

// Size returns the logical surface size in pixels.
func (c *Canvas) Size() (width, height float64) { return c.width, c.height }

// Input returns the input state published to the sketch.
func (c *Canvas) Input() core.InputState { return c.input }

// publish copies the per-frame values onto the p handle.
func (c *Canvas) publish() {
	if c.p == nil {
		return
	}
	now := c.now()
	values := map[string]any{
		"width":          c.width,
		"height":         c.height,
		"windowWidth":    c.windowWidth(),
		"windowHeight":   c.windowHeight(),
		"frameCount":     c.count,
		"deltaTime":      c.delta,
		"mouseX":         c.input.MouseX,
		"mouseY":         c.input.MouseY,
		"mouseIsPressed": c.input.MousePressed,
		"key":            c.input.Key,
		"keyCode":        c.input.KeyCode,
		"keyIsPressed":   c.anyKeyHeld(now),
	}
	// A sketch may freeze p or redefine these; its own value then stays
	for name, v := range values {
		if err := c.p.Set(name, v); err != nil {
			c.logger.Debug("cannot publish", "property", name, "err", err)
		}
	}
}
