// Package synth turns a GameSpec into the source of a p5.js instance-mode
// program. Generation is pure: fragments are embedded as string data and are
// compiled only when the emitted program bootstraps.
package synth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/gamespec"
)

// Synthesize emits one self-contained `new p5((p) => { ... })` program for spec.
// The only error is a failure to encode initialState as JSON.
func Synthesize(spec *gamespec.GameSpec, cfg config.Config) (string, error) {
	raw, err := spec.StateJSON()
	if err != nil {
		return "", fmt.Errorf("synth: %w", err)
	}
	// Same escaping json.Marshal applies: <, >, &, U+2028 and U+2029
	var state bytes.Buffer
	json.HTMLEscape(&state, raw)

	w := &writer{}
	w.line(0, "new p5((p) => {")
	w.line(1, "let state = null;")
	w.line(1, "let updateFunc = null;")
	w.line(1, "let drawFunc = null;")
	w.line(1, "let handlers = {};")
	w.line(1, "let error = null;")
	w.blank()
	w.line(1, "const initialState = %s;", state.String())
	w.blank()
	w.line(1, "const compile = (body) => new Function('state', 'p', body);")
	w.blank()
	writeViewport(w, cfg)
	writeFail(w)
	writeBootstrap(w, spec, cfg)
	writeSetup(w, cfg)
	writeDraw(w)
	writeResize(w, cfg)
	writeDispatch(w, spec)
	w.line(0, "});")

	return w.String(), nil
}

func writeViewport(w *writer, cfg config.Config) {
	if cfg.Canvas.Mode == config.CanvasFixed {
		w.line(1, "const surfaceWidth = () => %d;", cfg.Canvas.Width)
		w.line(1, "const surfaceHeight = () => %d;", cfg.Canvas.Height)
		w.blank()
		return
	}
	// clientWidth excludes scrollbars; innerWidth covers hosts without a root element size
	w.line(1, "const surfaceWidth = () => Math.min(window.innerWidth, document.documentElement.clientWidth || window.innerWidth);")
	w.line(1, "const surfaceHeight = () => Math.min(window.innerHeight, document.documentElement.clientHeight || window.innerHeight);")
	w.blank()
}

func writeFail(w *writer) {
	w.line(1, "const describe = (e) => (e && e.message !== undefined ? e.message : String(e));")
	w.blank()
	w.line(1, "const fail = (stage, e) => {")
	w.line(2, "if (error === null) {")
	w.line(3, "error = e;")
	w.line(2, "}")
	w.line(2, "console.error(stage + ' Error:', e);")
	w.line(1, "};")
	w.blank()
	w.line(1, "const showFault = () => {")
	w.line(2, "p.background(50, 0, 0);")
	w.line(2, "p.noStroke();")
	w.line(2, "p.fill(255);")
	w.line(2, "p.textSize(16);")
	w.line(2, "p.text('Runtime Error:\\n' + describe(error), 20, 40);")
	w.line(2, "p.noLoop();")
	w.line(1, "};")
	w.blank()
}

func writeBootstrap(w *writer, spec *gamespec.GameSpec, cfg config.Config) {
	w.line(1, "const bootstrap = () => {")
	w.line(2, "state = null;")
	w.line(2, "updateFunc = null;")
	w.line(2, "drawFunc = null;")
	w.line(2, "handlers = {};")
	w.line(2, "error = null;")
	w.blank()
	w.line(2, "try {")
	for _, c := range cfg.Capabilities {
		w.line(3, "if (typeof p[%s] === 'undefined') {", literal(c.Property))
		w.line(4, "throw new Error(%s);", literal(c.LibraryName()+" library not loaded"))
		w.line(3, "}")
	}
	w.line(3, "if (p.allSprites) {")
	w.line(4, "p.allSprites.removeAll();")
	w.line(3, "}")
	w.blank()
	w.line(3, "state = JSON.parse(JSON.stringify(initialState));")
	w.blank()
	hasSetup := gamespec.Present(spec.Setup)
	if hasSetup {
		w.line(3, "const setupFunc = compile(%s);", literal(spec.Setup))
	}
	w.line(3, "const nextUpdate = compile(%s);", literal(spec.Update))
	w.line(3, "const nextDraw = compile(%s);", literal(spec.Draw))
	for _, h := range spec.Handlers() {
		w.line(3, "handlers.%s = compile(%s);", h.Name, literal(h.Body))
	}
	if hasSetup {
		w.blank()
		w.line(3, "setupFunc(state, p);")
	}
	w.line(3, "updateFunc = nextUpdate;")
	w.line(3, "drawFunc = nextDraw;")
	w.line(2, "} catch (e) {")
	w.line(3, "fail('Setup', e);")
	w.line(2, "}")
	w.line(1, "};")
	w.blank()
}

func writeSetup(w *writer, cfg config.Config) {
	w.line(1, "p.setup = function() {")
	w.line(2, "p.createCanvas(surfaceWidth(), surfaceHeight());")
	w.line(2, "p.frameRate(%d);", cfg.FrameRate)
	w.line(2, "bootstrap();")
	w.line(1, "};")
	w.blank()
}

func writeDraw(w *writer) {
	w.line(1, "p.draw = function() {")
	w.line(2, "if (error !== null) {")
	w.line(3, "showFault();")
	w.line(3, "return;")
	w.line(2, "}")
	w.line(2, "if (!state || !updateFunc || !drawFunc) {")
	w.line(3, "return;")
	w.line(2, "}")
	w.blank()
	w.line(2, "try {")
	w.line(3, "updateFunc(state, p);")
	w.line(3, "p.push();")
	w.line(3, "try {")
	w.line(4, "drawFunc(state, p);")
	w.line(3, "} finally {")
	w.line(4, "p.pop();")
	w.line(3, "}")
	w.line(2, "} catch (e) {")
	w.line(3, "fail('Runtime', e);")
	w.line(3, "showFault();")
	w.line(2, "}")
	w.line(1, "};")
	w.blank()
}

func writeResize(w *writer, cfg config.Config) {
	w.line(1, "p.windowResized = function() {")
	if cfg.Canvas.Mode == config.CanvasResponsive {
		w.line(2, "p.resizeCanvas(surfaceWidth(), surfaceHeight());")
	}
	if cfg.Resize == config.ResizeRestart {
		w.line(2, "bootstrap();")
		w.line(2, "p.loop();")
	}
	w.line(1, "};")
}

func writeDispatch(w *writer, spec *gamespec.GameSpec) {
	handlers := spec.Handlers()
	if len(handlers) == 0 {
		return
	}

	// Handlers stay silent once a fault is shown, same as the Go runner
	w.blank()
	w.line(1, "const dispatch = (name) => {")
	w.line(2, "const handler = handlers[name];")
	w.line(2, "if (error !== null || !state || typeof handler !== 'function') {")
	w.line(3, "return false;")
	w.line(2, "}")
	w.line(2, "try {")
	w.line(3, "handler(state, p);")
	w.line(2, "} catch (e) {")
	w.line(3, "console.error(name + ' Error:', e);")
	w.line(2, "}")
	w.line(2, "return true;")
	w.line(1, "};")

	has := func(kind core.EventKind) bool { return gamespec.Present(spec.Handler(kind)) }
	for _, h := range handlers {
		if h.Kind == core.EventTouchStarted {
			continue
		}
		w.blank()
		w.line(1, "p.%s = function() {", h.Name)
		if h.Kind == core.EventTouchEnded {
			w.line(2, "if (dispatch(%s)) {", literal(h.Name))
			w.line(3, "return false;")
			w.line(2, "}")
		} else {
			w.line(2, "dispatch(%s);", literal(h.Name))
		}
		w.line(1, "};")
	}

	// Touch-only devices still reach a pointer-press handler
	if has(core.EventTouchStarted) || has(core.EventMousePressed) {
		target := core.EventTouchStarted
		if !has(core.EventTouchStarted) {
			target = core.EventMousePressed
		}
		w.blank()
		w.line(1, "p.touchStarted = function() {")
		w.line(2, "if (dispatch(%s)) {", literal(target.String()))
		w.line(3, "return false;")
		w.line(2, "}")
		w.line(1, "};")
	}
}

type writer struct {
	sb strings.Builder
}

func (w *writer) line(indent int, format string, args ...any) {
	w.sb.WriteString(strings.Repeat("  ", indent))
	if len(args) == 0 {
		w.sb.WriteString(format)
	} else {
		fmt.Fprintf(&w.sb, format, args...)
	}
	w.sb.WriteByte('\n')
}

func (w *writer) blank() {
	w.sb.WriteByte('\n')
}

func (w *writer) String() string {
	return w.sb.String()
}
