package runner

import (
	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// Frame runs one tick. A faulted instance only renders its diagnostic. An
// instance whose bootstrap never produced state, update and draw does
// nothing. Otherwise update runs, then draw inside a Save/Restore bracket.
// A throw from either captures the fault and the diagnostic is rendered on
// the same tick; draw does not run after a failed update.
func (in *Instance) Frame() {
	if in.fault != nil {
		in.host.Diagnostic(DiagnosticText(in.fault))
		return
	}
	if in.state == nil || in.update == nil || in.draw == nil {
		return
	}

	in.frames++
	in.host.BeginFrame()

	if err := invoke(in.vm, in.cfg.FrameBudget, in.update, in.state, in.api); err != nil {
		in.runtimeFault("update", err)
		return
	}

	in.host.Save()
	err := invoke(in.vm, in.cfg.FrameBudget, in.draw, in.state, in.api)
	in.host.Restore()
	if err != nil {
		in.runtimeFault("draw", err)
	}
}

func (in *Instance) runtimeFault(stage string, err error) {
	in.setFault(&Fault{Kind: FaultRuntime, Stage: stage, Message: describe(err), Err: err})
	in.host.Diagnostic(DiagnosticText(in.fault))
}

// Dispatch delivers an input event and reports whether a handler ran.
// Absent handlers are ignored, except that a touch start with no handler of
// its own falls back to the mouse-press handler. A handler that throws is
// logged and otherwise ignored; it never faults the instance.
//
// Events are ignored while the instance has no state or is faulted. This is
// stricter than a hand-written p5 sketch, whose handlers keep firing after a
// draw error: a faulted instance keeps its diagnostic on screen and its
// state frozen until a restart.
func (in *Instance) Dispatch(kind core.EventKind) bool {
	if in.fault != nil || in.state == nil {
		return false
	}

	fn, ok := in.handlers[kind]
	name := kind.String()
	if !ok && kind == core.EventTouchStarted {
		fn, ok = in.handlers[core.EventMousePressed]
		name = core.EventMousePressed.String()
	}
	if !ok {
		return false
	}

	in.host.Sync()
	if err := invoke(in.vm, in.cfg.FrameBudget, fn, in.state, in.api); err != nil {
		in.logger.Error("input handler failed", "handler", name, "event", kind, "err", describe(err))
	}
	return true
}
