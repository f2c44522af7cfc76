package runner

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"
)

// FaultKind classifies the first unrecoverable error of an instance.
type FaultKind int

const (
	// FaultCompile means a fragment did not parse as a function body.
	FaultCompile FaultKind = iota + 1
	// FaultRuntime means a fragment threw during setup, update or draw.
	FaultRuntime
	// FaultCapability means a required host-library property was missing.
	FaultCapability
)

func (k FaultKind) String() string {
	switch k {
	case FaultCompile:
		return "compile"
	case FaultRuntime:
		return "runtime"
	case FaultCapability:
		return "capability"
	default:
		return "unknown"
	}
}

// ErrBudgetExceeded interrupts a fragment call that outlives the frame budget.
var ErrBudgetExceeded = errors.New("frame budget exceeded")

// Fault is the captured first error of an instance. It is never modified
// after it is set.
type Fault struct {
	Kind    FaultKind
	Stage   string // install, bootstrap, state, compile, setup, update, draw
	Message string // what the diagnostic view shows
	Err     error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s fault in %s: %s", f.Kind, f.Stage, f.Message)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// DiagnosticText is the text the diagnostic view shows for f.
func DiagnosticText(f *Fault) string {
	return "Runtime Error:\n" + f.Message
}

// describe extracts the message a script error carries: the message property
// of a thrown Error, otherwise the thrown value itself.
func describe(err error) string {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		v := ex.Value()
		if v == nil {
			return ex.Error()
		}
		if obj, ok := v.(*goja.Object); ok {
			if msg := obj.Get("message"); msg != nil && !goja.IsUndefined(msg) {
				return msg.String()
			}
		}
		return v.String()
	}

	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if cause, ok := interrupted.Value().(error); ok {
			return cause.Error()
		}
		return fmt.Sprint(interrupted.Value())
	}

	return err.Error()
}
