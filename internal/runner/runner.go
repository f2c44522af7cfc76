// Package runner executes a GameSpec in an embedded ECMAScript realm.
//
// An Instance follows the lifecycle of a p5 instance-mode sketch:
// Bootstrap compiles the fragments and deep-copies the initial state into a
// brand-new realm, Frame runs update then draw once per tick, and Dispatch
// delivers input events to the optional handlers.
//
// Faults are asymmetric. A throw from setup, update or draw (or a compile
// error or missing capability) is captured once and the instance shows a
// diagnostic from then on. A throw from an input handler is logged and
// swallowed. Only a new bootstrap clears a fault.
//
// An Instance is not safe for concurrent use. Instances share nothing, so
// many may run side by side.
package runner

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"
	"github.com/google/uuid"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/gamespec"
)

// Phase is the lifecycle position of an Instance.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseBootstrapping
	PhaseRunning
	PhaseFaulted
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseBootstrapping:
		return "bootstrapping"
	case PhaseRunning:
		return "running"
	case PhaseFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Instance is one live activation of a GameSpec against a Host.
type Instance struct {
	id     string
	spec   *gamespec.GameSpec
	host   Host
	cfg    config.Config
	logger *log.Logger

	rc     core.RuntimeConfig
	phase  Phase
	fault  *Fault
	frames int

	// Realm-bound; replaced wholesale on every bootstrap
	vm       *goja.Runtime
	api      *goja.Object
	state    *goja.Object
	update   goja.Callable
	draw     goja.Callable
	handlers map[core.EventKind]goja.Callable
}

// Option configures an Instance.
type Option func(*Instance)

// WithLogger sets the logger used for faults, input errors and console output.
func WithLogger(logger *log.Logger) Option {
	return func(in *Instance) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithID sets the instance id used in logs. The default is a random UUID.
func WithID(id string) Option {
	return func(in *Instance) {
		if id != "" {
			in.id = id
		}
	}
}

// New creates an uninitialized Instance. Call Bootstrap before Frame.
func New(spec *gamespec.GameSpec, host Host, cfg config.Config, opts ...Option) *Instance {
	in := &Instance{
		id:     uuid.NewString(),
		spec:   spec,
		host:   host,
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(in)
	}
	in.logger = in.logger.With("instance", in.id)
	return in
}

// ID returns the instance id.
func (in *Instance) ID() string { return in.id }

// Spec returns the GameSpec the instance runs.
func (in *Instance) Spec() *gamespec.GameSpec { return in.spec }

// Phase returns the current lifecycle phase.
func (in *Instance) Phase() Phase { return in.phase }

// Fault returns the captured fault, or nil.
func (in *Instance) Fault() *Fault { return in.fault }

// Frames returns the number of ticks that ran logic since the last bootstrap.
func (in *Instance) Frames() int { return in.frames }

// State exports a snapshot of the live state, or nil before state exists.
// Integers export as int64 and other numbers as float64.
func (in *Instance) State() map[string]any {
	if in.state == nil {
		return nil
	}
	if m, ok := in.state.Export().(map[string]any); ok {
		return m
	}
	return nil
}

// StateJSON returns the live state encoded by the realm's JSON.stringify.
func (in *Instance) StateJSON() (string, error) {
	if in.state == nil {
		return "null", nil
	}
	stringify, ok := goja.AssertFunction(in.vm.Get("JSON").ToObject(in.vm).Get("stringify"))
	if !ok {
		return "", fmt.Errorf("runner: JSON.stringify unavailable")
	}
	v, err := stringify(goja.Undefined(), in.state)
	if err != nil {
		return "", fmt.Errorf("runner: cannot encode state: %s", describe(err))
	}
	if goja.IsUndefined(v) {
		return "null", nil
	}
	return v.String(), nil
}

// DecodeState decodes StateJSON into v.
func (in *Instance) DecodeState(v any) error {
	data, err := in.StateJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), v)
}

// Resize changes the surface size. Under the restart policy a bootstrapped
// instance is then bootstrapped again from the pristine initial state.
func (in *Instance) Resize(width, height int) {
	in.rc.ScreenW, in.rc.ScreenH = width, height
	in.host.Resize(width, height)
	if in.cfg.Resize == config.ResizeRestart && in.phase != PhaseUninitialized {
		in.logger.Debug("resize restart", "width", width, "height", height)
		in.Bootstrap(in.rc)
	}
}

// Restart discards the realm and bootstraps again with the last config.
func (in *Instance) Restart() {
	in.Bootstrap(in.rc)
}

// setFault records f unless a fault is already captured.
func (in *Instance) setFault(f *Fault) {
	if in.fault != nil {
		return
	}
	in.fault = f
	in.phase = PhaseFaulted
	in.logger.Error("sketch faulted", "kind", f.Kind, "stage", f.Stage, "message", f.Message)
}
