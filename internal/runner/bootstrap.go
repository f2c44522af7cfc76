package runner

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/gamespec"
)

// Bootstrap activates the instance in a brand-new realm: the host installs
// the api handle, capabilities are checked, the initial state is deep-copied,
// every present fragment is compiled and setup runs once. Any failure is
// captured as the instance fault; Bootstrap never returns an error and never
// panics.
func (in *Instance) Bootstrap(rc core.RuntimeConfig) {
	in.rc = rc
	in.discard()
	in.phase = PhaseBootstrapping

	defer func() {
		if r := recover(); r != nil {
			in.setFault(&Fault{
				Kind:    FaultRuntime,
				Stage:   "bootstrap",
				Message: fmt.Sprint(r),
				Err:     fmt.Errorf("runner: bootstrap panic: %v", r),
			})
		}
		if in.fault == nil {
			in.phase = PhaseRunning
		}
	}()

	vm := goja.New()
	in.vm = vm
	if err := installConsole(vm, in.logger); err != nil {
		in.setFault(&Fault{Kind: FaultRuntime, Stage: "install", Message: err.Error(), Err: err})
		return
	}

	api, err := in.host.Install(vm, rc)
	if err != nil {
		in.setFault(&Fault{Kind: FaultRuntime, Stage: "install", Message: err.Error(), Err: err})
		return
	}
	in.api = api

	for _, capability := range in.cfg.Capabilities {
		if v := api.Get(capability.Property); v == nil || goja.IsUndefined(v) {
			msg := capability.LibraryName() + " library not loaded"
			in.setFault(&Fault{Kind: FaultCapability, Stage: "bootstrap", Message: msg, Err: fmt.Errorf("runner: %s", msg)})
			return
		}
	}

	state, err := in.copyState()
	if err != nil {
		in.setFault(&Fault{Kind: FaultRuntime, Stage: "state", Message: describe(err), Err: err})
		return
	}

	var setup goja.Callable
	if gamespec.Present(in.spec.Setup) {
		if setup, err = in.compile(in.spec.Setup); err != nil {
			in.compileFault("setup", err)
			return
		}
	}
	update, err := in.compile(in.spec.Update)
	if err != nil {
		in.compileFault("update", err)
		return
	}
	draw, err := in.compile(in.spec.Draw)
	if err != nil {
		in.compileFault("draw", err)
		return
	}
	handlers := make(map[core.EventKind]goja.Callable)
	for _, h := range in.spec.Handlers() {
		fn, err := in.compile(h.Body)
		if err != nil {
			in.compileFault(h.Name, err)
			return
		}
		handlers[h.Kind] = fn
	}

	in.state = state
	if setup != nil {
		if err := invoke(vm, in.cfg.FrameBudget, setup, state, api); err != nil {
			in.setFault(&Fault{Kind: FaultRuntime, Stage: "setup", Message: describe(err), Err: err})
			return
		}
	}

	in.update = update
	in.draw = draw
	in.handlers = handlers
	in.logger.Debug("bootstrapped", "handlers", len(handlers))
}

// discard drops everything bound to the previous realm, the fault included.
func (in *Instance) discard() {
	in.vm = nil
	in.api = nil
	in.state = nil
	in.update = nil
	in.draw = nil
	in.handlers = nil
	in.fault = nil
	in.frames = 0
}

// copyState builds state by parsing the canonical JSON of initialState inside
// the realm, so it shares nothing with the GameSpec or an earlier realm.
func (in *Instance) copyState() (*goja.Object, error) {
	data, err := in.spec.StateJSON()
	if err != nil {
		return nil, err
	}
	parse, ok := goja.AssertFunction(in.vm.Get("JSON").ToObject(in.vm).Get("parse"))
	if !ok {
		return nil, fmt.Errorf("runner: JSON.parse unavailable")
	}
	v, err := parse(goja.Undefined(), in.vm.ToValue(string(data)))
	if err != nil {
		return nil, err
	}
	return v.ToObject(in.vm), nil
}

// compile turns fragment text into a callable of (state, p) using the
// realm's own Function constructor.
func (in *Instance) compile(body string) (fn goja.Callable, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("runner: compile panic: %v", r)
		}
	}()

	ctor, ok := goja.AssertConstructor(in.vm.Get("Function"))
	if !ok {
		return nil, fmt.Errorf("runner: Function constructor unavailable")
	}
	obj, err := ctor(nil, in.vm.ToValue("state"), in.vm.ToValue("p"), in.vm.ToValue(body))
	if err != nil {
		return nil, err
	}
	fn, ok = goja.AssertFunction(obj)
	if !ok {
		return nil, fmt.Errorf("runner: compiled fragment is not callable")
	}
	return fn, nil
}

func (in *Instance) compileFault(stage string, err error) {
	in.setFault(&Fault{Kind: FaultCompile, Stage: stage, Message: describe(err), Err: err})
}
