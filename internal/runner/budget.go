package runner

import (
	"fmt"
	"time"

	"github.com/dop251/goja"
)

// invoke calls fn with (state, p). Go panics raised by host functions are
// recovered and returned as errors. With a positive budget the call is
// interrupted once it runs longer than the budget.
func invoke(vm *goja.Runtime, budget time.Duration, fn goja.Callable, args ...goja.Value) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("host panic: %v", r)
		}
	}()

	if budget > 0 {
		stop := watchdog(vm, budget)
		defer stop()
	}

	_, err = fn(goja.Undefined(), args...)
	return err
}

// watchdog interrupts vm after budget unless the returned stop is called
// first. stop waits for the watchdog goroutine and clears any interrupt it
// left behind, so the next call starts clean.
func watchdog(vm *goja.Runtime, budget time.Duration) (stop func()) {
	done := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		timer := time.NewTimer(budget)
		defer timer.Stop()
		select {
		case <-timer.C:
			vm.Interrupt(ErrBudgetExceeded)
		case <-done:
		}
	}()

	return func() {
		close(done)
		<-exited
		vm.ClearInterrupt()
	}
}
