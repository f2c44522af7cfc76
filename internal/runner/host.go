package runner

import (
	"github.com/dop251/goja"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// Host provides the drawing api a sketch runs against. One Host serves one
// Instance; Install is called again on every bootstrap with a fresh realm.
type Host interface {
	// Install establishes the drawing surface for rc and returns the api
	// handle passed to fragments as p.
	Install(vm *goja.Runtime, rc core.RuntimeConfig) (*goja.Object, error)
	// Resize changes the surface size in place.
	Resize(width, height int)
	// BeginFrame advances per-tick values (frameCount, deltaTime) and
	// publishes the current input to the handle.
	BeginFrame()
	// Sync publishes the current input to the handle before an event.
	Sync()
	// Save and Restore bracket draw, like p5's push and pop.
	Save()
	Restore()
	// Diagnostic replaces the surface with a fault report.
	Diagnostic(text string)
}
