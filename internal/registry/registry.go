// Package registry provides a global registry of bundled sketches.
// Example packages register themselves in init() functions, allowing the
// platform to discover and load sketches without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/sketch-arcade/internal/gamespec"
)

// SketchInfo contains metadata about a registered sketch.
type SketchInfo struct {
	ID    string
	Title string
}

// Factory returns a freshly parsed GameSpec on every call, so callers never
// share one.
type Factory func() (*gamespec.GameSpec, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a sketch factory to the registry.
// Typically called from an init() function.
// Panics if the ID is already registered or the factory cannot produce a spec.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: sketch %q already registered", id))
	}

	// Get title by creating a temporary instance
	spec, err := f()
	if err != nil {
		panic(fmt.Sprintf("registry: sketch %q: %v", id, err))
	}

	factories[id] = f
	titles[id] = spec.DisplayTitle()
}

// List returns information about all registered sketches, sorted by ID.
func List() []SketchInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SketchInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SketchInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create returns a new GameSpec for the given ID.
// Returns an error if the ID is not registered.
func Create(id string) (*gamespec.GameSpec, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown sketch %q", id)
	}
	return f()
}

// Exists checks if a sketch with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
