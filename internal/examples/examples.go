// Package examples bundles sample GameSpecs and registers them with the
// registry. Import it for side effects.
package examples

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/vovakirdan/sketch-arcade/internal/gamespec"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
)

//go:embed specs/*.json
var specs embed.FS

func init() {
	entries, err := fs.ReadDir(specs, "specs")
	if err != nil {
		panic(fmt.Sprintf("examples: cannot list specs: %v", err))
	}
	for _, entry := range entries {
		name := entry.Name()
		id := strings.TrimSuffix(name, path.Ext(name))
		data, err := specs.ReadFile(path.Join("specs", name))
		if err != nil {
			panic(fmt.Sprintf("examples: cannot read %s: %v", name, err))
		}
		registry.Register(id, func() (*gamespec.GameSpec, error) {
			return gamespec.Read(bytes.NewReader(data), gamespec.FormatJSON)
		})
	}
}

// Source returns the raw JSON of a bundled example.
func Source(id string) ([]byte, bool) {
	data, err := specs.ReadFile(path.Join("specs", id+".json"))
	if err != nil {
		return nil, false
	}
	return data, true
}
