package synth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/gamespec"
)

// Artifact file names inside a bundle directory.
const (
	IndexJSName   = "index.js"
	IndexHTMLName = "index.html"
	ConfigName    = "config.json"
)

// Bundle is the synthesized program plus its two static companions: the HTML
// shell that loads the drawing libraries, and the pretty echo of the GameSpec.
type Bundle struct {
	Title      string
	IndexJS    string
	IndexHTML  string
	ConfigJSON []byte
}

// Build synthesizes the program and its companion artifacts.
func Build(spec *gamespec.GameSpec, cfg config.Config) (*Bundle, error) {
	source, err := Synthesize(spec, cfg)
	if err != nil {
		return nil, err
	}
	echo, err := spec.Pretty()
	if err != nil {
		return nil, fmt.Errorf("synth: %w", err)
	}
	return &Bundle{
		Title:      spec.DisplayTitle(),
		IndexJS:    source,
		IndexHTML:  IndexHTML(spec.DisplayTitle(), cfg.Libraries),
		ConfigJSON: echo,
	}, nil
}

// Digest returns the hex SHA-256 of the program source.
func (b *Bundle) Digest() string {
	sum := sha256.Sum256([]byte(b.IndexJS))
	return hex.EncodeToString(sum[:])
}

// Write stores the three artifacts in dir, creating it if needed.
func (b *Bundle) Write(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("synth: cannot create %s: %w", dir, err)
	}
	files := []struct {
		name string
		data []byte
	}{
		{IndexHTMLName, []byte(b.IndexHTML)},
		{IndexJSName, []byte(b.IndexJS)},
		{ConfigName, b.ConfigJSON},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			return fmt.Errorf("synth: cannot write %s: %w", path, err)
		}
	}
	return nil
}

// IndexHTML returns the markup shell: the libraries in order, then index.js.
func IndexHTML(title string, libraries []string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"en\">\n")
	b.WriteString("  <head>\n")
	b.WriteString("    <meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", html.EscapeString(title))
	for _, src := range libraries {
		fmt.Fprintf(&b, "    <script src=\"%s\"></script>\n", html.EscapeString(src))
	}
	b.WriteString("    <style>\n")
	b.WriteString("      html, body { margin: 0; padding: 0; width: 100%; height: 100%; overflow: hidden; background: #000; }\n")
	b.WriteString("      canvas { display: block; position: absolute; top: 0; left: 0; outline: none; }\n")
	b.WriteString("    </style>\n")
	b.WriteString("  </head>\n")
	b.WriteString("  <body>\n")
	fmt.Fprintf(&b, "    <script src=\"%s\"></script>\n", IndexJSName)
	b.WriteString("  </body>\n")
	b.WriteString("</html>\n")
	return b.String()
}
