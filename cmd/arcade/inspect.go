package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/gamespec"
	"github.com/vovakirdan/sketch-arcade/internal/synth"
)

var (
	flagRaw      bool
	flagWithHTML bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <spec|example>",
	Short: "Show the synthesized program",
	Long: `Synthesize a sketch and print the program with syntax highlighting.

Examples:
  arcade inspect bounce
  arcade inspect ./my-sketch.json --raw > index.js
  arcade inspect clicker --html`,
	Args: cobra.ExactArgs(1),
	Run:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&flagRaw, "raw", false, "Print the plain source without rendering")
	inspectCmd.Flags().BoolVar(&flagWithHTML, "html", false, "Also show index.html")
}

func runInspect(_ *cobra.Command, args []string) {
	spec, err := loadSpec(args[0])
	if err != nil {
		fail(err)
	}

	cfg, err := loadConfig(config.PresetBrowser)
	if err != nil {
		fail(err)
	}

	bundle, err := synth.Build(spec, cfg)
	if err != nil {
		fail(err)
	}

	if flagRaw {
		fmt.Print(bundle.IndexJS)
		return
	}

	width, _ := terminalSize()
	out, err := renderBundle(spec, bundle, flagWithHTML, width)
	if err != nil {
		// Fall back to plain text
		fmt.Print(bundle.IndexJS)
		return
	}
	fmt.Print(out)
}

// renderBundle renders the bundle as markdown for the terminal.
func renderBundle(spec *gamespec.GameSpec, bundle *synth.Bundle, withHTML bool, width int) (string, error) {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", spec.DisplayTitle())
	fmt.Fprintf(&md, "`%s` sha256 `%s`\n\n", synth.IndexJSName, bundle.Digest())
	fmt.Fprintf(&md, "```javascript\n%s```\n", bundle.IndexJS)
	if withHTML {
		fmt.Fprintf(&md, "\n## %s\n\n```html\n%s```\n", synth.IndexHTMLName, bundle.IndexHTML)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width-4, 40)),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(md.String())
}
