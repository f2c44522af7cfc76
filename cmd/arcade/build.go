package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/synth"
)

var flagOutDir string

var buildCmd = &cobra.Command{
	Use:   "build <spec|example>",
	Short: "Write the browser bundle for a sketch",
	Long: `Synthesize a sketch and write the three browser artifacts:

  index.js     - the p5 instance-mode program
  index.html   - loads the drawing libraries, then index.js
  config.json  - pretty echo of the GameSpec

The browser preset is used unless --preset says otherwise. The sketch is
recorded in the history database.

Examples:
  arcade build catcher -o ./out
  arcade build ./my-sketch.yaml -o ./site --preset classic
  cat sketch.json | arcade build - -o ./out`,
	Args: cobra.ExactArgs(1),
	Run:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&flagOutDir, "out", "o", "dist", "Output directory")
}

func runBuild(_ *cobra.Command, args []string) {
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
	if err := bundle.Write(flagOutDir); err != nil {
		fail(err)
	}

	fmt.Printf("Built %q\n", bundle.Title)
	for _, name := range []string{synth.IndexJSName, synth.IndexHTMLName, synth.ConfigName} {
		fmt.Printf("  %s\n", filepath.Join(flagOutDir, name))
	}
	fmt.Printf("Source sha256: %s\n", bundle.Digest())

	if store := openStore(); store != nil {
		defer store.Close()
		id, err := store.SaveSketch(bundle.Title, bundle.ConfigJSON, bundle.Digest())
		if err != nil {
			fmt.Printf("Warning: could not record sketch: %v\n", err)
			return
		}
		fmt.Printf("Sketch id: %s\n", id)
	}
}
