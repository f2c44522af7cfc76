// arcade turns GameSpec documents into runnable p5 sketches and plays them
// in the terminal.
//
// Usage:
//
//	arcade list                       - List bundled example sketches
//	arcade build <spec> -o <dir>      - Write index.js, index.html and config.json
//	arcade inspect <spec>             - Show the synthesized program
//	arcade play <spec>                - Play a sketch in the terminal
//	arcade check <spec>               - Run a sketch headlessly and report
//	arcade menu                       - Pick a bundled sketch interactively
//	arcade serve                      - Start SSH server for remote play
//	arcade history [sketch-id]        - Show stored sketches and runs
//
// <spec> is a GameSpec file (.json, .yaml), "-" for stdin, or an example id.
//
// Global flags:
//
//	--fps <rate>        - Override the configured frame rate
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.arcade/sketches.db)
//	--config <path>     - Use a custom sketch config YAML
//	--preset <name>     - Apply a hosting preset: browser, terminal, classic
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import bundled sketches to register them
	_ "github.com/vovakirdan/sketch-arcade/internal/examples"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfigPath string
	flagPreset     string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Sketch Arcade - Build and play p5 sketches from GameSpec documents",
	Long: `Sketch Arcade turns a GameSpec (an initial state plus fragments of
p5 code) into a self-contained p5 program for the browser, and can run the
same sketch in your terminal.

Available commands:
  list     - Show bundled example sketches
  build    - Write the browser bundle for a sketch
  inspect  - Show the synthesized program
  play     - Play a sketch in the terminal
  check    - Run a sketch headlessly and report its state
  menu     - Interactive sketch picker
  serve    - Start SSH server for remote play
  history  - Show stored sketches and their runs

Examples:
  arcade list
  arcade build catcher -o ./out
  arcade play ./my-sketch.json
  arcade check bounce --frames 120
  arcade serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate override (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/sketches.db", "Path to sketch history database")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to custom sketch config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Hosting preset: browser, terminal, classic")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}
