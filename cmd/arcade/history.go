package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sketch-arcade/internal/platform/tui"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [sketch-id]",
	Short: "Show stored sketches and their runs",
	Long: `Without arguments, list the most recently built or played sketches with
their run counts. With a sketch id, list that sketch's runs.

Examples:
  arcade history
  arcade history 3f1c9a2e-...
  arcade history --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum number of rows")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse the history interactively")
}

func runHistory(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sketch database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryTUI {
		width, height := terminalSize()
		if _, err := tui.RunHistory(store, width, height); err != nil {
			store.Close()
			fail(err)
		}
		return
	}

	if len(args) == 1 {
		if err := printRuns(store, args[0]); err != nil {
			store.Close()
			fail(err)
		}
		return
	}

	sketches, err := store.RecentSketches(flagHistoryLimit)
	if err != nil {
		store.Close()
		fail(err)
	}

	if len(sketches) == 0 {
		fmt.Println("No sketches recorded yet.")
		fmt.Println()
		fmt.Println("Run 'arcade play <spec>' or 'arcade build <spec>' to start a history.")
		return
	}

	// Print header
	fmt.Printf("  %-36s  %-24s  %5s  %6s  %s\n", "ID", "Title", "Runs", "Faults", "Created")
	fmt.Printf("  %-36s  %-24s  %5s  %6s  %s\n", "--", "-----", "----", "------", "-------")

	for _, s := range sketches {
		fmt.Printf("  %-36s  %-24s  %5d  %6d  %s\n",
			s.ID, truncate(s.Title, 24), s.Runs, s.Faults, s.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// printRuns lists the runs of one sketch.
func printRuns(store *storage.Store, id string) error {
	sketch, err := store.Sketch(id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("unknown sketch id %q (run 'arcade history')", id)
	}
	if err != nil {
		return err
	}

	runs, err := store.Runs(id, flagHistoryLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Runs - %s\n", sketch.Title)
	fmt.Printf("Source sha256: %s\n", sketch.SourceSHA)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %8s  %-10s  %s\n", "Date", "Frames", "Fault", "Message")
	fmt.Printf("  %-16s  %8s  %-10s  %s\n", "----", "------", "-----", "-------")
	for _, r := range runs {
		fault := r.FaultKind
		if fault == "" {
			fault = "-"
		}
		fmt.Printf("  %-16s  %8d  %-10s  %s\n", r.CreatedAt.Format("2006-01-02 15:04"), r.Frames, fault, r.FaultMessage)
	}
	return nil
}

// truncate shortens s to n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
