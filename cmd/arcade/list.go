package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sketch-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bundled example sketches",
	Long:  `Shows a list of all example sketches bundled with the arcade.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	sketches := registry.List()

	if len(sketches) == 0 {
		fmt.Println("No sketches available.")
		return
	}

	fmt.Println("Bundled sketches:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range sketches {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, s := range sketches {
		fmt.Printf("  %-*s  %s\n", maxIDLen, s.ID, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a sketch, or 'arcade build <id> -o <dir>' for the browser.")
}
