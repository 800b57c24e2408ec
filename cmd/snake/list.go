package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available variants",
	Long:  `Shows every registered snake variant with a one-line summary of its rules.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	idW, titleW := len("ID"), len("Title")
	for _, g := range games {
		idW = max(idW, len(g.ID))
		titleW = max(titleW, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", idW, "ID", titleW, "Title", "Rules")
	fmt.Printf("  %-*s  %-*s  %s\n", idW, "--", titleW, "-----", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %s\n", idW, g.ID, titleW, g.Title, g.Summary)
	}

	fmt.Println()
	fmt.Println("Run 'snake play <id>' to play a variant.")
}
