package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dodgesim/internal/config"
	"github.com/vovakirdan/dodgesim/internal/registry"
)

var flagConfigTemplate bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List executors and presets",
	Long: `Shows the registered executors and the jump presets.

With --config-template, prints the default sim.yaml instead, ready to be
saved to ~/.dodgesim/sim.yaml or ./configs/sim.yaml and edited.

Examples:
  dodgesim list
  dodgesim list --config-template > ~/.dodgesim/sim.yaml`,
	Run: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagConfigTemplate, "config-template", false, "Print the default sim.yaml")
}

func runList(_ *cobra.Command, _ []string) {
	if flagConfigTemplate {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	executors := registry.List()

	fmt.Println("Executors:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, e := range executors {
		if len(e.ID) > maxIDLen {
			maxIDLen = len(e.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Description")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----------")
	for _, e := range executors {
		fmt.Printf("  %-*s  %s\n", maxIDLen, e.ID, e.Description)
	}

	fmt.Println()
	fmt.Println("Presets:")
	fmt.Println()
	for _, p := range config.Presets() {
		prob, _ := config.JumpProbForPreset(p)
		fmt.Printf("  %-10s  jump probability %.2f\n", p, prob)
	}

	fmt.Println()
	fmt.Println("Run 'dodgesim run --executor <id> --preset <name>' to use them.")
}
