package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dodgesim/internal/platform/tui"
	"github.com/vovakirdan/dodgesim/internal/registry"
	"github.com/vovakirdan/dodgesim/internal/sim"
)

var flagFPS int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a run live in the terminal",
	Long: `Play the simulation back in the terminal, one frame per tick.

Controls:
  P/Space  - Pause/resume
  N/Right  - Single frame while paused
  R        - Restart after the run ends (new seed unless --seed is set)
  Q/Ctrl+C - Quit

Examples:
  dodgesim watch
  dodgesim watch --fps 30 --preset reckless
  dodgesim watch --executor parallel --seed 42`,
	Args: cobra.NoArgs,
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&flagFPS, "fps", sim.FPS, "Playback rate (frames per second)")
	watchCmd.Flags().StringVar(&flagExecutor, "executor", "sequential", "Executor: sequential, parallel")
}

func runWatch(cmd *cobra.Command, _ []string) {
	logger := newLogger()

	settings, err := loadSettings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	exec, err := registry.Create(flagExecutor, settings.Workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'dodgesim list' to see available executors.")
		os.Exit(1)
	}

	factory := func() (*sim.Loop, error) {
		return sim.NewLoop(settings.ToSim(),
			sim.WithExecutor(exec),
			sim.WithSeed(settings.Seed),
			sim.WithSections(settings.Sections),
		)
	}

	store := openStore(logger)

	runErr := tui.Run(factory, store, logger, flagFPS)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
