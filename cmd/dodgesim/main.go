// dodgesim runs a fixed-timestep obstacle-dodging simulation and compares
// sequential against data-parallel execution of the same per-frame work.
//
// Usage:
//
//	dodgesim run              - Run one simulation and print every frame
//	dodgesim compare          - Run sequential and parallel with the same seed
//	dodgesim watch            - Watch a run live in the terminal
//	dodgesim serve            - Serve the live view over SSH
//	dodgesim history          - Show stored runs and executor timings
//	dodgesim list             - List executors and presets
//
// Global flags:
//
//	--seed <value>     - RNG seed for reproducible runs (0 = time-based)
//	--workers <n>      - Goroutines for the parallel executor (0 = GOMAXPROCS)
//	--db <path>        - Run history database (default: ~/.dodgesim/runs.db)
//	--config <path>    - Custom sim.yaml
//	--preset <name>    - Jump preset: reference, cautious, reckless, grounded
//	--log-level <lvl>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed       int64
	flagWorkers    int
	flagDBPath     string
	flagConfig     string
	flagPreset     string
	flagLogLevel   string
	flagFrames     int
	flagObstacles  int
	flagJumpHeight float64
	flagJumpProb   float64
	flagSections   bool
	flagNoSave     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dodgesim",
	Short: "Obstacle-dodging simulation benchmark",
	Long: `dodgesim simulates a player dodging linearly moving obstacles at a
fixed 60 Hz timestep and reports how many frames ended in a collision.
The same workload can run sequentially or fanned out across goroutines.

Available commands:
  run      - Run one simulation
  compare  - Sequential vs parallel with the same seed
  watch    - Live terminal view
  serve    - Live view over SSH
  history  - Stored runs and timings
  list     - Executors and presets

Examples:
  dodgesim run
  dodgesim run --executor parallel --workers 4 --seed 42
  dodgesim compare --obstacles 100000 --frames 300
  dodgesim watch --preset cautious`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.IntVar(&flagWorkers, "workers", 0, "Parallel executor goroutines (0 = GOMAXPROCS)")
	pf.StringVar(&flagDBPath, "db", "~/.dodgesim/runs.db", "Path to run history database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom sim.yaml")
	pf.StringVar(&flagPreset, "preset", "", "Jump preset: reference, cautious, reckless, grounded")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.IntVar(&flagFrames, "frames", 300, "Number of frames to simulate")
	pf.IntVar(&flagObstacles, "obstacles", 5, "Number of obstacles")
	pf.Float64Var(&flagJumpHeight, "jump-height", 1.2, "Player height when jumping")
	pf.Float64Var(&flagJumpProb, "jump-prob", 0.25, "Probability of jumping each frame")
	pf.BoolVar(&flagSections, "sections", false, "Count collisions and report concurrently within a frame")
	pf.BoolVar(&flagNoSave, "no-save", false, "Do not store the run in the history database")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(listCmd)
}
