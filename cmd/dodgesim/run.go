package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dodgesim/internal/registry"
	"github.com/vovakirdan/dodgesim/internal/report"
	"github.com/vovakirdan/dodgesim/internal/sim"
	"github.com/vovakirdan/dodgesim/internal/storage"
)

var (
	flagExecutor string
	flagQuiet    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation",
	Long: `Run the simulation once, printing one line per frame followed by the
total collision count, the verdict and the elapsed time.

Verdicts:
  SOBREVIVE  - fewer than 5 collisions
  LIMITE     - exactly 5 collisions
  MUERE      - more than 5 collisions

Examples:
  dodgesim run
  dodgesim run --executor parallel --sections
  dodgesim run --seed 42 --jump-prob 0.5
  dodgesim run --config ./my-sim.yaml --quiet`,
	Args: cobra.NoArgs,
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagExecutor, "executor", "sequential", "Executor: sequential, parallel")
	runCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Do not print per-frame lines")
}

func runRun(cmd *cobra.Command, _ []string) {
	logger := newLogger()

	settings, err := loadSettings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !registry.Exists(flagExecutor) {
		fmt.Fprintf(os.Stderr, "Error: unknown executor %q\n", flagExecutor)
		fmt.Fprintln(os.Stderr, "Run 'dodgesim list' to see available executors.")
		os.Exit(1)
	}
	exec, err := registry.Create(flagExecutor, settings.Workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	observers := sim.Observers{report.NewLogObserver(logger)}
	var printer *report.WriterObserver
	if !flagQuiet {
		printer = report.NewWriterObserver(os.Stdout)
		observers = append(observers, printer)
	}

	loop, err := sim.NewLoop(settings.ToSim(),
		sim.WithExecutor(exec),
		sim.WithSeed(settings.Seed),
		sim.WithSections(settings.Sections),
		sim.WithObserver(observers),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting run",
		"executor", exec.Name(),
		"frames", settings.Frames,
		"obstacles", settings.Obstacles,
		"seed", loop.Seed(),
		"sections", settings.Sections,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := loop.Run(ctx)
	if err != nil {
		logger.Warn("run interrupted", "frames", res.Frames, "error", err)
	}
	if printer != nil && printer.Err() != nil {
		logger.Warn("could not write frame lines", "error", printer.Err())
	}

	fmt.Println()
	fmt.Println(report.Summary(exec.Name(), res))

	if err != nil {
		return
	}

	store := openStore(logger)
	if store == nil {
		return
	}
	defer store.Close()

	runID, saveErr := store.SaveRun(storage.RecordOf(loop, res))
	if saveErr != nil {
		logger.Warn("could not save run", "error", saveErr)
		return
	}
	logger.Debug("run saved", "run_id", runID)
}
