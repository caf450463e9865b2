package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dodgesim/internal/report"
	"github.com/vovakirdan/dodgesim/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

// errRunNotFound is returned when a run ID is not in the history database.
var errRunNotFound = errors.New("run not found")

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show stored runs and executor timings",
	Long: `Display the most recent runs from the history database together with
per-executor timing statistics. With a run ID, show that single run.

Examples:
  dodgesim history
  dodgesim history --limit 50
  dodgesim history 1f0c6a2e-8d4b-4c8e-9a51-0b7f4e3d2c19
  dodgesim history --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all stored runs")
}

func runHistory(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history database: %v\n", err)
		os.Exit(1)
	}

	switch {
	case flagClear:
		err = store.ClearRuns()
		if err == nil {
			fmt.Println("Run history cleared.")
		}
	case len(args) == 1:
		err = showRun(os.Stdout, store, args[0])
	default:
		err = showHistory(os.Stdout, store, flagLimit)
	}

	// Close store before potential exit
	store.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// showRun prints every stored field of one run.
func showRun(w io.Writer, store *storage.Store, runID string) error {
	rec, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("%w: %s", errRunNotFound, runID)
	}

	fmt.Fprintf(w, "Run %s\n\n", rec.RunID)
	fmt.Fprintf(w, "  %-18s %s\n", "Date", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  %-18s %s\n", "Executor", rec.Executor)
	fmt.Fprintf(w, "  %-18s %d\n", "Workers", rec.Workers)
	fmt.Fprintf(w, "  %-18s %t\n", "Sections", rec.Sections)
	fmt.Fprintf(w, "  %-18s %d\n", "Frames", rec.Config.Frames)
	fmt.Fprintf(w, "  %-18s %d\n", "Obstacles", rec.Config.Obstacles)
	fmt.Fprintf(w, "  %-18s %.2f\n", "Jump height", rec.Config.JumpHeight)
	fmt.Fprintf(w, "  %-18s %.2f\n", "Jump probability", rec.Config.JumpProb)
	fmt.Fprintf(w, "  %-18s %d\n", "Seed", rec.Seed)
	fmt.Fprintf(w, "  %-18s %d\n", "Collisions", rec.TotalCollisions)
	fmt.Fprintf(w, "  %-18s %s\n", "Verdict", rec.Outcome.Verdict())
	fmt.Fprintf(w, "  %-18s %s\n", "Elapsed", report.Millis(rec.Elapsed))
	return nil
}

// showHistory prints the recent runs table followed by executor timings.
func showHistory(w io.Writer, store *storage.Store, limit int) error {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Recent runs")
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'dodgesim run' to record the first one.")
		return nil
	}

	fmt.Fprintf(w, "  %-36s  %-16s  %-10s  %6s  %9s  %5s  %10s  %-8s  %12s\n",
		"Run ID", "Date", "Executor", "Frames", "Obstacles", "Jump", "Collisions", "Outcome", "Elapsed")
	fmt.Fprintf(w, "  %-36s  %-16s  %-10s  %6s  %9s  %5s  %10s  %-8s  %12s\n",
		"------", "----", "--------", "------", "---------", "----", "----------", "-------", "-------")

	for _, r := range runs {
		fmt.Fprintf(w, "  %-36s  %-16s  %-10s  %6d  %9d  %5.2f  %10d  %-8s  %12s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Executor,
			r.Config.Frames,
			r.Config.Obstacles,
			r.Config.JumpProb,
			r.TotalCollisions,
			r.Outcome,
			report.Millis(r.Elapsed),
		)
	}

	stats, err := store.ExecutorStats()
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Executor timings")
	fmt.Fprintln(w)
	for _, st := range stats {
		fmt.Fprintf(w, "  %-10s  runs=%-5d  avg=%-14s  best=%s\n",
			st.Executor, st.Runs, report.Millis(st.AvgElapsed), report.Millis(st.BestElapsed))
	}
	return nil
}
