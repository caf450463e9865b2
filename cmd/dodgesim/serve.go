package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dodgesim/internal/platform/tui"
	"github.com/vovakirdan/dodgesim/internal/registry"
	"github.com/vovakirdan/dodgesim/internal/sim"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live view over SSH",
	Long: `Start an SSH server that plays the simulation to every connecting
terminal. Each connection watches its own run built from the current
settings; finished runs are stored in the shared history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dodgesim/host_key

Examples:
  dodgesim serve                           # Listen on :23234 with auto-generated key
  dodgesim serve --ssh :2222 --fps 30      # Listen on port 2222
  dodgesim serve --preset reckless --seed 9

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagFPS, "fps", sim.FPS, "Playback rate (frames per second)")
	serveCmd.Flags().StringVar(&flagExecutor, "executor", "sequential", "Executor: sequential, parallel")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger := newLogger()

	settings, err := loadSettings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := registry.Create(flagExecutor, settings.Workers); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'dodgesim list' to see available executors.")
		os.Exit(1)
	}

	// Sessions run concurrently, so each one gets a fresh executor.
	factory := func() (*sim.Loop, error) {
		exec, err := registry.Create(flagExecutor, settings.Workers)
		if err != nil {
			return nil, err
		}
		return sim.NewLoop(settings.ToSim(),
			sim.WithExecutor(exec),
			sim.WithSeed(settings.Seed),
			sim.WithSections(settings.Sections),
		)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	store := openStore(logger)

	server, err := tui.NewSSHServer(cfg, factory, store, logger)
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting dodgesim SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	serveErr := server.ListenAndServe(ctx)
	stop()

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if serveErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", serveErr)
		os.Exit(1)
	}
}
