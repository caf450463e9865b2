package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dodgesim/internal/config"
	"github.com/vovakirdan/dodgesim/internal/storage"
)

// newLogger builds the process logger at the level given by --log-level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "dodgesim",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadSettings layers configuration: file (or defaults) -> preset -> flags
// explicitly set on the command line.
func loadSettings(cmd *cobra.Command) (config.SimConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyPreset(&cfg, flagPreset); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("frames") {
		cfg.Frames = flagFrames
	}
	if flags.Changed("obstacles") {
		cfg.Obstacles = flagObstacles
	}
	if flags.Changed("jump-height") {
		cfg.JumpHeight = flagJumpHeight
	}
	if flags.Changed("jump-prob") {
		cfg.JumpProb = flagJumpProb
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if flags.Changed("sections") {
		cfg.Sections = flagSections
	}
	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	return cfg, nil
}

// openStore opens the history database unless saving is disabled. A store
// that cannot be opened is logged and skipped; runs work without it.
func openStore(logger *log.Logger) *storage.Store {
	if flagNoSave {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
