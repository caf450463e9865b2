package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/dodgesim/internal/sim"
	"github.com/vovakirdan/dodgesim/internal/storage"
)

func openHistoryStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	return store
}

func TestShowRun(t *testing.T) {
	store := openHistoryStore(t)
	defer store.Close()

	runID, err := store.SaveRun(storage.RunRecord{
		Executor:        "parallel",
		Workers:         2,
		Config:          sim.DefaultConfig(),
		Seed:            42,
		TotalCollisions: 6,
		Outcome:         sim.Dies,
		Elapsed:         2 * time.Millisecond,
	})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, showRun(&out, store, runID))
	for _, want := range []string{runID, "parallel", "42", "MUERE", "2.000 ms"} {
		assert.Contains(t, out.String(), want)
	}
}

func TestShowRunUnknownID(t *testing.T) {
	store := openHistoryStore(t)
	defer store.Close()

	var out bytes.Buffer
	err := showRun(&out, store, "no-such-run")
	assert.ErrorIs(t, err, errRunNotFound)
	assert.Empty(t, out.String())
}

func TestShowHistory(t *testing.T) {
	store := openHistoryStore(t)
	defer store.Close()

	var out bytes.Buffer
	require.NoError(t, showHistory(&out, store, 10))
	assert.Contains(t, out.String(), "No runs recorded yet.")

	runID, err := store.SaveRun(storage.RunRecord{
		Executor: "sequential",
		Config:   sim.DefaultConfig(),
		Outcome:  sim.Survives,
		Elapsed:  time.Millisecond,
	})
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, showHistory(&out, store, 10))
	assert.Contains(t, out.String(), runID)
	assert.Contains(t, out.String(), "Executor timings")
}

func TestShowHistoryReportsStoreErrors(t *testing.T) {
	store := openHistoryStore(t)
	require.NoError(t, store.Close())

	var out bytes.Buffer
	assert.Error(t, showHistory(&out, store, 10))
	assert.Error(t, showRun(&out, store, "any"))
}
