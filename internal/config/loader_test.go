package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/dodgesim/internal/sim"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Chdir(tmpDir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, sim.DefaultConfig(), cfg.ToSim())
	assert.Zero(t, cfg.Workers)
	assert.Zero(t, cfg.Seed)
	assert.False(t, cfg.Sections)
}

func TestDefaultYAMLMatchesHardcodedDefaults(t *testing.T) {
	data := DefaultYAML()
	require.NotEmpty(t, data)

	cfg, err := parse(data)
	require.NoError(t, err)
	assert.Equal(t, DefaultSimConfig(), cfg)
}

func TestLoadSearchOrder(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Chdir(tmpDir)

	// Local configs directory is used when there is no user file
	writeFile(t, filepath.Join(tmpDir, "configs", FileName), "frames: 42\n")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Frames, "frames from ./configs")

	// User directory wins over the local one
	writeFile(t, filepath.Join(tmpDir, ".dodgesim", FileName), "frames: 7\n")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Frames, "frames from ~/.dodgesim")
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "obstacles: 12\njump_probability: 0.5\nworkers: 4\nsections: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Obstacles)
	assert.Equal(t, 0.5, cfg.JumpProb)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Sections)

	// Keys not present keep their defaults
	assert.Equal(t, 300, cfg.Frames)
	assert.Equal(t, 1.2, cfg.JumpHeight)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "missing custom file")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "frames: [not, a, number]\n")
	_, err = Load(bad)
	assert.Error(t, err, "malformed custom file")
}

func TestInvalidFileValuesRejectedBySim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	writeFile(t, path, "frames: -1\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	_, err = sim.NewLoop(cfg.ToSim())
	assert.ErrorIs(t, err, sim.ErrInvalidConfiguration)
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset   string
		expected float64
	}{
		{"", 0.25},
		{"reference", 0.25},
		{"cautious", 0.6},
		{"reckless", 0.05},
		{"grounded", 0.0},
	}

	for _, tc := range tests {
		t.Run(tc.preset, func(t *testing.T) {
			cfg := DefaultSimConfig()
			require.NoError(t, ApplyPreset(&cfg, tc.preset))
			assert.Equal(t, tc.expected, cfg.JumpProb)
		})
	}

	cfg := DefaultSimConfig()
	assert.Error(t, ApplyPreset(&cfg, "suicidal"), "unknown preset")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
