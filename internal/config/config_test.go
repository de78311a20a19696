package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qtermsim.yaml")
	data := `seed: 42
max_qubits: 6
log_level: debug
tui:
  qubits: 5
  watch: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 6, cfg.MaxQubits)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5, cfg.TUI.Qubits)
	assert.True(t, cfg.TUI.Watch)
	// untouched keys keep their defaults
	assert.Equal(t, 4, cfg.Precision)
	assert.Equal(t, "circuit.qasm", cfg.TUI.File)
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qtermsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 1\n"), 0o644))
	t.Setenv("QTERMSIM_SEED", "7")
	t.Setenv("QTERMSIM_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":      "seed: [1, 2\n",
		"no qubits":     "max_qubits: 0\n",
		"tui too wide":  "max_qubits: 2\ntui:\n  qubits: 3\n",
		"precision":     "precision: 30\n",
		"unknown level": "log_level: loud\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "qtermsim.yaml")
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Seed = 99
	cfg.TUI.File = "bell.qasm"
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
