package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InputPath")

	_, err = NewConfig(Config{InputPath: "x.hcl", Workers: -2})
	require.Error(t, err)

	cfg, err := NewConfig(Config{InputPath: "x.hcl", Workers: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers)
}

func TestApp_Run_LogsAsJSON(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "results.hcl")
	require.NoError(t, os.WriteFile(path, []byte("results = [true, 2, 2.5]\n"), 0600))
	cfg, err := NewConfig(Config{InputPath: path, LogLevel: "debug", LogFormat: "json"})
	require.NoError(t, err)
	var out, logs bytes.Buffer

	// --- Act ---
	err = NewApp(&out, &logs, cfg).Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.JSONEq(t, `{"length":3,"type":"double","values":[1,2,2.5]}`, out.String())

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.NotEmpty(t, lines)
	var found bool
	for _, line := range lines {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec), "log line is not JSON: %s", line)
		if rec["msg"] == "Results simplified." {
			found = true
			assert.Equal(t, "double", rec["type"])
			assert.EqualValues(t, 3, rec["length"])
		}
	}
	assert.True(t, found, "expected a summary log record")
}

func TestApp_Run_DefaultLevelIsQuiet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results.hcl")
	require.NoError(t, os.WriteFile(path, []byte("results = [1]\n"), 0600))
	cfg, err := NewConfig(Config{InputPath: path, LogLevel: "bogus"})
	require.NoError(t, err)
	var out, logs bytes.Buffer

	require.NoError(t, NewApp(&out, &logs, cfg).Run(context.Background()))
	assert.Empty(t, logs.String())
}
