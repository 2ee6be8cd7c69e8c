//go:build linux

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/controlboard/internal/logger"
)

func TestLogsTailAndClear(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	dir := filepath.Join(state, "controlboard")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "controlboard.log")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0644))

	out, err := execute(t, "logs", "--tail", "2")
	require.NoError(t, err)
	assert.Equal(t, "two\nthree\n", out)

	out, err = execute(t, "logs")
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\nthree\n", out)

	_, err = execute(t, "logs", "--clear")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestTrayLoggingStartsWithEmptyLog(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	dir := filepath.Join(state, "controlboard")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, "controlboard.log")
	require.NoError(t, os.WriteFile(path, []byte("previous session\n"), 0644))

	// --verbose keeps stderr on the console instead of the log file.
	configPath, verbose = filepath.Join(t.TempDir(), "controlboard.yaml"), true
	t.Cleanup(func() {
		logger.Close()
		configPath, verbose = "", false
	})

	initTrayLogging(newRootCmd())
	assert.Equal(t, path, logger.GetLogPath())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "previous session")
}
