package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/controlboard/internal/address"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, verbose = "", false
	t.Cleanup(func() { configPath, verbose = "", false })

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestResolve(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"resolve", "--mode", "ipv4", "--team", "118"}, "10.1.18.5\n"},
		{[]string{"resolve", "--mode", "legacy", "-t", "9999"}, "10.99.99.5\n"},
		{[]string{"resolve", "--team", "254"}, "roborio-254-frc.local\n"},
		{[]string{"resolve", "--mode", "simulator"}, "127.0.0.1\n"},
		{[]string{"resolve", "--mode", "current", "--current", "10.2.54.5"}, "10.2.54.5\n"},
		{[]string{"resolve", "--mode", "manual", "--manual", "172.22.11.2"}, "172.22.11.2\n"},
	}
	for _, tt := range tests {
		out, err := execute(t, tt.args...)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, out, tt.args)
	}
}

func TestResolveRejectsBadInput(t *testing.T) {
	_, err := execute(t, "resolve", "--mode", "ipv4", "--team", "12a")
	assert.ErrorIs(t, err, address.ErrNonDigit)

	_, err = execute(t, "resolve", "--mode", "ipv4", "--team", "10000")
	assert.ErrorIs(t, err, address.ErrOutOfRange)

	_, err = execute(t, "resolve", "--mode", "mdns")
	assert.ErrorIs(t, err, address.ErrEmptyInput)

	_, err = execute(t, "resolve", "--mode", "vpn")
	assert.ErrorIs(t, err, address.ErrUnknownMode)
}

func TestProbeWithSimulator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "controlboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0644))

	out, err := execute(t, "--config", path, "probe", "--timeout", "2s")
	require.NoError(t, err)
	assert.Contains(t, out, "board:  FRC Control Board v1.1 Simulator ok\n")
	assert.Contains(t, out, "nt:     (not set) unreachable\n")
	assert.Contains(t, out, "icon:   Status_YesCtrlB_NoNT\n")
	assert.Contains(t, out, "no network table server address set")
}
