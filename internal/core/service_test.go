package core

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/controlboard/internal/address"
	"github.com/user/controlboard/internal/config"
	"github.com/user/controlboard/internal/hal"
	"github.com/user/controlboard/internal/status"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "controlboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("poll:\n  interval_ms: 50\n"), 0644))

	s, err := NewService(path)
	require.NoError(t, err)
	return s, path
}

// collector records status payloads delivered to the listener.
type collector struct {
	mu       sync.Mutex
	payloads []*StatusPayload
}

func (c *collector) listen(p *StatusPayload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads = append(c.payloads, p)
}

func (c *collector) last() *StatusPayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.payloads) == 0 {
		return nil
	}
	return c.payloads[len(c.payloads)-1]
}

func ntServer(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			c.Close()
		}
	}()
	return ln.Addr().String()
}

func TestNewServiceUsesSimulatorByDefault(t *testing.T) {
	s, _ := newTestService(t)
	assert.Equal(t, hal.SimulatorShortName, s.Board().Info().ShortName)
	assert.Empty(t, s.ServerAddress())

	p := s.GetStatusPayload()
	assert.Equal(t, status.IconNoBoardNoNT, p.Icon)
	assert.Equal(t, address.ModeCurrent, p.AddressMode)
}

func TestNewServiceRejectsUnknownDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "controlboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  driver: ControlBoard_9v9\n"), 0644))

	_, err := NewService(path)
	assert.ErrorIs(t, err, hal.ErrUnknownDriver)
}

func TestServiceReportsBoardAndNetworkTable(t *testing.T) {
	s, _ := newTestService(t)
	c := &collector{}
	s.SetStatusListener(c.listen)

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Error(t, s.Start(), "second start is rejected")

	require.Eventually(t, func() bool {
		p := c.last()
		return p != nil && p.BoardOK && !p.NetworkTableOK
	}, 2*time.Second, 10*time.Millisecond)

	p := c.last()
	assert.Equal(t, status.IconBoardNoNT, p.Icon)
	assert.Len(t, p.Switches, hal.SwitchInputs)
	assert.Len(t, p.Analog, hal.AnalogInputs)
	assert.NotEmpty(t, p.Error)

	host, port, err := net.SplitHostPort(ntServer(t))
	require.NoError(t, err)

	cfg := s.GetConfig()
	cfg.NetworkTables.Port, err = strconv.Atoi(port)
	require.NoError(t, err)
	require.NoError(t, s.configManager.Update(cfg))
	require.NoError(t, s.ReloadConfig())
	require.NoError(t, s.SetServerAddress(address.ModeManual, "", host))

	require.Eventually(t, func() bool {
		p := c.last()
		return p != nil && p.Icon == status.IconBoardNT
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, host, c.last().ServerAddress)
	assert.Empty(t, c.last().Error)

	sim := s.Board().(*hal.Simulator)
	sim.SetConnected(false)
	require.Eventually(t, func() bool {
		p := c.last()
		return p.Icon == status.IconNoBoardNT
	}, 2*time.Second, 10*time.Millisecond)
	assert.Nil(t, c.last().Switches)
}

func TestSetServerAddressPersists(t *testing.T) {
	s, path := newTestService(t)

	require.NoError(t, s.SetServerAddress(address.ModeLegacy, "118", "10.1.18.5"))
	assert.Equal(t, "10.1.18.5", s.ServerAddress())

	m := config.NewManager(path)
	require.NoError(t, m.Load())
	nt := m.Get().NetworkTables
	assert.Equal(t, address.ModeLegacy, nt.Mode)
	assert.Equal(t, "118", nt.Team)
	assert.Equal(t, "10.1.18.5", nt.Address)

	// Manual mode leaves the remembered team alone.
	require.NoError(t, s.SetServerAddress(address.ModeManual, "", "192.168.1.2"))
	assert.Equal(t, "118", s.GetConfig().NetworkTables.Team)
}

func TestProbeOneShot(t *testing.T) {
	s, _ := newTestService(t)
	defer s.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	p := s.Probe(ctx)
	assert.True(t, p.BoardOK)
	assert.False(t, p.NetworkTableOK)
	assert.Equal(t, status.IconBoardNoNT, p.Icon)
	assert.True(t, p.IconChanged)
}

func TestServerAddressFollowsConfiguredMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "controlboard.yaml")
	write := func(nt string) {
		require.NoError(t, os.WriteFile(path, []byte("network_tables:\n"+nt), 0644))
	}

	write("  mode: mdns\n  team: \"118\"\n")
	s, err := NewService(path)
	require.NoError(t, err)
	assert.Equal(t, "roborio-118-frc.local", s.ServerAddress())

	tests := []struct {
		yaml string
		want string
	}{
		{"  mode: ipv4\n  team: \"254\"\n", "10.2.54.5"},
		{"  mode: simulator\n", "127.0.0.1"},
		{"  mode: manual\n  address: 172.22.11.2\n", "172.22.11.2"},
		{"  mode: current\n  address: 10.1.18.5\n  team: \"254\"\n", "10.1.18.5"},
	}
	for _, tt := range tests {
		write(tt.yaml)
		require.NoError(t, s.ReloadConfig())
		assert.Equal(t, tt.want, s.ServerAddress(), tt.yaml)
	}
}
