package nt

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func listen(t *testing.T) (string, int) {
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

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	return host, p
}

func TestCheckReachable(t *testing.T) {
	host, port := listen(t)
	p := NewProber(host, port, time.Second)
	assert.NoError(t, p.Check(context.Background()))
}

func TestCheckUnreachable(t *testing.T) {
	defer goleak.VerifyNone(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	p := NewProber("127.0.0.1", port, 200*time.Millisecond)
	assert.Error(t, p.Check(context.Background()))
}

func TestCheckWithoutAddress(t *testing.T) {
	p := NewProber("", 0, 0)
	assert.ErrorIs(t, p.Check(context.Background()), ErrNoAddress)
	assert.Empty(t, p.Endpoint())
}

func TestRetarget(t *testing.T) {
	p := NewProber("10.1.18.5", 0, 0)
	assert.Equal(t, "10.1.18.5:1735", p.Endpoint())

	p.SetAddress("roborio-118-frc.local")
	p.SetPort(5810)
	assert.Equal(t, "roborio-118-frc.local", p.Address())
	assert.Equal(t, "roborio-118-frc.local:5810", p.Endpoint())

	p.SetAddress("::1")
	assert.Equal(t, "[::1]:5810", p.Endpoint())
}

type recordingDialer struct {
	network, address string
}

func (d *recordingDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	d.network, d.address = network, address
	if _, ok := ctx.Deadline(); !ok {
		return nil, assert.AnError
	}
	client, server := net.Pipe()
	server.Close()
	return client, nil
}

func TestCheckUsesDeadlineAndDialer(t *testing.T) {
	d := &recordingDialer{}
	p := NewProber("127.0.0.1", 1735, time.Second)
	p.SetDialer(d)

	require.NoError(t, p.Check(context.Background()))
	assert.Equal(t, "tcp", d.network)
	assert.Equal(t, "127.0.0.1:1735", d.address)
}
