// Package nt checks whether the robot's network-table server is reachable.
package nt

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"
)

// DefaultPort is the NetworkTables 3 server port.
const DefaultPort = 1735

// ErrNoAddress is returned by Check before an address has been set.
var ErrNoAddress = errors.New("no network table server address set")

// Dialer opens the probe connection; *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Prober tests reachability of the network-table server by opening and
// immediately closing a TCP connection.
type Prober struct {
	mu      sync.RWMutex
	address string
	port    int
	timeout time.Duration
	dialer  Dialer
}

// NewProber returns a prober for address:port. A zero port means DefaultPort.
func NewProber(address string, port int, timeout time.Duration) *Prober {
	if port == 0 {
		port = DefaultPort
	}
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	return &Prober{
		address: address,
		port:    port,
		timeout: timeout,
		dialer:  &net.Dialer{},
	}
}

// SetDialer replaces the dialer, e.g. to bind a local interface.
func (p *Prober) SetDialer(d Dialer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialer = d
}

// SetAddress retargets the prober.
func (p *Prober) SetAddress(address string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.address = address
}

// SetPort changes the server port.
func (p *Prober) SetPort(port int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if port == 0 {
		port = DefaultPort
	}
	p.port = port
}

// Address returns the server address being probed.
func (p *Prober) Address() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.address
}

// Endpoint returns host:port, or "" without an address.
func (p *Prober) Endpoint() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.address == "" {
		return ""
	}
	return net.JoinHostPort(p.address, strconv.Itoa(p.port))
}

// Check dials the server and reports nil if it accepted the connection.
func (p *Prober) Check(ctx context.Context) error {
	p.mu.RLock()
	dialer := p.dialer
	timeout := p.timeout
	p.mu.RUnlock()

	endpoint := p.Endpoint()
	if endpoint == "" {
		return ErrNoAddress
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := dialer.DialContext(ctx, "tcp", endpoint)
	if err != nil {
		return fmt.Errorf("network table server %s: %w", endpoint, err)
	}
	return conn.Close()
}
