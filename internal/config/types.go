// Package config handles control board app configuration loading, saving,
// and validation.
package config

import (
	"time"

	"github.com/user/controlboard/internal/address"
)

const (
	// DefaultNTPort is the NetworkTables 3 server port.
	DefaultNTPort = 1735

	DefaultBoardDriver = "ControlBoard_1v1_Simulator"
)

// Transport selects how a hardware board is reached.
type Transport string

const (
	TransportTCP Transport = "tcp"
	TransportRTU Transport = "rtu"
)

// Config represents the main configuration structure.
type Config struct {
	Version       int           `yaml:"version"`
	NetworkTables NetworkTables `yaml:"network_tables"`
	Board         Board         `yaml:"board"`
	Poll          Poll          `yaml:"poll"`
	Log           Log           `yaml:"log"`
}

// NetworkTables describes the robot's network-table server. An empty
// Address means none has been chosen yet.
type NetworkTables struct {
	Address        string       `yaml:"address"`
	Mode           address.Mode `yaml:"mode"`
	Team           string       `yaml:"team,omitempty"`
	Port           int          `yaml:"port"`
	ProbeTimeoutMs int          `yaml:"probe_timeout_ms"`
}

// Board selects the control board driver and its link.
type Board struct {
	Driver    string    `yaml:"driver"`
	Transport Transport `yaml:"transport,omitempty"`
	Endpoint  string    `yaml:"endpoint,omitempty"` // host:port for tcp, serial device for rtu
	BaudRate  int       `yaml:"baud_rate,omitempty"`
	SlaveID   int       `yaml:"slave_id,omitempty"`
	TimeoutMs int       `yaml:"timeout_ms,omitempty"`
}

// Poll controls the health poller.
type Poll struct {
	IntervalMs int `yaml:"interval_ms"`
}

// Log controls logging verbosity.
type Log struct {
	Level string `yaml:"level"`
}

// ProbeTimeout returns the NT connect timeout.
func (n NetworkTables) ProbeTimeout() time.Duration {
	return time.Duration(n.ProbeTimeoutMs) * time.Millisecond
}

// Timeout returns the board request timeout.
func (b Board) Timeout() time.Duration {
	return time.Duration(b.TimeoutMs) * time.Millisecond
}

// Interval returns the health poll interval.
func (p Poll) Interval() time.Duration {
	return time.Duration(p.IntervalMs) * time.Millisecond
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		NetworkTables: NetworkTables{
			Mode:           address.ModeCurrent,
			Port:           DefaultNTPort,
			ProbeTimeoutMs: 500,
		},
		Board: Board{
			Driver:    DefaultBoardDriver,
			Transport: TransportTCP,
			BaudRate:  115200,
			SlaveID:   1,
			TimeoutMs: 500,
		},
		Poll: Poll{
			IntervalMs: 1000,
		},
		Log: Log{
			Level: "info",
		},
	}
}
