package config

import (
	"fmt"

	"github.com/user/controlboard/internal/address"
)

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Version < 1 {
		return fmt.Errorf("invalid config version")
	}
	if err := c.NetworkTables.Validate(); err != nil {
		return fmt.Errorf("network_tables config: %w", err)
	}
	if err := c.Board.Validate(); err != nil {
		return fmt.Errorf("board config: %w", err)
	}
	if err := c.Poll.Validate(); err != nil {
		return fmt.Errorf("poll config: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	return nil
}

// Validate validates network-table configuration. The team number is only
// checked when the mode derives the address from it.
func (n *NetworkTables) Validate() error {
	if !n.Mode.Valid() {
		return fmt.Errorf("%w: %d", address.ErrUnknownMode, int(n.Mode))
	}
	switch n.Mode {
	case address.ModeModern:
		if _, err := address.ParseTeamNumber(n.Team); err != nil {
			return fmt.Errorf("team: %w", err)
		}
	case address.ModeLegacy:
		if _, err := address.ParseLegacyTeamNumber(n.Team); err != nil {
			return fmt.Errorf("team: %w", err)
		}
	}
	if n.Port < 1 || n.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if n.ProbeTimeoutMs < 0 {
		return fmt.Errorf("probe_timeout_ms cannot be negative")
	}
	return nil
}

// Validate validates board configuration.
func (b *Board) Validate() error {
	if b.Driver == "" {
		return fmt.Errorf("driver is required")
	}
	switch b.Transport {
	case "", TransportTCP:
	case TransportRTU:
		if b.BaudRate <= 0 {
			return fmt.Errorf("baud_rate is required for rtu")
		}
	default:
		return fmt.Errorf("unknown transport: %s", b.Transport)
	}
	if b.SlaveID < 0 || b.SlaveID > 247 {
		return fmt.Errorf("slave_id must be between 0 and 247")
	}
	if b.TimeoutMs < 0 {
		return fmt.Errorf("timeout_ms cannot be negative")
	}
	return nil
}

// Validate validates poll configuration.
func (p *Poll) Validate() error {
	if p.IntervalMs < 50 {
		return fmt.Errorf("interval_ms must be at least 50")
	}
	return nil
}

// Validate validates log configuration.
func (l *Log) Validate() error {
	switch l.Level {
	case "", "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("unknown level: %s", l.Level)
}
