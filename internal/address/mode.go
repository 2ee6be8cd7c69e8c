// Package address resolves the network-table server address from the
// connection mode chosen by the operator.
package address

import (
	"fmt"
	"strings"
)

// Mode selects how the server address is derived.
type Mode int

const (
	ModeCurrent Mode = iota
	ModeModern
	ModeLegacy
	ModeSimulator
	ModeManual
)

// Modes returns every mode in the order the address dialog lists them.
func Modes() []Mode {
	return []Mode{ModeCurrent, ModeModern, ModeLegacy, ModeSimulator, ModeManual}
}

// String returns the short key used in config files and on the command line.
func (m Mode) String() string {
	switch m {
	case ModeCurrent:
		return "current"
	case ModeModern:
		return "mdns"
	case ModeLegacy:
		return "ipv4"
	case ModeSimulator:
		return "simulator"
	case ModeManual:
		return "manual"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Label returns the text shown next to the mode's radio button.
func (m Mode) Label() string {
	switch m {
	case ModeCurrent:
		return "Current"
	case ModeModern:
		return ">=2015 mDNS Address"
	case ModeLegacy:
		return "<=2014 IPv4 Address"
	case ModeSimulator:
		return "Simulator"
	case ModeManual:
		return "Manually set the address"
	default:
		return m.String()
	}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m >= ModeCurrent && m <= ModeManual
}

// UsesTeam reports whether the mode derives the address from a team number.
func (m Mode) UsesTeam() bool {
	return m == ModeModern || m == ModeLegacy
}

// ParseMode accepts either a short key or a dialog label, case-insensitively.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	for _, m := range Modes() {
		if strings.EqualFold(s, m.String()) || strings.EqualFold(s, m.Label()) {
			return m, nil
		}
	}
	switch strings.ToLower(s) {
	case "modern":
		return ModeModern, nil
	case "legacy":
		return ModeLegacy, nil
	case "sim", "localhost":
		return ModeSimulator, nil
	}
	return ModeCurrent, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText implements encoding.TextMarshaler so modes persist by key.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
