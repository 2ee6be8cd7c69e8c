package address

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SimulatorAddress is the loopback address used when running against the
// robot simulator.
const SimulatorAddress = "127.0.0.1"

// ErrUnknownMode is returned when a mode outside the enumeration is dispatched.
var ErrUnknownMode = errors.New("unknown address mode")

// Input carries the raw values the address dialog collects.
type Input struct {
	Previous string // address active before the dialog opened
	Team     string // team number text
	Manual   string // free-form address text
}

// Resolve computes the server address for mode from in.
func Resolve(mode Mode, in Input) (string, error) {
	switch mode {
	case ModeCurrent:
		return Current(in.Previous), nil
	case ModeSimulator:
		return Simulator(), nil
	case ModeModern:
		return Modern(in.Team)
	case ModeLegacy:
		return Legacy(in.Team)
	case ModeManual:
		return Manual(in.Manual), nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
}

// Current keeps whatever address was active before.
func Current(previous string) string {
	return previous
}

// Simulator returns the loopback address.
func Simulator() string {
	return SimulatorAddress
}

// Modern returns the roboRIO mDNS hostname for team.
func Modern(team string) (string, error) {
	t, err := ParseTeamNumber(team)
	if err != nil {
		return "", err
	}
	return ModernHost(t), nil
}

// ModernHost formats an already validated team number.
func ModernHost(t TeamNumber) string {
	return "roborio-" + t.String() + "-frc.local"
}

// Legacy returns the pre-2015 static address 10.TE.AM.5 for team.
func Legacy(team string) (string, error) {
	t, err := ParseLegacyTeamNumber(team)
	if err != nil {
		return "", err
	}
	n, err := t.Int()
	if err != nil {
		return "", &ValidationError{Kind: OutOfRange, Input: team}
	}
	padded := fmt.Sprintf("%04d", n)
	hi, _ := strconv.Atoi(padded[0:2])
	lo, _ := strconv.Atoi(padded[2:4])
	return fmt.Sprintf("10.%d.%d.5", hi, lo), nil
}

// Manual returns text as typed; it is not validated.
func Manual(text string) string {
	return text
}

// LegacyTeam recovers the team number encoded in a 10.TE.AM.5 address.
func LegacyTeam(addr string) (int, error) {
	parts := strings.Split(addr, ".")
	if len(parts) != 4 || parts[0] != "10" || parts[3] != "5" {
		return 0, fmt.Errorf("%q is not a legacy team address", addr)
	}
	hi, err := octetGroup(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%q: %w", addr, err)
	}
	lo, err := octetGroup(parts[2])
	if err != nil {
		return 0, fmt.Errorf("%q: %w", addr, err)
	}
	team := hi*100 + lo
	if team < 1 {
		return 0, fmt.Errorf("%q: %w", addr, ErrOutOfRange)
	}
	return team, nil
}

func octetGroup(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 99 || strconv.Itoa(n) != s {
		return 0, fmt.Errorf("invalid team group %q", s)
	}
	return n, nil
}

// ModernTeam recovers the team number from a roborio-TEAM-frc.local host.
func ModernTeam(host string) (TeamNumber, bool) {
	rest, ok := strings.CutPrefix(host, "roborio-")
	if !ok {
		return "", false
	}
	team, ok := strings.CutSuffix(rest, "-frc.local")
	if !ok {
		return "", false
	}
	t, err := ParseTeamNumber(team)
	if err != nil || t.String() != team {
		return "", false
	}
	return t, true
}
