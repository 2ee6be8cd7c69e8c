package address

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxLegacyTeam is the highest team number that fits the 10.TE.AM.5 scheme.
const MaxLegacyTeam = 9999

// Kind classifies a team number validation failure.
type Kind int

const (
	EmptyInput Kind = iota + 1
	NonDigitCharacter
	OutOfRange
)

func (k Kind) String() string {
	switch k {
	case EmptyInput:
		return "empty input"
	case NonDigitCharacter:
		return "non-digit character"
	case OutOfRange:
		return "out of range"
	default:
		return "unknown"
	}
}

// ValidationError reports why a team number was rejected. It is a
// recoverable condition: callers keep the previous address.
type ValidationError struct {
	Kind  Kind
	Input string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case EmptyInput:
		return "team number cannot be empty"
	case NonDigitCharacter:
		return fmt.Sprintf("team number %q contains non-numeric characters", e.Input)
	case OutOfRange:
		return fmt.Sprintf("%s is not a valid team number", e.Input)
	default:
		return fmt.Sprintf("invalid team number %q", e.Input)
	}
}

// Is matches any ValidationError of the same Kind, so the Err* values
// below work with errors.Is.
func (e *ValidationError) Is(target error) bool {
	var t *ValidationError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrEmptyInput = &ValidationError{Kind: EmptyInput}
	ErrNonDigit   = &ValidationError{Kind: NonDigitCharacter}
	ErrOutOfRange = &ValidationError{Kind: OutOfRange}
)

// TeamNumber is a validated, positive team number in canonical decimal
// form. It is kept as text because the mDNS form has no upper bound.
type TeamNumber string

func (t TeamNumber) String() string { return string(t) }

// Int returns the numeric value, failing only when it overflows int.
func (t TeamNumber) Int() (int, error) {
	return strconv.Atoi(string(t))
}

// ParseTeamNumber validates text as an unbounded positive team number.
func ParseTeamNumber(text string) (TeamNumber, error) {
	for _, r := range text {
		if r < '0' || r > '9' {
			return "", &ValidationError{Kind: NonDigitCharacter, Input: text}
		}
	}
	if len(text) == 0 {
		return "", &ValidationError{Kind: EmptyInput, Input: text}
	}
	canon := strings.TrimLeft(text, "0")
	if canon == "" {
		return "", &ValidationError{Kind: OutOfRange, Input: text}
	}
	return TeamNumber(canon), nil
}

// ParseLegacyTeamNumber validates text as a team number in 1..9999.
func ParseLegacyTeamNumber(text string) (TeamNumber, error) {
	team, err := ParseTeamNumber(text)
	if err != nil {
		return "", err
	}
	// Bound the length first so the conversion cannot overflow.
	if len(team) > len(strconv.Itoa(MaxLegacyTeam)) {
		return "", &ValidationError{Kind: OutOfRange, Input: text}
	}
	if n, err := team.Int(); err != nil || n > MaxLegacyTeam {
		return "", &ValidationError{Kind: OutOfRange, Input: text}
	}
	return team, nil
}
