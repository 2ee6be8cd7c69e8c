package address

import (
	"strings"
	"unicode"
)

// AcceptKey reports whether a typed character may reach the team number
// field. Control characters pass (backspace, DEL, clipboard shortcuts),
// as do ASCII digits. Navigation keys are not characters and never reach
// the filter.
func AcceptKey(r rune) bool {
	return unicode.IsControl(r) || isDigit(r)
}

// FilterDigits keeps only the ASCII digits of s. It is the buffer-side
// counterpart of AcceptKey for text that arrives without keystrokes, such
// as a paste, so control characters are dropped as well.
func FilterDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if isDigit(r) {
			return r
		}
		return -1
	}, s)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
