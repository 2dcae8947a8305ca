package validation

import (
	"strings"
	"unicode"
)

// NormalizePhone strips everything but digits, then a leading 90 country
// code or 0 trunk prefix. The result is valid when it has ten digits and
// starts with 2-5 (landline or mobile).
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "90"):
		digits = digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}

	if len(digits) != 10 || digits[0] < '2' || digits[0] > '5' {
		return digits, false
	}
	return digits, true
}

// FormatPhone renders a valid number as "(5xx) xxx xx xx".
func FormatPhone(raw string) (string, bool) {
	d, ok := NormalizePhone(raw)
	if !ok {
		return raw, false
	}
	return "(" + d[0:3] + ") " + d[3:6] + " " + d[6:8] + " " + d[8:10], true
}
