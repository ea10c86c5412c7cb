package phone

import (
	"fmt"
	"strings"
)

// Normalize converts a phone number in any common local format to
// E.164 (+30xxxxxxxxxx). It returns an error when the input cannot be
// interpreted as a valid Greek number.
//
// Accepted inputs include "6912345678", "0030 691 234 5678",
// "+30 691-234-5678" and "2103456789".
func Normalize(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("empty phone number")
	}

	cleaned := stripNonDialable(raw)

	var number string
	switch {
	case strings.HasPrefix(cleaned, "+30"):
		number = cleaned
	case strings.HasPrefix(cleaned, "0030"):
		number = "+30" + cleaned[4:]
	case strings.HasPrefix(cleaned, "30") && len(cleaned) == 12:
		number = "+" + cleaned
	case strings.HasPrefix(cleaned, "0") && len(cleaned) == 11:
		number = "+30" + cleaned[1:]
	case len(cleaned) == 10:
		number = "+30" + cleaned
	default:
		return "", fmt.Errorf("unrecognized phone number format: %q", raw)
	}

	if !Valid(number) {
		return "", fmt.Errorf("invalid Greek phone number: %q", raw)
	}
	return number, nil
}

// Valid reports whether number is a well-formed Greek E.164 number:
// +30 followed by exactly ten digits, the first of which is 2
// (landline) or 6 (mobile).
func Valid(number string) bool {
	if !strings.HasPrefix(number, "+30") {
		return false
	}
	digits := number[3:]
	if len(digits) != 10 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return digits[0] == '2' || digits[0] == '6'
}

// FormatDisplay renders an E.164 number for human-readable output,
// e.g. "+306912345678" becomes "+30 691 234 5678". Numbers that are
// not normalized Greek numbers are returned unchanged.
func FormatDisplay(number string) string {
	if !Valid(number) {
		return number
	}
	digits := number[3:]
	return fmt.Sprintf("+30 %s %s %s", digits[:3], digits[3:6], digits[6:])
}

// stripNonDialable removes everything except digits and a leading +.
func stripNonDialable(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
