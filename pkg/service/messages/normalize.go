package messages

import "strings"

// NormalizePhoneNumber reduces a phone number rendering to its grouping key.
// All non-digit characters are stripped; an 11-digit number with a leading
// country-code 1 loses it; a 10-digit number is kept as-is. Anything else is
// returned unmodified, since guessing a canonical form for short codes or
// international numbers would merge unrelated conversations.
// The function is idempotent: normalizing twice equals normalizing once.
func NormalizePhoneNumber(phoneNumber string) string {
	var digits strings.Builder
	for _, r := range phoneNumber {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	switch {
	case len(d) == 11 && strings.HasPrefix(d, "1"):
		return d[1:]
	case len(d) == 10:
		return d
	default:
		return phoneNumber
	}
}
