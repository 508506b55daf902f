package store

import "strings"

// DigitsOnly strips every non-digit rune. Tax ids, phones and postal codes
// are compared and validated in this canonical form, whatever punctuation the
// caller typed.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
