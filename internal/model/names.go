package model

import (
	"strings"
	"unicode"
)

// SanitizeName makes an accessibility label safe to use in a combined name:
// line breaks and tabs become spaces, other non-printable runes are dropped,
// and surrounding whitespace is trimmed.
func SanitizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\r' || r == '\n' || r == '\t':
			b.WriteRune(' ')
		case !unicode.IsPrint(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
