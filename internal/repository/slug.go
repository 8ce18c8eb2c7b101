package repository

import (
	"strings"
	"unicode"
)

// Slugify derives a URL-safe slug from a display name: lowercase, drop
// everything but letters, digits, spaces, underscores and hyphens, then
// collapse separator runs into single hyphens.
func Slugify(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '_' || r == '-':
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), "-")
}
