// Package screening holds the pure name-matching rules used to screen
// candidates against the black list.
package screening

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a free-text name into a comparable search key:
// uppercase, no whitespace, Latin and Cyrillic letters only.
func Normalize(name string) string {
	upper := strings.ToUpper(name)

	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if unicode.IsSpace(r) {
			continue
		}
		if !isSearchableLetter(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isSearchableLetter(r rune) bool {
	if !unicode.IsLetter(r) {
		return false
	}
	return unicode.Is(unicode.Latin, r) || unicode.Is(unicode.Cyrillic, r)
}

// IsNameLine reports whether s holds only Latin/Cyrillic letters and spaces
// and at least one letter.
func IsNameLine(s string) bool {
	hasLetter := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t':
		case isSearchableLetter(r):
			hasLetter = true
		default:
			return false
		}
	}
	return hasLetter
}

// IsDigitsLine reports whether s is a non-empty run of ASCII digits
func IsDigitsLine(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
