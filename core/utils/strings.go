package utils

import "strings"

// HasText reports whether s contains anything other than whitespace.
func HasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

// DefaultIfEmpty returns s, or def when s has no text.
func DefaultIfEmpty(s, def string) string {
	if HasText(s) {
		return s
	}
	return def
}

// TrimToEmpty trims surrounding whitespace.
func TrimToEmpty(s string) string {
	return strings.TrimSpace(s)
}

// ReplaceAll applies the old/new pairs in a single pass.
func ReplaceAll(s string, pairs ...string) string {
	if len(pairs)%2 != 0 {
		pairs = pairs[:len(pairs)-1]
	}
	return strings.NewReplacer(pairs...).Replace(s)
}
