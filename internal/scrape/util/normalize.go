package util

import "strings"

// CleanText folds non-breaking spaces and collapses whitespace. Unlike
// Sanitize it keeps non-ASCII text, which suits names and message bodies.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
