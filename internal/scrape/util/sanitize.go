package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Sanitize turns raw scraped text into a single-spaced, printable ASCII
// string:
//
//  1. backslash escapes embedded in the text are decoded
//  2. Unicode whitespace folds to ' ' and anything outside 0x20-0x7E is dropped
//  3. whitespace runs collapse to one space and the ends are trimmed
//
// Decoding can surface new escapes ("\\n" becomes "\n"), so the pipeline is
// repeated until the output stops changing. Every pass that changes an
// already-clean string makes it strictly shorter, so the loop terminates and
// Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(raw string) string {
	s := sanitizePass(raw)
	for {
		next := sanitizePass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func sanitizePass(s string) string {
	if decoded, ok := DecodeEscapes(s); ok {
		s = decoded
	}
	s = printableASCII(s)
	return strings.Join(strings.Fields(s), " ")
}

func isPrintableASCII(r rune) bool { return r >= 0x20 && r <= 0x7e }

func printableASCII(s string) string {
	t := transform.Chain(
		runes.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return ' '
			}
			return r
		}),
		runes.Remove(runes.Predicate(func(r rune) bool { return !isPrintableASCII(r) })),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.Map(func(r rune) rune {
			switch {
			case unicode.IsSpace(r):
				return ' '
			case isPrintableASCII(r):
				return r
			}
			return -1
		}, s)
	}
	return out
}
