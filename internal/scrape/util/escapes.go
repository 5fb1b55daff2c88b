package util

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

var simpleEscapes = map[byte]byte{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// DecodeEscapes decodes \\ \' \" \a \b \f \n \r \t \v, octal \ooo, \xhh,
// \uXXXX and \UXXXXXXXX. A backslash-newline pair is removed. Unknown
// escapes such as \q are kept as written. ok is false when an escape is
// malformed (truncated hex, out-of-range code point, trailing backslash); s
// is then returned unchanged.
func DecodeEscapes(s string) (decoded string, ok bool) {
	if strings.IndexByte(s, '\\') < 0 {
		return s, true
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			return s, false
		}

		n := s[i+1]
		if v, ok := simpleEscapes[n]; ok {
			b.WriteByte(v)
			i += 2
			continue
		}

		switch {
		case n == '\n':
			i += 2

		case n >= '0' && n <= '7':
			j := i + 1
			for j < len(s) && j < i+4 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i+1:j], 8, 32)
			b.WriteRune(rune(v))
			i = j

		case n == 'x' || n == 'u' || n == 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[n]
			start := i + 2
			if start+width > len(s) {
				return s, false
			}
			v, err := strconv.ParseUint(s[start:start+width], 16, 32)
			if err != nil || v > utf8.MaxRune {
				return s, false
			}
			b.WriteRune(rune(v))
			i = start + width

		default:
			b.WriteByte('\\')
			i++
		}
	}
	return b.String(), true
}
