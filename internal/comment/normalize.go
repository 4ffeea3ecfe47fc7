package comment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Marker is the line comment marker stripped from every doc line.
const Marker = "//"

// Normalize strips the comment marker and at most one following space from line,
// then measures the run of non-space leading whitespace (tabs and friends) as the
// indentation level. With trim set, plain spaces around the content are removed too.
func Normalize(line string, trim bool) (string, int) {
	s := strings.TrimPrefix(line, Marker)
	s = strings.TrimPrefix(s, " ")

	indent := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == ' ' || !unicode.IsSpace(r) {
			break
		}
		indent++
		s = s[size:]
	}

	if trim {
		s = strings.Trim(s, " ")
	}
	return s, indent
}
